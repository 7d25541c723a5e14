// Package files manages exported report files on disk: saving rendered
// exports into the reports directory, listing what has been written, and
// deleting stale files. Only file names produced by the exporter are
// accepted, so the store never touches anything outside its directory.
package files
