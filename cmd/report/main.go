// Command report builds attendance reports from a scan-log file on disk.
//
// Usage:
//
//	report -in attlog.dat -list
//	report -in attlog.dat -employee 1001 -month 3 -year 2024
//	report -in attlog.dat -employee 1001 -month 3 -year 2024 -format xlsx -out report.xlsx
//	report -in attlog.dat -all -month 3 -year 2024 -outdir data/reports -format csv
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"punchclock/internal/attendance"
	"punchclock/internal/exporter"
	"punchclock/internal/validation"
)

func main() {
	var (
		inPath     = flag.String("in", "", "Path to the scan-log file (required)")
		employeeID = flag.String("employee", "", "Employee ID to report on")
		month      = flag.Int("month", int(time.Now().Month()), "Report month (1-12)")
		year       = flag.Int("year", time.Now().Year(), "Report year")
		outPath    = flag.String("out", "", "Output file (default: stdout as JSON)")
		outDir     = flag.String("outdir", "data/reports", "Output directory for -all")
		format     = flag.String("format", "json", "Output format: json, csv, xlsx, pdf, zip")
		list       = flag.Bool("list", false, "List employee IDs found in the log and exit")
		all        = flag.Bool("all", false, "Build reports for every employee in the log")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -in is required")
		flag.Usage()
		os.Exit(1)
	}

	uploadValidator := validation.NewUploadValidator(logger, 0, nil)
	if err := uploadValidator.ValidateInputFile(*inPath); err != nil {
		fatal("invalid input file: %v", err)
	}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		fatal("failed to read %s: %v", *inPath, err)
	}
	logText := string(data)

	if *list {
		for _, id := range attendance.ListEmployeeIDs(logText) {
			fmt.Println(id)
		}
		return
	}

	if *month < 1 || *month > 12 {
		fatal("month must be between 1 and 12, got %d", *month)
	}

	if *all {
		runAll(logger, logText, *month, *year, *outDir, *format)
		return
	}

	if *employeeID == "" {
		fatal("either -employee, -all, or -list is required")
	}

	report := attendance.BuildReport(logText, *employeeID, *month, *year)
	if err := writeReport(report, *outPath, *format); err != nil {
		fatal("failed to write report: %v", err)
	}
}

// runAll builds one report per employee and writes each to outDir
func runAll(logger *slog.Logger, logText string, month, year int, outDir, format string) {
	if format == "json" {
		format = exporter.FormatCSV
	}
	if !exporter.IsSupported(format) {
		fatal("unsupported format %q for -all", format)
	}

	uploadValidator := validation.NewUploadValidator(logger, 0, nil)
	if err := uploadValidator.ValidateOutputDirectory(outDir); err != nil {
		fatal("invalid output directory: %v", err)
	}

	employees := attendance.ListEmployeeIDs(logText)
	for _, id := range employees {
		report := attendance.BuildReport(logText, id, month, year)
		path := filepath.Join(outDir, exporter.FileName(report, format))
		if err := exporter.WriteFile(path, report, format); err != nil {
			fatal("failed to export report for %s: %v", id, err)
		}
		logger.Info("report written",
			slog.String("employee_id", id),
			slog.String("path", path))
	}

	fmt.Printf("Wrote %d report(s) to %s\n", len(employees), outDir)
}

// writeReport renders a single report to a file or stdout
func writeReport(report *attendance.Report, outPath, format string) error {
	format = strings.ToLower(format)

	if format == "json" {
		var out io.Writer = os.Stdout
		if outPath != "" {
			file, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer file.Close()
			out = file
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if !exporter.IsSupported(format) {
		return fmt.Errorf("unsupported format %q", format)
	}

	if outPath == "" {
		outPath = exporter.FileName(report, format)
	}
	if err := exporter.WriteFile(outPath, report, format); err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", outPath)
	return nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
