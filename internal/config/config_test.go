package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "data/reports", cfg.Paths.ReportsDir)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Contains(t, cfg.Upload.AllowedExtensions, ".txt")

	assert.NoError(t, cfg.validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid default",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "zero read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout must be positive",
		},
		{
			name:    "zero upload limit",
			mutate:  func(c *Config) { c.Upload.MaxBytes = 0 },
			wantErr: "upload max bytes must be positive",
		},
		{
			name:    "no allowed origins",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: "allowed origin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateNormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"
	cfg.Logging.Output = "syslog"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}

func TestGetReportPath(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data/reports/attendance.csv", cfg.GetReportPath("attendance.csv"))
	assert.Equal(t, "/tmp/out.csv", cfg.GetReportPath("/tmp/out.csv"))
}

func TestMergeConfigs(t *testing.T) {
	fileCfg := *Default()
	fileCfg.Server.Port = 9090
	fileCfg.Paths.ReportsDir = "elsewhere"

	var envCfg Config // everything zero: file values win
	merged := mergeConfigs(fileCfg, envCfg)

	assert.Equal(t, 9090, merged.Server.Port)
	assert.Equal(t, "elsewhere", merged.Paths.ReportsDir)

	envCfg.Server.Port = 7070 // env set: env wins
	merged = mergeConfigs(fileCfg, envCfg)
	assert.Equal(t, 7070, merged.Server.Port)
}
