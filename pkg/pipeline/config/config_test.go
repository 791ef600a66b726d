package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-chain/pkg/pipeline/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		cfg     config.Config
		wantErr bool
	}{
		"defaults": {
			cfg: config.Config{},
		},
		"negative limit": {
			cfg:     config.Config{GeneratorLimit: -1},
			wantErr: true,
		},
		"unknown level": {
			cfg:     config.Config{LogLevel: "chatty"},
			wantErr: true,
		},
		"unknown format": {
			cfg:     config.Config{LogFormat: "xml"},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tc.cfg.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)

				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	file := writeFile(t, "config.yaml", "generator_limit: 100\nlog_level: debug\nlog_format: json\nmeasure: true\n")

	cfg, err := config.Load(file, "")
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		GeneratorLimit: 100,
		LogLevel:       "debug",
		LogFormat:      "json",
		Measure:        true,
	}, cfg)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("PIPELINE_GENERATOR_LIMIT", "7")
	t.Setenv("PIPELINE_DRAW_FILE", "chain.dot")
	file := writeFile(t, "config.yaml", "generator_limit: 100\n")

	cfg, err := config.Load(file, "")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.GeneratorLimit)
	assert.Equal(t, "chain.dot", cfg.DrawFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadEnvFile(t *testing.T) {
	// Registered first so the variables exported by the .env file are removed afterwards.
	t.Setenv("PIPELINE_LOG_LEVEL", "")
	t.Setenv("PIPELINE_MEASURE", "")
	require.NoError(t, os.Unsetenv("PIPELINE_LOG_LEVEL"))
	require.NoError(t, os.Unsetenv("PIPELINE_MEASURE"))
	envFile := writeFile(t, ".env", "PIPELINE_LOG_LEVEL=warn\nPIPELINE_MEASURE=true\n")

	cfg, err := config.Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Measure)
}

func TestLoadErrors(t *testing.T) {
	tcs := map[string]struct {
		file    string
		envFile string
	}{
		"missing file": {
			file: filepath.Join(t.TempDir(), "missing.yaml"),
		},
		"missing env file": {
			envFile: filepath.Join(t.TempDir(), "missing.env"),
		},
		"invalid value": {
			file: writeFile(t, "config.yaml", "log_format: xml\n"),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(tc.file, tc.envFile)
			assert.Error(t, err)
		})
	}
}
