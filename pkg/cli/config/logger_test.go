package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ferry/pkg/cli/config"
)

func TestLoggerConfigure(t *testing.T) {
	cases := []struct {
		name  string
		level string
		json  bool
	}{
		{"debug text", "debug", false},
		{"info json", "info", true},
		{"warn text", "warn", false},
		{"error json", "error", true},
		{"unknown level falls back to info", "trace", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Logger{Level: tc.level, JSON: tc.json}
			logger, err := cfg.Configure()
			gt.NoError(t, err)
			gt.Value(t, logger).NotNil()
		})
	}
}
