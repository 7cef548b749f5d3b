package app

import "testing"

// TestDetermineLogLevel verifies log level precedence.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{name: "default", config: Config{}, want: "info"},
		{name: "verbose", config: Config{Verbose: true}, want: "debug"},
		{name: "quiet", config: Config{Quiet: true}, want: "warn"},
		{name: "verbose and quiet", config: Config{Verbose: true, Quiet: true}, want: "warn"},
		{name: "explicit level wins", config: Config{Verbose: true, LogLevel: "error"}, want: "error"},
		{name: "explicit level case", config: Config{LogLevel: "TRACE"}, want: "trace"},
		{name: "invalid level", config: Config{LogLevel: "loud"}, want: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := tt.config
			if got := determineLogLevel(&config); got != tt.want {
				t.Errorf("determineLogLevel() = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestNewLogger verifies the configured level reaches the logger.
func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{Quiet: true, LogFormat: "json", LogOutput: "discard"})
	if logger.GetLevel().String() != "warn" {
		t.Errorf("level = %s, want warn", logger.GetLevel())
	}
}
