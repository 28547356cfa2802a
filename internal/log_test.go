package internal

import (
	"testing"
)

// TestNewDefaultLogger_Levels verifies LOG_LEVEL parsing across the
// full ERROR..TRACE range.
func TestNewDefaultLogger_Levels(t *testing.T) {
	cases := []struct {
		env  string
		want LogLevel
	}{
		{"ERROR", LogLevelError},
		{"WARN", LogLevelWarn},
		{"INFO", LogLevelInfo},
		{"DEBUG", LogLevelDebug},
		{"TRACE", LogLevelTrace},
		{"", LogLevelInfo},
		{"bogus", LogLevelInfo},
	}
	for _, tc := range cases {
		t.Setenv("LOG_LEVEL", tc.env)
		if got := NewDefaultLogger().GetLevel(); got != tc.want {
			t.Errorf("LOG_LEVEL=%q: got level %d, want %d", tc.env, got, tc.want)
		}
	}
}

// TestLogLevel_Ordering verifies verbosity increases toward TRACE
func TestLogLevel_Ordering(t *testing.T) {
	if !(LogLevelError < LogLevelWarn && LogLevelWarn < LogLevelInfo &&
		LogLevelInfo < LogLevelDebug && LogLevelDebug < LogLevelTrace) {
		t.Error("Log levels out of order")
	}
}
