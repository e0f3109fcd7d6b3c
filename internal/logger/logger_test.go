package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestConfigure_DebugLevel(t *testing.T) {
	t.Cleanup(func() { configureFromEnv(os.Stderr) })

	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{name: "debug enabled", debug: true, wantDebug: true},
		{name: "debug disabled", debug: false, wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Configure(&buf, tt.debug)

			Debug("debug message", "key", "value")
			Info("info message")

			out := buf.String()
			if got := strings.Contains(out, "debug message"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v (output: %q)", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "info message") {
				t.Errorf("expected info line in output, got %q", out)
			}
		})
	}
}

func TestConfigure_WritesStructuredFields(t *testing.T) {
	t.Cleanup(func() { configureFromEnv(os.Stderr) })

	var buf bytes.Buffer
	Configure(&buf, false)

	Error("failed", "path", "a.jpg")
	Warn("careful", "count", 3)

	out := buf.String()
	for _, want := range []string{"level=ERROR", "path=a.jpg", "level=WARN", "count=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestConfigureFromEnv(t *testing.T) {
	t.Cleanup(func() { configureFromEnv(os.Stderr) })

	tests := []struct {
		name      string
		env       string
		wantDebug bool
	}{
		{name: "DEBUG set", env: "1", wantDebug: true},
		{name: "DEBUG empty", env: "", wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEBUG", tt.env)

			var buf bytes.Buffer
			configureFromEnv(&buf)
			Debug("debug message")

			if got := strings.Contains(buf.String(), "debug message"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}
