package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelInfo, NoColor: true})

	logger.Debug("hidden")
	logger.Info("toast created", "id", "7")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged at info level: %s", out)
	}
	if !strings.Contains(out, "toast created") || !strings.Contains(out, "id=7") {
		t.Errorf("output = %q", out)
	}
}

func TestNewNoColor(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{NoColor: true}).Warn("careful")

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("NoColor output contains ANSI codes: %q", buf.String())
	}
}
