package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/sonner/internal/config"
	"github.com/vango-dev/sonner/internal/errors"
	"github.com/vango-dev/sonner/internal/replay"
	"github.com/vango-dev/sonner/pkg/toast"
)

func TestNewApp_FeedAndMetrics(t *testing.T) {
	cfg := config.New()
	a := newApp(cfg, prometheus.NewRegistry())
	defer a.feed.Close()

	srv := httptest.NewServer(a.handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/_sonner/toasts", "application/json",
		strings.NewReader(`{"kind":"success","message":"Saved"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201", resp.StatusCode)
	}
	if a.store.Len() != 1 {
		t.Fatalf("store has %d toasts, want 1", a.store.Len())
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `sonner_events_total{kind="success",type="created"} 1`) {
		t.Errorf("metrics missing created event:\n%s", body)
	}
}

func TestNewApp_MetricsDisabled(t *testing.T) {
	cfg := config.New()
	cfg.Metrics.Enabled = false
	a := newApp(cfg, prometheus.NewRegistry())
	defer a.feed.Close()

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /metrics = %d, want 404", rec.Code)
	}
}

func TestNewApp_UUIDs(t *testing.T) {
	cfg := config.New()
	cfg.Toasts.IDs = config.IDsUUID
	a := newApp(cfg, nil)
	defer a.feed.Close()

	id := a.store.Message("hi", toast.Data{})
	if len(id) != 36 {
		t.Errorf("id = %q, want a UUID", id)
	}
}

func TestRunReplay(t *testing.T) {
	script, err := replay.Parse([]byte("steps:\n  - op: info\n    message: one\n  - op: warning\n    message: two\n"))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := runReplay(context.Background(), &buf, toast.NewStore(), script, false); err != nil {
		t.Fatalf("runReplay: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}

	var snap struct {
		Step   int `json:"step"`
		Toasts []struct {
			Kind string `json:"kind"`
		} `json:"toasts"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Step != 2 || len(snap.Toasts) != 2 || snap.Toasts[0].Kind != "warning" {
		t.Errorf("snapshot = %+v", snap)
	}

	buf.Reset()
	if err := runReplay(context.Background(), &buf, toast.NewStore(), script, true); err != nil {
		t.Fatalf("runReplay final: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("final printed %d lines, want 1", n)
	}
}

func TestReplayStore_Validates(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"bad duration", func(c *config.Config) { c.Toasts.DefaultDuration = "soon" }},
		{"misspelled ids", func(c *config.Config) { c.Toasts.IDs = "uuids" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.modify(cfg)
			store, err := replayStore(cfg)
			if !errors.HasCode(err, "E122") {
				t.Errorf("replayStore error = %v, want E122", err)
			}
			if store != nil {
				t.Error("replayStore returned a store for an invalid config")
			}
		})
	}

	cfg := config.New()
	cfg.Toasts.DefaultDuration = "1500ms"
	store, err := replayStore(cfg)
	if err != nil {
		t.Fatalf("replayStore: %v", err)
	}
	store.Info("hi", toast.Data{})
	if got := store.Toasts()[0].Duration; got != 1500*time.Millisecond {
		t.Errorf("Duration = %v, want 1.5s", got)
	}
}

func TestSetupLogging_NoColorDisablesErrorColors(t *testing.T) {
	defer errors.SetColors(true)
	defer slog.SetDefault(slog.Default())

	errors.SetColors(true)
	cfg := config.New()
	cfg.Log.NoColor = true
	if err := setupLogging(cfg, false); err != nil {
		t.Fatalf("setupLogging: %v", err)
	}

	var b strings.Builder
	errors.Write(&b, errors.New("E160"), errors.StyleText)
	if strings.Contains(b.String(), "\033[") {
		t.Errorf("error output still colored: %q", b.String())
	}
}

func TestErrorStyle(t *testing.T) {
	defer func() { errorFormat = "" }()

	if got := errorStyle(true); got != errors.StyleText {
		t.Errorf("terminal style = %q, want text", got)
	}
	if got := errorStyle(false); got != errors.StyleCompact {
		t.Errorf("non-terminal style = %q, want compact", got)
	}
	errorFormat = errors.StyleJSON
	if got := errorStyle(true); got != errors.StyleJSON {
		t.Errorf("flag style = %q, want json", got)
	}
}
