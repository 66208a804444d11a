package feed

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/sonner/pkg/toast"
)

type frame struct {
	Type    FrameType            `json:"type"`
	Toasts  []toast.Notification `json:"toasts"`
	Heights []toast.HeightRecord `json:"heights"`
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return f
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met")
}

func TestWebSocketInitialSnapshots(t *testing.T) {
	store := toast.NewStore()
	store.Success("hello", toast.Data{})
	s := New(store)
	defer s.Close()

	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	conn := dial(t, ts)

	first := readFrame(t, conn)
	if first.Type != FrameToasts || len(first.Toasts) != 1 || first.Toasts[0].Text() != "hello" {
		t.Errorf("first frame = %+v", first)
	}
	second := readFrame(t, conn)
	if second.Type != FrameHeights || len(second.Heights) != 0 {
		t.Errorf("second frame = %+v", second)
	}
}

func TestWebSocketBroadcastsChanges(t *testing.T) {
	store := toast.NewStore()
	s := New(store)
	defer s.Close()

	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	conn := dial(t, ts)
	readFrame(t, conn)
	readFrame(t, conn)
	eventually(t, func() bool { return s.ClientCount() == 1 })

	id := store.Warning("careful", toast.Data{})

	f := readFrame(t, conn)
	if f.Type != FrameToasts || len(f.Toasts) != 1 || f.Toasts[0].ID != id {
		t.Fatalf("frame = %+v", f)
	}
	if f.Toasts[0].Kind != toast.KindWarning {
		t.Errorf("Kind = %q, want warning", f.Toasts[0].Kind)
	}

	store.SetHeight(toast.HeightRecord{ToastID: id, Height: 40})
	f = readFrame(t, conn)
	if f.Type != FrameHeights || len(f.Heights) != 1 {
		t.Errorf("frame = %+v", f)
	}
}

func TestWebSocketClientFrames(t *testing.T) {
	store := toast.NewStore()
	s := New(store)
	defer s.Close()

	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	id := store.Info("fyi", toast.Data{})

	conn := dial(t, ts)
	readFrame(t, conn)
	readFrame(t, conn)

	send := func(v any) {
		t.Helper()
		if err := conn.WriteJSON(v); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	send(map[string]any{"type": "height", "toastId": id, "height": 52, "position": "bottom-right"})
	eventually(t, func() bool { return len(store.Heights()) == 1 })
	if h := store.Heights()[0]; h.Height != 52 || h.Position != "bottom-right" {
		t.Errorf("height = %+v", h)
	}

	send(map[string]any{"type": "removeHeight", "toastId": id})
	eventually(t, func() bool { return len(store.Heights()) == 0 })

	conn.WriteMessage(websocket.TextMessage, []byte("not json"))
	send(map[string]any{"type": "bogus"})

	send(map[string]any{"type": "dismiss", "id": id})
	eventually(t, func() bool { return store.Len() == 0 })
}

func TestWebSocketDisconnect(t *testing.T) {
	store := toast.NewStore()
	s := New(store)
	defer s.Close()

	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	conn := dial(t, ts)
	readFrame(t, conn)
	eventually(t, func() bool { return s.ClientCount() == 1 })

	conn.Close()
	eventually(t, func() bool { return s.ClientCount() == 0 })
}

func TestAllowedOrigins(t *testing.T) {
	store := toast.NewStore()
	s := New(store, WithAllowedOrigins([]string{"https://app.example"}))
	defer s.Close()

	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := map[string][]string{"Origin": {"https://evil.example"}}
	if _, _, err := websocket.DefaultDialer.Dial(url, header); err == nil {
		t.Error("expected upgrade from disallowed origin to fail")
	}

	header = map[string][]string{"Origin": {"https://app.example"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial from allowed origin: %v", err)
	}
	conn.Close()
}
