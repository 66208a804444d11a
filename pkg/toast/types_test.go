package toast

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNotificationJSON(t *testing.T) {
	n := Notification{
		ID:          "7",
		Kind:        KindSuccess,
		Title:       Text("Saved"),
		Description: Renderable{Component: "Details", Props: map[string]any{"n": 2}, Handle: func() {}},
		Dismissable: true,
		Duration:    1500 * time.Millisecond,
		Fields:      map[string]any{"icon": "check"},
	}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	s := string(data)
	for _, want := range []string{
		`"id":"7"`,
		`"kind":"success"`,
		`"title":{"type":"text","text":"Saved"}`,
		`"type":"component"`,
		`"component":"Details"`,
		`"durationMs":1500`,
		`"dismissable":true`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s missing %s", s, want)
		}
	}

	var back Notification
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Title != Text("Saved") {
		t.Errorf("Title = %v", back.Title)
	}
	r, ok := back.Description.(Renderable)
	if !ok || r.Component != "Details" || r.Handle != nil {
		t.Errorf("Description = %+v", back.Description)
	}
	if back.Duration != n.Duration {
		t.Errorf("Duration = %v, want %v", back.Duration, n.Duration)
	}
}

func TestNotificationJSONOmitsEmptyContent(t *testing.T) {
	data, err := json.Marshal(Notification{ID: "1", Kind: KindDefault})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"title"`) {
		t.Errorf("JSON %s should omit nil title", data)
	}
}
