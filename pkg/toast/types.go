package toast

import (
	"encoding/json"
	"maps"
	"time"
)

// ID identifies a notification. The empty ID means "not supplied".
type ID string

// Kind is the visual flavour of a notification.
type Kind string

const (
	KindDefault Kind = "default"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindLoading Kind = "loading"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDefault, KindSuccess, KindError, KindInfo, KindWarning, KindLoading:
		return true
	}
	return false
}

// Content is what a notification shows: either Text or a Renderable.
type Content interface {
	isContent()
}

// Text is plain message content.
type Text string

func (Text) isContent() {}

// Renderable is component content. Component and Props describe it to
// remote renderers; Handle is an opaque in-process value (a component
// constructor, a template) that is never serialized.
type Renderable struct {
	Component string
	Props     map[string]any
	Handle    any
}

func (Renderable) isContent() {}

// Notification is one toast in the registry.
type Notification struct {
	ID          ID
	Kind        Kind
	Title       Content
	Description Content

	// Dismissable reports whether the user may close the toast.
	Dismissable bool

	// Updated is true only for the notification changed by the most recent
	// merging Create.
	Updated bool

	// Duration is how long the toast stays on screen. Zero leaves it to the
	// renderer.
	Duration time.Duration

	// Fields carries caller-defined extras (action labels, icons, classes).
	Fields map[string]any
}

// Text returns the title as plain text, or "" for renderable titles.
func (n Notification) Text() string {
	if t, ok := n.Title.(Text); ok {
		return string(t)
	}
	return ""
}

// Data is the input to Create. Zero-valued fields are treated as absent.
type Data struct {
	ID          ID
	Message     Content
	Kind        Kind
	Description Content
	Dismissable *bool
	Duration    time.Duration
	Fields      map[string]any
}

// Bool returns a pointer to v, for Data.Dismissable.
func Bool(v bool) *bool {
	return &v
}

// HeightRecord is the rendered height of one notification.
type HeightRecord struct {
	ToastID  ID      `json:"toastId"`
	Height   float64 `json:"height"`
	Position string  `json:"position,omitempty"`
}

// newNotification builds a fresh record from data.
func newNotification(id ID, data Data, defaultDuration time.Duration) Notification {
	n := Notification{
		ID:          id,
		Kind:        data.Kind,
		Title:       cloneContent(data.Message),
		Description: cloneContent(data.Description),
		Dismissable: true,
		Duration:    data.Duration,
		Fields:      maps.Clone(data.Fields),
	}
	if n.Kind == "" {
		n.Kind = KindDefault
	}
	if data.Dismissable != nil {
		n.Dismissable = *data.Dismissable
	}
	if n.Duration == 0 {
		n.Duration = defaultDuration
	}
	return n
}

// merge shallow-merges the supplied fields of data into n.
func (n Notification) merge(data Data) Notification {
	if data.Kind != "" {
		n.Kind = data.Kind
	}
	if data.Message != nil {
		n.Title = cloneContent(data.Message)
	}
	if data.Description != nil {
		n.Description = cloneContent(data.Description)
	}
	if data.Dismissable != nil {
		n.Dismissable = *data.Dismissable
	}
	if data.Duration != 0 {
		n.Duration = data.Duration
	}
	if len(data.Fields) > 0 {
		fields := maps.Clone(n.Fields)
		if fields == nil {
			fields = make(map[string]any, len(data.Fields))
		}
		maps.Copy(fields, data.Fields)
		n.Fields = fields
	}
	return n
}

// clone copies n with its own Fields and component Props.
func (n Notification) clone() Notification {
	n.Fields = maps.Clone(n.Fields)
	n.Title = cloneContent(n.Title)
	n.Description = cloneContent(n.Description)
	return n
}

func cloneContent(c Content) Content {
	if r, ok := c.(Renderable); ok {
		r.Props = maps.Clone(r.Props)
		return r
	}
	return c
}

// contentJSON is the wire shape of Content.
type contentJSON struct {
	Type      string         `json:"type"`
	Text      string         `json:"text,omitempty"`
	Component string         `json:"component,omitempty"`
	Props     map[string]any `json:"props,omitempty"`
}

func encodeContent(c Content) *contentJSON {
	switch v := c.(type) {
	case Text:
		return &contentJSON{Type: "text", Text: string(v)}
	case Renderable:
		return &contentJSON{Type: "component", Component: v.Component, Props: v.Props}
	}
	return nil
}

func decodeContent(c *contentJSON) Content {
	if c == nil {
		return nil
	}
	if c.Type == "component" {
		return Renderable{Component: c.Component, Props: c.Props}
	}
	return Text(c.Text)
}

type notificationJSON struct {
	ID          ID             `json:"id"`
	Kind        Kind           `json:"kind"`
	Title       *contentJSON   `json:"title,omitempty"`
	Description *contentJSON   `json:"description,omitempty"`
	Dismissable bool           `json:"dismissable"`
	Updated     bool           `json:"updated"`
	DurationMS  int64          `json:"durationMs,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (n Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(notificationJSON{
		ID:          n.ID,
		Kind:        n.Kind,
		Title:       encodeContent(n.Title),
		Description: encodeContent(n.Description),
		Dismissable: n.Dismissable,
		Updated:     n.Updated,
		DurationMS:  n.Duration.Milliseconds(),
		Fields:      n.Fields,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Notification) UnmarshalJSON(data []byte) error {
	var w notificationJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = Notification{
		ID:          w.ID,
		Kind:        w.Kind,
		Title:       decodeContent(w.Title),
		Description: decodeContent(w.Description),
		Dismissable: w.Dismissable,
		Updated:     w.Updated,
		Duration:    time.Duration(w.DurationMS) * time.Millisecond,
		Fields:      w.Fields,
	}
	return nil
}
