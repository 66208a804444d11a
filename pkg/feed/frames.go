package feed

import (
	"github.com/vango-dev/sonner/pkg/toast"
)

// FrameType identifies a WebSocket frame.
type FrameType string

const (
	FrameToasts       FrameType = "toasts"
	FrameHeights      FrameType = "heights"
	FrameHeight       FrameType = "height"
	FrameRemoveHeight FrameType = "removeHeight"
	FrameDismiss      FrameType = "dismiss"
)

// toastsFrame carries the notification registry to renderers.
type toastsFrame struct {
	Type   FrameType            `json:"type"`
	Toasts []toast.Notification `json:"toasts"`
}

// heightsFrame carries the height registry to renderers.
type heightsFrame struct {
	Type    FrameType            `json:"type"`
	Heights []toast.HeightRecord `json:"heights"`
}

// clientFrame is sent from renderers to the server.
type clientFrame struct {
	Type     FrameType `json:"type"`
	ID       toast.ID  `json:"id,omitempty"`
	ToastID  toast.ID  `json:"toastId,omitempty"`
	Height   float64   `json:"height,omitempty"`
	Position string    `json:"position,omitempty"`
}

// createRequest is the body of POST /toasts.
type createRequest struct {
	ID          toast.ID       `json:"id,omitempty"`
	Kind        toast.Kind     `json:"kind,omitempty"`
	Message     string         `json:"message,omitempty"`
	Description string         `json:"description,omitempty"`
	Component   string         `json:"component,omitempty"`
	Props       map[string]any `json:"props,omitempty"`
	Dismissable *bool          `json:"dismissable,omitempty"`
	DurationMS  int64          `json:"durationMs,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
}

// heightRequest is the body of PUT /heights/{id}.
type heightRequest struct {
	Height   float64 `json:"height"`
	Position string  `json:"position,omitempty"`
}
