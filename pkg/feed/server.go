package feed

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/sonner/pkg/toast"
)

const (
	// sendBuffer is the number of frames queued per client before the
	// client is considered too slow and dropped.
	sendBuffer = 32

	// writeWait is the time allowed to write one frame.
	writeWait = 10 * time.Second
)

// client is one connected renderer.
type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// Server streams a toast store to WebSocket clients and serves its HTTP
// routes.
type Server struct {
	store    *toast.Store
	logger   *slog.Logger
	upgrader websocket.Upgrader

	clients map[*client]bool
	mu      sync.RWMutex

	stopToasts  func()
	stopHeights func()
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAllowedOrigins restricts WebSocket upgrades to the given origins.
// An empty list allows every origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) == 0 {
			return
		}
		allowed := make(map[string]bool, len(origins))
		for _, o := range origins {
			allowed[o] = true
		}
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin]
		}
	}
}

// New creates a server for store and starts following its registries.
// Call Close to stop.
func New(store *toast.Store, opts ...Option) *Server {
	s := &Server{
		store:   store,
		logger:  slog.Default().With("component", "feed"),
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.stopToasts = store.SubscribeToasts(func(list []toast.Notification) {
		s.broadcast(toastsMessage(list))
	})
	s.stopHeights = store.SubscribeHeights(func(list []toast.HeightRecord) {
		s.broadcast(heightsMessage(list))
	})
	return s
}

// HandleWebSocket upgrades the request and streams snapshots until the
// client disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	s.mu.Lock()
	s.clients[c] = true
	c.send <- toastsMessage(s.store.Toasts())
	c.send <- heightsMessage(s.store.Heights())
	s.mu.Unlock()

	s.logger.Debug("renderer connected", "remote", r.RemoteAddr)

	go s.writeLoop(c)
	s.readLoop(c)

	s.remove(c)
	conn.Close()
	s.logger.Debug("renderer disconnected", "remote", r.RemoteAddr)
}

// readLoop applies client frames until the connection fails.
func (s *Server) readLoop(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.logger.Debug("ignoring malformed frame", "error", err)
			continue
		}
		s.apply(frame)
	}
}

func (s *Server) apply(frame clientFrame) {
	switch frame.Type {
	case FrameHeight:
		if frame.ToastID == "" {
			return
		}
		s.store.SetHeight(toast.HeightRecord{
			ToastID:  frame.ToastID,
			Height:   frame.Height,
			Position: frame.Position,
		})
	case FrameRemoveHeight:
		if frame.ToastID != "" {
			s.store.RemoveHeight(frame.ToastID)
		}
	case FrameDismiss:
		if frame.ID != "" {
			s.store.Dismiss(frame.ID)
		}
	default:
		s.logger.Debug("ignoring unknown frame", "type", frame.Type)
	}
}

// writeLoop is the only goroutine writing to c.conn.
func (s *Server) writeLoop(c *client) {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.remove(c)
			c.conn.Close()
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}

// broadcast queues msg for every client. Clients whose queue is full are
// dropped.
func (s *Server) broadcast(msg []byte) {
	if msg == nil {
		return
	}

	var slow []*client
	s.mu.RLock()
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	s.mu.RUnlock()

	for _, c := range slow {
		s.logger.Warn("dropping slow renderer")
		s.remove(c)
	}
}

func (s *Server) remove(c *client) {
	s.mu.Lock()
	if s.clients[c] {
		delete(s.clients, c)
		c.close()
	}
	s.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close stops following the store and disconnects every client.
func (s *Server) Close() {
	s.stopToasts()
	s.stopHeights()

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		c.close()
	}
}

func toastsMessage(list []toast.Notification) []byte {
	if list == nil {
		list = []toast.Notification{}
	}
	data, err := json.Marshal(toastsFrame{Type: FrameToasts, Toasts: list})
	if err != nil {
		return nil
	}
	return data
}

func heightsMessage(list []toast.HeightRecord) []byte {
	if list == nil {
		list = []toast.HeightRecord{}
	}
	data, err := json.Marshal(heightsFrame{Type: FrameHeights, Heights: list})
	if err != nil {
		return nil
	}
	return data
}
