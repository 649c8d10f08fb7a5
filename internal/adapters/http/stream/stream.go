// Package stream pushes snapshot updates to websocket clients.
package stream

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/okian/draftassist/internal/adapters/repository"
	service "github.com/okian/draftassist/internal/app"
	"github.com/okian/draftassist/pkg/logger"
)

// Message types sent to clients.
const (
	TypeHello    = "hello"
	TypeSnapshot = "snapshot"
)

const (
	defaultWriteTimeout = 10 * time.Second
	defaultReadTimeout  = 60 * time.Second
	defaultPingInterval = 30 * time.Second
	maxClientMessage    = 1024
)

// Publisher is the source of snapshot updates.
type Publisher interface {
	Subscribe() (<-chan service.Update, func())
	Snapshot(ctx context.Context) (*repository.Snapshot, error)
}

// Message is one frame sent to a client. Hello summarizes the snapshot
// current at connect time; it has no update before the first refresh.
type Message struct {
	Type   string          `json:"type"`
	Update *service.Update `json:"update,omitempty"`
}

// Handler upgrades /ws requests and streams updates to each connection.
type Handler struct {
	pub          Publisher
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	readTimeout  time.Duration
	pingInterval time.Duration
	logger       logger.Logger
}

// NewHandler creates a websocket handler over pub.
func NewHandler(pub Publisher, opts ...Option) *Handler {
	h := &Handler{
		pub:          pub,
		writeTimeout: defaultWriteTimeout,
		readTimeout:  defaultReadTimeout,
		pingInterval: defaultPingInterval,
		logger:       logger.Discard(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register attaches the websocket route to mux.
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleStream)
}

// HandleStream handles GET /ws upgrade requests.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the request.
		h.logger.Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
		return
	}
	ctx := logger.ContextWithFields(context.Background(), logger.String("connection_id", uuid.NewString()))

	updates, cancel := h.pub.Subscribe()
	c := &client{h: h, conn: conn, updates: updates, cancel: cancel, done: make(chan struct{})}
	h.logger.Info(ctx, "websocket client connected", logger.String("remote", r.RemoteAddr))

	go c.readPump(ctx)
	go c.writePump(ctx, h.hello(ctx))
}

func (h *Handler) hello(ctx context.Context) Message {
	msg := Message{Type: TypeHello}
	if snap, err := h.pub.Snapshot(ctx); err == nil {
		u := service.UpdateFrom(snap)
		msg.Update = &u
	}
	return msg
}

type client struct {
	h       *Handler
	conn    *websocket.Conn
	updates <-chan service.Update
	cancel  func()
	done    chan struct{}
}

// writePump owns every write to the connection.
func (c *client) writePump(ctx context.Context, hello Message) {
	ticker := time.NewTicker(c.h.pingInterval)
	defer func() {
		ticker.Stop()
		c.cancel()
		_ = c.conn.Close()
		c.h.logger.Info(ctx, "websocket client disconnected")
	}()

	if err := c.write(hello); err != nil {
		return
	}
	for {
		select {
		case u, ok := <-c.updates:
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(c.h.writeTimeout))
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"))
				return
			}
			if err := c.write(Message{Type: TypeSnapshot, Update: &u}); err != nil {
				c.h.logger.Warn(ctx, "websocket write failed", logger.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.h.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *client) write(msg Message) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.h.writeTimeout))
	return c.conn.WriteJSON(msg)
}

// readPump discards client frames and notices disconnects.
func (c *client) readPump(ctx context.Context) {
	defer close(c.done)

	c.conn.SetReadLimit(maxClientMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.h.readTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.h.readTimeout))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.h.logger.Warn(ctx, "websocket read failed", logger.Error(err))
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(c.h.readTimeout))
	}
}
