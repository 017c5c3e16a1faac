package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/msto63/kairos/pkg/core/logging"
	"github.com/msto63/kairos/pkg/datetime"
)

const (
	wsReadTimeout  = 120 * time.Second
	wsWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage is a message sent by a clock client
type WSMessage struct {
	Type    string          `json:"type"` // "ping"
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSResponse is a message sent to a clock client
type WSResponse struct {
	Type    string      `json:"type"` // "tick", "pong", "error"
	Payload interface{} `json:"payload,omitempty"`
}

// WSTickPayload carries one clock reading
type WSTickPayload struct {
	Now    datetime.Datetime `json:"now"`
	Number uint64            `json:"number,string"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ClockHandler streams the wall clock over a websocket
type ClockHandler struct {
	interval time.Duration
	now      func() datetime.Datetime
	logger   *logging.Logger
}

// NewClockHandler creates a clock stream that ticks every interval
func NewClockHandler(interval time.Duration) *ClockHandler {
	if interval <= 0 {
		interval = time.Second
	}
	return &ClockHandler{
		interval: interval,
		now:      datetime.Now,
		logger:   logging.New("clock-ws"),
	}
}

// ServeHTTP upgrades the connection and starts streaming
func (h *ClockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

// clockConn serializes writes; gorilla connections allow one writer
type clockConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *clockConn) send(resp WSResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteJSON(resp)
}

func (h *ClockHandler) handleConnection(parent context.Context, conn *websocket.Conn) {
	defer conn.Close()

	h.logger.Info("Clock stream opened", "remote", conn.RemoteAddr().String())

	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	defer cancel()

	out := &clockConn{conn: conn}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.tick(ctx, out)
	}()

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Clock stream read error", "error", err)
			} else {
				h.logger.Info("Clock stream closed")
			}
			break
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		var resp WSResponse
		switch msg.Type {
		case "ping":
			resp = WSResponse{Type: "pong"}
		default:
			resp = WSResponse{Type: "error", Payload: WSErrorPayload{
				Code:    "unknown_type",
				Message: "Unknown message type: " + msg.Type,
			}}
		}
		if err := out.send(resp); err != nil {
			h.logger.Warn("Clock stream send error", "error", err)
			break
		}
	}

	cancel()
	wg.Wait()
}

// tick sends a reading immediately and then every interval
func (h *ClockHandler) tick(ctx context.Context, out *clockConn) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		now := h.now()
		if err := out.send(WSResponse{Type: "tick", Payload: WSTickPayload{Now: now, Number: now.Number()}}); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
