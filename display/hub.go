//go:build !tinygo

package display

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	hubSendQueue    = 8
	hubPingInterval = 30 * time.Second
	hubWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub streams finished ReGIS frames to websocket viewers.
//
// New clients get the latest frame right away. A client that cannot keep up loses frames;
// the render loop is never blocked.
type Hub struct {
	log *zap.Logger

	mu      sync.Mutex
	clients map[*hubClient]struct{}
	last    []byte
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{log: log, clients: make(map[*hubClient]struct{})}
}

// Publish hands frame to every client. The hub keeps its own copy.
func (h *Hub) Publish(frame []byte) {
	msg := bytes.Clone(frame)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = msg
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Debug("viewer behind, frame dropped", zap.String("remote", c.conn.RemoteAddr().String()))
		}
	}
}

// Last returns the most recently published frame.
func (h *Hub) Last() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Router serves /ws (frame stream) and /frame (latest frame as text).
func (h *Hub) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", h.ServeWS)
	r.HandleFunc("/frame", h.ServeFrame).Methods(http.MethodGet)
	return handlers.LoggingHandler(zap.NewStdLog(h.log).Writer(), r)
}

func (h *Hub) ServeFrame(w http.ResponseWriter, r *http.Request) {
	last := h.Last()
	if last == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(last)
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &hubClient{conn: conn, send: make(chan []byte, hubSendQueue)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	h.mu.Unlock()

	h.log.Info("viewer connected", zap.String("remote", conn.RemoteAddr().String()))
	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) unregister(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// readPump only drains control frames so close and pong are noticed.
func (h *Hub) readPump(c *hubClient) {
	defer h.unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *hubClient) {
	ticker := time.NewTicker(hubPingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		h.log.Info("viewer disconnected", zap.String("remote", c.conn.RemoteAddr().String()))
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(hubWriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Debug("websocket write failed", zap.Error(err))
				h.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(hubWriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c)
				return
			}
		}
	}
}

// Broadcast is a Sink that encodes each frame as ReGIS and publishes it to a Hub on Close.
type Broadcast struct {
	hub *Hub
	buf bytes.Buffer
	enc *ReGIS
}

func NewBroadcast(hub *Hub) *Broadcast {
	b := &Broadcast{hub: hub}
	b.enc = NewReGIS(&b.buf, ReGISOptions{})
	return b
}

func (b *Broadcast) Open(width, height int) error {
	b.buf.Reset()
	return b.enc.Open(width, height)
}

func (b *Broadcast) Clear() error                   { return b.enc.Clear() }
func (b *Broadcast) SetIntensity(c Intensity) error { return b.enc.SetIntensity(c) }
func (b *Broadcast) MoveTo(x, y uint16) error       { return b.enc.MoveTo(x, y) }
func (b *Broadcast) LineTo(x, y uint16) error       { return b.enc.LineTo(x, y) }

// Abort drops the frame being encoded; viewers keep the previous one.
func (b *Broadcast) Abort() error {
	err := b.enc.Close()
	b.buf.Reset()
	return err
}

func (b *Broadcast) Close() error {
	if err := b.enc.Close(); err != nil {
		return err
	}
	b.hub.Publish(b.buf.Bytes())
	return nil
}
