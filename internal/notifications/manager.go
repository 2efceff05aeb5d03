package notifications

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 512
	sendBuffer     = 256
)

// Manager owns the live feed: it upgrades connections and fans out events
type Manager struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
	now      func() time.Time
}

// Connection represents a WebSocket client connection
type Connection struct {
	ID          string
	Conn        *websocket.Conn
	ConnectedAt time.Time
	UserAgent   string
	IPAddress   string

	send chan Message
}

// Hub serialises registration and broadcast on a single goroutine
type Hub struct {
	connections map[*Connection]bool
	broadcast   chan Message
	register    chan *Connection
	unregister  chan *Connection
	stop        chan struct{}
	stopOnce    sync.Once
	count       atomic.Int64
	onChange    func(int)
	logger      *zap.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithConnectionObserver is told the client count whenever it changes
func WithConnectionObserver(fn func(int)) Option {
	return func(m *Manager) { m.hub.onChange = fn }
}

// WithAllowedOrigin restricts upgrades to one Origin; "*" or empty allows any
func WithAllowedOrigin(origin string) Option {
	return func(m *Manager) {
		if origin == "" || origin == "*" {
			return
		}
		m.upgrader.CheckOrigin = func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == origin
		}
	}
}

// NewManager creates a new live feed manager and starts its hub
func NewManager(logger *zap.Logger, opts ...Option) *Manager {
	hub := &Hub{
		connections: make(map[*Connection]bool),
		broadcast:   make(chan Message, sendBuffer),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		stop:        make(chan struct{}),
		logger:      logger,
	}
	m := &Manager{
		hub:    hub,
		logger: logger,
		now:    time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(m)
	}

	go hub.run()
	return m
}

// RegisterRoutes registers the feed endpoint on the /api group
func (m *Manager) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws", m.serveWS)
}

func (m *Manager) serveWS(c *gin.Context) {
	if _, err := m.HandleConnection(c.Writer, c.Request); err != nil {
		m.logger.Warn("Live feed upgrade failed", zap.Error(err))
	}
}

// HandleConnection upgrades the request and starts the client pumps
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request) (*Connection, error) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:          uuid.NewString(),
		Conn:        conn,
		ConnectedAt: m.now(),
		UserAgent:   r.Header.Get("User-Agent"),
		IPAddress:   r.RemoteAddr,
		send:        make(chan Message, sendBuffer),
	}
	connection.send <- Message{
		Type:      MessageTypeStatus,
		Payload:   map[string]string{"status": "connected", "connectionId": connection.ID},
		Timestamp: m.now(),
	}

	select {
	case m.hub.register <- connection:
	case <-m.hub.stop:
		conn.Close()
		return nil, fmt.Errorf("live feed is closed")
	}

	go m.readPump(connection)
	go m.writePump(connection)

	return connection, nil
}

// readPump drains client frames so control messages are processed
func (m *Manager) readPump(conn *Connection) {
	defer func() {
		select {
		case m.hub.unregister <- conn:
		case <-m.hub.stop:
		}
		conn.Conn.Close()
	}()

	conn.Conn.SetReadLimit(maxMessageSize)
	_ = conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.Conn.SetPongHandler(func(string) error {
		return conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.logger.Debug("Live feed read error", zap.String("connection_id", conn.ID), zap.Error(err))
			}
			return
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (m *Manager) writePump(conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.send:
			_ = conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.Conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Publish queues an event for every connected client. It never blocks;
// events are dropped when the broadcast buffer is full.
func (m *Manager) Publish(eventType string, payload any) {
	msg := Message{Type: eventType, Payload: payload, Timestamp: m.now()}
	select {
	case m.hub.broadcast <- msg:
	default:
		m.logger.Warn("Live feed broadcast buffer full, dropping event", zap.String("type", eventType))
	}
}

// ConnectionCount returns the number of active connections
func (m *Manager) ConnectionCount() int {
	return int(m.hub.count.Load())
}

// Close stops the hub and closes every client
func (m *Manager) Close() {
	m.hub.stopOnce.Do(func() { close(m.hub.stop) })
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.connections[conn] = true
			h.changed()
			h.logger.Debug("Live feed client registered", zap.String("connection_id", conn.ID))

		case conn := <-h.unregister:
			h.remove(conn)

		case message := <-h.broadcast:
			for conn := range h.connections {
				select {
				case conn.send <- message:
				default:
					h.remove(conn)
				}
			}

		case <-h.stop:
			for conn := range h.connections {
				h.remove(conn)
			}
			return
		}
	}
}

// remove is only called from run, which owns the connections map and
// is the only closer of send channels
func (h *Hub) remove(conn *Connection) {
	if _, ok := h.connections[conn]; !ok {
		return
	}
	delete(h.connections, conn)
	close(conn.send)
	h.changed()
	h.logger.Debug("Live feed client unregistered", zap.String("connection_id", conn.ID))
}

func (h *Hub) changed() {
	n := len(h.connections)
	h.count.Store(int64(n))
	if h.onChange != nil {
		h.onChange(n)
	}
}
