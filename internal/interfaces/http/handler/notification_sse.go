package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freshmart/backend/internal/application/notification"
)

// SSEClient represents one open notification stream
type SSEClient struct {
	ID     string
	UserID uuid.UUID
	Chan   chan SSEMessage
	Done   chan struct{}
}

// SSEMessage represents a message to be sent to SSE clients
type SSEMessage struct {
	Event string `json:"event"`
	Data  string `json:"data"`
	ID    string `json:"id,omitempty"`
}

// NotificationSSEHandler keeps one SSE connection per browser tab and
// routes notifications to the connections belonging to the addressed
// user. It is the Publisher the event handlers deliver through.
type NotificationSSEHandler struct {
	BaseHandler
	logger     *zap.Logger
	clients    sync.Map // map[string]*SSEClient
	ctx        context.Context
	cancel     context.CancelFunc
	heartbeat  time.Duration
	bufferSize int
	started    bool
	startMu    sync.Mutex
	maxClients int
}

var _ notification.Publisher = (*NotificationSSEHandler)(nil)

// NotificationSSEOption is a functional option for configuring the handler
type NotificationSSEOption func(*NotificationSSEHandler)

// WithSSELogger sets the logger for the handler
func WithSSELogger(logger *zap.Logger) NotificationSSEOption {
	return func(h *NotificationSSEHandler) {
		h.logger = logger
	}
}

// WithSSEHeartbeat sets the heartbeat interval
func WithSSEHeartbeat(interval time.Duration) NotificationSSEOption {
	return func(h *NotificationSSEHandler) {
		h.heartbeat = interval
	}
}

// WithSSEBufferSize sets the per-client message buffer
func WithSSEBufferSize(size int) NotificationSSEOption {
	return func(h *NotificationSSEHandler) {
		h.bufferSize = size
	}
}

// WithSSEMaxClients sets the maximum number of concurrent SSE clients
func WithSSEMaxClients(max int) NotificationSSEOption {
	return func(h *NotificationSSEHandler) {
		h.maxClients = max
	}
}

// NewNotificationSSEHandler creates a new notification stream handler
func NewNotificationSSEHandler(opts ...NotificationSSEOption) *NotificationSSEHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &NotificationSSEHandler{
		logger:     zap.NewNop(),
		ctx:        ctx,
		cancel:     cancel,
		heartbeat:  30 * time.Second,
		bufferSize: 100,
		maxClients: 10000,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// RegisterRoutes registers the notification stream route
func (h *NotificationSSEHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications/stream", h.Stream)
}

// Start begins sending heartbeats to connected clients
func (h *NotificationSSEHandler) Start() error {
	h.startMu.Lock()
	defer h.startMu.Unlock()

	if h.started {
		return fmt.Errorf("SSE handler already started")
	}

	go h.sendHeartbeats()

	h.started = true
	h.logger.Info("Notification SSE handler started")
	return nil
}

// Stop disconnects all clients and stops the handler
func (h *NotificationSSEHandler) Stop() {
	h.cancel()

	h.clients.Range(func(key, value any) bool {
		if client, ok := value.(*SSEClient); ok {
			close(client.Done)
		}
		return true
	})

	h.logger.Info("Notification SSE handler stopped")
}

// PublishToUser delivers a notification to every open connection the
// user has. Best-effort: a full channel drops the message, no open
// connection loses it silently.
func (h *NotificationSSEHandler) PublishToUser(userID uuid.UUID, n notification.Notification) {
	data, err := json.Marshal(n.Data)
	if err != nil {
		h.logger.Error("Failed to marshal notification", zap.Error(err))
		return
	}

	msg := SSEMessage{
		Event: n.Event,
		Data:  string(data),
		ID:    fmt.Sprintf("%d", time.Now().UnixNano()),
	}

	h.clients.Range(func(key, value any) bool {
		client, ok := value.(*SSEClient)
		if !ok || client.UserID != userID {
			return true
		}

		select {
		case client.Chan <- msg:
			h.logger.Debug("Sent notification to client",
				zap.String("client_id", client.ID),
				zap.String("event", msg.Event))
		default:
			h.logger.Warn("Client channel full, dropping notification",
				zap.String("client_id", client.ID))
		}
		return true
	})
}

// broadcast sends a message to all connected clients
func (h *NotificationSSEHandler) broadcast(msg SSEMessage) {
	h.clients.Range(func(key, value any) bool {
		client, ok := value.(*SSEClient)
		if !ok {
			return true
		}

		select {
		case client.Chan <- msg:
		default:
			h.logger.Warn("Client channel full, dropping message",
				zap.String("client_id", client.ID))
		}
		return true
	})
}

// sendHeartbeats periodically sends heartbeat messages to keep connections alive
func (h *NotificationSSEHandler) sendHeartbeats() {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.broadcast(SSEMessage{
				Event: "heartbeat",
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			})
		}
	}
}

// Stream opens an SSE connection scoped to the authenticated user
func (h *NotificationSSEHandler) Stream(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if h.maxClients > 0 && h.ClientCount() >= h.maxClients {
		c.JSON(503, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MAX_CONNECTIONS_REACHED",
				"message": "Maximum number of SSE connections reached",
			},
		})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := &SSEClient{
		ID:     uuid.New().String(),
		UserID: principal.UserID,
		Chan:   make(chan SSEMessage, h.bufferSize),
		Done:   make(chan struct{}),
	}

	h.clients.Store(client.ID, client)
	defer func() {
		close(client.Chan)
		h.clients.Delete(client.ID)
	}()

	h.logger.Info("SSE client connected",
		zap.String("client_id", client.ID),
		zap.String("user_id", principal.UserID.String()))

	h.sendEvent(c.Writer, SSEMessage{
		Event: "connected",
		Data:  fmt.Sprintf(`{"client_id":"%s","timestamp":%d}`, client.ID, time.Now().Unix()),
	})
	c.Writer.Flush()

	reqCtx := c.Request.Context()

	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("SSE client disconnected",
				zap.String("client_id", client.ID))
			return
		case <-client.Done:
			h.logger.Info("SSE client disconnected (done signal)",
				zap.String("client_id", client.ID))
			return
		case <-h.ctx.Done():
			h.logger.Info("SSE handler stopped, disconnecting client",
				zap.String("client_id", client.ID))
			return
		case msg, ok := <-client.Chan:
			if !ok {
				return
			}
			h.sendEvent(c.Writer, msg)
			c.Writer.Flush()
		}
	}
}

// sendEvent writes an SSE event to the response writer
func (h *NotificationSSEHandler) sendEvent(w io.Writer, msg SSEMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}

// ClientCount returns the number of connected SSE clients
func (h *NotificationSSEHandler) ClientCount() int {
	count := 0
	h.clients.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
