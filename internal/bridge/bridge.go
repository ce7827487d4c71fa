// Package bridge relays automation events between a local Streamer.bot
// WebSocket and the OBS overlay browser sources connected to this site.
// Inbound General.Custom events fan out to every overlay; overlays can ask
// for an action run, which is forwarded upstream as a DoAction request.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Reconnect behaviour for the upstream socket: linear backoff from the
// base, capped, giving up after the attempt limit.
const (
	reconnectBase = 2500 * time.Millisecond
	reconnectMax  = 30 * time.Second
	maxReconnects = 12
)

// Config wires the hub to the local automation tool.
type Config struct {
	UpstreamURL      string // ws://127.0.0.1:8080; empty disables the bridge
	OverlayID        string // subscriber id announced upstream
	ReceiverActionID string // default action for doAction requests without one
}

// subscribeRequest announces interest in General.Custom events.
type subscribeRequest struct {
	Request string              `json:"request"`
	ID      string              `json:"id"`
	Events  map[string][]string `json:"events"`
}

// doActionRequest asks Streamer.bot to run an action with arguments.
type doActionRequest struct {
	Request string         `json:"request"`
	ID      string         `json:"id"`
	Action  actionRef      `json:"action"`
	Args    map[string]any `json:"args,omitempty"`
}

type actionRef struct {
	ID string `json:"id"`
}

// envelope is the upstream message shape. Status-only frames are request
// acknowledgements; event frames carry the broadcast payload in Data.
type envelope struct {
	Status string          `json:"status,omitempty"`
	Event  json.RawMessage `json:"event,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type eventHeader struct {
	Type   string `json:"type"`
	Source string `json:"source"`
}

// overlayRequest is what a connected overlay may send us.
type overlayRequest struct {
	Type   string         `json:"type"`
	Action string         `json:"action,omitempty"`
	Args   map[string]any `json:"args,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub owns the upstream connection and the set of overlay clients.
type Hub struct {
	cfg Config

	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	upstream *websocket.Conn
}

// NewHub builds a hub; call Run to start the upstream loop.
func NewHub(cfg Config) *Hub {
	if cfg.OverlayID == "" {
		cfg.OverlayID = "overlay"
	}
	return &Hub{cfg: cfg, clients: make(map[*websocket.Conn]bool)}
}

// Enabled reports whether an upstream URL is configured.
func (h *Hub) Enabled() bool { return h.cfg.UpstreamURL != "" }

// Run maintains the upstream connection until ctx is cancelled or the
// reconnect budget is exhausted. Disabled hubs return immediately.
func (h *Hub) Run(ctx context.Context) {
	if !h.Enabled() {
		log.Printf("bridge: no upstream configured, bridge disabled")
		return
	}

	attempts := 0
	for {
		if err := h.connectAndPump(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			attempts++
			if attempts > maxReconnects {
				log.Printf("bridge: giving up after %d reconnect attempts", maxReconnects)
				return
			}
			delay := time.Duration(attempts) * reconnectBase
			if delay > reconnectMax {
				delay = reconnectMax
			}
			log.Printf("bridge: upstream lost (%v), reconnecting in %s (attempt %d/%d)", err, delay, attempts, maxReconnects)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
			continue
		}
		// Clean shutdown.
		return
	}
}

func (h *Hub) connectAndPump(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, h.cfg.UpstreamURL, nil)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", h.cfg.UpstreamURL, err)
	}
	defer conn.Close()

	sub := subscribeRequest{
		Request: "Subscribe",
		ID:      h.cfg.OverlayID,
		Events:  map[string][]string{"General": {"Custom"}},
	}
	if err := conn.WriteJSON(sub); err != nil {
		return fmt.Errorf("subscribing: %w", err)
	}
	log.Printf("bridge: connected to %s", h.cfg.UpstreamURL)

	h.mu.Lock()
	h.upstream = conn
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.upstream = nil
		h.mu.Unlock()
	}()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("reading: %w", err)
		}
		if payload, ok := customPayload(raw); ok {
			h.broadcast(payload)
		}
	}
}

// customPayload extracts the broadcast payload from a General.Custom
// event frame. Acknowledgement and unrelated frames yield nothing.
func customPayload(raw []byte) ([]byte, bool) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	if env.Status != "" || len(env.Data) == 0 {
		return nil, false
	}
	var hdr eventHeader
	if err := json.Unmarshal(env.Event, &hdr); err == nil && hdr.Type == "Custom" && hdr.Source == "General" {
		return env.Data, true
	}
	var name string
	if err := json.Unmarshal(env.Event, &name); err == nil && (name == "Custom" || name == "broadcast") {
		return env.Data, true
	}
	return nil, false
}

func (h *Hub) broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			c.Close()
			delete(h.clients, c)
		}
	}
}

// ClientCount reports connected overlays.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// DoAction forwards an action request upstream with a fresh request id.
func (h *Hub) DoAction(actionID string, args map[string]any) error {
	if actionID == "" {
		actionID = h.cfg.ReceiverActionID
	}
	if actionID == "" {
		return fmt.Errorf("no action id configured")
	}
	h.mu.Lock()
	conn := h.upstream
	h.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("upstream not connected")
	}
	req := doActionRequest{
		Request: "DoAction",
		ID:      uuid.NewString(),
		Action:  actionRef{ID: actionID},
		Args:    args,
	}
	return conn.WriteJSON(req)
}

// HandleOverlay upgrades an overlay browser source connection and serves
// it until it disconnects.
func (h *Hub) HandleOverlay(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("bridge: websocket upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("bridge: overlay read: %v", err)
			}
			return
		}
		var req overlayRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			continue
		}
		if req.Type != "doAction" {
			continue
		}
		if err := h.DoAction(req.Action, req.Args); err != nil {
			log.Printf("bridge: doAction: %v", err)
		}
	}
}
