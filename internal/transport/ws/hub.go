package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/scot00671234/wishwello/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgResponseReceived MessageType = "response_received"
	MsgPulseAlert       MessageType = "pulse_alert"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages dashboard WebSocket connections per team. A team can have
// several connections open at once (the same manager on multiple tabs).
type Hub struct {
	teamConns map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	log *logrus.Logger
}

// Connection represents one dashboard WebSocket connection
type Connection struct {
	TeamID    string
	ManagerID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast to one team's dashboards
type BroadcastMessage struct {
	TeamID  string
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub(log *logrus.Logger) *Hub {
	h := &Hub{
		teamConns:  make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.teamConns[conn.TeamID] == nil {
				h.teamConns[conn.TeamID] = make(map[*Connection]bool)
			}
			h.teamConns[conn.TeamID][conn] = true
			h.mu.Unlock()
			h.log.WithField("teamId", conn.TeamID).Debug("dashboard connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.teamConns[conn.TeamID]; ok && conns[conn] {
				delete(conns, conn)
				close(conn.Send)
				if len(conns) == 0 {
					delete(h.teamConns, conn.TeamID)
				}
			}
			h.mu.Unlock()
			h.log.WithField("teamId", conn.TeamID).Debug("dashboard disconnected")

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.teamConns[msg.TeamID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToTeam sends a message to every dashboard watching the team
// (implements service.Broadcaster)
func (h *Hub) BroadcastToTeam(teamID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		TeamID: teamID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// Notify pushes a pulse alert to connected dashboards (implements
// service.AlertSink)
func (h *Hub) Notify(ctx context.Context, alert model.PulseAlert) error {
	h.BroadcastToTeam(alert.TeamID, string(MsgPulseAlert), alert)
	return nil
}
