package ws_session

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/NidaEsenn/CineMatch/internal/model"
)

type MessageType string

const (
	PerfectMatch MessageType = "perfect_match"
)

type Message struct {
	Type      MessageType            `json:"type"`
	SessionID string                 `json:"session_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID model.SessionID
}

type Hub struct {
	mu sync.RWMutex

	// Keep track of sets of Clients within each session
	sessions map[model.SessionID]map[*Client]bool

	logger *slog.Logger
}

func New(logger *slog.Logger) *Hub {
	return &Hub{
		sessions: make(map[model.SessionID]map[*Client]bool),
		logger:   logger,
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[client.SessionID]; !ok {
		h.sessions[client.SessionID] = make(map[*Client]bool)
	}
	h.sessions[client.SessionID][client] = true

	h.logger.Info("client registered", "session_id", client.SessionID)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if session, ok := h.sessions[client.SessionID]; ok {
		delete(session, client)
		if len(session) == 0 {
			delete(h.sessions, client.SessionID)
		}
	}
	h.logger.Info("client unregistered", "session_id", client.SessionID)
}

// NotifyPerfectMatch fans a match event out to every client watching
// the session. Slow clients are dropped rather than blocked on.
func (h *Hub) NotifyPerfectMatch(sessionID model.SessionID, movieID model.MovieID) {
	h.BroadcastToSession(sessionID, Message{
		Type:      PerfectMatch,
		SessionID: string(sessionID),
		Data: map[string]interface{}{
			"movie_id":  int64(movieID),
			"timestamp": time.Now().Unix(),
		},
	})
}

func (h *Hub) BroadcastToSession(sessionID model.SessionID, message Message) {
	// Write lock: dropping a slow client mutates the session set, and
	// broadcasts run concurrently on the swipe path.
	h.mu.Lock()
	defer h.mu.Unlock()

	messageBytes, _ := json.Marshal(message)

	clients, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	for client := range clients {
		select {
		case client.Send <- messageBytes:
		default:
			close(client.Send)
			delete(clients, client)
		}
	}
	if len(clients) == 0 {
		delete(h.sessions, sessionID)
	}
}

func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.Conn.Close()
	}()

	for {
		_, _, err := client.Conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		err := client.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			break
		}
	}
}
