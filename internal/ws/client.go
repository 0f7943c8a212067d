package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/eventops/api/internal/auth"
	"github.com/eventops/api/internal/enum"
	"github.com/eventops/api/internal/middleware"
	"github.com/eventops/api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins (we validate via JWT)
	},
}

// Client represents a single WebSocket connection
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	eventID string
	send    chan []byte
}

// ReadPump pumps messages from the WebSocket connection to the hub
// The application runs ReadPump in a per-connection goroutine
// Viewers never send messages; reading only detects disconnects
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Read loop - we just wait for disconnect or errors
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			break
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection, one
// JSON document per frame. The application runs WritePump in a
// per-connection goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// EventLookup resolves the event a client subscribes to.
// Satisfied by *store.Postgres and *airtable.EventStore.
type EventLookup interface {
	GetEvent(ctx context.Context, id string) (store.Event, error)
}

// ServeWS handles WebSocket requests from clients
// Endpoint: WS /ws/events/{eid}?token=JWT
func ServeWS(hub *Hub, jwtSecret string, events EventLookup, w http.ResponseWriter, r *http.Request) {
	tokenStr, err := middleware.TokenFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	claims, err := auth.ValidateToken(jwtSecret, tokenStr)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	ev, err := events.GetEvent(r.Context(), chi.URLParam(r, "eid"))
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: websocket get event: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:     hub,
		conn:    conn,
		eventID: ev.ID,
		send:    make(chan []byte, 256),
	}
	if ack, err := json.Marshal(subscribedAck(ev, claims.Role)); err == nil {
		client.send <- ack
	}
	client.hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}

// subscribedAck tells a new viewer which event it joined and whether its
// role may edit.
func subscribedAck(ev store.Event, role string) Event {
	payload, _ := json.Marshal(map[string]any{
		"event_id":   ev.ID,
		"event_name": ev.Name,
		"role":       role,
		"can_edit":   auth.CanEditServiceware(role),
	})
	return Event{Type: enum.EventSubscribed, Payload: payload}
}
