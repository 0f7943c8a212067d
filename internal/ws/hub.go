package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is a WebSocket message broadcast to everyone viewing an event.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// roomEvent routes an Event to one room.
type roomEvent struct {
	EventID string
	Event   Event
}

// Hub keeps one room of clients per catering event and fans messages out to
// the room.
type Hub struct {
	// Registered clients by event ID
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	broadcast chan *roomEvent

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *roomEvent, 256),
	}
}

// Run starts the hub's main loop
// This should be called as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.eventID] == nil {
				h.rooms[client.eventID] = make(map[*Client]bool)
			}
			h.rooms[client.eventID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			message, err := json.Marshal(msg.Event)
			if err != nil {
				continue
			}

			h.mu.Lock()
			for client := range h.rooms[msg.EventID] {
				select {
				case client.send <- message:
				default:
					// Slow client, drop it
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.rooms[client.eventID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.eventID)
	}
}

// BroadcastToEvent sends an event to all clients viewing eventID
func (h *Hub) BroadcastToEvent(eventID string, event Event) {
	h.broadcast <- &roomEvent{
		EventID: eventID,
		Event:   event,
	}
}

// Notify marshals payload and broadcasts it under eventType.
func (h *Hub) Notify(eventID, eventType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: marshal %s payload: %v", eventType, err)
		return
	}
	h.BroadcastToEvent(eventID, Event{Type: eventType, Payload: raw})
}
