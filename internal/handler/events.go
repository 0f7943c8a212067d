package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/eventops/api/internal/service"
	"github.com/eventops/api/internal/store"
	"github.com/go-chi/chi/v5"
)

// EventStore defines the read methods needed by event handlers.
// Satisfied by *store.Postgres and *airtable.EventStore.
type EventStore interface {
	ListEvents(ctx context.Context) ([]store.Event, error)
	GetEvent(ctx context.Context, id string) (store.Event, error)
}

// BEOBuilder assembles the print view. Satisfied by *service.BEOService.
type BEOBuilder interface {
	Build(ctx context.Context, eventID string) (*service.BEO, error)
}

// EventHandler handles event read endpoints.
type EventHandler struct {
	store EventStore
	beo   BEOBuilder
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(store EventStore, beo BEOBuilder) *EventHandler {
	return &EventHandler{store: store, beo: beo}
}

// RegisterRoutes registers event endpoints on the given Chi router.
// Expected to be mounted at /events.
func (h *EventHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{eid}", h.Get)
	r.Get("/{eid}/beo", h.BEO)
}

type eventSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ClientName string `json:"client_name"`
	EventDate  string `json:"event_date"`
	GuestCount int    `json:"guest_count"`
	PaperType  string `json:"paper_type"`
}

// List returns a summary of every event.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.ListEvents(r.Context())
	if err != nil {
		log.Printf("ERROR: list events: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]eventSummary, len(events))
	for i, ev := range events {
		resp[i] = eventSummary{
			ID:         ev.ID,
			Name:       ev.Name,
			ClientName: ev.ClientName,
			EventDate:  ev.EventDate,
			GuestCount: ev.GuestCount,
			PaperType:  ev.PaperType,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single event with its menu.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	ev, err := h.store.GetEvent(r.Context(), chi.URLParam(r, "eid"))
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
			return
		}
		log.Printf("ERROR: get event: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if ev.MenuItems == nil {
		ev.MenuItems = []store.MenuItem{}
	}
	writeJSON(w, http.StatusOK, ev)
}

// BEO returns the print view of an event.
func (h *EventHandler) BEO(w http.ResponseWriter, r *http.Request) {
	beo, err := h.beo.Build(r.Context(), chi.URLParam(r, "eid"))
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
			return
		}
		log.Printf("ERROR: build beo: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, beo)
}
