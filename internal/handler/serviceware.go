package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/eventops/api/internal/middleware"
	"github.com/eventops/api/internal/service"
	"github.com/eventops/api/internal/serviceware"
	"github.com/eventops/api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// ServicewareServicer defines the service methods needed by serviceware
// handlers. Satisfied by *service.ServicewareService.
type ServicewareServicer interface {
	Get(ctx context.Context, eventID string) (*service.ServicewareState, error)
	Replace(ctx context.Context, eventID string, req service.ReplaceRequest) (*service.ServicewareState, error)
	AutoFill(ctx context.Context, eventID string, req service.AutoFillRequest) (*service.ServicewareState, error)
	AddItem(ctx context.Context, eventID, kind string, in service.ItemInput) (*service.ServicewareState, error)
	UpdateItem(ctx context.Context, eventID, kind string, index int, in service.ItemInput) (*service.ServicewareState, error)
	RemoveItem(ctx context.Context, eventID, kind string, index int) (*service.ServicewareState, error)
	SetChinaCounts(ctx context.Context, eventID string, req service.CountsRequest) (*service.ServicewareState, error)
}

// ServicewareHandler handles the serviceware section of an event.
type ServicewareHandler struct {
	svc      ServicewareServicer
	validate *validator.Validate
}

// NewServicewareHandler creates a new ServicewareHandler.
func NewServicewareHandler(svc ServicewareServicer, validate *validator.Validate) *ServicewareHandler {
	return &ServicewareHandler{svc: svc, validate: validate}
}

// RegisterRoutes registers serviceware endpoints on the given Chi router.
// Expected to be mounted at /events/{eid}/serviceware. Writes are limited
// to coordinators and admins.
func (h *ServicewareHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireEditor())
		r.Put("/", h.Replace)
		r.Post("/autofill", h.AutoFill)
		r.Put("/counts", h.SetCounts)
		r.Post("/{kind}/items", h.AddItem)
		r.Put("/{kind}/items/{index}", h.UpdateItem)
		r.Delete("/{kind}/items/{index}", h.RemoveItem)
	})
}

// --- Request types ---

type itemRequest struct {
	Item     string `json:"item" validate:"required,max=200"`
	Supplier string `json:"supplier" validate:"max=100"`
	Qty      *int   `json:"qty" validate:"omitempty,gte=0"`
}

// rowRequest is one row of a full replace. A blank item is a draft row;
// it is accepted and left out of the saved text.
type rowRequest struct {
	Item     string `json:"item" validate:"max=200"`
	Supplier string `json:"supplier" validate:"max=100"`
	Qty      *int   `json:"qty" validate:"omitempty,gte=0"`
}

type collectionsRequest struct {
	Plates    []rowRequest `json:"plates" validate:"dive"`
	Cutlery   []rowRequest `json:"cutlery" validate:"dive"`
	Glassware []rowRequest `json:"glassware" validate:"dive"`
}

type replaceServicewareRequest struct {
	PaperType         string             `json:"paper_type"`
	ServicewareSource string             `json:"serviceware_source" validate:"omitempty,oneof=FoodWerx Client Rentals"`
	CarafesPerTable   int                `json:"carafes_per_table" validate:"gte=0,lte=20"`
	Notes             string             `json:"notes"`
	Items             collectionsRequest `json:"items"`
	UpdatedAt         *time.Time         `json:"updated_at"`
}

type autoFillRequest struct {
	PaperType                *string `json:"paper_type"`
	GuestCount               *int    `json:"guest_count" validate:"omitempty,gte=0,max_guests"`
	HasAppetizersAndDesserts *bool   `json:"has_appetizers_and_desserts"`
	CarafesPerTable          *int    `json:"carafes_per_table" validate:"omitempty,gte=0,lte=20"`
}

type countsRequest struct {
	SaltPepperShakers *int `json:"salt_pepper_shakers" validate:"omitempty,gte=0"`
	BreadBaskets      *int `json:"bread_baskets" validate:"omitempty,gte=0"`
}

func (it itemRequest) input() service.ItemInput {
	return service.ItemInput{Item: it.Item, Supplier: it.Supplier, Qty: it.Qty}
}

func toItems(reqs []rowRequest) []serviceware.Item {
	items := make([]serviceware.Item, len(reqs))
	for i, it := range reqs {
		items[i] = serviceware.NewItem(it.Item, it.Supplier, it.Qty)
	}
	return items
}

// --- Handlers ---

// Get returns the parsed serviceware of an event.
func (h *ServicewareHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.Get(r.Context(), chi.URLParam(r, "eid"))
	h.respond(w, state, err)
}

// Replace overwrites the whole section.
func (h *ServicewareHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req replaceServicewareRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	var expected time.Time
	if req.UpdatedAt != nil {
		expected = *req.UpdatedAt
	}
	state, err := h.svc.Replace(r.Context(), chi.URLParam(r, "eid"), service.ReplaceRequest{
		PaperType:         req.PaperType,
		ServicewareSource: req.ServicewareSource,
		CarafesPerTable:   req.CarafesPerTable,
		Notes:             req.Notes,
		Items: serviceware.Collections{
			Plates:    toItems(req.Items.Plates),
			Cutlery:   toItems(req.Items.Cutlery),
			Glassware: toItems(req.Items.Glassware),
		},
		ExpectedUpdatedAt: expected,
	})
	h.respond(w, state, err)
}

// AutoFill regenerates the lists from the event's tier.
func (h *ServicewareHandler) AutoFill(w http.ResponseWriter, r *http.Request) {
	var req autoFillRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	state, err := h.svc.AutoFill(r.Context(), chi.URLParam(r, "eid"), service.AutoFillRequest{
		PaperType:                req.PaperType,
		GuestCount:               req.GuestCount,
		HasAppetizersAndDesserts: req.HasAppetizersAndDesserts,
		CarafesPerTable:          req.CarafesPerTable,
	})
	h.respond(w, state, err)
}

// SetCounts overrides the China shaker and bread basket rows.
func (h *ServicewareHandler) SetCounts(w http.ResponseWriter, r *http.Request) {
	var req countsRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	state, err := h.svc.SetChinaCounts(r.Context(), chi.URLParam(r, "eid"), service.CountsRequest{
		SaltPepperShakers: req.SaltPepperShakers,
		BreadBaskets:      req.BreadBaskets,
	})
	h.respond(w, state, err)
}

// AddItem appends one row.
func (h *ServicewareHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	state, err := h.svc.AddItem(r.Context(), chi.URLParam(r, "eid"), chi.URLParam(r, "kind"), req.input())
	if err == nil {
		writeJSON(w, http.StatusCreated, state)
		return
	}
	h.respond(w, nil, err)
}

// UpdateItem rewrites the row at {index}.
func (h *ServicewareHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, ok := parseIndex(w, r)
	if !ok {
		return
	}
	var req itemRequest
	if !decodeAndValidate(w, r, h.validate, &req) {
		return
	}
	state, err := h.svc.UpdateItem(r.Context(), chi.URLParam(r, "eid"), chi.URLParam(r, "kind"), index, req.input())
	h.respond(w, state, err)
}

// RemoveItem deletes the row at {index}.
func (h *ServicewareHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, ok := parseIndex(w, r)
	if !ok {
		return
	}
	state, err := h.svc.RemoveItem(r.Context(), chi.URLParam(r, "eid"), chi.URLParam(r, "kind"), index)
	h.respond(w, state, err)
}

// --- Helpers ---

func parseIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item index"})
		return 0, false
	}
	return index, true
}

func (h *ServicewareHandler) respond(w http.ResponseWriter, state *service.ServicewareState, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, state)
		return
	}

	switch {
	case errors.Is(err, store.ErrEventNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
	case errors.Is(err, store.ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": store.ErrConflict.Error()})
	case errors.Is(err, service.ErrItemIndex):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrAutoFillDisabled):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrRowNotFound), errors.Is(err, service.ErrRowAmbiguous):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownPaperType),
		errors.Is(err, service.ErrInvalidKind),
		errors.Is(err, service.ErrInvalidCount):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: serviceware: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
