package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventops/api/internal/enum"
	"github.com/eventops/api/internal/rowmatch"
	"github.com/eventops/api/internal/serviceware"
	"github.com/eventops/api/internal/store"
)

// Errors returned by the serviceware service.
var (
	ErrAutoFillDisabled = errors.New("auto-fill is disabled when serviceware is provided by the client or rentals")
	ErrUnknownPaperType = errors.New("paper_type is not set or not recognized")
	ErrInvalidKind      = errors.New("kind must be plates, cutlery or glassware")
	ErrItemIndex        = errors.New("item index out of range")
	ErrRowNotFound      = errors.New("serviceware row not found")
	ErrRowAmbiguous     = errors.New("serviceware row is ambiguous")
	ErrInvalidCount     = errors.New("count must be >= 0")
)

// EventStore defines the persistence methods needed by the serviceware and
// BEO services. Satisfied by *store.Postgres and *airtable.EventStore.
type EventStore interface {
	GetEvent(ctx context.Context, id string) (store.Event, error)
	UpdateServiceware(ctx context.Context, id string, f store.ServicewareFields) (store.Event, error)
}

// Notifier pushes a change to everyone watching an event.
type Notifier interface {
	Notify(eventID, eventType string, payload any)
}

// ServicewareState is the editable serviceware view of an event.
type ServicewareState struct {
	EventID           string                  `json:"event_id"`
	GuestCount        int                     `json:"guest_count"`
	PaperType         string                  `json:"paper_type"`
	ServicewareSource string                  `json:"serviceware_source"`
	CarafesPerTable   int                     `json:"carafes_per_table"`
	Notes             string                  `json:"notes"`
	AutoFillEnabled   bool                    `json:"auto_fill_enabled"`
	Items             serviceware.Collections `json:"items"`
	Text              serviceware.Text        `json:"text"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// ReplaceRequest overwrites the whole serviceware section.
type ReplaceRequest struct {
	PaperType         string
	ServicewareSource string
	CarafesPerTable   int
	Notes             string
	Items             serviceware.Collections

	// ExpectedUpdatedAt rejects the replace with store.ErrConflict when the
	// event changed after the client loaded it. Zero overwrites.
	ExpectedUpdatedAt time.Time
}

// AutoFillRequest overrides the event values used for generation. Nil
// fields fall back to the event.
type AutoFillRequest struct {
	PaperType                *string
	GuestCount               *int
	HasAppetizersAndDesserts *bool
	CarafesPerTable          *int
}

// ItemInput is a single row edit.
type ItemInput struct {
	Item     string
	Supplier string
	Qty      *int
}

// CountsRequest overrides the China per-table rows. Nil leaves a row as is.
type CountsRequest struct {
	SaltPepperShakers *int
	BreadBaskets      *int
}

// ServicewareService handles loading, generating and editing an event's
// serviceware lists. Every write goes through the line serializer.
type ServicewareService struct {
	events   EventStore
	notifier Notifier
}

// NewServicewareService creates a new ServicewareService. notifier may be nil.
func NewServicewareService(events EventStore, notifier Notifier) *ServicewareService {
	return &ServicewareService{events: events, notifier: notifier}
}

// AutoFillEnabled reports whether the generator may run for a source.
func AutoFillEnabled(source string) bool {
	return source != enum.ServicewareSourceClient && source != enum.ServicewareSourceRentals
}

// StateFromEvent parses the stored text of ev into a ServicewareState.
func StateFromEvent(ev store.Event) *ServicewareState {
	text := serviceware.Text{
		Plates:    ev.PlatesText,
		Cutlery:   ev.CutleryText,
		Glassware: ev.GlasswareText,
	}
	return &ServicewareState{
		EventID:           ev.ID,
		GuestCount:        ev.GuestCount,
		PaperType:         ev.PaperType,
		ServicewareSource: ev.ServicewareSource,
		CarafesPerTable:   ev.CarafesPerTable,
		Notes:             ev.ServicewareNotes,
		AutoFillEnabled:   AutoFillEnabled(ev.ServicewareSource),
		Items:             serviceware.ParseText(text),
		Text:              text,
		UpdatedAt:         ev.UpdatedAt,
	}
}

// Get loads the serviceware of an event.
func (s *ServicewareService) Get(ctx context.Context, eventID string) (*ServicewareState, error) {
	ev, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return StateFromEvent(ev), nil
}

// Replace overwrites lists and selections in one write.
func (s *ServicewareService) Replace(ctx context.Context, eventID string, req ReplaceRequest) (*ServicewareState, error) {
	fields := store.ServicewareFields{
		PaperType:         req.PaperType,
		ServicewareSource: req.ServicewareSource,
		CarafesPerTable:   max(0, req.CarafesPerTable),
		ServicewareNotes:  req.Notes,
		ExpectedUpdatedAt: req.ExpectedUpdatedAt,
	}
	return s.save(ctx, eventID, fields, req.Items)
}

// AutoFill regenerates all three lists from the tier template, replacing
// whatever was there.
func (s *ServicewareService) AutoFill(ctx context.Context, eventID string, req AutoFillRequest) (*ServicewareState, error) {
	ev, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !AutoFillEnabled(ev.ServicewareSource) {
		return nil, ErrAutoFillDisabled
	}

	paperType := ev.PaperType
	if req.PaperType != nil {
		paperType = *req.PaperType
	}
	if _, ok := serviceware.ResolveTier(paperType); !ok {
		return nil, ErrUnknownPaperType
	}

	guests := ev.GuestCount
	if req.GuestCount != nil {
		guests = *req.GuestCount
	}
	both := ev.HasAppetizers && ev.HasDesserts
	if req.HasAppetizersAndDesserts != nil {
		both = *req.HasAppetizersAndDesserts
	}
	carafes := ev.CarafesPerTable
	if req.CarafesPerTable != nil {
		carafes = max(0, *req.CarafesPerTable)
	}

	fields := ev.ServicewareFields()
	fields.PaperType = paperType
	fields.CarafesPerTable = carafes
	fields.ExpectedUpdatedAt = ev.UpdatedAt
	items := serviceware.AutoFill(paperType, guests, both, carafes)
	return s.save(ctx, eventID, fields, items)
}

// AddItem appends a row to the kind list.
func (s *ServicewareService) AddItem(ctx context.Context, eventID, kind string, in ItemInput) (*ServicewareState, error) {
	return s.edit(ctx, eventID, kind, func(items []serviceware.Item) ([]serviceware.Item, error) {
		return append(items, serviceware.NewItem(in.Item, in.Supplier, in.Qty)), nil
	})
}

// UpdateItem rewrites the row at index.
func (s *ServicewareService) UpdateItem(ctx context.Context, eventID, kind string, index int, in ItemInput) (*ServicewareState, error) {
	return s.edit(ctx, eventID, kind, func(items []serviceware.Item) ([]serviceware.Item, error) {
		if index < 0 || index >= len(items) {
			return nil, ErrItemIndex
		}
		items[index].Item = in.Item
		items[index].Supplier = in.Supplier
		items[index].Qty = in.Qty
		return items, nil
	})
}

// RemoveItem deletes the row at index.
func (s *ServicewareService) RemoveItem(ctx context.Context, eventID, kind string, index int) (*ServicewareState, error) {
	return s.edit(ctx, eventID, kind, func(items []serviceware.Item) ([]serviceware.Item, error) {
		if index < 0 || index >= len(items) {
			return nil, ErrItemIndex
		}
		out := make([]serviceware.Item, 0, len(items)-1)
		out = append(out, items[:index]...)
		return append(out, items[index+1:]...), nil
	})
}

// SetChinaCounts overrides the shaker and bread basket rows in the plates
// list. The rows are found by name, so they survive staff renaming them to
// e.g. "Salt & Pepper Shakers".
func (s *ServicewareService) SetChinaCounts(ctx context.Context, eventID string, req CountsRequest) (*ServicewareState, error) {
	return s.edit(ctx, eventID, enum.ServicewareKindPlates, func(items []serviceware.Item) ([]serviceware.Item, error) {
		names := make([]string, len(items))
		for i, it := range items {
			names[i] = it.Item
		}
		m := rowmatch.New(names)

		set := func(n *int, label string, phrases []string) error {
			if n == nil {
				return nil
			}
			if *n < 0 {
				return ErrInvalidCount
			}
			res := m.Match(phrases...)
			switch res.Status {
			case rowmatch.Ambiguous:
				return fmt.Errorf("%s: %w", label, ErrRowAmbiguous)
			case rowmatch.Unmatched:
				return fmt.Errorf("%s: %w", label, ErrRowNotFound)
			}
			items[res.Index].Qty = serviceware.Qty(*n)
			return nil
		}

		if err := set(req.SaltPepperShakers, "salt_pepper_shakers", rowmatch.SaltPepperPhrases); err != nil {
			return nil, err
		}
		if err := set(req.BreadBaskets, "bread_baskets", rowmatch.BreadBasketPhrases); err != nil {
			return nil, err
		}
		return items, nil
	})
}

func (s *ServicewareService) edit(ctx context.Context, eventID, kind string, fn func([]serviceware.Item) ([]serviceware.Item, error)) (*ServicewareState, error) {
	if !serviceware.IsKind(kind) {
		return nil, ErrInvalidKind
	}
	ev, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	state := StateFromEvent(ev)
	items, _ := state.Items.Get(kind)
	items, err = fn(items)
	if err != nil {
		return nil, err
	}
	state.Items.Set(kind, items)

	// Another writer between our read and this save makes the store
	// return ErrConflict rather than silently dropping their change.
	fields := ev.ServicewareFields()
	fields.ExpectedUpdatedAt = ev.UpdatedAt
	return s.save(ctx, eventID, fields, state.Items)
}

func (s *ServicewareService) save(ctx context.Context, eventID string, fields store.ServicewareFields, items serviceware.Collections) (*ServicewareState, error) {
	text := items.Format()
	fields.PlatesText = text.Plates
	fields.CutleryText = text.Cutlery
	fields.GlasswareText = text.Glassware

	ev, err := s.events.UpdateServiceware(ctx, eventID, fields)
	if err != nil {
		return nil, fmt.Errorf("save serviceware: %w", err)
	}

	state := StateFromEvent(ev)
	if s.notifier != nil {
		s.notifier.Notify(eventID, enum.EventServicewareUpdated, state)
	}
	return state, nil
}
