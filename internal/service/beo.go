package service

import (
	"context"

	"github.com/eventops/api/internal/autospec"
	"github.com/eventops/api/internal/enum"
	"github.com/eventops/api/internal/serviceware"
)

// BEO is the printable banquet event order.
type BEO struct {
	EventID     string                  `json:"event_id"`
	Name        string                  `json:"name"`
	ClientName  string                  `json:"client_name"`
	EventDate   string                  `json:"event_date"`
	StartTime   string                  `json:"start_time"`
	EndTime     string                  `json:"end_time"`
	GuestCount  int                     `json:"guest_count"`
	Menu        []BEOMenuItem           `json:"menu"`
	Buffet      autospec.BuffetSplit    `json:"buffet"`
	PaperType   string                  `json:"paper_type"`
	Serviceware serviceware.Collections `json:"serviceware"`
	Notes       string                  `json:"serviceware_notes"`
	// NeedsReview is set when any menu item is flagged or carries a
	// verification note.
	NeedsReview bool `json:"needs_review"`
}

// BEOMenuItem is one menu line sized for the guest count.
type BEOMenuItem struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Sauce    *string       `json:"sauce"`
	Category string        `json:"category"`
	Spec     autospec.Spec `json:"spec"`
}

// BEOService assembles the print view of an event.
type BEOService struct {
	events EventStore
}

// NewBEOService creates a new BEOService.
func NewBEOService(events EventStore) *BEOService {
	return &BEOService{events: events}
}

// Build loads an event and computes every derived value the print view
// shows.
func (s *BEOService) Build(ctx context.Context, eventID string) (*BEO, error) {
	ev, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	beo := &BEO{
		EventID:    ev.ID,
		Name:       ev.Name,
		ClientName: ev.ClientName,
		EventDate:  ev.EventDate,
		StartTime:  autospec.FormatTime(ev.StartTime),
		EndTime:    autospec.FormatTime(ev.EndTime),
		GuestCount: ev.GuestCount,
		Menu:       make([]BEOMenuItem, 0, len(ev.MenuItems)),
		PaperType:  ev.PaperType,
		Notes:      ev.ServicewareNotes,
		Serviceware: serviceware.ParseText(serviceware.Text{
			Plates:    ev.PlatesText,
			Cutlery:   ev.CutleryText,
			Glassware: ev.GlasswareText,
		}),
	}

	var buffetIDs []string
	for _, mi := range ev.MenuItems {
		name := autospec.ParseMenuItem(mi.Name)
		spec := autospec.Calculate(name.Name, mi.Category, ev.GuestCount)
		if spec.NeedsReview() {
			beo.NeedsReview = true
		}
		if mi.Category == enum.FoodCategoryBuffet {
			buffetIDs = append(buffetIDs, mi.ID)
		}
		beo.Menu = append(beo.Menu, BEOMenuItem{
			ID:       mi.ID,
			Name:     name.Name,
			Sauce:    name.Sauce,
			Category: mi.Category,
			Spec:     spec,
		})
	}
	beo.Buffet = autospec.SplitBuffetItems(buffetIDs)

	return beo, nil
}
