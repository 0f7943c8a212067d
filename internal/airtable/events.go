package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/eventops/api/internal/store"
)

// FieldMap names the Airtable fields backing each Event attribute. Values
// may be field names or field ids.
type FieldMap struct {
	Name              string `json:"name"`
	ClientName        string `json:"client_name"`
	EventDate         string `json:"event_date"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	GuestCount        string `json:"guest_count"`
	PaperType         string `json:"paper_type"`
	ServicewareSource string `json:"serviceware_source"`
	CarafesPerTable   string `json:"carafes_per_table"`
	HasAppetizers     string `json:"has_appetizers"`
	HasDesserts       string `json:"has_desserts"`
	Plates            string `json:"plates"`
	Cutlery           string `json:"cutlery"`
	Glassware         string `json:"glassware"`
	ServicewareNotes  string `json:"serviceware_notes"`
	MenuItems         string `json:"menu_items"`

	// LastModified is a "Last modified time" field. Empty turns off the
	// stale write check.
	LastModified string `json:"last_modified"`

	MenuItemName     string `json:"menu_item_name"`
	MenuItemCategory string `json:"menu_item_category"`
}

// DefaultFieldMap matches the field names of the events base.
var DefaultFieldMap = FieldMap{
	Name:              "Event Name",
	ClientName:        "Client",
	EventDate:         "Event Date",
	StartTime:         "Start Time",
	EndTime:           "End Time",
	GuestCount:        "Guest Count",
	PaperType:         "Paper Type",
	ServicewareSource: "Serviceware Source",
	CarafesPerTable:   "Carafes Per Table",
	HasAppetizers:     "Has Appetizers",
	HasDesserts:       "Has Desserts",
	Plates:            "Plates",
	Cutlery:           "Cutlery",
	Glassware:         "Glassware",
	ServicewareNotes:  "Serviceware Notes",
	MenuItems:         "Menu Items",
	LastModified:      "Last Modified",
	MenuItemName:      "Item Name",
	MenuItemCategory:  "Category",
}

// ParseFieldMap reads a JSON object of overrides, keyed like the FieldMap
// json tags, on top of DefaultFieldMap. Empty input returns the defaults.
// Unknown keys and blank values are rejected, except last_modified which
// may be blanked to turn the stale write check off.
func ParseFieldMap(raw string) (FieldMap, error) {
	m := DefaultFieldMap
	if strings.TrimSpace(raw) == "" {
		return m, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return FieldMap{}, fmt.Errorf("parse field map: %w", err)
	}

	required := map[string]string{
		"name": m.Name, "client_name": m.ClientName, "event_date": m.EventDate,
		"start_time": m.StartTime, "end_time": m.EndTime, "guest_count": m.GuestCount,
		"paper_type": m.PaperType, "serviceware_source": m.ServicewareSource,
		"carafes_per_table": m.CarafesPerTable, "has_appetizers": m.HasAppetizers,
		"has_desserts": m.HasDesserts, "plates": m.Plates, "cutlery": m.Cutlery,
		"glassware": m.Glassware, "serviceware_notes": m.ServicewareNotes,
		"menu_items": m.MenuItems, "menu_item_name": m.MenuItemName,
		"menu_item_category": m.MenuItemCategory,
	}
	for key, v := range required {
		if strings.TrimSpace(v) == "" {
			return FieldMap{}, fmt.Errorf("parse field map: %s must not be empty", key)
		}
	}
	return m, nil
}

// EventStore reads and writes events in an Airtable base.
type EventStore struct {
	client      *Client
	eventsTable string
	menuTable   string
	fields      FieldMap
}

// NewEventStore creates an EventStore over the events and menu item tables.
func NewEventStore(client *Client, eventsTable, menuTable string, fields FieldMap) *EventStore {
	return &EventStore{
		client:      client,
		eventsTable: eventsTable,
		menuTable:   menuTable,
		fields:      fields,
	}
}

// ListEvents returns every event, without menu items.
func (s *EventStore) ListEvents(ctx context.Context) ([]store.Event, error) {
	records, err := s.client.ListRecords(ctx, s.eventsTable, ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events := make([]store.Event, len(records))
	for i, rec := range records {
		events[i] = s.toEvent(rec)
	}
	return events, nil
}

// GetEvent returns one event with its linked menu items.
func (s *EventStore) GetEvent(ctx context.Context, id string) (store.Event, error) {
	rec, err := s.client.GetRecord(ctx, s.eventsTable, id)
	if err != nil {
		if IsNotFound(err) {
			return store.Event{}, store.ErrEventNotFound
		}
		return store.Event{}, fmt.Errorf("get event: %w", err)
	}
	return s.withMenu(ctx, rec)
}

// UpdateServiceware writes the serviceware fields and returns the event as
// stored. With f.ExpectedUpdatedAt set and a LastModified field mapped, a
// record modified since then is left alone and store.ErrConflict returned.
// Airtable has no conditional PATCH, so the check and the write are two
// requests.
func (s *EventStore) UpdateServiceware(ctx context.Context, id string, f store.ServicewareFields) (store.Event, error) {
	if !f.ExpectedUpdatedAt.IsZero() && s.fields.LastModified != "" {
		cur, err := s.client.GetRecord(ctx, s.eventsTable, id)
		if err != nil {
			if IsNotFound(err) {
				return store.Event{}, store.ErrEventNotFound
			}
			return store.Event{}, fmt.Errorf("check event version: %w", err)
		}
		if !timeField(cur.Fields[s.fields.LastModified]).Equal(f.ExpectedUpdatedAt) {
			return store.Event{}, store.ErrConflict
		}
	}

	fields := map[string]any{
		s.fields.PaperType:         nullIfEmpty(f.PaperType),
		s.fields.ServicewareSource: nullIfEmpty(f.ServicewareSource),
		s.fields.CarafesPerTable:   f.CarafesPerTable,
		s.fields.Plates:            f.PlatesText,
		s.fields.Cutlery:           f.CutleryText,
		s.fields.Glassware:         f.GlasswareText,
		s.fields.ServicewareNotes:  f.ServicewareNotes,
	}

	rec, err := s.client.UpdateRecord(ctx, s.eventsTable, id, fields)
	if err != nil {
		if IsNotFound(err) {
			return store.Event{}, store.ErrEventNotFound
		}
		return store.Event{}, fmt.Errorf("update serviceware: %w", err)
	}
	return s.withMenu(ctx, rec)
}

func (s *EventStore) withMenu(ctx context.Context, rec Record) (store.Event, error) {
	e := s.toEvent(rec)

	ids := stringList(rec.Fields[s.fields.MenuItems])
	if len(ids) == 0 {
		return e, nil
	}

	menuRecords, err := s.client.ListRecords(ctx, s.menuTable, ListOptions{Formula: recordIDFormula(ids)})
	if err != nil {
		return store.Event{}, fmt.Errorf("list menu items: %w", err)
	}

	// Keep the order of the link field, not the table order.
	byID := make(map[string]Record, len(menuRecords))
	for _, r := range menuRecords {
		byID[r.ID] = r
	}
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			continue
		}
		e.MenuItems = append(e.MenuItems, store.MenuItem{
			ID:       r.ID,
			Name:     stringField(r.Fields[s.fields.MenuItemName]),
			Category: strings.ToLower(stringField(r.Fields[s.fields.MenuItemCategory])),
		})
	}
	return e, nil
}

func (s *EventStore) toEvent(rec Record) store.Event {
	f := rec.Fields
	return store.Event{
		ID:                rec.ID,
		Name:              stringField(f[s.fields.Name]),
		ClientName:        stringField(f[s.fields.ClientName]),
		EventDate:         stringField(f[s.fields.EventDate]),
		StartTime:         stringField(f[s.fields.StartTime]),
		EndTime:           stringField(f[s.fields.EndTime]),
		GuestCount:        intField(f[s.fields.GuestCount]),
		PaperType:         stringField(f[s.fields.PaperType]),
		ServicewareSource: stringField(f[s.fields.ServicewareSource]),
		CarafesPerTable:   intField(f[s.fields.CarafesPerTable]),
		HasAppetizers:     boolField(f[s.fields.HasAppetizers]),
		HasDesserts:       boolField(f[s.fields.HasDesserts]),
		PlatesText:        stringField(f[s.fields.Plates]),
		CutleryText:       stringField(f[s.fields.Cutlery]),
		GlasswareText:     stringField(f[s.fields.Glassware]),
		ServicewareNotes:  stringField(f[s.fields.ServicewareNotes]),
		UpdatedAt:         timeField(f[s.fields.LastModified]),
		MenuItems:         []store.MenuItem{},
	}
}

// recordIDFormula builds OR(RECORD_ID()='a',RECORD_ID()='b').
func recordIDFormula(ids []string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("RECORD_ID()='%s'", strings.ReplaceAll(id, "'", `\'`))
	}
	return "OR(" + strings.Join(parts, ",") + ")"
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// stringField reads text, single selects and lookup arrays (first value).
func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		if len(t) > 0 {
			return stringField(t[0])
		}
	}
	return ""
}

func intField(v any) int {
	switch t := v.(type) {
	case float64:
		return int(math.Round(t))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err == nil {
			return n
		}
	case []any:
		if len(t) > 0 {
			return intField(t[0])
		}
	}
	return 0
}

func boolField(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "yes") || strings.EqualFold(t, "true")
	}
	return false
}

// timeField reads an ISO 8601 timestamp; anything else is the zero time.
func timeField(v any) time.Time {
	t, err := time.Parse(time.RFC3339Nano, stringField(v))
	if err != nil {
		return time.Time{}
	}
	return t
}

func stringList(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, x := range arr {
		if s, ok := x.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
