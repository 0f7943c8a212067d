// Package serviceware generates, edits and persists the plate, cutlery and
// glassware lists of an event.
//
// Lists are stored as plain text, one line per row:
//
//	• Dinner Plates (FoodWerx China) – 120
//	• Valet Tables (Client) – Provided by host
//
// Row ids are session-local and never written to the text.
package serviceware

import (
	"github.com/eventops/api/internal/enum"
	"github.com/google/uuid"
)

// Item is one serviceware row. A nil Qty means the quantity is not tracked
// (typically a client-provided row); zero is a real count.
type Item struct {
	ID       string `json:"id"`
	Item     string `json:"item"`
	Supplier string `json:"supplier"`
	Qty      *int   `json:"qty"`
}

// NewItem creates a row with a fresh id.
func NewItem(name, supplier string, qty *int) Item {
	return Item{
		ID:       uuid.NewString(),
		Item:     name,
		Supplier: supplier,
		Qty:      qty,
	}
}

// Qty returns a pointer to n, for building rows with a tracked quantity.
func Qty(n int) *int {
	return &n
}

// Kinds lists the three collections in display order.
var Kinds = []string{
	enum.ServicewareKindPlates,
	enum.ServicewareKindCutlery,
	enum.ServicewareKindGlassware,
}

// IsKind reports whether kind names one of the three collections.
func IsKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Collections holds the three independent serviceware lists of an event.
type Collections struct {
	Plates    []Item `json:"plates"`
	Cutlery   []Item `json:"cutlery"`
	Glassware []Item `json:"glassware"`
}

// Text is the persisted form of Collections, one blob per list.
type Text struct {
	Plates    string `json:"plates"`
	Cutlery   string `json:"cutlery"`
	Glassware string `json:"glassware"`
}

// EmptyCollections returns collections with non-nil, empty lists.
func EmptyCollections() Collections {
	return Collections{
		Plates:    []Item{},
		Cutlery:   []Item{},
		Glassware: []Item{},
	}
}

// Get returns the list for kind.
func (c *Collections) Get(kind string) ([]Item, bool) {
	switch kind {
	case enum.ServicewareKindPlates:
		return c.Plates, true
	case enum.ServicewareKindCutlery:
		return c.Cutlery, true
	case enum.ServicewareKindGlassware:
		return c.Glassware, true
	}
	return nil, false
}

// Set replaces the list for kind.
func (c *Collections) Set(kind string, items []Item) bool {
	switch kind {
	case enum.ServicewareKindPlates:
		c.Plates = items
	case enum.ServicewareKindCutlery:
		c.Cutlery = items
	case enum.ServicewareKindGlassware:
		c.Glassware = items
	default:
		return false
	}
	return true
}

// Add appends item to the list for kind, assigning an id if it has none.
func (c *Collections) Add(kind string, item Item) (Item, bool) {
	items, ok := c.Get(kind)
	if !ok {
		return Item{}, false
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	c.Set(kind, append(items, item))
	return item, true
}

// Update replaces the name, supplier and quantity of the row with id.
func (c *Collections) Update(kind, id, name, supplier string, qty *int) bool {
	items, ok := c.Get(kind)
	if !ok {
		return false
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Item = name
			items[i].Supplier = supplier
			items[i].Qty = qty
			return true
		}
	}
	return false
}

// Remove deletes the row with id, keeping the order of the others.
func (c *Collections) Remove(kind, id string) bool {
	items, ok := c.Get(kind)
	if !ok {
		return false
	}
	for i := range items {
		if items[i].ID == id {
			out := make([]Item, 0, len(items)-1)
			out = append(out, items[:i]...)
			out = append(out, items[i+1:]...)
			c.Set(kind, out)
			return true
		}
	}
	return false
}

// Format serializes the three lists.
func (c Collections) Format() Text {
	return Text{
		Plates:    FormatLines(c.Plates),
		Cutlery:   FormatLines(c.Cutlery),
		Glassware: FormatLines(c.Glassware),
	}
}

// ParseText rebuilds the three lists from their persisted blobs. Every row
// gets a fresh id.
func ParseText(t Text) Collections {
	return Collections{
		Plates:    ParseLines(t.Plates),
		Cutlery:   ParseLines(t.Cutlery),
		Glassware: ParseLines(t.Glassware),
	}
}

// Equivalent compares two lists on name, supplier and quantity, ignoring ids.
func Equivalent(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Item != b[i].Item || a[i].Supplier != b[i].Supplier {
			return false
		}
		if (a[i].Qty == nil) != (b[i].Qty == nil) {
			return false
		}
		if a[i].Qty != nil && *a[i].Qty != *b[i].Qty {
			return false
		}
	}
	return true
}
