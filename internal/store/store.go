// Package store defines the event and user records shared by the
// persistence backends.
package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrUserNotFound  = errors.New("user not found")

	// ErrConflict means the event changed after the caller read it.
	ErrConflict = errors.New("event was changed by someone else; reload and retry")
)

// Event is a banquet event order as read from the system of record.
type Event struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	ClientName        string     `json:"client_name"`
	EventDate         string     `json:"event_date"`
	StartTime         string     `json:"start_time"`
	EndTime           string     `json:"end_time"`
	GuestCount        int        `json:"guest_count"`
	PaperType         string     `json:"paper_type"`
	ServicewareSource string     `json:"serviceware_source"`
	CarafesPerTable   int        `json:"carafes_per_table"`
	HasAppetizers     bool       `json:"has_appetizers"`
	HasDesserts       bool       `json:"has_desserts"`
	PlatesText        string     `json:"plates_text"`
	CutleryText       string     `json:"cutlery_text"`
	GlasswareText     string     `json:"glassware_text"`
	ServicewareNotes  string     `json:"serviceware_notes"`
	MenuItems         []MenuItem `json:"menu_items"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// MenuItem is one dish on an event menu. Name may span several lines; the
// lines after the first describe the sauce.
type MenuItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ServicewareFields is the writable serviceware subset of an Event.
type ServicewareFields struct {
	PaperType         string
	ServicewareSource string
	CarafesPerTable   int
	PlatesText        string
	CutleryText       string
	GlasswareText     string
	ServicewareNotes  string

	// ExpectedUpdatedAt makes the write conditional on the event still
	// carrying this UpdatedAt. Zero writes unconditionally.
	ExpectedUpdatedAt time.Time
}

// ServicewareFields returns the serviceware subset of e.
func (e Event) ServicewareFields() ServicewareFields {
	return ServicewareFields{
		PaperType:         e.PaperType,
		ServicewareSource: e.ServicewareSource,
		CarafesPerTable:   e.CarafesPerTable,
		PlatesText:        e.PlatesText,
		CutleryText:       e.CutleryText,
		GlasswareText:     e.GlasswareText,
		ServicewareNotes:  e.ServicewareNotes,
	}
}

// User is a staff account.
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	FullName       string
	Role           string
	IsActive       bool
	CreatedAt      time.Time
}
