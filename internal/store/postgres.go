package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres reads and writes events and users in PostgreSQL.
type Postgres struct {
	db DBTX
}

// NewPostgres creates a Postgres store on a pool, connection or transaction.
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

const eventColumns = `id, name, client_name, event_date, start_time, end_time, guest_count,
	paper_type, serviceware_source, carafes_per_table, has_appetizers, has_desserts,
	plates_text, cutlery_text, glassware_text, serviceware_notes, updated_at`

func scanEvent(row pgx.Row) (Event, error) {
	var e Event
	err := row.Scan(
		&e.ID, &e.Name, &e.ClientName, &e.EventDate, &e.StartTime, &e.EndTime, &e.GuestCount,
		&e.PaperType, &e.ServicewareSource, &e.CarafesPerTable, &e.HasAppetizers, &e.HasDesserts,
		&e.PlatesText, &e.CutleryText, &e.GlasswareText, &e.ServicewareNotes, &e.UpdatedAt,
	)
	return e, err
}

// ListEvents returns all events ordered by date, without menu items.
func (p *Postgres) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := p.db.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY event_date, name`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEvent returns one event with its menu items.
func (p *Postgres) GetEvent(ctx context.Context, id string) (Event, error) {
	e, err := scanEvent(p.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Event{}, ErrEventNotFound
		}
		return Event{}, fmt.Errorf("get event: %w", err)
	}

	items, err := p.listMenuItems(ctx, id)
	if err != nil {
		return Event{}, err
	}
	e.MenuItems = items
	return e, nil
}

func (p *Postgres) listMenuItems(ctx context.Context, eventID string) ([]MenuItem, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, name, category FROM menu_items WHERE event_id = $1 ORDER BY sort_order, id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	items := []MenuItem{}
	for rows.Next() {
		var mi MenuItem
		if err := rows.Scan(&mi.ID, &mi.Name, &mi.Category); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, mi)
	}
	return items, rows.Err()
}

// UpdateServiceware writes the serviceware fields of an event and returns
// the updated event. With f.ExpectedUpdatedAt set, a row changed since then
// is left alone and ErrConflict is returned.
func (p *Postgres) UpdateServiceware(ctx context.Context, id string, f ServicewareFields) (Event, error) {
	var expected any
	if !f.ExpectedUpdatedAt.IsZero() {
		expected = f.ExpectedUpdatedAt
	}

	tag, err := p.db.Exec(ctx, `
		UPDATE events SET
			paper_type = $2,
			serviceware_source = $3,
			carafes_per_table = $4,
			plates_text = $5,
			cutlery_text = $6,
			glassware_text = $7,
			serviceware_notes = $8,
			updated_at = clock_timestamp()
		WHERE id = $1 AND ($9::timestamptz IS NULL OR updated_at = $9)`,
		id, f.PaperType, f.ServicewareSource, f.CarafesPerTable,
		f.PlatesText, f.CutleryText, f.GlasswareText, f.ServicewareNotes, expected,
	)
	if err != nil {
		return Event{}, fmt.Errorf("update serviceware: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if expected == nil {
			return Event{}, ErrEventNotFound
		}
		var exists bool
		if err := p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists); err != nil {
			return Event{}, fmt.Errorf("check event: %w", err)
		}
		if !exists {
			return Event{}, ErrEventNotFound
		}
		return Event{}, ErrConflict
	}
	return p.GetEvent(ctx, id)
}

const userColumns = `id, email, hashed_password, full_name, role, is_active, created_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

// GetUserByEmail returns the active user with email.
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(p.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND is_active = true`, email))
}

// GetUserByID returns the active user with id.
func (p *Postgres) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	return scanUser(p.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND is_active = true`, id))
}
