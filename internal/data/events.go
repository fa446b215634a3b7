package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"EventDeskApi/internal/resource"
	"EventDeskApi/internal/store"
	"EventDeskApi/internal/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrVenueNotFound = errors.New("venue not found")

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCanceled  EventStatus = "canceled"
)

type Event struct {
	ID          string          `json:"id"`
	VenueID     string          `json:"venue_id"`
	Title       string          `json:"title"`
	StartsAt    time.Time       `json:"starts_at"`
	TicketPrice decimal.Decimal `json:"ticket_price"`
	Status      EventStatus     `json:"status"`
	CreatedAt   time.Time       `json:"-"`
	Version     int32           `json:"-"`
}

type EventModel struct {
	*store.Table[Event]
	db *sql.DB
}

func NewEventModel(db *sql.DB) *EventModel {
	cfg := store.TableConfig{
		Entity: "event",
		Table:  "events",
		Columns: []string{"id", "venue_id", "title", "starts_at", "ticket_price", "status",
			"created_at", "version"},
		Fields: map[string]string{
			"venue_id":  "venue_id",
			"title":     "title",
			"starts_at": "starts_at",
			"status":    "status",
		},
		Search: []string{"title"},
		Associations: map[string]store.Association{
			"venue": {Entity: "venue", Column: "venue_id"},
		},
	}

	return &EventModel{
		Table: store.NewTable[Event](db, cfg, scanEvent),
		db:    db,
	}
}

func scanEvent(row store.Row) (*Event, error) {
	var event Event
	err := row.Scan(
		&event.ID,
		&event.VenueID,
		&event.Title,
		&event.StartsAt,
		&event.TicketPrice,
		&event.Status,
		&event.CreatedAt,
		&event.Version,
	)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (m *EventModel) Insert(event *Event) error {
	stmt := `
		INSERT INTO events (id, venue_id, title, starts_at, ticket_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, version`

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Status == "" {
		event.Status = EventDraft
	}

	args := []any{
		event.ID,
		event.VenueID,
		event.Title,
		event.StartsAt,
		event.TicketPrice,
		event.Status,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.db.QueryRowContext(ctx, stmt, args...).Scan(&event.CreatedAt, &event.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: insert or update on table "events" violates foreign key`+
			` constraint "events_venue_id_fkey"`:
			return ErrVenueNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *EventModel) Update(event *Event) error {
	stmt := `
		UPDATE events
		SET venue_id = $1, title = $2, starts_at = $3, ticket_price = $4, status = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version`

	args := []any{
		event.VenueID,
		event.Title,
		event.StartsAt,
		event.TicketPrice,
		event.Status,
		event.ID,
		event.Version,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.db.QueryRowContext(ctx, stmt, args...).Scan(&event.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return store.ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

func (m *EventModel) Delete(id string) error {
	stmt := `
		DELETE FROM events
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := m.db.ExecContext(ctx, stmt, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrRecordNotFound
	}

	return nil
}

func ValidateEvent(v *validator.Validator, event *Event) {
	v.Check(event.Title != "", "title", "must be provided")
	v.Check(len(event.Title) <= 200, "title", "must be 200 characters or less")

	v.Check(event.VenueID != "", "venue_id", "must be provided")
	if event.VenueID != "" {
		_, err := uuid.Parse(event.VenueID)
		v.Check(err == nil, "venue_id", "must be a valid UUID")
	}

	v.Check(!event.StartsAt.IsZero(), "starts_at", "must be provided")

	v.Check(!event.TicketPrice.IsNegative(), "ticket_price", "must be zero or greater")
	v.Check(event.TicketPrice.LessThanOrEqual(decimal.NewFromInt(100_000)), "ticket_price",
		"must be 100,000 or less")

	v.Check(validator.PermittedValue(event.Status, EventDraft, EventPublished, EventCanceled),
		"status", `must be one of "draft", "published" or "canceled"`)
}

type EventDto struct {
	VenueID     *string          `json:"venue_id,omitempty"`
	Title       *string          `json:"title,omitempty"`
	StartsAt    *time.Time       `json:"starts_at,omitempty"`
	TicketPrice *decimal.Decimal `json:"ticket_price,omitempty"`
	Status      *EventStatus     `json:"status,omitempty"`
}

func (d *EventDto) Load(event *Event) {
	venueID := event.VenueID
	title := event.Title
	startsAt := event.StartsAt
	ticketPrice := event.TicketPrice
	status := event.Status

	d.VenueID = &venueID
	d.Title = &title
	d.StartsAt = &startsAt
	d.TicketPrice = &ticketPrice
	d.Status = &status
}

// Patch copies the non-nil fields of the peer over this instance. A peer of
// a different concrete type is a no-op.
func (d *EventDto) Patch(other resource.Dto[Event]) {
	o, ok := other.(*EventDto)
	if !ok {
		return
	}

	if o.VenueID != nil {
		d.VenueID = o.VenueID
	}
	if o.Title != nil {
		d.Title = o.Title
	}
	if o.StartsAt != nil {
		d.StartsAt = o.StartsAt
	}
	if o.TicketPrice != nil {
		d.TicketPrice = o.TicketPrice
	}
	if o.Status != nil {
		d.Status = o.Status
	}
}

// Apply writes the set fields back onto the entity ahead of an update.
func (d *EventDto) Apply(event *Event) {
	if d.VenueID != nil {
		event.VenueID = *d.VenueID
	}
	if d.Title != nil {
		event.Title = *d.Title
	}
	if d.StartsAt != nil {
		event.StartsAt = *d.StartsAt
	}
	if d.TicketPrice != nil {
		event.TicketPrice = *d.TicketPrice
	}
	if d.Status != nil {
		event.Status = *d.Status
	}
}

type EventForm struct {
	VenueID     string          `json:"venue_id"`
	Title       string          `json:"title"`
	StartsAt    time.Time       `json:"starts_at"`
	TicketPrice decimal.Decimal `json:"ticket_price"`
	Status      EventStatus     `json:"status"`
}

func (f *EventForm) Validate(v *validator.Validator) {
	status := f.Status
	if status == "" {
		status = EventDraft
	}

	ValidateEvent(v, &Event{
		VenueID:     f.VenueID,
		Title:       f.Title,
		StartsAt:    f.StartsAt,
		TicketPrice: f.TicketPrice,
		Status:      status,
	})
}
