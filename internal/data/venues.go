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
)

type Venue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"-"`
	Version   int32     `json:"-"`
}

type VenueModel struct {
	*store.Table[Venue]
	db *sql.DB
}

func NewVenueModel(db *sql.DB) *VenueModel {
	cfg := store.TableConfig{
		Entity:  "venue",
		Table:   "venues",
		Columns: []string{"id", "name", "city", "capacity", "created_at", "version"},
		Fields: map[string]string{
			"name":     "name",
			"city":     "city",
			"capacity": "capacity",
		},
		Search: []string{"name", "city"},
		Associations: map[string]store.Association{
			"events": {Entity: "event", Column: "venue_id", Many: true},
		},
	}

	return &VenueModel{
		Table: store.NewTable[Venue](db, cfg, scanVenue),
		db:    db,
	}
}

func scanVenue(row store.Row) (*Venue, error) {
	var venue Venue
	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.City,
		&venue.Capacity,
		&venue.CreatedAt,
		&venue.Version,
	)
	if err != nil {
		return nil, err
	}

	return &venue, nil
}

func (m *VenueModel) Insert(venue *Venue) error {
	stmt := `
		INSERT INTO venues (id, name, city, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, version`

	if venue.ID == "" {
		venue.ID = uuid.NewString()
	}

	args := []any{
		venue.ID,
		venue.Name,
		venue.City,
		venue.Capacity,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return m.db.QueryRowContext(ctx, stmt, args...).Scan(&venue.CreatedAt, &venue.Version)
}

func (m *VenueModel) Update(venue *Venue) error {
	stmt := `
		UPDATE venues
		SET name = $1, city = $2, capacity = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version`

	args := []any{
		venue.Name,
		venue.City,
		venue.Capacity,
		venue.ID,
		venue.Version,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.db.QueryRowContext(ctx, stmt, args...).Scan(&venue.Version)
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

func (m *VenueModel) Delete(id string) error {
	stmt := `
		DELETE FROM venues
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

func ValidateVenue(v *validator.Validator, venue *Venue) {
	v.Check(venue.Name != "", "name", "must be provided")
	v.Check(len(venue.Name) <= 100, "name", "must be 100 characters or less")

	v.Check(venue.City != "", "city", "must be provided")
	v.Check(len(venue.City) <= 60, "city", "must be 60 characters or less")

	v.Check(venue.Capacity > 0, "capacity", "must be greater than zero")
	v.Check(venue.Capacity <= 500_000, "capacity", "must be 500,000 or less")
}

type VenueDto struct {
	Name     *string `json:"name,omitempty"`
	City     *string `json:"city,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
}

func (d *VenueDto) Load(venue *Venue) {
	name := venue.Name
	city := venue.City
	capacity := venue.Capacity

	d.Name = &name
	d.City = &city
	d.Capacity = &capacity
}

// Patch copies the non-nil fields of the peer over this instance. A peer of
// a different concrete type is a no-op.
func (d *VenueDto) Patch(other resource.Dto[Venue]) {
	o, ok := other.(*VenueDto)
	if !ok {
		return
	}

	if o.Name != nil {
		d.Name = o.Name
	}
	if o.City != nil {
		d.City = o.City
	}
	if o.Capacity != nil {
		d.Capacity = o.Capacity
	}
}

// Apply writes the set fields back onto the entity ahead of an update.
func (d *VenueDto) Apply(venue *Venue) {
	if d.Name != nil {
		venue.Name = *d.Name
	}
	if d.City != nil {
		venue.City = *d.City
	}
	if d.Capacity != nil {
		venue.Capacity = *d.Capacity
	}
}

type VenueForm struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}

func (f *VenueForm) Validate(v *validator.Validator) {
	ValidateVenue(v, &Venue{
		Name:     f.Name,
		City:     f.City,
		Capacity: f.Capacity,
	})
}
