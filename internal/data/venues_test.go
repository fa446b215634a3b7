package data

import (
	"testing"

	"EventDeskApi/internal/assert"
	"EventDeskApi/internal/validator"
)

func TestVenueDtoLoad(t *testing.T) {
	venue := &Venue{ID: "42", Name: "Alice Hall", City: "Lisbon", Capacity: 1200}

	var dto VenueDto
	dto.Load(venue)

	assert.Equal(t, *dto.Name, "Alice Hall")
	assert.Equal(t, *dto.City, "Lisbon")
	assert.Equal(t, *dto.Capacity, 1200)

	// Load copies values; mutating the entity afterwards must not leak in.
	venue.Name = "Renamed"
	assert.Equal(t, *dto.Name, "Alice Hall")
}

func TestVenueDtoPatch(t *testing.T) {
	bob := "Bob Arena"

	tests := []struct {
		name     string
		patch    VenueDto
		wantName string
		wantCity string
	}{
		{
			name:     "Set Field Overrides",
			patch:    VenueDto{Name: &bob},
			wantName: "Bob Arena",
			wantCity: "Lisbon",
		},
		{
			name:     "Unset Fields Keep Loaded Values",
			patch:    VenueDto{},
			wantName: "Alice Hall",
			wantCity: "Lisbon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dto VenueDto
			dto.Load(&Venue{Name: "Alice Hall", City: "Lisbon", Capacity: 1200})
			dto.Patch(&tt.patch)

			assert.Equal(t, *dto.Name, tt.wantName)
			assert.Equal(t, *dto.City, tt.wantCity)
		})
	}
}

func TestVenueDtoApply(t *testing.T) {
	venue := &Venue{Name: "Alice Hall", City: "Lisbon", Capacity: 1200}

	city := "Porto"
	dto := VenueDto{City: &city}
	dto.Apply(venue)

	assert.Equal(t, venue.Name, "Alice Hall")
	assert.Equal(t, venue.City, "Porto")
	assert.Equal(t, venue.Capacity, 1200)
}

func TestValidateVenue(t *testing.T) {
	tests := []struct {
		name    string
		venue   Venue
		wantKey string
	}{
		{
			name:    "Missing Name",
			venue:   Venue{City: "Lisbon", Capacity: 100},
			wantKey: "name",
		},
		{
			name:    "Missing City",
			venue:   Venue{Name: "Alice Hall", Capacity: 100},
			wantKey: "city",
		},
		{
			name:    "Zero Capacity",
			venue:   Venue{Name: "Alice Hall", City: "Lisbon"},
			wantKey: "capacity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateVenue(v, &tt.venue)
			if v.Valid() {
				t.Fatal("expected validation failure")
			}
			if _, ok := v.Errors[tt.wantKey]; !ok {
				t.Errorf("expected error for key %q, got %v", tt.wantKey, v.Errors)
			}
		})
	}

	v := validator.New()
	ValidateVenue(v, &Venue{Name: "Alice Hall", City: "Lisbon", Capacity: 100})
	assert.Equal(t, v.Valid(), true)
}

func TestVenueModelMetadata(t *testing.T) {
	model := NewVenueModel(nil)

	assert.Equal(t, model.EntityName(), "venue")
	assert.StringSliceEqual(t, model.Fields(), []string{"capacity", "city", "name"})
	assert.Equal(t, model.Associations()["events"].Entity, "event")
}
