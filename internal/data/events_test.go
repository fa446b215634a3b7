package data

import (
	"testing"
	"time"

	"EventDeskApi/internal/assert"
	"EventDeskApi/internal/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func validEvent() Event {
	return Event{
		VenueID:     uuid.NewString(),
		Title:       "Opening Night",
		StartsAt:    time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC),
		TicketPrice: decimal.NewFromFloat(25.50),
		Status:      EventPublished,
	}
}

func TestEventDtoLoadThenPatch(t *testing.T) {
	event := validEvent()

	var dto EventDto
	dto.Load(&event)
	assert.Equal(t, *dto.Title, "Opening Night")

	newTitle := "Closing Night"
	canceled := EventCanceled
	dto.Patch(&EventDto{Title: &newTitle, Status: &canceled})

	assert.Equal(t, *dto.Title, "Closing Night")
	assert.Equal(t, *dto.Status, EventCanceled)
	assert.Equal(t, *dto.VenueID, event.VenueID)
	if !dto.TicketPrice.Equal(event.TicketPrice) {
		t.Errorf("got ticket price %s; want %s", dto.TicketPrice, event.TicketPrice)
	}
}

func TestEventDtoApply(t *testing.T) {
	event := validEvent()

	price := decimal.NewFromInt(40)
	dto := EventDto{TicketPrice: &price}
	dto.Apply(&event)

	if !event.TicketPrice.Equal(decimal.NewFromInt(40)) {
		t.Errorf("got ticket price %s; want 40", event.TicketPrice)
	}
	assert.Equal(t, event.Title, "Opening Night")
}

func TestValidateEvent(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *Event)
		wantKey string
	}{
		{
			name:    "Missing Title",
			mutate:  func(e *Event) { e.Title = "" },
			wantKey: "title",
		},
		{
			name:    "Bad Venue ID",
			mutate:  func(e *Event) { e.VenueID = "not-a-uuid" },
			wantKey: "venue_id",
		},
		{
			name:    "Missing Start",
			mutate:  func(e *Event) { e.StartsAt = time.Time{} },
			wantKey: "starts_at",
		},
		{
			name:    "Negative Ticket Price",
			mutate:  func(e *Event) { e.TicketPrice = decimal.NewFromInt(-1) },
			wantKey: "ticket_price",
		},
		{
			name:    "Unknown Status",
			mutate:  func(e *Event) { e.Status = "postponed" },
			wantKey: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := validEvent()
			tt.mutate(&event)

			v := validator.New()
			ValidateEvent(v, &event)
			if v.Valid() {
				t.Fatal("expected validation failure")
			}
			if _, ok := v.Errors[tt.wantKey]; !ok {
				t.Errorf("expected error for key %q, got %v", tt.wantKey, v.Errors)
			}
		})
	}

	event := validEvent()
	v := validator.New()
	ValidateEvent(v, &event)
	assert.Equal(t, v.Valid(), true)
}

func TestEventFormDefaultsToDraft(t *testing.T) {
	form := EventForm{
		VenueID:     uuid.NewString(),
		Title:       "Soundcheck",
		StartsAt:    time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
		TicketPrice: decimal.Zero,
	}

	v := validator.New()
	form.Validate(v)
	assert.Equal(t, v.Valid(), true)
}

func TestEventModelMetadata(t *testing.T) {
	model := NewEventModel(nil)

	assert.Equal(t, model.EntityName(), "event")
	assert.Equal(t, model.Associations()["venue"].Entity, "venue")
	assert.Equal(t, model.Associations()["venue"].Many, false)
}
