package main

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"EventDeskApi/internal/data"
	"EventDeskApi/internal/feed"
	"EventDeskApi/internal/store"
	"EventDeskApi/internal/validator"

	"github.com/go-chi/chi/v5"
)

func (app *application) InsertEvent(w http.ResponseWriter, r *http.Request) {
	newForm, err := app.events.Form()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	form := newForm().(*data.EventForm)

	err = app.readJSON(w, r, form)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	if form.Validate(v); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	event := &data.Event{
		VenueID:     form.VenueID,
		Title:       form.Title,
		StartsAt:    form.StartsAt,
		TicketPrice: form.TicketPrice,
		Status:      form.Status,
	}

	err = app.models.Events.Insert(event)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrVenueNotFound):
			v.AddError("venue_id", "does not exist")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.feed.Publish(feed.ActionCreated, app.events.EntityName(), event.ID)

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/event/%s", event.ID))
	err = app.writeJSON(w, http.StatusCreated, envelope{"event": event}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	includes := app.readCSV(r.URL.Query(), "include", nil)

	event, err := app.events.Repository().FindByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	response := envelope{"event": event}

	// The venue reference stays unloaded unless the caller asks for it.
	if slices.Contains(includes, "venue") {
		venue, err := app.venues.Reference(event.VenueID).Resolve(r.Context())
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			app.serverErrorResponse(w, r, err)
			return
		}
		if venue != nil {
			response["venue"] = venue
		}
	}

	err = app.writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetAllEvents(w http.ResponseWriter, r *http.Request) {
	var input struct {
		VenueID string
		Status  string
		Search  string
		store.Filters
	}

	v := validator.New()
	qs := r.URL.Query()

	input.VenueID = app.readString(qs, "venue_id", "")
	input.Status = app.readString(qs, "status", "")
	input.Search = app.readString(qs, "search", "")
	input.Filters.Page = app.readInt(qs, "page", 1, v)
	input.Filters.PageSize = app.readInt(qs, "page_size", 20, v)
	input.Filters.Sort = app.readString(qs, "sort", "starts_at")
	input.Filters.SortSafelist = []string{"title", "starts_at", "status",
		"-title", "-starts_at", "-status"}

	if store.ValidateFilters(v, input.Filters); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	criteria := store.Criteria{}
	if input.VenueID != "" {
		criteria["venue_id"] = input.VenueID
	}
	if input.Status != "" {
		criteria["status"] = input.Status
	}

	events, err := app.events.Repository().FindByAdvanced(r.Context(), criteria,
		input.Filters.OrderBy(), input.Filters.Limit(), input.Filters.Offset(), input.Search)
	if err != nil {
		var invalidQueryErr *store.InvalidQueryError
		switch {
		case errors.As(err, &invalidQueryErr):
			app.badRequestResponse(w, r, invalidQueryErr)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	total, err := app.models.Events.Count(r.Context(), criteria, input.Search)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	metadata := store.CalculateMetadata(total, input.Filters.Page, input.Filters.PageSize)

	err = app.writeJSON(w, http.StatusOK, envelope{"events": events, "metadata": metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	newDto, err := app.events.Dto()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	patch := newDto().(*data.EventDto)
	err = app.readJSON(w, r, patch)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	merged, err := app.events.DtoForEntity(r.Context(), id, newDto, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	event, err := app.events.Repository().FindByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	merged.(*data.EventDto).Apply(event)

	v := validator.New()
	if data.ValidateEvent(v, event); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Events.Update(event)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.feed.Publish(feed.ActionUpdated, app.events.EntityName(), event.ID)

	err = app.writeJSON(w, http.StatusOK, envelope{"event": event}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := app.models.Events.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.feed.Publish(feed.ActionDeleted, app.events.EntityName(), id)

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "event successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetEventAssociations(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{
		"entity":       app.events.EntityName(),
		"associations": app.events.Associations(),
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
