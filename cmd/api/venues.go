package main

import (
	"errors"
	"fmt"
	"net/http"

	"EventDeskApi/internal/data"
	"EventDeskApi/internal/feed"
	"EventDeskApi/internal/store"
	"EventDeskApi/internal/validator"

	"github.com/go-chi/chi/v5"
)

func (app *application) InsertVenue(w http.ResponseWriter, r *http.Request) {
	newForm, err := app.venues.Form()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	form := newForm().(*data.VenueForm)

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

	venue := &data.Venue{
		Name:     form.Name,
		City:     form.City,
		Capacity: form.Capacity,
	}

	err = app.models.Venues.Insert(venue)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.feed.Publish(feed.ActionCreated, app.venues.EntityName(), venue.ID)

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/venue/%s", venue.ID))
	err = app.writeJSON(w, http.StatusCreated, envelope{"venue": venue}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetVenue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	venue, err := app.venues.Repository().FindByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"venue": venue}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetAllVenues(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name   string
		City   string
		Search string
		store.Filters
	}

	v := validator.New()
	qs := r.URL.Query()

	input.Name = app.readString(qs, "name", "")
	input.City = app.readString(qs, "city", "")
	input.Search = app.readString(qs, "search", "")
	input.Filters.Page = app.readInt(qs, "page", 1, v)
	input.Filters.PageSize = app.readInt(qs, "page_size", 20, v)
	input.Filters.Sort = app.readString(qs, "sort", "name")
	input.Filters.SortSafelist = []string{"name", "city", "capacity",
		"-name", "-city", "-capacity"}

	if store.ValidateFilters(v, input.Filters); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	criteria := store.Criteria{}
	if input.Name != "" {
		criteria["name"] = input.Name
	}
	if input.City != "" {
		criteria["city"] = input.City
	}

	venues, err := app.venues.Repository().FindByAdvanced(r.Context(), criteria,
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

	total, err := app.models.Venues.Count(r.Context(), criteria, input.Search)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	metadata := store.CalculateMetadata(total, input.Filters.Page, input.Filters.PageSize)

	err = app.writeJSON(w, http.StatusOK, envelope{"venues": venues, "metadata": metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	newDto, err := app.venues.Dto()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	patch := newDto().(*data.VenueDto)
	err = app.readJSON(w, r, patch)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	merged, err := app.venues.DtoForEntity(r.Context(), id, newDto, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	venue, err := app.venues.Repository().FindByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	merged.(*data.VenueDto).Apply(venue)

	v := validator.New()
	if data.ValidateVenue(v, venue); !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Venues.Update(venue)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.feed.Publish(feed.ActionUpdated, app.venues.EntityName(), venue.ID)

	err = app.writeJSON(w, http.StatusOK, envelope{"venue": venue}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := app.models.Venues.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.feed.Publish(feed.ActionDeleted, app.venues.EntityName(), id)

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "venue successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetVenueAssociations(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{
		"entity":       app.venues.EntityName(),
		"associations": app.venues.Associations(),
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
