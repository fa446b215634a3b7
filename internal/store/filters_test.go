package store

import (
	"testing"

	"EventDeskApi/internal/assert"
	"EventDeskApi/internal/validator"
)

func TestFiltersOrderBy(t *testing.T) {
	tests := []struct {
		name          string
		sort          string
		wantField     string
		wantDirection Direction
	}{
		{
			name:          "Ascending",
			sort:          "name",
			wantField:     "name",
			wantDirection: Ascending,
		},
		{
			name:          "Descending",
			sort:          "-starts_at",
			wantField:     "starts_at",
			wantDirection: Descending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := Filters{Sort: tt.sort}.OrderBy()
			assert.Equal(t, len(order), 1)
			assert.Equal(t, order[0].Field, tt.wantField)
			assert.Equal(t, order[0].Direction, tt.wantDirection)
		})
	}

	assert.Equal(t, len(Filters{}.OrderBy()), 0)
}

func TestFiltersPaging(t *testing.T) {
	f := Filters{Page: 3, PageSize: 20}

	assert.Equal(t, f.Limit(), 20)
	assert.Equal(t, f.Offset(), 40)
}

func TestValidateFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		wantKey string
	}{
		{
			name:    "Zero Page",
			filters: Filters{Page: 0, PageSize: 10, Sort: "name", SortSafelist: []string{"name"}},
			wantKey: "page",
		},
		{
			name:    "Oversize Page Size",
			filters: Filters{Page: 1, PageSize: 500, Sort: "name", SortSafelist: []string{"name"}},
			wantKey: "page_size",
		},
		{
			name:    "Unsafe Sort",
			filters: Filters{Page: 1, PageSize: 10, Sort: "owner", SortSafelist: []string{"name"}},
			wantKey: "sort",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateFilters(v, tt.filters)
			if v.Valid() {
				t.Fatal("expected validation failure")
			}
			if _, ok := v.Errors[tt.wantKey]; !ok {
				t.Errorf("expected error for key %q, got %v", tt.wantKey, v.Errors)
			}
		})
	}

	v := validator.New()
	ValidateFilters(v, Filters{Page: 1, PageSize: 10, Sort: "name", SortSafelist: []string{"name"}})
	assert.Equal(t, v.Valid(), true)
}

func TestCalculateMetadata(t *testing.T) {
	meta := CalculateMetadata(95, 2, 20)

	assert.Equal(t, meta.CurrentPage, 2)
	assert.Equal(t, meta.LastPage, 5)
	assert.Equal(t, meta.TotalRecords, 95)

	assert.Equal(t, CalculateMetadata(0, 1, 20), Metadata{})
}
