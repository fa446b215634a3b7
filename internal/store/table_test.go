package store

import (
	"context"
	"errors"
	"testing"

	"EventDeskApi/internal/assert"
)

func testTable() *Table[struct{}] {
	cfg := TableConfig{
		Entity:  "venue",
		Table:   "venues",
		Columns: []string{"id", "name", "city", "capacity"},
		Fields: map[string]string{
			"name":     "name",
			"city":     "city",
			"capacity": "capacity",
		},
		Search: []string{"name", "city"},
		Associations: map[string]Association{
			"events": {Entity: "event", Column: "venue_id", Many: true},
		},
	}

	return NewTable[struct{}](nil, cfg, func(row Row) (*struct{}, error) {
		return &struct{}{}, nil
	})
}

func TestWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		criteria  Criteria
		search    string
		wantWhere string
		wantArgs  int
	}{
		{
			name:      "No Criteria",
			criteria:  nil,
			wantWhere: "",
			wantArgs:  0,
		},
		{
			name:      "Single Field",
			criteria:  Criteria{"city": "lisbon"},
			wantWhere: "WHERE city = $1",
			wantArgs:  1,
		},
		{
			name:      "Fields Sorted For Stable Placeholders",
			criteria:  Criteria{"name": "forum", "city": "lisbon"},
			wantWhere: "WHERE city = $1 AND name = $2",
			wantArgs:  2,
		},
		{
			name:      "Search Appended After Criteria",
			criteria:  Criteria{"capacity": 100},
			search:    "arena",
			wantWhere: "WHERE capacity = $1 AND (name ILIKE $2 OR city ILIKE $2)",
			wantArgs:  2,
		},
	}

	table := testTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args, err := table.whereClause(tt.criteria, tt.search)
			assert.NilError(t, err)
			assert.Equal(t, where, tt.wantWhere)
			assert.Equal(t, len(args), tt.wantArgs)
		})
	}
}

func TestWhereClauseUnknownField(t *testing.T) {
	table := testTable()

	_, _, err := table.whereClause(Criteria{"owner": "x"}, "")

	var invalidQueryErr *InvalidQueryError
	if !errors.As(err, &invalidQueryErr) {
		t.Fatalf("got: %v; expected *InvalidQueryError", err)
	}
	assert.Equal(t, invalidQueryErr.Field, "owner")
	assert.StringContains(t, invalidQueryErr.Error(), "venue")
}

func TestWhereClauseSearchArg(t *testing.T) {
	table := testTable()

	_, args, err := table.whereClause(nil, "arena")
	assert.NilError(t, err)
	assert.Equal(t, args[0].(string), "%arena%")
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name  string
		order []OrderBy
		want  string
	}{
		{
			name:  "Default Tiebreak Only",
			order: nil,
			want:  "ORDER BY id ASC",
		},
		{
			name:  "Ascending",
			order: []OrderBy{{Field: "name", Direction: Ascending}},
			want:  "ORDER BY name ASC, id ASC",
		},
		{
			name: "Multiple Terms",
			order: []OrderBy{
				{Field: "city", Direction: Descending},
				{Field: "name", Direction: Ascending},
			},
			want: "ORDER BY city DESC, name ASC, id ASC",
		},
	}

	table := testTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, err := table.orderClause(tt.order)
			assert.NilError(t, err)
			assert.Equal(t, clause, tt.want)
		})
	}
}

func TestOrderClauseInvalid(t *testing.T) {
	table := testTable()

	var invalidQueryErr *InvalidQueryError

	_, err := table.orderClause([]OrderBy{{Field: "owner", Direction: Ascending}})
	if !errors.As(err, &invalidQueryErr) {
		t.Fatalf("got: %v; expected *InvalidQueryError", err)
	}

	_, err = table.orderClause([]OrderBy{{Field: "name", Direction: "sideways"}})
	if !errors.As(err, &invalidQueryErr) {
		t.Fatalf("got: %v; expected *InvalidQueryError", err)
	}
}

func TestTableIntrospection(t *testing.T) {
	table := testTable()

	assert.Equal(t, table.EntityName(), "venue")
	assert.StringSliceEqual(t, table.Fields(), []string{"capacity", "city", "name"})

	assocs := table.Associations()
	assert.Equal(t, len(assocs), 1)
	assert.Equal(t, assocs["events"].Entity, "event")
	assert.Equal(t, assocs["events"].Many, true)
}

func TestRefIsLazy(t *testing.T) {
	loads := 0
	ref := NewRef("42", func(ctx context.Context, id string) (*string, error) {
		loads++
		s := "entity-" + id
		return &s, nil
	})

	assert.Equal(t, ref.ID(), "42")
	assert.Equal(t, loads, 0)

	entity, err := ref.Resolve(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, *entity, "entity-42")
	assert.Equal(t, loads, 1)

	_, err = ref.Resolve(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, loads, 1)
}

func TestRefCachesError(t *testing.T) {
	loads := 0
	ref := NewRef("9", func(ctx context.Context, id string) (*string, error) {
		loads++
		return nil, ErrRecordNotFound
	})

	_, err := ref.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = ref.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Equal(t, loads, 1)
}
