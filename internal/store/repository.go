package store

import (
	"context"
	"errors"
	"fmt"
)

var ErrRecordNotFound = errors.New("record not found")
var ErrEditConflict = errors.New("edit conflict")

// InvalidQueryError reports a filter, sort or search term that does not map
// to a queryable column. It is a request-level outcome, not a store fault.
type InvalidQueryError struct {
	Field  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query: %s: %s", e.Field, e.Reason)
}

type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Criteria maps exposed field names to required values. Fields are matched
// against the table's declared column set before any SQL is built.
type Criteria map[string]any

type OrderBy struct {
	Field     string
	Direction Direction
}

// Association describes a declared relationship to another entity type.
type Association struct {
	Entity string
	Column string
	Many   bool
}

// Repository is the read-side access contract for one entity type, keyed by
// string id. Absence of a record surfaces as ErrRecordNotFound; unknown
// field names surface as *InvalidQueryError.
type Repository[E any] interface {
	FindByID(ctx context.Context, id string) (*E, error)
	FindAll(ctx context.Context) ([]*E, error)
	FindBy(ctx context.Context, criteria Criteria, order []OrderBy, limit, offset int) ([]*E, error)
	FindOneBy(ctx context.Context, criteria Criteria, order []OrderBy) (*E, error)
	FindByAdvanced(ctx context.Context, criteria Criteria, order []OrderBy, limit, offset int,
		search string) ([]*E, error)
	EntityName() string
	Associations() map[string]Association
	Reference(id string) *Ref[E]
}
