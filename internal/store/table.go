package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const queryTimeout = 3 * time.Second

// Row is the scan surface shared by *sql.Row and *sql.Rows.
type Row interface {
	Scan(dest ...any) error
}

// TableConfig declares how one entity type maps onto its backing table.
// Fields is the whitelist of exposed field names allowed in criteria and
// ordering; Search lists the columns a free-form search term matches
// against (case-insensitive substring).
type TableConfig struct {
	Entity       string
	Table        string
	Columns      []string
	Fields       map[string]string
	Search       []string
	Associations map[string]Association
}

// Table is a SQL-backed Repository for one entity type. It owns no
// entities; every call is a stateless read against the pool.
type Table[E any] struct {
	db     *sql.DB
	cfg    TableConfig
	scan   func(row Row) (*E, error)
	fields []string
}

func NewTable[E any](db *sql.DB, cfg TableConfig, scan func(row Row) (*E, error)) *Table[E] {
	fields := make([]string, 0, len(cfg.Fields))
	for field := range cfg.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return &Table[E]{
		db:     db,
		cfg:    cfg,
		scan:   scan,
		fields: fields,
	}
}

func (t *Table[E]) EntityName() string {
	return t.cfg.Entity
}

func (t *Table[E]) Associations() map[string]Association {
	return t.cfg.Associations
}

func (t *Table[E]) Reference(id string) *Ref[E] {
	return NewRef(id, t.FindByID)
}

func (t *Table[E]) FindByID(ctx context.Context, id string) (*E, error) {
	stmt := fmt.Sprintf(`
		SELECT %s
			FROM %s
			WHERE id = $1`, strings.Join(t.cfg.Columns, ", "), t.cfg.Table)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	entity, err := t.scan(t.db.QueryRowContext(ctx, stmt, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return entity, nil
}

func (t *Table[E]) FindAll(ctx context.Context) ([]*E, error) {
	return t.FindByAdvanced(ctx, nil, nil, 0, 0, "")
}

func (t *Table[E]) FindBy(ctx context.Context, criteria Criteria, order []OrderBy, limit,
	offset int) ([]*E, error) {
	return t.FindByAdvanced(ctx, criteria, order, limit, offset, "")
}

func (t *Table[E]) FindOneBy(ctx context.Context, criteria Criteria, order []OrderBy) (*E, error) {
	entities, err := t.FindByAdvanced(ctx, criteria, order, 1, 0, "")
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, ErrRecordNotFound
	}

	return entities[0], nil
}

func (t *Table[E]) FindByAdvanced(ctx context.Context, criteria Criteria, order []OrderBy, limit,
	offset int, search string) ([]*E, error) {
	where, args, err := t.whereClause(criteria, search)
	if err != nil {
		return nil, err
	}

	orderClause, err := t.orderClause(order)
	if err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf(`
		SELECT %s
			FROM %s
			%s
			%s`, strings.Join(t.cfg.Columns, ", "), t.cfg.Table, where, orderClause)

	if limit > 0 {
		args = append(args, limit)
		stmt += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		stmt += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := t.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entities := make([]*E, 0)
	for rows.Next() {
		entity, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entities, nil
}

// Count reports how many rows match criteria and search. It backs list
// metadata and is not part of the Repository contract.
func (t *Table[E]) Count(ctx context.Context, criteria Criteria, search string) (int, error) {
	where, args, err := t.whereClause(criteria, search)
	if err != nil {
		return 0, err
	}

	stmt := fmt.Sprintf(`
		SELECT count(*)
			FROM %s
			%s`, t.cfg.Table, where)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	err = t.db.QueryRowContext(ctx, stmt, args...).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (t *Table[E]) whereClause(criteria Criteria, search string) (string, []any, error) {
	conditions := make([]string, 0, len(criteria)+1)
	args := make([]any, 0, len(criteria)+1)

	keys := make([]string, 0, len(criteria))
	for key := range criteria {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		column, ok := t.cfg.Fields[key]
		if !ok {
			return "", nil, &InvalidQueryError{
				Field:  key,
				Reason: fmt.Sprintf("unknown field for %q", t.cfg.Entity),
			}
		}
		args = append(args, criteria[key])
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if search != "" {
		if len(t.cfg.Search) == 0 {
			return "", nil, &InvalidQueryError{
				Field:  "search",
				Reason: fmt.Sprintf("%q is not searchable", t.cfg.Entity),
			}
		}
		args = append(args, "%"+search+"%")
		matches := make([]string, 0, len(t.cfg.Search))
		for _, column := range t.cfg.Search {
			matches = append(matches, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
		}
		conditions = append(conditions, "("+strings.Join(matches, " OR ")+")")
	}

	if len(conditions) == 0 {
		return "", args, nil
	}

	return "WHERE " + strings.Join(conditions, " AND "), args, nil
}

func (t *Table[E]) orderClause(order []OrderBy) (string, error) {
	clauses := make([]string, 0, len(order)+1)

	for _, o := range order {
		column, ok := t.cfg.Fields[o.Field]
		if !ok {
			return "", &InvalidQueryError{
				Field:  o.Field,
				Reason: fmt.Sprintf("unknown sort field for %q", t.cfg.Entity),
			}
		}
		switch o.Direction {
		case Ascending, Descending:
		default:
			return "", &InvalidQueryError{
				Field:  o.Field,
				Reason: fmt.Sprintf("invalid sort direction %q", o.Direction),
			}
		}
		clauses = append(clauses, fmt.Sprintf("%s %s", column, o.Direction))
	}

	// Stable tiebreak so paging never repeats rows.
	clauses = append(clauses, "id ASC")

	return "ORDER BY " + strings.Join(clauses, ", "), nil
}

// Fields lists the exposed field names accepted in criteria and ordering.
func (t *Table[E]) Fields() []string {
	return t.fields
}
