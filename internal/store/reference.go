package store

import "context"

// Ref is a handle to an entity that defers loading until Resolve is called.
// Handing out a Ref never touches the store; Resolve loads at most once and
// caches the outcome.
type Ref[E any] struct {
	id       string
	load     func(ctx context.Context, id string) (*E, error)
	entity   *E
	err      error
	resolved bool
}

func NewRef[E any](id string, load func(ctx context.Context, id string) (*E, error)) *Ref[E] {
	return &Ref[E]{id: id, load: load}
}

func (r *Ref[E]) ID() string {
	return r.id
}

func (r *Ref[E]) Resolve(ctx context.Context) (*E, error) {
	if !r.resolved {
		r.entity, r.err = r.load(ctx, r.id)
		r.resolved = true
	}

	return r.entity, r.err
}
