package resource

import (
	"context"
	"fmt"
	"sort"

	"EventDeskApi/internal/store"
	"EventDeskApi/internal/validator"
)

// ConfigurationError signals a wiring bug: a resource was used before all
// of its collaborators were configured. It is never a request-level outcome.
type ConfigurationError struct {
	Entity string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s for %q resource", e.Reason, e.Entity)
}

// Resource binds one repository, one validator and the DTO and form
// factories for a single entity type. Configure it once during startup,
// then treat it as read-only for the life of the process.
type Resource[E any] struct {
	repo    store.Repository[E]
	valid   *validator.Validator
	newDto  func() Dto[E]
	newForm func() Form
}

func New[E any](repo store.Repository[E], v *validator.Validator) *Resource[E] {
	return &Resource[E]{
		repo:  repo,
		valid: v,
	}
}

func (r *Resource[E]) Repository() store.Repository[E] {
	return r.repo
}

func (r *Resource[E]) SetRepository(repo store.Repository[E]) {
	r.repo = repo
}

func (r *Resource[E]) Validator() *validator.Validator {
	return r.valid
}

func (r *Resource[E]) SetValidator(v *validator.Validator) {
	r.valid = v
}

// SetDto registers the factory producing fresh DTO instances. No check
// happens here; an unset factory is caught at Dto time.
func (r *Resource[E]) SetDto(newDto func() Dto[E]) {
	r.newDto = newDto
}

func (r *Resource[E]) Dto() (func() Dto[E], error) {
	if r.newDto == nil {
		return nil, &ConfigurationError{
			Entity: r.EntityName(),
			Reason: "dto type not specified",
		}
	}

	return r.newDto, nil
}

func (r *Resource[E]) SetForm(newForm func() Form) {
	r.newForm = newForm
}

func (r *Resource[E]) Form() (func() Form, error) {
	if r.newForm == nil {
		return nil, &ConfigurationError{
			Entity: r.EntityName(),
			Reason: "form type not specified",
		}
	}

	return r.newForm, nil
}

func (r *Resource[E]) EntityName() string {
	return r.repo.EntityName()
}

func (r *Resource[E]) Reference(id string) *store.Ref[E] {
	return r.repo.Reference(id)
}

// Associations lists the declared relationship names for this entity type.
func (r *Resource[E]) Associations() []string {
	assocs := r.repo.Associations()

	names := make([]string, 0, len(assocs))
	for name := range assocs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// DtoForEntity loads the entity with the given id into a fresh DTO built by
// newDto and, when patch is non-nil, merges patch into it afterwards. A
// missing entity fails with store.ErrRecordNotFound before any DTO is
// constructed.
func (r *Resource[E]) DtoForEntity(ctx context.Context, id string, newDto func() Dto[E],
	patch Dto[E]) (Dto[E], error) {
	entity, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if newDto == nil {
		return nil, &ConfigurationError{
			Entity: r.EntityName(),
			Reason: "dto factory not provided",
		}
	}
	dto := newDto()
	if dto == nil {
		return nil, &ConfigurationError{
			Entity: r.EntityName(),
			Reason: "dto factory produced no instance",
		}
	}

	dto.Load(entity)
	if patch != nil {
		dto.Patch(patch)
	}

	return dto, nil
}
