package resource

import (
	"context"
	"errors"
	"testing"

	"EventDeskApi/internal/assert"
	"EventDeskApi/internal/store"
	"EventDeskApi/internal/validator"
)

type account struct {
	ID   string
	Name string
}

type accountDto struct {
	Name *string
}

func (d *accountDto) Load(a *account) {
	name := a.Name
	d.Name = &name
}

func (d *accountDto) Patch(other Dto[account]) {
	o, ok := other.(*accountDto)
	if !ok {
		return
	}
	if o.Name != nil {
		d.Name = o.Name
	}
}

type fakeRepo struct {
	accounts map[string]*account
	assocs   map[string]store.Association
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeRepo) FindAll(_ context.Context) ([]*account, error) {
	all := make([]*account, 0, len(f.accounts))
	for _, a := range f.accounts {
		all = append(all, a)
	}
	return all, nil
}

func (f *fakeRepo) FindBy(ctx context.Context, _ store.Criteria, _ []store.OrderBy, _,
	_ int) ([]*account, error) {
	return f.FindAll(ctx)
}

func (f *fakeRepo) FindOneBy(_ context.Context, _ store.Criteria, _ []store.OrderBy) (*account,
	error) {
	return nil, store.ErrRecordNotFound
}

func (f *fakeRepo) FindByAdvanced(ctx context.Context, _ store.Criteria, _ []store.OrderBy, _,
	_ int, _ string) ([]*account, error) {
	return f.FindAll(ctx)
}

func (f *fakeRepo) EntityName() string {
	return "account"
}

func (f *fakeRepo) Associations() map[string]store.Association {
	return f.assocs
}

func (f *fakeRepo) Reference(id string) *store.Ref[account] {
	return store.NewRef(id, f.FindByID)
}

func newTestResource() *Resource[account] {
	repo := &fakeRepo{
		accounts: map[string]*account{
			"42": {ID: "42", Name: "Alice"},
		},
		assocs: map[string]store.Association{
			"memberships": {Entity: "membership", Many: true},
			"avatar":      {Entity: "photo"},
		},
	}

	return New[account](repo, validator.New())
}

func TestDtoNotConfigured(t *testing.T) {
	r := newTestResource()

	_, err := r.Dto()

	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("got: %v; expected *ConfigurationError", err)
	}
	assert.StringContains(t, configErr.Error(), "account")
	assert.StringContains(t, configErr.Error(), "dto type not specified")
}

func TestFormNotConfigured(t *testing.T) {
	r := newTestResource()

	_, err := r.Form()

	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("got: %v; expected *ConfigurationError", err)
	}
	assert.StringContains(t, configErr.Error(), "account")
}

func TestSetDtoLastWriteWins(t *testing.T) {
	r := newTestResource()

	first := func() Dto[account] { return nil }
	r.SetDto(first)
	r.SetDto(func() Dto[account] { return &accountDto{} })

	newDto, err := r.Dto()
	assert.NilError(t, err)
	if newDto() == nil {
		t.Fatal("expected the second factory to be in effect")
	}
}

func TestAssociations(t *testing.T) {
	r := newTestResource()

	assert.StringSliceEqual(t, r.Associations(), []string{"avatar", "memberships"})
}

func TestEntityNamePassthrough(t *testing.T) {
	r := newTestResource()

	assert.Equal(t, r.EntityName(), "account")
}

func TestReferencePassthrough(t *testing.T) {
	r := newTestResource()

	ref := r.Reference("42")
	assert.Equal(t, ref.ID(), "42")

	a, err := ref.Resolve(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, a.Name, "Alice")
}

func TestDtoForEntity(t *testing.T) {
	r := newTestResource()

	dto, err := r.DtoForEntity(context.Background(), "42",
		func() Dto[account] { return &accountDto{} }, nil)
	assert.NilError(t, err)
	assert.Equal(t, *dto.(*accountDto).Name, "Alice")
}

func TestDtoForEntityPatchAfterLoad(t *testing.T) {
	r := newTestResource()

	bob := "Bob"
	dto, err := r.DtoForEntity(context.Background(), "42",
		func() Dto[account] { return &accountDto{} }, &accountDto{Name: &bob})
	assert.NilError(t, err)
	assert.Equal(t, *dto.(*accountDto).Name, "Bob")
}

func TestDtoForEntityEmptyPatchKeepsLoad(t *testing.T) {
	r := newTestResource()

	dto, err := r.DtoForEntity(context.Background(), "42",
		func() Dto[account] { return &accountDto{} }, &accountDto{})
	assert.NilError(t, err)
	assert.Equal(t, *dto.(*accountDto).Name, "Alice")
}

func TestDtoForEntityNotFound(t *testing.T) {
	r := newTestResource()

	constructed := 0
	_, err := r.DtoForEntity(context.Background(), "missing", func() Dto[account] {
		constructed++
		return &accountDto{}
	}, nil)

	assert.ErrorIs(t, err, store.ErrRecordNotFound)
	assert.Equal(t, constructed, 0)
}

func TestDtoForEntityNilFactory(t *testing.T) {
	r := newTestResource()

	_, err := r.DtoForEntity(context.Background(), "42", nil, nil)

	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("got: %v; expected *ConfigurationError", err)
	}
}

func TestDtoForEntityNilProduct(t *testing.T) {
	r := newTestResource()

	_, err := r.DtoForEntity(context.Background(), "42",
		func() Dto[account] { return nil }, nil)

	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("got: %v; expected *ConfigurationError", err)
	}
	assert.StringContains(t, configErr.Error(), "produced no instance")
}
