package resource

import "EventDeskApi/internal/validator"

// Dto is a transfer-shaped view of one entity type. Load populates a fresh
// instance from a stored entity; Patch merges fields from a peer instance.
// The merge policy is owned by each concrete DTO type.
type Dto[E any] interface {
	Load(entity *E)
	Patch(other Dto[E])
}

// Form is the decode target for an incoming request body.
type Form interface {
	Validate(v *validator.Validator)
}
