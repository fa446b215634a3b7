package validator

import (
	"testing"

	"EventDeskApi/internal/assert"
)

func TestCheck(t *testing.T) {
	v := New()
	assert.Equal(t, v.Valid(), true)

	v.Check(false, "name", "must be provided")
	v.Check(true, "city", "must be provided")

	assert.Equal(t, v.Valid(), false)
	assert.Equal(t, v.Errors["name"], "must be provided")
	assert.Equal(t, len(v.Errors), 1)
}

func TestAddErrorKeepsFirst(t *testing.T) {
	v := New()
	v.AddError("name", "first")
	v.AddError("name", "second")

	assert.Equal(t, v.Errors["name"], "first")
}

func TestMatchesEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "Valid", email: "alice@example.com", want: true},
		{name: "Missing Domain", email: "alice@", want: false},
		{name: "Missing At", email: "alice.example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Matches(tt.email, EmailRX), tt.want)
		})
	}
}

func TestPermittedValue(t *testing.T) {
	assert.Equal(t, PermittedValue("draft", "draft", "published"), true)
	assert.Equal(t, PermittedValue("archived", "draft", "published"), false)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, Unique([]string{"a", "b"}), true)
	assert.Equal(t, Unique([]string{"a", "a"}), false)
}
