package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username string `validate:"required,username"`
	Phone    string `validate:"omitempty,phone"`
	Clock    string `validate:"omitempty,clock"`
	Material string `validate:"omitempty,material_type"`
	Category string `validate:"omitempty,product_category"`
	Policy   string `validate:"omitempty,interaction_policy"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func TestCustomRulesAccept(t *testing.T) {
	v := newValidator(t)
	err := v.Struct(sample{
		Username: "alice.w",
		Phone:    "+255712345678",
		Clock:    "09:30",
		Material: "past_paper",
		Category: "books",
		Policy:   "admins_only",
	})
	assert.NoError(t, err)
}

func TestCustomRulesReject(t *testing.T) {
	v := newValidator(t)

	cases := map[string]sample{
		"Username": {Username: "has space"},
		"Phone":    {Username: "a", Phone: "12ab"},
		"Clock":    {Username: "a", Clock: "25:00"},
		"Material": {Username: "a", Material: "slides"},
		"Category": {Username: "a", Category: "cars"},
		"Policy":   {Username: "a", Policy: "nobody"},
	}
	for field, s := range cases {
		err := v.Struct(s)
		require.Error(t, err, field)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, field, verrs[0].Field())
	}
}

func TestRegisterWithGinIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		RegisterWithGin()
		RegisterWithGin()
	})
}
