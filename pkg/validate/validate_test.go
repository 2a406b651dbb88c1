package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/foodhub/pkg/validate"
)

type registerInput struct {
	Username  string `json:"username"   validate:"required,max=10"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=4"`
	Confirm   string `json:"confirm"    validate:"required,eqfield=Password"`
	LoginType string `json:"login_type" validate:"omitempty,oneof=user admin"`
}

func TestStructValid(t *testing.T) {
	errs := validate.Struct(&registerInput{
		Username: "asha", Email: "asha@example.com",
		Password: "secret", Confirm: "secret", LoginType: "user",
	})
	assert.False(t, validate.HasErrors(errs))
}

func TestStructKeysByJSONName(t *testing.T) {
	errs := validate.Struct(&registerInput{
		Username: "a-very-long-name", Email: "nope",
		Password: "abc", Confirm: "abd", LoginType: "root",
	})

	assert.Equal(t, "The username must not exceed 10 characters.", errs["username"])
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
	assert.Equal(t, "The password must be at least 4 characters.", errs["password"])
	assert.Equal(t, "The confirm does not match.", errs["confirm"])
	assert.Equal(t, "The selected login_type is invalid.", errs["login_type"])
}

func TestStructRequired(t *testing.T) {
	errs := validate.Struct(&registerInput{})
	assert.Equal(t, "The username field is required.", errs["username"])
	assert.Contains(t, errs, "email")
	assert.NotContains(t, errs, "login_type")
}

func TestVar(t *testing.T) {
	assert.True(t, validate.Var("a@b.io", "email"))
	assert.False(t, validate.Var("a@", "email"))
}
