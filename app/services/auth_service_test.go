package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/pkg/auth"
)

func newAuth() (*AuthService, *fakeUsers) {
	users := &fakeUsers{rows: map[string]*models.User{}}
	return NewAuthService(users), users
}

func register(t *testing.T, svc *AuthService, username, loginType string) {
	t.Helper()
	_, err := svc.Register(context.Background(), RegisterInput{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "secret",
		Confirm:   "secret",
		LoginType: loginType,
	})
	require.NoError(t, err)
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users := newAuth()
	register(t, svc, "ada", "")

	u := users.rows["ada"]
	require.NotNil(t, u)
	assert.Equal(t, models.LoginUser, u.LoginType)
	assert.NotEqual(t, "secret", u.Password)
	assert.True(t, auth.CheckPassword(u.Password, "secret"))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuth()

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:  "ada",
		Email:     "not-an-email",
		Password:  "secret",
		Confirm:   "other",
		LoginType: "root",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "confirm_password")
	assert.Contains(t, ve.Fields, "login_type")
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newAuth()
	register(t, svc, "ada", "")

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "ada", Email: "x@example.com", Password: "pass", Confirm: "pass",
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuth()
	register(t, svc, "ada", "")
	register(t, svc, "boss", models.LoginAdmin)

	res, err := svc.Login(context.Background(), "ada", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, "ada", res.User.Username)

	claims, err := auth.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, models.LoginUser, claims.Role)

	_, err = svc.Login(context.Background(), "ada", "wrong", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ada", "secret", true)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "users cannot use the admin login")

	_, err = svc.Login(context.Background(), "boss", "secret", true)
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), "nobody", "secret", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
