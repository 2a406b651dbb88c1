// Package controllers adapts HTTP requests to the services. Every handler
// answers with the JSON envelope from pkg/response.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/foodhub/app/services"
	"github.com/shashiranjanraj/foodhub/pkg/ctx"
	"github.com/shashiranjanraj/foodhub/pkg/middleware"
)

// caller returns the identity resolved by middleware.Authenticate. Routes
// behind RequireLogin always have one.
func caller(c *ctx.Context) middleware.Identity {
	id, _ := middleware.IdentityFromCtx(c.R)
	return id
}

// owner scopes order lookups: admins see every order, users only their own.
func owner(c *ctx.Context) string {
	id := caller(c)
	if id.IsAdmin() {
		return ""
	}
	return id.Username
}

func coupons(c *ctx.Context) services.SessionCoupons {
	return services.SessionCoupons{Session: c.Session()}
}

// pathID reads a positive integer path parameter, answering 404 when it is
// missing or malformed.
func pathID(c *ctx.Context, key string) (uint, bool) {
	id, ok := c.ParamUint(key)
	if !ok {
		c.NotFound()
	}
	return id, ok
}

// fail maps a service error to a response. notFound is the message used for
// services.ErrNotFound.
func fail(c *ctx.Context, err error, notFound string) {
	var (
		ve *services.ValidationError
		qe *services.QuantityError
	)
	switch {
	case errors.As(err, &qe):
		c.Fail(http.StatusUnprocessableEntity, "Invalid quantity.", map[string]any{
			"food":   qe.Food,
			"coupon": qe.Coupon,
		})
	case errors.As(err, &ve):
		c.ValidationError(ve.Fields)
	case errors.Is(err, services.ErrNotFound):
		c.NotFound(notFound)
	case errors.Is(err, services.ErrDuplicateUsername):
		c.Error(http.StatusConflict, "Username taken.")
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized("Invalid credentials.")
	case errors.Is(err, services.ErrPersistence):
		c.Error(http.StatusInternalServerError, "Database error")
	default:
		c.Logger().Error("request failed", "error", err)
		c.Error(http.StatusInternalServerError, "Server error.")
	}
}
