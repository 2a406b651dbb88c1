package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/services"
	"github.com/shashiranjanraj/foodhub/pkg/ctx"
	"github.com/shashiranjanraj/foodhub/pkg/middleware"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// authForm is the combined login/register form; action picks which.
type authForm struct {
	Action    string `form:"action"           json:"action"`
	Username  string `form:"username"         json:"username"`
	Password  string `form:"password"         json:"password"`
	Email     string `form:"email"            json:"email"`
	Confirm   string `form:"confirm_password" json:"confirm_password"`
	LoginType string `form:"login_type"       json:"login_type"`
}

func (f authForm) register(loginType string) services.RegisterInput {
	if loginType == "" {
		loginType = f.LoginType
	}
	return services.RegisterInput{
		Username:  f.Username,
		Email:     f.Email,
		Password:  f.Password,
		Confirm:   f.Confirm,
		LoginType: loginType,
	}
}

// Auth handles POST /auth.
func (h *AuthController) Auth(c *ctx.Context) {
	var in authForm
	if !c.Bind(&in) {
		return
	}

	switch strings.ToLower(in.Action) {
	case "login":
		h.login(c, in, false)
	case "register":
		h.register(c, in.register(""), "Registered! Please login.")
	default:
		c.Error(http.StatusBadRequest, "Unknown action.")
	}
}

// AdminAuth handles POST /auth-admin. Registration here always creates an
// admin and login rejects non-admin accounts.
func (h *AuthController) AdminAuth(c *ctx.Context) {
	var in authForm
	if !c.Bind(&in) {
		return
	}

	switch strings.ToLower(in.Action) {
	case "login":
		h.login(c, in, true)
	case "register":
		h.register(c, in.register(models.LoginAdmin), "Admin registered!")
	default:
		c.Error(http.StatusBadRequest, "Unknown action.")
	}
}

func (h *AuthController) login(c *ctx.Context, in authForm, adminOnly bool) {
	res, err := h.service.Login(c.Context(), in.Username, in.Password, adminOnly)
	if adminOnly && errors.Is(err, services.ErrInvalidCredentials) {
		c.Unauthorized("Invalid admin login.")
		return
	}
	if err != nil {
		fail(c, err, "")
		return
	}

	sess := c.Session()
	if err := sess.Regenerate(); err != nil {
		c.Logger().Error("session regenerate failed", "error", err)
		c.Error(http.StatusInternalServerError, "Server error.")
		return
	}
	sess.Set(middleware.SessionUsername, res.User.Username)
	sess.Set(middleware.SessionLoginType, res.User.LoginType)

	msg := "User login successful!"
	switch {
	case adminOnly:
		msg = "Admin login success!"
	case res.User.IsAdmin():
		msg = "Admin login successful!"
	}
	c.Message(msg, res)
}

func (h *AuthController) register(c *ctx.Context, in services.RegisterInput, msg string) {
	u, err := h.service.Register(c.Context(), in)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.Respond(http.StatusCreated, msg, u)
}

// Logout handles GET /logout.
func (h *AuthController) Logout(c *ctx.Context) {
	c.Session().Invalidate()
	c.Message("Logged out.", nil)
}
