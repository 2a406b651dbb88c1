// Package ctx gives handlers a single request context instead of the
// (http.ResponseWriter, *http.Request) pair:
//
//	func (h *OrderController) Show(c *ctx.Context) {
//	    id, ok := c.ParamUint("order_id")
//	    ...
//	    c.Success(view)
//	}
//
//	router.Get("/order_success/{order_id}", "orders.success", ctx.Wrap(h.Show))
package ctx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/foodhub/pkg/bind"
	"github.com/shashiranjanraj/foodhub/pkg/logger"
	"github.com/shashiranjanraj/foodhub/pkg/response"
	"github.com/shashiranjanraj/foodhub/pkg/session"
	"github.com/shashiranjanraj/foodhub/pkg/validate"
)

type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc. The session is
// saved before the first byte of the response is written.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
		c.flushSession()
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	mu     sync.RWMutex
	store  map[string]any
	status int
	sess   *session.Session
}

var pool = sync.Pool{
	New: func() any { return &Context{store: make(map[string]any)} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	c.sess = nil
	for k := range c.store {
		delete(c.store, k)
	}
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	c.sess = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a numeric path parameter; ok is false for anything that
// is not a positive integer.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// DefaultQuery returns a query-string value, or def if it is empty.
func (c *Context) DefaultQuery(key, def string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return def
}

// PostForm returns a form field from the request body.
func (c *Context) PostForm(key string) string {
	return c.R.FormValue(key)
}

func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

func (c *Context) Method() string { return c.R.Method }

func (c *Context) Path() string { return c.R.URL.Path }

// ClientIP returns the client IP, respecting X-Forwarded-For.
func (c *Context) ClientIP() string {
	if fwd := c.R.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	if real := c.R.Header.Get("X-Real-Ip"); real != "" {
		return real
	}
	ip := c.R.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

func (c *Context) Context() context.Context { return c.R.Context() }

// Logger returns the request-scoped logger (tagged with request_id).
func (c *Context) Logger() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// Session returns the request's session. Changes are saved by Wrap.
func (c *Context) Session() *session.Session {
	if c.sess == nil {
		c.sess = session.FromCtx(c.R)
	}
	return c.sess
}

func (c *Context) flushSession() {
	if c.sess == nil || c.status != 0 {
		return
	}
	if err := c.sess.Save(c.W); err != nil {
		c.Logger().Error("session save failed", "error", err)
	}
}

// ─── Per-request store ────────────────────────────────────────────────────────

// Set stores a value for later middleware or handlers in this request.
func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	c.store[key] = val
	c.mu.Unlock()
}

func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

// GetString returns a string value from the store, or "" if absent.
func (c *Context) GetString(key string) string {
	v, _ := c.Get(key)
	s, _ := v.(string)
	return s
}

// ─── Binding / Validation ─────────────────────────────────────────────────────

// Bind decodes a JSON or form body into dest and validates it. On failure
// it writes a 400 or 422 and returns false.
//
//	var in OrderForm
//	if !c.Bind(&in) {
//	    return
//	}
func (c *Context) Bind(dest any) bool {
	errs, err := bind.Request(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// BindJSON is Bind restricted to JSON bodies.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

func (c *Context) SetHeader(key, value string) {
	c.W.Header().Set(key, value)
}

// before runs ahead of every response write so the session cookie makes it
// into the headers.
func (c *Context) before(code int) {
	c.flushSession()
	c.status = code
}

// JSON writes v as-is with the given status.
func (c *Context) JSON(code int, v any) {
	c.before(code)
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(code)
	json.NewEncoder(c.W).Encode(v) //nolint:errcheck
}

func (c *Context) envelope(code int, body response.Envelope) {
	c.before(code)
	response.Write(c.W, code, body)
}

// Success sends a 200 envelope.
func (c *Context) Success(data any) {
	c.envelope(http.StatusOK, response.Envelope{Status: http.StatusOK, Data: data})
}

// Message sends a 200 envelope carrying a user-facing message.
func (c *Context) Message(message string, data any) {
	c.envelope(http.StatusOK, response.Envelope{Status: http.StatusOK, Message: message, Data: data})
}

// Created sends a 201 envelope and, when location is set, the Location header.
func (c *Context) Created(location string, data any) {
	if location != "" {
		c.SetHeader("Location", location)
	}
	c.envelope(http.StatusCreated, response.Envelope{Status: http.StatusCreated, Data: data})
}

// Error sends an error envelope.
func (c *Context) Error(code int, message string) {
	c.envelope(code, response.Envelope{Status: code, Message: message})
}

// Fail sends an error envelope with a data payload, used when the client
// needs state back to redisplay a form.
func (c *Context) Fail(code int, message string, data any) {
	c.Respond(code, message, data)
}

// Respond sends an envelope with any status, message and data.
func (c *Context) Respond(code int, message string, data any) {
	c.envelope(code, response.Envelope{Status: code, Message: message, Data: data})
}

// ValidationError sends a 422 with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.envelope(http.StatusUnprocessableEntity, response.Envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

func (c *Context) Unauthorized(message ...string) {
	c.Error(http.StatusUnauthorized, first(message, "Unauthorized"))
}

func (c *Context) Forbidden(message ...string) {
	c.Error(http.StatusForbidden, first(message, "Forbidden"))
}

func (c *Context) NotFound(message ...string) {
	c.Error(http.StatusNotFound, first(message, "Not found"))
}

// String writes a plain-text response.
func (c *Context) String(code int, format string, args ...any) {
	c.before(code)
	c.W.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.W.WriteHeader(code)
	fmt.Fprintf(c.W, format, args...)
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }

func first(msgs []string, def string) string {
	if len(msgs) > 0 {
		return msgs[0]
	}
	return def
}
