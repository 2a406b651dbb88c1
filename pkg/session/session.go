// Package session provides cookie-identified HTTP sessions whose data lives
// in pkg/cache (Redis or memory).
//
// Usage (middleware):
//
//	r.Use(session.Middleware(session.DefaultOptions()))
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	sess.Set("username", "asha")
//	if err := sess.Save(w); err != nil { ... }
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/foodhub/config"
	"github.com/shashiranjanraj/foodhub/pkg/cache"
)

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions reads the TTL from config and marks the cookie Secure in
// production.
func DefaultOptions() Options {
	return Options{
		CookieName: "foodhub_session",
		TTL:        config.SessionTTL(),
		HTTPOnly:   true,
		Secure:     config.IsProduction(),
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type ctxKey struct{}

// Session is an in-request session handle. It is not safe for concurrent
// use; one request owns it.
type Session struct {
	id      string
	staleID string
	data    map[string]interface{}
	opts    Options
	changed bool
	ctx     context.Context
}

// newID generates a cryptographically random 32-byte hex session ID.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func storeKey(id string) string { return "foodhub:session:" + id }

func load(ctx context.Context, id string) map[string]interface{} {
	var data map[string]interface{}
	if cache.Get(ctx, storeKey(id), &data) && data != nil {
		return data
	}
	return map[string]interface{}{}
}

// New returns an empty session that is not yet persisted.
func New(ctx context.Context, opts Options) *Session {
	id, _ := newID()
	return &Session{id: id, data: map[string]interface{}{}, opts: opts, ctx: ctx}
}

func (s *Session) Set(key string, value interface{}) {
	s.data[key] = value
	s.changed = true
}

func (s *Session) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	s2, ok := v.(string)
	return s2, ok
}

// GetInto decodes a structured value (stored with Set) into dest. Values
// come back from the store as generic JSON, so they are re-marshalled.
func (s *Session) GetInto(key string, dest interface{}) bool {
	v, ok := s.data[key]
	if !ok || v == nil {
		return false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Has reports whether key is present.
func (s *Session) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Delete removes key and reports whether it was present.
func (s *Session) Delete(key string) bool {
	_, ok := s.data[key]
	delete(s.data, key)
	if ok {
		s.changed = true
	}
	return ok
}

// Flash stores a value that is removed by the next GetFlash.
func (s *Session) Flash(key string, value interface{}) {
	s.Set("_flash_"+key, value)
}

func (s *Session) GetFlash(key string) (interface{}, bool) {
	v, ok := s.Get("_flash_" + key)
	if ok {
		s.Delete("_flash_" + key)
	}
	return v, ok
}

// Invalidate clears every key (logout).
func (s *Session) Invalidate() {
	s.data = map[string]interface{}{}
	s.changed = true
}

// Regenerate moves the data to a fresh ID. Call it when privileges change
// (login) so a pre-login cookie cannot be reused.
func (s *Session) Regenerate() error {
	id, err := newID()
	if err != nil {
		return fmt.Errorf("session: new id: %w", err)
	}
	if s.staleID == "" {
		s.staleID = s.id
	}
	s.id = id
	s.changed = true
	return nil
}

func (s *Session) ID() string { return s.id }

// Save persists the data and writes the cookie. It is a no-op when nothing
// changed during the request.
func (s *Session) Save(w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}

	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	if s.staleID != "" {
		_ = cache.Del(ctx, storeKey(s.staleID))
		s.staleID = ""
	}

	if err := cache.Set(ctx, storeKey(s.id), s.data, s.opts.TTL); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})

	s.changed = false
	return nil
}

// Middleware loads (or creates) the session for every request and injects
// it into the request context.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts, ctx: r.Context()}

			if cookie, err := r.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
				sess.id = cookie.Value
				sess.data = load(r.Context(), sess.id)
			} else {
				sess.id, _ = newID()
				sess.data = map[string]interface{}{}
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx retrieves the session from the request context, or an empty
// unsaved session if the middleware did not run.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	return New(r.Context(), DefaultOptions())
}
