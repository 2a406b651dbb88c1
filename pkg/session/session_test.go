package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/foodhub/pkg/cache"
	"github.com/shashiranjanraj/foodhub/pkg/session"
)

func serve(t *testing.T, h http.HandlerFunc, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	session.Middleware(session.DefaultOptions())(h).ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "foodhub_session" {
			return c
		}
	}
	return nil
}

func TestSessionPersistsAcrossRequests(t *testing.T) {
	prev := cache.Current()
	cache.Use(cache.NewMemoryStore())
	t.Cleanup(func() { cache.Use(prev) })

	type coupon struct {
		Code     string  `json:"code"`
		Discount float64 `json:"discount"`
	}

	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)
		sess.Set("username", "asha")
		sess.Set("coupon", coupon{Code: "PNC", Discount: 0.2})
		require.NoError(t, sess.Save(w))
	})
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)

	serve(t, func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)
		name, ok := sess.GetString("username")
		assert.True(t, ok)
		assert.Equal(t, "asha", name)

		var c coupon
		require.True(t, sess.GetInto("coupon", &c))
		assert.Equal(t, coupon{Code: "PNC", Discount: 0.2}, c)
	}, cookie)
}

func TestUnchangedSessionWritesNoCookie(t *testing.T) {
	rec := serve(t, func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)
		_, _ = sess.Get("missing")
		require.NoError(t, sess.Save(w))
	})
	assert.Nil(t, sessionCookie(rec))
}

func TestDeleteReportsPresence(t *testing.T) {
	serve(t, func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)
		assert.False(t, sess.Delete("coupon"))
		sess.Set("coupon", "x")
		assert.True(t, sess.Delete("coupon"))
		assert.False(t, sess.Has("coupon"))
	})
}

func TestRegenerateDropsOldID(t *testing.T) {
	prev := cache.Current()
	cache.Use(cache.NewMemoryStore())
	t.Cleanup(func() { cache.Use(prev) })

	first := sessionCookie(serve(t, func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)
		sess.Set("cart", "x")
		require.NoError(t, sess.Save(w))
	}))
	require.NotNil(t, first)

	second := sessionCookie(serve(t, func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromCtx(r)
		require.NoError(t, sess.Regenerate())
		sess.Set("username", "asha")
		require.NoError(t, sess.Save(w))
	}, first))
	require.NotNil(t, second)
	assert.NotEqual(t, first.Value, second.Value)

	serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, session.FromCtx(r).Has("username"))
	}, first)
}
