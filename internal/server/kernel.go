package server

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/foodhub/app/routes"
	"github.com/shashiranjanraj/foodhub/config"
	"github.com/shashiranjanraj/foodhub/pkg/metrics"
	"github.com/shashiranjanraj/foodhub/pkg/middleware"
	"github.com/shashiranjanraj/foodhub/pkg/reqid"
	"github.com/shashiranjanraj/foodhub/pkg/router"
	"github.com/shashiranjanraj/foodhub/pkg/session"
)

// NewRouter builds the router with the global middleware stack and every
// application route.
func NewRouter(d routes.Deps) (*router.Router, error) {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics: outermost for accurate total latency
	//  2. Recovery: catches panics before they kill the goroutine
	//  3. Request ID: inject unique ID before anything logs
	//  4. Logger: logs request_id from context
	//  5. Session: load/create session cookie from the cache store
	//  6. Authenticate: resolve the caller from session or bearer token
	//  7. CORS
	//  8. Rate limiter: reject abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.Authenticate)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimit(), time.Minute))

	if err := routes.RegisterWeb(r, d); err != nil {
		return nil, err
	}
	return r, nil
}

// Handler is NewRouter's http.Handler.
func Handler(d routes.Deps) (http.Handler, error) {
	r, err := NewRouter(d)
	if err != nil {
		return nil, err
	}
	return r.Handler(), nil
}
