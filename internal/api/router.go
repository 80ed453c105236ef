package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"zoneclash/internal/match"
)

// RouterConfig contains the dependencies for the HTTP router.
type RouterConfig struct {
	// Manager pairs peers into match rooms (required).
	Manager *match.Manager

	// RateLimiter is an optional pre-configured limiter; one is created
	// from RateLimitConfig (or the defaults) when nil.
	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig

	// CORSOrigins overrides the allowed origins. The same list gates
	// websocket upgrades.
	CORSOrigins []string

	// MaxRooms caps concurrent matches; 0 means unlimited.
	MaxRooms int

	// DisableLogging disables the request logger middleware.
	DisableLogging bool
}

// NewRouter constructs the HTTP router. It is pure: no goroutines, no
// listeners, so tests can mount it on httptest.NewServer directly.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rlCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rlCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rlCfg)
	}
	r.Use(rateLimiter.Middleware)
	r.Use(requestMetrics)

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h := &handlers{
		manager:     cfg.Manager,
		rateLimiter: rateLimiter,
		origins:     origins,
		maxRooms:    cfg.MaxRooms,
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/rooms", h.rooms)
		r.Get("/state", h.state)
		r.Get("/stats", h.stats)
		r.Get("/weapons", h.weapons)
		r.Get("/preview.png", h.preview)
	})

	r.Get("/ws", h.wsJoin)
	r.Get("/ws/solo", h.wsSolo)

	return r
}

// requestMetrics counts requests by method, route pattern and status. The
// pattern keeps label cardinality bounded regardless of what clients send.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		endpoint := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				endpoint = p
			}
		}
		RecordRequest(r.Method, endpoint, ww.Status())
	})
}
