package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tolgauslu/authgate"
	"github.com/tolgauslu/authgate/middleware"
)

// API is the HTTP layer over a credential engine.
type API struct {
	engine  *authgate.Engine
	mux     *http.ServeMux
	metrics *httpMetrics
	version string
}

// New builds the route table. Each API instance carries its own Prometheus
// registry so tests can construct several without collisions.
func New(engine *authgate.Engine, version string) *API {
	a := &API{
		engine:  engine,
		mux:     http.NewServeMux(),
		metrics: newHTTPMetrics(prometheus.NewRegistry()),
		version: version,
	}
	a.metrics.registry.MustRegister(newEngineCollector(engine))

	a.mux.HandleFunc("/auth/register", a.handleRegister)
	a.mux.HandleFunc("/auth/login", a.handleLogin)
	a.mux.HandleFunc("/auth/refresh", a.handleRefresh)
	a.mux.HandleFunc("/auth/logout", a.handleLogout)

	guard := middleware.Guard(engine)
	a.mux.Handle("/auth/profile", guard(http.HandlerFunc(a.handleProfile)))

	a.mux.HandleFunc("/healthz", a.handleHealthz)
	a.mux.Handle("/metrics", promhttp.HandlerFor(a.metrics.registry, promhttp.HandlerOpts{}))

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the instrumented root handler.
func (a *API) Handler() http.Handler {
	return a.metrics.instrument(a.mux)
}
