package http

import (
	"net/http"

	"github.com/AbdulWasayUl/go-world-clock/internal/clock"
)

type Deps struct {
	Now         NowReporter
	Zones       ZoneLister
	Clock       clock.Clock
	CORSOrigins []string
}

// NewRouter binds every route and wraps the mux in CORS and request logging.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthHandler)
	mux.Handle("/{$}", HandleRoot())
	mux.Handle("/now", HandleNow(d.Now, d.Clock))
	mux.Handle("/timezone", HandleTimezones(d.Zones))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})

	return RequestLogger(CORS(d.CORSOrigins, mux))
}
