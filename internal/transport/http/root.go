package http

import (
	"net/http"

	"github.com/AbdulWasayUl/go-world-clock/services/worldtime"
)

// HandleRoot serves the static greeting listing the public endpoints.
func HandleRoot() http.HandlerFunc {
	greeting := worldtime.BuildGreeting()
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowRead(w, r) {
			return
		}
		writeJSON(w, r, http.StatusOK, greeting)
	}
}
