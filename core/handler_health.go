package core

import (
	"net/http"

	"github.com/caasmo/webjarcors/webjars"
)

// HealthHandler reports liveness and whether the asset chain is wired.
// Endpoint: GET /healthz
func (a *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !a.dispatcher.CanHandle(webjars.Type) {
		WriteJsonError(w, errorInternal)
		return
	}
	writeJsonResponse(w, okHealthy)
}
