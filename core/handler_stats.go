package core

import (
	"net/http"

	"github.com/caasmo/webjarcors/topk"
)

type statsData struct {
	Ticks     uint64       `json:"ticks"`
	Libraries []topk.Entry `json:"libraries"`
}

// StatsHandler lists the most requested libraries in the current window.
// Endpoint: GET /stats/webjars
func (a *App) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if a.tracker == nil {
		WriteJsonError(w, errorStatsDisabled)
		return
	}
	writeJsonWithData(w, JsonWithData{
		JsonBasic: JsonBasic{Status: http.StatusOK, Code: CodeOkStats, Message: "Most requested libraries"},
		Data:      statsData{Ticks: a.tracker.Ticks(), Libraries: a.tracker.Top()},
	})
}
