package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/isqad/livelook-webinar/internal/core"
)

// SessionStateHandler serves a snapshot of the webinar session state
func SessionStateHandler(session *core.WebinarSession) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(session.Snapshot()); err != nil {
			log.Error().Err(err).Str("service", "api").Msg("can't encode session state")
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
}
