package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gridclaim/gridclaim-backend/internal/entity"
	"github.com/gridclaim/gridclaim-backend/internal/repository"
)

const recentResultsLimit = 20

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// resultsHandler - returns the most recent archived game results as JSON.
func resultsHandler(logger *slog.Logger, archive resultArchive) http.HandlerFunc {
	log := logger.With("handler", "results")

	return func(w http.ResponseWriter, r *http.Request) {
		if archive == nil {
			http.Error(w, "result archive is disabled", http.StatusServiceUnavailable)
			return
		}

		results, err := archive.Recent(r.Context(), recentResultsLimit)
		if errors.Is(err, repository.ErrNoResults) {
			results = []entity.GameResult{}
		} else if err != nil {
			log.Error("failed to read results", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(results); err != nil {
			log.Error("failed to encode results", "error", err)
		}
	}
}
