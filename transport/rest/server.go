package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gridclaim/gridclaim-backend/internal/entity"
)

type resultArchive interface {
	Recent(ctx context.Context, limit int) ([]entity.GameResult, error)
}

// Start - serves the health endpoint and the game-result archive. The archive
// may be nil when result recording is disabled.
func Start(logger *slog.Logger, port string, archive resultArchive) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/results", resultsHandler(logger, archive))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
