package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gridclaim/gridclaim-backend/internal/entity"
)

const (
	resultsKey = "results"

	// maxResults caps the archive; older results are trimmed away.
	maxResults = 100
)

var ErrNoResults = errors.New("no recorded results")

type ResultRepository interface {
	Record(ctx context.Context, result *entity.GameResult) error
	Recent(ctx context.Context, limit int) ([]entity.GameResult, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

// Record - prepends the result to the archive list and trims it to the cap.
func (that *dbResult) Record(ctx context.Context, result *entity.GameResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	if err = that.client.LPush(ctx, resultsKey, resultJSON).Err(); err != nil {
		return fmt.Errorf("failed to push result: %w", err)
	}

	if err = that.client.LTrim(ctx, resultsKey, 0, maxResults-1).Err(); err != nil {
		return fmt.Errorf("failed to trim results: %w", err)
	}

	return nil
}

// Recent - returns up to limit results, newest first.
func (that *dbResult) Recent(ctx context.Context, limit int) ([]entity.GameResult, error) {
	entries, err := that.client.LRange(ctx, resultsKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrNoResults
	}

	results := make([]entity.GameResult, 0, len(entries))
	for _, entry := range entries {
		var result entity.GameResult
		if err = json.Unmarshal([]byte(entry), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}

		results = append(results, result)
	}

	return results, nil
}
