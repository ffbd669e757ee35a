package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridclaim/gridclaim-backend/internal/entity"
	"github.com/gridclaim/gridclaim-backend/testing/suite"
)

func TestResultRepository_Record(t *testing.T) {
	ctx, st := suite.New(t)

	resultRepo := NewResultRepository(st.Storage)

	// Given: a finished game outcome
	result := &entity.GameResult{
		Winner:      entity.SymbolX,
		FilledCells: 9,
		Participants: []entity.Participant{
			{ID: 1, Symbol: entity.SymbolX},
			{ID: 2, Symbol: entity.SymbolO},
		},
		EndedAt: time.Now().UTC().Truncate(time.Second),
	}

	// When: Record is called
	err := resultRepo.Record(ctx, result)

	// Then: no error should be returned, and the result is stored
	require.NoError(t, err)
}

func TestResultRepository_Recent(t *testing.T) {
	t.Run("Recent_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage)

		// Given: two recorded results
		older := &entity.GameResult{
			Winner:      entity.SymbolO,
			FilledCells: 25,
			EndedAt:     time.Now().UTC().Add(-time.Minute).Truncate(time.Second),
		}
		newer := &entity.GameResult{
			Aborted: true,
			EndedAt: time.Now().UTC().Truncate(time.Second),
		}

		require.NoError(t, resultRepo.Record(ctx, older))
		require.NoError(t, resultRepo.Record(ctx, newer))

		// When: Recent is called
		results, err := resultRepo.Recent(ctx, 10)

		// Then: both results come back, newest first
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.True(t, results[0].Aborted)
		assert.Equal(t, entity.SymbolO, results[1].Winner)
	})

	t.Run("Recent_Empty", func(t *testing.T) {
		ctx, st := suite.New(t)

		resultRepo := NewResultRepository(st.Storage)

		// When: Recent is called on an empty archive
		results, err := resultRepo.Recent(ctx, 10)

		// Then: an ErrNoResults error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrNoResults, err)
		assert.Nil(t, results)
	})
}
