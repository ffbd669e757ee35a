package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fill - seeds a board from row-major cell values.
func fill(t *testing.T, board *Board, cells [][]string) {
	t.Helper()

	for row, values := range cells {
		for col, value := range values {
			if value != EmptyCell {
				board.Set(row, col, value)
			}
		}
	}
}

func TestNewBoard(t *testing.T) {
	// Given: a freshly allocated 5x5 board
	board := NewBoard(5)

	// Then: every cell is empty and nothing is decided
	assert.Equal(t, 5, board.Size())
	assert.False(t, board.IsFull())
	assert.Equal(t, 0, board.FilledCount())

	winner, over := board.Evaluate()
	assert.Equal(t, NoWinner, winner)
	assert.False(t, over)
}

func TestBoard_InBounds(t *testing.T) {
	board := NewBoard(5)

	assert.True(t, board.InBounds(0, 0))
	assert.True(t, board.InBounds(4, 4))
	assert.False(t, board.InBounds(-1, 0))
	assert.False(t, board.InBounds(0, 5))
	assert.False(t, board.InBounds(5, 0))
}

func TestBoard_Evaluate_LineWins(t *testing.T) {
	t.Run("Full row wins", func(t *testing.T) {
		// Given: a board where X holds all of row 2
		board := NewBoard(5)
		for col := 0; col < 5; col++ {
			board.Set(2, col, SymbolX)
		}

		// When: evaluating the board
		winner, over := board.Evaluate()

		// Then: X wins
		require.True(t, over)
		assert.Equal(t, SymbolX, winner)
	})

	t.Run("Full column wins", func(t *testing.T) {
		// Given: a board where O holds all of column 4
		board := NewBoard(5)
		for row := 0; row < 5; row++ {
			board.Set(row, 4, SymbolO)
		}

		winner, over := board.Evaluate()

		require.True(t, over)
		assert.Equal(t, SymbolO, winner)
	})

	t.Run("Main diagonal wins", func(t *testing.T) {
		// Given: a board where the triangle holds the main diagonal
		board := NewBoard(5)
		for i := 0; i < 5; i++ {
			board.Set(i, i, SymbolTriangle)
		}

		winner, over := board.Evaluate()

		require.True(t, over)
		assert.Equal(t, SymbolTriangle, winner)
	})

	t.Run("Anti diagonal wins", func(t *testing.T) {
		board := NewBoard(5)
		for i := 0; i < 5; i++ {
			board.Set(i, 4-i, SymbolX)
		}

		winner, over := board.Evaluate()

		require.True(t, over)
		assert.Equal(t, SymbolX, winner)
	})

	t.Run("Incomplete line is not a win", func(t *testing.T) {
		// Given: X holds four of five cells in row 0
		board := NewBoard(5)
		for col := 0; col < 4; col++ {
			board.Set(0, col, SymbolX)
		}

		// Then: the game continues
		winner, over := board.Evaluate()
		assert.Equal(t, NoWinner, winner)
		assert.False(t, over)
	})

	t.Run("Mixed line is not a win", func(t *testing.T) {
		// Given: a row broken by one opposing symbol
		board := NewBoard(5)
		for col := 0; col < 5; col++ {
			board.Set(0, col, SymbolX)
		}
		board.Set(0, 3, SymbolO)

		winner, over := board.Evaluate()
		assert.Equal(t, NoWinner, winner)
		assert.False(t, over)
	})
}

func TestBoard_Evaluate_TieBreak(t *testing.T) {
	t.Run("Unique count leader wins a full board", func(t *testing.T) {
		// Given: a full 3x3 board, no line win, X on 5 cells and O on 4
		board := NewBoard(3)
		fill(t, board, [][]string{
			{SymbolX, SymbolO, SymbolX},
			{SymbolO, SymbolO, SymbolX},
			{SymbolX, SymbolX, SymbolO},
		})
		require.True(t, board.IsFull())

		// When: evaluating the board
		winner, over := board.Evaluate()

		// Then: X wins the tie-break by count
		require.True(t, over)
		assert.Equal(t, SymbolX, winner)
	})

	t.Run("Shared maximum is a true draw", func(t *testing.T) {
		// Given: a full 4x4 board with 8 X and 8 O cells and no line win
		board := NewBoard(4)
		fill(t, board, [][]string{
			{SymbolX, SymbolO, SymbolX, SymbolO},
			{SymbolO, SymbolX, SymbolO, SymbolX},
			{SymbolO, SymbolX, SymbolO, SymbolX},
			{SymbolX, SymbolO, SymbolX, SymbolO},
		})
		require.True(t, board.IsFull())

		// When: evaluating the board
		winner, over := board.Evaluate()

		// Then: the game is over with no winner
		require.True(t, over)
		assert.Equal(t, NoWinner, winner)
	})

	t.Run("Not full board without line win continues", func(t *testing.T) {
		board := NewBoard(3)
		fill(t, board, [][]string{
			{SymbolX, SymbolO, SymbolX},
			{SymbolO, EmptyCell, SymbolX},
			{SymbolX, SymbolX, SymbolO},
		})

		winner, over := board.Evaluate()
		assert.Equal(t, NoWinner, winner)
		assert.False(t, over)
	})

	t.Run("Line win on a full board beats the count", func(t *testing.T) {
		// Given: a full board where O completes a row while X holds more cells
		board := NewBoard(4)
		fill(t, board, [][]string{
			{SymbolX, SymbolX, SymbolX, SymbolO},
			{SymbolX, SymbolX, SymbolO, SymbolX},
			{SymbolO, SymbolX, SymbolX, SymbolX},
			{SymbolO, SymbolO, SymbolO, SymbolO},
		})

		winner, over := board.Evaluate()

		require.True(t, over)
		assert.Equal(t, SymbolO, winner)
	})
}

func TestBoard_Rows(t *testing.T) {
	// Given: a board with one claimed cell
	board := NewBoard(3)
	board.Set(1, 1, SymbolO)

	// When: taking a wire copy and mutating it
	rows := board.Rows()
	rows[0][0] = SymbolX

	// Then: the board itself is untouched
	assert.Equal(t, EmptyCell, board.Cell(0, 0))
	assert.Equal(t, SymbolO, board.Cell(1, 1))
}
