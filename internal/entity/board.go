package entity

const (
	SymbolX        = "X"
	SymbolO        = "O"
	SymbolTriangle = "△"

	EmptyCell = ""
	NoWinner  = ""
)

// Symbols - the closed marker alphabet, in assignment order. Its length is the
// session capacity.
var Symbols = []string{SymbolX, SymbolO, SymbolTriangle}

// Board is an N×N grid of cells, each empty or holding one symbol. A cell,
// once set, is never changed or cleared for the lifetime of one game.
type Board struct {
	size  int
	cells [][]string
}

func NewBoard(size int) *Board {
	cells := make([][]string, size)
	for row := range cells {
		cells[row] = make([]string, size)
		for col := range cells[row] {
			cells[row][col] = EmptyCell
		}
	}

	return &Board{
		size:  size,
		cells: cells,
	}
}

func (that *Board) Size() int {
	return that.size
}

// InBounds - reports whether the coordinates address a cell on this board.
func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

func (that *Board) Cell(row, col int) string {
	return that.cells[row][col]
}

func (that *Board) IsEmpty(row, col int) bool {
	return that.cells[row][col] == EmptyCell
}

// Set - writes a symbol into a cell. Callers check bounds and emptiness first;
// the board itself does not arbitrate.
func (that *Board) Set(row, col int, symbol string) {
	that.cells[row][col] = symbol
}

func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Board) FilledCount() int {
	count := 0
	for _, row := range that.cells {
		for _, cell := range row {
			if cell != EmptyCell {
				count++
			}
		}
	}

	return count
}

// Rows - returns a copy of the grid for the wire; mutating the copy does not
// touch the board.
func (that *Board) Rows() [][]string {
	rows := make([][]string, that.size)
	for i, row := range that.cells {
		rows[i] = make([]string, that.size)
		copy(rows[i], row)
	}

	return rows
}

// Evaluate - determines the game outcome from the current board. It returns
// the winning symbol and true for a line win or a tie-break win, NoWinner and
// true for a full board with no single leader (a true draw), and NoWinner and
// false while the game can still continue.
func (that *Board) Evaluate() (string, bool) {
	if winner := that.lineWinner(); winner != NoWinner {
		return winner, true
	}

	if !that.IsFull() {
		return NoWinner, false
	}

	return that.countLeader(), true
}

// lineWinner - checks every row, column, and both diagonals for a single
// symbol occupying the full line.
func (that *Board) lineWinner() string {
	for row := 0; row < that.size; row++ {
		if symbol := that.lineOwner(row, 0, 0, 1); symbol != NoWinner {
			return symbol
		}
	}

	for col := 0; col < that.size; col++ {
		if symbol := that.lineOwner(0, col, 1, 0); symbol != NoWinner {
			return symbol
		}
	}

	if symbol := that.lineOwner(0, 0, 1, 1); symbol != NoWinner {
		return symbol
	}

	return that.lineOwner(0, that.size-1, 1, -1)
}

// lineOwner - walks one full line from (row, col) with the given step and
// returns the symbol owning it, or NoWinner.
func (that *Board) lineOwner(row, col, rowStep, colStep int) string {
	first := that.cells[row][col]
	if first == EmptyCell {
		return NoWinner
	}

	for i := 1; i < that.size; i++ {
		if that.cells[row+i*rowStep][col+i*colStep] != first {
			return NoWinner
		}
	}

	return first
}

// countLeader - tie-break on a full board: the symbol holding strictly more
// cells than every other wins; a shared maximum is a true draw.
func (that *Board) countLeader() string {
	counts := make(map[string]int, len(Symbols))
	for _, row := range that.cells {
		for _, cell := range row {
			counts[cell]++
		}
	}

	leader := NoWinner
	best := 0
	tied := false

	for _, symbol := range Symbols {
		switch count := counts[symbol]; {
		case count > best:
			leader = symbol
			best = count
			tied = false
		case count == best && count > 0:
			tied = true
		}
	}

	if tied {
		return NoWinner
	}

	return leader
}
