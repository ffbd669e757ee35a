package entity

import "time"

// Participant - one connected client: an identity assigned in admission order
// and the symbol bound to it for the lifetime of the connection.
type Participant struct {
	ID     int    `json:"id"`
	Symbol string `json:"symbol"`
}

// GameResult - the archived outcome of one finished game.
type GameResult struct {
	Winner       string        `json:"winner,omitempty"`
	Aborted      bool          `json:"aborted,omitempty"`
	FilledCells  int           `json:"filled_cells"`
	Participants []Participant `json:"participants"`
	EndedAt      time.Time     `json:"ended_at"`
}
