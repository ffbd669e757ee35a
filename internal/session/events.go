package session

import "github.com/gridclaim/gridclaim-backend/internal/entity"

const (
	StatusStarted  = "started"
	StatusUpdate   = "update"
	StatusGameOver = "game_over"
	StatusAborted  = "aborted"
)

// Event - one outbound notification, marshaled as-is onto the wire. Which
// fields are set depends on the kind of event: identity assignment carries
// PlayerID and Symbol, roster updates carry Players, lifecycle and board
// events carry Status plus Board or Winner.
type Event struct {
	PlayerID int                  `json:"player_id,omitempty"`
	Symbol   string               `json:"symbol,omitempty"`
	Players  []entity.Participant `json:"connected_players,omitempty"`
	Status   string               `json:"status,omitempty"`
	Board    [][]string           `json:"board,omitempty"`
	Winner   string               `json:"winner,omitempty"`
}
