package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/gridclaim/gridclaim-backend/internal/apperror"
	"github.com/gridclaim/gridclaim-backend/internal/entity"
)

const (
	StateWaiting = "waiting"
	StateActive  = "active"
	StateOver    = "over"
)

// outboxSize bounds each member's event queue; a member that falls this far
// behind starts losing broadcasts instead of stalling arbitration.
const outboxSize = 16

const recordTimeout = 5 * time.Second

type resultRecorder interface {
	Record(ctx context.Context, result *entity.GameResult) error
}

// Member - an admitted participant together with its outbound event queue.
// The transport drains Events until it is closed on removal.
type Member struct {
	entity.Participant

	events chan Event
}

func (that *Member) Events() <-chan Event {
	return that.events
}

// deliver - queues an event without blocking; reports false when the member's
// queue is full and the event is dropped.
func (that *Member) deliver(event Event) bool {
	select {
	case that.events <- event:
		return true
	default:
		return false
	}
}

// Session owns the single game: the connected members, the board, and the
// lifecycle state. Every mutation goes through one mutex so that claims are
// always evaluated against a consistent board. Nothing inside the critical
// section blocks; event delivery is a non-blocking queue send.
type Session struct {
	logger  *slog.Logger
	records resultRecorder

	boardSize  int
	minMembers int
	capacity   int

	mu      sync.Mutex
	state   string
	board   *entity.Board
	winner  string
	aborted bool
	members map[int]*Member
	nextID  int
}

// New - creates a session in the waiting state with no board. The records
// recorder is optional; pass nil to disable result archiving.
func New(logger *slog.Logger, boardSize, minMembers int, records resultRecorder) *Session {
	return &Session{
		logger:  logger.With("component", "session"),
		records: records,

		boardSize:  boardSize,
		minMembers: minMembers,
		capacity:   len(entity.Symbols),

		state:   StateWaiting,
		members: make(map[int]*Member),
		nextID:  1,
	}
}

// Admit - registers a new member, assigning the next identity and the lowest
// free symbol. The identity and the updated roster are queued before Admit
// returns, followed by the game-start broadcast when this admission reaches
// the minimum, or by a catch-up unicast when the game is already underway.
func (that *Session) Admit() (*Member, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.members) >= that.capacity {
		return nil, apperror.ErrSessionFull
	}

	member := &Member{
		Participant: entity.Participant{
			ID:     that.nextID,
			Symbol: that.freeSymbolLocked(),
		},
		events: make(chan Event, outboxSize),
	}

	that.nextID++
	that.members[member.ID] = member

	member.deliver(Event{PlayerID: member.ID, Symbol: member.Symbol})
	that.broadcastLocked(Event{Players: that.snapshotLocked()})

	switch {
	case that.state == StateWaiting && len(that.members) >= that.minMembers:
		that.startLocked()
	case that.state != StateWaiting:
		// Late joiner: bring its view in line with everyone else's before
		// any further broadcast can reach it.
		member.deliver(Event{Status: StatusStarted, Board: that.board.Rows()})
		if that.state == StateOver {
			member.deliver(that.outcomeEventLocked())
		}
	}

	that.logger.Info("member admitted", "id", member.ID, "symbol", member.Symbol, "state", that.state)

	return member, nil
}

// Remove - unregisters a member, closing its event queue and freeing its
// symbol. Removing an unknown or already removed member is a no-op. Dropping
// below the minimum during an active game aborts it; an empty session resets
// the lifecycle to waiting.
func (that *Session) Remove(id int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	member, ok := that.members[id]
	if !ok {
		return
	}

	delete(that.members, id)
	close(member.events)

	that.broadcastLocked(Event{Players: that.snapshotLocked()})

	if that.state == StateActive && len(that.members) < that.minMembers {
		that.finishLocked(entity.NoWinner, true)
	}

	if len(that.members) == 0 {
		that.resetLocked()
	}

	that.logger.Info("member removed", "id", id, "state", that.state)
}

// Claim - attempts to set one empty cell to the member's symbol. The state
// check, bounds check, cell check, mutation, and outcome evaluation all
// happen under one critical section, so two racing claims can never both
// succeed on the same cell and a decisive result is detected by exactly one
// claim. The returned error names the rejection reason; callers surface
// nothing to the client.
func (that *Session) Claim(id, row, col int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	member, ok := that.members[id]
	if !ok {
		return apperror.ErrUnknownMember
	}

	if that.state != StateActive {
		return apperror.ErrGameNotActive
	}

	if !that.board.InBounds(row, col) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCell, row, col)
	}

	if !that.board.IsEmpty(row, col) {
		return apperror.ErrCellOccupied
	}

	that.board.Set(row, col, member.Symbol)
	that.broadcastLocked(Event{Status: StatusUpdate, Board: that.board.Rows()})

	if winner, over := that.board.Evaluate(); over {
		that.finishLocked(winner, false)
	}

	return nil
}

// Snapshot - returns the current members ordered by identity.
func (that *Session) Snapshot() []entity.Participant {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

func (that *Session) State() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state
}

// startLocked - the one-time waiting→active transition: allocate a fresh
// board and announce it.
func (that *Session) startLocked() {
	that.state = StateActive
	that.board = entity.NewBoard(that.boardSize)

	that.broadcastLocked(Event{Status: StatusStarted, Board: that.board.Rows()})

	that.logger.Info("game started", "members", len(that.members))
}

// finishLocked - the transition into over: record the outcome, announce it,
// and hand the result to the archive outside the critical section.
func (that *Session) finishLocked(winner string, aborted bool) {
	that.state = StateOver
	that.winner = winner
	that.aborted = aborted

	that.broadcastLocked(that.outcomeEventLocked())

	that.logger.Info("game over", "winner", winner, "aborted", aborted)

	that.archiveLocked()
}

func (that *Session) resetLocked() {
	that.state = StateWaiting
	that.board = nil
	that.winner = entity.NoWinner
	that.aborted = false
	that.nextID = 1

	that.logger.Info("session reset")
}

func (that *Session) outcomeEventLocked() Event {
	if that.aborted {
		return Event{Status: StatusAborted}
	}

	return Event{Status: StatusGameOver, Winner: that.winner}
}

// broadcastLocked - queues an event for every registered member. A member
// whose queue is full just misses the event; the remaining members still
// receive it.
func (that *Session) broadcastLocked(event Event) {
	for _, member := range that.members {
		if !member.deliver(event) {
			that.logger.Warn("event dropped for slow member", "id", member.ID, "status", event.Status)
		}
	}
}

// freeSymbolLocked - the lowest symbol index not bound to a connected member.
func (that *Session) freeSymbolLocked() string {
	for _, symbol := range entity.Symbols {
		inUse := false
		for _, member := range that.members {
			if member.Symbol == symbol {
				inUse = true
				break
			}
		}

		if !inUse {
			return symbol
		}
	}

	// unreachable: capacity equals the alphabet size
	return entity.Symbols[len(entity.Symbols)-1]
}

func (that *Session) snapshotLocked() []entity.Participant {
	participants := make([]entity.Participant, 0, len(that.members))
	for _, member := range that.members {
		participants = append(participants, member.Participant)
	}

	sort.Slice(participants, func(i, j int) bool {
		return participants[i].ID < participants[j].ID
	})

	return participants
}

// archiveLocked - snapshots the finished game and records it on a separate
// goroutine so the critical section never waits on storage I/O.
func (that *Session) archiveLocked() {
	if that.records == nil {
		return
	}

	result := &entity.GameResult{
		Winner:       that.winner,
		Aborted:      that.aborted,
		FilledCells:  that.board.FilledCount(),
		Participants: that.snapshotLocked(),
		EndedAt:      time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := that.records.Record(ctx, result); err != nil {
			that.logger.Error("failed to record game result", "error", err)
		}
	}()
}
