package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gridclaim/gridclaim-backend/internal/apperror"
	"github.com/gridclaim/gridclaim-backend/internal/session"
)

// Message - one inbound client message.
type Message struct {
	Action string `json:"action"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// handleConnection - the per-connection control loop: admission, event writer,
// claim dispatch, disconnect cleanup.
func (that *Server) handleConnection(ctx context.Context, bufrw *bufio.ReadWriter) {
	log := that.logger.With("method", "handleConnection")

	member, err := that.session.Admit()
	if errors.Is(err, apperror.ErrSessionFull) {
		log.Info("admission rejected, session full")

		if err = writeCloseFrame(bufrw, closeCodePolicyViolation, "game is full"); err != nil {
			log.Error("failed to send close frame", "error", err)
		}

		return
	}

	if err != nil {
		log.Error("admission failed", "error", err)
		return
	}

	log = log.With("memberID", member.ID)

	// Removal is idempotent, so running it on every exit path is safe even
	// when the transport reports the close more than once.
	defer that.session.Remove(member.ID)

	// All post-admission writes happen on this goroutine; the read loop never
	// writes, so frames are never interleaved.
	go func() {
		for event := range member.Events() {
			if writeErr := sendEvent(bufrw, event); writeErr != nil {
				log.Error("failed to send event", "error", writeErr)
				return
			}
		}
	}()

	for {
		payload, opCode, err := that.readRequest(bufrw)
		if err != nil {
			log.Info("connection closed", "error", err)
			return
		}

		if opCode == opCodeClose {
			log.Info("close frame received")
			return
		}

		if payload == nil {
			continue
		}

		var message Message
		if err = json.Unmarshal(payload, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, member, &message); err != nil {
			// Invalid claims are dropped without feedback; the missing board
			// update is the client's negative signal.
			log.Debug("message ignored", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) handleClaim(_ context.Context, member *session.Member, message *Message) error {
	if err := that.session.Claim(member.ID, message.Row, message.Col); err != nil {
		return fmt.Errorf("claim (%d, %d): %w", message.Row, message.Col, err)
	}

	return nil
}
