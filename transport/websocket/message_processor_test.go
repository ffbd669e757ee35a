package websocket

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridclaim/gridclaim-backend/internal/session"
)

// clientFrame - builds a masked single-fragment client frame, the way a
// browser sends it.
func clientFrame(t *testing.T, opCode byte, payload []byte) []byte {
	t.Helper()

	require.Less(t, len(payload), 126, "test helper only supports short frames")

	mask := []byte{0x1f, 0x2e, 0x3d, 0x4c}

	frame := []byte{0x80 | opCode, 0x80 | byte(len(payload))}
	frame = append(frame, mask...)
	for i, b := range payload {
		frame = append(frame, b^mask[i%4])
	}

	return frame
}

func readerFor(data []byte) *bufio.ReadWriter {
	return bufio.NewReadWriter(bufio.NewReader(bytes.NewReader(data)), bufio.NewWriter(io.Discard))
}

func TestReadRequest_MaskedTextFrame(t *testing.T) {
	server := &Server{}

	// Given: a masked claim message from a client
	message := []byte(`{"action":"claim","row":1,"col":2}`)
	bufrw := readerFor(clientFrame(t, opCodeText, message))

	// When: reading one request
	payload, opCode, err := server.readRequest(bufrw)

	// Then: the payload is unmasked and the opcode preserved
	require.NoError(t, err)
	assert.Equal(t, opCodeText, opCode)
	assert.Equal(t, message, payload)
}

func TestReadRequest_CloseFrame(t *testing.T) {
	server := &Server{}

	bufrw := readerFor(clientFrame(t, opCodeClose, nil))

	_, opCode, err := server.readRequest(bufrw)

	require.NoError(t, err)
	assert.Equal(t, opCodeClose, opCode)
}

func TestSendEvent(t *testing.T) {
	// Given: a board-update event
	var out bytes.Buffer
	bufrw := bufio.NewReadWriter(bufio.NewReader(&out), bufio.NewWriter(&out))

	event := session.Event{Status: session.StatusUpdate, Board: [][]string{{"X"}}}

	// When: sending it
	require.NoError(t, sendEvent(bufrw, event))

	// Then: the wire holds one final unmasked text frame with the JSON payload
	frame := out.Bytes()
	require.GreaterOrEqual(t, len(frame), 2)
	assert.Equal(t, byte(0x80|opCodeText), frame[0])

	length := int(frame[1] & 0x7f)
	require.Less(t, length, 126)
	assert.JSONEq(t, `{"status":"update","board":[["X"]]}`, string(frame[2:2+length]))
}

func TestWriteCloseFrame(t *testing.T) {
	// Given: an admission rejection
	var out bytes.Buffer
	bufrw := bufio.NewReadWriter(bufio.NewReader(&out), bufio.NewWriter(&out))

	// When: writing the close frame
	require.NoError(t, writeCloseFrame(bufrw, closeCodePolicyViolation, "game is full"))

	// Then: the frame carries opcode 8, the status code, and the reason
	frame := out.Bytes()
	require.GreaterOrEqual(t, len(frame), 4)
	assert.Equal(t, byte(0x80|opCodeClose), frame[0])
	assert.Equal(t, closeCodePolicyViolation, binary.BigEndian.Uint16(frame[2:4]))
	assert.Equal(t, "game is full", string(frame[4:]))
}
