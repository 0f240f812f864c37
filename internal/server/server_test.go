package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stuagano/wolf-goat-pig-sub000/internal/course"
	"github.com/stuagano/wolf-goat-pig-sub000/internal/game"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	holes := make([]course.Hole, 18)
	for i := range holes {
		holes[i] = course.Hole{Number: i + 1, Par: 4, StrokeIndex: i + 1}
	}
	players := []game.Player{
		{ID: "ann", Name: "Ann", TeeOrder: 1},
		{ID: "bob", Name: "Bob", TeeOrder: 2},
		{ID: "cat", Name: "Cat", TeeOrder: 3},
		{ID: "dee", Name: "Dee", TeeOrder: 4},
	}

	engine, err := game.NewEngine(game.Config{RoundID: "test-round", BaseWager: 1},
		players, holes, log.New(io.Discard))
	require.NoError(t, err)

	s := New("test-round", engine, log.New(io.Discard))
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func readMessage(t *testing.T, ws *websocket.Conn) *Message {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, ws.ReadJSON(&msg))
	return &msg
}

func sendAction(t *testing.T, ws *websocket.Conn, action game.Action, requestID string) {
	t.Helper()

	msg, err := NewMessage(MessageAction, action)
	require.NoError(t, err)
	msg.RequestID = requestID
	require.NoError(t, ws.WriteJSON(msg))
}

func TestServer_WriterClaimAndDispatch(t *testing.T) {
	srv := newTestServer(t)

	writer := dial(t, srv)

	welcome := readMessage(t, writer)
	require.Equal(t, MessageWelcome, welcome.Type)
	var wd WelcomeData
	require.NoError(t, json.Unmarshal(welcome.Data, &wd))
	assert.Equal(t, "test-round", wd.RoundID)
	assert.True(t, wd.Writer, "first connection holds the writer claim")

	state := readMessage(t, writer)
	require.Equal(t, MessageState, state.Type)
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(state.Data, &snap))
	assert.Equal(t, 1, snap.Hole)

	// Second connection observes.
	observer := dial(t, srv)
	welcome = readMessage(t, observer)
	require.NoError(t, json.Unmarshal(welcome.Data, &wd))
	assert.False(t, wd.Writer)
	readMessage(t, observer) // initial state

	// The writer dispatches; both connections see the new state.
	sendAction(t, writer, game.Action{
		Type:     game.ActionNextHole,
		Quarters: map[string]float64{"ann": 1, "bob": 1, "cat": -1, "dee": -1},
	}, "req-1")

	state = readMessage(t, writer)
	require.Equal(t, MessageState, state.Type)
	assert.Equal(t, "req-1", state.RequestID)
	require.NoError(t, json.Unmarshal(state.Data, &snap))
	assert.Equal(t, 2, snap.Hole)

	state = readMessage(t, observer)
	require.Equal(t, MessageState, state.Type)
	assert.Empty(t, state.RequestID, "request ids go only to the writer")
	require.NoError(t, json.Unmarshal(state.Data, &snap))
	assert.Equal(t, 2, snap.Hole)
}

func TestServer_ObserverCannotDispatch(t *testing.T) {
	srv := newTestServer(t)

	writer := dial(t, srv)
	readMessage(t, writer) // welcome
	readMessage(t, writer) // state

	observer := dial(t, srv)
	readMessage(t, observer) // welcome
	readMessage(t, observer) // state

	sendAction(t, observer, game.Action{Type: game.ActionInvokeFloat, PlayerID: "ann"}, "req-2")

	msg := readMessage(t, observer)
	require.Equal(t, MessageError, msg.Type)
	assert.Equal(t, "req-2", msg.RequestID)
	var ed ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &ed))
	assert.Contains(t, ed.Message, "writer claim")
}

func TestServer_RejectedActionReturnsError(t *testing.T) {
	srv := newTestServer(t)

	writer := dial(t, srv)
	readMessage(t, writer) // welcome
	readMessage(t, writer) // state

	// cat is not the captain on hole 1.
	sendAction(t, writer, game.Action{Type: game.ActionInvokeFloat, PlayerID: "cat"}, "req-3")

	msg := readMessage(t, writer)
	require.Equal(t, MessageError, msg.Type)
	assert.Equal(t, "req-3", msg.RequestID)
	var ed ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &ed))
	assert.Contains(t, ed.Message, "captain")
}

func TestServer_UnknownMessageType(t *testing.T) {
	srv := newTestServer(t)

	writer := dial(t, srv)
	readMessage(t, writer) // welcome
	readMessage(t, writer) // state

	require.NoError(t, writer.WriteJSON(Message{Type: "gossip", RequestID: "req-4"}))

	msg := readMessage(t, writer)
	require.Equal(t, MessageError, msg.Type)
	assert.Equal(t, "req-4", msg.RequestID)
}
