package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/shell"
)

func newTestServer(t *testing.T, boards shell.BoardFactory, tick time.Duration) *httptest.Server {
	t.Helper()
	ws, err := config.NewWebSocket()
	require.NoError(t, err)

	game := NewGameHandler(quietLogger(), ws, boards,
		mines.GameParams{Rows: 3, Cols: 3, MineCount: 1}, tick)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", Status)
	mux.HandleFunc("GET /play", game.Play)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/play" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readView(t *testing.T, conn *websocket.Conn) shell.View {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var v shell.View
	require.NoError(t, conn.ReadJSON(&v))
	return v
}

func TestStatus(t *testing.T) {
	server := newTestServer(t, fixedBoards(mines.Position{Row: 0, Col: 0}), time.Second)

	res, err := http.Get(server.URL + "/status")
	require.NoError(t, err)
	defer res.Body.Close()

	var body string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ok", body)
}

func TestParseGameParams(t *testing.T) {
	game := NewGameHandler(quietLogger(), nil, nil, mines.DefaultParams(), time.Second)

	params, err := game.ParseGameParams(map[string][]string{})
	require.NoError(t, err)
	assert.Equal(t, mines.DefaultParams(), params)

	params, err = game.ParseGameParams(map[string][]string{
		"rows": {"16"}, "cols": {"30"}, "mines": {"99"}, "theme": {"dark"},
	})
	require.NoError(t, err)
	assert.Equal(t, mines.GameParams{Rows: 16, Cols: 30, MineCount: 99}, params)

	_, err = game.ParseGameParams(map[string][]string{"rows": {"many"}})
	assert.Error(t, err)

	_, err = game.ParseGameParams(map[string][]string{"mines": {"64"}})
	assert.ErrorIs(t, err, mines.ErrInvalidParams)

	_, err = game.ParseGameParams(map[string][]string{"rows": {"100000"}, "cols": {"100000"}})
	assert.ErrorIs(t, err, mines.ErrInvalidParams)
}

func TestPlayRejectsBadParams(t *testing.T) {
	server := newTestServer(t, fixedBoards(mines.Position{Row: 0, Col: 0}), time.Second)

	tests := []struct {
		name  string
		query string
	}{
		{"too many mines", "?rows=2&cols=2&mines=4"},
		{"huge board", "?rows=100000&cols=100000"},
		{"too many cols", "?rows=10&cols=101&mines=1"},
		{"not a number", "?rows=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := http.Get(server.URL + "/play" + tt.query)
			require.NoError(t, err)
			defer res.Body.Close()
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
			assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestPlayRejectsBadParamsMessage(t *testing.T) {
	server := newTestServer(t, fixedBoards(mines.Position{Row: 0, Col: 0}), time.Second)

	res, err := http.Get(server.URL + "/play?rows=100000&cols=100000")
	require.NoError(t, err)
	defer res.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Contains(t, body["error"], "invalid game params")
	assert.Contains(t, body["error"], "at most 100x100")
}

func TestSendClosedConn(t *testing.T) {
	server := newTestServer(t, fixedBoards(mines.Position{Row: 0, Col: 0}), time.Second)
	conn := dial(t, server, "")
	require.NoError(t, conn.Close())

	assert.ErrorIs(t, send(conn, shell.View{}), net.ErrClosed)
}

func TestPlayWin(t *testing.T) {
	server := newTestServer(t, fixedBoards(mines.Position{Row: 0, Col: 0}), time.Second)
	conn := dial(t, server, "")

	v := readView(t, conn)
	assert.Equal(t, mines.NotStarted, v.State)
	assert.Equal(t, 3, v.Rows)
	assert.Equal(t, "Time: 0s", v.TimerLabel)
	assert.NotEmpty(t, v.SessionID)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("f 0 0")))
	v = readView(t, conn)
	assert.Equal(t, mines.InProgress, v.State)
	assert.Equal(t, mines.GlyphFlag, v.Cells[0][0].Glyph)
	assert.Equal(t, 0, v.FlagsLeft)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 2 2")))
	v = readView(t, conn)
	assert.Equal(t, mines.Won, v.State)
	require.NotNil(t, v.Dialog)
	assert.Equal(t, "Victory!", v.Dialog.Title)
	assert.Equal(t, mines.GlyphMine, v.Cells[0][0].Glyph)
	assert.True(t, v.Cells[0][0].Disabled)
}

func TestPlayLossAndReset(t *testing.T) {
	server := newTestServer(t, fixedBoards(mines.Position{Row: 1, Col: 1}), time.Second)
	conn := dial(t, server, "")
	readView(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 0 0\no 1 1\no 2 2")))
	v := readView(t, conn)
	assert.Equal(t, mines.Lost, v.State)
	assert.Equal(t, "You clicked on a mine!", v.Dialog.Message)
	assert.Equal(t, "1", v.Cells[0][0].Glyph)
	assert.False(t, v.Cells[2][2].Revealed)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("r")))
	v = readView(t, conn)
	assert.Equal(t, mines.NotStarted, v.State)
	assert.Nil(t, v.Dialog)
	for _, row := range v.Cells {
		for _, c := range row {
			assert.False(t, c.Revealed)
			assert.False(t, c.Disabled)
		}
	}
}

func TestPlayBadCommandKeepsConnection(t *testing.T) {
	server := newTestServer(t, fixedBoards(mines.Position{Row: 0, Col: 0}), time.Second)
	conn := dial(t, server, "?rows=4&cols=5")
	readView(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 9 9")))
	v := readView(t, conn)
	assert.Contains(t, v.Error, "off the board")
	assert.Equal(t, 4, v.Rows)
	assert.Equal(t, 5, v.Cols)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("g")))
	v = readView(t, conn)
	assert.Empty(t, v.Error)
}

func TestPlayTimerTicks(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	server := newTestServer(t, fixedBoards(mines.Position{Row: 0, Col: 0}), 50*time.Millisecond)
	conn := dial(t, server, "")
	readView(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("f 1 1")))
	v := readView(t, conn)
	assert.Equal(t, 0, v.Elapsed)

	v = readView(t, conn)
	assert.Equal(t, 1, v.Elapsed)
	assert.Equal(t, "Time: 1s", v.TimerLabel)
}
