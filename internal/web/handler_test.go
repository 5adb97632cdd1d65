package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/sshooter/internal/game"
	"github.com/tomz197/sshooter/internal/logging"
	"github.com/tomz197/sshooter/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	board := game.NewScoreboard(store.NewMemoryStore(), logging.Discard())
	board.Load()
	srv := httptest.NewServer(NewHandler(Options{
		Scoreboard: board,
		TickTime:   10 * time.Millisecond,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, ctx context.Context, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.Dial(ctx, srv.URL+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

// readFrame reads until a frame satisfying ok arrives.
func readFrame(t *testing.T, ctx context.Context, conn *websocket.Conn, ok func(FrameMessage) bool) FrameMessage {
	t.Helper()
	for {
		var raw json.RawMessage
		require.NoError(t, wsjson.Read(ctx, conn, &raw))

		var head struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(raw, &head))
		if head.Type != TypeFrame {
			continue
		}
		var f FrameMessage
		require.NoError(t, json.Unmarshal(raw, &f))
		if ok(f) {
			return f
		}
	}
}

func TestServesPage(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "<canvas")
}

func TestUnknownPathIsNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlayOverSocket(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv := newTestServer(t)
	conn := dial(t, ctx, srv)

	require.NoError(t, wsjson.Write(ctx, conn, ClientMessage{Type: TypeHello, Width: 400, Height: 300}))
	require.NoError(t, wsjson.Write(ctx, conn, ClientMessage{Type: TypeStart}))

	f := readFrame(t, ctx, conn, func(f FrameMessage) bool { return f.Phase == "playing" })
	assert.InDelta(t, 200, f.Player.X, 1e-9)
	assert.InDelta(t, 150, f.Player.Y, 1e-9)
	assert.Regexp(t, `^#[0-9a-f]{6}$`, f.Player.Color)

	require.NoError(t, wsjson.Write(ctx, conn, ClientMessage{Type: TypeFire, X: 10, Y: 10}))
	f = readFrame(t, ctx, conn, func(f FrameMessage) bool { return len(f.Projectiles) > 0 })
	p := f.Projectiles[0]
	assert.Less(t, p.X, 200.0, "projectile heads toward the click")
	assert.Less(t, p.Y, 150.0)

	conn.Close(websocket.StatusNormalClosure, "")
}

func TestRejectsBadHello(t *testing.T) {
	tests := []struct {
		name string
		msg  ClientMessage
	}{
		{"wrong type", ClientMessage{Type: TypeFire, X: 1, Y: 1}},
		{"too small", ClientMessage{Type: TypeHello, Width: 10, Height: 10}},
		{"too wide", ClientMessage{Type: TypeHello, Width: 5000, Height: 300}},
		{"too tall", ClientMessage{Type: TypeHello, Width: 400, Height: 4097}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			srv := newTestServer(t)
			conn := dial(t, ctx, srv)
			require.NoError(t, wsjson.Write(ctx, conn, tt.msg))

			var msg json.RawMessage
			err := wsjson.Read(ctx, conn, &msg)
			require.Error(t, err)
			assert.Equal(t, websocket.StatusPolicyViolation, websocket.CloseStatus(err))
		})
	}
}

func TestFrameMessageConvertsSnapshot(t *testing.T) {
	s := game.NewSession(game.Options{Width: 200, Height: 100})
	m := NewFrameMessage(s.Snapshot())

	assert.Equal(t, TypeFrame, m.Type)
	assert.Equal(t, "idle", m.Phase)
	assert.Equal(t, 100.0, m.Player.X)
	assert.Equal(t, 50.0, m.Player.Y)
	assert.Equal(t, 1.0, m.Player.Alpha)
	assert.NotNil(t, m.Enemies, "empty lists encode as []")
}

func TestEventMessage(t *testing.T) {
	m := NewEventMessage(game.Event{Type: game.EventGameOver, Score: 350, Record: true})
	assert.Equal(t, EventMessage{Type: TypeEvent, Event: "gameOver", Score: 350, Record: true}, m)

	m = NewEventMessage(game.Event{Type: game.EventTopScore, TopScore: 350, Score: 7})
	assert.Equal(t, EventMessage{Type: TypeEvent, Event: "topScore", TopScore: 350}, m)
}
