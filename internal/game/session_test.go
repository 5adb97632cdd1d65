package game

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/sshooter/internal/audio"
	"github.com/tomz197/sshooter/internal/game/config"
	"github.com/tomz197/sshooter/internal/logging"
	"github.com/tomz197/sshooter/internal/store"
)

func newTestSession(t *testing.T, st store.Store) *Session {
	t.Helper()
	board := NewScoreboard(st, logging.Discard())
	board.Load()
	s := NewSession(Options{
		Width:      400,
		Height:     400,
		Scoreboard: board,
		Rand:       rand.New(rand.NewSource(3)),
		// Timers are armed but never read in these tests
		TickTime:    time.Hour,
		SpawnPeriod: time.Hour,
	})
	t.Cleanup(s.stopTimers)
	return s
}

// drain returns every event queued so far.
func drain(s *Session) []Event {
	var out []Event
	for {
		select {
		case e := <-s.events:
			out = append(out, e)
		default:
			return out
		}
	}
}

// killPlayer puts an enemy right on top of the player.
func killPlayer(s *Session) {
	p := s.world.Player
	s.world.Enemies = append(s.world.Enemies, enemyAt(p.X, p.Y, 5))
}

func TestNewSessionIsIdle(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStore())

	assert.NotEmpty(t, s.ID())
	snap := s.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, 400.0, snap.Width)
	assert.Equal(t, 200.0, snap.Player.X)
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := newTestSession(t, store.NewMemoryStore())
	b := newTestSession(t, store.NewMemoryStore())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestStartArmsTimers(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStore())
	s.handle(command{kind: cmdStart})

	assert.Equal(t, PhasePlaying, s.Snapshot().Phase)
	assert.NotNil(t, s.frameC())
	assert.True(t, s.spawner.Active())
	assert.Equal(t, []Event{{Type: EventScore, Score: 0}}, drain(s))
}

func TestFireIgnoredUnlessPlaying(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStore())

	s.handle(command{kind: cmdFire, x: 0, y: 0})
	assert.Empty(t, s.world.Projectiles)

	s.handle(command{kind: cmdStart})
	s.handle(command{kind: cmdFire, x: 0, y: 0})
	assert.Len(t, s.world.Projectiles, 1)
}

func TestVisibilityPausesSpawner(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStore())
	s.handle(command{kind: cmdStart})

	s.handle(command{kind: cmdVisibility, visible: false})
	assert.False(t, s.spawner.Active())
	assert.NotNil(t, s.frameC(), "frame loop keeps running while hidden")

	s.handle(command{kind: cmdVisibility, visible: true})
	assert.True(t, s.spawner.Active())
}

func TestTickEmitsHitEvents(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStore())
	s.handle(command{kind: cmdStart})
	drain(s)

	s.world.Enemies = append(s.world.Enemies, enemyAt(50, 50, 10))
	s.world.Projectiles = append(s.world.Projectiles, still(50, 50))
	s.tick()

	assert.Equal(t, []Event{
		{Type: EventCue, Cue: audio.CueHit},
		{Type: EventScore, Score: config.ScoreDestroy},
	}, drain(s))

	snap := s.Snapshot()
	assert.Equal(t, config.ScoreDestroy, snap.Score)
	assert.Equal(t, uint64(1), snap.Frame)
	assert.Len(t, snap.Particles, 20)
}

func TestGameOverWithRecord(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(config.TopScoreKey, 300))
	s := newTestSession(t, st)

	s.handle(command{kind: cmdStart})
	drain(s)
	s.world.Score = 500
	killPlayer(s)
	s.tick()

	assert.Equal(t, []Event{
		{Type: EventCue, Cue: audio.CueLose},
		{Type: EventTopScore, TopScore: 500},
		{Type: EventCue, Cue: audio.CueRecord},
		{Type: EventGameOver, Score: 500, Record: true},
	}, drain(s))

	v, _, err := st.Get(config.TopScoreKey)
	require.NoError(t, err)
	assert.Equal(t, 500, v)

	snap := s.Snapshot()
	assert.Equal(t, PhaseOver, snap.Phase)
	assert.Equal(t, 500, snap.TopScore)
	assert.True(t, snap.Record)

	assert.Nil(t, s.frameC())
	assert.False(t, s.spawner.Active())
}

func TestGameOverWithoutRecord(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(config.TopScoreKey, 300))
	s := newTestSession(t, st)

	s.handle(command{kind: cmdStart})
	drain(s)
	s.world.Score = 200
	killPlayer(s)
	s.tick()

	assert.Equal(t, []Event{
		{Type: EventCue, Cue: audio.CueLose},
		{Type: EventGameOver, Score: 200},
	}, drain(s))

	v, _, err := st.Get(config.TopScoreKey)
	require.NoError(t, err)
	assert.Equal(t, 300, v)
	assert.Equal(t, 300, s.Snapshot().TopScore)
}

func TestRestartAfterGameOver(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStore())
	s.handle(command{kind: cmdStart})
	s.world.Score = 100
	killPlayer(s)
	s.tick()
	require.Equal(t, PhaseOver, s.Snapshot().Phase)

	// Ticks after the loss change nothing
	frame := s.Snapshot().Frame
	s.tick()
	assert.Equal(t, frame, s.Snapshot().Frame)

	s.handle(command{kind: cmdStart})
	snap := s.Snapshot()
	assert.Equal(t, PhasePlaying, snap.Phase)
	assert.Zero(t, snap.Score)
	assert.Empty(t, snap.Enemies)
	assert.False(t, snap.Record)
}

func TestEventsDropWhenFull(t *testing.T) {
	s := newTestSession(t, store.NewMemoryStore())
	for range eventBuffer + 10 {
		s.emit(Event{Type: EventScore})
	}
	assert.Len(t, drain(s), eventBuffer)
}

func TestRunEndToEnd(t *testing.T) {
	s := NewSession(Options{
		Width:       400,
		Height:      400,
		Rand:        rand.New(rand.NewSource(9)),
		TickTime:    20 * time.Millisecond,
		SpawnPeriod: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx) }()

	s.Start()
	require.Eventually(t, func() bool {
		return s.Snapshot().Phase == PhasePlaying && s.Snapshot().Frame > 0
	}, time.Second, time.Millisecond)

	s.Fire(400, 200)
	require.Eventually(t, func() bool {
		return len(s.Snapshot().Projectiles) == 1
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	<-s.Done()

	// Commands after shutdown never block
	s.Start()
	s.Fire(0, 0)
}
