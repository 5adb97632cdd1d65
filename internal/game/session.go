package game

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/sshooter/internal/audio"
	"github.com/tomz197/sshooter/internal/entity"
	"github.com/tomz197/sshooter/internal/game/config"
	"github.com/tomz197/sshooter/internal/logging"
	"github.com/tomz197/sshooter/internal/store"
)

// Buffer sizes for the session channels.
const (
	commandBuffer = 64
	eventBuffer   = 256
)

// Options configures a Session. Zero values pick the defaults.
type Options struct {
	Width, Height float64     // Canvas size in logical pixels (required)
	Scoreboard    *Scoreboard // Defaults to an in-memory scoreboard
	Logger        *log.Logger // Defaults to a discarding logger
	Rand          entity.Rand // Defaults to a time-seeded generator

	TickTime    time.Duration // Frame period, default config.TickTime
	SpawnPeriod time.Duration // Enemy spawn period, default config.EnemySpawnPeriod
}

// Session runs one independent game. Run owns the world from a single
// goroutine; everything else talks to it through commands, events and
// snapshots.
type Session struct {
	id         string
	world      *World
	spawner    *Spawner
	scoreboard *Scoreboard
	logger     *log.Logger

	tickTime time.Duration
	frame    *time.Ticker // nil unless playing
	frames   uint64
	phase    Phase
	record   bool

	cmds     chan command
	events   chan Event
	snapshot atomic.Pointer[Snapshot]
	done     chan struct{}
}

type commandKind uint8

const (
	cmdStart commandKind = iota
	cmdFire
	cmdVisibility
)

type command struct {
	kind    commandKind
	x, y    float64
	visible bool
}

// NewSession creates an idle session. Call Run to bring it to life.
func NewSession(opts Options) *Session {
	id := uuid.NewString()

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("session", id)

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	scoreboard := opts.Scoreboard
	if scoreboard == nil {
		scoreboard = NewScoreboard(store.NewMemoryStore(), logger)
	}

	tickTime := opts.TickTime
	if tickTime <= 0 {
		tickTime = config.TickTime
	}
	spawnPeriod := opts.SpawnPeriod
	if spawnPeriod <= 0 {
		spawnPeriod = config.EnemySpawnPeriod
	}

	s := &Session{
		id:         id,
		world:      NewWorld(opts.Width, opts.Height, rng),
		spawner:    NewSpawner(spawnPeriod),
		scoreboard: scoreboard,
		logger:     logger,
		tickTime:   tickTime,
		cmds:       make(chan command, commandBuffer),
		events:     make(chan Event, eventBuffer),
		done:       make(chan struct{}),
	}
	s.publish()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Events returns the channel of UI signals. Events are dropped when the
// channel is full.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Snapshot returns the latest published state. Never nil.
func (s *Session) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Start begins a new run, resetting any run in progress or finished.
func (s *Session) Start() {
	s.send(command{kind: cmdStart})
}

// Fire shoots toward (x,y). Ignored unless a run is in progress.
func (s *Session) Fire(x, y float64) {
	s.send(command{kind: cmdFire, x: x, y: y})
}

// SetVisible pauses enemy spawning while the game is hidden.
func (s *Session) SetVisible(visible bool) {
	s.send(command{kind: cmdVisibility, visible: visible})
}

// send queues a command. After Run has returned commands are discarded.
func (s *Session) send(c command) {
	select {
	case s.cmds <- c:
	case <-s.done:
	}
}

// Run processes commands, frames and spawns until ctx is canceled.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	defer s.stopTimers()

	s.logger.Debug("session running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("session stopped", "score", s.world.Score, "phase", s.phase)
			return nil
		case c := <-s.cmds:
			s.handle(c)
		case <-s.frameC():
			s.tick()
		case <-s.spawner.C():
			s.world.SpawnEnemy()
		}
	}
}

func (s *Session) handle(c command) {
	switch c.kind {
	case cmdStart:
		s.start()
	case cmdFire:
		if s.phase == PhasePlaying {
			s.world.Fire(c.x, c.y)
		}
	case cmdVisibility:
		if c.visible {
			s.spawner.Resume()
		} else {
			s.spawner.Pause()
		}
	}
}

// start resets the world and arms the frame ticker and the spawner.
func (s *Session) start() {
	s.world.Reset()
	s.phase = PhasePlaying
	s.record = false
	s.emit(Event{Type: EventScore, Score: 0})

	if s.frame != nil {
		s.frame.Stop()
	}
	s.frame = time.NewTicker(s.tickTime)
	s.spawner.Start()

	s.logger.Info("run started")
	s.publish()
}

// tick advances the world one frame and reports what happened.
func (s *Session) tick() {
	if s.phase != PhasePlaying {
		return
	}
	s.frames++

	res := s.world.Tick()
	if res.Hits > 0 {
		s.emit(Event{Type: EventCue, Cue: audio.CueHit})
	}
	if res.Points > 0 {
		s.emit(Event{Type: EventScore, Score: s.world.Score})
	}
	if res.Lost {
		s.gameOver()
	}
	s.publish()
}

// gameOver stops the run and settles the top score.
func (s *Session) gameOver() {
	s.phase = PhaseOver
	if s.frame != nil {
		s.frame.Stop()
		s.frame = nil
	}
	s.spawner.Stop()

	score := s.world.Score
	s.record = s.scoreboard.Submit(score)

	s.emit(Event{Type: EventCue, Cue: audio.CueLose})
	if s.record {
		s.emit(Event{Type: EventTopScore, TopScore: score})
		s.emit(Event{Type: EventCue, Cue: audio.CueRecord})
	}
	s.emit(Event{Type: EventGameOver, Score: score, Record: s.record})

	s.logger.Info("run over", "score", score, "record", s.record)
}

// emit sends an event without blocking the loop.
func (s *Session) emit(e Event) {
	select {
	case s.events <- e:
	default:
		s.logger.Debug("event dropped", "type", e.Type)
	}
}

func (s *Session) publish() {
	snap := s.world.snapshot()
	snap.Frame = s.frames
	snap.Phase = s.phase
	snap.TopScore = s.scoreboard.Top()
	snap.Record = s.record
	s.snapshot.Store(snap)
}

func (s *Session) frameC() <-chan time.Time {
	if s.frame == nil {
		return nil
	}
	return s.frame.C
}

func (s *Session) stopTimers() {
	if s.frame != nil {
		s.frame.Stop()
		s.frame = nil
	}
	s.spawner.Stop()
}
