package game

import "time"

// Spawner paces enemy spawns. It is driven from the session goroutine and is
// not safe for concurrent use.
//
// A run is started with Start and ended with Stop. Pause and Resume follow
// the visibility of the game and are independent of the run: a spawner that
// is paused when a run starts arms itself on the next Resume.
type Spawner struct {
	period  time.Duration
	ticker  *time.Ticker
	running bool
	paused  bool
}

// NewSpawner creates a stopped spawner firing every period.
func NewSpawner(period time.Duration) *Spawner {
	return &Spawner{period: period}
}

// Start begins a run, replacing any timer already armed.
func (s *Spawner) Start() {
	s.disarm()
	s.running = true
	if !s.paused {
		s.arm()
	}
}

// Stop ends the run.
func (s *Spawner) Stop() {
	s.disarm()
	s.running = false
}

// Pause suspends spawning while the game is not visible.
func (s *Spawner) Pause() {
	s.paused = true
	s.disarm()
}

// Resume restarts spawning after Pause. It does nothing outside a run.
func (s *Spawner) Resume() {
	s.paused = false
	if s.running && s.ticker == nil {
		s.arm()
	}
}

// Active reports whether the timer is armed.
func (s *Spawner) Active() bool {
	return s.ticker != nil
}

// C returns the channel that fires when an enemy is due, or nil when the
// timer is not armed. Receiving from a nil channel blocks forever, so a
// select on C simply never picks it.
func (s *Spawner) C() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C
}

func (s *Spawner) arm() {
	s.ticker = time.NewTicker(s.period)
}

func (s *Spawner) disarm() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}
