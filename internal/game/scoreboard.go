package game

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tomz197/sshooter/internal/game/config"
	"github.com/tomz197/sshooter/internal/store"
)

// Scoreboard tracks the best score and persists it. One scoreboard may be
// shared by every session of a server.
type Scoreboard struct {
	store  store.Store
	logger *log.Logger

	mu  sync.Mutex
	top int
}

// NewScoreboard creates a scoreboard backed by st. Call Load before use.
func NewScoreboard(st store.Store, logger *log.Logger) *Scoreboard {
	return &Scoreboard{store: st, logger: logger}
}

// Load reads the stored top score. A missing or unreadable value counts as 0.
func (b *Scoreboard) Load() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok, err := b.store.Get(config.TopScoreKey)
	switch {
	case err != nil:
		b.logger.Warn("failed to read top score", "err", err)
		b.top = 0
	case !ok:
		b.top = 0
	default:
		b.top = max(v, 0)
	}
	return b.top
}

// Top returns the current top score.
func (b *Scoreboard) Top() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.top
}

// Submit records a final score and reports whether it beat the top score.
// A failed write is logged; the new top score is kept in memory regardless.
func (b *Scoreboard) Submit(score int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if score <= b.top {
		return false
	}
	b.top = score
	if err := b.store.Set(config.TopScoreKey, score); err != nil {
		b.logger.Warn("failed to save top score", "score", score, "err", err)
	}
	return true
}
