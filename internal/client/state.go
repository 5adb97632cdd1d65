package client

import (
	"time"

	"github.com/tomz197/sshooter/internal/game"
)

// State holds what the terminal front-end knows beyond the latest snapshot:
// values carried by session events and bookkeeping for screen transitions.
type State struct {
	Score       int       // Last score event
	TopScore    int       // Last known top score
	Record      bool      // The last finished run set a new top score
	RecordUntil time.Time // End of the new top score highlight
	Visible     bool      // Terminal has focus
	Running     bool      // Client loop running

	prevPhase game.Phase // Phase drawn in the previous frame
	drawnOnce bool       // At least one frame has been drawn
}

// NewState creates the state of a freshly connected client.
func NewState(topScore int) *State {
	return &State{
		TopScore: topScore,
		Visible:  true,
		Running:  true,
	}
}

// Highlighting reports whether the new top score highlight is still shown.
func (s *State) Highlighting(now time.Time) bool {
	return s.Record && now.Before(s.RecordUntil)
}
