package game

import "github.com/tomz197/sshooter/internal/audio"

// EventType identifies the kind of UI signal a session emits.
type EventType uint8

const (
	EventScore    EventType = iota // Score changed
	EventTopScore                  // Top score changed
	EventGameOver                  // Run ended
	EventCue                       // A sound cue should play
)

// String returns the lowercase event name.
func (t EventType) String() string {
	switch t {
	case EventScore:
		return "score"
	case EventTopScore:
		return "topScore"
	case EventGameOver:
		return "gameOver"
	case EventCue:
		return "cue"
	default:
		return "unknown"
	}
}

// Event is a UI signal emitted by a session.
type Event struct {
	Type     EventType
	Score    int       // EventScore and EventGameOver
	TopScore int       // EventTopScore
	Record   bool      // EventGameOver: the final score set a new top score
	Cue      audio.Cue // EventCue
}
