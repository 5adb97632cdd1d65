package web

import (
	"github.com/tomz197/sshooter/internal/game"
)

// Message types sent by the browser.
const (
	TypeHello      = "hello"
	TypeStart      = "start"
	TypeFire       = "fire"
	TypeVisibility = "visibility"
)

// Message types sent by the server.
const (
	TypeFrame = "frame"
	TypeEvent = "event"
)

// ClientMessage is any message from the browser. Fields not used by Type
// are left zero.
type ClientMessage struct {
	Type    string  `json:"type"`
	Width   float64 `json:"width,omitempty"`   // hello
	Height  float64 `json:"height,omitempty"`  // hello
	X       float64 `json:"x,omitempty"`       // fire
	Y       float64 `json:"y,omitempty"`       // fire
	Visible bool    `json:"visible,omitempty"` // visibility
}

// Circle is a drawable circle in a frame.
type Circle struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Color string  `json:"c"` // #rrggbb
	Alpha float64 `json:"a"` // Opacity in [0,1]
}

// FrameMessage carries one snapshot of the world.
type FrameMessage struct {
	Type        string   `json:"type"`
	Frame       uint64   `json:"frame"`
	Phase       string   `json:"phase"`
	Score       int      `json:"score"`
	TopScore    int      `json:"topScore"`
	Record      bool     `json:"record"`
	Player      Circle   `json:"player"`
	Projectiles []Circle `json:"projectiles"`
	Enemies     []Circle `json:"enemies"`
	Particles   []Circle `json:"particles"`
}

// EventMessage carries one session event.
type EventMessage struct {
	Type     string `json:"type"`
	Event    string `json:"event"`
	Score    int    `json:"score,omitempty"`
	TopScore int    `json:"topScore,omitempty"`
	Record   bool   `json:"record,omitempty"`
	Cue      string `json:"cue,omitempty"`
}

// NewFrameMessage converts a snapshot to its wire form.
func NewFrameMessage(s *game.Snapshot) FrameMessage {
	return FrameMessage{
		Type:        TypeFrame,
		Frame:       s.Frame,
		Phase:       s.Phase.String(),
		Score:       s.Score,
		TopScore:    s.TopScore,
		Record:      s.Record,
		Player:      newCircle(s.Player),
		Projectiles: newCircles(s.Projectiles),
		Enemies:     newCircles(s.Enemies),
		Particles:   newCircles(s.Particles),
	}
}

// NewEventMessage converts a session event to its wire form.
func NewEventMessage(e game.Event) EventMessage {
	m := EventMessage{
		Type:  TypeEvent,
		Event: e.Type.String(),
	}
	switch e.Type {
	case game.EventScore:
		m.Score = e.Score
	case game.EventTopScore:
		m.TopScore = e.TopScore
	case game.EventGameOver:
		m.Score = e.Score
		m.Record = e.Record
	case game.EventCue:
		m.Cue = e.Cue.String()
	}
	return m
}

func newCircle(c game.Circle) Circle {
	return Circle{
		X:     c.X,
		Y:     c.Y,
		R:     c.Radius,
		Color: c.Color.Clamped().Hex(),
		Alpha: min(max(c.Alpha, 0), 1),
	}
}

func newCircles(list []game.Circle) []Circle {
	out := make([]Circle, len(list))
	for i, c := range list {
		out[i] = newCircle(c)
	}
	return out
}
