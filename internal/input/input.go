// Package input decodes the terminal byte stream into game input: keys,
// mouse clicks in SGR encoding and focus changes.
package input

import (
	"bufio"
	"strconv"
	"sync"
	"time"
)

// escapeTimeout is how long an incomplete escape sequence waits for the rest
// of its bytes before it is taken for a lone escape key.
const escapeTimeout = 50 * time.Millisecond

// Click is a left mouse button press at a 1-based terminal position.
type Click struct {
	Col, Row int
}

// Input represents the input gathered since the previous frame.
type Input struct {
	Quit    bool    // q or ctrl-c
	Start   bool    // space or enter
	Clicks  []Click // Left button presses in arrival order
	Focus   bool    // A focus event arrived
	Focused bool    // Last reported focus state, valid when Focus is set
}

// Stream delivers input bytes via a channel and keeps any escape sequence
// split across reads until the rest of it arrives.
type Stream struct {
	ch           chan byte
	done         chan struct{}
	stopOnce     sync.Once
	pending      []byte
	pendingSince time.Time
	closed       bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream until r fails or Stop is called.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:   make(chan byte, 256),
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case <-s.done:
				return
			default:
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Stop releases the reader goroutine. A goroutine blocked inside a read
// exits once that read returns.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() {
		if s.done != nil {
			close(s.done)
		}
	})
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them. A reader that has ended reports Quit.
func ReadInput(s *Stream) Input {
	now := time.Now()
	buf := s.pending

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)

	switch {
	case len(rest) == 0:
	case len(s.pending) == 0:
		s.pendingSince = now
	case now.Sub(s.pendingSince) > escapeTimeout:
		// Never completed, so it was a lone escape key
		rest = nil
	}
	s.pending = append(s.pending[:0:0], rest...)

	if s.closed {
		in.Quit = true
	}
	return in
}

// Parse decodes buf and returns the trailing bytes of an escape sequence
// that is not complete yet.
func Parse(buf []byte) (in Input, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			n, complete := parseEscape(buf[i:], &in)
			if !complete {
				return in, buf[i:]
			}
			i += n - 1
			continue
		}

		applyByte(&in, b)
	}
	return in, nil
}

// parseEscape decodes one escape sequence at the start of seq. It returns the
// number of bytes consumed, or complete=false when seq ends mid-sequence.
func parseEscape(seq []byte, in *Input) (n int, complete bool) {
	if len(seq) < 2 {
		return 0, false
	}
	if seq[1] != '[' {
		// Bare escape followed by an ordinary byte
		return 1, true
	}
	if len(seq) < 3 {
		return 0, false
	}

	switch seq[2] {
	case 'I':
		in.Focus, in.Focused = true, true
		return 3, true
	case 'O':
		in.Focus, in.Focused = true, false
		return 3, true
	case '<':
		return parseSGRMouse(seq, in)
	}

	// Any other CSI sequence (arrow keys and the like) runs until its final
	// byte in the 0x40-0x7e range and is ignored
	for j := 2; j < len(seq); j++ {
		if seq[j] >= 0x40 && seq[j] <= 0x7e {
			return j + 1, true
		}
	}
	return 0, false
}

// parseSGRMouse decodes ESC [ < button ; col ; row (M|m).
func parseSGRMouse(seq []byte, in *Input) (n int, complete bool) {
	var fields [3]int
	field := 0
	start := 3

	for j := 3; j < len(seq); j++ {
		c := seq[j]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' || c == 'M' || c == 'm':
			if field >= len(fields) {
				return j + 1, true
			}
			v, err := strconv.Atoi(string(seq[start:j]))
			if err != nil {
				return j + 1, true
			}
			fields[field] = v
			field++
			start = j + 1

			if c == ';' {
				continue
			}
			if field != len(fields) {
				return j + 1, true
			}
			// Press of the left button without motion or wheel bits
			if c == 'M' && fields[0]&0b11100011 == 0 {
				in.Clicks = append(in.Clicks, Click{Col: fields[1], Row: fields[2]})
			}
			return j + 1, true
		default:
			// Malformed, drop what we have
			return j + 1, true
		}
	}
	return 0, false
}

// applyByte handles a plain key byte.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case ' ', '\n', '\r':
		in.Start = true
	}
}
