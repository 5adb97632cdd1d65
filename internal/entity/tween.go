package entity

// tween interpolates a value over a fixed number of ticks with a quadratic
// ease-out (fast start, gentle landing).
type tween struct {
	from, to float64
	step     int
	steps    int
}

func (t *tween) active() bool {
	return t.step < t.steps
}

// advance moves one tick forward and returns the value at that tick.
// The final tick returns exactly t.to.
func (t *tween) advance() float64 {
	t.step++
	if t.step >= t.steps {
		t.step = t.steps
		return t.to
	}
	p := float64(t.step) / float64(t.steps)
	eased := 1 - (1-p)*(1-p)
	return t.from + (t.to-t.from)*eased
}
