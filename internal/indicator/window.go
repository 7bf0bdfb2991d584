package indicator

import "math"

// Window is a fixed size rolling window of values, oldest first.
type Window struct {
	size   int
	values []float64
}

// NewWindow creates a window holding at most size values.
func NewWindow(size int) *Window {
	if size < 1 {
		size = 1
	}

	return &Window{
		size:   size,
		values: make([]float64, 0, size),
	}
}

// Push appends a value, evicting the oldest one when the window is full.
func (w *Window) Push(value float64) {
	if len(w.values) == w.size {
		copy(w.values, w.values[1:])
		w.values = w.values[:w.size-1]
	}

	w.values = append(w.values, value)
}

// Values returns a copy of the window contents, oldest first.
func (w *Window) Values() []float64 {
	out := make([]float64, len(w.values))
	copy(out, w.values)

	return out
}

func (w *Window) Len() int {
	return len(w.values)
}

func (w *Window) Size() int {
	return w.size
}

// Full reports whether the window holds size values.
func (w *Window) Full() bool {
	return len(w.values) == w.size
}

// Last returns the newest value.
func (w *Window) Last() (float64, bool) {
	if len(w.values) == 0 {
		return 0, false
	}

	return w.values[len(w.values)-1], true
}

// Max returns the largest value in the window.
func (w *Window) Max() (float64, bool) {
	if len(w.values) == 0 {
		return 0, false
	}

	maxValue := math.Inf(-1)
	for _, v := range w.values {
		maxValue = math.Max(maxValue, v)
	}

	return maxValue, true
}

func (w *Window) Reset() {
	w.values = w.values[:0]
}
