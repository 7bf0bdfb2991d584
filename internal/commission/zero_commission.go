package commission

// Zero implements Fee with zero commission.
type Zero struct{}

// NewZero creates a new zero commission fee.
func NewZero() Fee {
	return &Zero{}
}

// Calculate returns 0 for any fill.
func (c *Zero) Calculate(_, _ float64) float64 {
	return 0.0
}
