package commission

import "math"

// DefaultPercentageRate is 10 basis points of notional.
const DefaultPercentageRate = 0.001

// Percentage charges a fraction of the traded notional.
type Percentage struct {
	rate float64
}

func NewPercentage(rate float64) Fee {
	return &Percentage{rate: math.Max(rate, 0)}
}

func (c *Percentage) Calculate(quantity, price float64) float64 {
	return math.Abs(quantity) * price * c.rate
}
