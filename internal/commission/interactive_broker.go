package commission

import "math"

const (
	interactiveBrokerPerShare = 0.005
	interactiveBrokerMinimum  = 1.0
)

// InteractiveBroker charges a fixed amount per share with a per-order minimum.
type InteractiveBroker struct{}

func NewInteractiveBroker() Fee {
	return &InteractiveBroker{}
}

func (c *InteractiveBroker) Calculate(quantity, _ float64) float64 {
	fee := interactiveBrokerPerShare * math.Abs(quantity)
	if fee < interactiveBrokerMinimum {
		return interactiveBrokerMinimum
	}

	return fee
}
