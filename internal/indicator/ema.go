package indicator

import (
	"time"

	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

// EMA is a streaming exponential moving average.
//
// The average is seeded with the first observed close rather than a window
// average, so it is available from the first observation on. Every later close
// is applied with ema = (price - prev) * 2/(period+1) + prev.
type EMA struct {
	period   int
	alpha    float64
	value    float64
	previous float64
	count    int
	lastTime time.Time
}

// NewEMA creates a new EMA indicator with the given period.
func NewEMA(period int) (*EMA, error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return &EMA{
		period:   period,
		alpha:    2.0 / float64(period+1),
		value:    0,
		previous: 0,
		count:    0,
		lastTime: time.Time{},
	}, nil
}

// Name returns the name of the indicator.
func (e *EMA) Name() IndicatorType {
	return IndicatorTypeEMA
}

// Period returns the smoothing period.
func (e *EMA) Period() int {
	return e.period
}

// Update applies the close of the observation once per distinct timestamp.
func (e *EMA) Update(marketData types.MarketData) bool {
	if e.count > 0 && !marketData.Time.After(e.lastTime) {
		return false
	}

	e.lastTime = marketData.Time
	e.Add(marketData.Close)

	return true
}

// Add applies one price without any timestamp bookkeeping.
func (e *EMA) Add(price float64) {
	if e.count == 0 {
		e.value = price
		e.previous = price
		e.count = 1

		return
	}

	e.previous = e.value
	e.value = (price-e.value)*e.alpha + e.value
	e.count++
}

// Value returns the current average. ok is false before the first observation.
func (e *EMA) Value() (value float64, ok bool) {
	if e.count == 0 {
		return 0, false
	}

	return e.value, true
}

// Previous returns the average before the last update. ok is false until two
// observations have been applied.
func (e *EMA) Previous() (value float64, ok bool) {
	if e.count < 2 {
		return 0, false
	}

	return e.previous, true
}

// Ready reports whether the average has been seeded.
func (e *EMA) Ready() bool {
	return e.count > 0
}

// Count returns the number of applied observations.
func (e *EMA) Count() int {
	return e.count
}

// Reset clears the average.
func (e *EMA) Reset() {
	e.value = 0
	e.previous = 0
	e.count = 0
	e.lastTime = time.Time{}
}
