package indicator

import (
	"time"

	"github.com/markcheno/go-talib"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

// BollingerBands keeps a rolling window of closes and recomputes the bands
// with talib once the window is full. The middle band is an SMA and the band
// offset uses the population standard deviation.
type BollingerBands struct {
	period   int
	stdDev   float64
	closes   *Window
	upper    float64
	middle   float64
	lower    float64
	ready    bool
	lastTime time.Time
}

// NewBollingerBands creates a new Bollinger Bands indicator.
func NewBollingerBands(period int, stdDev float64) (*BollingerBands, error) {
	if period <= 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be greater than 1, got %d", period)
	}

	if stdDev <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "stdDev must be a positive number, got %f", stdDev)
	}

	return &BollingerBands{
		period:   period,
		stdDev:   stdDev,
		closes:   NewWindow(period),
		upper:    0,
		middle:   0,
		lower:    0,
		ready:    false,
		lastTime: time.Time{},
	}, nil
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() IndicatorType {
	return IndicatorTypeBollingerBands
}

// Update pushes the close once per distinct timestamp and refreshes the bands.
func (bb *BollingerBands) Update(marketData types.MarketData) bool {
	if bb.closes.Len() > 0 && !marketData.Time.After(bb.lastTime) {
		return false
	}

	bb.lastTime = marketData.Time
	bb.closes.Push(marketData.Close)

	if !bb.closes.Full() {
		return true
	}

	upper, middle, lower := talib.BBands(bb.closes.Values(), bb.period, bb.stdDev, bb.stdDev, talib.SMA)
	last := len(middle) - 1
	bb.upper, bb.middle, bb.lower = upper[last], middle[last], lower[last]
	bb.ready = true

	return true
}

// Bands returns the latest upper, middle and lower bands. ok is false until
// period closes have been observed.
func (bb *BollingerBands) Bands() (upper, middle, lower float64, ok bool) {
	if !bb.ready {
		return 0, 0, 0, false
	}

	return bb.upper, bb.middle, bb.lower, true
}

// Width returns (upper - lower) / middle.
func (bb *BollingerBands) Width() (float64, bool) {
	if !bb.ready || bb.middle == 0 {
		return 0, false
	}

	return (bb.upper - bb.lower) / bb.middle, true
}

func (bb *BollingerBands) Ready() bool {
	return bb.ready
}

func (bb *BollingerBands) Reset() {
	bb.closes.Reset()
	bb.upper, bb.middle, bb.lower = 0, 0, 0
	bb.ready = false
	bb.lastTime = time.Time{}
}
