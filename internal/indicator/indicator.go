package indicator

import (
	"github.com/rxtech-lab/argo-modular/internal/types"
)

type IndicatorType string

const (
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
)

// Indicator is a streaming technical indicator owned by a single module.
// Observations must arrive in non-decreasing time order; an observation whose
// time is not after the last accepted one leaves the state untouched.
type Indicator interface {
	// Name returns the name of the indicator
	Name() IndicatorType
	// Update feeds one observation and reports whether the state advanced
	Update(marketData types.MarketData) bool
	// Ready reports whether the indicator has produced a value
	Ready() bool
	// Reset clears all accumulated state
	Reset()
}
