package sizing

import (
	"fmt"
	"math"
	"time"

	"github.com/markcheno/go-talib"
	"github.com/rxtech-lab/argo-modular/internal/commission"
	"github.com/rxtech-lab/argo-modular/internal/indicator"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
)

const (
	// volatilityScale converts return volatility into an allocation haircut
	volatilityScale = 10.0
	minAdjustment   = 0.3
	maxAdjustment   = 1.0
	// warmupFactor scales the allocation until the lookback window is full
	warmupFactor = 0.5
)

// VolatilityAdjustedConfig configures the volatility adjusted sizer.
type VolatilityAdjustedConfig struct {
	// BaseFraction is the allocation used when volatility is zero
	BaseFraction float64 `yaml:"base_fraction" json:"base_fraction" jsonschema:"title=Base Fraction,default=0.95" validate:"gt=0,lte=1"`
	// Lookback is the number of closes used for the volatility estimate
	Lookback         int               `yaml:"lookback" json:"lookback" jsonschema:"title=Lookback,minimum=3,default=20" validate:"gte=3"`
	DecimalPrecision int               `yaml:"decimal_precision" json:"decimal_precision" jsonschema:"title=Decimal Precision,default=0" validate:"gte=0,lte=8"`
	Broker           commission.Broker `yaml:"broker" json:"broker" jsonschema:"title=Broker,enum=interactive_broker,enum=percentage,enum=zero_commission,default=zero_commission" validate:"omitempty,oneof=interactive_broker percentage zero_commission"`
}

func DefaultVolatilityAdjustedConfig() VolatilityAdjustedConfig {
	return VolatilityAdjustedConfig{
		BaseFraction:     0.95,
		Lookback:         20,
		DecimalPrecision: 0,
		Broker:           commission.BrokerZero,
	}
}

// VolatilityAdjusted shrinks the base allocation as the standard deviation of
// recent close-to-close returns grows. It observes every tick so the estimate
// is current when an entry is sized.
type VolatilityAdjusted struct {
	config   VolatilityAdjustedConfig
	fee      commission.Fee
	closes   *indicator.Window
	lastTime time.Time
}

func NewVolatilityAdjusted(config VolatilityAdjustedConfig) (*VolatilityAdjusted, error) {
	if err := utils.ValidateConfig("volatility adjusted sizer", config); err != nil {
		return nil, err
	}

	return &VolatilityAdjusted{
		config: config,
		fee:    commission.ForBroker(config.Broker),
		closes: indicator.NewWindow(config.Lookback),
	}, nil
}

func (v *VolatilityAdjusted) Name() string {
	return fmt.Sprintf("vol_adjusted%d", int(v.config.BaseFraction*100))
}

func (v *VolatilityAdjusted) Parameters() map[string]any {
	return map[string]any{
		"base_fraction":     v.config.BaseFraction,
		"lookback":          v.config.Lookback,
		"decimal_precision": v.config.DecimalPrecision,
		"broker":            string(v.config.Broker),
	}
}

// Observe records the close. Repeated or older timestamps are ignored.
func (v *VolatilityAdjusted) Observe(marketData types.MarketData) {
	if !v.lastTime.IsZero() && !marketData.Time.After(v.lastTime) {
		return
	}

	v.lastTime = marketData.Time
	v.closes.Push(marketData.Close)
}

// Fraction returns the allocation the next Size call will use.
func (v *VolatilityAdjusted) Fraction() float64 {
	if !v.closes.Full() {
		return v.config.BaseFraction * warmupFactor
	}

	volatility := v.Volatility()
	adjustment := math.Max(minAdjustment, math.Min(maxAdjustment, 1-volatility*volatilityScale))

	return v.config.BaseFraction * adjustment
}

// Volatility returns the population standard deviation of returns across the window.
func (v *VolatilityAdjusted) Volatility() float64 {
	closes := v.closes.Values()
	if len(closes) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}

	if len(returns) < 2 {
		return 0
	}

	deviation := talib.StdDev(returns, len(returns), 1.0)

	return deviation[len(deviation)-1]
}

func (v *VolatilityAdjusted) Size(marketData types.MarketData, portfolioValue float64, availableCash float64, _ bool) (float64, error) {
	v.Observe(marketData)

	return allocate(marketData, v.Fraction(), portfolioValue, availableCash, v.fee, v.config.DecimalPrecision)
}
