package entry

import (
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-modular/internal/indicator"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
)

// VolatilityBreakoutConfig configures the volatility breakout entry.
type VolatilityBreakoutConfig struct {
	EMAPeriod int     `yaml:"ema_period" json:"ema_period" jsonschema:"title=EMA Period,minimum=1,default=50" validate:"gt=0"`
	BBPeriod  int     `yaml:"bb_period" json:"bb_period" jsonschema:"title=Bollinger Period,minimum=2,default=20" validate:"gt=1"`
	BBStdDev  float64 `yaml:"bb_std_dev" json:"bb_std_dev" jsonschema:"title=Bollinger Std Dev,default=2" validate:"gt=0"`
	// BBWThreshold is the band width below which volatility counts as compressed
	BBWThreshold float64 `yaml:"bbw_threshold" json:"bbw_threshold" jsonschema:"title=Band Width Threshold,default=0.1" validate:"gt=0"`
	// RecentHighLookback is the number of prior bars whose highs must be exceeded
	RecentHighLookback int `yaml:"recent_high_lookback" json:"recent_high_lookback" jsonschema:"title=Recent High Lookback,minimum=1,default=5" validate:"gt=0"`
}

func DefaultVolatilityBreakoutConfig() VolatilityBreakoutConfig {
	return VolatilityBreakoutConfig{
		EMAPeriod:          50,
		BBPeriod:           20,
		BBStdDev:           2,
		BBWThreshold:       0.1,
		RecentHighLookback: 5,
	}
}

// BreakoutConditions is the per-condition breakdown of the last evaluation.
type BreakoutConditions struct {
	InTrend          bool
	LowBandWidth     bool
	AboveUpperBand   bool
	AboveRecentHigh  bool
	EMA              float64
	BandWidth        float64
	UpperBand        float64
	RecentHigh       float64
	PreviousClose    float64
	ObservationCount int
}

// Met reports whether every condition holds.
func (c BreakoutConditions) Met() bool {
	return c.InTrend && c.LowBandWidth && c.AboveUpperBand && c.AboveRecentHigh
}

// VolatilityBreakout enters long when price breaks out of a low volatility
// squeeze in the direction of the trend:
//   - close above the EMA and above the previous close
//   - Bollinger band width below the threshold
//   - close above the upper band
//   - close above the highest high of the prior lookback bars
type VolatilityBreakout struct {
	config     VolatilityBreakoutConfig
	ema        *indicator.EMA
	bands      *indicator.BollingerBands
	highs      *indicator.Window
	last       BreakoutConditions
	prevClose  float64
	count      int
	lastTime   time.Time
	lastClose  float64
	recentHigh float64
	hasHigh    bool
}

func NewVolatilityBreakout(config VolatilityBreakoutConfig) (*VolatilityBreakout, error) {
	if err := utils.ValidateConfig("volatility breakout entry", config); err != nil {
		return nil, err
	}

	ema, err := indicator.NewEMA(config.EMAPeriod)
	if err != nil {
		return nil, err
	}

	bands, err := indicator.NewBollingerBands(config.BBPeriod, config.BBStdDev)
	if err != nil {
		return nil, err
	}

	return &VolatilityBreakout{
		config:     config,
		ema:        ema,
		bands:      bands,
		highs:      indicator.NewWindow(config.RecentHighLookback),
		last:       BreakoutConditions{},
		prevClose:  0,
		count:      0,
		lastTime:   time.Time{},
		lastClose:  0,
		recentHigh: 0,
		hasHigh:    false,
	}, nil
}

func (v *VolatilityBreakout) Name() string {
	return fmt.Sprintf("volatility_breakout_ema%d_bbw%g", v.config.EMAPeriod, v.config.BBWThreshold)
}

func (v *VolatilityBreakout) Parameters() map[string]any {
	return map[string]any{
		"ema_period":           v.config.EMAPeriod,
		"bb_period":            v.config.BBPeriod,
		"bb_std_dev":           v.config.BBStdDev,
		"bbw_threshold":        v.config.BBWThreshold,
		"recent_high_lookback": v.config.RecentHighLookback,
	}
}

func (v *VolatilityBreakout) ShouldEnter(marketData types.MarketData) (bool, error) {
	v.update(marketData)

	return v.last.Met(), nil
}

func (v *VolatilityBreakout) Signal(marketData types.MarketData) (float64, error) {
	v.update(marketData)

	if v.last.Met() {
		return 1, nil
	}

	return 0, nil
}

// Conditions returns the breakdown computed for the latest observation.
func (v *VolatilityBreakout) Conditions() BreakoutConditions {
	return v.last
}

func (v *VolatilityBreakout) update(marketData types.MarketData) {
	if v.count > 0 && !marketData.Time.After(v.lastTime) {
		return
	}

	// the recent high only covers bars before this one
	v.recentHigh, v.hasHigh = v.highs.Max()
	v.hasHigh = v.hasHigh && v.highs.Full()
	v.prevClose = v.lastClose

	v.ema.Update(marketData)
	v.bands.Update(marketData)
	v.highs.Push(marketData.High)

	v.count++
	v.lastTime = marketData.Time
	v.lastClose = marketData.Close
	v.last = v.evaluate(marketData.Close)
}

func (v *VolatilityBreakout) evaluate(closePrice float64) BreakoutConditions {
	conditions := BreakoutConditions{ObservationCount: v.count, PreviousClose: v.prevClose}

	if v.count < v.config.RecentHighLookback+2 || v.ema.Count() < 2 {
		return conditions
	}

	emaValue, _ := v.ema.Value()
	upper, _, _, bandsReady := v.bands.Bands()
	width, widthOK := v.bands.Width()

	if !bandsReady || !widthOK || !v.hasHigh {
		return conditions
	}

	conditions.EMA = emaValue
	conditions.UpperBand = upper
	conditions.BandWidth = width
	conditions.RecentHigh = v.recentHigh
	conditions.InTrend = closePrice > emaValue && closePrice > v.prevClose
	conditions.LowBandWidth = width < v.config.BBWThreshold
	conditions.AboveUpperBand = closePrice > upper
	conditions.AboveRecentHigh = closePrice > v.recentHigh

	return conditions
}
