package entry

import (
	"fmt"

	"github.com/rxtech-lab/argo-modular/internal/indicator"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
)

// EMAConfig configures the EMA entry.
type EMAConfig struct {
	// Period is the EMA smoothing period
	Period int `yaml:"period" json:"period" jsonschema:"title=Period,description=EMA period,minimum=1,default=50" validate:"gt=0"`
	// RequireRising additionally requires the EMA to be above its previous value
	RequireRising bool `yaml:"require_rising" json:"require_rising" jsonschema:"title=Require Rising,description=Only enter while the EMA is rising,default=false"`
}

func DefaultEMAConfig() EMAConfig {
	return EMAConfig{
		Period:        50,
		RequireRising: false,
	}
}

// EMA enters long when the close is above its exponential moving average.
type EMA struct {
	config EMAConfig
	ema    *indicator.EMA
}

func NewEMA(config EMAConfig) (*EMA, error) {
	if err := utils.ValidateConfig("ema entry", config); err != nil {
		return nil, err
	}

	ema, err := indicator.NewEMA(config.Period)
	if err != nil {
		return nil, err
	}

	return &EMA{
		config: config,
		ema:    ema,
	}, nil
}

func (e *EMA) Name() string {
	return fmt.Sprintf("ema%d", e.config.Period)
}

func (e *EMA) Parameters() map[string]any {
	return map[string]any{
		"period":         e.config.Period,
		"require_rising": e.config.RequireRising,
	}
}

func (e *EMA) ShouldEnter(marketData types.MarketData) (bool, error) {
	e.ema.Update(marketData)

	return e.triggered(marketData), nil
}

func (e *EMA) Signal(marketData types.MarketData) (float64, error) {
	e.ema.Update(marketData)

	if e.triggered(marketData) {
		return 1, nil
	}

	return 0, nil
}

func (e *EMA) triggered(marketData types.MarketData) bool {
	value, ok := e.ema.Value()
	if !ok || marketData.Close <= value {
		return false
	}

	if !e.config.RequireRising {
		return true
	}

	previous, ok := e.ema.Previous()

	return ok && value > previous
}
