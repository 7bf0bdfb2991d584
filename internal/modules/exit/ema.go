package exit

import (
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-modular/internal/indicator"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
)

// EMAConfig configures the EMA exit.
type EMAConfig struct {
	Period int `yaml:"period" json:"period" jsonschema:"title=Period,description=EMA period,minimum=1,default=100" validate:"gt=0"`
	// RequireFalling additionally requires the EMA to be below its previous value
	RequireFalling bool `yaml:"require_falling" json:"require_falling" jsonschema:"title=Require Falling,default=false"`
}

func DefaultEMAConfig() EMAConfig {
	return EMAConfig{
		Period:         100,
		RequireFalling: false,
	}
}

// EMA closes a long position once the close drops below the moving average.
type EMA struct {
	config EMAConfig
	ema    *indicator.EMA
}

func NewEMA(config EMAConfig) (*EMA, error) {
	if err := utils.ValidateConfig("ema exit", config); err != nil {
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
		"period":          e.config.Period,
		"require_falling": e.config.RequireFalling,
	}
}

func (e *EMA) ShouldExit(marketData types.MarketData, position float64, _ float64, _ time.Time) (bool, error) {
	// the average advances even while flat
	e.ema.Update(marketData)

	if position <= 0 {
		return false, nil
	}

	value, ok := e.ema.Value()
	if !ok || marketData.Close >= value {
		return false, nil
	}

	if !e.config.RequireFalling {
		return true, nil
	}

	previous, ok := e.ema.Previous()

	return ok && value < previous, nil
}
