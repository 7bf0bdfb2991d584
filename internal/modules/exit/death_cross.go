package exit

import (
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-modular/internal/indicator"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

// DeathCrossConfig configures the death cross exit.
type DeathCrossConfig struct {
	FastPeriod int `yaml:"fast_period" json:"fast_period" jsonschema:"title=Fast Period,minimum=1,default=50" validate:"gt=0"`
	SlowPeriod int `yaml:"slow_period" json:"slow_period" jsonschema:"title=Slow Period,minimum=2,default=100" validate:"gt=0"`
}

func DefaultDeathCrossConfig() DeathCrossConfig {
	return DeathCrossConfig{
		FastPeriod: 50,
		SlowPeriod: 100,
	}
}

// DeathCross closes a long position when the fast EMA crosses below the slow EMA.
type DeathCross struct {
	config DeathCrossConfig
	fast   *indicator.EMA
	slow   *indicator.EMA
}

func NewDeathCross(config DeathCrossConfig) (*DeathCross, error) {
	if err := utils.ValidateConfig("death cross exit", config); err != nil {
		return nil, err
	}

	if config.FastPeriod >= config.SlowPeriod {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration,
			"fast period %d must be shorter than slow period %d", config.FastPeriod, config.SlowPeriod)
	}

	fast, err := indicator.NewEMA(config.FastPeriod)
	if err != nil {
		return nil, err
	}

	slow, err := indicator.NewEMA(config.SlowPeriod)
	if err != nil {
		return nil, err
	}

	return &DeathCross{
		config: config,
		fast:   fast,
		slow:   slow,
	}, nil
}

func (d *DeathCross) Name() string {
	return fmt.Sprintf("death_cross%dx%d", d.config.FastPeriod, d.config.SlowPeriod)
}

func (d *DeathCross) Parameters() map[string]any {
	return map[string]any{
		"fast_period": d.config.FastPeriod,
		"slow_period": d.config.SlowPeriod,
	}
}

func (d *DeathCross) ShouldExit(marketData types.MarketData, position float64, _ float64, _ time.Time) (bool, error) {
	d.fast.Update(marketData)
	d.slow.Update(marketData)

	if position <= 0 {
		return false, nil
	}

	fastNow, ok1 := d.fast.Value()
	slowNow, ok2 := d.slow.Value()
	fastPrev, ok3 := d.fast.Previous()
	slowPrev, ok4 := d.slow.Previous()

	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false, nil
	}

	return fastNow < slowNow && fastPrev >= slowPrev, nil
}
