package entry

import (
	"fmt"

	"github.com/rxtech-lab/argo-modular/internal/indicator"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

// GoldenCrossConfig configures the golden cross entry.
type GoldenCrossConfig struct {
	FastPeriod int `yaml:"fast_period" json:"fast_period" jsonschema:"title=Fast Period,minimum=1,default=50" validate:"gt=0"`
	SlowPeriod int `yaml:"slow_period" json:"slow_period" jsonschema:"title=Slow Period,minimum=2,default=100" validate:"gt=0"`
}

func DefaultGoldenCrossConfig() GoldenCrossConfig {
	return GoldenCrossConfig{
		FastPeriod: 50,
		SlowPeriod: 100,
	}
}

// GoldenCross enters long on the observation where the fast EMA crosses
// above the slow EMA.
type GoldenCross struct {
	config GoldenCrossConfig
	fast   *indicator.EMA
	slow   *indicator.EMA
}

func NewGoldenCross(config GoldenCrossConfig) (*GoldenCross, error) {
	if err := utils.ValidateConfig("golden cross entry", config); err != nil {
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

	return &GoldenCross{
		config: config,
		fast:   fast,
		slow:   slow,
	}, nil
}

func (g *GoldenCross) Name() string {
	return fmt.Sprintf("golden_cross%dx%d", g.config.FastPeriod, g.config.SlowPeriod)
}

func (g *GoldenCross) Parameters() map[string]any {
	return map[string]any{
		"fast_period": g.config.FastPeriod,
		"slow_period": g.config.SlowPeriod,
	}
}

func (g *GoldenCross) ShouldEnter(marketData types.MarketData) (bool, error) {
	g.update(marketData)

	return g.crossed(), nil
}

func (g *GoldenCross) Signal(marketData types.MarketData) (float64, error) {
	g.update(marketData)

	if g.crossed() {
		return 1, nil
	}

	return 0, nil
}

func (g *GoldenCross) update(marketData types.MarketData) {
	g.fast.Update(marketData)
	g.slow.Update(marketData)
}

func (g *GoldenCross) crossed() bool {
	fastNow, ok1 := g.fast.Value()
	slowNow, ok2 := g.slow.Value()
	fastPrev, ok3 := g.fast.Previous()
	slowPrev, ok4 := g.slow.Previous()

	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}

	return fastNow > slowNow && fastPrev <= slowPrev
}
