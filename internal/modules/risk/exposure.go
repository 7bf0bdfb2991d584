package risk

import (
	"fmt"
	"math"

	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
)

// ExposureConfig configures the exposure risk gate.
type ExposureConfig struct {
	MaxLeverage float64 `yaml:"max_leverage" json:"max_leverage" jsonschema:"title=Max Leverage,default=1" validate:"gt=0"`
	CashBuffer  float64 `yaml:"cash_buffer" json:"cash_buffer" jsonschema:"title=Cash Buffer,default=0.99" validate:"gt=0,lte=1"`
	// MaxPositionFraction caps the resulting position notional as a fraction of the portfolio
	MaxPositionFraction float64 `yaml:"max_position_fraction" json:"max_position_fraction" jsonschema:"title=Max Position Fraction,default=0.5" validate:"gt=0"`
}

func DefaultExposureConfig() ExposureConfig {
	return ExposureConfig{
		MaxLeverage:         1.0,
		CashBuffer:          0.99,
		MaxPositionFraction: 0.5,
	}
}

// Exposure applies the basic rules and additionally caps the size of the
// position an entry would leave behind.
type Exposure struct {
	config ExposureConfig
	basic  *Basic
}

func NewExposure(config ExposureConfig) (*Exposure, error) {
	if err := utils.ValidateConfig("exposure risk gate", config); err != nil {
		return nil, err
	}

	basic, err := NewBasic(BasicConfig{
		MaxLeverage: config.MaxLeverage,
		CashBuffer:  config.CashBuffer,
	})
	if err != nil {
		return nil, err
	}

	return &Exposure{
		config: config,
		basic:  basic,
	}, nil
}

func (e *Exposure) Name() string {
	return fmt.Sprintf("exposure_risk%d", int(e.config.MaxPositionFraction*100))
}

func (e *Exposure) Parameters() map[string]any {
	return map[string]any{
		"max_leverage":          e.config.MaxLeverage,
		"cash_buffer":           e.config.CashBuffer,
		"max_position_fraction": e.config.MaxPositionFraction,
	}
}

func (e *Exposure) Validate(marketData types.MarketData, proposedQuantity float64, currentPosition float64, portfolioValue float64, availableCash float64) (bool, error) {
	if reduces(proposedQuantity, currentPosition) {
		return true, nil
	}

	allowed, err := e.basic.Validate(marketData, proposedQuantity, currentPosition, portfolioValue, availableCash)
	if err != nil || !allowed {
		return allowed, err
	}

	if proposedQuantity == 0 {
		return true, nil
	}

	if portfolioValue <= 0 {
		return false, nil
	}

	exposure := math.Abs(currentPosition+proposedQuantity) * marketData.Close / portfolioValue

	return exposure <= e.config.MaxPositionFraction, nil
}
