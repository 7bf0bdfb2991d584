package risk

import (
	"math"

	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
)

// BasicConfig configures the basic risk gate.
type BasicConfig struct {
	// MaxLeverage bounds the notional of an entry relative to the portfolio value
	MaxLeverage float64 `yaml:"max_leverage" json:"max_leverage" jsonschema:"title=Max Leverage,default=1" validate:"gt=0"`
	// CashBuffer is the fraction of available cash an entry may spend
	CashBuffer float64 `yaml:"cash_buffer" json:"cash_buffer" jsonschema:"title=Cash Buffer,default=0.99" validate:"gt=0,lte=1"`
}

func DefaultBasicConfig() BasicConfig {
	return BasicConfig{
		MaxLeverage: 1.0,
		CashBuffer:  0.99,
	}
}

// Basic allows every trade that reduces a position and bounds entries by
// leverage and available cash.
type Basic struct {
	config BasicConfig
}

func NewBasic(config BasicConfig) (*Basic, error) {
	if err := utils.ValidateConfig("basic risk gate", config); err != nil {
		return nil, err
	}

	return &Basic{config: config}, nil
}

func (b *Basic) Name() string {
	return "basic_risk"
}

func (b *Basic) Parameters() map[string]any {
	return map[string]any{
		"max_leverage": b.config.MaxLeverage,
		"cash_buffer":  b.config.CashBuffer,
	}
}

func (b *Basic) Validate(marketData types.MarketData, proposedQuantity float64, currentPosition float64, portfolioValue float64, availableCash float64) (bool, error) {
	if reduces(proposedQuantity, currentPosition) {
		return true, nil
	}

	notional := math.Abs(proposedQuantity) * marketData.Close
	if notional > portfolioValue*b.config.MaxLeverage {
		return false, nil
	}

	if notional > availableCash*b.config.CashBuffer {
		return false, nil
	}

	return true, nil
}

// reduces reports whether the proposed quantity opposes an open position.
func reduces(proposedQuantity float64, currentPosition float64) bool {
	return currentPosition != 0 && utils.Sign(proposedQuantity) == -utils.Sign(currentPosition)
}
