package sizing

import (
	"math"

	"github.com/rxtech-lab/argo-modular/internal/commission"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
)

// KellyConfig configures the Kelly criterion sizer.
type KellyConfig struct {
	WinRate float64 `yaml:"win_rate" json:"win_rate" jsonschema:"title=Win Rate,default=0.55" validate:"gte=0,lte=1"`
	// AvgWin is the average winning return as a decimal (0.02 = 2%)
	AvgWin float64 `yaml:"avg_win" json:"avg_win" jsonschema:"title=Average Win,default=0.02" validate:"gte=0"`
	// AvgLoss is the average losing return as a positive decimal
	AvgLoss float64 `yaml:"avg_loss" json:"avg_loss" jsonschema:"title=Average Loss,default=0.015" validate:"gte=0"`
	// MaxFraction caps the Kelly fraction
	MaxFraction      float64           `yaml:"max_fraction" json:"max_fraction" jsonschema:"title=Max Fraction,default=0.25" validate:"gt=0,lte=1"`
	DecimalPrecision int               `yaml:"decimal_precision" json:"decimal_precision" jsonschema:"title=Decimal Precision,default=0" validate:"gte=0,lte=8"`
	Broker           commission.Broker `yaml:"broker" json:"broker" jsonschema:"title=Broker,enum=interactive_broker,enum=percentage,enum=zero_commission,default=zero_commission" validate:"omitempty,oneof=interactive_broker percentage zero_commission"`
}

func DefaultKellyConfig() KellyConfig {
	return KellyConfig{
		WinRate:          0.55,
		AvgWin:           0.02,
		AvgLoss:          0.015,
		MaxFraction:      0.25,
		DecimalPrecision: 0,
		Broker:           commission.BrokerZero,
	}
}

// Kelly sizes entries with the Kelly criterion f = (b*p - q) / b where b is
// the win/loss ratio, p the win rate and q = 1 - p.
type Kelly struct {
	config KellyConfig
	fee    commission.Fee
}

func NewKelly(config KellyConfig) (*Kelly, error) {
	if err := utils.ValidateConfig("kelly sizer", config); err != nil {
		return nil, err
	}

	return &Kelly{
		config: config,
		fee:    commission.ForBroker(config.Broker),
	}, nil
}

func (k *Kelly) Name() string {
	return "kelly"
}

func (k *Kelly) Parameters() map[string]any {
	return map[string]any{
		"win_rate":          k.config.WinRate,
		"avg_win":           k.config.AvgWin,
		"avg_loss":          k.config.AvgLoss,
		"max_fraction":      k.config.MaxFraction,
		"decimal_precision": k.config.DecimalPrecision,
		"broker":            string(k.config.Broker),
	}
}

// Fraction returns the clamped Kelly fraction, 0 when the average loss is not positive.
func (k *Kelly) Fraction() float64 {
	if k.config.AvgLoss <= 0 || k.config.AvgWin <= 0 {
		return 0
	}

	b := k.config.AvgWin / k.config.AvgLoss
	p := k.config.WinRate
	q := 1 - p

	return math.Max(0, math.Min(k.config.MaxFraction, (b*p-q)/b))
}

func (k *Kelly) Size(marketData types.MarketData, portfolioValue float64, availableCash float64, _ bool) (float64, error) {
	fraction := k.Fraction()
	if fraction == 0 {
		return 0, nil
	}

	return allocate(marketData, fraction, portfolioValue, availableCash, k.fee, k.config.DecimalPrecision)
}
