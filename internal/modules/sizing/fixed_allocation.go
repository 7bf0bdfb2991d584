package sizing

import (
	"fmt"

	"github.com/rxtech-lab/argo-modular/internal/commission"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
)

// FixedAllocationConfig configures the fixed allocation sizer.
type FixedAllocationConfig struct {
	// Fraction of the portfolio value to commit on each entry
	Fraction float64 `yaml:"fraction" json:"fraction" jsonschema:"title=Fraction,description=Fraction of the portfolio allocated per entry,default=0.95" validate:"gt=0,lte=1"`
	// DecimalPrecision is the number of decimals the quantity is rounded down to
	DecimalPrecision int `yaml:"decimal_precision" json:"decimal_precision" jsonschema:"title=Decimal Precision,default=0" validate:"gte=0,lte=8"`
	// Broker selects the commission model used when sizing
	Broker commission.Broker `yaml:"broker" json:"broker" jsonschema:"title=Broker,enum=interactive_broker,enum=percentage,enum=zero_commission,default=zero_commission" validate:"omitempty,oneof=interactive_broker percentage zero_commission"`
}

func DefaultFixedAllocationConfig() FixedAllocationConfig {
	return FixedAllocationConfig{
		Fraction:         0.95,
		DecimalPrecision: 0,
		Broker:           commission.BrokerZero,
	}
}

// FixedAllocation commits a fixed fraction of the portfolio to every entry.
type FixedAllocation struct {
	config FixedAllocationConfig
	fee    commission.Fee
}

func NewFixedAllocation(config FixedAllocationConfig) (*FixedAllocation, error) {
	if err := utils.ValidateConfig("fixed allocation sizer", config); err != nil {
		return nil, err
	}

	return &FixedAllocation{
		config: config,
		fee:    commission.ForBroker(config.Broker),
	}, nil
}

func (f *FixedAllocation) Name() string {
	return fmt.Sprintf("allocation%d", int(f.config.Fraction*100))
}

func (f *FixedAllocation) Parameters() map[string]any {
	return map[string]any{
		"fraction":          f.config.Fraction,
		"decimal_precision": f.config.DecimalPrecision,
		"broker":            string(f.config.Broker),
	}
}

func (f *FixedAllocation) Size(marketData types.MarketData, portfolioValue float64, availableCash float64, _ bool) (float64, error) {
	return allocate(marketData, f.config.Fraction, portfolioValue, availableCash, f.fee, f.config.DecimalPrecision)
}
