package sizing

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-modular/internal/commission"
	"github.com/rxtech-lab/argo-modular/internal/strategy"
	"github.com/rxtech-lab/argo-modular/mocks"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"github.com/stretchr/testify/suite"
)

var (
	_ strategy.PositionSizer = (*FixedAllocation)(nil)
	_ strategy.PositionSizer = (*VolatilityAdjusted)(nil)
	_ strategy.PositionSizer = (*Kelly)(nil)
	_ strategy.Observer      = (*VolatilityAdjusted)(nil)
)

type SizingTestSuite struct {
	suite.Suite
	start time.Time
}

func TestSizingSuite(t *testing.T) {
	suite.Run(t, new(SizingTestSuite))
}

func (suite *SizingTestSuite) SetupTest() {
	suite.start = time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
}

func (suite *SizingTestSuite) TestFixedAllocation() {
	tests := []struct {
		name      string
		config    FixedAllocationConfig
		price     float64
		portfolio float64
		cash      float64
		expected  float64
	}{
		{
			name:      "half the portfolio",
			config:    FixedAllocationConfig{Fraction: 0.5},
			price:     100,
			portfolio: 10000,
			cash:      10000,
			expected:  50,
		},
		{
			name:      "capped by cash",
			config:    FixedAllocationConfig{Fraction: 0.5},
			price:     100,
			portfolio: 10000,
			cash:      3000,
			expected:  30,
		},
		{
			name:      "fractional quantity",
			config:    FixedAllocationConfig{Fraction: 0.5, DecimalPrecision: 2},
			price:     300,
			portfolio: 1000,
			cash:      1000,
			expected:  1.66,
		},
		{
			name:      "interactive broker fee leaves room",
			config:    FixedAllocationConfig{Fraction: 1, Broker: commission.BrokerInteractiveBroker},
			price:     100,
			portfolio: 10000,
			cash:      10000,
			expected:  99,
		},
		{
			name:      "percentage fee leaves room",
			config:    FixedAllocationConfig{Fraction: 1, Broker: commission.BrokerPercentage},
			price:     100,
			portfolio: 10000,
			cash:      10000,
			expected:  99,
		},
		{
			name:      "no cash",
			config:    FixedAllocationConfig{Fraction: 1},
			price:     100,
			portfolio: 10000,
			cash:      0,
			expected:  0,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			sizer, err := NewFixedAllocation(tc.config)
			suite.Require().NoError(err)

			quantity, err := sizer.Size(mocks.Bar("SPY", suite.start, tc.price), tc.portfolio, tc.cash, true)
			suite.NoError(err)
			suite.InDelta(tc.expected, quantity, 1e-9)
			suite.LessOrEqual(quantity*tc.price, tc.cash)
		})
	}
}

func (suite *SizingTestSuite) TestFixedAllocationInvalid() {
	_, err := NewFixedAllocation(FixedAllocationConfig{Fraction: 0})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	_, err = NewFixedAllocation(FixedAllocationConfig{Fraction: 0.5, Broker: "unknown"})
	suite.Error(err)

	sizer, err := NewFixedAllocation(DefaultFixedAllocationConfig())
	suite.Require().NoError(err)
	suite.Equal("allocation95", sizer.Name())

	_, err = sizer.Size(mocks.Bar("SPY", suite.start, 0), 10000, 10000, true)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPrice))
}

func (suite *SizingTestSuite) TestVolatilityAdjustedWarmup() {
	sizer, err := NewVolatilityAdjusted(VolatilityAdjustedConfig{BaseFraction: 0.8, Lookback: 3})
	suite.Require().NoError(err)

	suite.InDelta(0.4, sizer.Fraction(), 1e-9)

	quantity, err := sizer.Size(mocks.Bar("SPY", suite.start, 100), 10000, 10000, true)
	suite.NoError(err)
	suite.InDelta(40.0, quantity, 1e-9)
}

func (suite *SizingTestSuite) TestVolatilityAdjustedCalm() {
	sizer, err := NewVolatilityAdjusted(VolatilityAdjustedConfig{BaseFraction: 0.8, Lookback: 3})
	suite.Require().NoError(err)

	data := mocks.FromCloses("SPY", suite.start, time.Minute, 100, 100, 100)
	sizer.Observe(data[0])
	sizer.Observe(data[1])

	quantity, err := sizer.Size(data[2], 10000, 10000, true)
	suite.NoError(err)
	suite.InDelta(0.0, sizer.Volatility(), 1e-12)
	suite.InDelta(80.0, quantity, 1e-9)
}

func (suite *SizingTestSuite) TestVolatilityAdjustedVolatile() {
	sizer, err := NewVolatilityAdjusted(VolatilityAdjustedConfig{BaseFraction: 0.8, Lookback: 3})
	suite.Require().NoError(err)

	data := mocks.FromCloses("SPY", suite.start, time.Minute, 100, 110, 99)
	for _, d := range data {
		sizer.Observe(d)
		// repeated observations of the same bar are ignored
		sizer.Observe(d)
	}

	suite.InDelta(0.1, sizer.Volatility(), 1e-9)
	suite.InDelta(0.8*0.3, sizer.Fraction(), 1e-9)

	quantity, err := sizer.Size(data[2], 10000, 10000, true)
	suite.NoError(err)
	suite.InDelta(24.0, quantity, 1e-9)
}

func (suite *SizingTestSuite) TestVolatilityAdjustedInvalid() {
	_, err := NewVolatilityAdjusted(VolatilityAdjustedConfig{BaseFraction: 0.8, Lookback: 2})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *SizingTestSuite) TestKelly() {
	tests := []struct {
		name     string
		config   KellyConfig
		fraction float64
		quantity float64
	}{
		{
			name:     "default edge",
			config:   DefaultKellyConfig(),
			fraction: 0.2125,
			quantity: 21,
		},
		{
			name:     "clamped to max",
			config:   KellyConfig{WinRate: 0.9, AvgWin: 0.05, AvgLoss: 0.01, MaxFraction: 0.25},
			fraction: 0.25,
			quantity: 25,
		},
		{
			name:     "negative edge",
			config:   KellyConfig{WinRate: 0.2, AvgWin: 0.02, AvgLoss: 0.02, MaxFraction: 0.25},
			fraction: 0,
			quantity: 0,
		},
		{
			name:     "no recorded loss",
			config:   KellyConfig{WinRate: 0.6, AvgWin: 0.02, AvgLoss: 0, MaxFraction: 0.25},
			fraction: 0,
			quantity: 0,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			sizer, err := NewKelly(tc.config)
			suite.Require().NoError(err)
			suite.InDelta(tc.fraction, sizer.Fraction(), 1e-9)

			quantity, err := sizer.Size(mocks.Bar("SPY", suite.start, 100), 10000, 10000, true)
			suite.NoError(err)
			suite.InDelta(tc.quantity, quantity, 1e-9)
		})
	}
}
