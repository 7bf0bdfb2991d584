package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-modular/internal/commission"
	"github.com/rxtech-lab/argo-modular/internal/modules"
	"github.com/rxtech-lab/argo-modular/internal/version"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultIsValid() {
	suite.NoError(Default().Validate())
}

func (suite *ConfigTestSuite) TestParse() {
	document := `
version: ` + version.Version + `
backtest:
  initial_capital: 50000
  broker: interactive_broker
  start_time: 2024-01-02T09:30:00Z
  end_time: 2024-03-01T16:00:00Z
  bar_minutes: 15
  symbols: [SPY, QQQ]
strategy:
  name: breakout
  entry:
    type: volatility_breakout
    volatility_breakout:
      ema_period: 20
      bb_period: 20
      bb_std_dev: 2
      bbw_threshold: 0.05
      recent_high_lookback: 5
  exit:
    type: trailing_stop
    trailing_stop:
      trail_percent: 0.04
      initial_stop_percent: 0.02
  position_sizer:
    type: volatility_adjusted
  risk_gate:
    type: exposure
`

	config, err := Parse([]byte(document))
	suite.Require().NoError(err)

	suite.Equal(50000.0, config.Backtest.InitialCapital)
	suite.Equal(commission.BrokerInteractiveBroker, config.Backtest.Broker)
	suite.Equal(time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), config.Backtest.StartTime.Unwrap())
	suite.True(config.Backtest.EndTime.IsSome())
	suite.Equal(15, config.Backtest.BarMinutes)
	suite.Equal([]string{"SPY", "QQQ"}, config.Backtest.Symbols)

	suite.Equal("breakout", config.Strategy.Name)
	suite.Equal(modules.EntryTypeVolatilityBreakout, config.Strategy.Entry.Type)
	suite.Equal(20, config.Strategy.Entry.VolatilityBreakout.EMAPeriod)
	suite.Equal(0.04, config.Strategy.Exit.TrailingStop.TrailPercent)
	suite.Equal(modules.SizerTypeVolatilityAdjusted, config.Strategy.PositionSizer.Type)
	suite.Equal(modules.RiskTypeExposure, config.Strategy.RiskGate.Type)
}

func (suite *ConfigTestSuite) TestMissingKeysKeepDefaults() {
	config, err := Parse([]byte("backtest:\n  broker: percentage\n"))
	suite.Require().NoError(err)

	suite.Equal(100000.0, config.Backtest.InitialCapital)
	suite.Equal(commission.BrokerPercentage, config.Backtest.Broker)
	suite.True(config.Backtest.StartTime.IsNone())
	suite.Equal(modules.EntryTypeEMA, config.Strategy.Entry.Type)
}

func (suite *ConfigTestSuite) TestInvalidConfigs() {
	tests := []struct {
		name     string
		document string
		code     errors.ErrorCode
	}{
		{
			name:     "malformed yaml",
			document: "backtest: [",
			code:     errors.ErrCodeBacktestConfigError,
		},
		{
			name:     "negative capital",
			document: "backtest:\n  initial_capital: -5\n",
			code:     errors.ErrCodeInvalidConfiguration,
		},
		{
			name:     "end before start",
			document: "backtest:\n  start_time: 2024-02-01T00:00:00Z\n  end_time: 2024-01-01T00:00:00Z\n",
			code:     errors.ErrCodeBacktestConfigError,
		},
		{
			name:     "unknown module",
			document: "strategy:\n  exit:\n    type: full_moon\n",
			code:     errors.ErrCodeInvalidConfiguration,
		},
		{
			name:     "invalid module parameters",
			document: "strategy:\n  entry:\n    type: ema\n    ema:\n      period: 0\n",
			code:     errors.ErrCodeInvalidConfiguration,
		},
		{
			name:     "newer major version",
			document: "version: v99.0.0\n",
			code:     errors.ErrCodeVersionMismatch,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := Parse([]byte(tc.document))
			suite.Require().Error(err)
			suite.Equal(tc.code, errors.GetCode(err), err.Error())
		})
	}
}

func (suite *ConfigTestSuite) TestMarshalRoundTrip() {
	config := Default()
	config.Backtest.StartTime = optional.Some(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	config.Strategy.Name = "trend"

	data, err := config.Marshal()
	suite.Require().NoError(err)
	suite.Contains(string(data), "start_time: 2024-01-02T00:00:00Z")
	suite.NotContains(string(data), "end_time")

	parsed, err := Parse(data)
	suite.Require().NoError(err)
	suite.Equal(config.Backtest.StartTime.Unwrap(), parsed.Backtest.StartTime.Unwrap())
	suite.Equal("trend", parsed.Strategy.Name)
	suite.Equal(config.Strategy.Entry.EMA.Period, parsed.Strategy.Entry.EMA.Period)
}

func (suite *ConfigTestSuite) TestLoad() {
	path := filepath.Join(suite.T().TempDir(), "run.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("backtest:\n  initial_capital: 2500\n"), 0644))

	config, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal(2500.0, config.Backtest.InitialCapital)

	_, err = Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.True(errors.HasCode(err, errors.ErrCodeBacktestConfigError))
}

func (suite *ConfigTestSuite) TestGenerateSchema() {
	schema, err := GenerateSchemaJSON()
	suite.Require().NoError(err)

	suite.Contains(schema, "initial_capital")
	suite.Contains(schema, "date-time")
	suite.Contains(schema, "interactive_broker")
	suite.Contains(schema, "volatility_breakout")
	suite.Contains(schema, "trail_percent")
}
