package exit

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-modular/internal/strategy"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/mocks"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"github.com/stretchr/testify/suite"
)

var (
	_ strategy.ExitSignal = (*EMA)(nil)
	_ strategy.ExitSignal = (*DeathCross)(nil)
	_ strategy.ExitSignal = (*StopLoss)(nil)
	_ strategy.ExitSignal = (*TrailingStop)(nil)
)

type ExitTestSuite struct {
	suite.Suite
	start time.Time
}

func TestExitSuite(t *testing.T) {
	suite.Run(t, new(ExitTestSuite))
}

func (suite *ExitTestSuite) SetupTest() {
	suite.start = time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
}

func (suite *ExitTestSuite) series(closes ...float64) []types.MarketData {
	return mocks.FromCloses("SPY", suite.start, time.Minute, closes...)
}

func (suite *ExitTestSuite) TestEMAExit() {
	e, err := NewEMA(EMAConfig{Period: 3})
	suite.Require().NoError(err)
	suite.Equal("ema3", e.Name())

	data := suite.series(100, 102, 104, 99)

	for _, d := range data[:3] {
		exit, err := e.ShouldExit(d, 10, 100, suite.start)
		suite.NoError(err)
		suite.False(exit)
	}

	exit, err := e.ShouldExit(data[3], 10, 100, suite.start)
	suite.NoError(err)
	suite.True(exit)
}

func (suite *ExitTestSuite) TestEMAExitIsLongOnly() {
	e, err := NewEMA(EMAConfig{Period: 3})
	suite.Require().NoError(err)

	data := suite.series(100, 90)
	for _, position := range []float64{0, -10} {
		fresh, _ := NewEMA(EMAConfig{Period: 3})
		for _, d := range data {
			exit, err := fresh.ShouldExit(d, position, 100, suite.start)
			suite.NoError(err)
			suite.False(exit)
		}
	}

	// the average keeps advancing while flat so a later long exit sees it warm
	_, _ = e.ShouldExit(data[0], 0, 0, suite.start)
	exit, _ := e.ShouldExit(data[1], 5, 100, suite.start)
	suite.True(exit)
}

func (suite *ExitTestSuite) TestEMAExitRequireFalling() {
	e, err := NewEMA(EMAConfig{Period: 3, RequireFalling: true})
	suite.Require().NoError(err)

	data := suite.series(100, 100)
	exit, _ := e.ShouldExit(data[0], 1, 100, suite.start)
	suite.False(exit)

	// close level with the average
	flat := suite.series(100, 100, 100)
	_, _ = e.ShouldExit(flat[1], 1, 100, suite.start)
	exit, _ = e.ShouldExit(flat[2], 1, 100, suite.start)
	suite.False(exit)

	drop := suite.series(100, 100, 100, 90)
	exit, _ = e.ShouldExit(drop[3], 1, 100, suite.start)
	suite.True(exit)
}

func (suite *ExitTestSuite) TestDeathCross() {
	_, err := NewDeathCross(DeathCrossConfig{FastPeriod: 5, SlowPeriod: 5})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	d, err := NewDeathCross(DeathCrossConfig{FastPeriod: 2, SlowPeriod: 5})
	suite.Require().NoError(err)

	data := suite.series(100, 105, 110, 115, 100, 90, 80)
	exits := 0
	for _, bar := range data {
		exit, err := d.ShouldExit(bar, 10, 100, suite.start)
		suite.NoError(err)
		if exit {
			exits++
		}
	}

	suite.Equal(1, exits)
}

func (suite *ExitTestSuite) TestStopLoss() {
	s, err := NewStopLoss(StopLossConfig{StopPercent: 0.05})
	suite.Require().NoError(err)
	suite.InDelta(95.0, s.StopLevel(100), 1e-9)

	tests := []struct {
		name       string
		close      float64
		position   float64
		entryPrice float64
		expected   bool
	}{
		{name: "above stop", close: 96, position: 10, entryPrice: 100, expected: false},
		{name: "at stop", close: 95, position: 10, entryPrice: 100, expected: true},
		{name: "below stop", close: 80, position: 10, entryPrice: 100, expected: true},
		{name: "flat", close: 80, position: 0, entryPrice: 100, expected: false},
		{name: "short", close: 80, position: -10, entryPrice: 100, expected: false},
		{name: "unknown entry", close: 80, position: 10, entryPrice: 0, expected: false},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			exit, err := s.ShouldExit(mocks.Bar("SPY", suite.start, tc.close), tc.position, tc.entryPrice, suite.start)
			suite.NoError(err)
			suite.Equal(tc.expected, exit)
		})
	}

	_, err = NewStopLoss(StopLossConfig{StopPercent: 1.5})
	suite.Error(err)
}

func (suite *ExitTestSuite) TestTrailingStop() {
	t, err := NewTrailingStop(TrailingStopConfig{TrailPercent: 0.1, InitialStopPercent: 0.05})
	suite.Require().NoError(err)

	data := suite.series(100, 120, 110, 115, 107)

	exit, _ := t.ShouldExit(data[0], 10, 100, suite.start)
	suite.False(exit)
	level, active := t.StopLevel()
	suite.True(active)
	suite.InDelta(95.0, level, 1e-9)

	exit, _ = t.ShouldExit(data[1], 10, 100, suite.start)
	suite.False(exit)
	level, _ = t.StopLevel()
	suite.InDelta(108.0, level, 1e-9)
	suite.Equal(120.0, t.HighestPrice())

	// the stop never moves down while the price pulls back
	exit, _ = t.ShouldExit(data[2], 10, 100, suite.start)
	suite.False(exit)
	exit, _ = t.ShouldExit(data[3], 10, 100, suite.start)
	suite.False(exit)
	level, _ = t.StopLevel()
	suite.InDelta(108.0, level, 1e-9)

	exit, _ = t.ShouldExit(data[4], 10, 100, suite.start)
	suite.True(exit)
	_, active = t.StopLevel()
	suite.False(active)
}

func (suite *ExitTestSuite) TestTrailingStopResetsWhenFlat() {
	t, err := NewTrailingStop(DefaultTrailingStopConfig())
	suite.Require().NoError(err)

	data := suite.series(100, 130, 90)
	_, _ = t.ShouldExit(data[0], 10, 100, suite.start)
	_, _ = t.ShouldExit(data[1], 10, 100, suite.start)

	exit, _ := t.ShouldExit(data[2], 0, 0, suite.start)
	suite.False(exit)
	_, active := t.StopLevel()
	suite.False(active)

	// a new position starts from its own entry price
	exit, _ = t.ShouldExit(data[2], 10, 90, suite.start)
	suite.False(exit)
	level, _ := t.StopLevel()
	suite.InDelta(90*0.97, level, 1e-9)
}
