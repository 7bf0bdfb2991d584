package ledger

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type LedgerTestSuite struct {
	suite.Suite
	start time.Time
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (suite *LedgerTestSuite) SetupTest() {
	suite.start = time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
}

func (suite *LedgerTestSuite) at(days int) time.Time {
	return suite.start.AddDate(0, 0, days)
}

func (suite *LedgerTestSuite) newLedger() *Ledger {
	l, err := NewLedger(100000)
	suite.Require().NoError(err)

	return l
}

func (suite *LedgerTestSuite) TestEmptyLedger() {
	l := suite.newLedger()

	m := l.Snapshot()
	suite.Equal(100000.0, m.StartingCapital)
	suite.Equal(0, m.TotalTrades)
	suite.Equal(0.0, m.TotalReturn)
	suite.Equal(0.0, m.MaxDrawdown)
	suite.Empty(l.Trades())
	suite.True(l.ProfitFactorValue().IsNone())
}

func (suite *LedgerTestSuite) TestInvalidStartingCapital() {
	for _, capital := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewLedger(capital)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
	}
}

func (suite *LedgerTestSuite) TestWinAndLossRoundTrip() {
	l := suite.newLedger()

	win, err := l.AddTrade("SPY", suite.at(0), suite.at(1), 100, 105, 100, "Entry-ema")
	suite.Require().NoError(err)
	suite.Equal(500.0, win.PnL)
	suite.True(win.IsWin)

	_, err = l.AddTrade("SPY", suite.at(2), suite.at(3), 100, 95, 100, "Entry-ema")
	suite.Require().NoError(err)

	m := l.Snapshot()
	suite.Equal(2, m.TotalTrades)
	suite.Equal(1, m.WinningTrades)
	suite.Equal(1, m.LosingTrades)
	suite.InDelta(0.0, m.TotalReturn, 1e-12)
	suite.InDelta(0.5, m.WinRate, 1e-12)
	suite.InDelta(500.0, m.AverageWin, 1e-9)
	suite.InDelta(500.0, m.AverageLoss, 1e-9)
	suite.InDelta(1.0, m.ProfitFactor, 1e-12)
	suite.InDelta(1.0, l.ProfitFactorValue().Unwrap(), 1e-12)
}

func (suite *LedgerTestSuite) TestMaxDrawdown() {
	l := suite.newLedger()

	// running capital 101000 -> 100000 -> 98500 -> 99000
	trades := []struct {
		exitPrice float64
		exitDay   int
	}{
		{exitPrice: 110, exitDay: 1},
		{exitPrice: 90, exitDay: 2},
		{exitPrice: 85, exitDay: 3},
		{exitPrice: 105, exitDay: 4},
	}

	for _, trade := range trades {
		_, err := l.AddTrade("SPY", suite.at(0), suite.at(trade.exitDay), 100, trade.exitPrice, 100, "")
		suite.Require().NoError(err)
	}

	suite.InDelta((101000.0-98500.0)/101000.0, l.Snapshot().MaxDrawdown, 1e-9)
	suite.InDelta(0.02475, l.Snapshot().MaxDrawdown, 1e-5)
}

func (suite *LedgerTestSuite) TestDrawdownUsesExitOrder() {
	l := suite.newLedger()

	// inserted out of exit order: the loss closes before the win
	_, err := l.AddTrade("SPY", suite.at(0), suite.at(5), 100, 120, 100, "")
	suite.Require().NoError(err)
	_, err = l.AddTrade("SPY", suite.at(0), suite.at(1), 100, 90, 100, "")
	suite.Require().NoError(err)

	suite.InDelta(0.01, l.Snapshot().MaxDrawdown, 1e-9)
}

func (suite *LedgerTestSuite) TestBreakevenCountsAsLoss() {
	l := suite.newLedger()

	_, err := l.AddTrade("SPY", suite.at(0), suite.at(1), 100, 100, 10, "")
	suite.Require().NoError(err)
	_, err = l.AddTrade("SPY", suite.at(2), suite.at(3), 100, 110, 10, "")
	suite.Require().NoError(err)

	m := l.Snapshot()
	suite.Equal(1, m.WinningTrades)
	suite.Equal(1, m.LosingTrades)
	suite.Equal(0.0, m.AverageLoss)
	// no gross loss: the snapshot reports the zero sentinel
	suite.Equal(0.0, m.ProfitFactor)
	suite.True(l.ProfitFactorValue().IsNone())
}

func (suite *LedgerTestSuite) TestShortTrade() {
	l := suite.newLedger()

	record, err := l.AddTrade("SPY", suite.at(0), suite.at(1), 100, 90, -10, "")
	suite.Require().NoError(err)
	suite.Equal(100.0, record.PnL)
	suite.InDelta(0.1, record.PnLPercent, 1e-12)
	suite.True(record.IsWin)
}

func (suite *LedgerTestSuite) TestAnnualizedReturn() {
	l := suite.newLedger()

	_, err := l.AddTrade("SPY", suite.at(0), suite.at(1), 100, 110, 100, "")
	suite.Require().NoError(err)

	// a single trade has no period
	m := l.Snapshot()
	suite.Equal(time.Duration(0), m.BacktestPeriod)
	suite.Equal(0.0, m.AnnualizedReturn)

	_, err = l.AddTrade("SPY", suite.at(5), suite.at(10), 100, 110, 100, "")
	suite.Require().NoError(err)

	m = l.Snapshot()
	suite.Equal(10, m.BacktestDays())
	suite.InDelta(0.02, m.TotalReturn, 1e-12)
	suite.InDelta(math.Pow(1.02, 365.25/10)-1, m.AnnualizedReturn, 1e-9)
}

func (suite *LedgerTestSuite) TestAnnualizedReturnNeedsWholeDay() {
	l := suite.newLedger()

	_, err := l.AddTrade("SPY", suite.start, suite.start.Add(time.Hour), 100, 110, 100, "")
	suite.Require().NoError(err)
	_, err = l.AddTrade("SPY", suite.start.Add(2*time.Hour), suite.start.Add(5*time.Hour), 100, 110, 100, "")
	suite.Require().NoError(err)

	m := l.Snapshot()
	suite.Equal(5*time.Hour, m.BacktestPeriod)
	suite.Equal(0.0, m.AnnualizedReturn)
}

func (suite *LedgerTestSuite) TestSharpeRatio() {
	l := suite.newLedger()

	suite.NoError(l.AddDailyReturn(0.01))
	suite.Equal(0.0, l.Snapshot().SharpeRatio)

	suite.NoError(l.AddDailyReturn(0.02))
	suite.NoError(l.AddDailyReturn(0.03))

	// mean 0.02, sample deviation 0.01
	m := l.Snapshot()
	suite.InDelta(2.0, m.SharpeRatio, 1e-6)
	suite.Equal(3, m.DailyReturns)
	suite.Equal([]float64{0.01, 0.02, 0.03}, l.DailyReturns())

	// trades do not disturb the ratio
	_, err := l.AddTrade("SPY", suite.at(0), suite.at(1), 100, 90, 100, "")
	suite.Require().NoError(err)
	suite.InDelta(2.0, l.Snapshot().SharpeRatio, 1e-6)
}

func (suite *LedgerTestSuite) TestSharpeRatioLargeMeanSmallSpread() {
	l := suite.newLedger()

	returns := []float64{0.05 - 1e-6, 0.05 + 1e-6, 0.05 - 1e-6, 0.05 + 1e-6}
	for _, r := range returns {
		suite.NoError(l.AddDailyReturn(r))
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}

	mean /= float64(len(returns))

	var squared float64
	for _, r := range returns {
		squared += (r - mean) * (r - mean)
	}

	expected := mean / math.Sqrt(squared/float64(len(returns)-1))
	suite.InDelta(expected, l.Snapshot().SharpeRatio, 1e-4)
}

func (suite *LedgerTestSuite) TestSharpeRatioConstantReturns() {
	l := suite.newLedger()

	for i := 0; i < 5; i++ {
		suite.NoError(l.AddDailyReturn(0.01))
	}

	suite.Equal(0.0, l.Snapshot().SharpeRatio)
	suite.Error(l.AddDailyReturn(math.NaN()))
}

func (suite *LedgerTestSuite) TestRejectsInvalidTrades() {
	tests := []struct {
		name       string
		symbol     string
		exitTime   time.Time
		entryPrice float64
		exitPrice  float64
		quantity   float64
	}{
		{name: "empty symbol", symbol: "", exitTime: suite.at(1), entryPrice: 100, exitPrice: 101, quantity: 1},
		{name: "zero entry price", symbol: "SPY", exitTime: suite.at(1), entryPrice: 0, exitPrice: 101, quantity: 1},
		{name: "negative exit price", symbol: "SPY", exitTime: suite.at(1), entryPrice: 100, exitPrice: -1, quantity: 1},
		{name: "zero quantity", symbol: "SPY", exitTime: suite.at(1), entryPrice: 100, exitPrice: 101, quantity: 0},
		{name: "exit before entry", symbol: "SPY", exitTime: suite.at(-1), entryPrice: 100, exitPrice: 101, quantity: 1},
	}

	l := suite.newLedger()
	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := l.AddTrade(tc.symbol, suite.at(0), tc.exitTime, tc.entryPrice, tc.exitPrice, tc.quantity, "")
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidTrade))
		})
	}

	suite.Equal(0, l.Snapshot().TotalTrades)
}

func (suite *LedgerTestSuite) TestTradesReturnsCopy() {
	l := suite.newLedger()

	_, err := l.AddTrade("SPY", suite.at(0), suite.at(1), 100, 105, 1, "")
	suite.Require().NoError(err)

	trades := l.Trades()
	trades[0].PnL = 1e9

	suite.Equal(5.0, l.Trades()[0].PnL)
}

func (suite *LedgerTestSuite) TestSummary() {
	l := suite.newLedger()

	_, err := l.AddTrade("SPY", suite.at(0), suite.at(1), 100, 105, 100, "")
	suite.Require().NoError(err)

	summary := l.Summary()
	suite.Contains(summary, "Total Return: 0.50%")
	suite.Contains(summary, "Win Rate: 100.0%")
	suite.Contains(summary, "Total Trades: 1")
	suite.Contains(summary, "Average Win: $500.00")
}

func (suite *LedgerTestSuite) TestWriteYAML() {
	l := suite.newLedger()

	_, err := l.AddTrade("SPY", suite.at(0), suite.at(1), 100, 105, 100, "Entry-ema")
	suite.Require().NoError(err)
	suite.NoError(l.AddDailyReturn(0.005))

	path := filepath.Join(suite.T().TempDir(), "ledger.yaml")
	suite.Require().NoError(l.WriteYAML(path))

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)

	var file ledgerFile
	suite.Require().NoError(yaml.Unmarshal(data, &file))
	suite.Len(file.Trades, 1)
	suite.Equal("Entry-ema", file.Trades[0].Tag)
	suite.Equal(1, file.Metrics.TotalTrades)
	suite.Equal([]float64{0.005}, file.DailyReturns)
}

func (suite *LedgerTestSuite) TestConcurrentAdds() {
	l := suite.newLedger()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, _ = l.AddTrade("SPY", suite.at(0), suite.at(1), 100, 101, 1, "")
			_ = l.Snapshot()
		}()
	}
	wg.Wait()

	suite.Equal(20, l.Snapshot().TotalTrades)
}
