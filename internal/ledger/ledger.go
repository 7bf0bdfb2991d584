// Package ledger records completed round trips and keeps a metrics snapshot
// that is recomputed from the full history after every change.
package ledger

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/markcheno/go-talib"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	// daysPerYear is used to annualize the total return
	daysPerYear = 365.25
	// tradingDaysPerYear scales daily returns in the Sharpe ratio
	tradingDaysPerYear = 252
	// minVariance absorbs rounding noise in the variance of a constant series
	minVariance = 1e-16
)

// Ledger accumulates trades and daily returns. It is safe for concurrent use.
type Ledger struct {
	mu              sync.RWMutex
	startingCapital float64
	trades          []types.TradeRecord
	dailyReturns    []float64
	snapshot        types.MetricsSnapshot
	grossLoss       decimal.Decimal
}

func NewLedger(startingCapital float64) (*Ledger, error) {
	if startingCapital <= 0 || math.IsNaN(startingCapital) || math.IsInf(startingCapital, 0) {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "starting capital must be positive, got %v", startingCapital)
	}

	l := &Ledger{
		mu:              sync.RWMutex{},
		startingCapital: startingCapital,
		trades:          nil,
		dailyReturns:    nil,
		snapshot:        types.MetricsSnapshot{},
		grossLoss:       decimal.Zero,
	}
	l.recalculate()

	return l, nil
}

// AddTrade records a completed round trip and recomputes the metrics.
func (l *Ledger) AddTrade(symbol string, entryTime, exitTime time.Time, entryPrice, exitPrice, quantity float64, tag string) (types.TradeRecord, error) {
	record, err := types.NewTradeRecord(symbol, entryTime, exitTime, entryPrice, exitPrice, quantity, tag)
	if err != nil {
		return types.TradeRecord{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.trades = append(l.trades, record)
	l.recalculate()

	return record, nil
}

// AddDailyReturn appends a daily portfolio return (0.01 = 1%) used only for
// the Sharpe ratio.
func (l *Ledger) AddDailyReturn(dailyReturn float64) error {
	if math.IsNaN(dailyReturn) || math.IsInf(dailyReturn, 0) {
		return errors.Newf(errors.ErrCodeInvalidParameter, "daily return must be finite, got %v", dailyReturn)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.dailyReturns = append(l.dailyReturns, dailyReturn)
	l.recalculate()

	return nil
}

func (l *Ledger) StartingCapital() float64 {
	return l.startingCapital
}

// Snapshot returns the current metrics.
func (l *Ledger) Snapshot() types.MetricsSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.snapshot
}

// Trades returns a copy of the recorded trades in insertion order.
func (l *Ledger) Trades() []types.TradeRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	trades := make([]types.TradeRecord, len(l.trades))
	copy(trades, l.trades)

	return trades
}

// DailyReturns returns a copy of the daily return series.
func (l *Ledger) DailyReturns() []float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	returns := make([]float64, len(l.dailyReturns))
	copy(returns, l.dailyReturns)

	return returns
}

// ProfitFactorValue returns the profit factor, or None when there is no
// gross loss and the ratio is undefined. Snapshot reports 0 in that case.
func (l *Ledger) ProfitFactorValue() optional.Option[float64] {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.grossLoss.IsPositive() {
		return optional.None[float64]()
	}

	return optional.Some(l.snapshot.ProfitFactor)
}

// Summary renders the current metrics as text.
func (l *Ledger) Summary() string {
	m := l.Snapshot()

	var b strings.Builder

	b.WriteString("=== RESULTS SUMMARY ===\n")
	fmt.Fprintf(&b, "Total Return: %.2f%%\n", m.TotalReturn*100)
	fmt.Fprintf(&b, "Annualized Return: %.2f%%\n", m.AnnualizedReturn*100)
	fmt.Fprintf(&b, "Sharpe Ratio: %.2f\n", m.SharpeRatio)
	fmt.Fprintf(&b, "Max Drawdown: %.2f%%\n", m.MaxDrawdown*100)
	fmt.Fprintf(&b, "Win Rate: %.1f%%\n", m.WinRate*100)
	fmt.Fprintf(&b, "Total Trades: %d\n", m.TotalTrades)
	fmt.Fprintf(&b, "Profit Factor: %.2f\n", m.ProfitFactor)
	fmt.Fprintf(&b, "Average Win: $%.2f\n", m.AverageWin)
	fmt.Fprintf(&b, "Average Loss: $%.2f\n", m.AverageLoss)
	fmt.Fprintf(&b, "Backtest Period: %d days\n", m.BacktestDays())
	b.WriteString("=======================")

	return b.String()
}

type ledgerFile struct {
	Metrics      types.MetricsSnapshot `yaml:"metrics"`
	Trades       []types.TradeRecord   `yaml:"trades"`
	DailyReturns []float64             `yaml:"daily_returns"`
}

// WriteYAML writes the metrics, trades and daily returns to path.
func (l *Ledger) WriteYAML(path string) error {
	l.mu.RLock()
	file := ledgerFile{
		Metrics:      l.snapshot,
		Trades:       l.trades,
		DailyReturns: l.dailyReturns,
	}
	data, err := yaml.Marshal(file)
	l.mu.RUnlock()

	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to marshal ledger", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write ledger to %s", path)
	}

	return nil
}

// recalculate rebuilds the snapshot from the full state. Callers hold the write lock.
func (l *Ledger) recalculate() {
	snapshot := types.MetricsSnapshot{
		StartingCapital: l.startingCapital,
		TotalTrades:     len(l.trades),
		DailyReturns:    len(l.dailyReturns),
		SharpeRatio:     sharpeRatio(l.dailyReturns),
	}
	l.grossLoss = decimal.Zero

	if len(l.trades) == 0 {
		l.snapshot = snapshot

		return
	}

	capital := decimal.NewFromFloat(l.startingCapital)
	totalPnL := decimal.Zero
	grossProfit := decimal.Zero
	grossLoss := decimal.Zero
	earliestEntry := l.trades[0].EntryTime
	latestExit := l.trades[0].ExitTime

	for _, trade := range l.trades {
		pnl := decimal.NewFromFloat(trade.PnL)
		totalPnL = totalPnL.Add(pnl)

		// breakeven trades count as losses
		if trade.IsWin {
			snapshot.WinningTrades++
			grossProfit = grossProfit.Add(pnl)
		} else {
			snapshot.LosingTrades++
			grossLoss = grossLoss.Add(pnl)
		}

		if trade.EntryTime.Before(earliestEntry) {
			earliestEntry = trade.EntryTime
		}

		if trade.ExitTime.After(latestExit) {
			latestExit = trade.ExitTime
		}
	}

	grossLoss = grossLoss.Abs()
	l.grossLoss = grossLoss

	snapshot.TotalPnL = totalPnL.InexactFloat64()
	snapshot.TotalReturn = totalPnL.Div(capital).InexactFloat64()
	snapshot.WinRate = float64(snapshot.WinningTrades) / float64(snapshot.TotalTrades)

	if snapshot.WinningTrades > 0 {
		snapshot.AverageWin = grossProfit.Div(decimal.NewFromInt(int64(snapshot.WinningTrades))).InexactFloat64()
	}

	if snapshot.LosingTrades > 0 {
		snapshot.AverageLoss = grossLoss.Div(decimal.NewFromInt(int64(snapshot.LosingTrades))).InexactFloat64()
	}

	if grossLoss.IsPositive() {
		snapshot.ProfitFactor = grossProfit.Div(grossLoss).InexactFloat64()
	}

	if len(l.trades) > 1 {
		snapshot.BacktestPeriod = latestExit.Sub(earliestEntry)

		if days := snapshot.BacktestDays(); days > 0 {
			snapshot.AnnualizedReturn = math.Pow(1+snapshot.TotalReturn, daysPerYear/float64(days)) - 1
		}
	}

	snapshot.MaxDrawdown = maxDrawdown(l.startingCapital, l.trades)
	l.snapshot = snapshot
}

// maxDrawdown replays trades in exit time order and returns the largest
// fall of running capital from its running peak.
func maxDrawdown(startingCapital float64, trades []types.TradeRecord) float64 {
	ordered := make([]types.TradeRecord, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ExitTime.Before(ordered[j].ExitTime)
	})

	running := decimal.NewFromFloat(startingCapital)
	peak := running
	worst := decimal.Zero

	for _, trade := range ordered {
		running = running.Add(decimal.NewFromFloat(trade.PnL))
		if running.GreaterThan(peak) {
			peak = running
		}

		if !peak.IsPositive() {
			continue
		}

		if drawdown := peak.Sub(running).Div(peak); drawdown.GreaterThan(worst) {
			worst = drawdown
		}
	}

	return worst.InexactFloat64()
}

// sharpeRatio returns mean over sample standard deviation of the daily
// returns, both scaled by sqrt(252). Zero for fewer than two returns or no
// dispersion.
func sharpeRatio(returns []float64) float64 {
	n := len(returns)
	if n < 2 {
		return 0
	}

	mean := talib.Sma(returns, n)[n-1]

	// sample variance from deviations around the mean
	var squared float64
	for _, r := range returns {
		squared += (r - mean) * (r - mean)
	}

	variance := squared / float64(n-1)
	if variance < minVariance {
		return 0
	}

	annualization := math.Sqrt(tradingDaysPerYear)

	return (mean * annualization) / (math.Sqrt(variance) * annualization)
}
