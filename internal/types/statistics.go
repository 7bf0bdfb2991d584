package types

import (
	"os"
	"time"

	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MetricsSnapshot is the derived aggregate of a trade ledger. It is recomputed
// from the full ledger state after every mutation.
type MetricsSnapshot struct {
	StartingCapital float64 `yaml:"starting_capital" json:"starting_capital"`
	TotalTrades     int     `yaml:"total_trades" json:"total_trades"`
	// Count of trades with strictly positive pnl.
	WinningTrades int `yaml:"winning_trades" json:"winning_trades"`
	// Count of all other trades, breakeven included.
	LosingTrades int     `yaml:"losing_trades" json:"losing_trades"`
	TotalPnL     float64 `yaml:"total_pnl" json:"total_pnl"`
	// Total pnl divided by starting capital.
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	WinRate     float64 `yaml:"win_rate" json:"win_rate"`
	AverageWin  float64 `yaml:"average_win" json:"average_win"`
	// Mean absolute pnl of losing trades.
	AverageLoss float64 `yaml:"average_loss" json:"average_loss"`
	// Gross profit over gross loss. Zero when there is no loss at all.
	ProfitFactor float64 `yaml:"profit_factor" json:"profit_factor"`
	// Trade-level drawdown replayed in exit time order.
	MaxDrawdown      float64       `yaml:"max_drawdown" json:"max_drawdown"`
	AnnualizedReturn float64       `yaml:"annualized_return" json:"annualized_return"`
	BacktestPeriod   time.Duration `yaml:"backtest_period" json:"backtest_period"`
	SharpeRatio      float64       `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	DailyReturns     int           `yaml:"daily_returns" json:"daily_returns"`
}

// BacktestDays returns the backtest period in whole days.
func (m MetricsSnapshot) BacktestDays() int {
	return int(m.BacktestPeriod / (24 * time.Hour))
}

// StrategyInfo contains metadata about the strategy that generated a report.
type StrategyInfo struct {
	Name         string `yaml:"name" json:"name"`
	Version      string `yaml:"version" json:"version"`
	Entry        string `yaml:"entry" json:"entry"`
	Exit         string `yaml:"exit" json:"exit"`
	PositionSize string `yaml:"position_sizer" json:"position_sizer"`
	RiskGate     string `yaml:"risk_gate" json:"risk_gate"`
}

// RunReport summarises one replay run.
type RunReport struct {
	// ID is the unique identifier for this run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this run was executed.
	Timestamp time.Time       `yaml:"timestamp" json:"timestamp"`
	Symbols   []string        `yaml:"symbols" json:"symbols"`
	Strategy  StrategyInfo    `yaml:"strategy" json:"strategy"`
	Metrics   MetricsSnapshot `yaml:"metrics" json:"metrics"`
	// Total commission paid.
	TotalFees float64 `yaml:"total_fees" json:"total_fees"`
	// Number of observations driven through the coordinator.
	Ticks int `yaml:"ticks" json:"ticks"`
	// Number of orders filled by the broker.
	Orders int `yaml:"orders" json:"orders"`
	// Number of entries vetoed by the risk gate.
	Rejections int `yaml:"rejections" json:"rejections"`
	// Number of ticks skipped because a module faulted.
	Faults      int     `yaml:"faults" json:"faults"`
	FinalEquity float64 `yaml:"final_equity" json:"final_equity"`
	// TradesFilePath is the path to the trades parquet file, if one was written.
	TradesFilePath string `yaml:"trades_file_path,omitempty" json:"trades_file_path,omitempty"`
	// DataPath is the path to the market data file used for this run.
	DataPath string `yaml:"data_path,omitempty" json:"data_path,omitempty"`
}

// WriteRunReports writes a list of run reports to a YAML file.
func WriteRunReports(path string, reports []RunReport) error {
	data, err := yaml.Marshal(reports)
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to marshal run reports to YAML", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write run reports to %s", path)
	}

	return nil
}
