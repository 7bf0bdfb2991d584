// Package backtest replays historical observations through a strategy and a
// paper broker and reports the resulting trade metrics.
package backtest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-modular/internal/bar"
	"github.com/rxtech-lab/argo-modular/internal/commission"
	"github.com/rxtech-lab/argo-modular/internal/config"
	"github.com/rxtech-lab/argo-modular/internal/coordinator"
	"github.com/rxtech-lab/argo-modular/internal/ledger"
	"github.com/rxtech-lab/argo-modular/internal/ledger/writer"
	"github.com/rxtech-lab/argo-modular/internal/logger"
	"github.com/rxtech-lab/argo-modular/internal/modules"
	"github.com/rxtech-lab/argo-modular/internal/strategy"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards output.
func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithProgress renders a progress bar on stderr while replaying.
func WithProgress(show bool) Option {
	return func(e *Engine) {
		e.showProgress = show
	}
}

// WithTradesOutput writes every closed trade to a parquet file at path.
func WithTradesOutput(path string) Option {
	return func(e *Engine) {
		e.tradesPath = path
	}
}

// WithDataPath records the source of the observations in the report.
func WithDataPath(path string) Option {
	return func(e *Engine) {
		e.dataPath = path
	}
}

// Engine runs one strategy over one data set. An engine runs once; build a
// new one for every replay.
//
// Modules keep rolling state, so every symbol gets its own strategy instance
// and coordinator. The broker and ledger are shared.
type Engine struct {
	config       config.BacktestConfig
	strategy     *strategy.Strategy
	newStrategy  func() (*strategy.Strategy, error)
	coordinators map[string]*coordinator.Coordinator
	broker       *PaperBroker
	ledger       *ledger.Ledger
	builder      optional.Option[*bar.Builder]
	log          *logger.Logger
	showProgress bool
	tradesPath   string
	dataPath     string
	ran          bool

	report     types.RunReport
	day        time.Time
	dayStart   float64
	lastTime   time.Time
	symbols    map[string]struct{}
	tradesSink *writer.TradesWriter
}

// NewEngine builds the strategy described by cfg and wires it to a fresh
// broker and ledger. Each symbol in the data gets a fresh strategy built from
// cfg.Strategy on its first observation.
func NewEngine(cfg config.RunConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s, err := modules.NewStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	e, err := NewEngineWithStrategy(cfg.Backtest, s, opts...)
	if err != nil {
		return nil, err
	}

	e.newStrategy = func() (*strategy.Strategy, error) {
		return modules.NewStrategy(cfg.Strategy)
	}

	return e, nil
}

// NewEngineWithStrategy wires an already built strategy. A single strategy
// instance cannot keep apart the state of several symbols, so Run rejects
// data with more than one symbol.
func NewEngineWithStrategy(cfg config.BacktestConfig, s *strategy.Strategy, opts ...Option) (*Engine, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeBacktestConfigError, "strategy is nil")
	}

	broker, err := NewPaperBroker(cfg.InitialCapital, commission.ForBroker(cfg.Broker), cfg.DecimalPrecision)
	if err != nil {
		return nil, err
	}

	tradeLedger, err := ledger.NewLedger(cfg.InitialCapital)
	if err != nil {
		return nil, err
	}

	builder := optional.None[*bar.Builder]()
	if cfg.BarMinutes > 0 {
		b, err := bar.NewBuilder(cfg.BarMinutes)
		if err != nil {
			return nil, err
		}

		builder = optional.Some(b)
	}

	e := &Engine{
		config:       cfg,
		strategy:     s,
		newStrategy:  nil,
		coordinators: make(map[string]*coordinator.Coordinator),
		broker:       broker,
		ledger:       tradeLedger,
		builder:      builder,
		log:          logger.NewNopLogger(),
		showProgress: false,
		tradesPath:   "",
		dataPath:     "",
		ran:          false,
		report:       types.RunReport{},
		day:          time.Time{},
		dayStart:     cfg.InitialCapital,
		lastTime:     time.Time{},
		symbols:      make(map[string]struct{}),
		tradesSink:   nil,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Ledger returns the trade ledger filled by Run.
func (e *Engine) Ledger() *ledger.Ledger {
	return e.ledger
}

// Broker returns the paper broker.
func (e *Engine) Broker() *PaperBroker {
	return e.broker
}

// Strategy returns the strategy being replayed. With several symbols it is
// the instance serving the first one.
func (e *Engine) Strategy() *strategy.Strategy {
	return e.strategy
}

// Run replays data in order. Observations outside the configured time window
// or symbol list are dropped, invalid or out-of-order observations are
// skipped with a warning. Cancelling ctx stops the replay with an error.
func (e *Engine) Run(ctx context.Context, data []types.MarketData) (types.RunReport, error) {
	if e.ran {
		return types.RunReport{}, errors.New(errors.ErrCodeBacktestConfigError, "engine has already run")
	}

	e.ran = true

	observations := e.filter(data)
	if len(observations) == 0 {
		return types.RunReport{}, errors.New(errors.ErrCodeBacktestNoData, "no market data in the configured window")
	}

	if e.newStrategy == nil {
		if symbols := distinctSymbols(observations); len(symbols) > 1 {
			return types.RunReport{}, errors.Newf(errors.ErrCodeBacktestConfigError,
				"a single strategy instance cannot replay several symbols: %v", symbols)
		}
	}

	if e.tradesPath != "" {
		e.tradesSink = writer.NewTradesWriter(e.tradesPath, e.strategy.Name())
		if err := e.tradesSink.Initialize(); err != nil {
			return types.RunReport{}, err
		}

		defer e.tradesSink.Close()
	}

	e.report = types.RunReport{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Strategy:  e.strategy.Info(),
		DataPath:  e.dataPath,
	}

	e.log.Info("Running strategy",
		zap.String("strategy", e.strategy.Name()),
		zap.Int("observations", len(observations)),
		zap.Int("bar_minutes", e.config.BarMinutes),
	)

	var progress *progressbar.ProgressBar
	if e.showProgress {
		progress = progressbar.Default(int64(len(observations)))
		progress.Describe(fmt.Sprintf("Processing %s", e.strategy.Name()))
	}

	for _, marketData := range observations {
		if err := ctx.Err(); err != nil {
			return types.RunReport{}, errors.Wrap(errors.ErrCodeBacktestConfigError, "replay cancelled", err)
		}

		if progress != nil {
			_ = progress.Add(1)
		}

		if !e.inOrder(marketData) {
			continue
		}

		if e.builder.IsNone() {
			if err := e.process(marketData); err != nil {
				return types.RunReport{}, err
			}

			continue
		}

		completed := e.builder.Unwrap().Update(marketData)
		if completed.IsSome() {
			if err := e.process(completed.Unwrap()); err != nil {
				return types.RunReport{}, err
			}
		}
	}

	if e.builder.IsSome() {
		for _, pending := range e.builder.Unwrap().Flush() {
			if err := e.process(pending); err != nil {
				return types.RunReport{}, err
			}
		}
	}

	if progress != nil {
		_ = progress.Finish()
	}

	if err := e.closeDay(); err != nil {
		return types.RunReport{}, err
	}

	return e.finish()
}

func (e *Engine) filter(data []types.MarketData) []types.MarketData {
	allowed := make(map[string]struct{}, len(e.config.Symbols))
	for _, symbol := range e.config.Symbols {
		allowed[symbol] = struct{}{}
	}

	observations := make([]types.MarketData, 0, len(data))

	for _, marketData := range data {
		if len(allowed) > 0 {
			if _, ok := allowed[marketData.Symbol]; !ok {
				continue
			}
		}

		if e.config.StartTime.IsSome() && marketData.Time.Before(e.config.StartTime.Unwrap()) {
			continue
		}

		if e.config.EndTime.IsSome() && marketData.Time.After(e.config.EndTime.Unwrap()) {
			continue
		}

		if err := marketData.Validate(); err != nil {
			e.log.Warn("Skipping invalid observation",
				zap.String("symbol", marketData.Symbol),
				zap.Time("time", marketData.Time),
				zap.Error(err),
			)

			continue
		}

		observations = append(observations, marketData)
	}

	return observations
}

func (e *Engine) inOrder(marketData types.MarketData) bool {
	if marketData.Time.Before(e.lastTime) {
		e.log.Warn("Skipping out-of-order observation",
			zap.String("symbol", marketData.Symbol),
			zap.Time("time", marketData.Time),
			zap.Time("last", e.lastTime),
		)

		return false
	}

	e.lastTime = marketData.Time

	return true
}

func (e *Engine) process(marketData types.MarketData) error {
	if err := e.rollDay(marketData.Time); err != nil {
		return err
	}

	e.symbols[marketData.Symbol] = struct{}{}
	e.broker.Mark(marketData)
	e.report.Ticks++

	c, err := e.coordinatorFor(marketData.Symbol)
	if err != nil {
		return err
	}

	result := c.ProcessTick(marketData, e.broker.Account())

	switch {
	case result.Action == coordinator.ActionRejected:
		e.report.Rejections++
	case result.Err != nil:
		e.report.Faults++
	}

	if result.Err != nil {
		e.log.Warn("Tick produced no order",
			zap.String("symbol", marketData.Symbol),
			zap.Time("time", marketData.Time),
			zap.String("action", string(result.Action)),
			zap.Error(result.Err),
		)
	}

	if result.Order.IsNone() {
		return nil
	}

	order := result.Order.Unwrap()

	fill, err := e.broker.Execute(order, marketData)
	if err != nil {
		e.log.Warn("Order not filled",
			zap.String("symbol", order.Symbol),
			zap.Float64("quantity", order.Quantity),
			zap.String("tag", order.Tag),
			zap.Error(err),
		)

		return nil
	}

	e.report.Orders++

	e.log.Debug("Order filled",
		zap.String("symbol", order.Symbol),
		zap.Float64("quantity", fill.Quantity),
		zap.Float64("price", fill.Price),
		zap.Float64("fee", fill.Fee),
		zap.String("tag", order.Tag),
	)

	if fill.ClosedTrade.IsNone() {
		return nil
	}

	return e.record(fill.ClosedTrade.Unwrap())
}

// coordinatorFor returns the coordinator of symbol, creating it on first use.
// The first symbol reuses the engine's strategy.
func (e *Engine) coordinatorFor(symbol string) (*coordinator.Coordinator, error) {
	if c, ok := e.coordinators[symbol]; ok {
		return c, nil
	}

	s := e.strategy
	if len(e.coordinators) > 0 {
		if e.newStrategy == nil {
			return nil, errors.Newf(errors.ErrCodeBacktestConfigError, "no strategy for symbol %s", symbol)
		}

		fresh, err := e.newStrategy()
		if err != nil {
			return nil, err
		}

		s = fresh
	}

	c := coordinator.NewCoordinator(s, e.log.With(zap.String("symbol", symbol)))
	e.coordinators[symbol] = c

	return c, nil
}

func (e *Engine) record(trade ClosedTrade) error {
	record, err := e.ledger.AddTrade(trade.Symbol, trade.EntryTime, trade.ExitTime,
		trade.EntryPrice, trade.ExitPrice, trade.Quantity, trade.Tag)
	if err != nil {
		return err
	}

	if e.tradesSink == nil {
		return nil
	}

	return e.tradesSink.Write(record)
}

// rollDay closes the previous calendar day when t starts a new one.
func (e *Engine) rollDay(t time.Time) error {
	day := truncateDay(t)
	if e.day.IsZero() {
		e.day = day

		return nil
	}

	if !day.After(e.day) {
		return nil
	}

	if err := e.closeDay(); err != nil {
		return err
	}

	e.day = day

	return nil
}

func (e *Engine) closeDay() error {
	if e.day.IsZero() || e.dayStart <= 0 {
		return nil
	}

	equity := e.broker.Equity()
	if err := e.ledger.AddDailyReturn(equity/e.dayStart - 1); err != nil {
		return err
	}

	e.dayStart = equity

	return nil
}

func (e *Engine) finish() (types.RunReport, error) {
	if e.tradesSink != nil {
		if err := e.tradesSink.Flush(); err != nil {
			return types.RunReport{}, err
		}

		e.report.TradesFilePath = e.tradesSink.OutputPath()
	}

	symbols := make([]string, 0, len(e.symbols))
	for symbol := range e.symbols {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	e.report.Symbols = symbols
	e.report.Metrics = e.ledger.Snapshot()
	e.report.TotalFees = e.broker.TotalFees()
	e.report.FinalEquity = e.broker.Equity()

	e.log.Info("Run finished",
		zap.String("strategy", e.strategy.Name()),
		zap.Int("ticks", e.report.Ticks),
		zap.Int("orders", e.report.Orders),
		zap.Int("trades", e.report.Metrics.TotalTrades),
		zap.Float64("final_equity", e.report.FinalEquity),
	)

	return e.report, nil
}

func distinctSymbols(data []types.MarketData) []string {
	seen := make(map[string]struct{})
	symbols := make([]string, 0, 1)

	for _, marketData := range data {
		if _, ok := seen[marketData.Symbol]; ok {
			continue
		}

		seen[marketData.Symbol] = struct{}{}
		symbols = append(symbols, marketData.Symbol)
	}

	sort.Strings(symbols)

	return symbols
}

func truncateDay(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
