// Package coordinator turns one market observation and the caller's account
// view into at most one trade order, consulting the four modules of a
// strategy.
package coordinator

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-modular/internal/logger"
	"github.com/rxtech-lab/argo-modular/internal/strategy"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"go.uber.org/zap"
)

// Action is the outcome of one tick.
type Action string

const (
	ActionHold     Action = "hold"
	ActionEnter    Action = "enter"
	ActionExit     Action = "exit"
	ActionRejected Action = "rejected"
)

// TickResult describes what happened on one tick. Order is set only for
// ActionEnter and ActionExit. Err carries a module fault; the tick emits no
// order when it is set.
type TickResult struct {
	Action Action
	Order  optional.Option[types.TradeOrder]
	Err    error
}

// EntryRecord is the entry the coordinator remembers for an open position.
type EntryRecord struct {
	Price float64
	Time  time.Time
}

// Coordinator drives a single strategy. It is not safe for concurrent use.
type Coordinator struct {
	strategy *strategy.Strategy
	log      *logger.Logger
	entries  map[string]EntryRecord
	newID    func() string
}

// NewCoordinator creates a coordinator for the strategy. A nil logger discards output.
func NewCoordinator(s *strategy.Strategy, log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Coordinator{
		strategy: s,
		log:      log,
		entries:  make(map[string]EntryRecord),
		newID:    uuid.NewString,
	}
}

func (c *Coordinator) Strategy() *strategy.Strategy {
	return c.strategy
}

// TrackedEntry returns the remembered entry for symbol, if any.
func (c *Coordinator) TrackedEntry(symbol string) optional.Option[EntryRecord] {
	record, ok := c.entries[symbol]
	if !ok {
		return optional.None[EntryRecord]()
	}

	return optional.Some(record)
}

// ProcessTick evaluates the strategy against one observation.
//
// Entry and exit signals are evaluated on every tick so their indicators stay
// current. An open position is closed in full when the exit fires; a flat
// symbol is entered when the entry fires and the sizer and risk gate agree.
func (c *Coordinator) ProcessTick(marketData types.MarketData, account types.Account) TickResult {
	if err := c.observe(marketData); err != nil {
		return c.fault(marketData, err)
	}

	position := account.Position(marketData.Symbol)
	if position == 0 {
		delete(c.entries, marketData.Symbol)
	}

	entryPrice, entryTime := marketData.Close, marketData.Time
	if record, ok := c.entries[marketData.Symbol]; ok {
		entryPrice, entryTime = record.Price, record.Time
	}

	entrySignal := c.strategy.Entry()

	shouldEnter, err := guard(strategy.CapabilityEntry, entrySignal, func() (bool, error) {
		return entrySignal.ShouldEnter(marketData)
	})
	if err != nil {
		return c.fault(marketData, err)
	}

	exitSignal := c.strategy.Exit()

	shouldExit, err := guard(strategy.CapabilityExit, exitSignal, func() (bool, error) {
		return exitSignal.ShouldExit(marketData, position, entryPrice, entryTime)
	})
	if err != nil {
		return c.fault(marketData, err)
	}

	if position != 0 {
		if !shouldExit {
			return hold()
		}

		return c.exit(marketData, account, position)
	}

	if !shouldEnter {
		return hold()
	}

	return c.enter(marketData, account)
}

func (c *Coordinator) exit(marketData types.MarketData, account types.Account, position float64) TickResult {
	quantity := -position

	allowed, err := c.validate(marketData, quantity, position, account)
	if err != nil {
		return c.fault(marketData, err)
	}

	if !allowed {
		err := errors.Newf(errors.ErrCodeExitBlocked,
			"risk gate %s rejected the exit of %v %s", moduleName(c.strategy.RiskGate()), position, marketData.Symbol)

		return TickResult{
			Action: ActionRejected,
			Order:  optional.None[types.TradeOrder](),
			Err:    c.logFault(marketData, err),
		}
	}

	order := c.order(marketData, quantity, types.TagExitPrefix+moduleName(c.strategy.Exit()))
	delete(c.entries, marketData.Symbol)

	c.log.Debug("Exit order emitted",
		zap.String("symbol", order.Symbol),
		zap.Float64("quantity", order.Quantity),
		zap.String("tag", order.Tag),
	)

	return TickResult{
		Action: ActionExit,
		Order:  optional.Some(order),
		Err:    nil,
	}
}

func (c *Coordinator) enter(marketData types.MarketData, account types.Account) TickResult {
	entrySignal := c.strategy.Entry()

	signal, err := guard(strategy.CapabilityEntry, entrySignal, func() (float64, error) {
		return entrySignal.Signal(marketData)
	})
	if err != nil {
		return c.fault(marketData, err)
	}

	direction := utils.Sign(signal)
	if direction == 0 {
		return hold()
	}

	sizer := c.strategy.PositionSizer()

	size, err := guard(strategy.CapabilityPositionSizer, sizer, func() (float64, error) {
		return sizer.Size(marketData, account.PortfolioValue, account.AvailableCash, direction > 0)
	})
	if err != nil {
		return c.fault(marketData, err)
	}

	quantity := math.Abs(size) * direction
	if quantity == 0 {
		return hold()
	}

	allowed, err := c.validate(marketData, quantity, 0, account)
	if err != nil {
		return c.fault(marketData, err)
	}

	if !allowed {
		c.log.Debug("Entry rejected by risk gate",
			zap.String("symbol", marketData.Symbol),
			zap.Float64("quantity", quantity),
			zap.String("risk_gate", moduleName(c.strategy.RiskGate())),
		)

		return TickResult{
			Action: ActionRejected,
			Order:  optional.None[types.TradeOrder](),
			Err:    nil,
		}
	}

	order := c.order(marketData, quantity, types.TagEntryPrefix+moduleName(entrySignal))
	c.entries[marketData.Symbol] = EntryRecord{
		Price: marketData.Close,
		Time:  marketData.Time,
	}

	c.log.Debug("Entry order emitted",
		zap.String("symbol", order.Symbol),
		zap.Float64("quantity", order.Quantity),
		zap.String("tag", order.Tag),
	)

	return TickResult{
		Action: ActionEnter,
		Order:  optional.Some(order),
		Err:    nil,
	}
}

func (c *Coordinator) validate(marketData types.MarketData, quantity float64, position float64, account types.Account) (bool, error) {
	gate := c.strategy.RiskGate()

	return guard(strategy.CapabilityRiskGate, gate, func() (bool, error) {
		return gate.Validate(marketData, quantity, position, account.PortfolioValue, account.AvailableCash)
	})
}

// observe feeds the observation to every module that keeps its own history.
func (c *Coordinator) observe(marketData types.MarketData) error {
	bound := []struct {
		capability strategy.Capability
		module     strategy.Module
	}{
		{strategy.CapabilityEntry, c.strategy.Entry()},
		{strategy.CapabilityExit, c.strategy.Exit()},
		{strategy.CapabilityPositionSizer, c.strategy.PositionSizer()},
		{strategy.CapabilityRiskGate, c.strategy.RiskGate()},
	}

	for _, b := range bound {
		observer, ok := b.module.(strategy.Observer)
		if !ok {
			continue
		}

		_, err := guard(b.capability, b.module, func() (struct{}, error) {
			observer.Observe(marketData)

			return struct{}{}, nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *Coordinator) order(marketData types.MarketData, quantity float64, tag string) types.TradeOrder {
	return types.TradeOrder{
		ID:        c.newID(),
		Symbol:    marketData.Symbol,
		Quantity:  quantity,
		OrderType: types.OrderTypeMarket,
		Tag:       tag,
		Timestamp: marketData.Time,
	}
}

func (c *Coordinator) fault(marketData types.MarketData, err error) TickResult {
	return TickResult{
		Action: ActionHold,
		Order:  optional.None[types.TradeOrder](),
		Err:    c.logFault(marketData, err),
	}
}

func (c *Coordinator) logFault(marketData types.MarketData, err error) error {
	c.log.Debug("Tick skipped",
		zap.String("symbol", marketData.Symbol),
		zap.Time("time", marketData.Time),
		zap.Error(err),
	)

	return err
}

func hold() TickResult {
	return TickResult{
		Action: ActionHold,
		Order:  optional.None[types.TradeOrder](),
		Err:    nil,
	}
}

// guard runs a module call, turning returned errors and panics into module faults.
func guard[T any](capability strategy.Capability, module strategy.Module, call func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T

			result = zero
			err = errors.Newf(errors.ErrCodeModuleFault, "%s module %s panicked: %v", capability, moduleName(module), r)
		}
	}()

	result, err = call()
	if err != nil {
		var zero T

		return zero, errors.Wrapf(errors.ErrCodeModuleFault, err, "%s module %s failed", capability, moduleName(module))
	}

	return result, nil
}

// moduleName returns the module name, tolerating modules whose Name panics.
func moduleName(module strategy.Module) (name string) {
	defer func() {
		if r := recover(); r != nil {
			name = fmt.Sprintf("%T", module)
		}
	}()

	return module.Name()
}
