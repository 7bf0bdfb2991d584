package strategy

import (
	"time"

	"github.com/rxtech-lab/argo-modular/internal/types"
)

// Capability names one of the four slots of a strategy.
type Capability string

const (
	CapabilityEntry         Capability = "entry"
	CapabilityExit          Capability = "exit"
	CapabilityPositionSizer Capability = "position_sizer"
	CapabilityRiskGate      Capability = "risk_gate"
)

// Module is the part shared by every capability implementation.
type Module interface {
	// Name returns the human readable module name used in tags and logs
	Name() string
	// Parameters returns a read-only description of the module configuration
	Parameters() map[string]any
}

// EntrySignal decides whether to open a position.
//
// Implementations backed by rolling indicators advance them at most once per
// distinct observation time, so both methods may be called for the same tick.
type EntrySignal interface {
	Module
	// ShouldEnter reports whether a position should be opened on this observation
	ShouldEnter(marketData types.MarketData) (bool, error)
	// Signal returns a signed strength; positive is long, negative is short, zero is none
	Signal(marketData types.MarketData) (float64, error)
}

// ExitSignal decides whether to close an open position.
type ExitSignal interface {
	Module
	// ShouldExit reports whether the position should be closed. entryPrice and
	// entryTime describe the entry recorded by the coordinator.
	ShouldExit(marketData types.MarketData, position float64, entryPrice float64, entryTime time.Time) (bool, error)
}

// PositionSizer computes how many units to trade once an entry fires.
type PositionSizer interface {
	Module
	// Size returns a non-negative quantity whose cost does not exceed availableCash
	Size(marketData types.MarketData, portfolioValue float64, availableCash float64, isLong bool) (float64, error)
}

// RiskGate is the final veto on a proposed trade.
type RiskGate interface {
	Module
	// Validate reports whether the signed proposedQuantity may be sent. A
	// quantity whose sign opposes a non-zero currentPosition is always allowed.
	Validate(marketData types.MarketData, proposedQuantity float64, currentPosition float64, portfolioValue float64, availableCash float64) (bool, error)
}

// Observer is implemented by modules that need to see every observation even
// on ticks where their capability is not consulted, such as a sizer that
// keeps a rolling volatility estimate. The coordinator calls Observe once per
// tick before evaluating any module.
type Observer interface {
	Observe(marketData types.MarketData)
}
