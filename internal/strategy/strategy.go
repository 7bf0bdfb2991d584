package strategy

import (
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/version"
)

// Strategy binds one module of each capability under a name. It has no
// setters; build a new one with Builder to change any binding.
type Strategy struct {
	name          string
	entry         EntrySignal
	exit          ExitSignal
	positionSizer PositionSizer
	riskGate      RiskGate
}

func (s *Strategy) Name() string {
	return s.name
}

func (s *Strategy) Entry() EntrySignal {
	return s.entry
}

func (s *Strategy) Exit() ExitSignal {
	return s.exit
}

func (s *Strategy) PositionSizer() PositionSizer {
	return s.positionSizer
}

func (s *Strategy) RiskGate() RiskGate {
	return s.riskGate
}

// Info returns the metadata written into run reports.
func (s *Strategy) Info() types.StrategyInfo {
	return types.StrategyInfo{
		Name:         s.name,
		Version:      version.Version,
		Entry:        s.entry.Name(),
		Exit:         s.exit.Name(),
		PositionSize: s.positionSizer.Name(),
		RiskGate:     s.riskGate.Name(),
	}
}

// Parameters returns the parameters of every module keyed by capability.
func (s *Strategy) Parameters() map[Capability]map[string]any {
	return map[Capability]map[string]any{
		CapabilityEntry:         s.entry.Parameters(),
		CapabilityExit:          s.exit.Parameters(),
		CapabilityPositionSizer: s.positionSizer.Parameters(),
		CapabilityRiskGate:      s.riskGate.Parameters(),
	}
}
