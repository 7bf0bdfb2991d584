package strategy

import (
	"strings"

	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

// Builder assembles a Strategy. Only the presence of each binding is
// checked; module compatibility is the modules' own concern.
//
//	s, err := strategy.NewBuilder().
//		WithEntry(entry).
//		WithExit(exit).
//		WithPositionSizer(sizer).
//		WithRiskGate(gate).
//		Build()
type Builder struct {
	name          string
	entry         EntrySignal
	exit          ExitSignal
	positionSizer PositionSizer
	riskGate      RiskGate
}

func NewBuilder() *Builder {
	return &Builder{
		name:          "",
		entry:         nil,
		exit:          nil,
		positionSizer: nil,
		riskGate:      nil,
	}
}

func (b *Builder) WithEntry(entry EntrySignal) *Builder {
	b.entry = entry

	return b
}

func (b *Builder) WithExit(exit ExitSignal) *Builder {
	b.exit = exit

	return b
}

func (b *Builder) WithPositionSizer(sizer PositionSizer) *Builder {
	b.positionSizer = sizer

	return b
}

func (b *Builder) WithRiskGate(gate RiskGate) *Builder {
	b.riskGate = gate

	return b
}

// WithName sets the display name. An empty name falls back to the default.
func (b *Builder) WithName(name string) *Builder {
	b.name = strings.TrimSpace(name)

	return b
}

// Build returns the strategy or a *errors.MissingModuleError naming the first
// unbound capability, checked in entry, exit, sizer, risk gate order.
func (b *Builder) Build() (*Strategy, error) {
	switch {
	case b.entry == nil:
		return nil, errors.NewMissingModuleError(string(CapabilityEntry))
	case b.exit == nil:
		return nil, errors.NewMissingModuleError(string(CapabilityExit))
	case b.positionSizer == nil:
		return nil, errors.NewMissingModuleError(string(CapabilityPositionSizer))
	case b.riskGate == nil:
		return nil, errors.NewMissingModuleError(string(CapabilityRiskGate))
	}

	name := b.name
	if name == "" {
		name = strings.Join([]string{
			b.entry.Name(),
			b.exit.Name(),
			b.positionSizer.Name(),
			b.riskGate.Name(),
		}, "_")
	}

	return &Strategy{
		name:          name,
		entry:         b.entry,
		exit:          b.exit,
		positionSizer: b.positionSizer,
		riskGate:      b.riskGate,
	}, nil
}
