// Package modules builds capability modules and whole strategies from typed
// configuration.
package modules

import (
	"github.com/rxtech-lab/argo-modular/internal/modules/entry"
	"github.com/rxtech-lab/argo-modular/internal/modules/exit"
	"github.com/rxtech-lab/argo-modular/internal/modules/risk"
	"github.com/rxtech-lab/argo-modular/internal/modules/sizing"
	"github.com/rxtech-lab/argo-modular/internal/strategy"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

type EntryType string

const (
	EntryTypeEMA                EntryType = "ema"
	EntryTypeGoldenCross        EntryType = "golden_cross"
	EntryTypeVolatilityBreakout EntryType = "volatility_breakout"
)

type ExitType string

const (
	ExitTypeEMA          ExitType = "ema"
	ExitTypeDeathCross   ExitType = "death_cross"
	ExitTypeStopLoss     ExitType = "stop_loss"
	ExitTypeTrailingStop ExitType = "trailing_stop"
)

type SizerType string

const (
	SizerTypeFixedAllocation    SizerType = "fixed_allocation"
	SizerTypeVolatilityAdjusted SizerType = "volatility_adjusted"
	SizerTypeKelly              SizerType = "kelly"
)

type RiskType string

const (
	RiskTypeBasic    RiskType = "basic"
	RiskTypeExposure RiskType = "exposure"
)

// EntryConfig selects an entry module. Only the block matching Type is read;
// a missing block means the module defaults.
type EntryConfig struct {
	Type               EntryType                       `yaml:"type" json:"type" jsonschema:"title=Type,enum=ema,enum=golden_cross,enum=volatility_breakout" validate:"required,oneof=ema golden_cross volatility_breakout"`
	EMA                *entry.EMAConfig                `yaml:"ema,omitempty" json:"ema,omitempty" jsonschema:"title=EMA"`
	GoldenCross        *entry.GoldenCrossConfig        `yaml:"golden_cross,omitempty" json:"golden_cross,omitempty" jsonschema:"title=Golden Cross"`
	VolatilityBreakout *entry.VolatilityBreakoutConfig `yaml:"volatility_breakout,omitempty" json:"volatility_breakout,omitempty" jsonschema:"title=Volatility Breakout"`
}

// ExitConfig selects an exit module.
type ExitConfig struct {
	Type         ExitType                 `yaml:"type" json:"type" jsonschema:"title=Type,enum=ema,enum=death_cross,enum=stop_loss,enum=trailing_stop" validate:"required,oneof=ema death_cross stop_loss trailing_stop"`
	EMA          *exit.EMAConfig          `yaml:"ema,omitempty" json:"ema,omitempty" jsonschema:"title=EMA"`
	DeathCross   *exit.DeathCrossConfig   `yaml:"death_cross,omitempty" json:"death_cross,omitempty" jsonschema:"title=Death Cross"`
	StopLoss     *exit.StopLossConfig     `yaml:"stop_loss,omitempty" json:"stop_loss,omitempty" jsonschema:"title=Stop Loss"`
	TrailingStop *exit.TrailingStopConfig `yaml:"trailing_stop,omitempty" json:"trailing_stop,omitempty" jsonschema:"title=Trailing Stop"`
}

// SizerConfig selects a position sizer.
type SizerConfig struct {
	Type               SizerType                        `yaml:"type" json:"type" jsonschema:"title=Type,enum=fixed_allocation,enum=volatility_adjusted,enum=kelly" validate:"required,oneof=fixed_allocation volatility_adjusted kelly"`
	FixedAllocation    *sizing.FixedAllocationConfig    `yaml:"fixed_allocation,omitempty" json:"fixed_allocation,omitempty" jsonschema:"title=Fixed Allocation"`
	VolatilityAdjusted *sizing.VolatilityAdjustedConfig `yaml:"volatility_adjusted,omitempty" json:"volatility_adjusted,omitempty" jsonschema:"title=Volatility Adjusted"`
	Kelly              *sizing.KellyConfig              `yaml:"kelly,omitempty" json:"kelly,omitempty" jsonschema:"title=Kelly"`
}

// RiskConfig selects a risk gate.
type RiskConfig struct {
	Type     RiskType             `yaml:"type" json:"type" jsonschema:"title=Type,enum=basic,enum=exposure" validate:"required,oneof=basic exposure"`
	Basic    *risk.BasicConfig    `yaml:"basic,omitempty" json:"basic,omitempty" jsonschema:"title=Basic"`
	Exposure *risk.ExposureConfig `yaml:"exposure,omitempty" json:"exposure,omitempty" jsonschema:"title=Exposure"`
}

// StrategyConfig describes a complete strategy. An empty Name falls back to
// the name derived from the modules.
type StrategyConfig struct {
	Name          string      `yaml:"name,omitempty" json:"name,omitempty" jsonschema:"title=Name,description=Display name of the strategy"`
	Entry         EntryConfig `yaml:"entry" json:"entry" jsonschema:"title=Entry" validate:"required"`
	Exit          ExitConfig  `yaml:"exit" json:"exit" jsonschema:"title=Exit" validate:"required"`
	PositionSizer SizerConfig `yaml:"position_sizer" json:"position_sizer" jsonschema:"title=Position Sizer" validate:"required"`
	RiskGate      RiskConfig  `yaml:"risk_gate" json:"risk_gate" jsonschema:"title=Risk Gate" validate:"required"`
}

// DefaultStrategyConfig returns the EMA trend strategy with stop loss,
// 95% allocation and basic risk checks.
func DefaultStrategyConfig() StrategyConfig {
	emaEntry := entry.DefaultEMAConfig()
	stopLoss := exit.DefaultStopLossConfig()
	allocation := sizing.DefaultFixedAllocationConfig()
	basic := risk.DefaultBasicConfig()

	return StrategyConfig{
		Name: "",
		Entry: EntryConfig{
			Type: EntryTypeEMA,
			EMA:  &emaEntry,
		},
		Exit: ExitConfig{
			Type:     ExitTypeStopLoss,
			StopLoss: &stopLoss,
		},
		PositionSizer: SizerConfig{
			Type:            SizerTypeFixedAllocation,
			FixedAllocation: &allocation,
		},
		RiskGate: RiskConfig{
			Type:  RiskTypeBasic,
			Basic: &basic,
		},
	}
}

func NewEntry(config EntryConfig) (strategy.EntrySignal, error) {
	switch config.Type {
	case EntryTypeEMA:
		return entry.NewEMA(valueOr(config.EMA, entry.DefaultEMAConfig))
	case EntryTypeGoldenCross:
		return entry.NewGoldenCross(valueOr(config.GoldenCross, entry.DefaultGoldenCrossConfig))
	case EntryTypeVolatilityBreakout:
		return entry.NewVolatilityBreakout(valueOr(config.VolatilityBreakout, entry.DefaultVolatilityBreakoutConfig))
	default:
		return nil, unknownModule(strategy.CapabilityEntry, string(config.Type))
	}
}

func NewExit(config ExitConfig) (strategy.ExitSignal, error) {
	switch config.Type {
	case ExitTypeEMA:
		return exit.NewEMA(valueOr(config.EMA, exit.DefaultEMAConfig))
	case ExitTypeDeathCross:
		return exit.NewDeathCross(valueOr(config.DeathCross, exit.DefaultDeathCrossConfig))
	case ExitTypeStopLoss:
		return exit.NewStopLoss(valueOr(config.StopLoss, exit.DefaultStopLossConfig))
	case ExitTypeTrailingStop:
		return exit.NewTrailingStop(valueOr(config.TrailingStop, exit.DefaultTrailingStopConfig))
	default:
		return nil, unknownModule(strategy.CapabilityExit, string(config.Type))
	}
}

func NewPositionSizer(config SizerConfig) (strategy.PositionSizer, error) {
	switch config.Type {
	case SizerTypeFixedAllocation:
		return sizing.NewFixedAllocation(valueOr(config.FixedAllocation, sizing.DefaultFixedAllocationConfig))
	case SizerTypeVolatilityAdjusted:
		return sizing.NewVolatilityAdjusted(valueOr(config.VolatilityAdjusted, sizing.DefaultVolatilityAdjustedConfig))
	case SizerTypeKelly:
		return sizing.NewKelly(valueOr(config.Kelly, sizing.DefaultKellyConfig))
	default:
		return nil, unknownModule(strategy.CapabilityPositionSizer, string(config.Type))
	}
}

func NewRiskGate(config RiskConfig) (strategy.RiskGate, error) {
	switch config.Type {
	case RiskTypeBasic:
		return risk.NewBasic(valueOr(config.Basic, risk.DefaultBasicConfig))
	case RiskTypeExposure:
		return risk.NewExposure(valueOr(config.Exposure, risk.DefaultExposureConfig))
	default:
		return nil, unknownModule(strategy.CapabilityRiskGate, string(config.Type))
	}
}

// NewStrategy builds every module of config and composes them. Each call
// returns fresh module instances with their own indicator state.
func NewStrategy(config StrategyConfig) (*strategy.Strategy, error) {
	entrySignal, err := NewEntry(config.Entry)
	if err != nil {
		return nil, err
	}

	exitSignal, err := NewExit(config.Exit)
	if err != nil {
		return nil, err
	}

	sizer, err := NewPositionSizer(config.PositionSizer)
	if err != nil {
		return nil, err
	}

	gate, err := NewRiskGate(config.RiskGate)
	if err != nil {
		return nil, err
	}

	return strategy.NewBuilder().
		WithEntry(entrySignal).
		WithExit(exitSignal).
		WithPositionSizer(sizer).
		WithRiskGate(gate).
		WithName(config.Name).
		Build()
}

func valueOr[T any](config *T, fallback func() T) T {
	if config == nil {
		return fallback()
	}

	return *config
}

func unknownModule(capability strategy.Capability, moduleType string) error {
	if moduleType == "" {
		return errors.NewMissingModuleError(string(capability))
	}

	return errors.Newf(errors.ErrCodeUnknownModule, "unknown %s module type %q", capability, moduleType)
}
