package exit

import (
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
)

// StopLossConfig configures the fixed stop loss exit.
type StopLossConfig struct {
	// StopPercent is the loss from the entry price that triggers the exit (0.05 = 5%)
	StopPercent float64 `yaml:"stop_percent" json:"stop_percent" jsonschema:"title=Stop Percent,default=0.05" validate:"gt=0,lt=1"`
}

func DefaultStopLossConfig() StopLossConfig {
	return StopLossConfig{StopPercent: 0.05}
}

// StopLoss closes a long position once it has lost StopPercent from entry.
type StopLoss struct {
	config StopLossConfig
}

func NewStopLoss(config StopLossConfig) (*StopLoss, error) {
	if err := utils.ValidateConfig("stop loss exit", config); err != nil {
		return nil, err
	}

	return &StopLoss{config: config}, nil
}

func (s *StopLoss) Name() string {
	return fmt.Sprintf("stop_loss%g", s.config.StopPercent*100)
}

func (s *StopLoss) Parameters() map[string]any {
	return map[string]any{
		"stop_percent": s.config.StopPercent,
	}
}

// StopLevel returns the price at or below which the position is closed.
func (s *StopLoss) StopLevel(entryPrice float64) float64 {
	return entryPrice * (1 - s.config.StopPercent)
}

func (s *StopLoss) ShouldExit(marketData types.MarketData, position float64, entryPrice float64, _ time.Time) (bool, error) {
	if position <= 0 || entryPrice <= 0 {
		return false, nil
	}

	loss := (entryPrice - marketData.Close) / entryPrice

	return loss >= s.config.StopPercent, nil
}
