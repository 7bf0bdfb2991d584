package exit

import (
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
)

// TrailingStopConfig configures the trailing stop exit.
type TrailingStopConfig struct {
	// TrailPercent is the distance kept below the highest close since entry
	TrailPercent float64 `yaml:"trail_percent" json:"trail_percent" jsonschema:"title=Trail Percent,default=0.05" validate:"gt=0,lt=1"`
	// InitialStopPercent places the first stop below the entry price
	InitialStopPercent float64 `yaml:"initial_stop_percent" json:"initial_stop_percent" jsonschema:"title=Initial Stop Percent,default=0.03" validate:"gt=0,lt=1"`
}

func DefaultTrailingStopConfig() TrailingStopConfig {
	return TrailingStopConfig{
		TrailPercent:       0.05,
		InitialStopPercent: 0.03,
	}
}

// TrailingStop keeps a stop that follows the highest close upward and never
// moves down. Tracking starts on the first call with an open position and is
// cleared when the position is flat or the stop is hit.
type TrailingStop struct {
	config    TrailingStopConfig
	active    bool
	highest   float64
	stopLevel float64
}

func NewTrailingStop(config TrailingStopConfig) (*TrailingStop, error) {
	if err := utils.ValidateConfig("trailing stop exit", config); err != nil {
		return nil, err
	}

	return &TrailingStop{
		config:    config,
		active:    false,
		highest:   0,
		stopLevel: 0,
	}, nil
}

func (t *TrailingStop) Name() string {
	return fmt.Sprintf("trailing_stop%g", t.config.TrailPercent*100)
}

func (t *TrailingStop) Parameters() map[string]any {
	return map[string]any{
		"trail_percent":        t.config.TrailPercent,
		"initial_stop_percent": t.config.InitialStopPercent,
	}
}

// StopLevel returns the current stop and whether a position is being tracked.
func (t *TrailingStop) StopLevel() (float64, bool) {
	return t.stopLevel, t.active
}

// HighestPrice returns the highest close seen since entry.
func (t *TrailingStop) HighestPrice() float64 {
	return t.highest
}

func (t *TrailingStop) ShouldExit(marketData types.MarketData, position float64, entryPrice float64, _ time.Time) (bool, error) {
	if position <= 0 {
		t.reset()

		return false, nil
	}

	if !t.active {
		t.highest = entryPrice
		t.stopLevel = entryPrice * (1 - t.config.InitialStopPercent)
		t.active = true
	}

	if marketData.Close > t.highest {
		t.highest = marketData.Close
		if trailed := t.highest * (1 - t.config.TrailPercent); trailed > t.stopLevel {
			t.stopLevel = trailed
		}
	}

	if marketData.Close <= t.stopLevel {
		t.reset()

		return true, nil
	}

	return false, nil
}

func (t *TrailingStop) reset() {
	t.active = false
	t.highest = 0
	t.stopLevel = 0
}
