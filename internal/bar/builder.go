// Package bar consolidates minute observations into larger bars.
package bar

import (
	"sort"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

const minutesPerDay = 24 * 60

// Builder aggregates observations into N-minute bars per symbol. Buckets are
// aligned to midnight of the observation's own day, so a 15 minute bar starts
// at 09:30, 09:45 and so on.
type Builder struct {
	minutes int
	pending map[string]*types.MarketData
}

func NewBuilder(minutes int) (*Builder, error) {
	if minutes < 1 || minutes > minutesPerDay {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "bar interval must be between 1 and %d minutes, got %d", minutesPerDay, minutes)
	}

	return &Builder{
		minutes: minutes,
		pending: make(map[string]*types.MarketData),
	}, nil
}

func (b *Builder) Minutes() int {
	return b.minutes
}

// BucketStart returns the start of the bar that contains t.
func (b *Builder) BucketStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	sinceMidnight := t.Hour()*60 + t.Minute()
	bucket := (sinceMidnight / b.minutes) * b.minutes

	return midnight.Add(time.Duration(bucket) * time.Minute)
}

// Update adds an observation and returns the previous bar of the same symbol
// once the observation opens a new bucket.
func (b *Builder) Update(marketData types.MarketData) optional.Option[types.MarketData] {
	start := b.BucketStart(marketData.Time)

	current, ok := b.pending[marketData.Symbol]
	if ok && current.Time.Equal(start) {
		current.High = max(current.High, marketData.High)
		current.Low = min(current.Low, marketData.Low)
		current.Close = marketData.Close
		current.Volume += marketData.Volume

		return optional.None[types.MarketData]()
	}

	next := marketData
	next.Time = start
	b.pending[marketData.Symbol] = &next

	if !ok {
		return optional.None[types.MarketData]()
	}

	return optional.Some(*current)
}

// Flush returns the partial bars still being built, ordered by time then
// symbol, and clears them.
func (b *Builder) Flush() []types.MarketData {
	bars := make([]types.MarketData, 0, len(b.pending))
	for _, pending := range b.pending {
		bars = append(bars, *pending)
	}

	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Time.Equal(bars[j].Time) {
			return bars[i].Symbol < bars[j].Symbol
		}

		return bars[i].Time.Before(bars[j].Time)
	})

	b.pending = make(map[string]*types.MarketData)

	return bars
}
