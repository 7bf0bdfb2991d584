package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

// MarketData is one OHLCV observation for one symbol. It is passed by value
// into the coordinator on every tick and never mutated afterwards.
type MarketData struct {
	Symbol string    `csv:"symbol" yaml:"symbol" json:"symbol" validate:"required"`
	Time   time.Time `csv:"time" yaml:"time" json:"time" validate:"required"`
	Open   float64   `csv:"open" yaml:"open" json:"open" validate:"gte=0"`
	High   float64   `csv:"high" yaml:"high" json:"high" validate:"gte=0"`
	Low    float64   `csv:"low" yaml:"low" json:"low" validate:"gte=0"`
	Close  float64   `csv:"close" yaml:"close" json:"close" validate:"gt=0"`
	Volume float64   `csv:"volume" yaml:"volume" json:"volume" validate:"gte=0"`
}

// Validate validates the MarketData struct.
func (m MarketData) Validate() error {
	validate := validator.New()
	if err := validate.Struct(m); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidObservation, "invalid market data", err)
	}

	if m.High < m.Low {
		return errors.Newf(errors.ErrCodeInvalidObservation, "high %.4f is below low %.4f for %s at %s",
			m.High, m.Low, m.Symbol, m.Time.Format(time.RFC3339))
	}

	return nil
}
