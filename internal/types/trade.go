package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"github.com/shopspring/decimal"
)

// TradeRecord is one completed round trip reported to the ledger.
type TradeRecord struct {
	Symbol     string    `yaml:"symbol" json:"symbol" csv:"symbol" validate:"required"`
	EntryTime  time.Time `yaml:"entry_time" json:"entry_time" csv:"entry_time" validate:"required"`
	ExitTime   time.Time `yaml:"exit_time" json:"exit_time" csv:"exit_time" validate:"required,gtefield=EntryTime"`
	EntryPrice float64   `yaml:"entry_price" json:"entry_price" csv:"entry_price" validate:"gt=0"`
	ExitPrice  float64   `yaml:"exit_price" json:"exit_price" csv:"exit_price" validate:"gte=0"`
	// Quantity is signed, negative for short round trips
	Quantity float64 `yaml:"quantity" json:"quantity" csv:"quantity" validate:"required,ne=0"`
	// PnL = (ExitPrice - EntryPrice) * Quantity
	// For example, 100 shares bought at $100 and sold at $105 give (105-100)*100 = $500.
	PnL float64 `yaml:"pnl" json:"pnl" csv:"pnl"`
	// PnLPercent = PnL / (EntryPrice * |Quantity|)
	PnLPercent float64 `yaml:"pnl_percent" json:"pnl_percent" csv:"pnl_percent"`
	// IsWin is true only when PnL is strictly positive
	IsWin bool   `yaml:"is_win" json:"is_win" csv:"is_win"`
	Tag   string `yaml:"tag" json:"tag" csv:"tag"`
}

// NewTradeRecord builds a TradeRecord and derives its PnL fields.
func NewTradeRecord(symbol string, entryTime, exitTime time.Time, entryPrice, exitPrice, quantity float64, tag string) (TradeRecord, error) {
	record := TradeRecord{
		Symbol:     symbol,
		EntryTime:  entryTime,
		ExitTime:   exitTime,
		EntryPrice: entryPrice,
		ExitPrice:  exitPrice,
		Quantity:   quantity,
		PnL:        0,
		PnLPercent: 0,
		IsWin:      false,
		Tag:        tag,
	}

	validate := validator.New()
	if err := validate.Struct(record); err != nil {
		return TradeRecord{}, errors.Wrap(errors.ErrCodeInvalidTrade, "invalid trade record", err)
	}

	entryDec := decimal.NewFromFloat(entryPrice)
	qtyDec := decimal.NewFromFloat(quantity)
	pnlDec := decimal.NewFromFloat(exitPrice).Sub(entryDec).Mul(qtyDec)

	record.PnL, _ = pnlDec.Float64()
	record.IsWin = pnlDec.IsPositive()

	notional := entryDec.Mul(qtyDec.Abs())
	if !notional.IsZero() {
		record.PnLPercent, _ = pnlDec.Div(notional).Float64()
	}

	return record, nil
}

// Duration returns the holding time of the round trip.
func (t TradeRecord) Duration() time.Duration {
	return t.ExitTime.Sub(t.EntryTime)
}
