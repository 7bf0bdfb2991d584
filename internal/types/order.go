package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

type PurchaseType string

type OrderType string

type PositionType string

const (
	PositionTypeLong  PositionType = "LONG"
	PositionTypeShort PositionType = "SHORT"
)

const (
	PurchaseTypeBuy  PurchaseType = "BUY"
	PurchaseTypeSell PurchaseType = "SELL"
)

const (
	OrderTypeMarket OrderType = "MARKET"
)

const (
	// TagEntryPrefix prefixes the tag of orders emitted by an entry module
	TagEntryPrefix = "Entry-"
	// TagExitPrefix prefixes the tag of orders emitted by an exit module
	TagExitPrefix = "Exit-"
)

// TradeOrder is the instruction emitted by the coordinator. Quantity is signed:
// positive buys, negative sells.
type TradeOrder struct {
	ID        string    `yaml:"id" json:"id" csv:"id" validate:"required,uuid"`
	Symbol    string    `yaml:"symbol" json:"symbol" csv:"symbol" validate:"required"`
	Quantity  float64   `yaml:"quantity" json:"quantity" csv:"quantity" validate:"required,ne=0"`
	OrderType OrderType `yaml:"order_type" json:"order_type" csv:"order_type" validate:"required,oneof=MARKET"`
	// Tag identifies the module that triggered the order, e.g. "Entry-ema"
	Tag       string    `yaml:"tag" json:"tag" csv:"tag" validate:"required"`
	Timestamp time.Time `yaml:"timestamp" json:"timestamp" csv:"timestamp" validate:"required"`
}

// Side returns BUY for positive quantities and SELL otherwise.
func (o TradeOrder) Side() PurchaseType {
	if o.Quantity > 0 {
		return PurchaseTypeBuy
	}

	return PurchaseTypeSell
}

// Validate validates the TradeOrder struct.
func (o *TradeOrder) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid trade order", err)
	}

	return nil
}
