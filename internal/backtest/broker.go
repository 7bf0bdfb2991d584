package backtest

import (
	"math"
	"sort"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-modular/internal/commission"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"github.com/shopspring/decimal"
)

// Position is an open holding in the paper account.
type Position struct {
	Symbol string
	// Quantity is signed, negative for shorts
	Quantity          float64
	AverageEntryPrice float64
	EntryTime         time.Time
	EntryTag          string
}

// Fill is the result of executing one order.
type Fill struct {
	Order    types.TradeOrder
	Quantity float64
	Price    float64
	Fee      float64
	Time     time.Time
	// ClosedTrade is set when the fill reduced or closed a position
	ClosedTrade optional.Option[ClosedTrade]
}

// ClosedTrade is the round trip closed by a fill.
type ClosedTrade struct {
	Symbol     string
	EntryTime  time.Time
	ExitTime   time.Time
	EntryPrice float64
	ExitPrice  float64
	// Quantity carries the sign of the position that was closed
	Quantity float64
	Tag      string
}

// PaperBroker fills market orders at the bar close against a simulated account.
// It is not safe for concurrent use.
type PaperBroker struct {
	cash             decimal.Decimal
	fees             decimal.Decimal
	fee              commission.Fee
	decimalPrecision int
	positions        map[string]Position
	marks            map[string]float64
}

// NewPaperBroker creates a broker holding initialCapital in cash.
func NewPaperBroker(initialCapital float64, fee commission.Fee, decimalPrecision int) (*PaperBroker, error) {
	if initialCapital <= 0 || math.IsNaN(initialCapital) || math.IsInf(initialCapital, 0) {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "initial capital must be positive, got %v", initialCapital)
	}

	if decimalPrecision < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "decimal precision must not be negative, got %d", decimalPrecision)
	}

	if fee == nil {
		fee = commission.NewZero()
	}

	return &PaperBroker{
		cash:             decimal.NewFromFloat(initialCapital),
		fees:             decimal.Zero,
		fee:              fee,
		decimalPrecision: decimalPrecision,
		positions:        make(map[string]Position),
		marks:            make(map[string]float64),
	}, nil
}

// Mark records the latest close of a symbol for valuation.
func (b *PaperBroker) Mark(marketData types.MarketData) {
	b.marks[marketData.Symbol] = marketData.Close
}

// Cash returns the cash balance.
func (b *PaperBroker) Cash() float64 {
	return b.cash.InexactFloat64()
}

// TotalFees returns the commission paid so far.
func (b *PaperBroker) TotalFees() float64 {
	return b.fees.InexactFloat64()
}

// Equity returns cash plus every open position marked at its latest close.
func (b *PaperBroker) Equity() float64 {
	equity := b.cash
	for symbol, position := range b.positions {
		mark, ok := b.marks[symbol]
		if !ok {
			mark = position.AverageEntryPrice
		}

		equity = equity.Add(decimal.NewFromFloat(position.Quantity).Mul(decimal.NewFromFloat(mark)))
	}

	return equity.InexactFloat64()
}

// Position returns the open position of a symbol.
func (b *PaperBroker) Position(symbol string) optional.Option[Position] {
	position, ok := b.positions[symbol]
	if !ok {
		return optional.None[Position]()
	}

	return optional.Some(position)
}

// Positions returns every open position ordered by symbol.
func (b *PaperBroker) Positions() []Position {
	positions := make([]Position, 0, len(b.positions))
	for _, position := range b.positions {
		positions = append(positions, position)
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Symbol < positions[j].Symbol
	})

	return positions
}

// Account returns the view of the portfolio handed to the coordinator.
func (b *PaperBroker) Account() types.Account {
	positions := make(map[string]float64, len(b.positions))
	for symbol, position := range b.positions {
		positions[symbol] = position.Quantity
	}

	return types.Account{
		Positions:      positions,
		PortfolioValue: b.Equity(),
		AvailableCash:  b.Cash(),
	}
}

// Execute fills a market order at the close of marketData.
//
// Orders that open or add to a position are rounded down to the configured
// precision and must be paid for in full, fees included. Orders that reduce a
// position always fill. An order that crosses zero closes the old position and
// opens the remainder on the other side at the same price.
func (b *PaperBroker) Execute(order types.TradeOrder, marketData types.MarketData) (Fill, error) {
	if err := order.Validate(); err != nil {
		return Fill{}, err
	}

	if order.Symbol != marketData.Symbol {
		return Fill{}, errors.Newf(errors.ErrCodeOrderFailed, "order for %s cannot fill on %s data", order.Symbol, marketData.Symbol)
	}

	if marketData.Close <= 0 {
		return Fill{}, errors.Newf(errors.ErrCodeInvalidPrice, "cannot fill %s at price %v", order.Symbol, marketData.Close)
	}

	position := b.positions[order.Symbol]
	quantity := order.Quantity

	if !reduces(quantity, position.Quantity) || math.Abs(quantity) > math.Abs(position.Quantity) {
		quantity = utils.Sign(quantity) * utils.RoundToDecimalPrecision(math.Abs(quantity), b.decimalPrecision)
		if quantity == 0 {
			return Fill{}, errors.Newf(errors.ErrCodeOrderFailed, "order quantity %v is zero at precision %d", order.Quantity, b.decimalPrecision)
		}
	}

	price := marketData.Close
	fee := decimal.NewFromFloat(b.fee.Calculate(quantity, price))
	notional := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(price))

	if quantity > 0 && !reduces(quantity, position.Quantity) {
		cost := notional.Add(fee)
		if cost.GreaterThan(b.cash) {
			return Fill{}, errors.Newf(errors.ErrCodeInsufficientFunds, "buying %v %s costs %s, cash is %s",
				quantity, order.Symbol, cost.StringFixed(2), b.cash.StringFixed(2))
		}
	}

	b.cash = b.cash.Sub(notional).Sub(fee)
	b.fees = b.fees.Add(fee)

	fill := Fill{
		Order:       order,
		Quantity:    quantity,
		Price:       price,
		Fee:         fee.InexactFloat64(),
		Time:        marketData.Time,
		ClosedTrade: optional.None[ClosedTrade](),
	}

	if position.Quantity == 0 || !reduces(quantity, position.Quantity) {
		b.positions[order.Symbol] = b.add(position, order, quantity, price, marketData.Time)

		return fill, nil
	}

	closed := math.Min(math.Abs(quantity), math.Abs(position.Quantity)) * utils.Sign(position.Quantity)
	fill.ClosedTrade = optional.Some(ClosedTrade{
		Symbol:     order.Symbol,
		EntryTime:  position.EntryTime,
		ExitTime:   marketData.Time,
		EntryPrice: position.AverageEntryPrice,
		ExitPrice:  price,
		Quantity:   closed,
		Tag:        order.Tag,
	})

	remaining := decimal.NewFromFloat(position.Quantity).Add(decimal.NewFromFloat(quantity)).InexactFloat64()

	switch {
	case remaining == 0:
		delete(b.positions, order.Symbol)
	case utils.Sign(remaining) == utils.Sign(position.Quantity):
		position.Quantity = remaining
		b.positions[order.Symbol] = position
	default:
		b.positions[order.Symbol] = Position{
			Symbol:            order.Symbol,
			Quantity:          remaining,
			AverageEntryPrice: price,
			EntryTime:         marketData.Time,
			EntryTag:          order.Tag,
		}
	}

	return fill, nil
}

func (b *PaperBroker) add(position Position, order types.TradeOrder, quantity, price float64, at time.Time) Position {
	if position.Quantity == 0 {
		return Position{
			Symbol:            order.Symbol,
			Quantity:          quantity,
			AverageEntryPrice: price,
			EntryTime:         at,
			EntryTag:          order.Tag,
		}
	}

	oldQty := decimal.NewFromFloat(position.Quantity).Abs()
	addQty := decimal.NewFromFloat(quantity).Abs()
	total := oldQty.Add(addQty)

	position.AverageEntryPrice = decimal.NewFromFloat(position.AverageEntryPrice).Mul(oldQty).
		Add(decimal.NewFromFloat(price).Mul(addQty)).
		Div(total).
		InexactFloat64()
	position.Quantity = decimal.NewFromFloat(position.Quantity).Add(decimal.NewFromFloat(quantity)).InexactFloat64()

	return position
}

// reduces reports whether quantity trades against an open position.
func reduces(quantity, position float64) bool {
	return position != 0 && utils.Sign(quantity) == -utils.Sign(position)
}
