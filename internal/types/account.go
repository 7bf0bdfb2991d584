package types

// Account is the caller's view of the portfolio handed to the coordinator on
// every tick. The coordinator only reads it; the broker owns the real state.
type Account struct {
	// Positions maps symbol to signed quantity (positive is long, negative is short)
	Positions map[string]float64 `json:"positions" yaml:"positions"`
	// PortfolioValue is cash plus the marked value of all open positions
	PortfolioValue float64 `json:"portfolio_value" yaml:"portfolio_value"`
	// AvailableCash is the amount available for new purchases
	AvailableCash float64 `json:"available_cash" yaml:"available_cash"`
}

// Position returns the signed position for a symbol, zero when absent.
func (a Account) Position(symbol string) float64 {
	if a.Positions == nil {
		return 0
	}

	return a.Positions[symbol]
}
