package utils

import (
	"math"

	"github.com/rxtech-lab/argo-modular/internal/commission"
)

// CalculateMaxQuantity calculates the maximum quantity that can be bought with the given balance, fees included.
func CalculateMaxQuantity(balance float64, price float64, fee commission.Fee) float64 {
	if price <= 0 || balance <= 0 {
		return 0
	}

	// Initial rough estimate (ignoring fees)
	maxQty := balance / price

	// Iteratively refine by accounting for fees
	for i := 0; i < 10; i++ {
		totalCost := maxQty*price + fee.Calculate(maxQty, price)
		if totalCost <= balance {
			break
		}

		maxQty *= balance / totalCost
	}

	return maxQty
}

// RoundToDecimalPrecision rounds the quantity down to the specified decimal precision.
func RoundToDecimalPrecision(quantity float64, decimalPrecision int) float64 {
	multiplier := math.Pow10(decimalPrecision)

	return math.Floor(quantity*multiplier) / multiplier
}

// AffordableQuantity returns the largest quantity at the given precision whose
// cost, fees included, fits in balance.
func AffordableQuantity(balance float64, price float64, fee commission.Fee, decimalPrecision int) float64 {
	qty := RoundToDecimalPrecision(CalculateMaxQuantity(balance, price, fee), decimalPrecision)
	step := math.Pow10(-decimalPrecision)

	for qty > 0 && qty*price+fee.Calculate(qty, price) > balance {
		qty = RoundToDecimalPrecision(qty-step, decimalPrecision)
	}

	return math.Max(qty, 0)
}

// Sign returns -1, 0 or 1.
func Sign(value float64) float64 {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	default:
		return 0
	}
}
