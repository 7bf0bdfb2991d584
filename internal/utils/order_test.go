package utils

import (
	"testing"

	"github.com/rxtech-lab/argo-modular/internal/commission"
	"github.com/stretchr/testify/suite"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsTestSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestCalculateMaxQuantity() {
	tests := []struct {
		name        string
		balance     float64
		price       float64
		fee         commission.Fee
		expectedQty float64
	}{
		{name: "no commission", balance: 1000.0, price: 100.0, fee: commission.NewZero(), expectedQty: 10},
		{name: "with commission", balance: 1000.0, price: 100.0, fee: commission.NewInteractiveBroker(), expectedQty: 9},
		{name: "zero balance", balance: 0.0, price: 100.0, fee: commission.NewInteractiveBroker(), expectedQty: 0},
		{name: "zero price", balance: 1000.0, price: 0.0, fee: commission.NewInteractiveBroker(), expectedQty: 0},
		{name: "balance less than price", balance: 50.0, price: 100.0, fee: commission.NewInteractiveBroker(), expectedQty: 0},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			qty := CalculateMaxQuantity(tc.balance, tc.price, tc.fee)
			suite.Equal(tc.expectedQty, RoundToDecimalPrecision(qty, 0), "Quantity mismatch")
			suite.LessOrEqual(qty*tc.price+feeIfAny(tc.fee, qty, tc.price), tc.balance+1e-9)
		})
	}
}

func feeIfAny(fee commission.Fee, qty, price float64) float64 {
	if qty == 0 {
		return 0
	}

	return fee.Calculate(qty, price)
}

func (suite *UtilsTestSuite) TestRoundToDecimalPrecision() {
	suite.Equal(1.23, RoundToDecimalPrecision(1.23999, 2))
	suite.Equal(9.0, RoundToDecimalPrecision(9.99, 0))
	suite.Equal(0.0, RoundToDecimalPrecision(0.4, 0))
}

func (suite *UtilsTestSuite) TestAffordableQuantity() {
	tests := []struct {
		name      string
		balance   float64
		price     float64
		fee       commission.Fee
		precision int
		expected  float64
	}{
		{name: "whole shares without fee", balance: 1000, price: 100, fee: commission.NewZero(), precision: 0, expected: 10},
		{name: "whole shares with minimum fee", balance: 1000, price: 100, fee: commission.NewInteractiveBroker(), precision: 0, expected: 9},
		{name: "fractional units", balance: 100, price: 30, fee: commission.NewZero(), precision: 2, expected: 3.33},
		{name: "not enough for one unit", balance: 50, price: 100, fee: commission.NewZero(), precision: 0, expected: 0},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.InDelta(tc.expected, AffordableQuantity(tc.balance, tc.price, tc.fee, tc.precision), 1e-9)
		})
	}
}

func (suite *UtilsTestSuite) TestSign() {
	suite.Equal(1.0, Sign(3))
	suite.Equal(-1.0, Sign(-0.5))
	suite.Equal(0.0, Sign(0))
}
