package sizing

import (
	"math"

	"github.com/rxtech-lab/argo-modular/internal/commission"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/utils"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

// allocate converts a fraction of the portfolio into a quantity. The budget is
// capped by available cash and the quantity leaves room for the commission.
func allocate(marketData types.MarketData, fraction float64, portfolioValue float64, availableCash float64, fee commission.Fee, decimalPrecision int) (float64, error) {
	if marketData.Close <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPrice, "cannot size %s at price %v", marketData.Symbol, marketData.Close)
	}

	budget := math.Min(portfolioValue*fraction, availableCash)
	if budget <= 0 {
		return 0, nil
	}

	return utils.AffordableQuantity(budget, marketData.Close, fee, decimalPrecision), nil
}
