package economics

import "github.com/wheelhouse-trading/wheelhouse/src/eventmodels"

// QuoteEarnings is the per-row earnings block attached to each displayed
// quote: how far out of the money the strike sits, how many contracts the
// position (calls) or collateral (puts) backs, the premium that sells for,
// and the yield on the capital at risk. PortfolioImpact is the put
// collateral as a share of the account value, nil for calls and when the
// account value is unknown.
type QuoteEarnings struct {
	OtmPercent         float64  `json:"otm_percent"`
	MaxContracts       int      `json:"max_contracts"`
	PremiumPerContract float64  `json:"premium_per_contract"`
	TotalPremium       float64  `json:"total_premium"`
	ReturnOnCapital    float64  `json:"return_on_capital"`
	PortfolioImpact    *float64 `json:"portfolio_impact_percent"`
}

// EnrichQuote computes the earnings block for a single quote against its
// working set. For calls, the share position caps the contract count; for
// puts, the contract count is the user-chosen (or recommended) put quantity.
// A quote with no market produces zero premium here. This is the per-row
// display fallback, which is why aggregate sums use BuildEarningsSummary
// instead.
func EnrichQuote(quote *eventmodels.OptionQuote, set *eventmodels.TickerWorkingSet, accountValue float64) QuoteEarnings {
	var contracts int
	if quote.Right == eventmodels.Call {
		contracts = ContractsFromShares(set.PositionShares)
	} else {
		contracts = set.PutQuantity
	}

	premiumPerContract := PremiumTotal(quote.SellPremium(), 1)
	totalPremium := premiumPerContract * float64(contracts)

	capitalAtRisk := ExerciseCost(quote.Strike, contracts)

	var returnOnCapital float64
	if capitalAtRisk > 0 {
		returnOnCapital = totalPremium / capitalAtRisk * 100
	}

	earnings := QuoteEarnings{
		OtmPercent:         OtmPercentage(quote.Strike, set.StockPrice, quote.Right),
		MaxContracts:       contracts,
		PremiumPerContract: premiumPerContract,
		TotalPremium:       totalPremium,
		ReturnOnCapital:    returnOnCapital,
	}

	if quote.Right == eventmodels.Put {
		earnings.PortfolioImpact = PortfolioImpactPercent(capitalAtRisk, accountValue)
	}

	return earnings
}
