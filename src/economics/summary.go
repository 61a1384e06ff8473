package economics

import "github.com/wheelhouse-trading/wheelhouse/src/eventmodels"

const weeksPerYear = 52

// BuildEarningsSummary aggregates weekly premium income across working sets.
// Each ticker contributes its selected contract per side: the first call
// quote when the position backs at least one contract, and the first put
// quote at the working set's put quantity. Quotes without a market are
// excluded from the sums and counted, never summed as zero.
//
// The projection multiplies one week's premium by 52, a naive
// constant-repetition extrapolation, not a forecast. The return denominator
// prefers the account-level value and falls back to stock value plus cash
// when the account summary is missing or empty.
func BuildEarningsSummary(sets []*eventmodels.TickerWorkingSet, acct *eventmodels.AccountSummary) eventmodels.EarningsSummary {
	var summary eventmodels.EarningsSummary

	for _, set := range sets {
		summary.StockPositionValue += set.StockPrice * float64(set.PositionShares)

		if set.CallEligible() && len(set.Calls) > 0 {
			quote := set.Calls[0]
			if premium := quote.SellPremium(); premium != nil {
				summary.WeeklyCallPremium += PremiumTotal(premium, set.EligibleContracts())
			} else {
				summary.ExcludedQuotes++
			}
		}

		if len(set.Puts) > 0 && set.PutQuantity > 0 {
			quote := set.Puts[0]
			if premium := quote.SellPremium(); premium != nil {
				summary.WeeklyPutPremium += PremiumTotal(premium, set.PutQuantity)
			} else {
				summary.ExcludedQuotes++
			}

			summary.TotalPutExerciseCost += ExerciseCost(quote.Strike, set.PutQuantity)
		}
	}

	summary.TotalWeeklyPremium = summary.WeeklyCallPremium + summary.WeeklyPutPremium
	summary.ProjectedAnnualEarnings = summary.TotalWeeklyPremium * weeksPerYear

	if acct != nil && acct.AccountValue > 0 {
		summary.PortfolioValue = acct.AccountValue
		summary.PortfolioValueSource = eventmodels.PortfolioValueFromAccount
	} else {
		var cash float64
		if acct != nil {
			cash = acct.CashBalance
		}

		summary.PortfolioValue = summary.StockPositionValue + cash
		summary.PortfolioValueSource = eventmodels.PortfolioValueFromStockPlusCash
	}

	if summary.PortfolioValue > 0 {
		summary.ProjectedAnnualReturn = summary.ProjectedAnnualEarnings / summary.PortfolioValue * 100
	}

	return summary
}
