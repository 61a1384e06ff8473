// Package economics holds the pure calculation layer behind the dashboard
// tables: per-contract and aggregate premium arithmetic, OTM distances,
// sizing recommendations and rollover candidate selection. Functions here do
// no I/O and never mutate their inputs.
package economics

import (
	"fmt"
	"math"

	"github.com/wheelhouse-trading/wheelhouse/src/eventmodels"
)

const (
	// SharesPerContract is the standard equity option multiplier.
	SharesPerContract = 100

	// put sizing guard rails
	minRecommendedPuts = 1
	maxRecommendedPuts = 10

	// allocation buffer applied across the simultaneous-assignment-risk pool
	putAllocationFactor = 2.0

	MinOtmPercent = 1
	MaxOtmPercent = 50
)

// ValidateOtmPercent rejects an out-of-range OTM percentage instead of
// clamping it, so intent handlers fail loudly and deterministically.
func ValidateOtmPercent(percent int) error {
	if percent < MinOtmPercent || percent > MaxOtmPercent {
		return eventmodels.NewValidationError("otm_percent", fmt.Sprintf("must be between %d and %d, got %d", MinOtmPercent, MaxOtmPercent, percent))
	}

	return nil
}

// OtmPercentage is the signed distance between strike and reference price,
// normalized to the reference. The sign convention flips between calls and
// puts so a positive result always means genuinely out-of-the-money for that
// side. Zero or absent inputs yield 0, a documented degenerate case rather than an
// error.
func OtmPercentage(strike, referencePrice float64, side eventmodels.OptionRight) float64 {
	if strike == 0 || referencePrice == 0 {
		return 0
	}

	if side == eventmodels.Put {
		return (referencePrice - strike) / referencePrice * 100
	}

	return (strike - referencePrice) / referencePrice * 100
}

// ContractsFromShares is the number of covered-call contracts a share
// position can back. Positions under 100 shares yield 0 and must be filtered
// out of call-side aggregates by the caller.
func ContractsFromShares(sharesOwned int) int {
	if sharesOwned <= 0 {
		return 0
	}

	return sharesOwned / SharesPerContract
}

// RecommendedPutQuantity sizes a cash-secured-put position for one ticker.
// The allocation target doubles the per-ticker cash share as a buffer
// against simultaneous assignment across the pool; the result is floored at
// one contract (never recommend doing nothing) and capped at ten as a
// concentration guard. Degenerate inputs fall back to a single contract with
// an explicit rationale.
func RecommendedPutQuantity(stockPrice, putStrike, cashBalance float64, tickerCount int) eventmodels.PutRecommendation {
	if cashBalance <= 0 || stockPrice <= 0 || putStrike <= 0 || tickerCount <= 0 {
		return eventmodels.PutRecommendation{
			Quantity:  minRecommendedPuts,
			Rationale: "insufficient data, default",
		}
	}

	allocationTarget := putAllocationFactor * cashBalance / float64(tickerCount)
	potentialContracts := int(allocationTarget / (putStrike * SharesPerContract))

	quantity := potentialContracts
	rationale := fmt.Sprintf("allocation target %.2f at strike %.2f", allocationTarget, putStrike)

	if quantity < minRecommendedPuts {
		quantity = minRecommendedPuts
		rationale = "allocation below one contract, floored at 1"
	} else if quantity > maxRecommendedPuts {
		quantity = maxRecommendedPuts
		rationale = fmt.Sprintf("allocation suggests %d contracts, capped at %d", potentialContracts, maxRecommendedPuts)
	}

	return eventmodels.PutRecommendation{
		Quantity:  quantity,
		Rationale: rationale,
	}
}

// PremiumTotal is the dollar premium collected for quantity contracts at a
// per-share price. A nil price yields 0; that fallback is only valid for
// per-row display; aggregate sums must exclude the quote instead (see
// BuildEarningsSummary).
func PremiumTotal(perShare *float64, quantity int) float64 {
	if perShare == nil || quantity <= 0 {
		return 0
	}

	return *perShare * SharesPerContract * float64(quantity)
}

// ExerciseCost is the cash required if quantity put contracts are assigned
// at the strike, and equally the collateral a cash-secured put ties up.
func ExerciseCost(strike float64, quantity int) float64 {
	if quantity <= 0 {
		return 0
	}

	return strike * SharesPerContract * float64(quantity)
}

// PortfolioImpactPercent relates an exercise cost to the account value.
// Returns nil (not zero, not NaN) when the account value is unknown.
func PortfolioImpactPercent(exerciseCost, accountValue float64) *float64 {
	if accountValue == 0 {
		return nil
	}

	v := exerciseCost / accountValue * 100
	return &v
}

// StandardStrike snaps a computed target price to a standard whole-dollar
// strike.
func StandardStrike(price float64) float64 {
	return math.Round(price)
}

// TargetStrikes derives the call and put strikes sitting otmPercent away
// from the stock price, snapped to standard strikes.
func TargetStrikes(stockPrice float64, otmPercent int) (callStrike, putStrike float64) {
	callStrike = StandardStrike(stockPrice * (1 + float64(otmPercent)/100))
	putStrike = StandardStrike(stockPrice * (1 - float64(otmPercent)/100))
	return callStrike, putStrike
}
