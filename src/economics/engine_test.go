package economics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wheelhouse-trading/wheelhouse/src/eventmodels"
)

func f(v float64) *float64 {
	return &v
}

func TestOtmPercentage(t *testing.T) {
	t.Run("call above the stock price is out of the money", func(t *testing.T) {
		assert.InDelta(t, 10.0, OtmPercentage(110, 100, eventmodels.Call), 1e-9)
	})

	t.Run("put below the stock price is out of the money", func(t *testing.T) {
		assert.InDelta(t, 10.0, OtmPercentage(90, 100, eventmodels.Put), 1e-9)
	})

	t.Run("in the money quotes come back negative", func(t *testing.T) {
		assert.InDelta(t, -5.0, OtmPercentage(95, 100, eventmodels.Call), 1e-9)
		assert.InDelta(t, -5.0, OtmPercentage(105, 100, eventmodels.Put), 1e-9)
	})

	t.Run("call and put mirror each other around the stock price", func(t *testing.T) {
		assert.InDelta(t, OtmPercentage(110, 100, eventmodels.Call), OtmPercentage(90, 100, eventmodels.Put), 1e-9)
	})

	t.Run("zero inputs yield zero", func(t *testing.T) {
		assert.Equal(t, 0.0, OtmPercentage(0, 100, eventmodels.Call))
		assert.Equal(t, 0.0, OtmPercentage(110, 0, eventmodels.Call))
	})
}

func TestContractsFromShares(t *testing.T) {
	assert.Equal(t, 0, ContractsFromShares(0))
	assert.Equal(t, 0, ContractsFromShares(99))
	assert.Equal(t, 1, ContractsFromShares(100))
	assert.Equal(t, 1, ContractsFromShares(199))
	assert.Equal(t, 2, ContractsFromShares(250))
	assert.Equal(t, 0, ContractsFromShares(-100))
}

func TestValidateOtmPercent(t *testing.T) {
	assert.NoError(t, ValidateOtmPercent(1))
	assert.NoError(t, ValidateOtmPercent(50))

	var validationErr *eventmodels.ValidationError
	assert.ErrorAs(t, ValidateOtmPercent(0), &validationErr)
	assert.ErrorAs(t, ValidateOtmPercent(51), &validationErr)
	assert.ErrorAs(t, ValidateOtmPercent(-10), &validationErr)
}

func TestRecommendedPutQuantity(t *testing.T) {
	t.Run("sizes from doubled per-ticker cash share", func(t *testing.T) {
		// 2 * 25,000 / 5 = 10,000 target; strike 20 ties up 2,000 per contract
		rec := RecommendedPutQuantity(21, 20, 25_000, 5)

		assert.Equal(t, 5, rec.Quantity)
	})

	t.Run("floors at one contract", func(t *testing.T) {
		rec := RecommendedPutQuantity(500, 480, 10_000, 8)

		assert.Equal(t, 1, rec.Quantity)
	})

	t.Run("caps at ten contracts", func(t *testing.T) {
		rec := RecommendedPutQuantity(6, 5, 1_000_000, 2)

		assert.Equal(t, 10, rec.Quantity)
	})

	t.Run("degenerate inputs fall back to one contract", func(t *testing.T) {
		assert.Equal(t, 1, RecommendedPutQuantity(0, 20, 25_000, 5).Quantity)
		assert.Equal(t, 1, RecommendedPutQuantity(21, 0, 25_000, 5).Quantity)
		assert.Equal(t, 1, RecommendedPutQuantity(21, 20, 0, 5).Quantity)
		assert.Equal(t, 1, RecommendedPutQuantity(21, 20, 25_000, 0).Quantity)
	})

	t.Run("always lands inside the guard rails", func(t *testing.T) {
		for _, cash := range []float64{0, 100, 10_000, 1_000_000, 100_000_000} {
			rec := RecommendedPutQuantity(10, 9, cash, 3)
			assert.GreaterOrEqual(t, rec.Quantity, 1)
			assert.LessOrEqual(t, rec.Quantity, 10)
		}
	})
}

func TestPremiumTotal(t *testing.T) {
	assert.Equal(t, 750.0, PremiumTotal(f(2.50), 3))
	assert.Equal(t, 0.0, PremiumTotal(nil, 3))
	assert.Equal(t, 0.0, PremiumTotal(f(2.50), 0))
}

func TestExerciseCost(t *testing.T) {
	assert.Equal(t, 4000.0, ExerciseCost(20, 2))
	assert.Equal(t, 0.0, ExerciseCost(20, 0))
}

func TestPortfolioImpactPercent(t *testing.T) {
	t.Run("relates exercise cost to account value", func(t *testing.T) {
		impact := PortfolioImpactPercent(4000, 100_000)

		assert.NotNil(t, impact)
		assert.InDelta(t, 4.0, *impact, 1e-9)
	})

	t.Run("unknown account value yields nil, not zero", func(t *testing.T) {
		assert.Nil(t, PortfolioImpactPercent(4000, 0))
	})
}

func TestTargetStrikes(t *testing.T) {
	callStrike, putStrike := TargetStrikes(100, 10)

	assert.Equal(t, 110.0, callStrike)
	assert.Equal(t, 90.0, putStrike)
}

// Mirrors a full position walk-through: 250 shares at $20 with 10% OTM
// strikes and a $25k cash balance split across five tickers.
func TestCoveredPositionScenario(t *testing.T) {
	// arrange
	shares := 250
	stockPrice := 20.0
	cash := 25_000.0
	tickers := 5

	// act
	contracts := ContractsFromShares(shares)
	callStrike, putStrike := TargetStrikes(stockPrice, 10)
	rec := RecommendedPutQuantity(stockPrice, putStrike, cash, tickers)
	callPremium := PremiumTotal(f(0.45), contracts)
	putCollateral := ExerciseCost(putStrike, rec.Quantity)
	impact := PortfolioImpactPercent(putCollateral, 30_000)

	// assert
	assert.Equal(t, 2, contracts)
	assert.Equal(t, 22.0, callStrike)
	assert.Equal(t, 18.0, putStrike)
	assert.Equal(t, 5, rec.Quantity)
	assert.Equal(t, 90.0, callPremium)
	assert.Equal(t, 9000.0, putCollateral)
	assert.InDelta(t, 30.0, *impact, 1e-9)
}
