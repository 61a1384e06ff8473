package economics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wheelhouse-trading/wheelhouse/src/eventmodels"
)

func TestEnrichQuote(t *testing.T) {
	set := &eventmodels.TickerWorkingSet{
		Ticker:         "SOFI",
		StockPrice:     20,
		PositionShares: 250,
		PutQuantity:    3,
	}

	t.Run("call contracts come from the share position", func(t *testing.T) {
		q := quote(eventmodels.Call, 22, f(0.45))

		earnings := EnrichQuote(q, set, 100000)

		assert.Equal(t, 2, earnings.MaxContracts)
		assert.Equal(t, 45.0, earnings.PremiumPerContract)
		assert.Equal(t, 90.0, earnings.TotalPremium)
		assert.InDelta(t, 90.0/4400*100, earnings.ReturnOnCapital, 1e-9)
		assert.InDelta(t, 10.0, earnings.OtmPercent, 1e-9)
		assert.Nil(t, earnings.PortfolioImpact)
	})

	t.Run("put contracts come from the chosen quantity", func(t *testing.T) {
		q := quote(eventmodels.Put, 18, f(0.30))

		earnings := EnrichQuote(q, set, 100000)

		assert.Equal(t, 3, earnings.MaxContracts)
		assert.Equal(t, 90.0, earnings.TotalPremium)
		assert.InDelta(t, 10.0, earnings.OtmPercent, 1e-9)

		// 18 * 100 * 3 of collateral against a 100k account
		assert.NotNil(t, earnings.PortfolioImpact)
		assert.InDelta(t, 5.4, *earnings.PortfolioImpact, 1e-9)
	})

	t.Run("no market displays as zero premium", func(t *testing.T) {
		q := quote(eventmodels.Call, 22, nil)

		earnings := EnrichQuote(q, set, 100000)

		assert.Equal(t, 0.0, earnings.TotalPremium)
		assert.Equal(t, 2, earnings.MaxContracts)
	})

	t.Run("unknown account value leaves the put impact unset", func(t *testing.T) {
		q := quote(eventmodels.Put, 18, f(0.30))

		earnings := EnrichQuote(q, set, 0)

		assert.Nil(t, earnings.PortfolioImpact)
	})
}

func TestBuildChainStats(t *testing.T) {
	t.Run("summarizes premiums and implied volatility", func(t *testing.T) {
		quotes := []*eventmodels.OptionQuote{
			{Strike: 22, Bid: f(0.40), ImpliedVolatility: f(0.50)},
			{Strike: 23, Bid: f(0.30), ImpliedVolatility: f(0.60)},
			{Strike: 24, Bid: f(0.20)},
		}

		result, err := BuildChainStats(quotes)

		assert.NoError(t, err)
		assert.Equal(t, 3, result.QuoteCount)
		assert.InDelta(t, 0.30, result.MeanPremium, 1e-9)
		assert.InDelta(t, 0.30, result.MedianPremium, 1e-9)
		assert.InDelta(t, 0.55, result.MeanImpliedVol, 1e-9)
	})

	t.Run("skips quotes with no market", func(t *testing.T) {
		quotes := []*eventmodels.OptionQuote{
			{Strike: 22, Bid: f(0.40)},
			{Strike: 23},
		}

		result, err := BuildChainStats(quotes)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.QuoteCount)
		assert.Equal(t, 1, result.ExcludedFromStats)
		assert.InDelta(t, 0.40, result.MeanPremium, 1e-9)
	})

	t.Run("empty chain yields zeroes without error", func(t *testing.T) {
		result, err := BuildChainStats(nil)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.QuoteCount)
	})
}
