package economics

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/wheelhouse-trading/wheelhouse/src/eventmodels"
)

// ChainStats summarizes one side of a fetched chain for display next to the
// table: how the premiums distribute and the average implied volatility.
// Quotes without a market are skipped, not counted as zero.
type ChainStats struct {
	QuoteCount        int
	MeanPremium       float64
	MedianPremium     float64
	MeanImpliedVol    float64
	ExcludedFromStats int
}

func BuildChainStats(quotes []*eventmodels.OptionQuote) (ChainStats, error) {
	var premiums []float64
	var vols []float64
	excluded := 0

	for _, quote := range quotes {
		premium := quote.SellPremium()
		if premium == nil {
			excluded++
			continue
		}

		premiums = append(premiums, *premium)

		if quote.ImpliedVolatility != nil {
			vols = append(vols, *quote.ImpliedVolatility)
		}
	}

	result := ChainStats{
		QuoteCount:        len(premiums),
		ExcludedFromStats: excluded,
	}

	if len(premiums) == 0 {
		return result, nil
	}

	mean, err := stats.Mean(premiums)
	if err != nil {
		return ChainStats{}, fmt.Errorf("BuildChainStats: failed to calculate mean premium: %v", err)
	}

	median, err := stats.Median(premiums)
	if err != nil {
		return ChainStats{}, fmt.Errorf("BuildChainStats: failed to calculate median premium: %v", err)
	}

	result.MeanPremium = mean
	result.MedianPremium = median

	if len(vols) > 0 {
		meanVol, err := stats.Mean(vols)
		if err != nil {
			return ChainStats{}, fmt.Errorf("BuildChainStats: failed to calculate mean implied volatility: %v", err)
		}

		result.MeanImpliedVol = meanVol
	}

	return result, nil
}
