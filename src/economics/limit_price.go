package economics

import "math"

const minLimitPrice = 0.05

// SelectLimitPrice picks a workable limit price for an option order from the
// data at hand, in strict preference order: mid of bid/ask, bid alone, 90%
// of ask alone (conservative), last trade, stored premium, then a floor of
// 1% of strike. The result never drops below $0.05 and is rounded to the
// cent. Zero arguments mean "no data" for that field.
func SelectLimitPrice(bid, ask, last, premium, strike float64) float64 {
	var limit float64

	switch {
	case bid > 0 && ask > 0:
		limit = (bid + ask) / 2
	case bid > 0:
		limit = bid
	case ask > 0:
		limit = ask * 0.9
	case last > 0:
		limit = last
	case premium > 0:
		limit = premium
	default:
		limit = math.Max(strike*0.01, minLimitPrice)
	}

	if limit < minLimitPrice {
		limit = minLimitPrice
	}

	return math.Round(limit*100) / 100
}
