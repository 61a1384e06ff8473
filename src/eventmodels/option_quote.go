package eventmodels

import "time"

// OptionQuote is an immutable snapshot of a single option contract taken from
// one chain fetch. A refresh supersedes the whole slice it belongs to; quotes
// are never mutated in place. Bid/Ask/Last and the greeks are nil when the
// backend reported no market for the contract.
type OptionQuote struct {
	Symbol            string      `json:"symbol"`
	Strike            float64     `json:"strike"`
	Expiration        time.Time   `json:"expiration"`
	Right             OptionRight `json:"option_type"`
	Bid               *float64    `json:"bid"`
	Ask               *float64    `json:"ask"`
	Last              *float64    `json:"last"`
	Delta             *float64    `json:"delta"`
	Gamma             *float64    `json:"gamma"`
	Theta             *float64    `json:"theta"`
	Vega              *float64    `json:"vega"`
	ImpliedVolatility *float64    `json:"implied_volatility"`
	OpenInterest      int         `json:"open_interest"`
}

// HasMarket reports whether at least one of bid/ask carries a quote. A quote
// with both sides missing is still valid data, it just contributes nothing
// to aggregate premium sums.
func (q *OptionQuote) HasMarket() bool {
	return q.Bid != nil || q.Ask != nil
}

// SellPremium is the per-share premium a seller would collect, preferring the
// bid. Returns nil when no market exists; callers decide between excluding
// the quote (aggregates) and displaying a zero fallback (per-row).
func (q *OptionQuote) SellPremium() *float64 {
	if q.Bid != nil {
		return q.Bid
	}

	return q.Ask
}
