package eventmodels

import "time"

// TickerWorkingSet is the per-ticker mutable state behind the dashboard
// tables. It is the only entity mutated in place: created when a ticker
// first appears (portfolio scan or manual add), updated on every refresh or
// user edit, and destroyed when a custom ticker is removed or the session
// ends. All mutation goes through the owning session.
type TickerWorkingSet struct {
	Ticker            string         `json:"ticker"`
	OtmCallPercent    int            `json:"otm_call_percent"`
	OtmPutPercent     int            `json:"otm_put_percent"`
	PutQuantity       int            `json:"put_quantity"`
	Calls             []*OptionQuote `json:"calls"`
	Puts              []*OptionQuote `json:"puts"`
	StockPrice        float64        `json:"stock_price"`
	PositionShares    int            `json:"position_shares"`
	IsCustomTicker    bool           `json:"is_custom_ticker"`
	IsPortfolioTicker bool           `json:"is_portfolio_ticker"`
	LastRefreshedAt   time.Time      `json:"last_refreshed_at"`
}

// Copy returns a snapshot of the working set detached from further session
// mutation. Quotes are immutable once built, so the quote pointers are
// shared; the slices and scalar fields are copied.
func (s *TickerWorkingSet) Copy() *TickerWorkingSet {
	copied := *s
	copied.Calls = append([]*OptionQuote(nil), s.Calls...)
	copied.Puts = append([]*OptionQuote(nil), s.Puts...)

	return &copied
}

// EligibleContracts is the number of covered-call contracts the stock
// position can back: one per 100 shares, floored.
func (s *TickerWorkingSet) EligibleContracts() int {
	if s.PositionShares <= 0 {
		return 0
	}

	return s.PositionShares / 100
}

// CallEligible reports whether the ticker participates in call-side
// aggregates. Positions under 100 shares stay visible in the working set but
// are flagged out rather than summed as zero.
func (s *TickerWorkingSet) CallEligible() bool {
	return s.EligibleContracts() > 0
}
