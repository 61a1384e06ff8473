package eventmodels

// PortfolioValueSource documents which figure backed the projected-return
// denominator: the account-level value when available, otherwise the sum of
// stock value and cash balance.
type PortfolioValueSource string

const (
	PortfolioValueFromAccount       PortfolioValueSource = "account_value"
	PortfolioValueFromStockPlusCash PortfolioValueSource = "stock_plus_cash"
)

// EarningsSummary aggregates weekly premium income across all eligible
// tickers: call side only where the position backs at least one contract,
// put side for every ticker. Quotes with no market are excluded from the
// sums (never zero-coerced) and counted in ExcludedQuotes so the UI can
// surface the data gap.
type EarningsSummary struct {
	WeeklyCallPremium       float64              `json:"weekly_call_premium"`
	WeeklyPutPremium        float64              `json:"weekly_put_premium"`
	TotalWeeklyPremium      float64              `json:"total_weekly_premium"`
	TotalPutExerciseCost    float64              `json:"total_put_exercise_cost"`
	StockPositionValue      float64              `json:"stock_position_value"`
	PortfolioValue          float64              `json:"portfolio_value"`
	PortfolioValueSource    PortfolioValueSource `json:"portfolio_value_source"`
	ProjectedAnnualEarnings float64              `json:"projected_annual_earnings"`
	ProjectedAnnualReturn   float64              `json:"projected_annual_return"`
	ExcludedQuotes          int                  `json:"excluded_quotes"`
}
