package eventmodels

// AccountSummary holds account-level figures. It is refreshed wholesale per
// fetch; there are no partial updates.
type AccountSummary struct {
	AccountID          string  `json:"account_id"`
	AccountValue       float64 `json:"account_value"`
	CashBalance        float64 `json:"cash_balance"`
	DailyPnL           float64 `json:"daily_pnl"`
	ExcessLiquidity    float64 `json:"excess_liquidity"`
	InitialMargin      float64 `json:"initial_margin"`
	LeveragePercentage float64 `json:"leverage_percentage"`
}
