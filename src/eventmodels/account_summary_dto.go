package eventmodels

type AccountSummaryDTO struct {
	AccountID          string  `json:"account_id"`
	AccountValue       float64 `json:"account_value"`
	CashBalance        float64 `json:"cash_balance"`
	DailyPnL           float64 `json:"daily_pnl"`
	ExcessLiquidity    float64 `json:"excess_liquidity"`
	InitialMargin      float64 `json:"initial_margin"`
	LeveragePercentage float64 `json:"leverage_percentage"`
}

func (dto *AccountSummaryDTO) ToModel() *AccountSummary {
	return &AccountSummary{
		AccountID:          dto.AccountID,
		AccountValue:       dto.AccountValue,
		CashBalance:        dto.CashBalance,
		DailyPnL:           dto.DailyPnL,
		ExcessLiquidity:    dto.ExcessLiquidity,
		InitialMargin:      dto.InitialMargin,
		LeveragePercentage: dto.LeveragePercentage,
	}
}
