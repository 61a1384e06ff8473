package eventmodels

// RolloverDraft is the request body for POST /api/options/rollover. The
// backend turns it into a buy-to-close order at the current strike and a
// sell-to-open order at the new strike/expiration.
type RolloverDraft struct {
	Ticker            string   `json:"ticker"`
	CurrentOptionType string   `json:"current_option_type"`
	CurrentStrike     float64  `json:"current_strike"`
	CurrentExpiration string   `json:"current_expiration"`
	NewStrike         float64  `json:"new_strike"`
	NewExpiration     string   `json:"new_expiration"`
	Quantity          int      `json:"quantity"`
	CurrentOrderType  string   `json:"current_order_type"`
	CurrentLimitPrice *float64 `json:"current_limit_price"`
	CurrentBid        float64  `json:"current_bid"`
	CurrentAsk        float64  `json:"current_ask"`
	NewOrderType      string   `json:"new_order_type"`
	NewLimitPrice     float64  `json:"new_limit_price"`
	NewBid            float64  `json:"new_bid"`
	NewAsk            float64  `json:"new_ask"`
}

func (d *RolloverDraft) Validate() error {
	if d.Ticker == "" {
		return NewValidationError("ticker", "must not be empty")
	}

	if _, err := NewOptionRightFromBackend(d.CurrentOptionType); err != nil {
		return NewValidationError("current_option_type", "must be CALL or PUT")
	}

	if d.CurrentStrike <= 0 || d.NewStrike <= 0 {
		return NewValidationError("strike", "must be positive")
	}

	if d.CurrentExpiration == "" || d.NewExpiration == "" {
		return NewValidationError("expiration", "must not be empty")
	}

	if d.Quantity <= 0 {
		return NewValidationError("quantity", "must be positive")
	}

	return nil
}
