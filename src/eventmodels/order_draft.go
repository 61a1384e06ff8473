package eventmodels

import "fmt"

// OrderDraft is the create-order request body for POST /api/options/order.
// Bid/ask/last travel with the draft so the backend can pick a limit price
// even when its own quote fetch comes back empty.
type OrderDraft struct {
	Ticker     string   `json:"ticker"`
	OptionType string   `json:"option_type"`
	Strike     float64  `json:"strike"`
	Expiration string   `json:"expiration"`
	Action     string   `json:"action"`
	Quantity   int      `json:"quantity"`
	Premium    float64  `json:"premium"`
	Bid        float64  `json:"bid"`
	Ask        float64  `json:"ask"`
	Last       float64  `json:"last"`
	OrderType  string   `json:"order_type"`
	LimitPrice *float64 `json:"limit_price"`
	IsRollover bool     `json:"isRollover"`
}

func (d *OrderDraft) Validate() error {
	if d.Ticker == "" {
		return NewValidationError("ticker", "must not be empty")
	}

	if _, err := NewOptionRightFromBackend(d.OptionType); err != nil {
		return NewValidationError("option_type", fmt.Sprintf("must be CALL or PUT, got %q", d.OptionType))
	}

	if d.Strike <= 0 {
		return NewValidationError("strike", "must be positive")
	}

	if d.Expiration == "" {
		return NewValidationError("expiration", "must not be empty")
	}

	if err := OrderAction(d.Action).Validate(); err != nil {
		return NewValidationError("action", fmt.Sprintf("must be BUY or SELL, got %q", d.Action))
	}

	if d.Quantity <= 0 {
		return NewValidationError("quantity", "must be positive")
	}

	return nil
}
