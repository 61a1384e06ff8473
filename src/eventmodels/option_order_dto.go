package eventmodels

import (
	"fmt"
	"time"
)

// OptionOrderDTO mirrors one order object as returned by the backend's
// pending-orders and check-orders endpoints. Broker fields are pointers so
// that a reconciliation payload which omits them can be told apart from one
// that reports them.
type OptionOrderDTO struct {
	ID           uint64   `json:"id"`
	Ticker       string   `json:"ticker"`
	OptionType   string   `json:"option_type"`
	Strike       float64  `json:"strike"`
	Expiration   string   `json:"expiration"`
	Action       string   `json:"action"`
	Quantity     float64  `json:"quantity"`
	Premium      float64  `json:"premium"`
	LimitPrice   *float64 `json:"limit_price"`
	OrderType    string   `json:"order_type"`
	Status       string   `json:"status"`
	IBOrderID    *int64   `json:"ib_order_id"`
	IBStatus     *string  `json:"ib_status"`
	AvgFillPrice *float64 `json:"avg_fill_price"`
	Commission   *float64 `json:"commission"`
	IsRollover   bool     `json:"isRollover"`
	CreatedAt    string   `json:"created_at"`
}

func (dto *OptionOrderDTO) ToModel() (*OptionOrder, error) {
	right, err := NewOptionRightFromBackend(dto.OptionType)
	if err != nil {
		return nil, fmt.Errorf("OptionOrderDTO:ToModel(): %w", err)
	}

	expiration, err := parseExpiration(dto.Expiration)
	if err != nil {
		return nil, fmt.Errorf("OptionOrderDTO:ToModel(): %w", err)
	}

	var createdAt time.Time
	if dto.CreatedAt != "" {
		createdAt, err = time.Parse(time.RFC3339, dto.CreatedAt)
		if err != nil {
			createdAt, err = time.Parse("2006-01-02 15:04:05", dto.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("OptionOrderDTO:ToModel(): failed to parse created_at: %w", err)
			}
		}
	}

	style := OrderStyle(dto.OrderType)
	if style == "" {
		style = OrderStyleLimit
	}

	return &OptionOrder{
		ID:            dto.ID,
		Ticker:        dto.Ticker,
		Right:         right,
		Strike:        dto.Strike,
		Expiration:    expiration,
		Action:        OrderAction(dto.Action),
		Quantity:      int(dto.Quantity),
		Premium:       dto.Premium,
		LimitPrice:    dto.LimitPrice,
		Style:         style,
		Status:        OrderStatus(dto.Status),
		BrokerOrderID: dto.IBOrderID,
		BrokerStatus:  dto.IBStatus,
		AvgFillPrice:  dto.AvgFillPrice,
		Commission:    dto.Commission,
		IsRollover:    dto.IsRollover,
		CreatedAt:     createdAt,
	}, nil
}
