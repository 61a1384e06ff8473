package eventmodels

import "strconv"

// OptionOrderCsvDTO flattens an order for CSV export. Optional broker fields
// render as empty cells rather than zeroes.
type OptionOrderCsvDTO struct {
	ID            uint64  `csv:"id"`
	Ticker        string  `csv:"ticker"`
	OptionType    string  `csv:"option_type"`
	Strike        float64 `csv:"strike"`
	Expiration    string  `csv:"expiration"`
	Action        string  `csv:"action"`
	Quantity      int     `csv:"quantity"`
	Premium       float64 `csv:"premium"`
	Status        string  `csv:"status"`
	BrokerOrderID string  `csv:"broker_order_id"`
	BrokerStatus  string  `csv:"broker_status"`
	AvgFillPrice  string  `csv:"avg_fill_price"`
	Commission    string  `csv:"commission"`
	IsRollover    bool    `csv:"is_rollover"`
	CreatedAt     string  `csv:"created_at"`
}

func NewOptionOrderCsvDTO(order *OptionOrder) *OptionOrderCsvDTO {
	dto := &OptionOrderCsvDTO{
		ID:         order.ID,
		Ticker:     order.Ticker,
		OptionType: order.Right.BackendToken(),
		Strike:     order.Strike,
		Expiration: order.Expiration.Format("2006-01-02"),
		Action:     string(order.Action),
		Quantity:   order.Quantity,
		Premium:    order.Premium,
		Status:     string(order.Status),
		IsRollover: order.IsRollover,
		CreatedAt:  order.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if order.BrokerOrderID != nil {
		dto.BrokerOrderID = strconv.FormatInt(*order.BrokerOrderID, 10)
	}

	if order.BrokerStatus != nil {
		dto.BrokerStatus = *order.BrokerStatus
	}

	if order.AvgFillPrice != nil {
		dto.AvgFillPrice = strconv.FormatFloat(*order.AvgFillPrice, 'f', 2, 64)
	}

	if order.Commission != nil {
		dto.Commission = strconv.FormatFloat(*order.Commission, 'f', 2, 64)
	}

	return dto
}
