package eventmodels

// ExecutionDetailsDTO carries broker-side execution state as returned by the
// execute, cancel and check-orders endpoints.
type ExecutionDetailsDTO struct {
	IBOrderID    *int64   `json:"ib_order_id"`
	IBStatus     *string  `json:"ib_status"`
	Filled       float64  `json:"filled"`
	Remaining    float64  `json:"remaining"`
	AvgFillPrice *float64 `json:"avg_fill_price"`
	Commission   *float64 `json:"commission"`
	LimitPrice   *float64 `json:"limit_price"`
}

// ExecutionAck is the response to POST /api/options/execute/{id}.
type ExecutionAck struct {
	Success          bool                 `json:"success"`
	OrderID          uint64               `json:"order_id"`
	IBOrderID        *int64               `json:"ib_order_id"`
	IBStatus         *string              `json:"ib_status"`
	ExecutionDetails *ExecutionDetailsDTO `json:"execution_details"`
	Error            string               `json:"error,omitempty"`
}

// CancelAck is the response to POST /api/options/cancel/{id}.
type CancelAck struct {
	Success  bool    `json:"success"`
	OrderID  uint64  `json:"order_id"`
	IBStatus *string `json:"ib_status"`
	Message  string  `json:"message,omitempty"`
	Error    string  `json:"error,omitempty"`
}
