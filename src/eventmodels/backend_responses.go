package eventmodels

// Response envelopes for the remaining backend endpoints.

type CreateOrderResponseDTO struct {
	Success bool   `json:"success"`
	OrderID uint64 `json:"order_id"`
	Error   string `json:"error,omitempty"`
}

type PendingOrdersResponseDTO struct {
	Orders []*OptionOrderDTO `json:"orders"`
}

type CheckOrdersResponseDTO struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message,omitempty"`
	UpdatedOrders []*OptionOrderDTO `json:"updated_orders"`
}

type RolloverResponseDTO struct {
	Success     bool   `json:"success"`
	BuyOrderID  uint64 `json:"buy_order_id"`
	SellOrderID uint64 `json:"sell_order_id"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

type ExpirationDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ExpirationsResponseDTO struct {
	Ticker      string          `json:"ticker"`
	Expirations []*ExpirationDTO `json:"expirations"`
}

type UpdateQuantityResponseDTO struct {
	Success  bool   `json:"success"`
	OrderID  uint64 `json:"order_id"`
	Quantity int    `json:"quantity"`
	Error    string `json:"error,omitempty"`
}
