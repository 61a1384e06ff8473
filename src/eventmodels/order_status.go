package eventmodels

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusExecuted   OrderStatus = "executed"
	OrderStatusCanceling  OrderStatus = "canceling"
	OrderStatusCanceled   OrderStatus = "canceled"
	OrderStatusRejected   OrderStatus = "rejected"
)

func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusExecuted, OrderStatusCanceled, OrderStatusRejected:
		return true
	}

	return false
}

// CanTransitionTo encodes the order lifecycle: pending -> processing ->
// {executed | canceling -> canceled}, pending -> canceled, and any
// non-terminal status -> rejected. Terminal statuses never transition out.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}

	if next == OrderStatusRejected {
		return true
	}

	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCanceled
	case OrderStatusProcessing:
		return next == OrderStatusExecuted || next == OrderStatusCanceling || next == OrderStatusCanceled
	case OrderStatusCanceling:
		return next == OrderStatusCanceled
	}

	return false
}
