package eventmodels

import (
	"fmt"
	"time"
)

// OptionOrder is a locally tracked order. It is created by a user order
// intent, mutated by the order tracker as broker statuses arrive, and never
// deleted: it only ever transitions into a terminal status.
type OptionOrder struct {
	ID            uint64      `json:"id"`
	Ticker        string      `json:"ticker"`
	Right         OptionRight `json:"option_type"`
	Strike        float64     `json:"strike"`
	Expiration    time.Time   `json:"expiration"`
	Action        OrderAction `json:"action"`
	Quantity      int         `json:"quantity"`
	Premium       float64     `json:"premium"`
	LimitPrice    *float64    `json:"limit_price"`
	Style         OrderStyle  `json:"order_style"`
	Status        OrderStatus `json:"status"`
	BrokerOrderID *int64      `json:"broker_order_id"`
	BrokerStatus  *string     `json:"broker_status"`
	AvgFillPrice  *float64    `json:"avg_fill_price"`
	Commission    *float64    `json:"commission"`
	IsRollover    bool        `json:"is_rollover"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Copy returns a detached copy of the order. The order tracker mutates
// orders in place as broker statuses arrive, so read accessors hand out
// copies instead of the live pointers.
func (o *OptionOrder) Copy() *OptionOrder {
	copied := *o
	copied.LimitPrice = copyFloat64Ptr(o.LimitPrice)
	copied.BrokerOrderID = copyInt64Ptr(o.BrokerOrderID)
	copied.BrokerStatus = copyStringPtr(o.BrokerStatus)
	copied.AvgFillPrice = copyFloat64Ptr(o.AvgFillPrice)
	copied.Commission = copyFloat64Ptr(o.Commission)

	return &copied
}

func copyFloat64Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}

	copied := *v
	return &copied
}

func copyInt64Ptr(v *int64) *int64 {
	if v == nil {
		return nil
	}

	copied := *v
	return &copied
}

func copyStringPtr(v *string) *string {
	if v == nil {
		return nil
	}

	copied := *v
	return &copied
}

func (o OptionOrder) String() string {
	brokerID := "-"
	if o.BrokerOrderID != nil {
		brokerID = fmt.Sprintf("%d", *o.BrokerOrderID)
	}

	return fmt.Sprintf("ID (%d), %s %s %s %.2f x%d, Status: %s, BrokerID: %s, CreatedAt: %v",
		o.ID, o.Action, o.Ticker, o.Right, o.Strike, o.Quantity, o.Status, brokerID, o.CreatedAt.Format("2006-01-02 15:04:05"))
}
