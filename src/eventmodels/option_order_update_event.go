package eventmodels

// OptionOrderUpdateEvent records a single field change applied by the order
// tracker during reconciliation, in old/new form so subscribers can render a
// diff without re-reading the order.
type OptionOrderUpdateEvent struct {
	OrderID uint64
	Field   string
	Old     interface{}
	New     interface{}
}
