package eventmodels

import log "github.com/sirupsen/logrus"

type OptionOrderDataStore map[uint64]*OptionOrder

// Merge applies a reconciled order on top of the stored one, field by field:
// broker-reported fields overwrite, fields absent from the payload (nil
// pointers) are left untouched. This is the documented merge contract: a
// reconciliation payload that omits ib_order_id must not null out a
// previously known broker order ID. Status is overwritten only while the
// stored order is non-terminal; executed/canceled/rejected never transition
// out.
func (o OptionOrderDataStore) Merge(order *OptionOrder) []*OptionOrderUpdateEvent {
	var updates []*OptionOrderUpdateEvent

	stored, ok := o[order.ID]
	if !ok {
		return nil
	}

	if !stored.Status.IsTerminal() && order.Status != "" && stored.Status != order.Status {
		updates = append(updates, &OptionOrderUpdateEvent{
			OrderID: order.ID,
			Field:   "status",
			Old:     stored.Status,
			New:     order.Status,
		})

		stored.Status = order.Status
	}

	if order.BrokerOrderID != nil && (stored.BrokerOrderID == nil || *stored.BrokerOrderID != *order.BrokerOrderID) {
		updates = append(updates, &OptionOrderUpdateEvent{
			OrderID: order.ID,
			Field:   "broker_order_id",
			Old:     stored.BrokerOrderID,
			New:     order.BrokerOrderID,
		})

		stored.BrokerOrderID = order.BrokerOrderID
	}

	if order.BrokerStatus != nil && (stored.BrokerStatus == nil || *stored.BrokerStatus != *order.BrokerStatus) {
		updates = append(updates, &OptionOrderUpdateEvent{
			OrderID: order.ID,
			Field:   "broker_status",
			Old:     stored.BrokerStatus,
			New:     order.BrokerStatus,
		})

		stored.BrokerStatus = order.BrokerStatus
	}

	if order.AvgFillPrice != nil && (stored.AvgFillPrice == nil || *stored.AvgFillPrice != *order.AvgFillPrice) {
		updates = append(updates, &OptionOrderUpdateEvent{
			OrderID: order.ID,
			Field:   "avg_fill_price",
			Old:     stored.AvgFillPrice,
			New:     order.AvgFillPrice,
		})

		stored.AvgFillPrice = order.AvgFillPrice
	}

	if order.Commission != nil && (stored.Commission == nil || *stored.Commission != *order.Commission) {
		updates = append(updates, &OptionOrderUpdateEvent{
			OrderID: order.ID,
			Field:   "commission",
			Old:     stored.Commission,
			New:     order.Commission,
		})

		stored.Commission = order.Commission
	}

	return updates
}

func (o OptionOrderDataStore) Add(order *OptionOrder) {
	o[order.ID] = order
	log.Debugf("OptionOrderDataStore.Add: added order with ID: %d", order.ID)
}

// HasNonTerminal reports whether any stored order is still processing or
// canceling, i.e. whether the reconciliation timer has work to do.
func (o OptionOrderDataStore) HasNonTerminal() bool {
	for _, order := range o {
		if order.Status == OrderStatusProcessing || order.Status == OrderStatusCanceling {
			return true
		}
	}

	return false
}

func NewOptionOrderDataStore() OptionOrderDataStore {
	return make(map[uint64]*OptionOrder)
}
