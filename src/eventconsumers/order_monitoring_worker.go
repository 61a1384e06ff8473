package eventconsumers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wheelhouse-trading/wheelhouse/src/eventmodels"
	"github.com/wheelhouse-trading/wheelhouse/src/eventpubsub"
)

// OrdersBackend is the slice of the backend client the worker needs. It is
// an interface so tests can drive the state machine without HTTP.
type OrdersBackend interface {
	ExecuteOrder(ctx context.Context, orderID uint64) (*eventmodels.ExecutionAck, error)
	CancelOrder(ctx context.Context, orderID uint64) (*eventmodels.CancelAck, error)
	CheckOrders(ctx context.Context) ([]*eventmodels.OptionOrder, error)
}

// OrderMonitoringWorker tracks locally created orders and reconciles them
// against broker-reported state. User intents (execute, cancel) transition
// orders optimistically and surface failures to the caller; the periodic
// reconciliation poll runs only while at least one order is processing or
// canceling, and its failures are logged, never surfaced; losing one poll
// interval of freshness is acceptable.
type OrderMonitoringWorker struct {
	wg       *sync.WaitGroup
	backend  OrdersBackend
	interval time.Duration

	mu          sync.Mutex
	ctx         context.Context
	orders      eventmodels.OptionOrderDataStore
	stopPolling chan struct{}

	// single-flight gate: a tick arriving while a poll is outstanding is
	// dropped, not queued, so polls never stack against the broker session
	pollInFlight atomic.Bool
}

func NewOrderMonitoringWorker(wg *sync.WaitGroup, backend OrdersBackend, interval time.Duration) *OrderMonitoringWorker {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return &OrderMonitoringWorker{
		wg:       wg,
		backend:  backend,
		interval: interval,
		orders:   eventmodels.NewOptionOrderDataStore(),
	}
}

// Start binds the worker to its lifecycle context. The poll timer itself is
// started and stopped on demand as tracked orders enter and leave the
// processing/canceling states.
func (w *OrderMonitoringWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.ctx = ctx
	w.evaluateTimerLocked()
}

// Track registers an order with the worker. Orders are never removed; they
// only reach a terminal status.
func (w *OrderMonitoringWorker) Track(order *eventmodels.OptionOrder) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.orders.Add(order)
	eventpubsub.Publish(eventpubsub.OrderCreatedEvent, &eventmodels.OptionOrderCreateEvent{Order: order.Copy()})
	w.evaluateTimerLocked()
}

// GetOrder returns a copy of the tracked order with the given ID, or nil.
// The reconciliation poll mutates tracked orders in place, so the live
// pointers never leave the lock.
func (w *OrderMonitoringWorker) GetOrder(orderID uint64) *eventmodels.OptionOrder {
	w.mu.Lock()
	defer w.mu.Unlock()

	order, ok := w.orders[orderID]
	if !ok {
		return nil
	}

	return order.Copy()
}

// Orders returns copies of the tracked orders sorted by ID.
func (w *OrderMonitoringWorker) Orders() []*eventmodels.OptionOrder {
	w.mu.Lock()
	defer w.mu.Unlock()

	orders := make([]*eventmodels.OptionOrder, 0, len(w.orders))
	for _, order := range w.orders {
		orders = append(orders, order.Copy())
	}

	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })

	return orders
}

// SetQuantity resizes a tracked order. Only pending orders may be resized;
// anything already sent to the brokerage is immutable locally.
func (w *OrderMonitoringWorker) SetQuantity(orderID uint64, quantity int) (*eventmodels.OptionOrder, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	order, ok := w.orders[orderID]
	if !ok {
		return nil, eventmodels.NewValidationError("id", fmt.Sprintf("unknown order %d", orderID))
	}

	if order.Status != eventmodels.OrderStatusPending {
		return nil, eventmodels.NewValidationError("status", fmt.Sprintf("cannot change quantity of order with status %q", order.Status))
	}

	order.Quantity = quantity

	return order.Copy(), nil
}

// SubmitExecute sends a pending order to the brokerage. On success the local
// order optimistically transitions to processing and stores the broker
// fields from the acknowledgment. On failure the status is left unchanged
// and the error is returned with no retry; the user must re-invoke.
func (w *OrderMonitoringWorker) SubmitExecute(ctx context.Context, orderID uint64) (*eventmodels.ExecutionAck, error) {
	w.mu.Lock()
	order, ok := w.orders[orderID]
	if !ok {
		w.mu.Unlock()
		return nil, fmt.Errorf("OrderMonitoringWorker:SubmitExecute(): order %d not found", orderID)
	}

	if !order.Status.CanTransitionTo(eventmodels.OrderStatusProcessing) {
		w.mu.Unlock()
		return nil, eventmodels.NewValidationError("status", fmt.Sprintf("cannot execute order with status %q", order.Status))
	}
	w.mu.Unlock()

	ack, err := w.backend.ExecuteOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("OrderMonitoringWorker:SubmitExecute(): %w", err)
	}

	if !ack.Success {
		return ack, fmt.Errorf("OrderMonitoringWorker:SubmitExecute(): backend rejected execution: %s", ack.Error)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.applyAckLocked(order, eventmodels.OrderStatusProcessing, ack.IBOrderID, ack.IBStatus, ack.ExecutionDetails)
	w.evaluateTimerLocked()

	return ack, nil
}

// SubmitCancel cancels a pending or processing order. A pending order (never
// sent to the brokerage) cancels immediately; a processing order transitions
// to canceling unless the broker acknowledges immediate cancellation.
func (w *OrderMonitoringWorker) SubmitCancel(ctx context.Context, orderID uint64) (*eventmodels.CancelAck, error) {
	w.mu.Lock()
	order, ok := w.orders[orderID]
	if !ok {
		w.mu.Unlock()
		return nil, fmt.Errorf("OrderMonitoringWorker:SubmitCancel(): order %d not found", orderID)
	}

	if order.Status != eventmodels.OrderStatusPending && order.Status != eventmodels.OrderStatusProcessing {
		w.mu.Unlock()
		return nil, eventmodels.NewValidationError("status", fmt.Sprintf("cannot cancel order with status %q", order.Status))
	}

	wasPending := order.Status == eventmodels.OrderStatusPending
	w.mu.Unlock()

	ack, err := w.backend.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("OrderMonitoringWorker:SubmitCancel(): %w", err)
	}

	if !ack.Success {
		return ack, fmt.Errorf("OrderMonitoringWorker:SubmitCancel(): backend rejected cancellation: %s", ack.Error)
	}

	next := eventmodels.OrderStatusCanceling
	if wasPending || brokerConfirmsCancel(ack.IBStatus) {
		next = eventmodels.OrderStatusCanceled
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.applyAckLocked(order, next, nil, ack.IBStatus, nil)
	w.evaluateTimerLocked()

	return ack, nil
}

func brokerConfirmsCancel(ibStatus *string) bool {
	if ibStatus == nil {
		return false
	}

	switch *ibStatus {
	case "Cancelled", "ApiCancelled":
		return true
	}

	return false
}

func (w *OrderMonitoringWorker) applyAckLocked(order *eventmodels.OptionOrder, next eventmodels.OrderStatus, ibOrderID *int64, ibStatus *string, details *eventmodels.ExecutionDetailsDTO) {
	update := &eventmodels.OptionOrder{
		ID:            order.ID,
		Status:        next,
		BrokerOrderID: ibOrderID,
		BrokerStatus:  ibStatus,
	}

	if details != nil {
		if update.BrokerOrderID == nil {
			update.BrokerOrderID = details.IBOrderID
		}
		if update.BrokerStatus == nil {
			update.BrokerStatus = details.IBStatus
		}
		update.AvgFillPrice = details.AvgFillPrice
		update.Commission = details.Commission
	}

	for _, event := range w.orders.Merge(update) {
		eventpubsub.Publish(eventpubsub.OrderUpdatedEvent, event)
	}
}

// IsPolling reports whether the reconciliation timer is currently running.
func (w *OrderMonitoringWorker) IsPolling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.stopPolling != nil
}

// evaluateTimerLocked starts or stops the reconciliation timer to match the
// tracked order set. It runs after every poll result and every optimistic
// transition, so the timer self-terminates promptly once the last
// non-terminal order settles.
func (w *OrderMonitoringWorker) evaluateTimerLocked() {
	active := w.orders.HasNonTerminal()

	if active && w.stopPolling == nil && w.ctx != nil {
		stop := make(chan struct{})
		w.stopPolling = stop
		eventpubsub.Publish(eventpubsub.PollingStartedEvent, struct{}{})
		w.wg.Add(1)

		go w.runTimer(w.ctx, stop)

		log.Debug("OrderMonitoringWorker: reconciliation timer started")
		return
	}

	if !active && w.stopPolling != nil {
		close(w.stopPolling)
		w.stopPolling = nil
		eventpubsub.Publish(eventpubsub.PollingStoppedEvent, struct{}{})
		log.Debug("OrderMonitoringWorker: reconciliation timer stopped")
	}
}

func (w *OrderMonitoringWorker) runTimer(ctx context.Context, stop chan struct{}) {
	defer w.wg.Done()

	timer := time.NewTicker(w.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("stopping OrderMonitoringWorker timer")
			return
		case <-stop:
			return
		case <-timer.C:
			if !w.pollInFlight.CompareAndSwap(false, true) {
				log.Debug("OrderMonitoringWorker: previous poll still in flight, dropping tick")
				continue
			}

			go func() {
				defer w.pollInFlight.Store(false)

				w.poll(ctx)

				w.mu.Lock()
				w.evaluateTimerLocked()
				w.mu.Unlock()
			}()
		}
	}
}

// poll reconciles tracked orders against the backend. Failures are logged
// and swallowed: polling is a background convenience and the next tick will
// try again.
func (w *OrderMonitoringWorker) poll(ctx context.Context) {
	updated, err := w.backend.CheckOrders(ctx)
	if err != nil {
		log.Errorf("OrderMonitoringWorker.poll: failed to check orders: %v", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, order := range updated {
		for _, event := range w.orders.Merge(order) {
			eventpubsub.Publish(eventpubsub.OrderUpdatedEvent, event)
		}
	}
}
