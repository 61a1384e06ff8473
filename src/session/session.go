// Package session owns all per-dashboard mutable state: the ticker working
// sets, the cached account summary and the order tracker. There are no
// package-level globals; the rendering layer holds a DashboardSession and
// every intent goes through it.
package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/wheelhouse-trading/wheelhouse/src/economics"
	"github.com/wheelhouse-trading/wheelhouse/src/eventconsumers"
	"github.com/wheelhouse-trading/wheelhouse/src/eventmodels"
	"github.com/wheelhouse-trading/wheelhouse/src/eventpubsub"
	"github.com/wheelhouse-trading/wheelhouse/src/eventservices"
	"github.com/wheelhouse-trading/wheelhouse/src/utils"
)

type DashboardSession struct {
	ID uuid.UUID

	client  *eventservices.DashboardClient
	tracker *eventconsumers.OrderMonitoringWorker
	cfg     *eventmodels.DashboardConfigYAML

	mu   sync.Mutex
	sets map[string]*eventmodels.TickerWorkingSet
	acct *eventmodels.AccountSummary

	now func() time.Time
}

func NewDashboardSession(client *eventservices.DashboardClient, tracker *eventconsumers.OrderMonitoringWorker, cfg *eventmodels.DashboardConfigYAML) *DashboardSession {
	return &DashboardSession{
		ID:      uuid.New(),
		client:  client,
		tracker: tracker,
		cfg:     cfg,
		sets:    make(map[string]*eventmodels.TickerWorkingSet),
		now:     time.Now,
	}
}

// Bootstrap seeds the session: account summary, working sets for every stock
// position, custom tickers from configuration, and the saved orders already
// known to the backend.
func (s *DashboardSession) Bootstrap(ctx context.Context) error {
	if err := s.RefreshAccount(ctx); err != nil {
		return fmt.Errorf("DashboardSession:Bootstrap(): %w", err)
	}

	positions, err := s.client.FetchPositions(ctx, eventmodels.SecurityTypeStock)
	if err != nil {
		return fmt.Errorf("DashboardSession:Bootstrap(): %w", err)
	}

	s.mu.Lock()
	for _, position := range positions {
		set := s.getOrCreateSetLocked(position.Ticker)
		set.IsPortfolioTicker = true
		set.PositionShares = position.Quantity
		if position.MarketPrice > 0 {
			set.StockPrice = position.MarketPrice
		}
	}

	for _, ticker := range s.cfg.Tickers {
		if _, ok := s.sets[ticker]; !ok {
			set := s.getOrCreateSetLocked(ticker)
			set.IsCustomTicker = true
		}
	}
	s.mu.Unlock()

	orders, err := s.client.FetchPendingOrders(ctx, false)
	if err != nil {
		return fmt.Errorf("DashboardSession:Bootstrap(): %w", err)
	}

	for _, order := range orders {
		s.tracker.Track(order)
	}

	return nil
}

func (s *DashboardSession) getOrCreateSetLocked(ticker string) *eventmodels.TickerWorkingSet {
	if set, ok := s.sets[ticker]; ok {
		return set
	}

	set := &eventmodels.TickerWorkingSet{
		Ticker:         ticker,
		OtmCallPercent: s.cfg.OtmPercent(),
		OtmPutPercent:  s.cfg.OtmPercent(),
	}
	s.sets[ticker] = set

	return set
}

// RefreshAccount replaces the cached account summary wholesale.
func (s *DashboardSession) RefreshAccount(ctx context.Context) error {
	acct, err := s.client.FetchAccountSummary(ctx)
	if err != nil {
		return fmt.Errorf("DashboardSession:RefreshAccount(): %w", err)
	}

	s.mu.Lock()
	s.acct = acct
	s.mu.Unlock()

	return nil
}

// RefreshTicker refetches both chain sides for one ticker. The call side and
// put side are separate backend fetches and can disagree on the stock price;
// the merge picks the first non-zero price and takes the position size from
// the same response, never averaging or silently overwriting.
func (s *DashboardSession) RefreshTicker(ctx context.Context, ticker string) error {
	s.mu.Lock()
	set, ok := s.sets[ticker]
	if !ok {
		s.mu.Unlock()
		return eventmodels.NewValidationError("ticker", fmt.Sprintf("unknown ticker %q", ticker))
	}

	otmCall := set.OtmCallPercent
	otmPut := set.OtmPutPercent
	putsOnly := set.IsCustomTicker
	s.mu.Unlock()

	var callChain *eventmodels.OtmChainDTO
	if !putsOnly {
		chains, err := s.client.FetchOtmChains(ctx, []string{ticker}, otmCall, eventmodels.Call)
		if err != nil {
			return fmt.Errorf("DashboardSession:RefreshTicker(): call side: %w", err)
		}

		callChain = chains[ticker]
	}

	putChains, err := s.client.FetchOtmChains(ctx, []string{ticker}, otmPut, eventmodels.Put)
	if err != nil {
		return fmt.Errorf("DashboardSession:RefreshTicker(): put side: %w", err)
	}
	putChain := putChains[ticker]

	if callChain == nil && putChain == nil {
		return &eventmodels.DataShapeError{Msg: fmt.Sprintf("no option data for %s", ticker)}
	}

	calls, callErrs := convertQuotes(callChain, eventmodels.Call)
	puts, putErrs := convertQuotes(putChain, eventmodels.Put)
	for _, convErr := range append(callErrs, putErrs...) {
		log.Errorf("DashboardSession.RefreshTicker: %s: %v", ticker, convErr)
	}

	// first-non-zero-wins: price and position come from the same response
	price, shares := pickPricePosition(callChain, putChain)
	fromChain := price > 0

	if price == 0 {
		prices, priceErr := s.client.FetchStockPrices(ctx, []string{ticker})
		if priceErr != nil {
			log.Errorf("DashboardSession.RefreshTicker: stock price fallback failed for %s: %v", ticker, priceErr)
		} else {
			price = prices[ticker]
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set.Calls = calls
	set.Puts = puts
	if price > 0 {
		set.StockPrice = price
		if fromChain {
			set.PositionShares = shares
		}
	}
	set.LastRefreshedAt = s.now()

	if set.PutQuantity == 0 && len(set.Puts) > 0 && s.acct != nil {
		rec := economics.RecommendedPutQuantity(set.StockPrice, set.Puts[0].Strike, s.acct.CashBalance, len(s.sets))
		set.PutQuantity = rec.Quantity
		log.Debugf("DashboardSession.RefreshTicker: %s put quantity defaulted to %d (%s)", ticker, rec.Quantity, rec.Rationale)
	}

	eventpubsub.Publish(eventpubsub.TickerRefreshedEvent, ticker)

	return nil
}

// convertQuotes collects one side's quotes from a chain payload. The filter
// on the quote's own right is what keeps a backend that ignores the
// optionType parameter from landing CALL quotes in the put table.
func convertQuotes(chain *eventmodels.OtmChainDTO, right eventmodels.OptionRight) ([]*eventmodels.OptionQuote, []error) {
	if chain == nil {
		return nil, nil
	}

	var quotes []*eventmodels.OptionQuote
	var errs []error

	for _, dto := range append(chain.Calls, chain.Puts...) {
		quote, err := dto.ToModel()
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if quote.Right != right {
			continue
		}

		quotes = append(quotes, quote)
	}

	return quotes, errs
}

func pickPricePosition(chains ...*eventmodels.OtmChainDTO) (float64, int) {
	for _, chain := range chains {
		if chain != nil && chain.StockPrice > 0 {
			return chain.StockPrice, int(chain.Position)
		}
	}

	return 0, 0
}

// AddCustomTicker registers a puts-only ticker that is not part of the live
// portfolio.
func (s *DashboardSession) AddCustomTicker(ticker string) (*eventmodels.TickerWorkingSet, error) {
	if ticker == "" {
		return nil, eventmodels.NewValidationError("ticker", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sets[ticker]; ok {
		return nil, eventmodels.NewValidationError("ticker", fmt.Sprintf("ticker %q already tracked", ticker))
	}

	set := s.getOrCreateSetLocked(ticker)
	set.IsCustomTicker = true

	return set.Copy(), nil
}

// RemoveCustomTicker destroys a custom ticker's working set. Portfolio
// tickers cannot be removed; they reappear on the next refresh anyway.
func (s *DashboardSession) RemoveCustomTicker(ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[ticker]
	if !ok {
		return eventmodels.NewValidationError("ticker", fmt.Sprintf("unknown ticker %q", ticker))
	}

	if !set.IsCustomTicker {
		return eventmodels.NewValidationError("ticker", fmt.Sprintf("%q is a portfolio ticker and cannot be removed", ticker))
	}

	delete(s.sets, ticker)

	return nil
}

// SetOtm updates one side's OTM percentage. Out-of-range values are
// rejected, not clamped.
func (s *DashboardSession) SetOtm(ticker string, side eventmodels.OptionRight, percent int) error {
	if err := side.Validate(); err != nil {
		return eventmodels.NewValidationError("side", err.Error())
	}

	if err := economics.ValidateOtmPercent(percent); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[ticker]
	if !ok {
		return eventmodels.NewValidationError("ticker", fmt.Sprintf("unknown ticker %q", ticker))
	}

	if side == eventmodels.Call {
		set.OtmCallPercent = percent
	} else {
		set.OtmPutPercent = percent
	}

	return nil
}

// SetPutQuantity overrides the recommendation-derived put quantity.
// Quantities whose exercise cost exceeds the cash balance are allowed; the
// UI warns, it does not floor.
func (s *DashboardSession) SetPutQuantity(ticker string, quantity int) error {
	if quantity < 0 {
		return eventmodels.NewValidationError("quantity", "must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[ticker]
	if !ok {
		return eventmodels.NewValidationError("ticker", fmt.Sprintf("unknown ticker %q", ticker))
	}

	set.PutQuantity = quantity

	return nil
}

// Sell creates a sell-to-open order draft for the chosen contract, saves it
// to the backend and registers the resulting pending order with the tracker.
func (s *DashboardSession) Sell(ctx context.Context, ticker string, side eventmodels.OptionRight, strike float64, expiration time.Time) (*eventmodels.OptionOrder, error) {
	if err := side.Validate(); err != nil {
		return nil, eventmodels.NewValidationError("side", err.Error())
	}

	s.mu.Lock()
	set, ok := s.sets[ticker]
	if !ok {
		s.mu.Unlock()
		return nil, eventmodels.NewValidationError("ticker", fmt.Sprintf("unknown ticker %q", ticker))
	}

	quote := findQuote(set, side, strike, expiration)
	if quote == nil {
		s.mu.Unlock()
		return nil, eventmodels.NewValidationError("contract", fmt.Sprintf("no quote for %s %s %.2f %s", ticker, side, strike, expiration.Format("2006-01-02")))
	}

	var quantity int
	if side == eventmodels.Call {
		quantity = set.EligibleContracts()
		if quantity == 0 {
			s.mu.Unlock()
			return nil, eventmodels.NewValidationError("position", "covered calls require at least 100 shares per contract")
		}
	} else {
		quantity = set.PutQuantity
		if quantity <= 0 {
			var cash float64
			if s.acct != nil {
				cash = s.acct.CashBalance
			}

			quantity = economics.RecommendedPutQuantity(set.StockPrice, strike, cash, len(s.sets)).Quantity
		}
	}
	s.mu.Unlock()

	bid := deref(quote.Bid)
	ask := deref(quote.Ask)
	last := deref(quote.Last)
	premium := deref(quote.SellPremium())
	limit := economics.SelectLimitPrice(bid, ask, last, premium, strike)

	draft := &eventmodels.OrderDraft{
		Ticker:     ticker,
		OptionType: side.BackendToken(),
		Strike:     strike,
		Expiration: expiration.Format("20060102"),
		Action:     string(eventmodels.OrderActionSell),
		Quantity:   quantity,
		Premium:    premium,
		Bid:        bid,
		Ask:        ask,
		Last:       last,
		OrderType:  string(eventmodels.OrderStyleLimit),
		LimitPrice: &limit,
	}

	orderID, err := s.client.CreateOrder(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("DashboardSession:Sell(): %w", err)
	}

	order := &eventmodels.OptionOrder{
		ID:         orderID,
		Ticker:     ticker,
		Right:      side,
		Strike:     strike,
		Expiration: expiration,
		Action:     eventmodels.OrderActionSell,
		Quantity:   quantity,
		Premium:    premium,
		LimitPrice: &limit,
		Style:      eventmodels.OrderStyleLimit,
		Status:     eventmodels.OrderStatusPending,
		CreatedAt:  s.now(),
	}

	// snapshot before Track: once tracked, the reconciliation poll may
	// mutate the order concurrently
	snapshot := order.Copy()
	s.tracker.Track(order)

	return snapshot, nil
}

func findQuote(set *eventmodels.TickerWorkingSet, side eventmodels.OptionRight, strike float64, expiration time.Time) *eventmodels.OptionQuote {
	quotes := set.Calls
	if side == eventmodels.Put {
		quotes = set.Puts
	}

	for _, quote := range quotes {
		if quote.Strike == strike && quote.Expiration.Equal(expiration) {
			return quote
		}
	}

	return nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}

// ExecuteOrder forwards a user execute intent to the tracker; failures are
// surfaced to the caller.
func (s *DashboardSession) ExecuteOrder(ctx context.Context, orderID uint64) (*eventmodels.ExecutionAck, error) {
	return s.tracker.SubmitExecute(ctx, orderID)
}

// CancelOrder forwards a user cancel intent to the tracker; failures are
// surfaced to the caller.
func (s *DashboardSession) CancelOrder(ctx context.Context, orderID uint64) (*eventmodels.CancelAck, error) {
	return s.tracker.SubmitCancel(ctx, orderID)
}

// SetOrderQuantity changes the quantity of a still-pending order on the
// backend and mirrors the change locally.
func (s *DashboardSession) SetOrderQuantity(ctx context.Context, orderID uint64, quantity int) (*eventmodels.OptionOrder, error) {
	order := s.tracker.GetOrder(orderID)
	if order == nil {
		return nil, eventmodels.NewValidationError("id", fmt.Sprintf("unknown order %d", orderID))
	}

	if order.Status != eventmodels.OrderStatusPending {
		return nil, eventmodels.NewValidationError("status", fmt.Sprintf("cannot change quantity of order with status %q", order.Status))
	}

	if err := s.client.UpdateOrderQuantity(ctx, orderID, quantity); err != nil {
		return nil, fmt.Errorf("DashboardSession:SetOrderQuantity(): %w", err)
	}

	return s.tracker.SetQuantity(orderID, quantity)
}

// Rollover submits a buy-to-close / sell-to-open pair and re-reads pending
// orders so the two new drafts appear in the tracker.
func (s *DashboardSession) Rollover(ctx context.Context, draft *eventmodels.RolloverDraft) (*eventmodels.RolloverResponseDTO, error) {
	response, err := s.client.SubmitRollover(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("DashboardSession:Rollover(): %w", err)
	}

	orders, err := s.client.FetchPendingOrders(ctx, false)
	if err != nil {
		log.Errorf("DashboardSession.Rollover: failed to reload pending orders: %v", err)
		return response, nil
	}

	for _, order := range orders {
		if s.tracker.GetOrder(order.ID) == nil {
			s.tracker.Track(order)
		}
	}

	return response, nil
}

// RolloverTargets lists the three expirations closest to one week after the
// current one.
func (s *DashboardSession) RolloverTargets(ctx context.Context, ticker string, currentExpiration time.Time) ([]time.Time, error) {
	available, err := s.client.FetchExpirations(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("DashboardSession:RolloverTargets(): %w", err)
	}

	return economics.RolloverCandidates(currentExpiration, available, 7), nil
}

// DefaultExpiration is the next weekly expiration the dashboard trades
// against.
func (s *DashboardSession) DefaultExpiration() time.Time {
	return utils.GetClosestFriday(s.now())
}

// WorkingSet returns a snapshot of one ticker's working set, or nil. Live
// sets stay behind the mutex; refreshes would otherwise race with callers
// still reading the returned value.
func (s *DashboardSession) WorkingSet(ticker string) *eventmodels.TickerWorkingSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[ticker]
	if !ok {
		return nil
	}

	return set.Copy()
}

// WorkingSets returns snapshots of all working sets sorted by ticker.
func (s *DashboardSession) WorkingSets() []*eventmodels.TickerWorkingSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	sets := make([]*eventmodels.TickerWorkingSet, 0, len(s.sets))
	for _, set := range s.sortedSetsLocked() {
		sets = append(sets, set.Copy())
	}

	return sets
}

func (s *DashboardSession) sortedSetsLocked() []*eventmodels.TickerWorkingSet {
	sets := make([]*eventmodels.TickerWorkingSet, 0, len(s.sets))
	for _, set := range s.sets {
		sets = append(sets, set)
	}

	sort.Slice(sets, func(i, j int) bool { return sets[i].Ticker < sets[j].Ticker })

	return sets
}

// Account returns the cached account summary, possibly nil before the first
// successful refresh.
func (s *DashboardSession) Account() *eventmodels.AccountSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.acct
}

// Earnings aggregates the weekly premium summary over the current working
// sets.
func (s *DashboardSession) Earnings() eventmodels.EarningsSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return economics.BuildEarningsSummary(s.sortedSetsLocked(), s.acct)
}

// Orders exposes the tracker's order list.
func (s *DashboardSession) Orders() []*eventmodels.OptionOrder {
	return s.tracker.Orders()
}
