package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wheelhouse-trading/wheelhouse/src/eventconsumers"
	"github.com/wheelhouse-trading/wheelhouse/src/eventmodels"
	"github.com/wheelhouse-trading/wheelhouse/src/eventpubsub"
	"github.com/wheelhouse-trading/wheelhouse/src/eventservices"
)

// fakeBackend is a minimal HTTP stand-in for the dashboard's REST backend.
type fakeBackend struct {
	mu            sync.Mutex
	nextOrderID   uint64
	createdDrafts []*eventmodels.OrderDraft
	callChain     string
	putChain      string
}

func (b *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/portfolio":
			w.Write([]byte(`{"account_id":"U1","account_value":100000,"cash_balance":25000}`))
		case "/api/portfolio/positions":
			w.Write([]byte(`[{"symbol":"SOFI","security_type":"STK","position":250,"avg_cost":18.2,"market_price":20.5}]`))
		case "/api/options/otm":
			b.mu.Lock()
			chain := b.putChain
			if r.URL.Query().Get("optionType") == "CALL" {
				chain = b.callChain
			}
			b.mu.Unlock()
			w.Write([]byte(chain))
		case "/api/options/stock-price":
			w.Write([]byte(`{"data":{"SOFI":20.5,"NVDA":120.0}}`))
		case "/api/options/pending-orders":
			w.Write([]byte(`{"orders":[{"id":7,"ticker":"SOFI","option_type":"CALL","strike":22,"expiration":"20240628","action":"SELL","quantity":2,"premium":0.45,"status":"pending"}]}`))
		case "/api/options/order":
			body := &eventmodels.OrderDraft{}
			json.NewDecoder(r.Body).Decode(body)

			b.mu.Lock()
			b.nextOrderID++
			id := b.nextOrderID
			b.createdDrafts = append(b.createdDrafts, body)
			b.mu.Unlock()

			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "order_id": id})
		default:
			http.NotFound(w, r)
		}
	})
}

func newTestSession(t *testing.T, backend *fakeBackend) (*DashboardSession, *httptest.Server) {
	t.Helper()
	eventpubsub.Init()

	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	client := eventservices.NewDashboardClient(server.URL, time.Second)

	wg := &sync.WaitGroup{}
	tracker := eventconsumers.NewOrderMonitoringWorker(wg, client, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})
	tracker.Start(ctx)

	cfg := &eventmodels.DashboardConfigYAML{
		BackendURL: server.URL,
		Tickers:    []string{"NVDA"},
	}

	return NewDashboardSession(client, tracker, cfg), server
}

func sofiChain(stockPrice float64) string {
	return `{"data":{"SOFI":{"symbol":"SOFI","stock_price":` + jsonFloat(stockPrice) + `,"position":250,
		"calls":[{"symbol":"SOFI C22","strike":22,"expiration":"20240628","option_type":"CALL","bid":0.45,"ask":0.50}],
		"puts":[{"symbol":"SOFI P18","strike":18,"expiration":"20240628","option_type":"PUT","bid":0.30,"ask":0.35}]}}}`
}

func jsonFloat(v float64) string {
	out, _ := json.Marshal(v)
	return string(out)
}

func TestDashboardSession_Bootstrap(t *testing.T) {
	backend := &fakeBackend{
		callChain: sofiChain(20.5),
		putChain:  sofiChain(20.5),
	}
	session, _ := newTestSession(t, backend)

	err := session.Bootstrap(context.Background())
	assert.NoError(t, err)

	// portfolio position became a working set
	sofi := session.WorkingSet("SOFI")
	assert.NotNil(t, sofi)
	assert.True(t, sofi.IsPortfolioTicker)
	assert.Equal(t, 250, sofi.PositionShares)
	assert.Equal(t, 20.5, sofi.StockPrice)

	// configured ticker became a custom working set
	nvda := session.WorkingSet("NVDA")
	assert.NotNil(t, nvda)
	assert.True(t, nvda.IsCustomTicker)

	// saved pending orders were registered with the tracker
	orders := session.Orders()
	assert.Equal(t, 1, len(orders))
	assert.Equal(t, uint64(7), orders[0].ID)

	// account summary cached
	assert.Equal(t, 100000.0, session.Account().AccountValue)
}

func TestDashboardSession_RefreshTicker(t *testing.T) {
	t.Run("loads both chain sides", func(t *testing.T) {
		backend := &fakeBackend{
			callChain: sofiChain(20.5),
			putChain:  sofiChain(20.5),
		}
		session, _ := newTestSession(t, backend)
		assert.NoError(t, session.Bootstrap(context.Background()))

		err := session.RefreshTicker(context.Background(), "SOFI")
		assert.NoError(t, err)

		set := session.WorkingSet("SOFI")
		assert.Equal(t, 1, len(set.Calls))
		assert.Equal(t, 1, len(set.Puts))
		assert.False(t, set.LastRefreshedAt.IsZero())
		// put quantity defaulted from the recommendation
		assert.Greater(t, set.PutQuantity, 0)
	})

	t.Run("stock price merge takes the first non-zero side", func(t *testing.T) {
		backend := &fakeBackend{
			callChain: sofiChain(0),
			putChain:  sofiChain(21.0),
		}
		session, _ := newTestSession(t, backend)
		assert.NoError(t, session.Bootstrap(context.Background()))

		err := session.RefreshTicker(context.Background(), "SOFI")
		assert.NoError(t, err)

		assert.Equal(t, 21.0, session.WorkingSet("SOFI").StockPrice)
	})

	t.Run("quotes land on the side their own type says", func(t *testing.T) {
		// a backend that ignores the optionType filter returns both sides
		// in one payload; the CALL quote must not reach the put table
		mixed := `{"data":{"SOFI":{"symbol":"SOFI","stock_price":20.5,"position":250,
			"calls":[],
			"puts":[{"symbol":"SOFI P18","strike":18,"expiration":"20240628","option_type":"PUT","bid":0.30,"ask":0.35},
				{"symbol":"SOFI C22","strike":22,"expiration":"20240628","option_type":"CALL","bid":0.45,"ask":0.50}]}}}`
		backend := &fakeBackend{
			callChain: sofiChain(20.5),
			putChain:  mixed,
		}
		session, _ := newTestSession(t, backend)
		assert.NoError(t, session.Bootstrap(context.Background()))

		err := session.RefreshTicker(context.Background(), "SOFI")
		assert.NoError(t, err)

		set := session.WorkingSet("SOFI")
		assert.Equal(t, 1, len(set.Calls))
		assert.Equal(t, eventmodels.Call, set.Calls[0].Right)
		assert.Equal(t, 1, len(set.Puts))
		assert.Equal(t, eventmodels.Put, set.Puts[0].Right)
		assert.Equal(t, 18.0, set.Puts[0].Strike)
	})

	t.Run("unknown ticker is a validation error", func(t *testing.T) {
		backend := &fakeBackend{callChain: sofiChain(20.5), putChain: sofiChain(20.5)}
		session, _ := newTestSession(t, backend)

		err := session.RefreshTicker(context.Background(), "ZZZZ")

		var validationErr *eventmodels.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestDashboardSession_CustomTickers(t *testing.T) {
	backend := &fakeBackend{callChain: sofiChain(20.5), putChain: sofiChain(20.5)}
	session, _ := newTestSession(t, backend)
	assert.NoError(t, session.Bootstrap(context.Background()))

	t.Run("add and remove", func(t *testing.T) {
		set, err := session.AddCustomTicker("HOOD")
		assert.NoError(t, err)
		assert.True(t, set.IsCustomTicker)

		assert.NoError(t, session.RemoveCustomTicker("HOOD"))
		assert.Nil(t, session.WorkingSet("HOOD"))
	})

	t.Run("duplicates are rejected", func(t *testing.T) {
		_, err := session.AddCustomTicker("SOFI")
		assert.Error(t, err)
	})

	t.Run("portfolio tickers cannot be removed", func(t *testing.T) {
		err := session.RemoveCustomTicker("SOFI")

		var validationErr *eventmodels.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestDashboardSession_SetOtm(t *testing.T) {
	backend := &fakeBackend{callChain: sofiChain(20.5), putChain: sofiChain(20.5)}
	session, _ := newTestSession(t, backend)
	assert.NoError(t, session.Bootstrap(context.Background()))

	t.Run("updates one side only", func(t *testing.T) {
		assert.NoError(t, session.SetOtm("SOFI", eventmodels.Call, 15))

		set := session.WorkingSet("SOFI")
		assert.Equal(t, 15, set.OtmCallPercent)
		assert.Equal(t, 10, set.OtmPutPercent)
	})

	t.Run("rejects out-of-range values instead of clamping", func(t *testing.T) {
		var validationErr *eventmodels.ValidationError
		assert.ErrorAs(t, session.SetOtm("SOFI", eventmodels.Call, 0), &validationErr)
		assert.ErrorAs(t, session.SetOtm("SOFI", eventmodels.Put, 51), &validationErr)

		// unchanged
		assert.Equal(t, 15, session.WorkingSet("SOFI").OtmCallPercent)
	})
}

func TestDashboardSession_SetPutQuantity(t *testing.T) {
	backend := &fakeBackend{callChain: sofiChain(20.5), putChain: sofiChain(20.5)}
	session, _ := newTestSession(t, backend)
	assert.NoError(t, session.Bootstrap(context.Background()))

	assert.NoError(t, session.SetPutQuantity("SOFI", 4))
	assert.Equal(t, 4, session.WorkingSet("SOFI").PutQuantity)

	var validationErr *eventmodels.ValidationError
	assert.ErrorAs(t, session.SetPutQuantity("SOFI", -1), &validationErr)
}

func TestDashboardSession_Sell(t *testing.T) {
	expiration := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

	t.Run("covered call uses the eligible contract count", func(t *testing.T) {
		backend := &fakeBackend{callChain: sofiChain(20.5), putChain: sofiChain(20.5)}
		session, _ := newTestSession(t, backend)
		assert.NoError(t, session.Bootstrap(context.Background()))
		assert.NoError(t, session.RefreshTicker(context.Background(), "SOFI"))

		order, err := session.Sell(context.Background(), "SOFI", eventmodels.Call, 22, expiration)

		assert.NoError(t, err)
		assert.Equal(t, 2, order.Quantity)
		assert.Equal(t, eventmodels.OrderStatusPending, order.Status)
		assert.NotNil(t, order.LimitPrice)

		// the draft reached the backend with live quote data
		backend.mu.Lock()
		defer backend.mu.Unlock()
		assert.Equal(t, 1, len(backend.createdDrafts))
		assert.Equal(t, 0.45, backend.createdDrafts[0].Bid)

		// and the order is now tracked
		assert.NotNil(t, session.Orders())
	})

	t.Run("put uses the working set put quantity", func(t *testing.T) {
		backend := &fakeBackend{callChain: sofiChain(20.5), putChain: sofiChain(20.5)}
		session, _ := newTestSession(t, backend)
		assert.NoError(t, session.Bootstrap(context.Background()))
		assert.NoError(t, session.RefreshTicker(context.Background(), "SOFI"))
		assert.NoError(t, session.SetPutQuantity("SOFI", 3))

		order, err := session.Sell(context.Background(), "SOFI", eventmodels.Put, 18, expiration)

		assert.NoError(t, err)
		assert.Equal(t, 3, order.Quantity)
	})

	t.Run("unknown contract is rejected", func(t *testing.T) {
		backend := &fakeBackend{callChain: sofiChain(20.5), putChain: sofiChain(20.5)}
		session, _ := newTestSession(t, backend)
		assert.NoError(t, session.Bootstrap(context.Background()))
		assert.NoError(t, session.RefreshTicker(context.Background(), "SOFI"))

		_, err := session.Sell(context.Background(), "SOFI", eventmodels.Call, 99, expiration)

		var validationErr *eventmodels.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestDashboardSession_WorkingSetSnapshots(t *testing.T) {
	backend := &fakeBackend{callChain: sofiChain(20.5), putChain: sofiChain(20.5)}
	session, _ := newTestSession(t, backend)
	assert.NoError(t, session.Bootstrap(context.Background()))
	assert.NoError(t, session.RefreshTicker(context.Background(), "SOFI"))

	// defacing the returned snapshots must not leak into the session
	session.WorkingSet("SOFI").PutQuantity = 99
	for _, set := range session.WorkingSets() {
		set.Calls = nil
	}

	set := session.WorkingSet("SOFI")
	assert.NotEqual(t, 99, set.PutQuantity)
	assert.Equal(t, 1, len(set.Calls))
}

func TestDashboardSession_DefaultExpiration(t *testing.T) {
	backend := &fakeBackend{callChain: sofiChain(20.5), putChain: sofiChain(20.5)}
	session, _ := newTestSession(t, backend)

	// a Monday resolves to the Friday of the same week
	session.now = func() time.Time { return time.Date(2024, 6, 24, 9, 30, 0, 0, time.UTC) }

	assert.Equal(t, time.Date(2024, 6, 28, 9, 30, 0, 0, time.UTC), session.DefaultExpiration())
}

func TestDashboardSession_Earnings(t *testing.T) {
	backend := &fakeBackend{callChain: sofiChain(20.5), putChain: sofiChain(20.5)}
	session, _ := newTestSession(t, backend)
	assert.NoError(t, session.Bootstrap(context.Background()))
	assert.NoError(t, session.RefreshTicker(context.Background(), "SOFI"))

	summary := session.Earnings()

	// 250 shares back 2 call contracts at the 0.45 bid
	assert.InDelta(t, 90.0, summary.WeeklyCallPremium, 1e-9)
	assert.Greater(t, summary.WeeklyPutPremium, 0.0)
	assert.Equal(t, eventmodels.PortfolioValueFromAccount, summary.PortfolioValueSource)
}
