// Package eventservices holds the HTTP client for the dashboard's REST
// backend. All calls are context-bound, apply the configured request
// timeout, and classify failures into the network / data-shape taxonomy so
// callers can decide what to surface and what to swallow.
package eventservices

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wheelhouse-trading/wheelhouse/src/eventmodels"
	"github.com/wheelhouse-trading/wheelhouse/src/utils"
)

const DefaultRequestTimeout = 30 * time.Second

type DashboardClient struct {
	baseURL string
	client  http.Client
}

func NewDashboardClient(baseURL string, timeout time.Duration) *DashboardClient {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return &DashboardClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: http.Client{
			Timeout: timeout,
		},
	}
}

func (c *DashboardClient) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("DashboardClient:do(): failed to marshal request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("DashboardClient:do(): failed to create request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	log.Debugf("%s %s", method, req.URL.String())

	res, err := c.client.Do(req)
	if err != nil {
		return nil, &eventmodels.NetworkError{URL: reqURL, Err: err}
	}

	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &eventmodels.NetworkError{URL: reqURL, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &eventmodels.NetworkError{StatusCode: res.StatusCode, URL: reqURL}
	}

	return payload, nil
}

// FetchAccountSummary loads account-level figures from GET /api/portfolio.
func (c *DashboardClient) FetchAccountSummary(ctx context.Context) (*eventmodels.AccountSummary, error) {
	payload, err := c.do(ctx, http.MethodGet, "/api/portfolio", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("DashboardClient:FetchAccountSummary(): %w", err)
	}

	var dto eventmodels.AccountSummaryDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		return nil, &eventmodels.DataShapeError{Msg: "FetchAccountSummary: failed to parse response", Err: err}
	}

	return dto.ToModel(), nil
}

// FetchPositions loads portfolio positions, optionally filtered by security
// type (GET /api/portfolio/positions?type=STK).
func (c *DashboardClient) FetchPositions(ctx context.Context, securityType eventmodels.SecurityType) ([]*eventmodels.PositionSnapshot, error) {
	query := url.Values{}
	if securityType != "" {
		query.Add("type", string(securityType))
	}

	payload, err := c.do(ctx, http.MethodGet, "/api/portfolio/positions", query, nil)
	if err != nil {
		return nil, fmt.Errorf("DashboardClient:FetchPositions(): %w", err)
	}

	var dtos []*eventmodels.PositionSnapshotDTO
	if err := json.Unmarshal(payload, &dtos); err != nil {
		return nil, &eventmodels.DataShapeError{Msg: "FetchPositions: failed to parse response", Err: err}
	}

	positions := make([]*eventmodels.PositionSnapshot, 0, len(dtos))
	for _, dto := range dtos {
		position, err := dto.ToModel()
		if err != nil {
			log.Errorf("DashboardClient.FetchPositions: skipping malformed position: %v", err)
			continue
		}

		positions = append(positions, position)
	}

	return positions, nil
}

// FetchOtmChains loads per-ticker chain slices around the requested OTM band
// (GET /api/options/otm). The payload is sanitized for bare NaN tokens
// before decoding; a per-ticker error in the response surfaces as a missing
// ticker entry plus a log line, not a failed call.
func (c *DashboardClient) FetchOtmChains(ctx context.Context, tickers []string, otmPercent int, right eventmodels.OptionRight) (map[string]*eventmodels.OtmChainDTO, error) {
	query := url.Values{}
	query.Add("tickers", strings.Join(tickers, ","))
	query.Add("otm", fmt.Sprintf("%d", otmPercent))
	query.Add("real_time", "true")
	query.Add("options_only", "true")
	if right != "" {
		query.Add("optionType", right.BackendToken())
	}

	payload, err := c.do(ctx, http.MethodGet, "/api/options/otm", query, nil)
	if err != nil {
		return nil, fmt.Errorf("DashboardClient:FetchOtmChains(): %w", err)
	}

	var response eventmodels.OtmResponseDTO
	if err := json.Unmarshal(utils.SanitizeNonFiniteJSON(payload), &response); err != nil {
		return nil, &eventmodels.DataShapeError{Msg: "FetchOtmChains: failed to parse response", Err: err}
	}

	chains := make(map[string]*eventmodels.OtmChainDTO, len(response.Data))
	for ticker, chain := range response.Data {
		if chain == nil {
			continue
		}

		if chain.Error != "" {
			log.Warnf("DashboardClient.FetchOtmChains: no data for %s: %s", ticker, chain.Error)
			continue
		}

		chains[ticker] = chain
	}

	return chains, nil
}

// FetchStockPrices loads spot prices for one or more tickers
// (GET /api/options/stock-price).
func (c *DashboardClient) FetchStockPrices(ctx context.Context, tickers []string) (map[string]float64, error) {
	query := url.Values{}
	query.Add("tickers", strings.Join(tickers, ","))

	payload, err := c.do(ctx, http.MethodGet, "/api/options/stock-price", query, nil)
	if err != nil {
		return nil, fmt.Errorf("DashboardClient:FetchStockPrices(): %w", err)
	}

	var response eventmodels.StockPriceResponseDTO
	if err := json.Unmarshal(utils.SanitizeNonFiniteJSON(payload), &response); err != nil {
		return nil, &eventmodels.DataShapeError{Msg: "FetchStockPrices: failed to parse response", Err: err}
	}

	return response.Data, nil
}

// FetchPendingOrders loads saved orders (GET /api/options/pending-orders),
// optionally including already executed ones.
func (c *DashboardClient) FetchPendingOrders(ctx context.Context, executed bool) ([]*eventmodels.OptionOrder, error) {
	query := url.Values{}
	if executed {
		query.Add("executed", "true")
	}

	payload, err := c.do(ctx, http.MethodGet, "/api/options/pending-orders", query, nil)
	if err != nil {
		return nil, fmt.Errorf("DashboardClient:FetchPendingOrders(): %w", err)
	}

	var response eventmodels.PendingOrdersResponseDTO
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, &eventmodels.DataShapeError{Msg: "FetchPendingOrders: failed to parse response", Err: err}
	}

	orders := make([]*eventmodels.OptionOrder, 0, len(response.Orders))
	for _, dto := range response.Orders {
		order, err := dto.ToModel()
		if err != nil {
			log.Errorf("DashboardClient.FetchPendingOrders: skipping malformed order: %v", err)
			continue
		}

		orders = append(orders, order)
	}

	return orders, nil
}

// CreateOrder saves an order draft (POST /api/options/order) and returns the
// backend-assigned order ID.
func (c *DashboardClient) CreateOrder(ctx context.Context, draft *eventmodels.OrderDraft) (uint64, error) {
	if err := draft.Validate(); err != nil {
		return 0, fmt.Errorf("DashboardClient:CreateOrder(): %w", err)
	}

	payload, err := c.do(ctx, http.MethodPost, "/api/options/order", nil, draft)
	if err != nil {
		return 0, fmt.Errorf("DashboardClient:CreateOrder(): %w", err)
	}

	var response eventmodels.CreateOrderResponseDTO
	if err := json.Unmarshal(payload, &response); err != nil {
		return 0, &eventmodels.DataShapeError{Msg: "CreateOrder: failed to parse response", Err: err}
	}

	return response.OrderID, nil
}

// ExecuteOrder sends a saved order to the brokerage
// (POST /api/options/execute/{id}).
func (c *DashboardClient) ExecuteOrder(ctx context.Context, orderID uint64) (*eventmodels.ExecutionAck, error) {
	payload, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/options/execute/%d", orderID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("DashboardClient:ExecuteOrder(): %w", err)
	}

	var ack eventmodels.ExecutionAck
	if err := json.Unmarshal(payload, &ack); err != nil {
		return nil, &eventmodels.DataShapeError{Msg: "ExecuteOrder: failed to parse response", Err: err}
	}

	return &ack, nil
}

// CancelOrder cancels a saved or in-flight order
// (POST /api/options/cancel/{id}).
func (c *DashboardClient) CancelOrder(ctx context.Context, orderID uint64) (*eventmodels.CancelAck, error) {
	payload, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/options/cancel/%d", orderID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("DashboardClient:CancelOrder(): %w", err)
	}

	var ack eventmodels.CancelAck
	if err := json.Unmarshal(payload, &ack); err != nil {
		return nil, &eventmodels.DataShapeError{Msg: "CancelOrder: failed to parse response", Err: err}
	}

	return &ack, nil
}

// CheckOrders asks the backend to reconcile pending/processing orders with
// the brokerage (POST /api/options/check-orders) and returns the orders the
// reconciliation changed.
func (c *DashboardClient) CheckOrders(ctx context.Context) ([]*eventmodels.OptionOrder, error) {
	payload, err := c.do(ctx, http.MethodPost, "/api/options/check-orders", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("DashboardClient:CheckOrders(): %w", err)
	}

	var response eventmodels.CheckOrdersResponseDTO
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, &eventmodels.DataShapeError{Msg: "CheckOrders: failed to parse response", Err: err}
	}

	orders := make([]*eventmodels.OptionOrder, 0, len(response.UpdatedOrders))
	for _, dto := range response.UpdatedOrders {
		order, err := dto.ToModel()
		if err != nil {
			log.Errorf("DashboardClient.CheckOrders: skipping malformed order: %v", err)
			continue
		}

		orders = append(orders, order)
	}

	return orders, nil
}

// SubmitRollover creates the buy-to-close / sell-to-open order pair
// (POST /api/options/rollover).
func (c *DashboardClient) SubmitRollover(ctx context.Context, draft *eventmodels.RolloverDraft) (*eventmodels.RolloverResponseDTO, error) {
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("DashboardClient:SubmitRollover(): %w", err)
	}

	payload, err := c.do(ctx, http.MethodPost, "/api/options/rollover", nil, draft)
	if err != nil {
		return nil, fmt.Errorf("DashboardClient:SubmitRollover(): %w", err)
	}

	var response eventmodels.RolloverResponseDTO
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, &eventmodels.DataShapeError{Msg: "SubmitRollover: failed to parse response", Err: err}
	}

	return &response, nil
}

// FetchExpirations lists the expirations available for a ticker
// (GET /api/options/expirations).
func (c *DashboardClient) FetchExpirations(ctx context.Context, ticker string) ([]time.Time, error) {
	query := url.Values{}
	query.Add("ticker", ticker)

	payload, err := c.do(ctx, http.MethodGet, "/api/options/expirations", query, nil)
	if err != nil {
		return nil, fmt.Errorf("DashboardClient:FetchExpirations(): %w", err)
	}

	var response eventmodels.ExpirationsResponseDTO
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, &eventmodels.DataShapeError{Msg: "FetchExpirations: failed to parse response", Err: err}
	}

	expirations := make([]time.Time, 0, len(response.Expirations))
	for _, dto := range response.Expirations {
		expiration, err := time.Parse("20060102", dto.Value)
		if err != nil {
			log.Errorf("DashboardClient.FetchExpirations: skipping malformed expiration %q: %v", dto.Value, err)
			continue
		}

		expirations = append(expirations, expiration)
	}

	return expirations, nil
}

// UpdateOrderQuantity changes the quantity of a still-pending order
// (PUT /api/options/order/{id}/quantity).
func (c *DashboardClient) UpdateOrderQuantity(ctx context.Context, orderID uint64, quantity int) error {
	if quantity <= 0 {
		return eventmodels.NewValidationError("quantity", "must be positive")
	}

	body := map[string]int{"quantity": quantity}

	payload, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/options/order/%d/quantity", orderID), nil, body)
	if err != nil {
		return fmt.Errorf("DashboardClient:UpdateOrderQuantity(): %w", err)
	}

	var response eventmodels.UpdateQuantityResponseDTO
	if err := json.Unmarshal(payload, &response); err != nil {
		return &eventmodels.DataShapeError{Msg: "UpdateOrderQuantity: failed to parse response", Err: err}
	}

	if !response.Success {
		return fmt.Errorf("DashboardClient:UpdateOrderQuantity(): backend rejected update: %s", response.Error)
	}

	return nil
}
