package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	log "github.com/sirupsen/logrus"

	"github.com/wheelhouse-trading/wheelhouse/src/economics"
	"github.com/wheelhouse-trading/wheelhouse/src/eventmodels"
	"github.com/wheelhouse-trading/wheelhouse/src/session"
)

var decoder = schema.NewDecoder()

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func NewErrorResponse(errType string, message string) *errorResponse {
	return &errorResponse{
		Type: errType,
		Msg:  message,
	}
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := NewErrorResponse(errType, err.Error())
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		return encodeErr
	}

	return nil
}

// statusFor maps domain errors to HTTP status codes: validation problems are
// the caller's fault, backend trouble is a bad gateway, everything else is a
// 500.
func statusFor(err error) (string, int) {
	var validationErr *eventmodels.ValidationError
	if errors.As(err, &validationErr) {
		return "validation", http.StatusBadRequest
	}

	var networkErr *eventmodels.NetworkError
	if errors.As(err, &networkErr) {
		return "backend", http.StatusBadGateway
	}

	var shapeErr *eventmodels.DataShapeError
	if errors.As(err, &shapeErr) {
		return "backend", http.StatusBadGateway
	}

	return "internal", http.StatusInternalServerError
}

func reportError(handlerName string, err error, w http.ResponseWriter) {
	errType, statusCode := statusFor(err)
	log.Errorf("%s: %v", handlerName, err)

	if respErr := setErrorResponse(errType, statusCode, err, w); respErr != nil {
		log.Errorf("%s: failed to set error response: %v", handlerName, respErr)
	}
}

type apiHandler struct {
	session *session.DashboardSession
}

func (h *apiHandler) handleAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(404)
		return
	}

	acct := h.session.Account()
	if acct == nil {
		reportError("handleAccount", &eventmodels.DataShapeError{Msg: "account summary not loaded yet"}, w)
		return
	}

	if err := setResponse(acct, w); err != nil {
		log.Errorf("handleAccount: %v", err)
	}
}

func (h *apiHandler) handleTickers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		if err := setResponse(h.session.WorkingSets(), w); err != nil {
			log.Errorf("handleTickers: %v", err)
		}

	case "POST":
		var payload struct {
			Ticker string `json:"ticker"`
		}

		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			reportError("handleTickers", eventmodels.NewValidationError("body", err.Error()), w)
			return
		}

		set, err := h.session.AddCustomTicker(payload.Ticker)
		if err != nil {
			reportError("handleTickers", err, w)
			return
		}

		if err := setResponse(set, w); err != nil {
			log.Errorf("handleTickers: %v", err)
		}

	default:
		w.WriteHeader(404)
	}
}

// quoteView pairs a quote with its computed earnings block.
type quoteView struct {
	*eventmodels.OptionQuote
	Earnings economics.QuoteEarnings `json:"earnings"`
}

type tickerView struct {
	*eventmodels.TickerWorkingSet
	Calls     []quoteView          `json:"calls"`
	Puts      []quoteView          `json:"puts"`
	CallStats economics.ChainStats `json:"call_stats"`
	PutStats  economics.ChainStats `json:"put_stats"`
}

func newTickerView(set *eventmodels.TickerWorkingSet, acct *eventmodels.AccountSummary) (*tickerView, error) {
	view := &tickerView{TickerWorkingSet: set}

	var accountValue float64
	if acct != nil {
		accountValue = acct.AccountValue
	}

	for _, quote := range set.Calls {
		view.Calls = append(view.Calls, quoteView{
			OptionQuote: quote,
			Earnings:    economics.EnrichQuote(quote, set, accountValue),
		})
	}

	for _, quote := range set.Puts {
		view.Puts = append(view.Puts, quoteView{
			OptionQuote: quote,
			Earnings:    economics.EnrichQuote(quote, set, accountValue),
		})
	}

	callStats, err := economics.BuildChainStats(set.Calls)
	if err != nil {
		return nil, err
	}

	putStats, err := economics.BuildChainStats(set.Puts)
	if err != nil {
		return nil, err
	}

	view.CallStats = callStats
	view.PutStats = putStats

	return view, nil
}

func (h *apiHandler) handleTicker(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ticker := vars["ticker"]

	switch r.Method {
	case "GET":
		set := h.session.WorkingSet(ticker)
		if set == nil {
			reportError("handleTicker", eventmodels.NewValidationError("ticker", fmt.Sprintf("unknown ticker %q", ticker)), w)
			return
		}

		view, err := newTickerView(set, h.session.Account())
		if err != nil {
			reportError("handleTicker", err, w)
			return
		}

		if err := setResponse(view, w); err != nil {
			log.Errorf("handleTicker: %v", err)
		}

	case "DELETE":
		if err := h.session.RemoveCustomTicker(ticker); err != nil {
			reportError("handleTicker", err, w)
			return
		}

		if err := setResponse(map[string]interface{}{"removed": ticker}, w); err != nil {
			log.Errorf("handleTicker: %v", err)
		}

	default:
		w.WriteHeader(404)
	}
}

func (h *apiHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(404)
		return
	}

	vars := mux.Vars(r)
	ticker := vars["ticker"]

	if err := h.session.RefreshTicker(r.Context(), ticker); err != nil {
		reportError("handleRefresh", err, w)
		return
	}

	if err := setResponse(h.session.WorkingSet(ticker), w); err != nil {
		log.Errorf("handleRefresh: %v", err)
	}
}

type otmRequest struct {
	Side    string `schema:"side,required"`
	Percent int    `schema:"percent,required"`
}

func (h *apiHandler) handleOtm(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(404)
		return
	}

	if err := r.ParseForm(); err != nil {
		reportError("handleOtm", eventmodels.NewValidationError("form", err.Error()), w)
		return
	}

	var req otmRequest
	if err := decoder.Decode(&req, r.Form); err != nil {
		reportError("handleOtm", eventmodels.NewValidationError("form", err.Error()), w)
		return
	}

	side, err := eventmodels.NewOptionRightFromBackend(req.Side)
	if err != nil {
		reportError("handleOtm", eventmodels.NewValidationError("side", err.Error()), w)
		return
	}

	vars := mux.Vars(r)
	ticker := vars["ticker"]

	if err := h.session.SetOtm(ticker, side, req.Percent); err != nil {
		reportError("handleOtm", err, w)
		return
	}

	if err := setResponse(h.session.WorkingSet(ticker), w); err != nil {
		log.Errorf("handleOtm: %v", err)
	}
}

type putQuantityRequest struct {
	Quantity int `schema:"quantity,required"`
}

func (h *apiHandler) handlePutQuantity(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(404)
		return
	}

	if err := r.ParseForm(); err != nil {
		reportError("handlePutQuantity", eventmodels.NewValidationError("form", err.Error()), w)
		return
	}

	var req putQuantityRequest
	if err := decoder.Decode(&req, r.Form); err != nil {
		reportError("handlePutQuantity", eventmodels.NewValidationError("form", err.Error()), w)
		return
	}

	vars := mux.Vars(r)
	ticker := vars["ticker"]

	if err := h.session.SetPutQuantity(ticker, req.Quantity); err != nil {
		reportError("handlePutQuantity", err, w)
		return
	}

	if err := setResponse(h.session.WorkingSet(ticker), w); err != nil {
		log.Errorf("handlePutQuantity: %v", err)
	}
}

type sellRequest struct {
	Side       string  `json:"side"`
	Strike     float64 `json:"strike"`
	Expiration string  `json:"expiration"`
}

func (h *apiHandler) handleSell(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(404)
		return
	}

	var req sellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reportError("handleSell", eventmodels.NewValidationError("body", err.Error()), w)
		return
	}

	side, err := eventmodels.NewOptionRightFromBackend(req.Side)
	if err != nil {
		reportError("handleSell", eventmodels.NewValidationError("side", err.Error()), w)
		return
	}

	// no expiration in the body means the next weekly expiration
	expiration := h.session.DefaultExpiration()
	if req.Expiration != "" {
		expiration, err = time.Parse("20060102", req.Expiration)
		if err != nil {
			reportError("handleSell", eventmodels.NewValidationError("expiration", fmt.Sprintf("expected YYYYMMDD, got %q", req.Expiration)), w)
			return
		}
	}

	vars := mux.Vars(r)
	ticker := vars["ticker"]

	order, err := h.session.Sell(r.Context(), ticker, side, req.Strike, expiration)
	if err != nil {
		reportError("handleSell", err, w)
		return
	}

	if err := setResponse(order, w); err != nil {
		log.Errorf("handleSell: %v", err)
	}
}

func (h *apiHandler) handleEarnings(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(404)
		return
	}

	if err := setResponse(h.session.Earnings(), w); err != nil {
		log.Errorf("handleEarnings: %v", err)
	}
}

func (h *apiHandler) handleOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(404)
		return
	}

	if err := setResponse(h.session.Orders(), w); err != nil {
		log.Errorf("handleOrders: %v", err)
	}
}

func orderIDFromVars(r *http.Request) (uint64, error) {
	vars := mux.Vars(r)

	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		return 0, eventmodels.NewValidationError("id", fmt.Sprintf("invalid order id %q", vars["id"]))
	}

	return id, nil
}

func (h *apiHandler) handleExecuteOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(404)
		return
	}

	orderID, err := orderIDFromVars(r)
	if err != nil {
		reportError("handleExecuteOrder", err, w)
		return
	}

	ack, err := h.session.ExecuteOrder(r.Context(), orderID)
	if err != nil {
		reportError("handleExecuteOrder", err, w)
		return
	}

	if err := setResponse(ack, w); err != nil {
		log.Errorf("handleExecuteOrder: %v", err)
	}
}

func (h *apiHandler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(404)
		return
	}

	orderID, err := orderIDFromVars(r)
	if err != nil {
		reportError("handleCancelOrder", err, w)
		return
	}

	ack, err := h.session.CancelOrder(r.Context(), orderID)
	if err != nil {
		reportError("handleCancelOrder", err, w)
		return
	}

	if err := setResponse(ack, w); err != nil {
		log.Errorf("handleCancelOrder: %v", err)
	}
}

func (h *apiHandler) handleOrderQuantity(w http.ResponseWriter, r *http.Request) {
	if r.Method != "PUT" {
		w.WriteHeader(404)
		return
	}

	orderID, err := orderIDFromVars(r)
	if err != nil {
		reportError("handleOrderQuantity", err, w)
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		reportError("handleOrderQuantity", eventmodels.NewValidationError("body", err.Error()), w)
		return
	}

	order, err := h.session.SetOrderQuantity(r.Context(), orderID, payload.Quantity)
	if err != nil {
		reportError("handleOrderQuantity", err, w)
		return
	}

	if err := setResponse(order, w); err != nil {
		log.Errorf("handleOrderQuantity: %v", err)
	}
}

func (h *apiHandler) handleRollover(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(404)
		return
	}

	var draft eventmodels.RolloverDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		reportError("handleRollover", eventmodels.NewValidationError("body", err.Error()), w)
		return
	}

	if err := draft.Validate(); err != nil {
		reportError("handleRollover", err, w)
		return
	}

	response, err := h.session.Rollover(r.Context(), &draft)
	if err != nil {
		reportError("handleRollover", err, w)
		return
	}

	if err := setResponse(response, w); err != nil {
		log.Errorf("handleRollover: %v", err)
	}
}

type rolloverTargetsRequest struct {
	Expiration string `schema:"expiration,required"`
}

func (h *apiHandler) handleRolloverTargets(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(404)
		return
	}

	var req rolloverTargetsRequest
	if err := decoder.Decode(&req, r.URL.Query()); err != nil {
		reportError("handleRolloverTargets", eventmodels.NewValidationError("query", err.Error()), w)
		return
	}

	current, err := time.Parse("20060102", req.Expiration)
	if err != nil {
		reportError("handleRolloverTargets", eventmodels.NewValidationError("expiration", fmt.Sprintf("expected YYYYMMDD, got %q", req.Expiration)), w)
		return
	}

	vars := mux.Vars(r)
	ticker := vars["ticker"]

	targets, err := h.session.RolloverTargets(r.Context(), ticker, current)
	if err != nil {
		reportError("handleRolloverTargets", err, w)
		return
	}

	formatted := make([]string, 0, len(targets))
	for _, target := range targets {
		formatted = append(formatted, target.Format("20060102"))
	}

	if err := setResponse(map[string]interface{}{"expirations": formatted}, w); err != nil {
		log.Errorf("handleRolloverTargets: %v", err)
	}
}

func SetupHandler(router *mux.Router, dashboardSession *session.DashboardSession) {
	decoder.IgnoreUnknownKeys(true)

	h := &apiHandler{session: dashboardSession}

	router.HandleFunc("/account", h.handleAccount)
	router.HandleFunc("/tickers", h.handleTickers)
	router.HandleFunc("/tickers/{ticker}", h.handleTicker)
	router.HandleFunc("/tickers/{ticker}/refresh", h.handleRefresh)
	router.HandleFunc("/tickers/{ticker}/otm", h.handleOtm)
	router.HandleFunc("/tickers/{ticker}/put-quantity", h.handlePutQuantity)
	router.HandleFunc("/tickers/{ticker}/sell", h.handleSell)
	router.HandleFunc("/tickers/{ticker}/rollover-targets", h.handleRolloverTargets)
	router.HandleFunc("/earnings", h.handleEarnings)
	router.HandleFunc("/orders", h.handleOrders)
	router.HandleFunc("/orders/{id}/execute", h.handleExecuteOrder)
	router.HandleFunc("/orders/{id}/cancel", h.handleCancelOrder)
	router.HandleFunc("/orders/{id}/quantity", h.handleOrderQuantity)
	router.HandleFunc("/rollover", h.handleRollover)
}
