// ============================================================================
// kairos - Market Calendar Timestamps
// ============================================================================
//
// Package:     handler
// Description: HTTP JSON API and websocket clock stream
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/internal/kairos/service"
	"github.com/msto63/kairos/internal/kairos/store"
	"github.com/msto63/kairos/pkg/core/health"
	"github.com/msto63/kairos/pkg/core/logging"
	"github.com/msto63/kairos/pkg/core/version"
	"github.com/msto63/kairos/pkg/datetime"
)

// maxBodySize limits JSON request bodies
const maxBodySize = 1 << 20

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ValueResponse carries a single instant
type ValueResponse struct {
	Input string            `json:"input"`
	Value datetime.Datetime `json:"value"`
}

// DaysResponse carries a day sequence
type DaysResponse struct {
	Days  []datetime.Datetime `json:"days"`
	Count int                 `json:"count"`
}

// BucketRequest groups inputs by period
type BucketRequest struct {
	Inputs []string `json:"inputs"`
	Period string   `json:"period,omitempty"`
}

// BucketResponse lists the buckets of a BucketRequest
type BucketResponse struct {
	Buckets []service.Bucket `json:"buckets"`
	Total   int              `json:"total"`
}

// HolidayRequest adds a holiday
type HolidayRequest struct {
	Market string `json:"market"`
	Day    string `json:"day"`
	Name   string `json:"name,omitempty"`
}

// HolidaysResponse lists holidays
type HolidaysResponse struct {
	Holidays []store.Holiday `json:"holidays"`
	Total    int             `json:"total"`
}

// Handler handles HTTP requests for the kairos API
type Handler struct {
	service   *service.Service
	health    *health.Registry
	logger    *logging.Logger
	startTime time.Time
}

// NewHandler creates a new API handler
func NewHandler(svc *service.Service, registry *health.Registry) *Handler {
	return &Handler{
		service:   svc,
		health:    registry,
		logger:    logging.New("handler"),
		startTime: time.Now(),
	}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		h.handleRoot(w, r)
	case "health":
		h.handleHealth(w, r)
	case "inspect":
		h.handleInspect(w, r)
	case "align":
		h.handleAlign(w, r)
	case "step":
		h.handleStep(w, r)
	case "range":
		h.handleRange(w, r)
	case "trading-days":
		h.handleTradingDays(w, r)
	case "bucket":
		h.handleBucket(w, r)
	case "holidays":
		h.handleHolidays(w, r)
	default:
		h.writeError(w, r, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
	}
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "kairos",
		"version": version.Platform,
		"api":     version.API,
		"endpoints": []string{
			"GET    /api/v1/health",
			"GET    /api/v1/inspect?input=",
			"GET    /api/v1/align?input=&period=&edge=",
			"GET    /api/v1/step?input=&period=&n=",
			"GET    /api/v1/range?start=&end=",
			"GET    /api/v1/trading-days?market=&start=&end=",
			"POST   /api/v1/bucket",
			"GET    /api/v1/holidays?market=&start=&end=",
			"POST   /api/v1/holidays",
			"DELETE /api/v1/holidays?market=&day=",
			"GET    /api/v1/clock/ws",
		},
	})
}

// handleHealth reports 503 when any check is unhealthy
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	report := h.health.Check(ctx)
	code := http.StatusOK
	if !report.Healthy() {
		code = http.StatusServiceUnavailable
	}
	h.writeJSON(w, code, report)
}

func (h *Handler) handleInspect(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	in, err := h.service.Inspect(r.Context(), r.URL.Query().Get("input"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, in)
}

func (h *Handler) handleAlign(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	period, err := periodParam(q.Get("period"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	edge, err := service.ParseEdge(q.Get("edge"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	dt, err := h.service.Align(r.Context(), q.Get("input"), period, edge)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ValueResponse{Input: q.Get("input"), Value: dt})
}

func (h *Handler) handleStep(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	period, err := periodParam(q.Get("period"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	n := 1
	if s := q.Get("n"); s != "" {
		if n, err = strconv.Atoi(s); err != nil {
			h.writeError(w, r, http.StatusBadRequest, string(kerror.CodeInvalidInput), "n must be an integer")
			return
		}
	}

	dt, err := h.service.Step(r.Context(), q.Get("input"), period, n)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ValueResponse{Input: q.Get("input"), Value: dt})
}

func (h *Handler) handleRange(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	days, err := h.service.Range(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeDays(w, days)
}

func (h *Handler) handleTradingDays(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	days, err := h.service.TradingDays(r.Context(), q.Get("market"), q.Get("start"), q.Get("end"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeDays(w, days)
}

func (h *Handler) handleBucket(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodPost) {
		return
	}
	var req BucketRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Inputs) == 0 {
		h.writeError(w, r, http.StatusBadRequest, string(kerror.CodeInvalidInput), "inputs required")
		return
	}
	period, err := periodParam(req.Period)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	buckets, err := h.service.Bucket(r.Context(), req.Inputs, period)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, BucketResponse{Buckets: buckets, Total: len(buckets)})
}

// handleHolidays lists, adds and removes market holidays
func (h *Handler) handleHolidays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st := h.service.Store()

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		start, end := q.Get("start"), q.Get("end")
		if start == "" {
			start = datetime.Min().String()
		}
		if end == "" {
			end = datetime.NullString
		}
		from, err := h.service.Parse(start)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		to, err := h.service.Parse(end)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		holidays, err := st.Holidays(ctx, h.market(q.Get("market")), from, to)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, HolidaysResponse{Holidays: holidays, Total: len(holidays)})

	case http.MethodPost:
		var req HolidayRequest
		if !h.decode(w, r, &req) {
			return
		}
		day, err := h.service.Parse(req.Day)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		if err := st.AddHoliday(ctx, h.market(req.Market), day, req.Name); err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusCreated, ValueResponse{Input: req.Day, Value: day.StartOfDay()})

	case http.MethodDelete:
		q := r.URL.Query()
		day, err := h.service.Parse(q.Get("day"))
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		if err := st.RemoveHoliday(ctx, h.market(q.Get("market")), day); err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		h.writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use GET, POST or DELETE")
	}
}

func (h *Handler) market(m string) string {
	if m == "" {
		return h.service.DefaultMarket()
	}
	return m
}

func (h *Handler) allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		h.writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use "+method)
		return false
	}
	return true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, string(kerror.CodeInvalidInput), "Failed to read body")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		h.writeError(w, r, http.StatusBadRequest, string(kerror.CodeInvalidInput), "Invalid JSON")
		return false
	}
	return true
}

// periodParam parses a period name; empty means day
func periodParam(s string) (datetime.Period, error) {
	if s == "" {
		return datetime.Day, nil
	}
	return datetime.ParsePeriod(s)
}

func (h *Handler) writeDays(w http.ResponseWriter, days []datetime.Datetime) {
	if days == nil {
		days = []datetime.Datetime{}
	}
	h.writeJSON(w, http.StatusOK, DaysResponse{Days: days, Count: len(days)})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// writeServiceError maps the error code to an HTTP status
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := kerror.GetCode(err)
	status := code.HTTPStatus()
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	if status >= http.StatusInternalServerError || kerror.GetSeverity(err).ShouldAlert() {
		h.logger.Error("Request failed", "path", r.URL.Path, "error", err)
	}
	h.writeError(w, r, status, string(code), err.Error())
}
