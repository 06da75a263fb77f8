// Package server exposes household screening over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iwvelando/income-eligibility/internal/config"
	"github.com/iwvelando/income-eligibility/internal/screening"
	"github.com/iwvelando/income-eligibility/pkg/constants"
	"github.com/iwvelando/income-eligibility/pkg/eligibility"
	"github.com/iwvelando/income-eligibility/pkg/household"
	"github.com/iwvelando/income-eligibility/pkg/measures"
	"github.com/iwvelando/income-eligibility/pkg/validation"
)

type handler struct {
	logger      *zap.Logger
	conf        *config.Configuration
	screener    *screening.Screener
	validator   *validation.RequestValidator
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the screening API.
func NewHandler(logger *zap.Logger, conf *config.Configuration, cfg *Config, version string) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		return nil, errors.New("server requires a configuration")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	validator, err := validation.NewRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare request schemas: %w", err)
	}

	h := &handler{
		logger:      logger,
		conf:        conf,
		screener:    screening.NewScreener(logger, conf),
		validator:   validator,
		maxBodySize: cfg.BodySizeBytes(),
		version:     trimmedVersion,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/screen", h.handleScreen)
		r.Post("/measures", h.handleMeasures)
		r.Get("/guidelines", h.handleGuidelines)
		r.Get("/guidelines/{year}", h.handleGuideline)
		r.Get("/programs", h.handlePrograms)
		r.Get("/version", h.handleVersion)
	})

	return r, nil
}

type measuresRequest struct {
	AnnualIncome  screening.Amount `json:"annualIncome"`
	HouseholdSize int              `json:"householdSize"`
	Year          int              `json:"year,omitempty"`
}

type measuresResponse struct {
	Year          int                 `json:"year"`
	AnnualIncome  decimal.Decimal     `json:"annualIncome"`
	HouseholdSize int                 `json:"householdSize"`
	Measures      measures.Measures   `json:"measures"`
	AMI           *measures.AMIResult `json:"ami,omitempty"`
}

type guidelineYear struct {
	Year    int                  `json:"year"`
	Default bool                 `json:"default"`
	Source  string               `json:"source,omitempty"`
	Area    string               `json:"area,omitempty"`
	Limits  []screening.LimitRow `json:"limits"`
}

type guidelinesResponse struct {
	Default int             `json:"default"`
	Years   []guidelineYear `json:"years"`
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func (h *handler) handleScreen(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScreen"

	body, status, err := h.readBody(w, r)
	if err != nil {
		ScreeningsTotal.WithLabelValues(outcomeInvalid).Inc()
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	if err := h.validator.Validate(validation.ScreenRequestSchema, body); err != nil {
		ScreeningsTotal.WithLabelValues(outcomeInvalid).Inc()
		h.respondValidation(w, err, op)
		return
	}

	var in screening.Input
	if err := json.Unmarshal(body, &in); err != nil {
		ScreeningsTotal.WithLabelValues(outcomeInvalid).Inc()
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	report, err := h.screener.Screen(in)
	if err != nil {
		status := statusFor(err)
		ScreeningsTotal.WithLabelValues(outcomeFor(status)).Inc()
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	ScreeningsTotal.WithLabelValues(outcomeOK).Inc()
	for _, program := range report.Programs {
		ReferralsTotal.WithLabelValues(program).Inc()
	}

	h.logger.Info("screening complete",
		zap.String("op", op),
		zap.String("id", report.ID.String()),
		zap.String("requestID", middleware.GetReqID(r.Context())),
		zap.Int("referrals", len(report.Programs)),
	)
	h.writeJSON(w, http.StatusOK, report)
}

func (h *handler) handleMeasures(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMeasures"

	detail := false
	if raw := r.URL.Query().Get("detail"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid detail flag %q", raw), op)
			return
		}
		detail = parsed
	}

	body, status, err := h.readBody(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}
	if err := h.validator.Validate(validation.MeasuresRequestSchema, body); err != nil {
		h.respondValidation(w, err, op)
		return
	}

	var req measuresRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	income, err := household.ParseAmount(string(req.AnnualIncome))
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	resp := measuresResponse{
		Year:          h.conf.ResolveYear(req.Year),
		AnnualIncome:  income,
		HouseholdSize: req.HouseholdSize,
	}
	if detail {
		m, ami, err := h.screener.Breakdown(income, req.HouseholdSize, req.Year)
		if err != nil {
			h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
			return
		}
		resp.Measures = m
		resp.AMI = &ami
	} else {
		m, err := h.screener.Measures(income, req.HouseholdSize, req.Year)
		if err != nil {
			h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
			return
		}
		resp.Measures = m
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleGuidelines(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGuidelines"

	resp := guidelinesResponse{Default: h.conf.Year, Years: []guidelineYear{}}
	for _, year := range h.conf.Years() {
		gy, err := h.guidelineYear(year)
		if err != nil {
			h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
			return
		}
		resp.Years = append(resp.Years, gy)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleGuideline(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGuideline"

	raw := chi.URLParam(r, "year")
	year, err := strconv.Atoi(raw)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid guideline year %q", raw), op)
		return
	}

	gy, err := h.guidelineYear(year)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, gy)
}

func (h *handler) guidelineYear(year int) (guidelineYear, error) {
	g, err := h.conf.Guideline(year)
	if err != nil {
		return guidelineYear{}, err
	}
	gc := h.conf.Guidelines[strconv.Itoa(year)]
	return guidelineYear{
		Year:    year,
		Default: year == h.conf.Year,
		Source:  gc.Source,
		Area:    gc.AMI.Area,
		Limits:  screening.Limits(g, constants.LimitTableSizes),
	}, nil
}

func (h *handler) handlePrograms(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string][]string{
		"programs": eligibility.Programs(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request body exceeds limit of %d bytes", h.maxBodySize)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, http.StatusOK, nil
}

// requestLogger records the duration of every request and logs it.
func (h *handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		RequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(elapsed.Seconds())
		h.logger.Debug("handled request",
			zap.String("op", "server.requestLogger"),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.String("requestID", middleware.GetReqID(r.Context())),
			zap.Duration("duration", elapsed),
		)
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, config.ErrUnknownGuidelineYear):
		return http.StatusNotFound
	case errors.Is(err, measures.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func outcomeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return outcomeInvalid
	case http.StatusNotFound:
		return outcomeNotFound
	default:
		return outcomeError
	}
}

func (h *handler) respondValidation(w http.ResponseWriter, err error, op string) {
	h.logger.Debug("request failed validation",
		zap.String("op", op),
		zap.Error(err),
	)
	h.writeJSON(w, statusFor(err), errorResponse{
		Error:  err.Error(),
		Fields: validation.FieldErrors(err),
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	} else {
		h.logger.Debug("request rejected",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
