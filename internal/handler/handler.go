package handler

import (
	"log/slog"
	"os"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"

	"obr-forecast/internal/forecast"
	"obr-forecast/internal/model"
	"obr-forecast/internal/panel"
	"obr-forecast/internal/simulation"
)

const (
	calculatePath = "/api/calculate"
	forecastsPath = "/api/forecasts"
	healthPath    = "/healthz"

	contentTypeJSON = "application/json"

	// Served on the catch-all route when no frontend build is present.
	placeholderMessage = "OBR Forecast Household Calculator API"
)

// Handler wires the household matcher and forecast calculator behind the
// HTTP surface.
type Handler struct {
	matcher  *panel.Matcher
	calc     *forecast.Calculator
	panel    *panel.Panel
	baseYear int
	static   fasthttp.RequestHandler
	logger   *slog.Logger
}

type Options struct {
	Matcher   *panel.Matcher
	Calc      *forecast.Calculator
	Panel     *panel.Panel
	BaseYear  int
	StaticDir string
	Logger    *slog.Logger
}

func New(opts Options) *Handler {
	h := &Handler{
		matcher:  opts.Matcher,
		calc:     opts.Calc,
		panel:    opts.Panel,
		baseYear: opts.BaseYear,
		logger:   opts.Logger,
	}
	if h.baseYear == 0 {
		h.baseYear = forecast.DefaultBaseYear
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if opts.StaticDir != "" {
		if _, err := os.Stat(opts.StaticDir); err == nil {
			fs := &fasthttp.FS{
				Root:            opts.StaticDir,
				IndexNames:      []string{"index.html"},
				AcceptByteRange: true,
			}
			h.static = fs.NewRequestHandler()
		}
	}
	return h
}

// Handle is the root fasthttp request handler.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	setCORS(ctx)
	if ctx.IsOptions() {
		ctx.SetStatusCode(fasthttp.StatusNoContent)
		return
	}

	switch string(ctx.Path()) {
	case calculatePath:
		h.calculate(ctx)
	case forecastsPath:
		h.forecasts(ctx)
	case healthPath:
		h.health(ctx)
	default:
		h.root(ctx)
	}
}

func (h *Handler) calculate(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, model.CodeMethodNotAllowed, "Method not allowed")
		return
	}

	var req model.ForecastRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, model.CodeInvalidRequestBody, "Invalid request body: "+err.Error())
		return
	}

	if req.Age < model.MinimumAge {
		writeError(ctx, fasthttp.StatusBadRequest, model.CodeAgeBelowMinimum, "Age must be at least 16")
		return
	}

	household, err := h.matcher.Select(&req)
	if err != nil {
		h.writeFailure(ctx, err)
		return
	}

	situation, err := panel.Project(household, &req, h.baseYear)
	if err != nil {
		h.writeFailure(ctx, err)
		return
	}

	result, err := h.calc.Run(ctx, situation, req.CustomGrowthFactors)
	if err != nil {
		h.writeFailure(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (h *Handler) forecasts(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string][]string{"forecasts": forecast.Names()})
}

func (h *Handler) health(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]interface{}{
		"status":     "ok",
		"panel_rows": h.panel.Len(),
	})
}

func (h *Handler) root(ctx *fasthttp.RequestCtx) {
	if h.static != nil {
		h.static(ctx)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"message": placeholderMessage})
}

// writeFailure maps domain errors to the response taxonomy. Selection
// and projection failures are caller errors; engine failures are
// gateway-class; anything else is internal.
func (h *Handler) writeFailure(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, panel.ErrUnknownIncomeSource):
		writeError(ctx, fasthttp.StatusBadRequest, model.CodeUnknownIncomeSource, err.Error())
	case errors.Is(err, panel.ErrNoMatchingHousehold):
		writeError(ctx, fasthttp.StatusNotFound, model.CodeNoMatchingHousehold, "No representative household found for the given criteria")
	case errors.Is(err, panel.ErrInsufficientChildren):
		writeError(ctx, fasthttp.StatusUnprocessableEntity, model.CodeInsufficientChildren, "Sampled household has fewer children than requested")
	case errors.Is(err, simulation.ErrEngine):
		h.logger.Error("simulation engine failure", "error", err)
		writeError(ctx, fasthttp.StatusBadGateway, model.CodeEngineFailure, "Simulation engine failure")
	default:
		h.logger.Error("calculation failed", "error", err)
		writeError(ctx, fasthttp.StatusInternalServerError, model.CodeInternal, "Internal error")
	}
}

func setCORS(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	ctx.SetStatusCode(status)
	ctx.SetContentType(contentTypeJSON)
	body, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, code, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
}
