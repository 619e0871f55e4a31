package api

import (
	"io"

	"github.com/labstack/echo/v4"

	"CashCast/internal/domain/models"
	"CashCast/internal/service/ratelimit"
	"CashCast/internal/usecase"
	xhttp "CashCast/pkg/http"
	"CashCast/pkg/logger"
)

// RateLimitConfig carries the predict endpoint's token-bucket parameters.
type RateLimitConfig struct {
	Enabled      bool
	Capacity     float64
	RefillPerSec float64
}

// ForecastEchoHandler exposes the forecast pipeline over HTTP.
type ForecastEchoHandler struct {
	log      *logger.Logger
	pipeline *usecase.ForecastPipeline
	limiter  *ratelimit.Limiter
	rl       RateLimitConfig
}

// NewForecastEchoHandler creates the HTTP handler.
func NewForecastEchoHandler(log *logger.Logger, pipeline *usecase.ForecastPipeline, rl RateLimitConfig) *ForecastEchoHandler {
	return &ForecastEchoHandler{
		log:      log,
		pipeline: pipeline,
		limiter:  ratelimit.New(),
		rl:       rl,
	}
}

// RegisterRoutes wires the handler's routes onto the Echo instance.
func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.POST("/predict", h.Predict)
}

// Root is a liveness probe.
func (h *ForecastEchoHandler) Root(c echo.Context) error {
	return c.JSON(200, map[string]string{"message": "cashcast backend running"})
}

type predictRequest struct {
	Months int `form:"months" default:"3" validate:"gte=1,lte=12"`
}

// Predict accepts a multipart CSV upload and returns the forecast report.
func (h *ForecastEchoHandler) Predict(c echo.Context) error {
	if h.rl.Enabled && !h.limiter.Allow(c.RealIP(), h.rl.Capacity, h.rl.RefillPerSec) {
		return xhttp.TooManyRequestsResponse(c, "too many requests")
	}

	req := new(predictRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, xhttp.JoinValidationErrors(errs))
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return xhttp.BadRequestResponse(c, "no file uploaded")
	}
	f, err := fh.Open()
	if err != nil {
		return xhttp.BadRequestResponse(c, "unreadable file upload")
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return xhttp.BadRequestResponse(c, "unreadable file upload")
	}

	reportOut, err := h.pipeline.Run(c.Request().Context(), raw, req.Months)
	if err != nil {
		h.log.Warn("forecast request failed",
			logger.Int("months", req.Months),
			logger.Error(err))
		switch {
		case models.IsValidation(err):
			return xhttp.BadRequestResponse(c, err.Error())
		case models.IsForecast(err):
			return xhttp.UnprocessableResponse(c, err.Error())
		default:
			return xhttp.InternalErrorResponse(c, err.Error())
		}
	}

	return xhttp.OKResponse(c, reportOut)
}
