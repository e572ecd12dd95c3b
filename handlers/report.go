package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"goflare.io/merchant/report"
)

type ReportHandler interface {
	SalesSummary(c echo.Context) error
}

type reportHandler struct {
	service report.Service
	logger  *zap.Logger
}

func NewReportHandler(service report.Service, logger *zap.Logger) ReportHandler {
	return &reportHandler{
		service: service,
		logger:  logger,
	}
}

func (rh *reportHandler) SalesSummary(c echo.Context) error {
	summary, err := rh.service.SalesSummary(c.Request().Context())
	if err != nil {
		rh.logger.Error("Failed to build sales summary", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to build sales summary")
	}

	return respond(c, http.StatusOK, summary, "")
}
