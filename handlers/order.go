package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"goflare.io/merchant/models"
	"goflare.io/merchant/models/enum"
	"goflare.io/merchant/order"
)

type OrderHandler interface {
	CreateOrder(c echo.Context) error
	GetOrder(c echo.Context) error
	UpdateOrderStatus(c echo.Context) error
	ListOrders(c echo.Context) error
}

type orderHandler struct {
	service order.Service
	logger  *zap.Logger
}

func NewOrderHandler(service order.Service, logger *zap.Logger) OrderHandler {
	return &orderHandler{
		service: service,
		logger:  logger,
	}
}

func (oh *orderHandler) CreateOrder(c echo.Context) error {
	var req models.Order
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if req.CustomerID == 0 {
		return respondError(c, http.StatusBadRequest, "customer_id is required")
	}

	if err := oh.service.Create(c.Request().Context(), &req); err != nil {
		if errors.Is(err, order.ErrInvalidStatus) {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		oh.logger.Error("Failed to create order", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to create order")
	}

	return respond(c, http.StatusCreated, req, "Order created")
}

func (oh *orderHandler) GetOrder(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid order id")
	}

	found, err := oh.service.GetByID(c.Request().Context(), id)
	if err != nil {
		oh.logger.Error("Failed to get order", zap.Error(err), zap.Uint64("id", id))
		return respondError(c, http.StatusNotFound, "Order not found")
	}

	return respond(c, http.StatusOK, found, "")
}

func (oh *orderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid order id")
	}

	var req struct {
		Status enum.OrderStatus `json:"status"`
	}
	if err = c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}

	if err = oh.service.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, order.ErrInvalidStatus) {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		oh.logger.Error("Failed to update order status", zap.Error(err), zap.Uint64("id", id))
		return respondError(c, http.StatusInternalServerError, "Failed to update order status")
	}

	return respond(c, http.StatusOK, echo.Map{}, "Order updated")
}

func (oh *orderHandler) ListOrders(c echo.Context) error {
	limit, offset := listParams(c)
	status := enum.OrderStatus(c.QueryParam("status"))

	orders, err := oh.service.List(c.Request().Context(), limit, offset, status)
	if err != nil {
		if errors.Is(err, order.ErrInvalidStatus) {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		oh.logger.Error("Failed to list orders", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to list orders")
	}

	return respond(c, http.StatusOK, orders, "")
}
