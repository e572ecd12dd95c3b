package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"goflare.io/merchant/customer"
	"goflare.io/merchant/models"
)

type CustomerHandler interface {
	CreateCustomer(c echo.Context) error
	GetCustomer(c echo.Context) error
	UpdateCustomer(c echo.Context) error
	DeleteCustomer(c echo.Context) error
	ListCustomers(c echo.Context) error
}

type customerHandler struct {
	service customer.Service
	logger  *zap.Logger
}

func NewCustomerHandler(service customer.Service, logger *zap.Logger) CustomerHandler {
	return &customerHandler{
		service: service,
		logger:  logger,
	}
}

func (ch *customerHandler) CreateCustomer(c echo.Context) error {
	var req models.Customer
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if req.Name == "" || req.Email == "" {
		return respondError(c, http.StatusBadRequest, "name and email are required")
	}

	if err := ch.service.Create(c.Request().Context(), &req); err != nil {
		ch.logger.Error("Failed to create customer", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to create customer")
	}

	return respond(c, http.StatusCreated, req, "Customer created")
}

func (ch *customerHandler) GetCustomer(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid customer id")
	}

	found, err := ch.service.GetByID(c.Request().Context(), id)
	if err != nil {
		ch.logger.Error("Failed to get customer", zap.Error(err), zap.Uint64("id", id))
		return respondError(c, http.StatusNotFound, "Customer not found")
	}

	return respond(c, http.StatusOK, found, "")
}

func (ch *customerHandler) UpdateCustomer(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid customer id")
	}

	var req models.Customer
	if err = c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	req.ID = id

	if err = ch.service.Update(c.Request().Context(), &req); err != nil {
		ch.logger.Error("Failed to update customer", zap.Error(err), zap.Uint64("id", id))
		return respondError(c, http.StatusInternalServerError, "Failed to update customer")
	}

	return respond(c, http.StatusOK, echo.Map{}, "Customer updated")
}

func (ch *customerHandler) DeleteCustomer(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid customer id")
	}

	if err = ch.service.Delete(c.Request().Context(), id); err != nil {
		ch.logger.Error("Failed to delete customer", zap.Error(err), zap.Uint64("id", id))
		return respondError(c, http.StatusInternalServerError, "Failed to delete customer")
	}

	return respond(c, http.StatusOK, echo.Map{}, "Customer deleted")
}

func (ch *customerHandler) ListCustomers(c echo.Context) error {
	limit, offset := listParams(c)

	customers, err := ch.service.List(c.Request().Context(), limit, offset)
	if err != nil {
		ch.logger.Error("Failed to list customers", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to list customers")
	}

	return respond(c, http.StatusOK, customers, "")
}
