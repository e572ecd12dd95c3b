package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"goflare.io/merchant/discount"
	"goflare.io/merchant/models"
)

type DiscountHandler interface {
	CreateDiscount(c echo.Context) error
	GetDiscount(c echo.Context) error
	UpdateDiscount(c echo.Context) error
	DeleteDiscount(c echo.Context) error
	ListDiscounts(c echo.Context) error
}

type discountHandler struct {
	service discount.Service
	logger  *zap.Logger
}

func NewDiscountHandler(service discount.Service, logger *zap.Logger) DiscountHandler {
	return &discountHandler{
		service: service,
		logger:  logger,
	}
}

func (dh *discountHandler) CreateDiscount(c echo.Context) error {
	var req models.Discount
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}

	if err := dh.service.Create(c.Request().Context(), &req); err != nil {
		if isDiscountValidation(err) {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		dh.logger.Error("Failed to create discount", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to create discount")
	}

	return respond(c, http.StatusCreated, req, "Discount created")
}

func (dh *discountHandler) GetDiscount(c echo.Context) error {
	code := c.Param("code")

	found, err := dh.service.GetByCode(c.Request().Context(), code)
	if err != nil {
		dh.logger.Error("Failed to get discount", zap.Error(err), zap.String("code", code))
		return respondError(c, http.StatusNotFound, "Discount not found")
	}

	return respond(c, http.StatusOK, found, "")
}

func (dh *discountHandler) UpdateDiscount(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid discount id")
	}

	var req models.PartialDiscount
	if err = c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	req.ID = id

	if err = dh.service.Update(c.Request().Context(), &req); err != nil {
		if isDiscountValidation(err) {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		dh.logger.Error("Failed to update discount", zap.Error(err), zap.Uint64("id", id))
		return respondError(c, http.StatusInternalServerError, "Failed to update discount")
	}

	return respond(c, http.StatusOK, echo.Map{}, "Discount updated")
}

func (dh *discountHandler) DeleteDiscount(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid discount id")
	}

	if err = dh.service.Delete(c.Request().Context(), id); err != nil {
		dh.logger.Error("Failed to delete discount", zap.Error(err), zap.Uint64("id", id))
		return respondError(c, http.StatusInternalServerError, "Failed to delete discount")
	}

	return respond(c, http.StatusOK, echo.Map{}, "Discount deleted")
}

func (dh *discountHandler) ListDiscounts(c echo.Context) error {
	limit, offset := listParams(c)

	discounts, err := dh.service.List(c.Request().Context(), limit, offset)
	if err != nil {
		dh.logger.Error("Failed to list discounts", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to list discounts")
	}

	return respond(c, http.StatusOK, discounts, "")
}

func isDiscountValidation(err error) bool {
	return errors.Is(err, discount.ErrCodeRequired) ||
		errors.Is(err, discount.ErrInvalidType) ||
		errors.Is(err, discount.ErrInvalidValue)
}
