package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"goflare.io/merchant/models"
	"goflare.io/merchant/pricing"
	"goflare.io/merchant/product"
)

type ProductHandler interface {
	CreateProduct(c echo.Context) error
	GetProduct(c echo.Context) error
	UpdateProduct(c echo.Context) error
	DeleteProduct(c echo.Context) error
	ListProducts(c echo.Context) error
}

type productHandler struct {
	service product.Service
	logger  *zap.Logger
}

func NewProductHandler(service product.Service, logger *zap.Logger) ProductHandler {
	return &productHandler{
		service: service,
		logger:  logger,
	}
}

// productView shapes a product for the dashboard: derived prices are rounded
// to two decimal places at this boundary only.
type productView struct {
	*models.Product
	PriceWithMargin string `json:"price_with_margin"`
	FinalPrice      string `json:"final_price"`
}

func viewProduct(p *models.Product) productView {
	return productView{
		Product:         p,
		PriceWithMargin: p.PriceWithMargin.StringFixed(2),
		FinalPrice:      p.FinalPrice.StringFixed(2),
	}
}

func viewProducts(products []*models.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, viewProduct(p))
	}
	return views
}

func (ph *productHandler) CreateProduct(c echo.Context) error {
	var req models.Product
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	if len(req.Name) < 2 {
		return respondError(c, http.StatusBadRequest, "product name must be at least 2 characters long")
	}

	if err := ph.service.Create(c.Request().Context(), &req); err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			return respondError(c, http.StatusBadRequest, "cost basis, profit margin, and tax percentages must not be negative")
		}
		ph.logger.Error("Failed to create product", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to create product")
	}

	return respond(c, http.StatusCreated, viewProduct(&req), "Product created")
}

func (ph *productHandler) GetProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid product id")
	}

	found, err := ph.service.GetByID(c.Request().Context(), id)
	if err != nil {
		ph.logger.Error("Failed to get product", zap.Error(err), zap.Uint64("id", id))
		return respondError(c, http.StatusNotFound, "Product not found")
	}

	return respond(c, http.StatusOK, viewProduct(found), "")
}

func (ph *productHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid product id")
	}

	var req models.PartialProduct
	if err = c.Bind(&req); err != nil {
		ph.logger.Error("Failed to bind product request", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "Invalid request payload")
	}
	req.ID = id

	if err = ph.service.Update(c.Request().Context(), &req); err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			return respondError(c, http.StatusBadRequest, "cost basis, profit margin, and tax percentages must not be negative")
		}
		ph.logger.Error("Failed to update product", zap.Error(err), zap.Uint64("id", id))
		return respondError(c, http.StatusInternalServerError, "Failed to update product")
	}

	return respond(c, http.StatusOK, echo.Map{}, "Product updated")
}

func (ph *productHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid product id")
	}

	if err = ph.service.Delete(c.Request().Context(), id); err != nil {
		ph.logger.Error("Failed to delete product", zap.Error(err), zap.Uint64("id", id))
		return respondError(c, http.StatusInternalServerError, "Failed to delete product")
	}

	return respond(c, http.StatusOK, echo.Map{}, "Product deleted")
}

func (ph *productHandler) ListProducts(c echo.Context) error {
	limit, offset := listParams(c)

	products, err := ph.service.List(c.Request().Context(), limit, offset)
	if err != nil {
		ph.logger.Error("Failed to list products", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Failed to list products")
	}

	return respond(c, http.StatusOK, viewProducts(products), "")
}

func listParams(c echo.Context) (limit, offset uint64) {
	limit = 50
	if v, err := strconv.ParseUint(c.QueryParam("limit"), 10, 64); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.ParseUint(c.QueryParam("offset"), 10, 64); err == nil {
		offset = v
	}
	return limit, offset
}
