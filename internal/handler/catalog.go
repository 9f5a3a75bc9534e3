package handler

import (
	"net/http"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// -------- products --------

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var query dto.ProductListQuery
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.catalogService.ListProducts(ctx, query)
	if err != nil {
		return respondError(c, err, "failed to retrieve products")
	}

	return respondList(c, "products retrieved successfully", page, len(page.Products))
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "failed to retrieve product")
	}

	product, err := h.catalogService.GetProduct(ctx, productID)
	if err != nil {
		return respondError(c, err, "failed to retrieve product")
	}

	return respond(c, http.StatusOK, "product retrieved successfully", product)
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.catalogService.CreateProduct(ctx, req)
	if err != nil {
		return respondError(c, err, "failed to create product")
	}

	return respond(c, http.StatusCreated, "product created successfully", product)
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "failed to update product")
	}

	var req dto.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.catalogService.UpdateProduct(ctx, productID, req)
	if err != nil {
		return respondError(c, err, "failed to update product")
	}

	return respond(c, http.StatusOK, "product updated successfully", product)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "failed to delete product")
	}

	if err := h.catalogService.DeleteProduct(ctx, productID); err != nil {
		return respondError(c, err, "failed to delete product")
	}

	return respond(c, http.StatusOK, "product deleted successfully", nil)
}

// -------- categories --------

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var query dto.CategoryListQuery
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.catalogService.ListCategories(ctx, query)
	if err != nil {
		return respondError(c, err, "failed to retrieve categories")
	}

	return respondList(c, "categories retrieved successfully", page, len(page.Categories))
}

func (h *CatalogHandler) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "failed to retrieve category")
	}

	category, err := h.catalogService.GetCategory(ctx, categoryID)
	if err != nil {
		return respondError(c, err, "failed to retrieve category")
	}

	return respond(c, http.StatusOK, "category retrieved successfully", category)
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	category, err := h.catalogService.CreateCategory(ctx, req)
	if err != nil {
		return respondError(c, err, "failed to create category")
	}

	return respond(c, http.StatusCreated, "category created successfully", category)
}

func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "failed to update category")
	}

	var req dto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	category, err := h.catalogService.UpdateCategory(ctx, categoryID, req)
	if err != nil {
		return respondError(c, err, "failed to update category")
	}

	return respond(c, http.StatusOK, "category updated successfully", category)
}

func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "failed to delete category")
	}

	if err := h.catalogService.DeleteCategory(ctx, categoryID); err != nil {
		return respondError(c, err, "failed to delete category")
	}

	return respond(c, http.StatusOK, "category deleted successfully", nil)
}
