package handler

import (
	"net/http"

	"marketplace-api/internal/dto"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CartHandler is a stateless stub: the cart lives on the client, the server
// just echoes the supplied data back. Nothing is persisted.
type CartHandler struct{}

func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

func (h *CartHandler) Get(c echo.Context) error {
	return respond(c, http.StatusOK, "cart retrieved successfully", dto.Cart{
		Items: []dto.CartItem{},
		Total: decimal.Zero,
	})
}

func (h *CartHandler) Add(c echo.Context) error {
	var item dto.CartItem
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	return respond(c, http.StatusOK, "item added to cart successfully", dto.Cart{
		Items: []dto.CartItem{item},
		Total: item.Price,
	})
}

func (h *CartHandler) Update(c echo.Context) error {
	var item dto.CartItem
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	return respond(c, http.StatusOK, "cart item updated successfully", dto.Cart{
		Items: []dto.CartItem{item},
		Total: item.Price,
	})
}

func (h *CartHandler) Remove(c echo.Context) error {
	return respond(c, http.StatusOK, "item removed from cart successfully", dto.Cart{
		Items: []dto.CartItem{},
		Total: decimal.Zero,
	})
}
