package handler

import (
	"net/http"

	"marketplace-api/internal/apperr"
	"marketplace-api/internal/dto"
	"marketplace-api/internal/middleware"
	"marketplace-api/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) GetAll(c echo.Context) error {
	ctx := c.Request().Context()
	requester := middleware.CurrentUser(c)

	orders, err := h.orderService.List(ctx, requester)
	if err != nil {
		return respondError(c, err, "failed to retrieve orders")
	}

	return respondList(c, "orders retrieved successfully", orders, len(orders))
}

func (h *OrderHandler) GetByStatus(c echo.Context) error {
	ctx := c.Request().Context()
	requester := middleware.CurrentUser(c)
	status := c.Param("status")

	orders, err := h.orderService.ListByStatus(ctx, status, requester)
	if err != nil {
		return respondError(c, err, "failed to retrieve orders")
	}

	return respondList(c, "orders with status '"+status+"' retrieved successfully", orders, len(orders))
}

func (h *OrderHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()
	requester := middleware.CurrentUser(c)

	orderID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "failed to retrieve order")
	}

	order, err := h.orderService.GetByID(ctx, orderID, requester)
	if err != nil {
		return respondError(c, err, "failed to retrieve order")
	}

	return respond(c, http.StatusOK, "order retrieved successfully", order)
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	requester := middleware.CurrentUser(c)

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.Create(ctx, requester.ID, req)
	if err != nil {
		return respondError(c, err, "failed to create order")
	}

	return respond(c, http.StatusCreated, "order created successfully", order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "failed to update order status")
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		return respondError(c, err, "failed to update order status")
	}

	return respond(c, http.StatusOK, "order status updated successfully", order)
}

func (h *OrderHandler) UpdatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "failed to update payment information")
	}

	var req dto.UpdatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.UpdatePayment(ctx, orderID, req)
	if err != nil {
		return respondError(c, err, "failed to update payment information")
	}

	return respond(c, http.StatusOK, "payment information updated successfully", order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err, "failed to delete order")
	}

	deleted, err := h.orderService.Delete(ctx, orderID)
	if err != nil {
		return respondError(c, err, "failed to delete order")
	}
	if !deleted {
		return respondError(c, apperr.NotFound("order not found"), "failed to delete order")
	}

	return respond(c, http.StatusOK, "order deleted successfully", nil)
}
