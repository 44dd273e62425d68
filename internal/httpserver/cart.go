package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/splitcart/splitcart/internal/events"
	"github.com/splitcart/splitcart/internal/logging"
	"github.com/splitcart/splitcart/internal/transport"
)

func (h *CheckoutHTTP) GetCartLines(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart.lines")

	lines, err := h.Svc.ActiveLines(ctx)
	if err != nil {
		return fail(c, l, "get_cart_lines_error", err)
	}
	return c.JSON(http.StatusOK, lines)
}

func (h *CheckoutHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.item")

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}
	if req.UserID == 0 || req.ProductID == "" {
		l.Warn("add_item_error", "status", 400)
		return badRequest(c, "user_id and product_id required")
	}
	if req.UnitPrice.IsNegative() {
		l.Warn("add_item_error", "status", 400)
		return badRequest(c, "unit_price must not be negative")
	}

	line, err := h.Svc.AddItem(ctx, req.UserID, req.ProductID, req.Description, req.UnitPrice)
	if err != nil {
		return fail(c, l, "add_item_error", err)
	}

	h.publish(c, l, events.TopicCart, fmt.Sprint(req.UserID), map[string]any{
		"type":       "line_added",
		"user_id":    req.UserID,
		"cart_id":    line.CartID,
		"product_id": line.ProductID,
		"quantity":   line.Quantity,
	})

	l.Info("item added", "cart_id", line.CartID, "product_id", line.ProductID, "quantity", line.Quantity)
	return c.JSON(http.StatusCreated, line)
}

func (h *CheckoutHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.item")

	var req transport.RemoveItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_item_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}
	if req.UserID == 0 || req.ProductID == "" {
		l.Warn("remove_item_error", "status", 400)
		return badRequest(c, "user_id and product_id required")
	}

	remaining, err := h.Svc.RemoveItem(ctx, req.UserID, req.ProductID)
	if err != nil {
		return fail(c, l, "remove_item_error", err)
	}

	h.publish(c, l, events.TopicCart, fmt.Sprint(req.UserID), map[string]any{
		"type":       "line_removed",
		"user_id":    req.UserID,
		"product_id": req.ProductID,
		"remaining":  len(remaining),
	})

	return c.JSON(http.StatusOK, remaining)
}

func (h *CheckoutHTTP) GetCartTotal(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart.total")

	cart, err := h.Svc.ActiveCart(ctx)
	if err != nil {
		return fail(c, l, "get_cart_total_error", err)
	}
	return c.JSON(http.StatusOK, transport.CartTotalResponse{CartID: cart.ID, Total: cart.Total})
}

func (h *CheckoutHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return badRequest(c, "invalid cart id")
	}

	cart, err := h.Svc.CartByID(ctx, uint(id))
	if err != nil {
		return fail(c, l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CheckoutHTTP) GetCartLinesByID(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart.lines.by.id")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return badRequest(c, "invalid cart id")
	}

	lines, err := h.Svc.LinesByCart(ctx, uint(id))
	if err != nil {
		return fail(c, l, "get_cart_lines_by_id_error", err)
	}
	return c.JSON(http.StatusOK, lines)
}
