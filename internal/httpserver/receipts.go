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

func (h *CheckoutHTTP) Purchase(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "purchase")

	receipt, err := h.Svc.Purchase(ctx)
	if err != nil {
		return fail(c, l, "purchase_error", err)
	}

	h.publish(c, l, events.TopicReceipt, fmt.Sprint(receipt.ID), map[string]any{
		"type":       "cart_purchased",
		"receipt_id": receipt.ID,
		"cart_id":    receipt.CartID,
		"total":      receipt.Total,
	})

	l.Info("cart purchased", "receipt_id", receipt.ID, "cart_id", receipt.CartID)
	return c.JSON(http.StatusCreated, receipt)
}

func (h *CheckoutHTTP) ListReceipts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.receipts")

	receipts, err := h.Svc.ListReceipts(ctx)
	if err != nil {
		return fail(c, l, "list_receipts_error", err)
	}
	return c.JSON(http.StatusOK, receipts)
}

func (h *CheckoutHTTP) PayObligation(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "pay.obligation")

	receiptID, err := strconv.Atoi(c.Param("id"))
	if err != nil || receiptID <= 0 {
		return badRequest(c, "invalid receipt id")
	}

	var req transport.PayRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("pay_obligation_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}
	if req.UserID == 0 {
		l.Warn("pay_obligation_error", "status", 400)
		return badRequest(c, "user_id required")
	}

	ob, err := h.Svc.Pay(ctx, req.UserID, uint(receiptID))
	if err != nil {
		return fail(c, l, "pay_obligation_error", err)
	}

	h.publish(c, l, events.TopicReceipt, fmt.Sprint(receiptID), map[string]any{
		"type":       "obligation_paid",
		"receipt_id": receiptID,
		"user_id":    req.UserID,
		"amount":     ob.Amount,
	})

	return c.JSON(http.StatusOK, ob)
}
