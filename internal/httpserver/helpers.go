package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/splitcart/splitcart/internal/events"
	"github.com/splitcart/splitcart/internal/service"
	"github.com/splitcart/splitcart/internal/transport"
)

// CheckoutHTTP translates requests into engine calls and serializes the
// results. Validation of required fields happens here, never in the engine.
type CheckoutHTTP struct {
	Svc      *service.Service
	Producer events.Publisher
}

// publish emits a domain event best-effort: a broker hiccup is logged, never
// surfaced to the client.
func (h *CheckoutHTTP) publish(c echo.Context, l *slog.Logger, topic, key string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		l.Error("event publish failed", "topic", topic, "error", err)
	}
}

// fail maps engine errors onto HTTP statuses.
func fail(c echo.Context, l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNoActiveCart),
		errors.Is(err, service.ErrCartNotFound),
		errors.Is(err, service.ErrLineNotFound),
		errors.Is(err, service.ErrObligationNotFound):
		l.Warn(op, "status", http.StatusNotFound, "error", err)
		return c.JSON(http.StatusNotFound, transport.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNameExists),
		errors.Is(err, service.ErrEmptyCart):
		l.Warn(op, "status", http.StatusConflict, "error", err)
		return c.JSON(http.StatusConflict, transport.ErrorResponse{Error: err.Error()})
	default:
		l.Error(op, "status", http.StatusInternalServerError, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: "internal error"})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: msg})
}
