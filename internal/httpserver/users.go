package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/splitcart/splitcart/internal/logging"
	"github.com/splitcart/splitcart/internal/transport"
)

func (h *CheckoutHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.users")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return fail(c, l, "list_users_error", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *CheckoutHTTP) RegisterUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "register.user")

	var req transport.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_user_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}
	if req.Name == "" || req.SID == "" {
		l.Warn("register_user_error", "status", 400)
		return badRequest(c, "name and sid required")
	}

	user, err := h.Svc.RegisterUser(ctx, req.Name, req.SID)
	if err != nil {
		return fail(c, l, "register_user_error", err)
	}

	l.Info("user registered", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *CheckoutHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.user")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return badRequest(c, "invalid user id")
	}

	user, err := h.Svc.GetUser(ctx, uint(id))
	if err != nil {
		return fail(c, l, "get_user_error", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *CheckoutHTTP) UserObligations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.obligations")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return badRequest(c, "invalid user id")
	}

	obs, err := h.Svc.UserObligations(ctx, uint(id))
	if err != nil {
		return fail(c, l, "user_obligations_error", err)
	}
	return c.JSON(http.StatusOK, obs)
}
