package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	CheckoutHandler *CheckoutHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.GET("/users", d.CheckoutHandler.ListUsers)
	v1.POST("/users", d.CheckoutHandler.RegisterUser)
	v1.GET("/users/:id", d.CheckoutHandler.GetUser)
	v1.GET("/users/:id/obligations", d.CheckoutHandler.UserObligations)

	cart := v1.Group("/cart")
	cart.GET("", d.CheckoutHandler.GetCartLines)
	cart.GET("/total", d.CheckoutHandler.GetCartTotal)
	cart.POST("/items", d.CheckoutHandler.AddItem)
	cart.DELETE("/items", d.CheckoutHandler.RemoveItem)
	cart.POST("/purchase", d.CheckoutHandler.Purchase)

	v1.GET("/carts/:id", d.CheckoutHandler.GetCart)
	v1.GET("/carts/:id/lines", d.CheckoutHandler.GetCartLinesByID)

	v1.GET("/receipts", d.CheckoutHandler.ListReceipts)
	v1.POST("/receipts/:id/payments", d.CheckoutHandler.PayObligation)
}
