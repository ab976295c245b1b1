package routes

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type DefaultHealthRoute struct {
	DB Pinger
}

func NewHealthDefault(db Pinger) *DefaultHealthRoute {
	return &DefaultHealthRoute{DB: db}
}

func (h *DefaultHealthRoute) Health(c echo.Context) error {
	if err := h.DB.PingContext(c.Request().Context()); err != nil {
		log.Errorf("health check failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
