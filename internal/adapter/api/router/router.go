package router

import (
	"shopgram/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupProductRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
