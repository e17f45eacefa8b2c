package router

import (
	"shopgram/internal/adapter/api/handler"
	"shopgram/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()

	products := e.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)

	mutations := e.Group("/products")
	mutations.Use(middleware.GeneralRateLimit())
	mutations.Use(authMiddleware.Authenticate)
	mutations.POST("", productHandler.CreateProduct)
	mutations.PUT("/:id", productHandler.UpdateProduct)
	mutations.DELETE("/:id", productHandler.DeleteProduct)

	social := e.Group("/products")
	social.Use(middleware.SocialRateLimit())
	social.Use(authMiddleware.Authenticate)
	social.PUT("/like/:id", productHandler.LikeProduct)
	social.PUT("/unlike/:id", productHandler.UnlikeProduct)
	social.PUT("/comment/:id", productHandler.CommentProduct)
	social.DELETE("/comment/:id/:commentId", productHandler.UncommentProduct)
}
