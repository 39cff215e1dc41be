package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iyhunko/inventory-tracker/internal/http/controller"
	"github.com/iyhunko/inventory-tracker/internal/http/middleware"
	"github.com/iyhunko/inventory-tracker/internal/service"
)

// InitRouter wires middleware and routes onto the gin engine.
func InitRouter(server *gin.Engine, identity *service.IdentityService, ctr *controller.Controller, authCtr *controller.AuthController, productCtr *controller.ProductController) *gin.Engine {
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())

	server.GET("/ping", ctr.Ping)

	// Auth endpoints
	auth := server.Group("/auth")
	{
		auth.POST("/register", authCtr.Register)
		auth.POST("/login", authCtr.Login)
	}

	// Product endpoints, all behind bearer authentication
	products := server.Group("/products")
	products.Use(middleware.RequireAuth(identity))
	{
		products.POST("", productCtr.CreateProduct)
		products.GET("", productCtr.ListProducts)
		products.GET("/:id", productCtr.GetProduct)
		products.PATCH("/:id", productCtr.UpdateStock)
		products.DELETE("/:id", productCtr.DeleteProduct)
	}

	return server
}
