package routes

import (
	"go-milk-delivery/controllers"

	"github.com/gin-gonic/gin"
)

// ProductRoutes exposes the public catalog. Admin product CRUD lives under
// /api/admin/products (see AdminRoutes).
func ProductRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/api/products", controllers.GetProducts())
}
