package routes

import (
	"go-milk-delivery/controllers"
	"go-milk-delivery/middleware"

	"github.com/gin-gonic/gin"
)

func InventoryRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/api/inventory", middleware.AdminOnly(), controllers.GetInventories())
	incomingRoutes.GET("/api/inventory/warnings/:date", middleware.AdminOnly(), controllers.GetInventoryWarnings())
	incomingRoutes.GET("/api/inventory/:date", middleware.AdminOnly(), controllers.GetInventory())
	incomingRoutes.POST("/api/inventory", middleware.AdminOnly(), controllers.CreateInventory())
	incomingRoutes.PUT("/api/inventory/:date", middleware.AdminOnly(), controllers.UpdateInventory())
}
