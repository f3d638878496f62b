package routes

import (
	"go-milk-delivery/controllers"

	"github.com/gin-gonic/gin"
)

func MobileOrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/api/mobile-orders/place", controllers.PlaceMobileOrder())
	incomingRoutes.GET("/api/mobile-orders", controllers.GetMobileOrders())
}
