package routes

import (
	"go-milk-delivery/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/api/orders/place", controllers.PlaceOrder())
	incomingRoutes.GET("/api/orders/ongoing", controllers.GetOngoingOrders())
	incomingRoutes.GET("/api/orders/history", controllers.GetOrderHistory())
	incomingRoutes.PUT("/api/orders/:order_id", controllers.UpdateOrder())
	incomingRoutes.DELETE("/api/orders/:order_id", controllers.CancelOrder())
}
