package routes

import (
	"go-milk-delivery/controllers"
	"go-milk-delivery/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(incomingRoutes *gin.Engine) {
	admin := incomingRoutes.Group("/api/admin", middleware.AdminOnly())

	admin.GET("/dashboard", controllers.GetDashboard())
	admin.GET("/orders", controllers.GetAdminOrders())
	admin.PATCH("/orders/:order_id/status", controllers.UpdateOrderStatus())
	admin.GET("/mobile-orders", controllers.GetAdminMobileOrders())
	admin.PATCH("/mobile-orders/:mobile_order_id/status", controllers.UpdateMobileOrderStatus())
	admin.GET("/users", controllers.GetAdminUsers())
	admin.GET("/deliveries/csv", controllers.ExportDeliveriesCSV())

	admin.GET("/products", controllers.GetAllProducts())
	admin.POST("/products", controllers.CreateProduct())
	admin.PUT("/products/:product_id", controllers.UpdateProduct())
	admin.DELETE("/products/:product_id", controllers.DeleteProduct())
}
