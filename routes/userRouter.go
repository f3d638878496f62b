package routes

import (
	"go-milk-delivery/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes are the public endpoints, registered before the
// authentication middleware is installed.
func AuthRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/api/auth/register", controllers.SignUp())
	incomingRoutes.POST("/api/auth/login", controllers.Login())
	incomingRoutes.GET("/ws", controllers.HandleWebSocket())
}

func UserRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/api/user/profile", controllers.GetProfile())
	incomingRoutes.PUT("/api/user/profile", controllers.UpdateProfile())
}
