package routes

import (
	"github.com/gin-gonic/gin"

	"greengoals/controllers"
)

// SetupAuthRoutes registers the public authentication endpoints.
func SetupAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", controllers.Register)
	rg.POST("/login", controllers.Login)
	rg.POST("/admin/login", controllers.AdminLogin)
}
