package routes

import (
	"github.com/gin-gonic/gin"

	"greengoals/controllers"
)

// SetupAdminRoutes registers the endpoints behind the admin middleware.
func SetupAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/challenges", controllers.AdminGetChallenges)
	rg.POST("/challenges", controllers.AdminCreateChallenge)
	rg.PUT("/challenges/:id", controllers.AdminUpdateChallenge)
	rg.DELETE("/challenges/:id", controllers.AdminDeleteChallenge)

	rg.GET("/users", controllers.AdminGetUsers)
	rg.DELETE("/users/:id", controllers.AdminDeleteUser)

	rg.GET("/pending-evidence", controllers.GetPendingEvidence)
	rg.POST("/evidence/:id/approve", controllers.ApproveEvidence)
	rg.POST("/evidence/:id/reject", controllers.RejectEvidence)

	rg.POST("/teams/:id/members", controllers.AdminAddTeamMember)
	rg.DELETE("/teams/:id/members/:userId", controllers.AdminRemoveTeamMember)
	rg.DELETE("/teams/:id", controllers.AdminDeleteTeam)

	rg.GET("/database/raw", controllers.AdminGetRawDatabase)
}
