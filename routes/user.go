package routes

import (
	"github.com/gin-gonic/gin"

	"greengoals/controllers"
)

// SetupUserRoutes registers the endpoints behind the auth middleware.
func SetupUserRoutes(rg *gin.RouterGroup) {
	rg.PUT("/user/profile", controllers.UpdateProfile)
	rg.GET("/user/challenges", controllers.GetUserChallenges)

	rg.POST("/challenges/:id/accept", controllers.AcceptChallenge)
	rg.POST("/challenges/:id/complete", controllers.CompleteChallenge)
	rg.POST("/challenges/:id/submit-evidence", controllers.SubmitEvidence)

	rg.POST("/teams", controllers.CreateTeam)
	rg.POST("/teams/:id/join", controllers.JoinTeam)
	rg.POST("/teams/leave", controllers.LeaveTeam)
}
