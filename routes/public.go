package routes

import (
	"github.com/gin-gonic/gin"

	"greengoals/controllers"
)

// SetupPublicRoutes registers the unauthenticated read-side endpoints.
func SetupPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", controllers.GetUsers)
	rg.GET("/users/:id", controllers.GetUser)
	rg.GET("/challenges", controllers.GetChallenges)
	rg.GET("/teams", controllers.GetTeams)
	rg.GET("/leaderboard", controllers.GetLeaderboard)
	rg.GET("/leaderboard/teams", controllers.GetTeamLeaderboard)
	rg.GET("/stats", controllers.GetStats)
}
