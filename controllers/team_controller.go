package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"greengoals/models"
	"greengoals/store"
	"greengoals/structs"
)

type teamView struct {
	models.Team
	MemberCount int `json:"memberCount"`
}

// GetTeams lists all teams with their member counts.
func GetTeams(c *gin.Context) {
	teams := []teamView{}
	err := appStore.View(func(db *store.Database) error {
		for _, t := range db.Teams {
			teams = append(teams, teamView{Team: t, MemberCount: len(t.Members)})
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// CreateTeam makes the caller leader and sole member of a new team.
func CreateTeam(c *gin.Context) {
	var request structs.CreateTeamRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}
	userID := currentUserID(c)

	var team models.Team
	err := appStore.Update(func(db *store.Database) error {
		created, err := db.CreateTeam(userID, request.Name, request.Description)
		if err != nil {
			return err
		}
		team = *created
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team created!", "team": team})
}

// JoinTeam adds the caller to the team, transferring their current
// points into the team total.
func JoinTeam(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID := currentUserID(c)

	var team models.Team
	err := appStore.Update(func(db *store.Database) error {
		joined, err := db.JoinTeam(userID, teamID)
		if err != nil {
			return err
		}
		team = *joined
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Joined team: %s!", team.Name), "team": team})
}

// LeaveTeam removes the caller from their team, subtracting their
// points from the team total.
func LeaveTeam(c *gin.Context) {
	userID := currentUserID(c)

	err := appStore.Update(func(db *store.Database) error {
		_, err := db.LeaveTeam(userID)
		return err
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left team successfully"})
}
