package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"greengoals/models"
	"greengoals/store"
	"greengoals/structs"
)

// AdminGetChallenges returns the catalog for the admin console.
func AdminGetChallenges(c *gin.Context) {
	GetChallenges(c)
}

// AdminCreateChallenge adds a challenge. Ids are max(existing)+1, so
// deleting the highest-id challenge frees its id for reuse.
func AdminCreateChallenge(c *gin.Context) {
	var request structs.CreateChallengeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	var challenge models.Challenge
	err := appStore.Update(func(db *store.Database) error {
		challenge = models.Challenge{
			ID:          db.NextChallengeID(),
			Name:        request.Name,
			Description: request.Description,
			Points:      request.Points,
			Category:    request.Category,
			Difficulty:  request.Difficulty,
			Duration:    request.Duration,
			CO2Saved:    request.CO2Saved,
		}
		db.Challenges = append(db.Challenges, challenge)
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Challenge created!", "challenge": challenge})
}

// AdminUpdateChallenge applies a partial edit. Edits do not rescore
// past completions or pending evidence snapshots.
func AdminUpdateChallenge(c *gin.Context) {
	challengeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var request structs.UpdateChallengeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	var challenge models.Challenge
	err := appStore.Update(func(db *store.Database) error {
		ch := db.Challenge(challengeID)
		if ch == nil {
			return notFoundError("Challenge not found")
		}
		if request.Name != nil {
			ch.Name = *request.Name
		}
		if request.Description != nil {
			ch.Description = *request.Description
		}
		if request.Points != nil {
			if *request.Points <= 0 {
				return validationError("Points must be positive")
			}
			ch.Points = *request.Points
		}
		if request.Category != nil {
			ch.Category = *request.Category
		}
		if request.Difficulty != nil {
			ch.Difficulty = *request.Difficulty
		}
		if request.Duration != nil {
			ch.Duration = *request.Duration
		}
		if request.CO2Saved != nil {
			if *request.CO2Saved < 0 {
				return validationError("CO2 saved cannot be negative")
			}
			ch.CO2Saved = *request.CO2Saved
		}
		challenge = *ch
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Challenge updated!", "challenge": challenge})
}

// AdminDeleteChallenge removes a challenge from the catalog.
func AdminDeleteChallenge(c *gin.Context) {
	challengeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := appStore.Update(func(db *store.Database) error {
		for i := range db.Challenges {
			if db.Challenges[i].ID == challengeID {
				db.Challenges = append(db.Challenges[:i], db.Challenges[i+1:]...)
				return nil
			}
		}
		return notFoundError("Challenge not found")
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Challenge deleted!"})
}

// AdminGetUsers lists all users with set sizes instead of raw id sets.
func AdminGetUsers(c *gin.Context) {
	users := []gin.H{}
	err := appStore.View(func(db *store.Database) error {
		for i := range db.Users {
			u := &db.Users[i]
			users = append(users, gin.H{
				"id":                  u.ID,
				"username":            u.Username,
				"email":               u.Email,
				"firstName":           u.FirstName,
				"lastName":            u.LastName,
				"classYear":           u.ClassYear,
				"points":              u.Points,
				"totalCO2Saved":       u.TotalCO2Saved,
				"activeChallenges":    len(u.ActiveChallenges),
				"completedChallenges": len(u.CompletedChallenges),
				"teamId":              u.TeamID,
				"role":                u.Role,
			})
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// AdminDeleteUser removes a non-admin user and detaches them from
// their team.
func AdminDeleteUser(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := appStore.Update(func(db *store.Database) error {
		return db.DeleteUser(userID)
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted!"})
}

// AdminAddTeamMember puts a user on a team with join bookkeeping.
func AdminAddTeamMember(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var request structs.TeamMemberRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	var team models.Team
	err := appStore.Update(func(db *store.Database) error {
		added, err := db.AddMember(teamID, request.UserID)
		if err != nil {
			return err
		}
		team = *added
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Member added to %s", team.Name), "team": team})
}

// AdminRemoveTeamMember removes a member with leave bookkeeping. The
// leader cannot be removed; delete the team instead.
func AdminRemoveTeamMember(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	var team models.Team
	err := appStore.Update(func(db *store.Database) error {
		removed, err := db.RemoveMember(teamID, userID)
		if err != nil {
			return err
		}
		team = *removed
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Member removed from %s", team.Name), "team": team})
}

// AdminDeleteTeam deletes a team, clearing every member's teamId while
// leaving their personal points untouched.
func AdminDeleteTeam(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}

	err := appStore.Update(func(db *store.Database) error {
		return db.DeleteTeam(teamID)
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team deleted!"})
}

// AdminGetRawDatabase dumps the whole document with passwords masked.
func AdminGetRawDatabase(c *gin.Context) {
	var response gin.H
	err := appStore.View(func(db *store.Database) error {
		users := make([]models.User, len(db.Users))
		copy(users, db.Users)
		for i := range users {
			users[i].Password = "[HIDDEN]"
		}
		response = gin.H{
			"users":           users,
			"challenges":      db.Challenges,
			"teams":           db.Teams,
			"pendingEvidence": db.PendingEvidence,
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
