package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"greengoals/models"
	"greengoals/store"
	"greengoals/structs"
)

// GetUsers lists all users without credentials.
func GetUsers(c *gin.Context) {
	users := []models.PublicUser{}
	err := appStore.View(func(db *store.Database) error {
		for i := range db.Users {
			users = append(users, db.Users[i].Public())
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns one user with their challenge id sets resolved to
// full challenge documents.
func GetUser(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var response gin.H
	err := appStore.View(func(db *store.Database) error {
		user := db.User(userID)
		if user == nil {
			return notFoundError("User not found")
		}

		active := []models.Challenge{}
		for _, id := range user.ActiveChallenges {
			if ch := db.Challenge(id); ch != nil {
				active = append(active, *ch)
			}
		}
		completed := []models.Challenge{}
		for _, id := range user.CompletedChallenges {
			if ch := db.Challenge(id); ch != nil {
				completed = append(completed, *ch)
			}
		}

		response = gin.H{
			"id":                  user.ID,
			"username":            user.Username,
			"email":               user.Email,
			"firstName":           user.FirstName,
			"lastName":            user.LastName,
			"classYear":           user.ClassYear,
			"profilePicture":      user.ProfilePicture,
			"bio":                 user.Bio,
			"points":              user.Points,
			"totalCO2Saved":       user.TotalCO2Saved,
			"activeChallenges":    active,
			"completedChallenges": completed,
			"teamId":              user.TeamID,
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// UpdateProfile applies a partial update to the caller's profile fields.
func UpdateProfile(c *gin.Context) {
	var request structs.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}
	userID := currentUserID(c)

	var updated models.User
	err := appStore.Update(func(db *store.Database) error {
		user := db.User(userID)
		if user == nil {
			return notFoundError("User not found")
		}
		if request.ProfilePicture != nil {
			user.ProfilePicture = *request.ProfilePicture
		}
		if request.Bio != nil {
			user.Bio = *request.Bio
		}
		if request.ClassYear != nil {
			user.ClassYear = *request.ClassYear
		}
		updated = *user
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":             updated.ID,
			"username":       updated.Username,
			"profilePicture": updated.ProfilePicture,
			"bio":            updated.Bio,
			"classYear":      updated.ClassYear,
		},
	})
}
