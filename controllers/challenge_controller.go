package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"greengoals/models"
	"greengoals/store"
)

// GetChallenges returns the full challenge catalog.
func GetChallenges(c *gin.Context) {
	var challenges []models.Challenge
	err := appStore.View(func(db *store.Database) error {
		challenges = db.Challenges
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// AcceptChallenge adds the challenge to the caller's active set.
func AcceptChallenge(c *gin.Context) {
	challengeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID := currentUserID(c)

	var challenge models.Challenge
	err := appStore.Update(func(db *store.Database) error {
		accepted, err := db.AcceptChallenge(userID, challengeID)
		if err != nil {
			return err
		}
		challenge = *accepted
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("Started: %s", challenge.Name),
		"challenge": challenge,
	})
}

// CompleteChallenge is the direct completion path with no evidence.
func CompleteChallenge(c *gin.Context) {
	challengeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID := currentUserID(c)

	var (
		user      models.User
		challenge models.Challenge
	)
	err := appStore.Update(func(db *store.Database) error {
		u, ch, err := db.CompleteChallenge(userID, challengeID)
		if err != nil {
			return err
		}
		user = *u
		challenge = *ch
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Completed: %s! +%d points, %.1fkg CO2 saved!", challenge.Name, challenge.Points, challenge.CO2Saved),
		"user": gin.H{
			"points":              user.Points,
			"totalCO2Saved":       user.TotalCO2Saved,
			"completedChallenges": user.CompletedChallenges,
		},
	})
}

// GetUserChallenges resolves the caller's active and completed
// challenge ids to full challenge documents.
func GetUserChallenges(c *gin.Context) {
	userID := currentUserID(c)

	active := []models.Challenge{}
	completed := []models.Challenge{}
	err := appStore.View(func(db *store.Database) error {
		user := db.User(userID)
		if user == nil {
			return notFoundError("User not found")
		}
		for _, id := range user.ActiveChallenges {
			if ch := db.Challenge(id); ch != nil {
				active = append(active, *ch)
			}
		}
		for _, id := range user.CompletedChallenges {
			if ch := db.Challenge(id); ch != nil {
				completed = append(completed, *ch)
			}
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activeChallenges":    active,
		"completedChallenges": completed,
	})
}

// paramID parses a numeric path parameter, replying 400 on garbage.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}
