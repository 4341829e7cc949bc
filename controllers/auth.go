package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"greengoals/models"
	"greengoals/store"
	"greengoals/structs"
	"greengoals/utils"
)

// Register creates a new user account and returns a session token.
// Usernames and emails are unique; new users are never admins.
func Register(c *gin.Context) {
	var request structs.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var created models.User
	err = appStore.Update(func(db *store.Database) error {
		if db.UserByUsername(request.Username) != nil {
			return validationError("Username already exists")
		}
		if db.UserByEmail(request.Email) != nil {
			return validationError("Email already exists")
		}

		user := models.User{
			ID:                  db.NextUserID(),
			Username:            request.Username,
			Email:               request.Email,
			Password:            hashed,
			FirstName:           request.FirstName,
			LastName:            request.LastName,
			ClassYear:           request.ClassYear,
			Points:              0,
			TotalCO2Saved:       0,
			ActiveChallenges:    []int{},
			CompletedChallenges: []int{},
			Role:                models.RoleUser,
			JoinedAt:            time.Now(),
		}
		db.Users = append(db.Users, user)
		created = user
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := utils.GenerateToken(appConfig.JWT.Secret, appConfig.JWT.ExpiryMinutes, created.ID, false)
	if err != nil {
		log.WithError(err).Error("Failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        created.ID,
			"username":  created.Username,
			"email":     created.Email,
			"firstName": created.FirstName,
			"lastName":  created.LastName,
			"classYear": created.ClassYear,
			"points":    created.Points,
		},
	})
}

// Login authenticates by username or email.
func Login(c *gin.Context) {
	var request structs.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	var found models.User
	err := appStore.View(func(db *store.Database) error {
		user := db.UserByUsername(request.Username)
		if user == nil {
			user = db.UserByEmail(request.Username)
		}
		if user == nil {
			return notFoundError("User not found")
		}
		found = *user
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	if !utils.CheckPassword(found.Password, request.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid password"})
		return
	}

	isAdmin := found.Role == models.RoleSuperAdmin
	token, err := utils.GenerateToken(appConfig.JWT.Secret, appConfig.JWT.ExpiryMinutes, found.ID, isAdmin)
	if err != nil {
		log.WithError(err).Error("Failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        found.ID,
			"username":  found.Username,
			"email":     found.Email,
			"firstName": found.FirstName,
			"lastName":  found.LastName,
			"classYear": found.ClassYear,
			"points":    found.Points,
		},
	})
}

// AdminLogin authenticates a super_admin and issues an admin token.
func AdminLogin(c *gin.Context) {
	var request structs.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	var found models.User
	err := appStore.View(func(db *store.Database) error {
		user := db.UserByUsername(request.Username)
		if user == nil || user.Role != models.RoleSuperAdmin {
			return notFoundError("Admin not found")
		}
		found = *user
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	if !utils.CheckPassword(found.Password, request.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid password"})
		return
	}

	token, err := utils.GenerateToken(appConfig.JWT.Secret, appConfig.JWT.ExpiryMinutes, found.ID, true)
	if err != nil {
		log.WithError(err).Error("Failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       found.ID,
			"username": found.Username,
			"role":     found.Role,
		},
	})
}
