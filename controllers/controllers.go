package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"greengoals/config"
	"greengoals/store"
)

var (
	appConfig *config.Config
	appStore  *store.Store
)

// Init wires the shared configuration and store into the controllers.
func Init(cfg *config.Config, st *store.Store) {
	appConfig = cfg
	appStore = st
}

// abortWithError maps store errors onto HTTP statuses: validation
// failures are 400, unknown ids 404, anything else 500.
func abortWithError(c *gin.Context, err error) {
	var validation *store.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
		return
	}
	var notFound *store.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// currentUserID reads the authenticated user id set by the middleware.
func currentUserID(c *gin.Context) int {
	return c.GetInt("userId")
}

func validationError(msg string) error { return store.NewValidationError(msg) }

func notFoundError(msg string) error { return store.NewNotFoundError(msg) }
