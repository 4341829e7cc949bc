package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"greengoals/models"
	"greengoals/services"
	"greengoals/store"
	"greengoals/structs"
)

// SubmitEvidence enqueues a pending submission for the challenge. The
// advisory verifier runs outside the store's critical section so a slow
// or failing classification never blocks other requests; its verdict is
// attached for the reviewer but never awards points.
func SubmitEvidence(c *gin.Context) {
	challengeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID := currentUserID(c)

	var request structs.SubmitEvidenceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}
	image := request.ImageBase64
	if image == "" {
		image = request.ImageURL
	}
	if image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide an image"})
		return
	}

	// Precheck so obviously invalid submissions skip the verifier call.
	var challenge models.Challenge
	err := appStore.View(func(db *store.Database) error {
		user := db.User(userID)
		if user == nil {
			return notFoundError("User not found")
		}
		ch := db.Challenge(challengeID)
		if ch == nil {
			return notFoundError("Challenge not found")
		}
		if !user.HasActive(challengeID) {
			return validationError("Challenge not in progress")
		}
		challenge = *ch
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	verdict := services.VerifyEvidence(c.Request.Context(), image, challenge)

	var submission models.EvidenceSubmission
	err = appStore.Update(func(db *store.Database) error {
		s, err := db.SubmitEvidence(userID, challengeID, image, verdict)
		if err != nil {
			return err
		}
		submission = *s
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Evidence submitted and awaiting review",
		"submission": submission,
	})
}

// GetPendingEvidence lists submissions still awaiting a decision.
func GetPendingEvidence(c *gin.Context) {
	pending := []models.EvidenceSubmission{}
	err := appStore.View(func(db *store.Database) error {
		for _, e := range db.PendingEvidence {
			if e.Status == models.EvidencePending {
				pending = append(pending, e)
			}
		}
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

// ApproveEvidence awards the points snapshotted at submission time,
// with the same completion bookkeeping as a direct completion, and
// archives the image.
func ApproveEvidence(c *gin.Context) {
	reviewEvidence(c, true)
}

// RejectEvidence archives the image and leaves the challenge active so
// the user may submit fresh evidence.
func RejectEvidence(c *gin.Context) {
	reviewEvidence(c, false)
}

func reviewEvidence(c *gin.Context, approve bool) {
	evidenceID := c.Param("id")

	var request structs.ReviewEvidenceRequest
	if err := c.ShouldBindJSON(&request); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	var submission models.EvidenceSubmission
	err := appStore.Update(func(db *store.Database) error {
		var (
			reviewed *models.EvidenceSubmission
			err      error
		)
		if approve {
			reviewed, err = db.ApproveEvidence(evidenceID, request.Notes)
		} else {
			reviewed, err = db.RejectEvidence(evidenceID, request.Notes)
		}
		if err != nil {
			return err
		}
		submission = *reviewed
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	message := "Evidence rejected"
	if approve {
		message = "Evidence approved"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"submission": submission,
	})
}
