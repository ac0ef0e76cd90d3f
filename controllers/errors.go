package controllers

import (
	"errors"
	"log"
	"net/http"

	"stadium-onboarding-api/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service failures onto the wire error codes. Unknown
// failures (storage included) surface as 500 server_error; nothing is
// swallowed.
func respondError(c *gin.Context, err error) {
	var missing *services.MissingFieldError
	switch {
	case errors.Is(err, services.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
	case errors.Is(err, services.ErrInvalidProposalID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_proposal_id"})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
	case errors.Is(err, services.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_action"})
	case errors.Is(err, services.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
	case errors.Is(err, services.ErrInvalidPhone):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_phone"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_transition"})
	case errors.Is(err, services.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_credentials"})
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_required", "field": missing.Field})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	default:
		log.Printf("Error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
	}
}
