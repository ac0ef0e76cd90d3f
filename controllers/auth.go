package controllers

import (
	"net/http"
	"os"

	"stadium-onboarding-api/middleware"

	"github.com/gin-gonic/gin"
)

// AdminLogin handles POST /admin/login. This is the demo credential check
// from the original dashboard, not a security model: ADMIN_ID/ADMIN_PW from
// the environment, with the historical defaults.
func AdminLogin(c *gin.Context) {
	type loginRequest struct {
		AdminID  string `json:"admin_id"`
		Password string `json:"password"`
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_credentials"})
		return
	}

	adminID := os.Getenv("ADMIN_ID")
	if adminID == "" {
		adminID = "admin"
	}
	adminPW := os.Getenv("ADMIN_PW")
	if adminPW == "" {
		adminPW = "plab1234"
	}

	if req.AdminID != adminID || req.Password != adminPW {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := middleware.IssueAdminToken(req.AdminID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
