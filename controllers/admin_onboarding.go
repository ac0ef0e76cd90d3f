package controllers

import (
	"net/http"

	"stadium-onboarding-api/services"

	"github.com/gin-gonic/gin"
)

// AdminOnboardingController serves the staff dashboard endpoints. These sit
// behind the admin JWT middleware; the status override here is the single
// privileged transition that bypasses the owner-side guards.
type AdminOnboardingController struct {
	svc *services.OnboardingService
}

func NewAdminOnboardingController(svc *services.OnboardingService) *AdminOnboardingController {
	return &AdminOnboardingController{svc: svc}
}

// ListOnboarding handles GET /admin/onboarding.
func (ctl *AdminOnboardingController) ListOnboarding(c *gin.Context) {
	items, err := ctl.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetOnboarding handles GET /admin/onboarding/:id.
func (ctl *AdminOnboardingController) GetOnboarding(c *gin.Context) {
	req, err := ctl.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"onboarding": req})
}

// SetStatus handles PATCH /admin/onboarding/:id/status: the administrative
// override. Any enumerated status is a legal target.
func (ctl *AdminOnboardingController) SetStatus(c *gin.Context) {
	type statusRequest struct {
		NewStatus     string  `json:"new_status"`
		Memo          string  `json:"memo"`
		FinalAccount  *string `json:"final_account"`
		FinalPassword *string `json:"final_password"`
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
		return
	}

	next, err := ctl.svc.AdminSetStatus(c.Request.Context(), c.Param("id"), services.AdminSetStatusInput{
		NewStatus:     req.NewStatus,
		Memo:          req.Memo,
		FinalAccount:  req.FinalAccount,
		FinalPassword: req.FinalPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "step_status": next})
}

// DeleteOnboarding handles DELETE /admin/onboarding/:id: removes the request
// and every child row.
func (ctl *AdminOnboardingController) DeleteOnboarding(c *gin.Context) {
	if err := ctl.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
