package controllers

import (
	"errors"
	"net/http"

	"stadium-onboarding-api/services"

	"github.com/gin-gonic/gin"
)

// OnboardingController serves the owner-facing workflow endpoints.
type OnboardingController struct {
	svc *services.OnboardingService
}

func NewOnboardingController(svc *services.OnboardingService) *OnboardingController {
	return &OnboardingController{svc: svc}
}

// CreateOnboarding handles POST /onboarding: the workflow entry point.
func (ctl *OnboardingController) CreateOnboarding(c *gin.Context) {
	type createRequest struct {
		OwnerName       string  `json:"owner_name"`
		OwnerEmail      *string `json:"owner_email"`
		Region          string  `json:"region"`
		StadiumName     string  `json:"stadium_name"`
		Address         string  `json:"address"`
		AddressDetail   string  `json:"address_detail"`
		OperatingStatus string  `json:"operating_status"`
		FacilityCount   string  `json:"facility_count"`
		SizeInfo        string  `json:"size_info"`
		ServiceTypes    string  `json:"service_types"`
		OtherServices   string  `json:"other_services"`
		Memo            string  `json:"memo"`
		Source          string  `json:"source"`
		TempCode        string  `json:"temp_code"`
		TempPassword    string  `json:"temp_password"`
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	created, err := ctl.svc.Create(c.Request.Context(), services.CreateInput{
		OwnerEmail:      req.OwnerEmail,
		OwnerName:       req.OwnerName,
		StadiumName:     req.StadiumName,
		Region:          req.Region,
		Address:         req.Address,
		AddressDetail:   req.AddressDetail,
		OperatingStatus: req.OperatingStatus,
		FacilityCount:   req.FacilityCount,
		SizeInfo:        req.SizeInfo,
		ServiceTypes:    req.ServiceTypes,
		OtherServices:   req.OtherServices,
		Memo:            req.Memo,
		Source:          req.Source,
		TempCode:        req.TempCode,
		TempPassword:    req.TempPassword,
	})
	if err != nil {
		// The entry form reports a bare missing_required without the field.
		var missing *services.MissingFieldError
		if errors.As(err, &missing) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_required"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": created.ID, "step_status": created.StepStatus})
}

// GetOnboarding handles GET /onboarding/:id.
func (ctl *OnboardingController) GetOnboarding(c *gin.Context) {
	req, err := ctl.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"onboarding": req})
}

// OwnerLogin handles POST /onboarding/login: temp-code credentials resolve to
// the page for the current status.
func (ctl *OnboardingController) OwnerLogin(c *gin.Context) {
	type loginRequest struct {
		TempCode     string `json:"temp_code"`
		TempPassword string `json:"temp_password"`
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_credentials"})
		return
	}

	result, err := ctl.svc.OwnerLogin(c.Request.Context(), req.TempCode, req.TempPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": result.ID, "step_status": result.StepStatus, "path": result.Path})
}

// GetProposals handles GET /onboarding/:id/step1.
func (ctl *OnboardingController) GetProposals(c *gin.Context) {
	detail, err := ctl.svc.Proposals(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": detail.Proposals, "step_status": detail.StepStatus})
}

// SubmitProposal handles POST /onboarding/:id/step1.
func (ctl *OnboardingController) SubmitProposal(c *gin.Context) {
	type proposalRequest struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		ImageURLs   []string `json:"image_urls"`
	}
	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	next, err := ctl.svc.SubmitProposal(c.Request.Context(), c.Param("id"), req.Title, req.Description, req.ImageURLs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "step_status": next})
}

// ApproveProposal handles PATCH /onboarding/:id/step1 with action=approve.
func (ctl *OnboardingController) ApproveProposal(c *gin.Context) {
	type actionRequest struct {
		Action string `json:"action"`
	}
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	if req.Action != "approve" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_action"})
		return
	}

	next, err := ctl.svc.ApproveProposal(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "step_status": next})
}

// DeleteProposal handles DELETE /onboarding/:id/step1.
func (ctl *OnboardingController) DeleteProposal(c *gin.Context) {
	type deleteRequest struct {
		ProposalID string `json:"proposal_id"`
	}
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_proposal_id"})
		return
	}

	if err := ctl.svc.DeleteProposal(c.Request.Context(), c.Param("id"), req.ProposalID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type stadiumPayload struct {
	StadiumName    string `json:"stadium_name"`
	Region         string `json:"region"`
	Address        string `json:"address"`
	AddressDetail  string `json:"address_detail"`
	StadiumContact string `json:"stadium_contact"`
	LaundryContact string `json:"laundry_contact"`
	ParkingInfo    string `json:"parking_info"`
	ShowerInfo     string `json:"shower_info"`
	EtcInfo        string `json:"etc_info"`
}

type courtPayload struct {
	CourtName       string   `json:"court_name"`
	Capacity        *int     `json:"capacity"`
	PlayTimeMinutes *int     `json:"play_time_minutes"`
	SizeX           *float64 `json:"size_x"`
	SizeY           *float64 `json:"size_y"`
	FloorType       string   `json:"floor_type"`
	IndoorOutdoor   string   `json:"indoor_outdoor"`
	SortOrder       *int     `json:"sort_order"`
}

// GetStadium handles GET /onboarding/:id/step2.
func (ctl *OnboardingController) GetStadium(c *gin.Context) {
	detail, err := ctl.svc.Stadium(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stadium": detail.Stadium, "courts": detail.Courts, "step_status": detail.StepStatus})
}

// SaveStadium handles PUT /onboarding/:id/step2: draft save or submit.
func (ctl *OnboardingController) SaveStadium(c *gin.Context) {
	type saveRequest struct {
		Stadium *stadiumPayload `json:"stadium"`
		Courts  []courtPayload  `json:"courts"`
		Submit  bool            `json:"submit"`
	}
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Stadium == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	courts := make([]services.CourtInput, 0, len(req.Courts))
	for _, court := range req.Courts {
		courts = append(courts, services.CourtInput{
			CourtName:       court.CourtName,
			Capacity:        court.Capacity,
			PlayTimeMinutes: court.PlayTimeMinutes,
			SizeX:           court.SizeX,
			SizeY:           court.SizeY,
			FloorType:       court.FloorType,
			IndoorOutdoor:   court.IndoorOutdoor,
			SortOrder:       court.SortOrder,
		})
	}

	next, err := ctl.svc.SaveStadium(c.Request.Context(), c.Param("id"), services.StadiumInput{
		StadiumName:    req.Stadium.StadiumName,
		Region:         req.Stadium.Region,
		Address:        req.Stadium.Address,
		AddressDetail:  req.Stadium.AddressDetail,
		StadiumContact: req.Stadium.StadiumContact,
		LaundryContact: req.Stadium.LaundryContact,
		ParkingInfo:    req.Stadium.ParkingInfo,
		ShowerInfo:     req.Stadium.ShowerInfo,
		EtcInfo:        req.Stadium.EtcInfo,
	}, courts, req.Submit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "submitted": req.Submit, "step_status": next})
}

// GetDocuments handles GET /onboarding/:id/step3.
func (ctl *OnboardingController) GetDocuments(c *gin.Context) {
	detail, err := ctl.svc.Documents(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"step_status": detail.StepStatus,
		"documents":   detail.Documents,
		"stadium":     detail.Stadium,
		"courts":      detail.Courts,
	})
}

// SubmitDocuments handles PATCH /onboarding/:id/step3: all three document
// URLs at once.
func (ctl *OnboardingController) SubmitDocuments(c *gin.Context) {
	type documentsRequest struct {
		BusinessURL      string `json:"business_url"`
		BankbookURL      string `json:"bankbook_url"`
		LeaseContractURL string `json:"lease_contract_url"`
		SkipStatus       bool   `json:"skip_status"`
	}
	var req documentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	next, err := ctl.svc.SubmitDocuments(c.Request.Context(), c.Param("id"),
		req.BusinessURL, req.BankbookURL, req.LeaseContractURL, req.SkipStatus)
	if err != nil {
		var missing *services.MissingFieldError
		if errors.As(err, &missing) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_documents", "field": missing.Field})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "step_status": next})
}

// GetAvailableTimes handles GET /onboarding/:id/step5.
func (ctl *OnboardingController) GetAvailableTimes(c *gin.Context) {
	detail, err := ctl.svc.AvailableTimes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"step_status":    detail.StepStatus,
		"times":          detail.Times,
		"final_account":  detail.FinalAccount,
		"final_password": detail.FinalPassword,
	})
}

// SaveAvailableTimes handles PUT /onboarding/:id/step5.
func (ctl *OnboardingController) SaveAvailableTimes(c *gin.Context) {
	type timesRequest struct {
		Times  []struct {
			DayOfWeek int     `json:"day_of_week"`
			StartTime string  `json:"start_time"`
			EndTime   string  `json:"end_time"`
			Note      *string `json:"note"`
		} `json:"times"`
		Submit bool `json:"submit"`
	}
	var req timesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Times == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	times := make([]services.TimeSlotInput, 0, len(req.Times))
	for _, slot := range req.Times {
		times = append(times, services.TimeSlotInput{
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Note:      slot.Note,
		})
	}

	next, err := ctl.svc.SaveAvailableTimes(c.Request.Context(), c.Param("id"), times, req.Submit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "submitted": req.Submit, "step_status": next})
}
