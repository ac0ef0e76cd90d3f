package controllers

import (
	"net/http"

	"stadium-onboarding-api/models"
	"stadium-onboarding-api/services"
	"stadium-onboarding-api/storage"

	"github.com/gin-gonic/gin"
)

// UploadController accepts multipart file uploads and returns retrievable
// URLs. The request must exist; the file lands in the blob store namespaced
// by request id.
type UploadController struct {
	svc   *services.OnboardingService
	blobs storage.BlobStore
}

func NewUploadController(svc *services.OnboardingService, blobs storage.BlobStore) *UploadController {
	return &UploadController{svc: svc, blobs: blobs}
}

func (ctl *UploadController) store(c *gin.Context, kind string) {
	id := c.Param("id")
	if _, err := ctl.svc.Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload_error"})
		return
	}
	defer file.Close()

	url, err := ctl.blobs.Upload(c.Request.Context(), storage.ObjectPath(id, kind, fileHeader.Filename), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// UploadDocument handles POST /onboarding/:id/step3/upload?doc_type=...
func (ctl *UploadController) UploadDocument(c *gin.Context) {
	docType := c.Query("doc_type")
	if !models.IsValidDocType(docType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_doc_type"})
		return
	}
	ctl.store(c, docType)
}

// UploadSettlement handles POST /admin/onboarding/:id/settlement-upload.
func (ctl *UploadController) UploadSettlement(c *gin.Context) {
	ctl.store(c, "settlement")
}
