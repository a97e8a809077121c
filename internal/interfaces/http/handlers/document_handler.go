package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"customer-onboarding.backend/internal/config"
	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	"customer-onboarding.backend/internal/interfaces/http/middleware"
	"customer-onboarding.backend/internal/interfaces/http/response"
	"customer-onboarding.backend/internal/usecases"
)

// DocumentHandler handles document endpoints
type DocumentHandler struct {
	documentUsecase *usecases.DocumentUsecase
	upload          config.UploadConfig
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentUsecase *usecases.DocumentUsecase, upload config.UploadConfig) *DocumentHandler {
	return &DocumentHandler{
		documentUsecase: documentUsecase,
		upload:          upload,
	}
}

// Upload stores a document from a multipart form
// POST /api/v1/documents/upload
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized - No user context"))
		return
	}

	var input entities.UploadDocumentInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("No file uploaded"))
		return
	}

	if fileHeader.Size > h.upload.MaxFileSize {
		response.Error(c, domainerrors.BadRequest(fmt.Sprintf("File exceeds the maximum size of %d bytes", h.upload.MaxFileSize)))
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !h.mimeAllowed(mimeType) {
		response.Error(c, domainerrors.BadRequest("Invalid file type. Only JPEG, PNG, PDF, and DOC files are allowed."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, err := h.documentUsecase.Upload(c.Request.Context(), userID, input.DocumentType, fileHeader.Filename, content, mimeType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Document uploaded successfully",
		"document": gin.H{
			"id":                  doc.ID,
			"document_type":       doc.DocumentType,
			"document_name":       doc.DocumentName,
			"file_size":           doc.FileSize,
			"verification_status": doc.VerificationStatus,
			"uploaded_at":         doc.UploadedAt,
		},
	})
}

// List returns the caller's documents, metadata only
// GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized - No user context"))
		return
	}

	documents, err := h.documentUsecase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":   "Documents retrieved successfully",
		"count":     len(documents),
		"documents": documents,
	})
}

// Get returns one document's metadata after the ownership check
// GET /api/v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	userID, docID, ok := h.identityAndDocID(c)
	if !ok {
		return
	}

	doc, err := h.documentUsecase.Get(c.Request.Context(), userID, docID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":  "Document retrieved successfully",
		"document": doc,
	})
}

// Download streams the stored bytes with the original name and mime type
// GET /api/v1/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	userID, docID, ok := h.identityAndDocID(c)
	if !ok {
		return
	}

	doc, content, err := h.documentUsecase.Download(c.Request.Context(), userID, docID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.DocumentName))
	c.Data(http.StatusOK, doc.MimeType, content)
}

// Delete removes a document after the ownership check
// DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, docID, ok := h.identityAndDocID(c)
	if !ok {
		return
	}

	if err := h.documentUsecase.Delete(c.Request.Context(), userID, docID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Document deleted successfully",
	})
}

func (h *DocumentHandler) identityAndDocID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized - No user context"))
		return uuid.Nil, uuid.Nil, false
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid document id"))
		return uuid.Nil, uuid.Nil, false
	}
	return userID, docID, true
}

func (h *DocumentHandler) mimeAllowed(mimeType string) bool {
	for _, allowed := range h.upload.AllowedMimeTypes {
		if mimeType == allowed {
			return true
		}
	}
	return false
}
