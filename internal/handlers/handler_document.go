package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wanderplan/trip_pricing_app/internal/apperrors"
	portssvc "github.com/wanderplan/trip_pricing_app/internal/core/ports/services"
	"github.com/wanderplan/trip_pricing_app/internal/dto"
	"github.com/wanderplan/trip_pricing_app/internal/middleware"
)

// maxUploadBytes caps multipart uploads before they reach the service.
const maxUploadBytes = 25 << 20

// documentHandler handles HTTP requests related to documents.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{
		documentService: ds,
	}
}

// registerDocumentRoutes registers routes related to documents.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.uploadDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:id", h.getDocumentByID)
		documents.GET("/:id/download", h.getDownloadURL)
		documents.PATCH("/:id", h.updateDocument)
		documents.DELETE("/:id", h.deleteDocument)
	}
}

// uploadDocument godoc
// @Summary Upload a document
// @Description Stores a file in the object store and persists its metadata. Multipart form with a "file" part.
// @Tags documents
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "File content"
// @Param   title formData string true "Document title"
// @Param   category formData string true "Document category" Enums(CONTRACT, INVOICE, BROCHURE, OTHER)
// @Param   itineraryID formData string false "Linked itinerary ID"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input or file too large"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to upload document"
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) uploadDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	var form dto.UploadDocumentForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn("Failed to bind form for UploadDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File part is required"})
		return
	}

	uploaderUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	logger = logger.With(slog.String("uploader_user_id", uploaderUserID))
	logger.Info("Received document upload", slog.String("file_name", fileHeader.Filename), slog.Int64("size_bytes", fileHeader.Size))

	document, err := h.documentService.UploadDocument(c.Request.Context(), form, file, fileHeader.Filename, fileHeader.Size, contentType, uploaderUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error uploading document", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upload document in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload document"})
		}
		return
	}

	logger.Info("Document uploaded successfully", slog.String("document_id", document.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(document))
}

// getDocumentByID godoc
// @Summary Get document metadata by ID
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to retrieve document"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *documentHandler) getDocumentByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	document, err := h.documentService.GetDocumentByID(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			logger.Error("Failed to get document from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

// listDocuments godoc
// @Summary List documents
// @Description Retrieves document metadata with optional category and itinerary filters, newest first
// @Tags documents
// @Produce  json
// @Param   category query string false "Filter by category" Enums(CONTRACT, INVOICE, BROCHURE, OTHER)
// @Param   itineraryID query string false "Filter by linked itinerary"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list documents"
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	documents, total, err := h.documentService.ListDocuments(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list documents from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListDocumentResponse(documents, total, params.Limit, params.Offset))
}

// getDownloadURL godoc
// @Summary Get a download URL for a document
// @Description Returns a short-lived presigned URL for the stored file
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {object} dto.DocumentDownloadResponse
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to generate download URL"
// @Security BearerAuth
// @Router /documents/{id}/download [get]
func (h *documentHandler) getDownloadURL(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	resp, err := h.documentService.GetDownloadURL(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			logger.Error("Failed to generate download URL in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate download URL"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateDocument godoc
// @Summary Update document metadata
// @Description Updates the title and category of a document. The stored file is immutable.
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   document body dto.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to update document"
// @Security BearerAuth
// @Router /documents/{id} [patch]
func (h *documentHandler) updateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	document, err := h.documentService.UpdateDocument(c.Request.Context(), documentID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update document in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update document"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

// deleteDocument godoc
// @Summary Delete a document
// @Description Removes the document metadata and its stored file
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to delete document"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	deleterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), documentID, deleterUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			logger.Error("Failed to delete document in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
