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

// itineraryHandler handles HTTP requests related to itineraries.
type itineraryHandler struct {
	itineraryService portssvc.ItinerarySvcFacade
}

func newItineraryHandler(is portssvc.ItinerarySvcFacade) *itineraryHandler {
	return &itineraryHandler{
		itineraryService: is,
	}
}

// RegisterItineraryRoutes registers routes related to itineraries.
func RegisterItineraryRoutes(rg *gin.RouterGroup, itineraryService portssvc.ItinerarySvcFacade) {
	h := newItineraryHandler(itineraryService)

	itineraries := rg.Group("/itineraries")
	{
		itineraries.POST("", h.createItinerary)
		itineraries.GET("", h.listItineraries)
		itineraries.GET("/:id", h.getItineraryByID)
		itineraries.PUT("/:id", h.updateItinerary)
		itineraries.PATCH("/:id/status", h.updateItineraryStatus)
		itineraries.DELETE("/:id", h.deleteItinerary)
		itineraries.GET("/:id/cost-summary", h.getCostSummary)
		itineraries.POST("/:id/quote", h.emailQuote)
	}
}

// createItinerary godoc
// @Summary Create an itinerary
// @Description Creates a draft itinerary with its full day and item structure
// @Tags itineraries
// @Accept  json
// @Produce  json
// @Param   itinerary body dto.CreateItineraryRequest true "Itinerary details"
// @Success 201 {object} dto.ItineraryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create itinerary"
// @Security BearerAuth
// @Router /itineraries [post]
func (h *itineraryHandler) createItinerary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateItinerary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create itinerary", slog.String("name", req.Name))

	createdItinerary, err := h.itineraryService.CreateItinerary(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating itinerary", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create itinerary in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create itinerary"})
		}
		return
	}

	logger.Info("Itinerary created successfully", slog.String("itinerary_id", createdItinerary.ItineraryID))
	c.JSON(http.StatusCreated, dto.ToItineraryResponse(createdItinerary))
}

// getItineraryByID godoc
// @Summary Get an itinerary by ID
// @Description Retrieves an itinerary with its full day and item structure
// @Tags itineraries
// @Produce  json
// @Param   id path string true "Itinerary ID"
// @Success 200 {object} dto.ItineraryResponse
// @Failure 404 {object} map[string]string "Itinerary not found"
// @Failure 500 {object} map[string]string "Failed to retrieve itinerary"
// @Security BearerAuth
// @Router /itineraries/{id} [get]
func (h *itineraryHandler) getItineraryByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itineraryID := c.Param("id")

	itinerary, err := h.itineraryService.GetItineraryByID(c.Request.Context(), itineraryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
		} else {
			logger.Error("Failed to get itinerary from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve itinerary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToItineraryResponse(itinerary))
}

// listItineraries godoc
// @Summary List itineraries
// @Description Retrieves itinerary headers newest first using cursor pagination
// @Tags itineraries
// @Produce  json
// @Param   status query string false "Filter by status" Enums(DRAFT, CONFIRMED, ARCHIVED)
// @Param   limit query int false "Page size" default(20)
// @Param   pageToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListItinerariesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list itineraries"
// @Security BearerAuth
// @Router /itineraries [get]
func (h *itineraryHandler) listItineraries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListItinerariesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	itineraries, nextToken, err := h.itineraryService.ListItineraries(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list itineraries from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list itineraries"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListItineraryResponse(itineraries, nextToken))
}

// updateItinerary godoc
// @Summary Update an itinerary
// @Description Replaces the header fields and the full day set of an itinerary
// @Tags itineraries
// @Accept  json
// @Produce  json
// @Param   id path string true "Itinerary ID"
// @Param   itinerary body dto.UpdateItineraryRequest true "Replacement itinerary content"
// @Success 200 {object} dto.ItineraryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Itinerary is archived"
// @Failure 404 {object} map[string]string "Itinerary not found"
// @Failure 500 {object} map[string]string "Failed to update itinerary"
// @Security BearerAuth
// @Router /itineraries/{id} [put]
func (h *itineraryHandler) updateItinerary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itineraryID := c.Param("id")

	var req dto.UpdateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updatedItinerary, err := h.itineraryService.UpdateItinerary(c.Request.Context(), itineraryID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Archived itineraries cannot be edited"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update itinerary in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update itinerary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToItineraryResponse(updatedItinerary))
}

// updateItineraryStatus godoc
// @Summary Move an itinerary through its lifecycle
// @Description Transitions an itinerary to CONFIRMED or ARCHIVED, enforcing the forward-only order
// @Tags itineraries
// @Accept  json
// @Produce  json
// @Param   id path string true "Itinerary ID"
// @Param   status body dto.UpdateItineraryStatusRequest true "Target status"
// @Success 200 {object} dto.ItineraryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Itinerary not found"
// @Failure 409 {object} map[string]string "Invalid status transition"
// @Failure 500 {object} map[string]string "Failed to update itinerary status"
// @Security BearerAuth
// @Router /itineraries/{id}/status [patch]
func (h *itineraryHandler) updateItineraryStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itineraryID := c.Param("id")

	var req dto.UpdateItineraryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updatedItinerary, err := h.itineraryService.UpdateItineraryStatus(c.Request.Context(), itineraryID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update itinerary status in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update itinerary status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToItineraryResponse(updatedItinerary))
}

// deleteItinerary godoc
// @Summary Delete a draft itinerary
// @Description Removes a DRAFT itinerary with its days and items. Confirmed and archived itineraries cannot be deleted.
// @Tags itineraries
// @Produce  json
// @Param   id path string true "Itinerary ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Itinerary not found"
// @Failure 409 {object} map[string]string "Itinerary is not a draft"
// @Failure 500 {object} map[string]string "Failed to delete itinerary"
// @Security BearerAuth
// @Router /itineraries/{id} [delete]
func (h *itineraryHandler) deleteItinerary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itineraryID := c.Param("id")

	deleterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.itineraryService.DeleteItinerary(c.Request.Context(), itineraryID, deleterUserID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete itinerary in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete itinerary"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// getCostSummary godoc
// @Summary Get the cost summary for an itinerary
// @Description Computes per-line, per-day and grand totals in the itinerary's display currency using current exchange rates
// @Tags itineraries
// @Produce  json
// @Param   id path string true "Itinerary ID"
// @Success 200 {object} dto.CostSummaryResponse
// @Failure 400 {object} map[string]string "Missing exchange rate or price record"
// @Failure 404 {object} map[string]string "Itinerary not found"
// @Failure 500 {object} map[string]string "Failed to compute cost summary"
// @Security BearerAuth
// @Router /itineraries/{id}/cost-summary [get]
func (h *itineraryHandler) getCostSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itineraryID := c.Param("id")

	summary, err := h.itineraryService.GetCostSummary(c.Request.Context(), itineraryID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Cost summary cannot be computed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to compute cost summary in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute cost summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCostSummaryResponse(summary))
}

// emailQuote godoc
// @Summary Email a quote to the client
// @Description Sends the itinerary's cost summary to the given address
// @Tags itineraries
// @Accept  json
// @Produce  json
// @Param   id path string true "Itinerary ID"
// @Param   quote body dto.EmailQuoteRequest true "Recipient address"
// @Success 202 {object} map[string]string "Quote queued for delivery"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Itinerary not found"
// @Failure 503 {object} map[string]string "Email delivery not configured"
// @Security BearerAuth
// @Router /itineraries/{id}/quote [post]
func (h *itineraryHandler) emailQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itineraryID := c.Param("id")

	var req dto.EmailQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.itineraryService.EmailQuote(c.Request.Context(), itineraryID, req.Email); err != nil {
		var appErr *apperrors.AppError
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &appErr) && appErr.Code == http.StatusServiceUnavailable:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Email delivery is not configured"})
		default:
			logger.Error("Failed to email quote in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to email quote"})
		}
		return
	}

	logger.Info("Quote emailed", slog.String("itinerary_id", itineraryID))
	c.JSON(http.StatusAccepted, gin.H{"status": "quote sent"})
}
