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

// priceRecordHandler handles HTTP requests related to price records.
type priceRecordHandler struct {
	pricingService portssvc.PricingSvcFacade
}

func newPriceRecordHandler(ps portssvc.PricingSvcFacade) *priceRecordHandler {
	return &priceRecordHandler{
		pricingService: ps,
	}
}

// registerPriceRecordRoutes registers routes related to price records.
func registerPriceRecordRoutes(rg *gin.RouterGroup, pricingService portssvc.PricingSvcFacade) {
	h := newPriceRecordHandler(pricingService)

	prices := rg.Group("/price-records")
	{
		prices.POST("", h.createPriceRecord)
		prices.GET("", h.listPriceRecords)
		prices.GET("/:id", h.getPriceRecordByID)
		prices.PUT("/:id", h.updatePriceRecord)
		prices.DELETE("/:id", h.deactivatePriceRecord)
	}
}

// createPriceRecord godoc
// @Summary Create a price record
// @Description Adds a service price for a province in a given currency
// @Tags price-records
// @Accept  json
// @Produce  json
// @Param   record body dto.CreatePriceRecordRequest true "Price record details"
// @Success 201 {object} dto.PriceRecordResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create price record"
// @Security BearerAuth
// @Router /price-records [post]
func (h *priceRecordHandler) createPriceRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePriceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePriceRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create price record",
		slog.String("province_id", req.ProvinceID), slog.String("service_name", req.ServiceName))

	createdRecord, err := h.pricingService.CreatePriceRecord(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating price record", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create price record in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create price record"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPriceRecordResponse(createdRecord))
}

// getPriceRecordByID godoc
// @Summary Get a price record by ID
// @Tags price-records
// @Produce  json
// @Param   id path string true "Price Record ID"
// @Success 200 {object} dto.PriceRecordResponse
// @Failure 404 {object} map[string]string "Price record not found"
// @Failure 500 {object} map[string]string "Failed to retrieve price record"
// @Security BearerAuth
// @Router /price-records/{id} [get]
func (h *priceRecordHandler) getPriceRecordByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	priceID := c.Param("id")

	record, err := h.pricingService.GetPriceRecordByID(c.Request.Context(), priceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Price record not found"})
		} else {
			logger.Error("Failed to get price record from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve price record"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPriceRecordResponse(record))
}

// listPriceRecords godoc
// @Summary List price records
// @Description Retrieves price records with optional province and category filters
// @Tags price-records
// @Produce  json
// @Param   provinceID query string false "Filter by province"
// @Param   category query string false "Filter by service category"
// @Param   activeOnly query bool false "Only active records" default(true)
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListPriceRecordsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list price records"
// @Security BearerAuth
// @Router /price-records [get]
func (h *priceRecordHandler) listPriceRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPriceRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, total, err := h.pricingService.ListPriceRecords(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list price records from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list price records"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPriceRecordResponse(records, total, params.Limit, params.Offset))
}

// updatePriceRecord godoc
// @Summary Update a price record
// @Description Updates the mutable fields of a price record. Province and category are fixed.
// @Tags price-records
// @Accept  json
// @Produce  json
// @Param   id path string true "Price Record ID"
// @Param   record body dto.UpdatePriceRecordRequest true "Fields to update"
// @Success 200 {object} dto.PriceRecordResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Price record not found"
// @Failure 500 {object} map[string]string "Failed to update price record"
// @Security BearerAuth
// @Router /price-records/{id} [put]
func (h *priceRecordHandler) updatePriceRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	priceID := c.Param("id")

	var req dto.UpdatePriceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updatedRecord, err := h.pricingService.UpdatePriceRecord(c.Request.Context(), priceID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Price record not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update price record in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update price record"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPriceRecordResponse(updatedRecord))
}

// deactivatePriceRecord godoc
// @Summary Deactivate a price record
// @Description Soft deletes a price record so it cannot be added to new itineraries
// @Tags price-records
// @Produce  json
// @Param   id path string true "Price Record ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Price record not found"
// @Failure 500 {object} map[string]string "Failed to deactivate price record"
// @Security BearerAuth
// @Router /price-records/{id} [delete]
func (h *priceRecordHandler) deactivatePriceRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	priceID := c.Param("id")

	deleterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.pricingService.DeactivatePriceRecord(c.Request.Context(), priceID, deleterUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Price record not found"})
		} else {
			logger.Error("Failed to deactivate price record in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate price record"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
