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

// provinceHandler handles HTTP requests related to provinces.
type provinceHandler struct {
	provinceService portssvc.ProvinceSvcFacade
}

func newProvinceHandler(ps portssvc.ProvinceSvcFacade) *provinceHandler {
	return &provinceHandler{
		provinceService: ps,
	}
}

// registerProvinceRoutes registers routes related to provinces.
func registerProvinceRoutes(rg *gin.RouterGroup, provinceService portssvc.ProvinceSvcFacade) {
	h := newProvinceHandler(provinceService)

	provinces := rg.Group("/provinces")
	{
		provinces.POST("", h.createProvince)
		provinces.GET("", h.listProvinces)
		provinces.GET("/:id", h.getProvinceByID)
		provinces.PUT("/:id", h.updateProvince)
		provinces.DELETE("/:id", h.deactivateProvince)
	}
}

// createProvince godoc
// @Summary Create a new province
// @Description Adds a destination province for pricing
// @Tags provinces
// @Accept  json
// @Produce  json
// @Param   province body dto.CreateProvinceRequest true "Province details"
// @Success 201 {object} dto.ProvinceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create province"
// @Security BearerAuth
// @Router /provinces [post]
func (h *provinceHandler) createProvince(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProvinceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create province", slog.String("name", req.Name))

	createdProvince, err := h.provinceService.CreateProvince(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create province in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create province"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToProvinceResponse(createdProvince))
}

// getProvinceByID godoc
// @Summary Get a province by ID
// @Tags provinces
// @Produce  json
// @Param   id path string true "Province ID"
// @Success 200 {object} dto.ProvinceResponse
// @Failure 404 {object} map[string]string "Province not found"
// @Failure 500 {object} map[string]string "Failed to retrieve province"
// @Security BearerAuth
// @Router /provinces/{id} [get]
func (h *provinceHandler) getProvinceByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	provinceID := c.Param("id")

	province, err := h.provinceService.GetProvinceByID(c.Request.Context(), provinceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Province not found"})
		} else {
			logger.Error("Failed to get province from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve province"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProvinceResponse(province))
}

// listProvinces godoc
// @Summary List provinces
// @Description Retrieves provinces ordered by country then name
// @Tags provinces
// @Produce  json
// @Param   activeOnly query bool false "Only active provinces" default(true)
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListProvincesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list provinces"
// @Security BearerAuth
// @Router /provinces [get]
func (h *provinceHandler) listProvinces(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListProvincesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	provinces, err := h.provinceService.ListProvinces(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list provinces from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list provinces"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProvinceResponse(provinces))
}

// updateProvince godoc
// @Summary Update a province
// @Description Updates the name and region of a province
// @Tags provinces
// @Accept  json
// @Produce  json
// @Param   id path string true "Province ID"
// @Param   province body dto.UpdateProvinceRequest true "Fields to update"
// @Success 200 {object} dto.ProvinceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Province not found"
// @Failure 500 {object} map[string]string "Failed to update province"
// @Security BearerAuth
// @Router /provinces/{id} [put]
func (h *provinceHandler) updateProvince(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	provinceID := c.Param("id")

	var req dto.UpdateProvinceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updatedProvince, err := h.provinceService.UpdateProvince(c.Request.Context(), provinceID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Province not found"})
		} else {
			logger.Error("Failed to update province in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update province"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProvinceResponse(updatedProvince))
}

// deactivateProvince godoc
// @Summary Deactivate a province
// @Description Soft deletes a province so it no longer accepts new price records
// @Tags provinces
// @Produce  json
// @Param   id path string true "Province ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Province not found"
// @Failure 500 {object} map[string]string "Failed to deactivate province"
// @Security BearerAuth
// @Router /provinces/{id} [delete]
func (h *provinceHandler) deactivateProvince(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	provinceID := c.Param("id")

	deleterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.provinceService.DeactivateProvince(c.Request.Context(), provinceID, deleterUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Province not found"})
		} else {
			logger.Error("Failed to deactivate province in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate province"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
