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

// aiFlowHandler handles HTTP requests for the AI assistance flows.
type aiFlowHandler struct {
	aiService portssvc.AIFlowSvcFacade
}

func newAIFlowHandler(as portssvc.AIFlowSvcFacade) *aiFlowHandler {
	return &aiFlowHandler{
		aiService: as,
	}
}

// registerAIFlowRoutes registers routes for the AI flows.
func registerAIFlowRoutes(rg *gin.RouterGroup, aiService portssvc.AIFlowSvcFacade) {
	h := newAIFlowHandler(aiService)

	ai := rg.Group("/ai")
	{
		ai.POST("/describe-image", h.describeImage)
		ai.POST("/extract-contract", h.extractContract)
	}
}

// describeImage godoc
// @Summary Describe a destination image
// @Description Generates a marketing title, description and tags for an image given by URL or base64 content
// @Tags ai
// @Accept  json
// @Produce  json
// @Param   image body dto.DescribeImageRequest true "Image reference"
// @Success 200 {object} dto.ImageDescriptionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} map[string]string "Model call failed"
// @Security BearerAuth
// @Router /ai/describe-image [post]
func (h *aiFlowHandler) describeImage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DescribeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.aiService.DescribeImage(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Image description flow failed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to describe image"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// extractContract godoc
// @Summary Extract structured data from contract text
// @Description Pulls client, dates, amount and currency out of pasted contract text
// @Tags ai
// @Accept  json
// @Produce  json
// @Param   contract body dto.ExtractContractRequest true "Contract text"
// @Success 200 {object} dto.ContractDataResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} map[string]string "Model call failed"
// @Security BearerAuth
// @Router /ai/extract-contract [post]
func (h *aiFlowHandler) extractContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExtractContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.aiService.ExtractContractData(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Contract extraction flow failed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to extract contract data"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
