package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
	"github.com/ybamri/recycleapp/internal/app/services"
	"github.com/ybamri/recycleapp/internal/middleware"
)

// RecyclingController handles the recycling assistant endpoint
type RecyclingController struct {
	recyclingService *services.RecyclingService
	logger           zerolog.Logger
}

// NewRecyclingController creates a new RecyclingController
func NewRecyclingController(recyclingService *services.RecyclingService, logger zerolog.Logger) *RecyclingController {
	return &RecyclingController{
		recyclingService: recyclingService,
		logger:           logger,
	}
}

// Ask answers a recycling question
// @Summary Ask the recycling assistant
// @Description Forwards the question to a generative model. Upstream failures yield a fallback answer, never an HTTP error.
// @Tags recycling
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Question"
// @Success 200 {object} dto.APIResponse{data=dto.ChatResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing question"
// @Router /recycling/chat [post]
func (c *RecyclingController) Ask(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	answer, err := c.recyclingService.Ask(ctx.Request.Context(), req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ChatResponse{Response: answer}))
}
