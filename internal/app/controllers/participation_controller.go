package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
	"github.com/ybamri/recycleapp/internal/app/services"
	"github.com/ybamri/recycleapp/internal/middleware"
	"github.com/ybamri/recycleapp/internal/pkg/helpers"
)

// ParticipationController handles challenge contribution operations
type ParticipationController struct {
	participationService *services.ParticipationService
	logger               zerolog.Logger
}

// NewParticipationController creates a new ParticipationController
func NewParticipationController(participationService *services.ParticipationService, logger zerolog.Logger) *ParticipationController {
	return &ParticipationController{
		participationService: participationService,
		logger:               logger,
	}
}

// Create records a contribution
// @Summary Create a participation
// @Description Records a contribution to a challenge. The challenge total and the participation commit together; a rejected contribution changes nothing.
// @Tags participations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateParticipationRequest true "Contribution"
// @Success 201 {object} dto.APIResponse{data=models.Participation}
// @Failure 400 {object} dto.ErrorResponse "Invalid or excessive quantity"
// @Failure 404 {object} dto.ErrorResponse "Challenge or user not found"
// @Router /participations [post]
func (c *ParticipationController) Create(ctx *gin.Context) {
	var req dto.CreateParticipationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	participation, err := c.participationService.Create(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("defiId", req.DefiID).Msg("Contribution rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(participation))
}

// GetByID retrieves one contribution
// @Summary Get a participation
// @Tags participations
// @Produce json
// @Param id path int true "Participation ID"
// @Success 200 {object} dto.APIResponse{data=models.Participation}
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Router /participations/{id} [get]
func (c *ParticipationController) GetByID(ctx *gin.Context) {
	id, err := helpers.ParseID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	participation, err := c.participationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(participation))
}

// GetByUser lists a user's contributions
// @Summary List a user's participations
// @Tags participations
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Participation}
// @Router /participations/user/{userId} [get]
func (c *ParticipationController) GetByUser(ctx *gin.Context) {
	userID, err := helpers.ParseID(ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	participations, err := c.participationService.GetByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(participations))
}

// GetByDefi lists a challenge's contributions
// @Summary List a challenge's participations
// @Tags participations
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Participation}
// @Router /participations/defi/{id} [get]
func (c *ParticipationController) GetByDefi(ctx *gin.Context) {
	defiID, err := helpers.ParseID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	participations, err := c.participationService.GetByDefiID(ctx.Request.Context(), defiID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(participations))
}

// Delete removes a contribution
// @Summary Delete a participation
// @Description Removes a contribution and subtracts its quantity from the challenge total, flooring at zero
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participation ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Router /participations/{id} [delete]
func (c *ParticipationController) Delete(ctx *gin.Context) {
	id, err := helpers.ParseID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.participationService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Participation supprimée"))
}
