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

// DefiController handles sponsored challenge operations
type DefiController struct {
	defiService          *services.DefiService
	participationService *services.ParticipationService
	logger               zerolog.Logger
}

// NewDefiController creates a new DefiController
func NewDefiController(defiService *services.DefiService, participationService *services.ParticipationService, logger zerolog.Logger) *DefiController {
	return &DefiController{
		defiService:          defiService,
		participationService: participationService,
		logger:               logger,
	}
}

// Create registers a challenge
// @Summary Create a challenge
// @Description Creates a sponsored challenge. The running amount starts at zero and the status at en_cours, whatever the caller sends.
// @Tags defis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDefiRequest true "Challenge information"
// @Success 201 {object} dto.APIResponse{data=models.Defi}
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Router /defis [post]
func (c *DefiController) Create(ctx *gin.Context) {
	var req dto.CreateDefiRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	defi, err := c.defiService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(defi))
}

// GetAll lists all challenges
// @Summary List challenges
// @Description Returns every challenge with its participations and contributors
// @Tags defis
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Defi}
// @Router /defis [get]
func (c *DefiController) GetAll(ctx *gin.Context) {
	defis, err := c.defiService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(defis))
}

// GetByID retrieves one challenge
// @Summary Get a challenge
// @Tags defis
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} dto.APIResponse{data=models.Defi}
// @Failure 404 {object} dto.ErrorResponse "Challenge not found"
// @Router /defis/{id} [get]
func (c *DefiController) GetByID(ctx *gin.Context) {
	id, err := helpers.ParseID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	defi, err := c.defiService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(defi))
}

// Update modifies a challenge
// @Summary Update a challenge
// @Description Merges the provided fields and re-derives the status from the accounting fields, in both directions.
// @Tags defis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Param request body dto.UpdateDefiRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Defi}
// @Failure 404 {object} dto.ErrorResponse "Challenge not found"
// @Router /defis/{id} [put]
func (c *DefiController) Update(ctx *gin.Context) {
	id, err := helpers.ParseID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateDefiRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	defi, err := c.defiService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(defi))
}

// Delete removes a challenge
// @Summary Delete a challenge
// @Tags defis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Challenge not found"
// @Router /defis/{id} [delete]
func (c *DefiController) Delete(ctx *gin.Context) {
	id, err := helpers.ParseID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.defiService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Défi supprimé"))
}

// GetParticipants lists a challenge's contributions
// @Summary List a challenge's participants
// @Description Returns every contribution to the challenge, newest first, with contributor profiles
// @Tags defis
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Participation}
// @Failure 404 {object} dto.ErrorResponse "Challenge not found"
// @Router /defis/{id}/participants [get]
func (c *DefiController) GetParticipants(ctx *gin.Context) {
	defiID, err := helpers.ParseID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if _, err := c.defiService.GetByID(ctx.Request.Context(), defiID); err != nil {
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

// Participer records a contribution through the challenge-scoped route
// @Summary Contribute to a challenge
// @Description Records a contribution. The quantity must be positive and may not exceed what remains to reach the target.
// @Tags defis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Param request body dto.ParticiperRequest true "Contribution"
// @Success 201 {object} dto.APIResponse{data=models.Participation}
// @Failure 400 {object} dto.ErrorResponse "Invalid or excessive quantity"
// @Failure 404 {object} dto.ErrorResponse "Challenge or user not found"
// @Router /defis/{id}/participer [post]
func (c *DefiController) Participer(ctx *gin.Context) {
	defiID, err := helpers.ParseID(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ParticiperRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	participation, err := c.participationService.Create(ctx.Request.Context(), &dto.CreateParticipationRequest{
		UserID:   req.UserID,
		DefiID:   defiID,
		Quantity: req.Quantity,
	})
	if err != nil {
		c.logger.Warn().Err(err).Int64("defiId", defiID).Msg("Contribution rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(participation))
}
