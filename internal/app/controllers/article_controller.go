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

// ArticleController handles marketplace listing operations
type ArticleController struct {
	articleService *services.ArticleService
	logger         zerolog.Logger
}

// NewArticleController creates a new ArticleController
func NewArticleController(articleService *services.ArticleService, logger zerolog.Logger) *ArticleController {
	return &ArticleController{
		articleService: articleService,
		logger:         logger,
	}
}

// Create publishes a listing
// @Summary Create an article
// @Description Creates a listing from a multipart form. Field names are accepted in both French and English; the French spelling wins when both are present. An optional photo file is stored alongside.
// @Tags articles
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param titre formData string true "Listing title"
// @Param photo formData file false "Photo"
// @Success 201 {object} dto.APIResponse{data=models.Article}
// @Failure 400 {object} dto.ErrorResponse "Missing title or invalid form"
// @Router /articles [post]
func (c *ArticleController) Create(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	c.createForOwner(ctx, userID)
}

// CreateForUser publishes a listing for the user named in the path
// @Summary Create an article for a user
// @Description Same contract as POST /articles but with the owner taken from the path, matching the legacy client route.
// @Tags articles
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Owner user ID"
// @Param titre formData string true "Listing title"
// @Param photo formData file false "Photo"
// @Success 201 {object} dto.APIResponse{data=models.Article}
// @Failure 400 {object} dto.ErrorResponse "Missing title or invalid form"
// @Router /articles/create/{userId} [post]
func (c *ArticleController) CreateForUser(ctx *gin.Context) {
	userID, err := helpers.ParseID(ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.createForOwner(ctx, userID)
}

func (c *ArticleController) createForOwner(ctx *gin.Context, userID int64) {
	if err := ctx.Request.ParseMultipartForm(32 << 20); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid multipart form").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	input := dto.NormalizeArticleForm(ctx.Request.MultipartForm.Value)

	photo, err := ctx.FormFile("photo")
	if err != nil && err != http.ErrMissingFile {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid photo upload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	article, err := c.articleService.Create(ctx.Request.Context(), userID, input, photo)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to create article")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(article))
}

// GetAll lists all listings
// @Summary List articles
// @Description Returns every listing, newest first, with owner profiles
// @Tags articles
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Article}
// @Router /articles [get]
func (c *ArticleController) GetAll(ctx *gin.Context) {
	articles, err := c.articleService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(articles))
}

// GetByUser lists one user's listings
// @Summary List a user's articles
// @Tags articles
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Article}
// @Router /articles/user/{userId} [get]
func (c *ArticleController) GetByUser(ctx *gin.Context) {
	userID, err := helpers.ParseID(ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	articles, err := c.articleService.GetByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(articles))
}

// GetByID retrieves one listing
// @Summary Get an article
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} dto.APIResponse{data=models.Article}
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /articles/{id} [get]
func (c *ArticleController) GetByID(ctx *gin.Context) {
	article, err := c.articleService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(article))
}

// Update modifies a listing
// @Summary Update an article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param request body dto.UpdateArticleRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Article}
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /articles/{id} [put]
func (c *ArticleController) Update(ctx *gin.Context) {
	var req dto.UpdateArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	article, err := c.articleService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(article))
}

// Delete removes a listing
// @Summary Delete an article
// @Description Removes a listing and its stored photo
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /articles/{id} [delete]
func (c *ArticleController) Delete(ctx *gin.Context) {
	if err := c.articleService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Article supprimé"))
}
