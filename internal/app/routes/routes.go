// Package routes wires controllers to URL paths.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ybamri/recycleapp/internal/app/controllers"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	articleController *controllers.ArticleController,
	defiController *controllers.DefiController,
	participationController *controllers.ParticipationController,
	messageController *controllers.MessageController,
	recyclingController *controllers.RecyclingController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/verify-email", authController.VerifyEmail)
	}

	// --- User routes ---
	users := api.Group("/users")
	{
		// Legacy client paths for the auth flow
		users.POST("/register", authController.Register)
		users.POST("/login", authController.Login)
		users.GET("/verify-email", authController.VerifyEmail)

		users.GET("/roles/available", userController.AvailableRoles)
		users.GET("/:id", userController.GetByID)

		usersAuth := users.Group("")
		usersAuth.Use(authMiddleware.JWTAuth())
		{
			usersAuth.PUT("/:id", userController.Update)
			usersAuth.DELETE("/:id", userController.Delete)

			usersAdmin := usersAuth.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				usersAdmin.GET("", userController.GetAll)
			}
		}
	}

	// --- Article routes ---
	articles := api.Group("/articles")
	{
		articles.GET("", articleController.GetAll)
		articles.GET("/user/:userId", articleController.GetByUser)
		articles.GET("/:id", articleController.GetByID)

		articlesAuth := articles.Group("")
		articlesAuth.Use(authMiddleware.JWTAuth())
		{
			articlesAuth.POST("", articleController.Create)
			articlesAuth.POST("/create/:userId", articleController.CreateForUser)
			articlesAuth.PUT("/:id", articleController.Update)
			articlesAuth.PATCH("/:id", articleController.Update)
			articlesAuth.DELETE("/:id", articleController.Delete)
		}
	}

	// --- Challenge routes ---
	defis := api.Group("/defis")
	{
		defis.GET("", defiController.GetAll)
		defis.GET("/:id", defiController.GetByID)
		defis.GET("/:id/participants", defiController.GetParticipants)

		defisAuth := defis.Group("")
		defisAuth.Use(authMiddleware.JWTAuth())
		{
			defisAuth.POST("", defiController.Create)
			defisAuth.PUT("/:id", defiController.Update)
			defisAuth.PATCH("/:id", defiController.Update)
			defisAuth.DELETE("/:id", defiController.Delete)
			defisAuth.POST("/:id/participer", defiController.Participer)
		}
	}

	// --- Participation routes ---
	participations := api.Group("/participations")
	{
		participations.GET("/user/:userId", participationController.GetByUser)
		participations.GET("/defi/:id", participationController.GetByDefi)
		participations.GET("/:id", participationController.GetByID)

		participationsAuth := participations.Group("")
		participationsAuth.Use(authMiddleware.JWTAuth())
		{
			participationsAuth.POST("", participationController.Create)
			participationsAuth.DELETE("/:id", participationController.Delete)
		}
	}

	// --- Message routes ---
	messages := api.Group("/messages")
	messages.Use(authMiddleware.JWTAuth())
	{
		messages.POST("", messageController.Send)
		messages.GET("/conversation/:userId/:adminId", messageController.GetConversation)
		messages.GET("/user/:userId/admin/:adminId", messageController.GetConversation)
		messages.PATCH("/read/:userId/:adminId", messageController.MarkRead)

		messagesAdmin := messages.Group("")
		messagesAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			messagesAdmin.GET("/admin/:adminId", messageController.GetAdminConversations)
		}
	}

	// --- Recycling assistant ---
	api.POST("/recyclage/chat", recyclingController.Ask)
	api.POST("/recycling/chat", recyclingController.Ask)
}
