package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/ybamri/recycleapp/internal/app/controllers"
	"github.com/ybamri/recycleapp/internal/middleware"
)

// The React client calls these paths verbatim, so their registration is part
// of the API contract.
func TestSetupRouterRegistersClientPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	SetupRouter(
		router,
		&controllers.AuthController{},
		&controllers.UserController{},
		&controllers.ArticleController{},
		&controllers.DefiController{},
		&controllers.ParticipationController{},
		&controllers.MessageController{},
		&controllers.RecyclingController{},
		&middleware.AuthMiddleware{},
	)

	registered := make(map[string]bool)
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/auth/verify-email",
		"POST /api/users/register",
		"POST /api/users/login",
		"GET /api/users/verify-email",
		"GET /api/users/:id",
		"POST /api/articles",
		"POST /api/articles/create/:userId",
		"PATCH /api/articles/:id",
		"PUT /api/articles/:id",
		"GET /api/defis/:id/participants",
		"PATCH /api/defis/:id",
		"PUT /api/defis/:id",
		"POST /api/defis/:id/participer",
		"GET /api/participations/defi/:id",
		"GET /api/participations/user/:userId",
		"GET /api/messages/conversation/:userId/:adminId",
		"PATCH /api/messages/read/:userId/:adminId",
		"GET /api/messages/admin/:adminId",
		"POST /api/recyclage/chat",
		"POST /api/recycling/chat",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "route not registered: %s", route)
	}
}
