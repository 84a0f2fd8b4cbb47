package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/ybamri/recycleapp/internal/app/services"
)

type staticGenerator struct {
	answer string
}

func (g *staticGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return g.answer, nil
}

func newChatRouter(answer string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := services.NewRecyclingService(&staticGenerator{answer: answer}, zerolog.Nop())
	controller := NewRecyclingController(service, zerolog.Nop())

	router := gin.New()
	router.POST("/api/recycling/chat", controller.Ask)
	return router
}

func TestRecyclingChat(t *testing.T) {
	t.Run("ReturnsAssistantAnswer", func(t *testing.T) {
		router := newChatRouter("Dépose le verre dans le conteneur vert.")

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/recycling/chat",
			strings.NewReader(`{"message":"Où jeter le verre ?"}`))
		request.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := recorder.Body.String()
		assert.True(t, gjson.Get(body, "success").Bool())
		assert.Equal(t, "Dépose le verre dans le conteneur vert.", gjson.Get(body, "data.response").String())
	})

	t.Run("RejectsMissingMessage", func(t *testing.T) {
		router := newChatRouter("unused")

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/recycling/chat", strings.NewReader(`{}`))
		request.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		body := recorder.Body.String()
		assert.False(t, gjson.Get(body, "success").Bool())
	})
}
