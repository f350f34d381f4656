package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupParamRouter() (*gin.Engine, *uint) {
	gin.SetMode(gin.TestMode)
	var captured uint
	r := gin.New()
	r.GET("/quizzes/:id", ExtractUintParam("id", "quizID"), func(c *gin.Context) {
		captured = c.MustGet("quizID").(uint)
		c.Status(http.StatusOK)
	})
	return r, &captured
}

func TestExtractUintParam_ValidID(t *testing.T) {
	r, captured := setupParamRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quizzes/42", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), *captured)
}

func TestExtractUintParam_RejectsNonNumeric(t *testing.T) {
	r, _ := setupParamRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quizzes/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractUintParam_RejectsZero(t *testing.T) {
	r, _ := setupParamRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quizzes/0", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code, "Нулевой ID не соответствует ни одной сущности")
}
