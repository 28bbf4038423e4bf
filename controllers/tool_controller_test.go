package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"toolify/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolRouter(s *Srv) *gin.Engine {
	tc := NewToolController(s)
	r := gin.New()
	r.POST("/api/tools", tc.CreateTool)
	r.PATCH("/api/tools/:id", tc.UpdateTool)
	return r
}

func patchJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateToolPriceMustBePositive(t *testing.T) {
	s := newTestSrv(t)
	r := toolRouter(s)

	// 缺省（0）和负数都不行
	for _, body := range []string{
		`{"name":"Drill"}`,
		`{"name":"Drill","price":0}`,
		`{"name":"Drill","price":-5}`,
	} {
		assert.Equal(t, http.StatusBadRequest, postJSON(r, "/api/tools", body).Code, body)
	}

	w := postJSON(r, "/api/tools", `{"name":"Drill","price":175}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpdateToolPriceMustBePositive(t *testing.T) {
	s := newTestSrv(t)
	r := toolRouter(s)

	tool := &models.Tool{
		ID:       uuid.NewString(),
		Name:     "Drill",
		Quantity: 1,
		Price:    175,
		Status:   models.StatusAvailable,
	}
	require.NoError(t, s.Repo.CreateTool(context.Background(), tool))

	// 新建和修改用同一条规则：price > 0
	assert.Equal(t, http.StatusBadRequest,
		patchJSON(r, "/api/tools/"+tool.ID, `{"price":0}`).Code)
	assert.Equal(t, http.StatusBadRequest,
		patchJSON(r, "/api/tools/"+tool.ID, `{"price":-1}`).Code)
	assert.Equal(t, http.StatusOK,
		patchJSON(r, "/api/tools/"+tool.ID, `{"price":99.5}`).Code)

	got, err := s.Repo.FindToolByID(context.Background(), tool.ID)
	require.NoError(t, err)
	assert.Equal(t, 99.5, got.Price)
}
