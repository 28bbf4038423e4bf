package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"toolify/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupRouter(s *Srv) *gin.Engine {
	r := gin.New()
	r.POST("/api/auth/signup", NewAuthController(s).Signup)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignupAlwaysCreatesPlainUser(t *testing.T) {
	s := newTestSrv(t)
	r := signupRouter(s)

	// 请求体里夹带 role 字段，也只能得到 user
	w := postJSON(r, "/api/auth/signup",
		`{"fullName":"Alice","email":"Alice@Example.com","password":"hunter2hunter2","role":"admin"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	u, err := s.Repo.FindUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.False(t, u.IsAdmin())
	// 邮箱落库统一小写
	assert.Equal(t, "alice@example.com", u.Email)
	// 密码散列绝不原样入库
	assert.NotEqual(t, "hunter2hunter2", u.PasswordHash)
}

func TestSignupDuplicateEmail(t *testing.T) {
	s := newTestSrv(t)
	r := signupRouter(s)

	body := `{"fullName":"Alice","email":"alice@example.com","password":"hunter2hunter2"}`
	require.Equal(t, http.StatusCreated, postJSON(r, "/api/auth/signup", body).Code)
	assert.Equal(t, http.StatusConflict, postJSON(r, "/api/auth/signup", body).Code)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	s := newTestSrv(t)
	r := signupRouter(s)

	w := postJSON(r, "/api/auth/signup",
		`{"fullName":"Alice","email":"alice@example.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
