package controllers

import (
	"testing"

	"toolify/db"
	"toolify/live"
	"toolify/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestSrv 用内存 sqlite 起一个够 handler 测试用的 Srv
func newTestSrv(t *testing.T) *Srv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Tool{}))

	hub := live.NewHub()
	t.Cleanup(hub.Close)

	return &Srv{
		Repo: db.NewRepo(gdb),
		Hub:  hub,
		Log:  zap.NewNop(),
	}
}
