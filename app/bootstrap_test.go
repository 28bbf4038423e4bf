package app

import (
	"context"
	"testing"

	"toolify/db"
	"toolify/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, repo *db.Repo, email string) {
	t.Helper()
	err := repo.CreateUser(context.Background(), &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     "Test User",
		PasswordHash: "x",
		Role:         models.RoleUser,
	})
	require.NoError(t, err)
}

func TestPromoteConfiguredAdmins(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}))
	repo := db.NewRepo(gdb)
	ctx := context.Background()

	seedUser(t, repo, "ops@example.com")
	seedUser(t, repo, "bob@example.com")

	cfg := Config{AdminEmails: []string{"ops@example.com", "ghost@example.com"}}
	PromoteConfiguredAdmins(ctx, cfg, repo, zap.NewNop())

	// 配置里的账号被提成管理员
	ops, err := repo.FindUserByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, ops.Role)

	// 没配置的账号保持 user
	bob, err := repo.FindUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, bob.Role)

	// 还没注册的邮箱不报错也不产生账号
	_, err = repo.FindUserByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 重启重跑是幂等的
	PromoteConfiguredAdmins(ctx, cfg, repo, zap.NewNop())
	ops, err = repo.FindUserByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, ops.Role)

	n, err := repo.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
