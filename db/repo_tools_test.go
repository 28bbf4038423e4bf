package db

import (
	"context"
	"testing"
	"time"

	"toolify/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Tool{}))
	return NewRepo(gdb)
}

func checkedOutDrill(t *testing.T, repo *Repo) *models.Tool {
	t.Helper()
	holder := "alice@example.com"
	site := "Site A"
	due := time.Now().Add(48 * time.Hour).UTC()
	tool := &models.Tool{
		ID:                 uuid.NewString(),
		Name:               "Drill",
		Quantity:           1,
		Price:              175,
		Status:             models.StatusCheckedOut,
		CheckedOutBy:       &holder,
		JobSite:            &site,
		ExpectedReturnDate: &due,
	}
	require.NoError(t, repo.CreateTool(context.Background(), tool))
	return tool
}

// 管理端硬改状态回 Available 时，必须连持有人字段一起清掉
func TestUpdateToolFieldsForceAvailableClearsHolder(t *testing.T) {
	repo := newTestRepo(t)
	tool := checkedOutDrill(t, repo)

	got, err := repo.UpdateToolFields(context.Background(), tool.ID,
		map[string]any{"status": models.StatusAvailable})
	require.NoError(t, err)

	assert.Equal(t, models.StatusAvailable, got.Status)
	assert.True(t, got.Availability)
	assert.Nil(t, got.CheckedOutBy)
	assert.Nil(t, got.CheckedInBy)
	assert.Nil(t, got.JobSite)
	assert.Nil(t, got.ExpectedReturnDate)
}

// 改成维修中不动持有人字段：工具可能是借出状态下送修的
func TestUpdateToolFieldsMaintenanceKeepsHolder(t *testing.T) {
	repo := newTestRepo(t)
	tool := checkedOutDrill(t, repo)

	got, err := repo.UpdateToolFields(context.Background(), tool.ID,
		map[string]any{"status": models.StatusMaintenance})
	require.NoError(t, err)

	assert.Equal(t, models.StatusMaintenance, got.Status)
	require.NotNil(t, got.CheckedOutBy)
	assert.Equal(t, "alice@example.com", *got.CheckedOutBy)
}

func TestUpdateToolFieldsUnknownTool(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.UpdateToolFields(context.Background(), uuid.NewString(),
		map[string]any{"name": "Impact Driver"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
