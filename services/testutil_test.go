package services

import (
	"context"
	"testing"
	"time"

	"github.com/baptisteba/PassChef/constants"
	"github.com/baptisteba/PassChef/db"
	"github.com/baptisteba/PassChef/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database keeps every pooled connection on the same
	// data while isolating tests from each other.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db.AllModels()...))
	return database
}

func newTestUser(t *testing.T, database *gorm.DB, role constants.RoleEnum) models.User {
	t.Helper()

	id := uuid.New()
	user := models.User{
		ID:        id,
		Name:      "user-" + id.String()[:8],
		Email:     id.String()[:8] + "@example.com",
		Password:  "hashed",
		Role:      string(role),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, database.Create(&user).Error)
	return user
}

func actorFor(user models.User) Actor {
	return Actor{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
}

func newTestGroup(t *testing.T, database *gorm.DB, actor Actor) *models.Group {
	t.Helper()

	group, err := NewGroupService(database).Create(context.Background(), actor, &models.CreateGroupRequest{
		Name: "Retail France",
	})
	require.NoError(t, err)
	return group
}

func newTestSite(t *testing.T, database *gorm.DB, actor Actor, groupID uuid.UUID) *models.Site {
	t.Helper()

	site, err := NewSiteService(database).Create(context.Background(), actor, &models.CreateSiteRequest{
		GroupID: groupID,
		Name:    "Paris HQ",
	})
	require.NoError(t, err)
	return site
}
