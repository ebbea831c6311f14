package services

import (
	"context"
	"testing"

	"github.com/baptisteba/PassChef/constants"
	"github.com/baptisteba/PassChef/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetDatabaseWipesEverythingButUsers(t *testing.T) {
	database := newTestDB(t)
	admin := actorFor(newTestUser(t, database, constants.RoleAdmin))
	site := newTestSite(t, database, admin, newTestGroup(t, database, admin).ID)

	ctx := context.Background()
	_, err := NewDeploymentService(database).Create(ctx, admin, site.ID, &models.CreateDeploymentRequest{Name: "AP rollout"})
	require.NoError(t, err)

	svc := NewAdminService(database, admin.Email)
	require.NoError(t, svc.ResetDatabase(ctx, admin))

	var groups, sites, deployments, users int64
	require.NoError(t, database.Model(&models.Group{}).Count(&groups).Error)
	require.NoError(t, database.Model(&models.Site{}).Count(&sites).Error)
	require.NoError(t, database.Model(&models.WifiDeployment{}).Count(&deployments).Error)
	require.NoError(t, database.Model(&models.User{}).Count(&users).Error)

	assert.Zero(t, groups)
	assert.Zero(t, sites)
	assert.Zero(t, deployments)
	assert.Equal(t, int64(1), users)
}

func TestResetDatabaseRequiresExactOperatorEmail(t *testing.T) {
	database := newTestDB(t)
	admin := actorFor(newTestUser(t, database, constants.RoleAdmin))

	svc := NewAdminService(database, "ops@example.com")
	err := svc.ResetDatabase(context.Background(), admin)
	assert.ErrorIs(t, err, ErrForbidden)

	// No operator configured disables the operation entirely.
	svc = NewAdminService(database, "")
	err = svc.ResetDatabase(context.Background(), admin)
	assert.ErrorIs(t, err, ErrForbidden)
}
