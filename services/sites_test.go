package services

import (
	"context"
	"testing"

	"github.com/baptisteba/PassChef/constants"
	"github.com/baptisteba/PassChef/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteCreateDefaultsCountry(t *testing.T) {
	database := newTestDB(t)
	admin := actorFor(newTestUser(t, database, constants.RoleAdmin))
	group := newTestGroup(t, database, admin)

	svc := NewSiteService(database)
	site, err := svc.Create(context.Background(), admin, &models.CreateSiteRequest{
		GroupID: group.ID,
		Name:    "Lyon warehouse",
	})
	require.NoError(t, err)
	assert.Equal(t, "France", site.Address.Country)

	got, err := svc.Get(context.Background(), admin, site.ID)
	require.NoError(t, err)
	require.Len(t, got.Events, 1)
	assert.Equal(t, constants.EventCreated, got.Events[0].Action)
}

func TestSiteCreateChecksGroupAccess(t *testing.T) {
	database := newTestDB(t)
	owner := actorFor(newTestUser(t, database, constants.RoleGroupOwner))
	stranger := actorFor(newTestUser(t, database, constants.RoleGroupOwner))
	group := newTestGroup(t, database, owner)

	svc := NewSiteService(database)
	_, err := svc.Create(context.Background(), stranger, &models.CreateSiteRequest{
		GroupID: group.ID,
		Name:    "Lyon warehouse",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSiteUpdateReplacesExternalLinks(t *testing.T) {
	database := newTestDB(t)
	admin := actorFor(newTestUser(t, database, constants.RoleAdmin))
	site := newTestSite(t, database, admin, newTestGroup(t, database, admin).ID)

	ctx := context.Background()
	svc := NewSiteService(database)

	updated, err := svc.Update(ctx, admin, site.ID, &models.UpdateSiteRequest{
		ExternalLinks: []models.ExternalLinkInput{
			{Name: "Controller", URL: "https://unifi.example.com"},
			{Name: "Monitoring", URL: "https://grafana.example.com"},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.ExternalLinks, 2)

	// A later update with one link replaces the whole set.
	updated, err = svc.Update(ctx, admin, site.ID, &models.UpdateSiteRequest{
		ExternalLinks: []models.ExternalLinkInput{
			{Name: "Controller v2", URL: "https://unifi2.example.com"},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.ExternalLinks, 1)
	assert.Equal(t, "Controller v2", updated.ExternalLinks[0].Name)
}

func TestSiteDeleteRemovesEventTrail(t *testing.T) {
	database := newTestDB(t)
	admin := actorFor(newTestUser(t, database, constants.RoleAdmin))
	site := newTestSite(t, database, admin, newTestGroup(t, database, admin).ID)

	ctx := context.Background()
	svc := NewSiteService(database)
	require.NoError(t, svc.Delete(ctx, admin, site.ID))

	_, err := svc.Get(ctx, admin, site.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var events int64
	require.NoError(t, database.Model(&models.SiteEvent{}).Where("site_id = ?", site.ID).Count(&events).Error)
	assert.Zero(t, events)
}
