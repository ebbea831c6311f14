package services

import (
	"context"
	"strings"
	"testing"

	"github.com/baptisteba/PassChef/constants"
	"github.com/baptisteba/PassChef/models"
	"github.com/baptisteba/PassChef/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The group access policy covers everything living under a site, not just
// the site itself.

func TestUngrantedReaderCannotMutateSiteContent(t *testing.T) {
	database := newTestDB(t)
	owner := actorFor(newTestUser(t, database, constants.RoleGroupOwner))
	reader := actorFor(newTestUser(t, database, constants.RoleReader))
	site := newTestSite(t, database, owner, newTestGroup(t, database, owner).ID)

	ctx := context.Background()

	_, err := NewDeploymentService(database).Create(ctx, reader, site.ID, &models.CreateDeploymentRequest{Name: "AP rollout"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = NewWANService(database).Create(ctx, reader, &models.CreateWANRequest{
		SiteID:   site.ID,
		Provider: "Orange",
		LinkType: "FTTH",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = NewExternalToolService(database).Create(ctx, reader, &models.CreateExternalToolRequest{
		SiteID: site.ID,
		Name:   "Controller",
		URL:    "https://unifi.example.com",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	documents := NewDocumentService(database, blobs)

	_, err = documents.CreateExternal(ctx, reader, &models.CreateExternalDocumentRequest{
		SiteID: site.ID,
		Name:   "Runbook",
		URL:    "https://wiki.example.com/runbook",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = documents.Upload(ctx, reader, &UploadInput{
		SiteID:   site.ID,
		Filename: "plan.pdf",
		Content:  strings.NewReader("bytes"),
	})
	assert.ErrorIs(t, err, ErrForbidden)

	// Nothing landed.
	var deployments, wans, tools, docs int64
	require.NoError(t, database.Model(&models.WifiDeployment{}).Count(&deployments).Error)
	require.NoError(t, database.Model(&models.WANDeployment{}).Count(&wans).Error)
	require.NoError(t, database.Model(&models.ExternalTool{}).Count(&tools).Error)
	require.NoError(t, database.Model(&models.Document{}).Count(&docs).Error)
	assert.Zero(t, deployments)
	assert.Zero(t, wans)
	assert.Zero(t, tools)
	assert.Zero(t, docs)
}

func TestGrantedReaderStillBlockedFromWrites(t *testing.T) {
	database := newTestDB(t)
	owner := actorFor(newTestUser(t, database, constants.RoleGroupOwner))
	reader := newTestUser(t, database, constants.RoleReader)
	group := newTestGroup(t, database, owner)
	site := newTestSite(t, database, owner, group.ID)

	ctx := context.Background()
	require.NoError(t, NewGroupService(database).GrantAccess(ctx, owner, group.ID, &models.GrantGroupAccessRequest{
		UserID: reader.ID,
		Role:   string(constants.RoleReader),
	}))

	_, err := NewDeploymentService(database).Create(ctx, actorFor(reader), site.ID, &models.CreateDeploymentRequest{Name: "AP rollout"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGrantedContributorCanMutateSiteContent(t *testing.T) {
	database := newTestDB(t)
	owner := actorFor(newTestUser(t, database, constants.RoleGroupOwner))
	contributor := newTestUser(t, database, constants.RoleContributor)
	group := newTestGroup(t, database, owner)
	site := newTestSite(t, database, owner, group.ID)

	ctx := context.Background()
	require.NoError(t, NewGroupService(database).GrantAccess(ctx, owner, group.ID, &models.GrantGroupAccessRequest{
		UserID: contributor.ID,
		Role:   string(constants.RoleContributor),
	}))

	svc := NewDeploymentService(database)
	deployment, err := svc.Create(ctx, actorFor(contributor), site.ID, &models.CreateDeploymentRequest{Name: "AP rollout"})
	require.NoError(t, err)

	inProgress := constants.DeploymentInProgress
	_, err = svc.Update(ctx, actorFor(contributor), deployment.ID, &models.UpdateDeploymentRequest{Status: &inProgress})
	require.NoError(t, err)
}

func TestSubEntityUpdatesCheckSiteAccess(t *testing.T) {
	database := newTestDB(t)
	owner := actorFor(newTestUser(t, database, constants.RoleGroupOwner))
	stranger := actorFor(newTestUser(t, database, constants.RoleContributor))
	site := newTestSite(t, database, owner, newTestGroup(t, database, owner).ID)

	ctx := context.Background()
	deployments := NewDeploymentService(database)
	deployment, err := deployments.Create(ctx, owner, site.ID, &models.CreateDeploymentRequest{Name: "AP rollout"})
	require.NoError(t, err)
	task, err := deployments.AddTask(ctx, owner, deployment.ID, &models.CreateTaskRequest{Title: "survey"})
	require.NoError(t, err)

	blocked := constants.DeploymentBlocked
	_, err = deployments.Update(ctx, stranger, deployment.ID, &models.UpdateDeploymentRequest{Status: &blocked})
	assert.ErrorIs(t, err, ErrForbidden)

	done := constants.TaskCompleted
	_, err = deployments.UpdateTask(ctx, stranger, deployment.ID, task.ID, &models.UpdateTaskRequest{Status: &done})
	assert.ErrorIs(t, err, ErrForbidden)

	err = deployments.DeleteTask(ctx, stranger, deployment.ID, task.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = deployments.AddComment(ctx, stranger, deployment.ID, &models.DeploymentCommentRequest{Text: "hi"})
	assert.ErrorIs(t, err, ErrForbidden)

	err = deployments.Archive(ctx, stranger, deployment.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	wans := NewWANService(database)
	wan, err := wans.Create(ctx, owner, &models.CreateWANRequest{SiteID: site.ID, Provider: "Orange", LinkType: "FTTO"})
	require.NoError(t, err)

	provider := "SFR"
	_, err = wans.Update(ctx, stranger, wan.ID, &models.UpdateWANRequest{Provider: &provider})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, wans.Delete(ctx, stranger, wan.ID), ErrForbidden)

	tools := NewExternalToolService(database)
	tool, err := tools.Create(ctx, owner, &models.CreateExternalToolRequest{SiteID: site.ID, Name: "Grafana", URL: "https://grafana.example.com"})
	require.NoError(t, err)

	name := "Renamed"
	_, err = tools.Update(ctx, stranger, tool.ID, &models.UpdateExternalToolRequest{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, tools.Delete(ctx, stranger, tool.ID), ErrForbidden)
}
