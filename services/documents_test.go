package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/baptisteba/PassChef/constants"
	"github.com/baptisteba/PassChef/models"
	"github.com/baptisteba/PassChef/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocumentService(t *testing.T) (DocumentService, Actor, *models.Site) {
	t.Helper()

	database := newTestDB(t)
	admin := actorFor(newTestUser(t, database, constants.RoleAdmin))
	site := newTestSite(t, database, admin, newTestGroup(t, database, admin).ID)

	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	return NewDocumentService(database, blobs), admin, site
}

func TestExternalDocumentRequiresURL(t *testing.T) {
	svc, admin, site := newTestDocumentService(t)

	_, err := svc.CreateExternal(context.Background(), admin, &models.CreateExternalDocumentRequest{
		SiteID: site.ID,
		Name:   "Supplier portal",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExternalDocumentHasNoFile(t *testing.T) {
	svc, admin, site := newTestDocumentService(t)

	ctx := context.Background()
	document, err := svc.CreateExternal(ctx, admin, &models.CreateExternalDocumentRequest{
		SiteID: site.ID,
		Name:   "Supplier portal",
		URL:    "https://supplier.example.com/docs",
	})
	require.NoError(t, err)

	assert.True(t, document.IsExternal)
	assert.Empty(t, document.FileInfo.BlobKey)
	assert.Equal(t, constants.ModuleWifi, document.Module)

	_, _, err = svc.Download(ctx, document.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUploadAndDownloadRoundTrip(t *testing.T) {
	svc, admin, site := newTestDocumentService(t)

	ctx := context.Background()
	content := "floor plan bytes"
	document, err := svc.Upload(ctx, admin, &UploadInput{
		SiteID:   site.ID,
		Name:     "Floor plan",
		Module:   constants.ModuleWAN,
		Filename: "plan.pdf",
		MimeType: "application/pdf",
		Content:  strings.NewReader(content),
	})
	require.NoError(t, err)

	assert.False(t, document.IsExternal)
	assert.Empty(t, document.URL)
	assert.Equal(t, "plan.pdf", document.FileInfo.Filename)
	assert.Equal(t, int64(len(content)), document.FileInfo.Size)
	assert.True(t, strings.HasSuffix(document.FileInfo.BlobKey, ".pdf"))

	got, rc, err := svc.Download(ctx, document.ID)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
	assert.Equal(t, document.ID, got.ID)
}

func TestDocumentCommentsBumpDocument(t *testing.T) {
	svc, admin, site := newTestDocumentService(t)

	ctx := context.Background()
	document, err := svc.CreateExternal(ctx, admin, &models.CreateExternalDocumentRequest{
		SiteID: site.ID,
		Name:   "Runbook",
		URL:    "https://wiki.example.com/runbook",
	})
	require.NoError(t, err)

	comments, err := svc.AddComment(ctx, admin, document.ID, "reviewed, still accurate")
	require.NoError(t, err)
	require.Len(t, comments, 1)

	reloaded, err := svc.Get(ctx, document.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.UpdatedBy)
	assert.Equal(t, admin.ID, *reloaded.UpdatedBy)
	assert.True(t, reloaded.UpdatedAt.After(document.UpdatedAt))
}

func TestDocumentDeleteRemovesCommentsAndLogsEvent(t *testing.T) {
	database := newTestDB(t)
	admin := actorFor(newTestUser(t, database, constants.RoleAdmin))
	site := newTestSite(t, database, admin, newTestGroup(t, database, admin).ID)

	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	svc := NewDocumentService(database, blobs)

	ctx := context.Background()
	document, err := svc.Upload(ctx, admin, &UploadInput{
		SiteID:   site.ID,
		Filename: "notes.txt",
		Content:  strings.NewReader("hello"),
	})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, admin, document.ID, "obsolete")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin, document.ID))

	_, err = svc.Get(ctx, document.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var commentCount int64
	require.NoError(t, database.Model(&models.DocumentComment{}).Where("document_id = ?", document.ID).Count(&commentCount).Error)
	assert.Zero(t, commentCount)

	var events []models.SiteEvent
	require.NoError(t, database.Where("site_id = ? AND action = ?", site.ID, constants.EventDocumentDeleted).Find(&events).Error)
	assert.Len(t, events, 1)
}
