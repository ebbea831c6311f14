package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/baptisteba/PassChef/constants"
	"github.com/baptisteba/PassChef/models"
	"github.com/baptisteba/PassChef/storage"
	"github.com/baptisteba/PassChef/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadInput carries the multipart file metadata alongside the form fields.
type UploadInput struct {
	SiteID      uuid.UUID
	Name        string
	Type        string
	Description string
	Module      string
	Tags        []string
	Filename    string
	MimeType    string
	Content     io.Reader
}

type DocumentService interface {
	List(ctx context.Context, siteID *uuid.UUID, module string) ([]models.Document, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Document, error)
	CreateExternal(ctx context.Context, actor Actor, req *models.CreateExternalDocumentRequest) (*models.Document, error)
	Upload(ctx context.Context, actor Actor, in *UploadInput) (*models.Document, error)
	Download(ctx context.Context, id uuid.UUID) (*models.Document, io.ReadCloser, error)
	AddComment(ctx context.Context, actor Actor, id uuid.UUID, text string) ([]models.DocumentComment, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type documentService struct {
	db    *gorm.DB
	blobs storage.Store
}

func NewDocumentService(db *gorm.DB, blobs storage.Store) DocumentService {
	return &documentService{db: db, blobs: blobs}
}

func (s *documentService) List(ctx context.Context, siteID *uuid.UUID, module string) ([]models.Document, error) {
	query := s.db.WithContext(ctx).Model(&models.Document{})
	if siteID != nil {
		query = query.Where("site_id = ?", *siteID)
	}
	if module != "" {
		query = query.Where("module = ?", module)
	}

	var documents []models.Document
	if err := query.Order("created_at desc").Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (s *documentService) Get(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	return getDocument(s.db.WithContext(ctx), id)
}

func getDocument(db *gorm.DB, id uuid.UUID) (*models.Document, error) {
	var document models.Document
	err := db.
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("timestamp desc") }).
		First(&document, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document %w", ErrNotFound)
		}
		return nil, err
	}
	return &document, nil
}

// CreateExternal records a link-only document. The URL is mandatory here;
// a document is either a link or a stored file, never both, never neither.
func (s *documentService) CreateExternal(ctx context.Context, actor Actor, req *models.CreateExternalDocumentRequest) (*models.Document, error) {
	db := s.db.WithContext(ctx)

	if req.URL == "" {
		return nil, fmt.Errorf("%w: external documents require a url", ErrValidation)
	}

	site, err := authorizeSiteWrite(db, actor, req.SiteID)
	if err != nil {
		return nil, err
	}

	module := req.Module
	if module == "" {
		module = constants.ModuleWifi
	}

	document := models.Document{
		ID:          uuid.New(),
		SiteID:      req.SiteID,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		IsExternal:  true,
		URL:         req.URL,
		Tags:        req.Tags,
		Module:      module,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&document).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("New document added: %s (external link)", document.Name)
		return appendSiteEvent(tx, site.ID, constants.EventDocumentAdded, actor.ID, details)
	})
	if err != nil {
		return nil, err
	}

	return &document, nil
}

func (s *documentService) Upload(ctx context.Context, actor Actor, in *UploadInput) (*models.Document, error) {
	db := s.db.WithContext(ctx)

	site, err := authorizeSiteWrite(db, actor, in.SiteID)
	if err != nil {
		return nil, err
	}

	key, err := utils.GenerateBlobKey(in.Filename)
	if err != nil {
		return nil, err
	}

	size, err := s.blobs.Save(key, in.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	name := in.Name
	if name == "" {
		name = in.Filename
	}
	module := in.Module
	if module == "" {
		module = constants.ModuleWifi
	}

	document := models.Document{
		ID:          uuid.New(),
		SiteID:      in.SiteID,
		Name:        name,
		Type:        in.Type,
		Description: in.Description,
		IsExternal:  false,
		FileInfo: models.FileInfo{
			Filename: in.Filename,
			BlobKey:  key,
			MimeType: in.MimeType,
			Size:     size,
		},
		Tags:      in.Tags,
		Module:    module,
		CreatedBy: actor.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&document).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("New document uploaded: %s", document.Name)
		return appendSiteEvent(tx, site.ID, constants.EventDocumentAdded, actor.ID, details)
	})
	if err != nil {
		// The record never landed; drop the orphaned blob.
		if delErr := s.blobs.Delete(key); delErr != nil {
			log.Printf("Failed to clean up blob %s: %v", key, delErr)
		}
		return nil, err
	}

	return &document, nil
}

func (s *documentService) Download(ctx context.Context, id uuid.UUID) (*models.Document, io.ReadCloser, error) {
	document, err := getDocument(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, nil, err
	}

	if document.IsExternal || document.FileInfo.BlobKey == "" {
		return nil, nil, fmt.Errorf("%w: document has no stored file", ErrValidation)
	}

	rc, err := s.blobs.Open(document.FileInfo.BlobKey)
	if err != nil {
		return nil, nil, fmt.Errorf("stored file %w", ErrNotFound)
	}
	return document, rc, nil
}

func (s *documentService) AddComment(ctx context.Context, actor Actor, id uuid.UUID, text string) ([]models.DocumentComment, error) {
	db := s.db.WithContext(ctx)

	document, err := getDocument(db, id)
	if err != nil {
		return nil, err
	}
	if _, err := authorizeSiteWrite(db, actor, document.SiteID); err != nil {
		return nil, err
	}

	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		comment := models.DocumentComment{
			ID:         uuid.New(),
			DocumentID: document.ID,
			Text:       text,
			UserID:     actor.ID,
			Timestamp:  time.Now(),
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(document).Updates(map[string]interface{}{
			"updated_at": time.Now(),
			"updated_by": actor.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	var comments []models.DocumentComment
	if err := db.Where("document_id = ?", id).Order("timestamp desc").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *documentService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	db := s.db.WithContext(ctx)

	document, err := getDocument(db, id)
	if err != nil {
		return err
	}
	if _, err := authorizeSiteWrite(db, actor, document.SiteID); err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&models.DocumentComment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Document{}, "id = ?", id).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("Document removed: %s", document.Name)
		return appendSiteEvent(tx, document.SiteID, constants.EventDocumentDeleted, actor.ID, details)
	})
	if err != nil {
		return err
	}

	// Blob removal is best effort; the record is already gone.
	if !document.IsExternal && document.FileInfo.BlobKey != "" {
		if err := s.blobs.Delete(document.FileInfo.BlobKey); err != nil {
			log.Printf("Failed to delete blob %s: %v", document.FileInfo.BlobKey, err)
		}
	}

	return nil
}
