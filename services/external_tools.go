package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baptisteba/PassChef/constants"
	"github.com/baptisteba/PassChef/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExternalToolService interface {
	List(ctx context.Context, siteID *uuid.UUID) ([]models.ExternalTool, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ExternalTool, error)
	Create(ctx context.Context, actor Actor, req *models.CreateExternalToolRequest) (*models.ExternalTool, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req *models.UpdateExternalToolRequest) (*models.ExternalTool, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type externalToolService struct {
	db *gorm.DB
}

func NewExternalToolService(db *gorm.DB) ExternalToolService {
	return &externalToolService{db: db}
}

func (s *externalToolService) List(ctx context.Context, siteID *uuid.UUID) ([]models.ExternalTool, error) {
	query := s.db.WithContext(ctx).Model(&models.ExternalTool{})
	if siteID != nil {
		query = query.Where("site_id = ?", *siteID)
	}

	var tools []models.ExternalTool
	if err := query.Order("name asc").Find(&tools).Error; err != nil {
		return nil, err
	}
	return tools, nil
}

func (s *externalToolService) Get(ctx context.Context, id uuid.UUID) (*models.ExternalTool, error) {
	var tool models.ExternalTool
	if err := s.db.WithContext(ctx).First(&tool, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("external tool %w", ErrNotFound)
		}
		return nil, err
	}
	return &tool, nil
}

func (s *externalToolService) Create(ctx context.Context, actor Actor, req *models.CreateExternalToolRequest) (*models.ExternalTool, error) {
	db := s.db.WithContext(ctx)

	site, err := authorizeSiteWrite(db, actor, req.SiteID)
	if err != nil {
		return nil, err
	}

	tool := models.ExternalTool{
		ID:          uuid.New(),
		SiteID:      req.SiteID,
		Name:        req.Name,
		URL:         req.URL,
		Icon:        req.Icon,
		Description: req.Description,
		CreatedBy:   actor.ID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tool).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("New external tool added: %s", tool.Name)
		return appendSiteEvent(tx, site.ID, constants.EventExternalToolAdded, actor.ID, details)
	})
	if err != nil {
		return nil, err
	}

	return &tool, nil
}

func (s *externalToolService) Update(ctx context.Context, actor Actor, id uuid.UUID, req *models.UpdateExternalToolRequest) (*models.ExternalTool, error) {
	db := s.db.WithContext(ctx)

	tool, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := authorizeSiteWrite(db, actor, tool.SiteID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		tool.Name = *req.Name
	}
	if req.URL != nil {
		tool.URL = *req.URL
	}
	if req.Icon != nil {
		tool.Icon = *req.Icon
	}
	if req.Description != nil {
		tool.Description = *req.Description
	}
	tool.UpdatedAt = time.Now()
	tool.UpdatedBy = &actor.ID

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(tool).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("External tool updated: %s", tool.Name)
		return appendSiteEvent(tx, tool.SiteID, constants.EventExternalToolUpdated, actor.ID, details)
	})
	if err != nil {
		return nil, err
	}

	return tool, nil
}

func (s *externalToolService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	db := s.db.WithContext(ctx)

	tool, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := authorizeSiteWrite(db, actor, tool.SiteID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ExternalTool{}, "id = ?", id).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("External tool deleted: %s", tool.Name)
		return appendSiteEvent(tx, tool.SiteID, constants.EventExternalToolDeleted, actor.ID, details)
	})
}
