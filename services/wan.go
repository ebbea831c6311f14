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

type WANService interface {
	List(ctx context.Context, siteID *uuid.UUID) ([]models.WANDeployment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.WANDeployment, error)
	Create(ctx context.Context, actor Actor, req *models.CreateWANRequest) (*models.WANDeployment, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req *models.UpdateWANRequest) (*models.WANDeployment, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type wanService struct {
	db *gorm.DB
}

func NewWANService(db *gorm.DB) WANService {
	return &wanService{db: db}
}

func (s *wanService) List(ctx context.Context, siteID *uuid.UUID) ([]models.WANDeployment, error) {
	query := s.db.WithContext(ctx).Model(&models.WANDeployment{})
	if siteID != nil {
		query = query.Where("site_id = ?", *siteID)
	}

	var deployments []models.WANDeployment
	if err := query.Order("created_at desc").Find(&deployments).Error; err != nil {
		return nil, err
	}
	return deployments, nil
}

func (s *wanService) Get(ctx context.Context, id uuid.UUID) (*models.WANDeployment, error) {
	var wan models.WANDeployment
	err := s.db.WithContext(ctx).
		Preload("History", func(tx *gorm.DB) *gorm.DB { return tx.Order("timestamp desc") }).
		First(&wan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("WAN deployment %w", ErrNotFound)
		}
		return nil, err
	}
	return &wan, nil
}

func (s *wanService) Create(ctx context.Context, actor Actor, req *models.CreateWANRequest) (*models.WANDeployment, error) {
	db := s.db.WithContext(ctx)

	site, err := authorizeSiteWrite(db, actor, req.SiteID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = constants.WANOrdered
	}

	wan := models.WANDeployment{
		ID:               uuid.New(),
		SiteID:           req.SiteID,
		Provider:         req.Provider,
		LinkType:         req.LinkType,
		Bandwidth:        req.Bandwidth,
		Status:           status,
		SubscribedBySite: req.SubscribedBySite,
		OrderDate:        req.OrderDate,
		ActivationDate:   req.ActivationDate,
		CreatedBy:        actor.ID,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if req.ContractDetails != nil {
		wan.ContractDetails = *req.ContractDetails
	}
	if wan.ContractDetails.RenewalType == "" {
		wan.ContractDetails.RenewalType = "automatic"
	}
	if wan.ContractDetails.Currency == "" {
		wan.ContractDetails.Currency = "EUR"
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&wan).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("New WAN connection added: %s %s", wan.Provider, wan.LinkType)
		return appendSiteEvent(tx, site.ID, constants.EventWANUpdated, actor.ID, details)
	})
	if err != nil {
		return nil, err
	}

	return &wan, nil
}

// Update overwrites fields, recording a history entry for each tracked
// scalar (provider, link_type, bandwidth, status) whose value actually
// changes. Untracked fields are overwritten silently.
func (s *wanService) Update(ctx context.Context, actor Actor, id uuid.UUID, req *models.UpdateWANRequest) (*models.WANDeployment, error) {
	db := s.db.WithContext(ctx)

	wan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := authorizeSiteWrite(db, actor, wan.SiteID); err != nil {
		return nil, err
	}

	now := time.Now()
	var history []models.WANHistoryEntry
	track := func(field, oldValue, newValue string) {
		history = append(history, models.WANHistoryEntry{
			ID:              uuid.New(),
			WANDeploymentID: wan.ID,
			Field:           field,
			OldValue:        oldValue,
			NewValue:        newValue,
			ChangedBy:       actor.ID,
			Timestamp:       now,
		})
	}

	if req.Provider != nil && *req.Provider != wan.Provider {
		track("provider", wan.Provider, *req.Provider)
		wan.Provider = *req.Provider
	}
	if req.LinkType != nil && *req.LinkType != wan.LinkType {
		track("link_type", wan.LinkType, *req.LinkType)
		wan.LinkType = *req.LinkType
	}
	if req.Bandwidth != nil && *req.Bandwidth != wan.Bandwidth {
		track("bandwidth", wan.Bandwidth, *req.Bandwidth)
		wan.Bandwidth = *req.Bandwidth
	}
	if req.Status != nil && *req.Status != wan.Status {
		track("status", wan.Status, *req.Status)
		wan.Status = *req.Status

		// Stamp lifecycle dates only when previously unset.
		if wan.Status == constants.WANActive && wan.ActivationDate == nil {
			wan.ActivationDate = &now
		}
		if wan.Status == constants.WANCanceled && wan.CancellationDate == nil {
			wan.CancellationDate = &now
		}
	}

	if req.SubscribedBySite != nil {
		wan.SubscribedBySite = *req.SubscribedBySite
	}
	if req.OrderDate != nil {
		wan.OrderDate = req.OrderDate
	}
	if req.ActivationDate != nil {
		wan.ActivationDate = req.ActivationDate
	}
	if req.CancellationDate != nil {
		wan.CancellationDate = req.CancellationDate
	}
	if req.ContractDetails != nil {
		wan.ContractDetails = *req.ContractDetails
	}
	wan.UpdatedAt = now

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range history {
			if err := tx.Create(&history[i]).Error; err != nil {
				return err
			}
		}
		wan.History = nil // avoid gorm re-saving preloaded associations
		if err := tx.Save(wan).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("WAN connection updated: %s %s", wan.Provider, wan.LinkType)
		return appendSiteEvent(tx, wan.SiteID, constants.EventWANUpdated, actor.ID, details)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *wanService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	db := s.db.WithContext(ctx)

	wan, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := authorizeSiteWrite(db, actor, wan.SiteID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wan_deployment_id = ?", id).Delete(&models.WANHistoryEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.WANDeployment{}, "id = ?", id).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("WAN connection deleted: %s %s", wan.Provider, wan.LinkType)
		return appendSiteEvent(tx, wan.SiteID, constants.EventWANUpdated, actor.ID, details)
	})
}
