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

type SiteService interface {
	List(ctx context.Context, actor Actor, groupID *uuid.UUID) ([]models.Site, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Site, error)
	Create(ctx context.Context, actor Actor, req *models.CreateSiteRequest) (*models.Site, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req *models.UpdateSiteRequest) (*models.Site, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	Events(ctx context.Context, actor Actor, id uuid.UUID) ([]models.SiteEvent, error)
}

type siteService struct {
	db *gorm.DB
}

func NewSiteService(db *gorm.DB) SiteService {
	return &siteService{db: db}
}

func (s *siteService) List(ctx context.Context, actor Actor, groupID *uuid.UUID) ([]models.Site, error) {
	db := s.db.WithContext(ctx)

	query := db.Model(&models.Site{})
	if groupID != nil {
		query = query.Where("group_id = ?", *groupID)
	}

	var sites []models.Site
	if err := query.Order("name asc").Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

func (s *siteService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Site, error) {
	return getSite(s.db.WithContext(ctx), id)
}

func getSite(db *gorm.DB, id uuid.UUID) (*models.Site, error) {
	var site models.Site
	err := db.
		Preload("Events", func(tx *gorm.DB) *gorm.DB { return tx.Order("timestamp desc") }).
		Preload("ExternalLinks").
		First(&site, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("site %w", ErrNotFound)
		}
		return nil, err
	}
	return &site, nil
}

func (s *siteService) Create(ctx context.Context, actor Actor, req *models.CreateSiteRequest) (*models.Site, error) {
	db := s.db.WithContext(ctx)

	var group models.Group
	if err := db.First(&group, "id = ?", req.GroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("group %w", ErrNotFound)
		}
		return nil, err
	}

	if err := authorizeGroup(db, actor, req.GroupID, true); err != nil {
		return nil, err
	}

	site := models.Site{
		ID:             uuid.New(),
		GroupID:        req.GroupID,
		Name:           req.Name,
		Address:        req.Address,
		GPSCoordinates: req.GPSCoordinates,
		OnsiteContact:  req.OnsiteContact,
		CreatedBy:      actor.ID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if site.Address.Country == "" {
		site.Address.Country = "France"
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&site).Error; err != nil {
			return err
		}
		return appendSiteEvent(tx, site.ID, constants.EventCreated, actor.ID, "Site created")
	})
	if err != nil {
		return nil, err
	}

	return &site, nil
}

func (s *siteService) Update(ctx context.Context, actor Actor, id uuid.UUID, req *models.UpdateSiteRequest) (*models.Site, error) {
	db := s.db.WithContext(ctx)

	var site models.Site
	if err := db.First(&site, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("site %w", ErrNotFound)
		}
		return nil, err
	}

	if err := authorizeGroup(db, actor, site.GroupID, true); err != nil {
		return nil, err
	}

	if req.Name != nil {
		site.Name = *req.Name
	}
	if req.Address != nil {
		site.Address = *req.Address
	}
	if req.GPSCoordinates != nil {
		site.GPSCoordinates = *req.GPSCoordinates
	}
	if req.OnsiteContact != nil {
		site.OnsiteContact = *req.OnsiteContact
	}
	site.UpdatedAt = time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&site).Error; err != nil {
			return err
		}

		// External links are replaced wholesale, not patched.
		if req.ExternalLinks != nil {
			if err := tx.Where("site_id = ?", site.ID).Delete(&models.SiteExternalLink{}).Error; err != nil {
				return err
			}
			for _, link := range req.ExternalLinks {
				row := models.SiteExternalLink{
					ID:          uuid.New(),
					SiteID:      site.ID,
					Name:        link.Name,
					URL:         link.URL,
					Description: link.Description,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		return appendSiteEvent(tx, site.ID, constants.EventUpdated, actor.ID, "Site updated")
	})
	if err != nil {
		return nil, err
	}

	return getSite(db, id)
}

func (s *siteService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	db := s.db.WithContext(ctx)

	var site models.Site
	if err := db.First(&site, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("site %w", ErrNotFound)
		}
		return err
	}

	if err := authorizeGroup(db, actor, site.GroupID, true); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_id = ?", id).Delete(&models.SiteEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("site_id = ?", id).Delete(&models.SiteExternalLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&site).Error
	})
}

func (s *siteService) Events(ctx context.Context, actor Actor, id uuid.UUID) ([]models.SiteEvent, error) {
	db := s.db.WithContext(ctx)

	if err := db.First(&models.Site{}, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("site %w", ErrNotFound)
		}
		return nil, err
	}

	var events []models.SiteEvent
	if err := db.Where("site_id = ?", id).Order("timestamp desc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// appendSiteEvent writes one audit row. Callers run it inside the same
// transaction as the entity write so the trail cannot diverge from the data.
func appendSiteEvent(tx *gorm.DB, siteID uuid.UUID, action string, userID uuid.UUID, details string) error {
	return tx.Create(&models.SiteEvent{
		ID:        uuid.New(),
		SiteID:    siteID,
		Action:    action,
		UserID:    userID,
		Details:   details,
		Timestamp: time.Now(),
	}).Error
}

// authorizeSiteWrite resolves the site and checks the actor may mutate
// content under it, per the owning group's access policy. Every site-scoped
// sub-entity mutation goes through here.
func authorizeSiteWrite(db *gorm.DB, actor Actor, siteID uuid.UUID) (*models.Site, error) {
	site, err := siteExists(db, siteID)
	if err != nil {
		return nil, err
	}
	if err := authorizeGroup(db, actor, site.GroupID, true); err != nil {
		return nil, err
	}
	return site, nil
}

// siteExists is shared by the site-scoped sub-entity services.
func siteExists(db *gorm.DB, id uuid.UUID) (*models.Site, error) {
	var site models.Site
	if err := db.First(&site, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("site %w", ErrNotFound)
		}
		return nil, err
	}
	return &site, nil
}
