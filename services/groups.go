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

type GroupService interface {
	List(ctx context.Context, actor Actor) ([]models.Group, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Group, error)
	Create(ctx context.Context, actor Actor, req *models.CreateGroupRequest) (*models.Group, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req *models.UpdateGroupRequest) (*models.Group, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	GrantAccess(ctx context.Context, actor Actor, groupID uuid.UUID, req *models.GrantGroupAccessRequest) error
	RevokeAccess(ctx context.Context, actor Actor, groupID, userID uuid.UUID) error
}

type groupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) GroupService {
	return &groupService{db: db}
}

// authorizeGroup is the access policy for group-scoped operations.
// Admins pass everywhere. A group_owner must have created the group.
// Contributors and readers need a grant row; readers cannot write.
func authorizeGroup(db *gorm.DB, actor Actor, groupID uuid.UUID, write bool) error {
	if actor.IsAdmin() {
		return nil
	}

	switch actor.Role {
	case string(constants.RoleGroupOwner):
		var group models.Group
		if err := db.First(&group, "id = ?", groupID).Error; err != nil {
			return fmt.Errorf("group %w", ErrNotFound)
		}
		if group.CreatedBy != actor.ID {
			return fmt.Errorf("%w for this group", ErrForbidden)
		}
		return nil
	case string(constants.RoleContributor), string(constants.RoleReader):
		var access models.GroupAccess
		err := db.Where("group_id = ? AND user_id = ?", groupID, actor.ID).First(&access).Error
		if err != nil {
			return fmt.Errorf("%w for this group", ErrForbidden)
		}
		if write && access.Role == string(constants.RoleReader) {
			return fmt.Errorf("%w: read-only access", ErrForbidden)
		}
		return nil
	default:
		return fmt.Errorf("%w for this group", ErrForbidden)
	}
}

func (s *groupService) List(ctx context.Context, actor Actor) ([]models.Group, error) {
	db := s.db.WithContext(ctx)
	var groups []models.Group

	if actor.IsAdmin() {
		if err := db.Order("name asc").Find(&groups).Error; err != nil {
			return nil, err
		}
		return groups, nil
	}

	// Non-admins see groups they created plus groups they were granted.
	err := db.
		Where("created_by = ?", actor.ID).
		Or("id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Model(&models.GroupAccess{}).Select("group_id").Where("user_id = ?", actor.ID)).
		Order("name asc").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *groupService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Group, error) {
	db := s.db.WithContext(ctx)

	var group models.Group
	if err := db.Preload("Events", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("timestamp desc")
	}).First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("group %w", ErrNotFound)
		}
		return nil, err
	}

	if err := authorizeGroup(db, actor, id, false); err != nil {
		return nil, err
	}

	return &group, nil
}

func (s *groupService) Create(ctx context.Context, actor Actor, req *models.CreateGroupRequest) (*models.Group, error) {
	group := models.Group{
		ID:             uuid.New(),
		Name:           req.Name,
		PrimaryContact: req.PrimaryContact,
		Notes:          req.Notes,
		CreatedBy:      actor.ID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		return appendGroupEvent(tx, group.ID, constants.EventCreated, actor.ID, "Group created")
	})
	if err != nil {
		return nil, err
	}

	return &group, nil
}

func (s *groupService) Update(ctx context.Context, actor Actor, id uuid.UUID, req *models.UpdateGroupRequest) (*models.Group, error) {
	db := s.db.WithContext(ctx)

	var group models.Group
	if err := db.First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("group %w", ErrNotFound)
		}
		return nil, err
	}

	if err := authorizeGroup(db, actor, id, true); err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.PrimaryContact != nil {
		group.PrimaryContact = *req.PrimaryContact
	}
	if req.Notes != nil {
		group.Notes = *req.Notes
	}
	group.UpdatedAt = time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&group).Error; err != nil {
			return err
		}
		return appendGroupEvent(tx, group.ID, constants.EventUpdated, actor.ID, "Group updated")
	})
	if err != nil {
		return nil, err
	}

	return &group, nil
}

// Delete removes the group outright. Sites keep their group_id and become
// orphans; there is no cascade.
func (s *groupService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	db := s.db.WithContext(ctx)

	var group models.Group
	if err := db.First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("group %w", ErrNotFound)
		}
		return err
	}

	if err := authorizeGroup(db, actor, id, true); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupAccess{}).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
}

func (s *groupService) GrantAccess(ctx context.Context, actor Actor, groupID uuid.UUID, req *models.GrantGroupAccessRequest) error {
	db := s.db.WithContext(ctx)

	if req.Role != string(constants.RoleContributor) && req.Role != string(constants.RoleReader) {
		return fmt.Errorf("%w: access role must be contributor or reader", ErrValidation)
	}

	var group models.Group
	if err := db.First(&group, "id = ?", groupID).Error; err != nil {
		return fmt.Errorf("group %w", ErrNotFound)
	}

	if err := authorizeGroup(db, actor, groupID, true); err != nil {
		return err
	}

	var user models.User
	if err := db.First(&user, "id = ?", req.UserID).Error; err != nil {
		return fmt.Errorf("user %w", ErrNotFound)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// One grant per (group, user); replace the role if it exists.
		var access models.GroupAccess
		err := tx.Where("group_id = ? AND user_id = ?", groupID, req.UserID).First(&access).Error
		switch {
		case err == nil:
			access.Role = req.Role
			if err := tx.Save(&access).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			access = models.GroupAccess{
				ID:        uuid.New(),
				GroupID:   groupID,
				UserID:    req.UserID,
				Role:      req.Role,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(&access).Error; err != nil {
				return err
			}
		default:
			return err
		}

		details := fmt.Sprintf("User %s granted %s access", user.Email, req.Role)
		return appendGroupEvent(tx, groupID, constants.EventUserAdded, actor.ID, details)
	})
}

func (s *groupService) RevokeAccess(ctx context.Context, actor Actor, groupID, userID uuid.UUID) error {
	db := s.db.WithContext(ctx)

	var group models.Group
	if err := db.First(&group, "id = ?", groupID).Error; err != nil {
		return fmt.Errorf("group %w", ErrNotFound)
	}

	if err := authorizeGroup(db, actor, groupID, true); err != nil {
		return err
	}

	var access models.GroupAccess
	if err := db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&access).Error; err != nil {
		return fmt.Errorf("access grant %w", ErrNotFound)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&access).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("Access revoked for user %s", userID)
		return appendGroupEvent(tx, groupID, constants.EventUserRemoved, actor.ID, details)
	})
}

func appendGroupEvent(tx *gorm.DB, groupID uuid.UUID, action string, userID uuid.UUID, details string) error {
	return tx.Create(&models.GroupEvent{
		ID:        uuid.New(),
		GroupID:   groupID,
		Action:    action,
		UserID:    userID,
		Details:   details,
		Timestamp: time.Now(),
	}).Error
}
