package services

import (
	"context"
	"fmt"
	"log"

	"github.com/baptisteba/PassChef/db"
	"github.com/baptisteba/PassChef/models"
	"gorm.io/gorm"
)

type AdminService interface {
	ResetDatabase(ctx context.Context, actor Actor) error
}

type adminService struct {
	db            *gorm.DB
	operatorEmail string
}

func NewAdminService(database *gorm.DB, operatorEmail string) AdminService {
	return &adminService{db: database, operatorEmail: operatorEmail}
}

// ResetDatabase wipes every table except users. Gated twice: the route
// requires the admin role, and the caller's email must exactly match the
// configured operator email. No operator email configured means the
// operation is disabled.
func (s *adminService) ResetDatabase(ctx context.Context, actor Actor) error {
	if s.operatorEmail == "" || actor.Email != s.operatorEmail {
		return fmt.Errorf("%w to reset the database", ErrForbidden)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range db.AllModels() {
			if _, ok := model.(*models.User); ok {
				continue
			}
			err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Database reset performed by %s", actor.Email)
	return nil
}
