package services

import (
	"github.com/baptisteba/PassChef/config"
	"github.com/baptisteba/PassChef/storage"
	"gorm.io/gorm"
)

type ServiceManager struct {
	AuthenticationService AuthenticationService
	GroupService          GroupService
	SiteService           SiteService
	DocumentService       DocumentService
	ExternalToolService   ExternalToolService
	WANService            WANService
	DeploymentService     DeploymentService
	AdminService          AdminService
}

func NewServiceManager(db *gorm.DB, blobs storage.Store, cfg *config.Config) *ServiceManager {
	return &ServiceManager{
		AuthenticationService: NewAuthenticationService(db, cfg.JWTSecret),
		GroupService:          NewGroupService(db),
		SiteService:           NewSiteService(db),
		DocumentService:       NewDocumentService(db, blobs),
		ExternalToolService:   NewExternalToolService(db),
		WANService:            NewWANService(db),
		DeploymentService:     NewDeploymentService(db),
		AdminService:          NewAdminService(db, cfg.ResetOperatorEmail),
	}
}
