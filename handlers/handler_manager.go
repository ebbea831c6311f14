package handlers

import (
	"github.com/baptisteba/PassChef/services"
)

type HandlerManager struct {
	AuthenticationHandler *AuthenticationHandler
	GroupHandler          *GroupHandler
	SiteHandler           *SiteHandler
	DocumentHandler       *DocumentHandler
	ExternalToolHandler   *ExternalToolHandler
	WANHandler            *WANHandler
	DeploymentHandler     *DeploymentHandler
	AdminHandler          *AdminHandler
}

func NewHandlerManager(sm *services.ServiceManager) *HandlerManager {
	return &HandlerManager{
		AuthenticationHandler: NewAuthenticationHandler(sm.AuthenticationService),
		GroupHandler:          NewGroupHandler(sm.GroupService),
		SiteHandler:           NewSiteHandler(sm.SiteService),
		DocumentHandler:       NewDocumentHandler(sm.DocumentService),
		ExternalToolHandler:   NewExternalToolHandler(sm.ExternalToolService),
		WANHandler:            NewWANHandler(sm.WANService),
		DeploymentHandler:     NewDeploymentHandler(sm.DeploymentService),
		AdminHandler:          NewAdminHandler(sm.AdminService),
	}
}
