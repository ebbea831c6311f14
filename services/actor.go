package services

import (
	"github.com/baptisteba/PassChef/constants"
	"github.com/google/uuid"
)

// Actor is the authenticated identity a handler passes down to services,
// built from the verified token claims.
type Actor struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

func (a Actor) IsAdmin() bool {
	return a.Role == string(constants.RoleAdmin)
}
