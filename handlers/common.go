package handlers

import (
	"errors"
	"net/http"

	"github.com/baptisteba/PassChef/middleware"
	"github.com/baptisteba/PassChef/models"
	"github.com/baptisteba/PassChef/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentActor rebuilds the acting user from the claims the auth middleware
// attached. Aborts with 401 when the claims are missing or malformed.
func currentActor(c *gin.Context) (services.Actor, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return services.Actor{}, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return services.Actor{}, false
	}

	return services.Actor{
		ID:    userID,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, true
}

// parseIDParam parses a uuid path parameter. A malformed id can never match
// a resource, so it reports not found rather than bad request.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse("resource not found"))
		return uuid.Nil, false
	}
	return id, true
}

// optionalSiteFilter reads the ?site query parameter if present.
func optionalSiteFilter(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("site")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid site filter"))
		return nil, false
	}
	return &id, true
}

// respondError maps service sentinel errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("internal server error"))
	}
}
