package models

import (
	"time"

	"github.com/google/uuid"
)

// ===============================
// ExternalTool
// ===============================
// Reference link to an outside tool (monitoring console, supplier portal...).
// No sub-entities.
type ExternalTool struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"site_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	URL         string     `gorm:"type:varchar(2048);not null" json:"url"`
	Icon        string     `gorm:"type:varchar(100)" json:"icon"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	UpdatedBy   *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateExternalToolRequest struct {
	SiteID      uuid.UUID `json:"site_id"`
	Name        string    `json:"name" binding:"required"`
	URL         string    `json:"url" binding:"required"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
}

type UpdateExternalToolRequest struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}
