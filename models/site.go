package models

import (
	"time"

	"github.com/google/uuid"
)

// ===============================
// Site
// ===============================
type Site struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"group_id"`
	Name           string             `gorm:"type:varchar(255);not null" json:"name"`
	Address        Address            `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	GPSCoordinates GPSCoordinates     `gorm:"embedded;embeddedPrefix:gps_" json:"gps_coordinates"`
	OnsiteContact  Contact            `gorm:"embedded;embeddedPrefix:contact_" json:"onsite_contact"`
	CreatedBy      uuid.UUID          `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Events         []SiteEvent        `gorm:"foreignKey:SiteID;constraint:OnDelete:CASCADE" json:"events,omitempty"`
	ExternalLinks  []SiteExternalLink `gorm:"foreignKey:SiteID;constraint:OnDelete:CASCADE" json:"external_links,omitempty"`
}

type Address struct {
	Street     string `gorm:"type:varchar(255)" json:"street"`
	City       string `gorm:"type:varchar(255)" json:"city"`
	State      string `gorm:"type:varchar(255)" json:"state"`
	PostalCode string `gorm:"type:varchar(20)" json:"postal_code"`
	Country    string `gorm:"type:varchar(100);default:'France'" json:"country"`
}

type GPSCoordinates struct {
	Latitude  string `gorm:"type:varchar(50)" json:"latitude"`
	Longitude string `gorm:"type:varchar(50)" json:"longitude"`
}

// SiteEvent is the site's audit trail. Every mutation of a site-scoped
// sub-entity appends one row, in the same transaction as the entity write.
type SiteEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID    uuid.UUID `gorm:"type:uuid;not null;index" json:"site_id"`
	Action    string    `gorm:"type:varchar(40);not null" json:"action"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user"`
	Details   string    `gorm:"type:text" json:"details"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

type SiteExternalLink struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID      uuid.UUID `gorm:"type:uuid;not null;index" json:"site_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	URL         string    `gorm:"type:varchar(2048);not null" json:"url"`
	Description string    `gorm:"type:text" json:"description"`
}

type CreateSiteRequest struct {
	GroupID        uuid.UUID      `json:"group_id" binding:"required"`
	Name           string         `json:"name" binding:"required"`
	Address        Address        `json:"address"`
	GPSCoordinates GPSCoordinates `json:"gps_coordinates"`
	OnsiteContact  Contact        `json:"onsite_contact"`
}

type ExternalLinkInput struct {
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description"`
}

type UpdateSiteRequest struct {
	Name           *string             `json:"name"`
	Address        *Address            `json:"address"`
	GPSCoordinates *GPSCoordinates     `json:"gps_coordinates"`
	OnsiteContact  *Contact            `json:"onsite_contact"`
	ExternalLinks  []ExternalLinkInput `json:"external_links"`
}
