package models

import (
	"time"

	"github.com/google/uuid"
)

// ===============================
// WANDeployment
// ===============================
type WANDeployment struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"site_id"`
	Provider         string            `gorm:"type:varchar(255);not null" json:"provider"`
	LinkType         string            `gorm:"type:varchar(20);not null" json:"link_type"`
	Bandwidth        string            `gorm:"type:varchar(100);not null" json:"bandwidth"`
	Status           string            `gorm:"type:varchar(20);default:'ordered'" json:"status"`
	SubscribedBySite bool              `gorm:"default:false" json:"subscribed_by_site"`
	OrderDate        *time.Time        `json:"order_date,omitempty"`
	ActivationDate   *time.Time        `json:"activation_date,omitempty"`
	CancellationDate *time.Time        `json:"cancellation_date,omitempty"`
	ContractDetails  ContractDetails   `gorm:"embedded;embeddedPrefix:contract_" json:"contract_details"`
	CreatedBy        uuid.UUID         `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	History          []WANHistoryEntry `gorm:"foreignKey:WANDeploymentID;constraint:OnDelete:CASCADE" json:"history,omitempty"`
}

type ContractDetails struct {
	Reference   string     `gorm:"type:varchar(255)" json:"reference"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	RenewalType string     `gorm:"type:varchar(20);default:'automatic'" json:"renewal_type"`
	MonthlyCost float64    `json:"monthly_cost"`
	Currency    string     `gorm:"type:varchar(10);default:'EUR'" json:"currency"`
	Notes       string     `gorm:"type:text" json:"notes"`
}

// WANHistoryEntry records one tracked-field change: the old and new values
// are captured before the field is overwritten. Only provider, link_type,
// bandwidth and status are tracked.
type WANHistoryEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WANDeploymentID uuid.UUID `gorm:"type:uuid;not null;index" json:"wan_deployment_id"`
	Field           string    `gorm:"type:varchar(30);not null" json:"field"`
	OldValue        string    `gorm:"type:text" json:"old_value"`
	NewValue        string    `gorm:"type:text" json:"new_value"`
	ChangedBy       uuid.UUID `gorm:"type:uuid;not null" json:"changed_by"`
	Timestamp       time.Time `gorm:"not null" json:"timestamp"`
}

type CreateWANRequest struct {
	SiteID           uuid.UUID        `json:"site_id"`
	Provider         string           `json:"provider" binding:"required"`
	LinkType         string           `json:"link_type" binding:"required"`
	Bandwidth        string           `json:"bandwidth" binding:"required"`
	Status           string           `json:"status"`
	SubscribedBySite bool             `json:"subscribed_by_site"`
	OrderDate        *time.Time       `json:"order_date"`
	ActivationDate   *time.Time       `json:"activation_date"`
	ContractDetails  *ContractDetails `json:"contract_details"`
}

type UpdateWANRequest struct {
	Provider         *string          `json:"provider"`
	LinkType         *string          `json:"link_type"`
	Bandwidth        *string          `json:"bandwidth"`
	Status           *string          `json:"status"`
	SubscribedBySite *bool            `json:"subscribed_by_site"`
	OrderDate        *time.Time       `json:"order_date"`
	ActivationDate   *time.Time       `json:"activation_date"`
	CancellationDate *time.Time       `json:"cancellation_date"`
	ContractDetails  *ContractDetails `json:"contract_details"`
}
