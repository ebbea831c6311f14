package models

import (
	"time"

	"github.com/google/uuid"
)

// ===============================
// WifiDeployment
// ===============================
type WifiDeployment struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"site_id"`
	Name           string              `gorm:"type:varchar(255);not null" json:"name"`
	Status         string              `gorm:"type:varchar(20);default:'planning'" json:"status"`
	StartDate      *time.Time          `json:"start_date,omitempty"`
	CompletionDate *time.Time          `json:"completion_date,omitempty"`
	Notes          string              `gorm:"type:text" json:"notes"`
	CreatedBy      uuid.UUID           `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Comments       []DeploymentComment `gorm:"foreignKey:DeploymentID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Tasks          []DeploymentTask    `gorm:"foreignKey:DeploymentID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

type DeploymentComment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeploymentID uuid.UUID `gorm:"type:uuid;not null;index" json:"deployment_id"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	UserID       uuid.UUID `gorm:"type:uuid;not null" json:"-"`
	User         UserRef   `gorm:"-" json:"user"`
	Importance   string    `gorm:"type:varchar(20);default:'info'" json:"importance"`
	Timestamp    time.Time `gorm:"not null" json:"timestamp"`
}

// DeploymentTask has no identity outside its parent deployment; it is
// created, updated and deleted only through the parent.
type DeploymentTask struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DeploymentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"deployment_id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Status       string     `gorm:"type:varchar(20);default:'not_started'" json:"status"`
	Priority     string     `gorm:"type:varchar(20);default:'medium'" json:"priority"`
	AssignedTo   *uuid.UUID `gorm:"type:uuid" json:"assigned_to,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	CreatedBy    uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ===============================
// ArchivedWifiDeployment
// ===============================
// Write-once snapshot of a deployment, taken at archive time. Never mutated,
// no restore operation.
type ArchivedWifiDeployment struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID         uuid.UUID                   `gorm:"type:uuid;not null;index" json:"site_id"`
	Name           string                      `gorm:"type:varchar(255);not null" json:"name"`
	Status         string                      `gorm:"type:varchar(20)" json:"status"`
	StartDate      *time.Time                  `json:"start_date,omitempty"`
	CompletionDate *time.Time                  `json:"completion_date,omitempty"`
	Notes          string                      `gorm:"type:text" json:"notes"`
	CreatedBy      uuid.UUID                   `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	ArchivedAt     time.Time                   `gorm:"not null" json:"archived_at"`
	ArchivedBy     uuid.UUID                   `gorm:"type:uuid;not null" json:"archived_by"`
	Comments       []ArchivedDeploymentComment `gorm:"foreignKey:DeploymentID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Tasks          []ArchivedDeploymentTask    `gorm:"foreignKey:DeploymentID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

type ArchivedDeploymentComment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeploymentID uuid.UUID `gorm:"type:uuid;not null;index" json:"deployment_id"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	UserID       uuid.UUID `gorm:"type:uuid;not null" json:"user"`
	Importance   string    `gorm:"type:varchar(20)" json:"importance"`
	Timestamp    time.Time `json:"timestamp"`
}

type ArchivedDeploymentTask struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DeploymentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"deployment_id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Status       string     `gorm:"type:varchar(20)" json:"status"`
	Priority     string     `gorm:"type:varchar(20)" json:"priority"`
	AssignedTo   *uuid.UUID `gorm:"type:uuid" json:"assigned_to,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	CreatedBy    uuid.UUID  `gorm:"type:uuid" json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CreateDeploymentRequest struct {
	Name   string `json:"name" binding:"required"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type UpdateDeploymentRequest struct {
	Name           *string    `json:"name"`
	Status         *string    `json:"status"`
	Notes          *string    `json:"notes"`
	CompletionDate *time.Time `json:"completion_date"`
}

type DeploymentCommentRequest struct {
	Text       string `json:"text" binding:"required"`
	Importance string `json:"importance"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}
