package models

import (
	"time"

	"github.com/google/uuid"
)

// ===============================
// Group
// ===============================
type Group struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string       `gorm:"type:varchar(255);not null" json:"name"`
	PrimaryContact Contact      `gorm:"embedded;embeddedPrefix:contact_" json:"primary_contact"`
	Notes          string       `gorm:"type:text" json:"notes"`
	CreatedBy      uuid.UUID    `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Events         []GroupEvent `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"events,omitempty"`
}

// Contact is shared by groups (primary contact) and sites (onsite contact).
type Contact struct {
	Name  string `gorm:"type:varchar(255)" json:"name"`
	Email string `gorm:"type:varchar(255)" json:"email"`
	Phone string `gorm:"type:varchar(50)" json:"phone"`
}

// GroupEvent is one row of the group's append-only history. Events live in
// their own table so the log can grow without rewriting the parent.
type GroupEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index" json:"group_id"`
	Action    string    `gorm:"type:varchar(30);not null" json:"action"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user"`
	Details   string    `gorm:"type:text" json:"details"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

// GroupAccess grants a non-admin user an access role on a group.
type GroupAccess struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index:idx_group_user,unique" json:"group_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_group_user,unique" json:"user_id"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"` // contributor / reader
	CreatedAt time.Time `json:"created_at"`
}

type CreateGroupRequest struct {
	Name           string  `json:"name" binding:"required"`
	PrimaryContact Contact `json:"primary_contact"`
	Notes          string  `json:"notes"`
}

type UpdateGroupRequest struct {
	Name           *string  `json:"name"`
	PrimaryContact *Contact `json:"primary_contact"`
	Notes          *string  `json:"notes"`
}

type GrantGroupAccessRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   string    `json:"role" binding:"required"`
}
