package models

import (
	"time"

	"github.com/google/uuid"
)

// ===============================
// Document
// ===============================
// A document is either an external link (IsExternal + URL) or a stored file
// (FileInfo). The two variants come in through separate endpoints and the
// service rejects records that carry both or neither.
type Document struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"site_id"`
	Name        string            `gorm:"type:varchar(255);not null" json:"name"`
	Type        string            `gorm:"type:varchar(100)" json:"type"`
	Description string            `gorm:"type:text" json:"description"`
	IsExternal  bool              `gorm:"default:false" json:"is_external"`
	URL         string            `gorm:"type:varchar(2048)" json:"url,omitempty"`
	FileInfo    FileInfo          `gorm:"embedded;embeddedPrefix:file_" json:"file_info"`
	Tags        []string          `gorm:"serializer:json" json:"tags"`
	Module      string            `gorm:"type:varchar(20);default:'wifi'" json:"module"`
	CreatedBy   uuid.UUID         `gorm:"type:uuid;not null" json:"created_by"`
	UpdatedBy   *uuid.UUID        `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Comments    []DocumentComment `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

type FileInfo struct {
	Filename string `gorm:"type:varchar(255)" json:"filename,omitempty"`
	BlobKey  string `gorm:"type:varchar(255)" json:"file_id,omitempty"`
	MimeType string `gorm:"type:varchar(100)" json:"mime_type,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// DocumentComment is append-only; comments are never edited or removed.
type DocumentComment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null;index" json:"document_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	UserID     uuid.UUID `gorm:"type:uuid;not null" json:"user"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
}

type CreateExternalDocumentRequest struct {
	SiteID      uuid.UUID `json:"site_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	URL         string    `json:"url" binding:"required"`
	Module      string    `json:"module"`
	Tags        []string  `json:"tags"`
}

type DocumentCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
