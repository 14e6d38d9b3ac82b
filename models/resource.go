package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

const (
	SourceFile = "file"
	SourceAI   = "ai"
)

// ResourceType is a top-level classification for resources. Seeded at
// deployment time, never mutated through the API.
type ResourceType struct {
	gorm.Model
	Key   string `gorm:"unique;index" json:"key"`
	Value string `json:"value"`
}

// ResourceSubType belongs to exactly one ResourceType.
type ResourceSubType struct {
	gorm.Model
	Key    string `gorm:"unique;index" json:"key"`
	Value  string `json:"value"`
	TypeID uint   `gorm:"not null" json:"type_id"`
}

// Resource is a teaching asset. Its payload is either an uploaded file or
// AI-generated content, keyed by SourceType; exactly one family of payload
// fields is populated at any time. Repositories enforce the exclusivity.
type Resource struct {
	gorm.Model
	Title       string `gorm:"index" json:"title"`
	Description string `json:"description"`
	TypeID      uint   `gorm:"not null;index" json:"type_id"`
	SubTypeID   uint   `gorm:"not null;index" json:"sub_type_id"`
	UserID      uint   `gorm:"not null" json:"user_id"`
	SourceType  string `gorm:"size:10;not null" json:"source_type"` // file or ai

	// File payload, set when SourceType == "file".
	FileName *string `json:"file_name,omitempty"`
	FilePath *string `json:"file_path,omitempty"` // relative to the uploads root
	FileSize *int64  `json:"file_size,omitempty"`
	FileType *string `json:"file_type,omitempty"` // MIME

	// AI payload, set when SourceType == "ai".
	Content *string `json:"content,omitempty"`

	Type     *ResourceType    `json:"type,omitempty"`
	SubType  *ResourceSubType `gorm:"foreignKey:SubTypeID" json:"sub_type,omitempty"`
	Sessions []Session        `gorm:"many2many:session_resource" json:"-"`
}

// ValidSourceType reports whether s is a known resource source.
func ValidSourceType(s string) bool {
	return s == SourceFile || s == SourceAI
}

// MarshalJSON adds the linked session ids, which the Sessions relation
// itself never serializes.
func (r Resource) MarshalJSON() ([]byte, error) {
	type alias Resource
	return json.Marshal(struct {
		alias
		SessionIDs []uint `json:"session_ids"`
	}{alias(r), r.SessionIDs()})
}

// SessionIDs returns the ids of the sessions this resource is linked to.
func (r *Resource) SessionIDs() []uint {
	ids := make([]uint, 0, len(r.Sessions))
	for _, s := range r.Sessions {
		ids = append(ids, s.ID)
	}
	return ids
}

// HasFilePayload reports whether any file payload field is populated.
func (r *Resource) HasFilePayload() bool {
	return r.FileName != nil || r.FilePath != nil || r.FileSize != nil || r.FileType != nil
}

// HasAIPayload reports whether the generated content field is populated.
func (r *Resource) HasAIPayload() bool {
	return r.Content != nil
}
