package document

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("document not found")

type Type string

const (
	TypeGovernmentID   Type = "GOVERNMENT_ID"
	TypeUtilityBill    Type = "UTILITY_BILL"
	TypeWorkID         Type = "WORK_ID"
	TypeCACCertificate Type = "CAC_CERTIFICATE"
	TypeCACDocuments   Type = "CAC_DOCUMENTS"
	TypeSelfie         Type = "SELFIE"
	TypeOther          Type = "OTHER"
)

func (t Type) Valid() bool {
	switch t {
	case TypeGovernmentID, TypeUtilityBill, TypeWorkID, TypeCACCertificate,
		TypeCACDocuments, TypeSelfie, TypeOther:
		return true
	}
	return false
}

// Document is the stored metadata of one upload. The unique index on
// (application_id, document_type) keeps at most one current row per type;
// re-uploads overwrite it.
type Document struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID uint64    `gorm:"uniqueIndex:ux_documents_app_type" json:"-"`
	DocumentType  Type      `gorm:"size:32;uniqueIndex:ux_documents_app_type" json:"document_type"`
	FileName      string    `gorm:"size:255" json:"file_name"`
	StoragePath   string    `gorm:"type:text" json:"url"`
	FileSize      int64     `json:"file_size"`
	MimeType      string    `gorm:"size:100" json:"mime_type"`
	PublicID      string    `gorm:"size:255" json:"-"`
	UploadedAt    time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Document) TableName() string { return "documents" }
