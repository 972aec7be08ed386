package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM) ---

type userSQLite struct {
	ID            uint64 `gorm:"primaryKey;column:id"`
	Email         string `gorm:"size:255;uniqueIndex"`
	PasswordHash  string `gorm:"size:100"`
	FirstName     string `gorm:"size:100"`
	LastName      string `gorm:"size:100"`
	Role          string `gorm:"type:text"` // ← no enum
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (userSQLite) TableName() string { return "users" }

type otpSQLite struct {
	ID        uint64 `gorm:"primaryKey;column:id"`
	Email     string `gorm:"size:255"`
	Code      string `gorm:"size:6"`
	Purpose   string `gorm:"type:text"` // ← no enum
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (otpSQLite) TableName() string { return "otp_verifications" }

type applicationSQLite struct {
	ID             uint64 `gorm:"primaryKey;column:id"`
	ApplicationRef string `gorm:"size:16;uniqueIndex"`
	UserID         uint64
	LoanType       string `gorm:"type:text"` // ← no enum
	Amount         float64
	TenureMonths   int

	PhoneNumber        string
	BVN                string
	NIN                string
	DateOfBirth        string
	ResidentialAddress string
	MaritalStatus      string

	EmployerName    string
	EmployerAddress string
	JobTitle        string
	MonthlyIncome   float64

	BusinessName    string
	BusinessAddress string
	CACNumber       string
	BusinessType    string
	MonthlyRevenue  float64

	VehicleMake  string
	VehicleModel string
	VehicleYear  int
	VehicleValue float64

	NextOfKinName         string
	NextOfKinPhone        string
	NextOfKinRelationship string
	NextOfKinAddress      string

	BankName      string
	AccountNumber string
	AccountName   string

	Status string `gorm:"type:text"` // ← no enum

	ApprovedAmount  *float64
	InterestRate    *float64
	ApprovedTenure  *int
	LoanID          *string `gorm:"size:16"`
	RejectionReason *string
	ReviewedAt      *time.Time
	ReviewedBy      *uint64
	Notes           string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (applicationSQLite) TableName() string { return "loan_applications" }

type documentSQLite struct {
	ID            uint64 `gorm:"primaryKey;column:id"`
	ApplicationID uint64 `gorm:"uniqueIndex:ux_documents_app_type"`
	DocumentType  string `gorm:"size:32;uniqueIndex:ux_documents_app_type"`
	FileName      string `gorm:"size:255"`
	StoragePath   string
	FileSize      int64
	MimeType      string `gorm:"size:100"`
	PublicID      string `gorm:"size:255"`
	UploadedAt    time.Time
	UpdatedAt     time.Time
}

func (documentSQLite) TableName() string { return "documents" }

type auditSQLite struct {
	ID            uint64 `gorm:"primaryKey;column:id"`
	ApplicationID uint64
	Action        string `gorm:"type:text"` // ← no enum
	PerformedBy   uint64
	Notes         string
	Metadata      string
	CreatedAt     time.Time
}

func (auditSQLite) TableName() string { return "loan_application_logs" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas, NOT the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&userSQLite{}, &otpSQLite{}, &applicationSQLite{}, &documentSQLite{}, &auditSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
