package application

import (
	"errors"
	"time"

	"loanhub-backend/internal/domain/document"
	"loanhub-backend/internal/domain/user"
)

var (
	ErrNotFound = errors.New("loan application not found")
	// ErrNotPending guards the one-shot transition: approve/reject is only
	// legal while the application is still PENDING.
	ErrNotPending = errors.New("loan application is not pending")
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type LoanType string

const (
	LoanTypeSalaryCash   LoanType = "SALARY_CASH"
	LoanTypeSalaryCar    LoanType = "SALARY_CAR"
	LoanTypeBusinessCash LoanType = "BUSINESS_CASH"
	LoanTypeBusinessCar  LoanType = "BUSINESS_CAR"
)

// Prefix returns the short product code embedded in generated loan ids.
func (t LoanType) Prefix() string {
	switch t {
	case LoanTypeSalaryCash:
		return "SL"
	case LoanTypeSalaryCar:
		return "SC"
	case LoanTypeBusinessCash:
		return "BC"
	case LoanTypeBusinessCar:
		return "BCR"
	default:
		return "LN"
	}
}

func (t LoanType) Valid() bool {
	switch t {
	case LoanTypeSalaryCash, LoanTypeSalaryCar, LoanTypeBusinessCash, LoanTypeBusinessCar:
		return true
	}
	return false
}

// RequiresBusiness reports whether the product carries the business section.
func (t LoanType) RequiresBusiness() bool {
	return t == LoanTypeBusinessCash || t == LoanTypeBusinessCar
}

// RequiresVehicle reports whether the product carries the vehicle section.
func (t LoanType) RequiresVehicle() bool {
	return t == LoanTypeSalaryCar || t == LoanTypeBusinessCar
}

type Application struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// Externally-facing human identifier, e.g. APP-7K2M9QW4XT.
	ApplicationRef string   `gorm:"size:16;uniqueIndex:ux_applications_ref" json:"application_id"`
	UserID         uint64   `gorm:"index:idx_applications_user" json:"-"`
	LoanType       LoanType `gorm:"type:enum('SALARY_CASH','SALARY_CAR','BUSINESS_CASH','BUSINESS_CAR')" json:"loan_type"`
	Amount         float64  `gorm:"type:decimal(18,2)" json:"amount"`
	TenureMonths   int      `json:"tenure_months"`

	// Applicant
	PhoneNumber        string `gorm:"size:11" json:"phone_number"`
	BVN                string `gorm:"size:11" json:"bvn"`
	NIN                string `gorm:"size:11" json:"nin"`
	DateOfBirth        string `gorm:"size:10" json:"date_of_birth"`
	ResidentialAddress string `gorm:"type:text" json:"residential_address"`
	MaritalStatus      string `gorm:"size:32" json:"marital_status,omitempty"`

	// Employment (salary products)
	EmployerName    string  `gorm:"size:255" json:"employer_name,omitempty"`
	EmployerAddress string  `gorm:"type:text" json:"employer_address,omitempty"`
	JobTitle        string  `gorm:"size:100" json:"job_title,omitempty"`
	MonthlyIncome   float64 `gorm:"type:decimal(18,2)" json:"monthly_income,omitempty"`

	// Business (business products)
	BusinessName    string  `gorm:"size:255" json:"business_name,omitempty"`
	BusinessAddress string  `gorm:"type:text" json:"business_address,omitempty"`
	CACNumber       string  `gorm:"size:32" json:"cac_number,omitempty"`
	BusinessType    string  `gorm:"size:100" json:"business_type,omitempty"`
	MonthlyRevenue  float64 `gorm:"type:decimal(18,2)" json:"monthly_revenue,omitempty"`

	// Vehicle (car products)
	VehicleMake  string  `gorm:"size:100" json:"vehicle_make,omitempty"`
	VehicleModel string  `gorm:"size:100" json:"vehicle_model,omitempty"`
	VehicleYear  int     `json:"vehicle_year,omitempty"`
	VehicleValue float64 `gorm:"type:decimal(18,2)" json:"vehicle_value,omitempty"`

	// Next of kin
	NextOfKinName         string `gorm:"size:255" json:"next_of_kin_name"`
	NextOfKinPhone        string `gorm:"size:11" json:"next_of_kin_phone"`
	NextOfKinRelationship string `gorm:"size:64" json:"next_of_kin_relationship"`
	NextOfKinAddress      string `gorm:"type:text" json:"next_of_kin_address,omitempty"`

	// Bank account
	BankName      string `gorm:"size:100" json:"bank_name"`
	AccountNumber string `gorm:"size:10" json:"account_number"`
	AccountName   string `gorm:"size:255" json:"account_name"`

	Status Status `gorm:"type:enum('PENDING','APPROVED','REJECTED');default:'PENDING';index:idx_applications_status" json:"status"`

	// Review outcome
	ApprovedAmount  *float64   `gorm:"type:decimal(18,2)" json:"approved_amount,omitempty"`
	InterestRate    *float64   `gorm:"type:decimal(6,2)" json:"interest_rate,omitempty"`
	ApprovedTenure  *int       `json:"approved_tenure,omitempty"`
	LoanID          *string    `gorm:"size:16;uniqueIndex:ux_applications_loan_id" json:"loan_id,omitempty"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy      *uint64    `json:"-"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User      *user.User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Documents []document.Document `gorm:"foreignKey:ApplicationID" json:"documents,omitempty"`
}

func (Application) TableName() string { return "loan_applications" }
