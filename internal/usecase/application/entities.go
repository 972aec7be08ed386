package application

import (
	domain "loanhub-backend/internal/domain/application"
)

// SubmitInput is the tagged-union application payload: the four products
// share the common sections, and the type decides which optional sections
// become mandatory (business, vehicle).
type SubmitInput struct {
	LoanType     domain.LoanType `json:"loanType"`
	Amount       float64         `json:"amount" validate:"required,gt=0"`
	TenureMonths int             `json:"tenureMonths" validate:"required,gt=0"`

	Applicant   ApplicantDetails   `json:"applicant"`
	Employment  *EmploymentDetails `json:"employment,omitempty"`
	Business    *BusinessDetails   `json:"business,omitempty"`
	Vehicle     *VehicleDetails    `json:"vehicle,omitempty"`
	NextOfKin   NextOfKinDetails   `json:"nextOfKin"`
	BankAccount BankAccountDetails `json:"bankAccount"`

	Notes string `json:"notes,omitempty"`
}

type ApplicantDetails struct {
	PhoneNumber        string `json:"phoneNumber" validate:"required,numeric,len=11"`
	BVN                string `json:"bvn" validate:"required,numeric,len=11"`
	NIN                string `json:"nin" validate:"required,numeric,len=11"`
	DateOfBirth        string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	ResidentialAddress string `json:"residentialAddress" validate:"required"`
	MaritalStatus      string `json:"maritalStatus,omitempty"`
}

type EmploymentDetails struct {
	EmployerName    string  `json:"employerName" validate:"required"`
	EmployerAddress string  `json:"employerAddress" validate:"required"`
	JobTitle        string  `json:"jobTitle" validate:"required"`
	MonthlyIncome   float64 `json:"monthlyIncome" validate:"required,gt=0"`
}

type BusinessDetails struct {
	BusinessName    string  `json:"businessName" validate:"required"`
	BusinessAddress string  `json:"businessAddress" validate:"required"`
	CACNumber       string  `json:"cacNumber" validate:"required"`
	BusinessType    string  `json:"businessType,omitempty"`
	MonthlyRevenue  float64 `json:"monthlyRevenue" validate:"required,gt=0"`
}

type VehicleDetails struct {
	Make  string  `json:"make" validate:"required"`
	Model string  `json:"model" validate:"required"`
	Year  int     `json:"year" validate:"required,gte=1990"`
	Value float64 `json:"value" validate:"required,gt=0"`
}

type NextOfKinDetails struct {
	FullName     string `json:"fullName" validate:"required"`
	PhoneNumber  string `json:"phoneNumber" validate:"required,numeric,len=11"`
	Relationship string `json:"relationship" validate:"required"`
	Address      string `json:"address,omitempty"`
}

type BankAccountDetails struct {
	BankName      string `json:"bankName" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required,numeric,len=10"`
	AccountName   string `json:"accountName" validate:"required"`
}

func (in SubmitInput) toEntity(userID uint64, ref string) *domain.Application {
	a := &domain.Application{
		ApplicationRef: ref,
		UserID:         userID,
		LoanType:       in.LoanType,
		Amount:         in.Amount,
		TenureMonths:   in.TenureMonths,

		PhoneNumber:        in.Applicant.PhoneNumber,
		BVN:                in.Applicant.BVN,
		NIN:                in.Applicant.NIN,
		DateOfBirth:        in.Applicant.DateOfBirth,
		ResidentialAddress: in.Applicant.ResidentialAddress,
		MaritalStatus:      in.Applicant.MaritalStatus,

		NextOfKinName:         in.NextOfKin.FullName,
		NextOfKinPhone:        in.NextOfKin.PhoneNumber,
		NextOfKinRelationship: in.NextOfKin.Relationship,
		NextOfKinAddress:      in.NextOfKin.Address,

		BankName:      in.BankAccount.BankName,
		AccountNumber: in.BankAccount.AccountNumber,
		AccountName:   in.BankAccount.AccountName,

		Status: domain.StatusPending,
		Notes:  in.Notes,
	}
	if in.Employment != nil {
		a.EmployerName = in.Employment.EmployerName
		a.EmployerAddress = in.Employment.EmployerAddress
		a.JobTitle = in.Employment.JobTitle
		a.MonthlyIncome = in.Employment.MonthlyIncome
	}
	if in.Business != nil {
		a.BusinessName = in.Business.BusinessName
		a.BusinessAddress = in.Business.BusinessAddress
		a.CACNumber = in.Business.CACNumber
		a.BusinessType = in.Business.BusinessType
		a.MonthlyRevenue = in.Business.MonthlyRevenue
	}
	if in.Vehicle != nil {
		a.VehicleMake = in.Vehicle.Make
		a.VehicleModel = in.Vehicle.Model
		a.VehicleYear = in.Vehicle.Year
		a.VehicleValue = in.Vehicle.Value
	}
	return a
}

type ApproveInput struct {
	Ref            string
	ApprovedAmount float64
	InterestRate   float64
	ApprovedTenure int
	Notes          string
	ActorID        uint64
}

type RejectInput struct {
	Ref     string
	Reason  string
	Notes   string
	ActorID uint64
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type Page struct {
	Applications []domain.Application `json:"loanApplications"`
	Pagination   Pagination           `json:"pagination"`
}

type Statistics struct {
	Pending             int64   `json:"pending"`
	Approved            int64   `json:"approved"`
	Rejected            int64   `json:"rejected"`
	Total               int64   `json:"total"`
	TotalApprovedAmount float64 `json:"totalApprovedAmount"`
}
