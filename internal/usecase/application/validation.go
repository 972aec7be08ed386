package application

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	domain "loanhub-backend/internal/domain/application"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field problem in one pass so the client
// can fix the whole form at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation failed on %d fields", len(e.Fields))
}

func validateSubmit(in SubmitInput) error {
	var fields []FieldError

	if !in.LoanType.Valid() {
		fields = append(fields, FieldError{Field: "loanType", Message: "must be one of SALARY_CASH, SALARY_CAR, BUSINESS_CASH, BUSINESS_CAR"})
	} else {
		if in.LoanType.RequiresBusiness() && in.Business == nil {
			fields = append(fields, FieldError{Field: "business", Message: "is required for business loan types"})
		}
		if in.LoanType.RequiresVehicle() && in.Vehicle == nil {
			fields = append(fields, FieldError{Field: "vehicle", Message: "is required for car loan types"})
		}
		if !in.LoanType.RequiresBusiness() && in.Employment == nil {
			fields = append(fields, FieldError{Field: "employment", Message: "is required for salary loan types"})
		}
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); ok {
			for _, fe := range verrs {
				fields = append(fields, FieldError{Field: fieldPath(fe), Message: messageFor(fe)})
			}
		} else {
			return err
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateApprove(in ApproveInput) error {
	var fields []FieldError
	if in.ApprovedAmount <= 0 {
		fields = append(fields, FieldError{Field: "approvedAmount", Message: "must be greater than 0"})
	}
	if in.InterestRate <= 0 {
		fields = append(fields, FieldError{Field: "interestRate", Message: "must be greater than 0"})
	}
	if in.ApprovedTenure <= 0 {
		fields = append(fields, FieldError{Field: "approvedTenure", Message: "must be greater than 0"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateReject(in RejectInput) error {
	if strings.TrimSpace(in.Reason) == "" {
		return &ValidationError{Fields: []FieldError{{Field: "reason", Message: "is required"}}}
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

// fieldPath renders "SubmitInput.Applicant.BVN" as "applicant.bvn".
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = lowerFirst(p)
	}
	return strings.Join(parts, ".")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	// Keep initialisms like BVN readable as bvn rather than bVN.
	if s == strings.ToUpper(s) {
		return strings.ToLower(s)
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "numeric":
		return "must contain only digits"
	case "len":
		return fmt.Sprintf("must be exactly %s digits", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or later", fe.Param())
	case "datetime":
		return "must be a valid date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// RouteLoanType maps a URL product slug to its loan type; per-product
// submit routes pin the type server-side regardless of the body.
func RouteLoanType(slug string) (domain.LoanType, bool) {
	switch slug {
	case "salary-cash":
		return domain.LoanTypeSalaryCash, true
	case "salary-car":
		return domain.LoanTypeSalaryCar, true
	case "business-cash":
		return domain.LoanTypeBusinessCash, true
	case "business-car":
		return domain.LoanTypeBusinessCar, true
	}
	return "", false
}
