package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"rental_frontend/errors"
)

const (
	dateLayout          = "2006-01-02"
	minimumContractTerm = 30 * 24 * time.Hour
)

type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (v *ValidationError) Error() string {
	return v.Message
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,role"`
}

type TenantRegistration struct {
	Email              string  `json:"email" validate:"required,email"`
	Password           string  `json:"password" validate:"required,min=6"`
	ConfirmPassword    string  `json:"confirm_password,omitempty" validate:"eqfield=Password"`
	FullName           string  `json:"full_name" validate:"notblank"`
	PhoneNumber        string  `json:"phone_number,omitempty"`
	Gender             string  `json:"gender,omitempty"`
	Dob                string  `json:"dob,omitempty"`
	Bio                string  `json:"bio,omitempty"`
	TargetProvinceCode string  `json:"target_province_code,omitempty"`
	TargetWardCode     string  `json:"target_ward_code,omitempty"`
	BudgetMin          float64 `json:"budget_min,omitempty"`
	BudgetMax          float64 `json:"budget_max,omitempty"`
}

type LandlordRegistration struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password,omitempty" validate:"eqfield=Password"`
	FullName        string `json:"full_name" validate:"notblank"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	IdentityCard    string `json:"identity_card,omitempty"`
	AddressDetail   string `json:"address_detail,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Dob             string `json:"dob,omitempty"`
	Bio             string `json:"bio,omitempty"`
}

// AdminRegistration is the payload of /admins/create.
type AdminRegistration struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	FullName   string `json:"full_name" validate:"notblank"`
	Department string `json:"department,omitempty"`
}

type PostInput struct {
	Title            string   `json:"title" validate:"notblank"`
	Description      string   `json:"description" validate:"notblank"`
	Price            float64  `json:"price" validate:"required"`
	Area             float64  `json:"area" validate:"required"`
	AddressDetail    string   `json:"address_detail" validate:"notblank"`
	ProvinceCode     string   `json:"province_code,omitempty"`
	WardCode         string   `json:"ward_code,omitempty"`
	Amenities        []string `json:"amenities,omitempty"`
	ElectricityPrice *float64 `json:"electricity_price,omitempty"`
	WaterPrice       *float64 `json:"water_price,omitempty"`
	MaxTenants       *int     `json:"max_tenants,omitempty"`
}

type ContractInput struct {
	PostID        string  `json:"post_id" validate:"required"`
	StartDate     string  `json:"start_date" validate:"required"`
	EndDate       string  `json:"end_date" validate:"required"`
	MonthlyRent   float64 `json:"monthly_rent" validate:"gt=0"`
	DepositAmount float64 `json:"deposit_amount" validate:"gt=0"`
	ContractURL   string  `json:"contract_url,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// ContractUpdate is a partial edit of an existing contract. Only the fields
// that are set are sent and checked.
type ContractUpdate struct {
	StartDate     string   `json:"start_date,omitempty"`
	EndDate       string   `json:"end_date,omitempty"`
	MonthlyRent   *float64 `json:"monthly_rent,omitempty"`
	DepositAmount *float64 `json:"deposit_amount,omitempty"`
	ContractURL   *string  `json:"contract_url,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password,omitempty" validate:"eqfield=Password"`
}

// messages maps "Field.tag" to the message shown for that failure.
var messages = map[string]string{
	"Email.required":          errors.EmailRequired,
	"Email.email":             errors.InvalidEmail,
	"Password.required":       errors.PasswordRequired,
	"Password.min":            errors.PasswordTooShort,
	"ConfirmPassword.eqfield": errors.PasswordsDoNotMatch,
	"Role.required":           errors.InvalidRole,
	"Role.role":               errors.InvalidRole,
	"FullName.notblank":       errors.FullNameRequired,
	"Title.notblank":          errors.TitleRequired,
	"Description.notblank":    errors.DescriptionRequired,
	"Price.required":          errors.PriceRequired,
	"Area.required":           errors.AreaRequired,
	"AddressDetail.notblank":  errors.AddressRequired,
	"PostID.required":         errors.PostRequired,
	"StartDate.required":      errors.DatesRequired,
	"EndDate.required":        errors.DatesRequired,
	"MonthlyRent.gt":          errors.InvalidMonthlyRent,
	"DepositAmount.gt":        errors.InvalidDeposit,
	"Token.required":          errors.ResetTokenRequired,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	err := v.RegisterValidation("notblank", notBlankField)
	if err != nil {
		panic(err)
	}

	err = v.RegisterValidation("role", roleField)
	if err != nil {
		panic(err)
	}

	return v
}

// Rejects strings made only of whitespace.
func notBlankField(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func roleField(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).Valid()
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return &ValidationError{Message: errors.InvalidRequestFormat}
	}

	first := validationErrors[0]
	message, ok := messages[first.StructField()+"."+first.Tag()]
	if !ok {
		message = first.Error()
	}
	return &ValidationError{Field: first.Field(), Message: message}
}

func (input *LoginInput) Validate() error {
	return toValidationError(validate.Struct(input))
}

func (input *TenantRegistration) Validate() error {
	return toValidationError(validate.Struct(input))
}

func (input *LandlordRegistration) Validate() error {
	return toValidationError(validate.Struct(input))
}

func (input *AdminRegistration) Validate() error {
	return toValidationError(validate.Struct(input))
}

func (input *PostInput) Validate() error {
	return toValidationError(validate.Struct(input))
}

func (input *ForgotPasswordInput) Validate() error {
	return toValidationError(validate.Struct(input))
}

func (input *ResetPasswordInput) Validate() error {
	return toValidationError(validate.Struct(input))
}

// Validate checks, in order: post, presence of both dates, date format,
// end after start, the 30 day minimum term, then rent and deposit.
func (input *ContractInput) Validate() error {
	if err := validate.StructPartial(input, "PostID", "StartDate", "EndDate"); err != nil {
		return toValidationError(err)
	}

	start, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return &ValidationError{Field: "start_date", Message: errors.InvalidDate}
	}
	end, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		return &ValidationError{Field: "end_date", Message: errors.InvalidDate}
	}
	if !end.After(start) {
		return &ValidationError{Field: "end_date", Message: errors.EndBeforeStart}
	}
	if end.Sub(start) < minimumContractTerm {
		return &ValidationError{Field: "end_date", Message: errors.ContractTooShort}
	}

	return toValidationError(validate.StructPartial(input, "MonthlyRent", "DepositAmount"))
}

// Validate applies the create rules to the fields present: dates must parse,
// and when both are given the term must run at least 30 days; rent and
// deposit, when given, must be positive.
func (input *ContractUpdate) Validate() error {
	var start, end time.Time
	var err error
	if input.StartDate != "" {
		if start, err = time.Parse(dateLayout, input.StartDate); err != nil {
			return &ValidationError{Field: "start_date", Message: errors.InvalidDate}
		}
	}
	if input.EndDate != "" {
		if end, err = time.Parse(dateLayout, input.EndDate); err != nil {
			return &ValidationError{Field: "end_date", Message: errors.InvalidDate}
		}
	}
	if input.StartDate != "" && input.EndDate != "" {
		if !end.After(start) {
			return &ValidationError{Field: "end_date", Message: errors.EndBeforeStart}
		}
		if end.Sub(start) < minimumContractTerm {
			return &ValidationError{Field: "end_date", Message: errors.ContractTooShort}
		}
	}
	if input.MonthlyRent != nil && *input.MonthlyRent <= 0 {
		return &ValidationError{Field: "monthly_rent", Message: errors.InvalidMonthlyRent}
	}
	if input.DepositAmount != nil && *input.DepositAmount <= 0 {
		return &ValidationError{Field: "deposit_amount", Message: errors.InvalidDeposit}
	}
	return nil
}

// WithoutConfirmation returns the payload that is actually sent; the
// confirmation field never leaves the client.
func (input TenantRegistration) WithoutConfirmation() TenantRegistration {
	input.ConfirmPassword = ""
	return input
}

func (input LandlordRegistration) WithoutConfirmation() LandlordRegistration {
	input.ConfirmPassword = ""
	return input
}

func (input ResetPasswordInput) WithoutConfirmation() ResetPasswordInput {
	input.ConfirmPassword = ""
	return input
}
