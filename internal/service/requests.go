package service

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
)

type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	PhoneNumber    string `json:"phone_number"`
	SocialSecurity string `json:"social_security"`
	AgreedTerms    bool   `json:"agreed_terms"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.PhoneNumber, validation.Length(0, 20)),
		validation.Field(&r.SocialSecurity, validation.Length(0, 20)),
		validation.Field(&r.AgreedTerms, validation.Required.Error("must be accepted")),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	PhoneNumber    *string `json:"phone_number"`
	SocialSecurity *string `json:"social_security"`
	Admin          *bool   `json:"admin"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, validation.Length(3, 100), is.Email),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.Length(6, 100)),
		validation.Field(&r.PhoneNumber, validation.Length(0, 20)),
		validation.Field(&r.SocialSecurity, validation.Length(0, 20)),
	)
}

// CatalogRequest saves a supplier, payment type or reimbursement type.
type CatalogRequest struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

func (r CatalogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Key, validation.Required, validation.Length(1, 50)),
	)
}

type LinkRequest struct {
	ID uint `json:"id"`
}

func (r LinkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
	)
}

type ReclamationRequest struct {
	ExpectedArrival     *time.Time `json:"expected_arrival"`
	ActualArrival       *time.Time `json:"actual_arrival"`
	VehicleNumber       string     `json:"vehicle_number"`
	BookingNumber       string     `json:"booking_number"`
	FromStationID       *uint      `json:"from_station_id"`
	ToStationID         *uint      `json:"to_station_id"`
	PaymentTypeID       *uint      `json:"payment_type_id"`
	ReimbursementTypeID *uint      `json:"reimbursement_type_id"`
}

func (r ReclamationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ExpectedArrival, validation.Required),
		validation.Field(&r.ActualArrival, validation.Required),
		validation.Field(&r.VehicleNumber, validation.Length(0, 50)),
		validation.Field(&r.BookingNumber, validation.Length(0, 100)),
	)
}

// AdjudicateRequest is the admin decision on a reclamation.
type AdjudicateRequest struct {
	Approved *bool    `json:"approved"`
	Refund   *float64 `json:"refund"`
}

func (r AdjudicateRequest) Validate() error {
	if r.Approved == nil && r.Refund == nil {
		return validation.Errors{"approved": errors.New("approved or refund is required")}
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Refund, validation.Min(0.0)),
	)
}

type SupplierUserInfoRequest struct {
	SupplierID          uint   `json:"supplier_id"`
	PaymentTypeID       *uint  `json:"payment_type_id"`
	ReimbursementTypeID *uint  `json:"reimbursement_type_id"`
	JojoNumber          *int64 `json:"jojo_number"`
}

func (r SupplierUserInfoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SupplierID, validation.Required),
	)
}

// Validate runs v.Validate and converts the result into a ValidationError
// carrying one message per field.
func Validate(v validation.Validatable) error {
	err := v.Validate()
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return apperr.ValidationError{Msg: "invalid request", Err: err}
	}
	fields := make(map[string]string, len(errs))
	for name, fe := range errs {
		fields[name] = fe.Error()
	}
	return apperr.ValidationError{Msg: "invalid request", Fields: fields, Err: err}
}
