package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
)

// Filterable parameters per entity.
var (
	UserSchema = filter.NewSchema("user").
			WithDescriptive("name").
			With("email", "email", filter.KindString).
			With("name", "name", filter.KindString).
			With("admin", "admin", filter.KindBool).
			With("registered_on", "registered_on", filter.KindTime)

	SupplierSchema = filter.NewSchema("supplier").
			WithKey("key").
			WithDescriptive("name").
			With("name", "name", filter.KindString)

	ReclamationSchema = filter.NewSchema("reclamation").
				With("approved", "approved", filter.KindBool).
				With("user_id", "user_id", filter.KindInt).
				With("supplier_id", "supplier_id", filter.KindInt).
				With("booking_number", "booking_number", filter.KindString).
				With("vehicle_number", "vehicle_number", filter.KindString).
				With("refund", "refund", filter.KindFloat).
				With("expected_arrival", "expected_arrival", filter.KindTime).
				With("actual_arrival", "actual_arrival", filter.KindTime)

	PaymentTypeSchema = filter.NewSchema("payment_type").
				WithKey("key").
				WithDescriptive("name").
				With("name", "name", filter.KindString)

	ReimbursementTypeSchema = filter.NewSchema("reimbursement_type").
				WithKey("key").
				WithDescriptive("name").
				With("name", "name", filter.KindString)

	StationSchema = filter.NewSchema("station").
			WithDescriptive("name").
			With("name", "name", filter.KindString).
			With("migration_id", "migration_id", filter.KindString)
)

// wrap converts gorm errors into the application error taxonomy.
func wrap(op, resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFoundError{Resource: resource, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.ConflictError{Resource: resource, Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.ConflictError{Resource: resource, Msg: resource + " is still referenced", Err: err}
	default:
		return apperr.Storage(op, err)
	}
}
