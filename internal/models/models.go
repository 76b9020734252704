package models

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Base carries the columns every entity shares. Timestamp is refreshed on
// every update.
type Base struct {
	ID          uint      `gorm:"primaryKey" json:"_id"`
	Created     time.Time `gorm:"autoCreateTime;index" json:"_created"`
	Timestamp   time.Time `gorm:"autoUpdateTime;not null" json:"_timestamp"`
	Descriptive string    `gorm:"-" json:"_descriptive"`
}

type User struct {
	Base
	Password       string    `gorm:"size:255;not null" json:"-"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:100;uniqueIndex" json:"email"`
	PhoneNumber    string    `gorm:"size:20" json:"phone_number,omitempty"`
	SocialSecurity string    `gorm:"size:20" json:"social_security,omitempty"`
	RegisteredOn   time.Time `gorm:"not null" json:"registered_on"`
	Admin          bool      `gorm:"not null;default:false" json:"admin"`
	AgreedTerms    bool      `gorm:"not null;default:false" json:"agreed_terms"`
}

func (u *User) AfterFind(*gorm.DB) error { u.Descriptive = u.Name; return nil }
func (u *User) AfterSave(*gorm.DB) error { u.Descriptive = u.Name; return nil }

type BlacklistToken struct {
	ID            uint      `gorm:"primaryKey"`
	Token         string    `gorm:"size:500;uniqueIndex;not null"`
	BlacklistedOn time.Time `gorm:"not null"`
}

func (BlacklistToken) TableName() string { return "blacklist_tokens" }

type Supplier struct {
	Base
	Name               string              `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Key                string              `gorm:"size:50;uniqueIndex;not null" json:"key"`
	PaymentTypes       []PaymentType       `gorm:"many2many:supplier_payment_types" json:"-"`
	ReimbursementTypes []ReimbursementType `gorm:"many2many:supplier_reimbursement_types" json:"-"`
}

func (Supplier) TableName() string { return "supplier" }

func (s *Supplier) AfterFind(*gorm.DB) error { s.Descriptive = s.Name; return nil }
func (s *Supplier) AfterSave(*gorm.DB) error { s.Descriptive = s.Name; return nil }

type Reclamation struct {
	Base
	UserID              uint       `gorm:"not null;index" json:"user_id"`
	SupplierID          uint       `gorm:"not null;index" json:"supplier_id"`
	Supplier            *Supplier  `json:"-"`
	Approved            bool       `gorm:"not null;default:false" json:"approved"`
	ExpectedArrival     *time.Time `json:"expected_arrival"`
	ActualArrival       *time.Time `json:"actual_arrival"`
	VehicleNumber       string     `gorm:"size:50" json:"vehicle_number,omitempty"`
	Refund              *float64   `json:"refund,omitempty"`
	FromStationID       *uint      `json:"from_station_id,omitempty"`
	ToStationID         *uint      `json:"to_station_id,omitempty"`
	BookingNumber       string     `gorm:"size:100" json:"booking_number,omitempty"`
	PaymentTypeID       *uint      `json:"payment_type_id,omitempty"`
	ReimbursementTypeID *uint      `json:"reimbursement_type_id,omitempty"`
}

func (Reclamation) TableName() string { return "reclamation" }

func (r *Reclamation) AfterFind(*gorm.DB) error { r.describe(); return nil }
func (r *Reclamation) AfterSave(*gorm.DB) error { r.describe(); return nil }

func (r *Reclamation) describe() {
	if r.Supplier == nil {
		r.Descriptive = strconv.FormatUint(uint64(r.ID), 10)
		return
	}
	r.Descriptive = fmt.Sprintf("%s - %s", r.Created.Format("2006-01-02 15:04:05"), r.Supplier.Name)
}

type PaymentType struct {
	Base
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Key  string `gorm:"size:100;uniqueIndex;not null" json:"key"`
}

func (PaymentType) TableName() string { return "payment_type" }

func (p *PaymentType) AfterFind(*gorm.DB) error { p.Descriptive = p.Name; return nil }
func (p *PaymentType) AfterSave(*gorm.DB) error { p.Descriptive = p.Name; return nil }

type ReimbursementType struct {
	Base
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Key  string `gorm:"size:100;uniqueIndex;not null" json:"key"`
}

func (ReimbursementType) TableName() string { return "reimbursement_type" }

func (r *ReimbursementType) AfterFind(*gorm.DB) error { r.Descriptive = r.Name; return nil }
func (r *ReimbursementType) AfterSave(*gorm.DB) error { r.Descriptive = r.Name; return nil }

type Station struct {
	Base
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	SupplierID  uint      `gorm:"not null;index;uniqueIndex:idx_station_supplier_migration" json:"supplier_id"`
	Supplier    *Supplier `json:"-"`
	MigrationID string    `gorm:"size:100;uniqueIndex:idx_station_supplier_migration" json:"migration_id,omitempty"`
}

func (Station) TableName() string { return "station" }

func (s *Station) AfterFind(*gorm.DB) error { s.Descriptive = s.Name; return nil }
func (s *Station) AfterSave(*gorm.DB) error { s.Descriptive = s.Name; return nil }

type SupplierUserInfo struct {
	Base
	UserID              uint   `gorm:"not null;uniqueIndex:idx_user_supplier" json:"user_id"`
	SupplierID          uint   `gorm:"not null;uniqueIndex:idx_user_supplier" json:"supplier_id"`
	PaymentTypeID       *uint  `json:"payment_type_id,omitempty"`
	ReimbursementTypeID *uint  `json:"reimbursement_type_id,omitempty"`
	JojoNumber          *int64 `json:"jojo_number,omitempty"`
}

func (SupplierUserInfo) TableName() string { return "supplier_user_info" }

func (s *SupplierUserInfo) AfterFind(*gorm.DB) error {
	s.Descriptive = strconv.FormatUint(uint64(s.ID), 10)
	return nil
}

func (s *SupplierUserInfo) AfterSave(*gorm.DB) error {
	s.Descriptive = strconv.FormatUint(uint64(s.ID), 10)
	return nil
}

// All lists the entities managed by migrations, in dependency order.
func All() []any {
	return []any{
		&User{},
		&BlacklistToken{},
		&PaymentType{},
		&ReimbursementType{},
		&Supplier{},
		&Station{},
		&Reclamation{},
		&SupplierUserInfo{},
	}
}
