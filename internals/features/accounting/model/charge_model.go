// file: internals/features/accounting/model/charge_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- ENUM charge_kind --------------------------------------------------------
type ChargeKind string

const (
	ChargeKindCharge ChargeKind = "CHARGE"
	ChargeKindFine   ChargeKind = "FINE"
)

// --- MODEL charges -----------------------------------------------------------
type Charge struct {
	ChargeID uuid.UUID `json:"charge_id" gorm:"column:charge_id;type:uuid;primaryKey"`

	ChargeName   string          `json:"charge_name" gorm:"column:charge_name;type:varchar(120);not null"`
	ChargeKind   ChargeKind      `json:"charge_kind" gorm:"column:charge_kind;type:varchar(10);not null;default:'CHARGE'"`
	ChargeAmount decimal.Decimal `json:"charge_amount" gorm:"column:charge_amount;type:numeric(12,2);not null"`

	ChargeCreatedAt time.Time      `json:"charge_created_at" gorm:"column:charge_created_at;not null;autoCreateTime"`
	ChargeUpdatedAt time.Time      `json:"charge_updated_at" gorm:"column:charge_updated_at;not null;autoUpdateTime"`
	ChargeDeletedAt gorm.DeletedAt `json:"charge_deleted_at,omitempty" gorm:"column:charge_deleted_at;index"`
}

func (Charge) TableName() string { return "charges" }

func (m *Charge) BeforeCreate(tx *gorm.DB) error {
	if m.ChargeID == uuid.Nil {
		m.ChargeID = uuid.New()
	}
	return nil
}

// --- MODEL charge_assignments ------------------------------------------------
// Time-bounded link student → charge/fine. Read-only for the accounting core.
type ChargeAssignment struct {
	ChargeAssignmentID uuid.UUID `json:"charge_assignment_id" gorm:"column:charge_assignment_id;type:uuid;primaryKey"`

	ChargeAssignmentStudentID uuid.UUID `json:"charge_assignment_student_id" gorm:"column:charge_assignment_student_id;type:uuid;not null;index:idx_charge_assignments_student"`
	ChargeAssignmentChargeID  uuid.UUID `json:"charge_assignment_charge_id" gorm:"column:charge_assignment_charge_id;type:uuid;not null"`

	ChargeAssignmentEffectiveFrom time.Time  `json:"charge_assignment_effective_from" gorm:"column:charge_assignment_effective_from;not null"`
	ChargeAssignmentExpiresAt     *time.Time `json:"charge_assignment_expires_at,omitempty" gorm:"column:charge_assignment_expires_at"`

	ChargeAssignmentCreatedAt time.Time      `json:"charge_assignment_created_at" gorm:"column:charge_assignment_created_at;not null;autoCreateTime"`
	ChargeAssignmentDeletedAt gorm.DeletedAt `json:"charge_assignment_deleted_at,omitempty" gorm:"column:charge_assignment_deleted_at;index"`

	Charge *Charge `json:"charge,omitempty" gorm:"foreignKey:ChargeAssignmentChargeID;references:ChargeID"`
}

func (ChargeAssignment) TableName() string { return "charge_assignments" }

func (m *ChargeAssignment) BeforeCreate(tx *gorm.DB) error {
	if m.ChargeAssignmentID == uuid.Nil {
		m.ChargeAssignmentID = uuid.New()
	}
	return nil
}
