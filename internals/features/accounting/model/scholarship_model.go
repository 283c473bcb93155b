// file: internals/features/accounting/model/scholarship_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- ENUM scholarship_value_type ---------------------------------------------
type ScholarshipValueType string

const (
	ScholarshipValueFlat    ScholarshipValueType = "FLAT"
	ScholarshipValuePercent ScholarshipValueType = "PERCENT"
)

// --- MODEL scholarships ------------------------------------------------------
type Scholarship struct {
	ScholarshipID uuid.UUID `json:"scholarship_id" gorm:"column:scholarship_id;type:uuid;primaryKey"`

	ScholarshipName      string               `json:"scholarship_name" gorm:"column:scholarship_name;type:varchar(120);not null"`
	ScholarshipValueType ScholarshipValueType `json:"scholarship_value_type" gorm:"column:scholarship_value_type;type:varchar(10);not null;default:'FLAT'"`
	ScholarshipValue     decimal.Decimal      `json:"scholarship_value" gorm:"column:scholarship_value;type:numeric(12,2);not null"`

	ScholarshipCreatedAt time.Time      `json:"scholarship_created_at" gorm:"column:scholarship_created_at;not null;autoCreateTime"`
	ScholarshipUpdatedAt time.Time      `json:"scholarship_updated_at" gorm:"column:scholarship_updated_at;not null;autoUpdateTime"`
	ScholarshipDeletedAt gorm.DeletedAt `json:"scholarship_deleted_at,omitempty" gorm:"column:scholarship_deleted_at;index"`
}

func (Scholarship) TableName() string { return "scholarships" }

func (m *Scholarship) BeforeCreate(tx *gorm.DB) error {
	if m.ScholarshipID == uuid.Nil {
		m.ScholarshipID = uuid.New()
	}
	return nil
}

// --- MODEL scholarship_assignments -------------------------------------------
// Time-bounded link student → scholarship. Read-only for the accounting core.
type ScholarshipAssignment struct {
	ScholarshipAssignmentID uuid.UUID `json:"scholarship_assignment_id" gorm:"column:scholarship_assignment_id;type:uuid;primaryKey"`

	ScholarshipAssignmentStudentID     uuid.UUID `json:"scholarship_assignment_student_id" gorm:"column:scholarship_assignment_student_id;type:uuid;not null;index:idx_scholarship_assignments_student"`
	ScholarshipAssignmentScholarshipID uuid.UUID `json:"scholarship_assignment_scholarship_id" gorm:"column:scholarship_assignment_scholarship_id;type:uuid;not null"`

	ScholarshipAssignmentEffectiveFrom time.Time  `json:"scholarship_assignment_effective_from" gorm:"column:scholarship_assignment_effective_from;not null"`
	ScholarshipAssignmentExpiresAt     *time.Time `json:"scholarship_assignment_expires_at,omitempty" gorm:"column:scholarship_assignment_expires_at"`

	ScholarshipAssignmentCreatedAt time.Time      `json:"scholarship_assignment_created_at" gorm:"column:scholarship_assignment_created_at;not null;autoCreateTime"`
	ScholarshipAssignmentDeletedAt gorm.DeletedAt `json:"scholarship_assignment_deleted_at,omitempty" gorm:"column:scholarship_assignment_deleted_at;index"`

	Scholarship *Scholarship `json:"scholarship,omitempty" gorm:"foreignKey:ScholarshipAssignmentScholarshipID;references:ScholarshipID"`
}

func (ScholarshipAssignment) TableName() string { return "scholarship_assignments" }

func (m *ScholarshipAssignment) BeforeCreate(tx *gorm.DB) error {
	if m.ScholarshipAssignmentID == uuid.Nil {
		m.ScholarshipAssignmentID = uuid.New()
	}
	return nil
}
