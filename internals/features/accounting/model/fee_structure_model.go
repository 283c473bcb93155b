// file: internals/features/accounting/model/fee_structure_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- ENUM fee_structure_status -----------------------------------------------
type FeeStructureStatus string

const (
	FeeStructureStatusActive   FeeStructureStatus = "ACTIVE"
	FeeStructureStatusArchived FeeStructureStatus = "ARCHIVED"
	FeeStructureStatusDraft    FeeStructureStatus = "DRAFT"
)

func (s FeeStructureStatus) Valid() bool {
	switch s {
	case FeeStructureStatusActive, FeeStructureStatusArchived, FeeStructureStatusDraft:
		return true
	}
	return false
}

// --- MODEL fee_structures ----------------------------------------------------
// One per (class, academic year). The partial unique index keeps the
// "at most one live structure per class+year" invariant inside the database
// instead of trusting the application-level pre-check under concurrency.
type FeeStructure struct {
	FeeStructureID uuid.UUID `json:"fee_structure_id" gorm:"column:fee_structure_id;type:uuid;primaryKey"`

	FeeStructureClassID      uuid.UUID `json:"fee_structure_class_id" gorm:"column:fee_structure_class_id;type:uuid;not null;uniqueIndex:uq_fee_structures_class_year,priority:1,where:fee_structure_deleted_at IS NULL"`
	FeeStructureAcademicYear string    `json:"fee_structure_academic_year" gorm:"column:fee_structure_academic_year;type:varchar(9);not null;uniqueIndex:uq_fee_structures_class_year,priority:2,where:fee_structure_deleted_at IS NULL"`

	FeeStructureName          string             `json:"fee_structure_name" gorm:"column:fee_structure_name;type:varchar(120);not null"`
	FeeStructureEffectiveFrom time.Time          `json:"fee_structure_effective_from" gorm:"column:fee_structure_effective_from;not null;index:idx_fee_structures_effective"`
	FeeStructureStatus        FeeStructureStatus `json:"fee_structure_status" gorm:"column:fee_structure_status;type:varchar(10);not null;default:'ACTIVE'"`

	FeeStructureCreatedAt time.Time      `json:"fee_structure_created_at" gorm:"column:fee_structure_created_at;not null;autoCreateTime"`
	FeeStructureUpdatedAt time.Time      `json:"fee_structure_updated_at" gorm:"column:fee_structure_updated_at;not null;autoUpdateTime"`
	FeeStructureDeletedAt gorm.DeletedAt `json:"fee_structure_deleted_at,omitempty" gorm:"column:fee_structure_deleted_at;index"`
}

func (FeeStructure) TableName() string { return "fee_structures" }

func (m *FeeStructure) BeforeCreate(tx *gorm.DB) error {
	if m.FeeStructureID == uuid.Nil {
		m.FeeStructureID = uuid.New()
	}
	return nil
}
