// file: internals/features/accounting/model/student_fee_history_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// --- MODEL student_fee_histories ---------------------------------------------
// One immutable snapshot per (student, billing period, structure version),
// seeded when a structure is created. The unique index is the real idempotence
// guard; seeding inserts with ON CONFLICT DO NOTHING against it.
type StudentFeeHistory struct {
	StudentFeeHistoryID uuid.UUID `json:"student_fee_history_id" gorm:"column:student_fee_history_id;type:uuid;primaryKey"`

	StudentFeeHistoryStudentID      uuid.UUID `json:"student_fee_history_student_id" gorm:"column:student_fee_history_student_id;type:uuid;not null;uniqueIndex:uq_student_fee_histories_period,priority:1"`
	StudentFeeHistoryPeriodMonth    time.Time `json:"student_fee_history_period_month" gorm:"column:student_fee_history_period_month;not null;uniqueIndex:uq_student_fee_histories_period,priority:2"`
	StudentFeeHistoryVersion        int       `json:"student_fee_history_version" gorm:"column:student_fee_history_version;type:int;not null;uniqueIndex:uq_student_fee_histories_period,priority:3"`
	StudentFeeHistoryFeeStructureID uuid.UUID `json:"student_fee_history_fee_structure_id" gorm:"column:student_fee_history_fee_structure_id;type:uuid;not null;index:idx_student_fee_histories_structure"`

	StudentFeeHistoryBaseAmount         decimal.Decimal `json:"student_fee_history_base_amount" gorm:"column:student_fee_history_base_amount;type:numeric(12,2);not null"`
	StudentFeeHistoryScholarshipAmount  decimal.Decimal `json:"student_fee_history_scholarship_amount" gorm:"column:student_fee_history_scholarship_amount;type:numeric(12,2);not null"`
	StudentFeeHistoryExtraChargesAmount decimal.Decimal `json:"student_fee_history_extra_charges_amount" gorm:"column:student_fee_history_extra_charges_amount;type:numeric(12,2);not null"`
	StudentFeeHistoryFinalPayable       decimal.Decimal `json:"student_fee_history_final_payable" gorm:"column:student_fee_history_final_payable;type:numeric(12,2);not null"`
	StudentFeeHistoryBreakdown          datatypes.JSON  `json:"student_fee_history_breakdown" gorm:"column:student_fee_history_breakdown;type:jsonb;not null"`

	StudentFeeHistoryCreatedAt time.Time `json:"student_fee_history_created_at" gorm:"column:student_fee_history_created_at;not null;autoCreateTime"`
}

func (StudentFeeHistory) TableName() string { return "student_fee_histories" }

func (m *StudentFeeHistory) BeforeCreate(tx *gorm.DB) error {
	if m.StudentFeeHistoryID == uuid.Nil {
		m.StudentFeeHistoryID = uuid.New()
	}
	return nil
}
