// file: internals/features/accounting/model/fee_structure_history_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// --- MODEL fee_structure_histories -------------------------------------------
// Append-only audit ledger. Versions per structure are strictly increasing
// integers starting at 1; rows are never updated or deleted (no DeletedAt on
// purpose). The snapshot column is a frozen JSONB copy of the item list, not a
// reference, so "what was the fee structure on date X" stays answerable after
// the live items change.
type FeeStructureHistory struct {
	FeeStructureHistoryID uuid.UUID `json:"fee_structure_history_id" gorm:"column:fee_structure_history_id;type:uuid;primaryKey"`

	FeeStructureHistoryFeeStructureID uuid.UUID `json:"fee_structure_history_fee_structure_id" gorm:"column:fee_structure_history_fee_structure_id;type:uuid;not null;uniqueIndex:uq_fee_structure_histories_version,priority:1"`
	FeeStructureHistoryVersion        int       `json:"fee_structure_history_version" gorm:"column:fee_structure_history_version;type:int;not null;uniqueIndex:uq_fee_structure_histories_version,priority:2"`

	FeeStructureHistoryEffectiveFrom time.Time       `json:"fee_structure_history_effective_from" gorm:"column:fee_structure_history_effective_from;not null;index:idx_fee_structure_histories_effective"`
	FeeStructureHistoryTotalAnnual   decimal.Decimal `json:"fee_structure_history_total_annual" gorm:"column:fee_structure_history_total_annual;type:numeric(12,2);not null"`
	FeeStructureHistorySnapshot      datatypes.JSON  `json:"fee_structure_history_snapshot" gorm:"column:fee_structure_history_snapshot;type:jsonb;not null"`
	FeeStructureHistoryChangeReason  *string         `json:"fee_structure_history_change_reason,omitempty" gorm:"column:fee_structure_history_change_reason;type:text"`

	FeeStructureHistoryCreatedAt time.Time `json:"fee_structure_history_created_at" gorm:"column:fee_structure_history_created_at;not null;autoCreateTime"`
}

func (FeeStructureHistory) TableName() string { return "fee_structure_histories" }

func (m *FeeStructureHistory) BeforeCreate(tx *gorm.DB) error {
	if m.FeeStructureHistoryID == uuid.Nil {
		m.FeeStructureHistoryID = uuid.New()
	}
	return nil
}
