// file: internals/features/accounting/model/fee_structure_item_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"schoolms_backend/internals/features/accounting/money"
)

// --- MODEL fee_structure_items -----------------------------------------------
// The non-deleted items of a structure are its current composition. A revision
// never updates an item in place: it soft-deletes the whole live set and
// inserts a fresh one, so every history version has its own clean audit trail.
type FeeStructureItem struct {
	FeeStructureItemID uuid.UUID `json:"fee_structure_item_id" gorm:"column:fee_structure_item_id;type:uuid;primaryKey"`

	FeeStructureItemFeeStructureID uuid.UUID `json:"fee_structure_item_fee_structure_id" gorm:"column:fee_structure_item_fee_structure_id;type:uuid;not null;index:idx_fee_structure_items_structure"`

	FeeStructureItemCategory   string          `json:"fee_structure_item_category" gorm:"column:fee_structure_item_category;type:varchar(60);not null"`
	FeeStructureItemLabel      string          `json:"fee_structure_item_label" gorm:"column:fee_structure_item_label;type:varchar(120);not null"`
	FeeStructureItemAmount     decimal.Decimal `json:"fee_structure_item_amount" gorm:"column:fee_structure_item_amount;type:numeric(12,2);not null"`
	FeeStructureItemFrequency  money.Frequency `json:"fee_structure_item_frequency" gorm:"column:fee_structure_item_frequency;type:varchar(10);not null;default:'MONTHLY'"`
	FeeStructureItemIsOptional bool            `json:"fee_structure_item_is_optional" gorm:"column:fee_structure_item_is_optional;type:boolean;not null;default:false"`

	FeeStructureItemCreatedAt time.Time      `json:"fee_structure_item_created_at" gorm:"column:fee_structure_item_created_at;not null;autoCreateTime"`
	FeeStructureItemUpdatedAt time.Time      `json:"fee_structure_item_updated_at" gorm:"column:fee_structure_item_updated_at;not null;autoUpdateTime"`
	FeeStructureItemDeletedAt gorm.DeletedAt `json:"fee_structure_item_deleted_at,omitempty" gorm:"column:fee_structure_item_deleted_at;index"`
}

func (FeeStructureItem) TableName() string { return "fee_structure_items" }

func (m *FeeStructureItem) BeforeCreate(tx *gorm.DB) error {
	if m.FeeStructureItemID == uuid.Nil {
		m.FeeStructureItemID = uuid.New()
	}
	return nil
}
