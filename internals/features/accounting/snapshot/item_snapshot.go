// file: internals/features/accounting/snapshot/item_snapshot.go
package snapshot

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"schoolms_backend/internals/features/accounting/model"
	"schoolms_backend/internals/features/accounting/money"
)

// SchemaVersion identifies the envelope layout written by this code. Bump it
// only together with a decode branch for the previous layout.
const SchemaVersion = 1

// Item is one frozen fee line as it lived at snapshot time. It is a copy, not
// a reference into fee_structure_items, so later soft-deletes/replacements of
// the live rows never change a stored snapshot.
type Item struct {
	Category   string          `json:"category"`
	Label      string          `json:"label"`
	Amount     decimal.Decimal `json:"amount"`
	Frequency  money.Frequency `json:"frequency"`
	IsOptional bool            `json:"is_optional"`
}

// ItemList is the versioned envelope persisted into the JSONB
// snapshot/breakdown columns.
type ItemList struct {
	SchemaVersion int    `json:"schema_version"`
	Items         []Item `json:"items"`
}

// FromModels freezes the given live item rows.
func FromModels(items []model.FeeStructureItem) ItemList {
	out := ItemList{SchemaVersion: SchemaVersion, Items: make([]Item, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, Item{
			Category:   it.FeeStructureItemCategory,
			Label:      it.FeeStructureItemLabel,
			Amount:     it.FeeStructureItemAmount,
			Frequency:  it.FeeStructureItemFrequency,
			IsOptional: it.FeeStructureItemIsOptional,
		})
	}
	return out
}

// Lines adapts the snapshot for the monetary normalizer.
func (l ItemList) Lines() []money.Line {
	lines := make([]money.Line, 0, len(l.Items))
	for _, it := range l.Items {
		lines = append(lines, money.Line{Amount: it.Amount, Frequency: it.Frequency})
	}
	return lines
}

func (l ItemList) JSON() (datatypes.JSON, error) {
	raw, err := sonic.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encode item snapshot: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// Decode reads a stored snapshot defensively: today's versioned envelope
// (with or without a schema_version key), or the legacy bare-array layout
// written before the envelope existed.
func Decode(raw datatypes.JSON) (ItemList, error) {
	if len(raw) == 0 {
		return ItemList{SchemaVersion: SchemaVersion}, nil
	}

	var out ItemList
	if err := sonic.Unmarshal([]byte(raw), &out); err == nil {
		if out.SchemaVersion == 0 {
			out.SchemaVersion = SchemaVersion
		}
		return out, nil
	}

	var bare []Item
	if err := sonic.Unmarshal([]byte(raw), &bare); err != nil {
		return ItemList{}, fmt.Errorf("decode item snapshot: %w", err)
	}
	return ItemList{SchemaVersion: SchemaVersion, Items: bare}, nil
}
