// file: internals/features/accounting/dto/fee_structure_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolms_backend/internals/features/accounting/model"
	"schoolms_backend/internals/features/accounting/money"
	"schoolms_backend/internals/features/accounting/snapshot"
	schoolModel "schoolms_backend/internals/features/school/model"
)

////////////////////////////////////////////////////////////////////////////////
// REQUESTS
////////////////////////////////////////////////////////////////////////////////

// FeeItemInput deliberately carries no oneof on frequency: unrecognized tags
// are tolerated end to end and annualized with multiplier 1.
type FeeItemInput struct {
	Category   string          `json:"category" validate:"required,max=60"`
	Label      string          `json:"label" validate:"required,max=120"`
	Amount     decimal.Decimal `json:"amount"`
	Frequency  money.Frequency `json:"frequency" validate:"required"`
	IsOptional bool            `json:"is_optional"`
}

// CreateFeeStructureRequest accepts a single class_id, a class_ids batch, or
// both; targets are unioned and de-duplicated.
type CreateFeeStructureRequest struct {
	ClassID       *uuid.UUID     `json:"class_id,omitempty"`
	ClassIDs      []uuid.UUID    `json:"class_ids,omitempty"`
	AcademicYear  string         `json:"academic_year" validate:"required,max=9"`
	Name          string         `json:"name" validate:"required,max=120"`
	EffectiveFrom time.Time      `json:"effective_from" validate:"required"`
	Items         []FeeItemInput `json:"items" validate:"required,min=1,dive"`
}

// TargetClassIDs unions class_id and class_ids, drops uuid.Nil, de-duplicates,
// and keeps first-seen order.
func (r CreateFeeStructureRequest) TargetClassIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	add := func(id uuid.UUID) {
		if id == uuid.Nil {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if r.ClassID != nil {
		add(*r.ClassID)
	}
	for _, id := range r.ClassIDs {
		add(id)
	}
	return out
}

type ReviseFeeStructureRequest struct {
	EffectiveFrom time.Time      `json:"effective_from" validate:"required"`
	Items         []FeeItemInput `json:"items" validate:"required,min=1,dive"`
	ChangeReason  *string        `json:"change_reason,omitempty" validate:"omitempty,max=255"`
}

type UpdateFeeStructureStatusRequest struct {
	Status model.FeeStructureStatus `json:"status" validate:"required,oneof=ACTIVE ARCHIVED DRAFT"`
}

// ItemModels builds the live item rows for a structure from request input.
func ItemModels(structureID uuid.UUID, items []FeeItemInput) []model.FeeStructureItem {
	out := make([]model.FeeStructureItem, 0, len(items))
	for _, it := range items {
		out = append(out, model.FeeStructureItem{
			FeeStructureItemFeeStructureID: structureID,
			FeeStructureItemCategory:       it.Category,
			FeeStructureItemLabel:          it.Label,
			FeeStructureItemAmount:         it.Amount,
			FeeStructureItemFrequency:      it.Frequency,
			FeeStructureItemIsOptional:     it.IsOptional,
		})
	}
	return out
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSES
////////////////////////////////////////////////////////////////////////////////

type FeeItemResponse struct {
	FeeStructureItemID uuid.UUID       `json:"fee_structure_item_id"`
	Category           string          `json:"category"`
	Label              string          `json:"label"`
	Amount             decimal.Decimal `json:"amount"`
	Frequency          money.Frequency `json:"frequency"`
	IsOptional         bool            `json:"is_optional"`
}

type FeeStructureResponse struct {
	FeeStructureID uuid.UUID                `json:"fee_structure_id"`
	ClassID        uuid.UUID                `json:"class_id"`
	AcademicYear   string                   `json:"academic_year"`
	Name           string                   `json:"name"`
	EffectiveFrom  time.Time                `json:"effective_from"`
	Status         model.FeeStructureStatus `json:"status"`
	TotalAnnual    decimal.Decimal          `json:"total_annual"`
	Version        int                      `json:"version"`
	Items          []FeeItemResponse        `json:"items"`
}

func ToFeeItemResponses(items []model.FeeStructureItem) []FeeItemResponse {
	out := make([]FeeItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FeeItemResponse{
			FeeStructureItemID: it.FeeStructureItemID,
			Category:           it.FeeStructureItemCategory,
			Label:              it.FeeStructureItemLabel,
			Amount:             it.FeeStructureItemAmount,
			Frequency:          it.FeeStructureItemFrequency,
			IsOptional:         it.FeeStructureItemIsOptional,
		})
	}
	return out
}

func ToFeeStructureResponse(m model.FeeStructure, items []model.FeeStructureItem, h model.FeeStructureHistory) FeeStructureResponse {
	return FeeStructureResponse{
		FeeStructureID: m.FeeStructureID,
		ClassID:        m.FeeStructureClassID,
		AcademicYear:   m.FeeStructureAcademicYear,
		Name:           m.FeeStructureName,
		EffectiveFrom:  m.FeeStructureEffectiveFrom,
		Status:         m.FeeStructureStatus,
		TotalAnnual:    h.FeeStructureHistoryTotalAnnual,
		Version:        h.FeeStructureHistoryVersion,
		Items:          ToFeeItemResponses(items),
	}
}

// CreateStructurePayload keeps the caller compatibility contract: exactly one
// target class returns the bare object, several return an array.
func CreateStructurePayload(structures []FeeStructureResponse) any {
	if len(structures) == 1 {
		return structures[0]
	}
	return structures
}

type RevisionResponse struct {
	FeeStructureID uuid.UUID       `json:"fee_structure_id"`
	Version        int             `json:"version"`
	TotalAnnual    decimal.Decimal `json:"total_annual"`
}

type HistoryResponse struct {
	FeeStructureHistoryID uuid.UUID         `json:"fee_structure_history_id"`
	Version               int               `json:"version"`
	EffectiveFrom         time.Time         `json:"effective_from"`
	TotalAnnual           decimal.Decimal   `json:"total_annual"`
	ChangeReason          *string           `json:"change_reason,omitempty"`
	Snapshot              snapshot.ItemList `json:"snapshot"`
	CreatedAt             time.Time         `json:"created_at"`
}

func ToHistoryResponse(h model.FeeStructureHistory) (HistoryResponse, error) {
	snap, err := snapshot.Decode(h.FeeStructureHistorySnapshot)
	if err != nil {
		return HistoryResponse{}, err
	}
	return HistoryResponse{
		FeeStructureHistoryID: h.FeeStructureHistoryID,
		Version:               h.FeeStructureHistoryVersion,
		EffectiveFrom:         h.FeeStructureHistoryEffectiveFrom,
		TotalAnnual:           h.FeeStructureHistoryTotalAnnual,
		ChangeReason:          h.FeeStructureHistoryChangeReason,
		Snapshot:              snap,
		CreatedAt:             h.FeeStructureHistoryCreatedAt,
	}, nil
}

////////////////////////////////////////////////////////////////////////////////
// AS-OF VIEW
////////////////////////////////////////////////////////////////////////////////

type AsOfItemResponse struct {
	Category          string          `json:"category"`
	Label             string          `json:"label"`
	Amount            decimal.Decimal `json:"amount"`
	Frequency         money.Frequency `json:"frequency"`
	IsOptional        bool            `json:"is_optional"`
	MonthlyEquivalent decimal.Decimal `json:"monthly_equivalent"`
}

type AsOfResponse struct {
	ClassID      uuid.UUID `json:"class_id"`
	ClassGrade   string    `json:"class_grade"`
	ClassSection string    `json:"class_section"`

	FeeStructureID         uuid.UUID                `json:"fee_structure_id"`
	Name                   string                   `json:"name"`
	AcademicYear           string                   `json:"academic_year"`
	StructureEffectiveFrom time.Time                `json:"structure_effective_from"`
	Status                 model.FeeStructureStatus `json:"status"`

	Version              int             `json:"version"`
	HistoryEffectiveFrom time.Time       `json:"history_effective_from"`
	TotalAnnual          decimal.Decimal `json:"total_annual"`
	TotalMonthly         decimal.Decimal `json:"total_monthly"`

	Items []AsOfItemResponse `json:"items"`
}

////////////////////////////////////////////////////////////////////////////////
// LISTING
////////////////////////////////////////////////////////////////////////////////

type FeeStructureListRow struct {
	FeeStructureID uuid.UUID                `json:"fee_structure_id"`
	ClassID        uuid.UUID                `json:"class_id"`
	ClassGrade     string                   `json:"class_grade"`
	ClassSection   string                   `json:"class_section"`
	AcademicYear   string                   `json:"academic_year"`
	Name           string                   `json:"name"`
	EffectiveFrom  time.Time                `json:"effective_from"`
	Status         model.FeeStructureStatus `json:"status"`
	LatestVersion  int                      `json:"latest_version"`
	TotalAnnual    decimal.Decimal          `json:"total_annual"`
	StudentCount   int64                    `json:"student_count"`
	Items          []FeeItemResponse        `json:"items"`
}

////////////////////////////////////////////////////////////////////////////////
// CLASSES
////////////////////////////////////////////////////////////////////////////////

type ClassResponse struct {
	ClassID uuid.UUID              `json:"class_id"`
	Grade   string                 `json:"grade"`
	Section string                 `json:"section"`
	Shift   schoolModel.ClassShift `json:"shift"`
}

func ToClassResponses(classes []schoolModel.Class) []ClassResponse {
	out := make([]ClassResponse, 0, len(classes))
	for _, cl := range classes {
		out = append(out, ClassResponse{
			ClassID: cl.ClassID,
			Grade:   cl.ClassGrade,
			Section: cl.ClassSection,
			Shift:   cl.ClassShift,
		})
	}
	return out
}
