// file: internals/features/accounting/dto/assignment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolms_backend/internals/features/accounting/model"
)

type ScholarshipAssignmentResponse struct {
	ScholarshipAssignmentID uuid.UUID                  `json:"scholarship_assignment_id"`
	StudentID               uuid.UUID                  `json:"student_id"`
	ScholarshipID           uuid.UUID                  `json:"scholarship_id"`
	ScholarshipName         string                     `json:"scholarship_name"`
	ValueType               model.ScholarshipValueType `json:"value_type"`
	Value                   decimal.Decimal            `json:"value"`
	EffectiveFrom           time.Time                  `json:"effective_from"`
	ExpiresAt               *time.Time                 `json:"expires_at,omitempty"`
}

func ToScholarshipAssignmentResponses(rows []model.ScholarshipAssignment) []ScholarshipAssignmentResponse {
	out := make([]ScholarshipAssignmentResponse, 0, len(rows))
	for _, r := range rows {
		resp := ScholarshipAssignmentResponse{
			ScholarshipAssignmentID: r.ScholarshipAssignmentID,
			StudentID:               r.ScholarshipAssignmentStudentID,
			ScholarshipID:           r.ScholarshipAssignmentScholarshipID,
			EffectiveFrom:           r.ScholarshipAssignmentEffectiveFrom,
			ExpiresAt:               r.ScholarshipAssignmentExpiresAt,
		}
		if r.Scholarship != nil {
			resp.ScholarshipName = r.Scholarship.ScholarshipName
			resp.ValueType = r.Scholarship.ScholarshipValueType
			resp.Value = r.Scholarship.ScholarshipValue
		}
		out = append(out, resp)
	}
	return out
}

type ChargeAssignmentResponse struct {
	ChargeAssignmentID uuid.UUID        `json:"charge_assignment_id"`
	StudentID          uuid.UUID        `json:"student_id"`
	ChargeID           uuid.UUID        `json:"charge_id"`
	ChargeName         string           `json:"charge_name"`
	Kind               model.ChargeKind `json:"kind"`
	Amount             decimal.Decimal  `json:"amount"`
	EffectiveFrom      time.Time        `json:"effective_from"`
	ExpiresAt          *time.Time       `json:"expires_at,omitempty"`
}

func ToChargeAssignmentResponses(rows []model.ChargeAssignment) []ChargeAssignmentResponse {
	out := make([]ChargeAssignmentResponse, 0, len(rows))
	for _, r := range rows {
		resp := ChargeAssignmentResponse{
			ChargeAssignmentID: r.ChargeAssignmentID,
			StudentID:          r.ChargeAssignmentStudentID,
			ChargeID:           r.ChargeAssignmentChargeID,
			EffectiveFrom:      r.ChargeAssignmentEffectiveFrom,
			ExpiresAt:          r.ChargeAssignmentExpiresAt,
		}
		if r.Charge != nil {
			resp.ChargeName = r.Charge.ChargeName
			resp.Kind = r.Charge.ChargeKind
			resp.Amount = r.Charge.ChargeAmount
		}
		out = append(out, resp)
	}
	return out
}
