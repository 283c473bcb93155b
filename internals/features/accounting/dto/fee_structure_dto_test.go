// file: internals/features/accounting/dto/fee_structure_dto_test.go
package dto

import (
	"testing"

	"github.com/google/uuid"
)

func TestTargetClassIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	tests := []struct {
		name string
		req  CreateFeeStructureRequest
		want []uuid.UUID
	}{
		{name: "none", req: CreateFeeStructureRequest{}, want: nil},
		{name: "single class_id", req: CreateFeeStructureRequest{ClassID: &a}, want: []uuid.UUID{a}},
		{name: "batch only", req: CreateFeeStructureRequest{ClassIDs: []uuid.UUID{a, b}}, want: []uuid.UUID{a, b}},
		{name: "union de-duplicated", req: CreateFeeStructureRequest{ClassID: &a, ClassIDs: []uuid.UUID{b, a, b}}, want: []uuid.UUID{a, b}},
		{name: "nil uuid dropped", req: CreateFeeStructureRequest{ClassIDs: []uuid.UUID{uuid.Nil, a}}, want: []uuid.UUID{a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.req.TargetClassIDs()
			if len(got) != len(tt.want) {
				t.Fatalf("TargetClassIDs() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("TargetClassIDs()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCreateStructurePayload(t *testing.T) {
	one := []FeeStructureResponse{{Name: "Standard Fees"}}
	if _, ok := CreateStructurePayload(one).(FeeStructureResponse); !ok {
		t.Error("single structure should serialize as a bare object")
	}

	two := []FeeStructureResponse{{Name: "A"}, {Name: "B"}}
	if _, ok := CreateStructurePayload(two).([]FeeStructureResponse); !ok {
		t.Error("multiple structures should serialize as an array")
	}
}
