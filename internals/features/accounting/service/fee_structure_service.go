// file: internals/features/accounting/service/fee_structure_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolms_backend/internals/features/accounting/dto"
	"schoolms_backend/internals/features/accounting/model"
	"schoolms_backend/internals/features/accounting/money"
	"schoolms_backend/internals/features/accounting/snapshot"
	schoolModel "schoolms_backend/internals/features/school/model"
)

/* =======================================================
   BOOTSTRAP
======================================================= */

type FeeStructureService struct {
	DB *gorm.DB
}

func NewFeeStructureService(db *gorm.DB) *FeeStructureService {
	return &FeeStructureService{DB: db}
}

// CreatedStructure is one class's result of CreateStructure.
type CreatedStructure struct {
	Structure model.FeeStructure
	Items     []model.FeeStructureItem
	History   model.FeeStructureHistory
}

type RevisionResult struct {
	FeeStructureID uuid.UUID
	Version        int
	TotalAnnual    decimal.Decimal
}

// lockForUpdate serializes concurrent revisions of the same structure row.
// SQLite (tests) has no FOR UPDATE and serializes writers itself.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

/* =======================================================
   CREATE (possibly fanned out to multiple classes)
======================================================= */

// CreateStructure creates one fee structure per target class, each with its
// item set, history version 1, and the seeded per-student ledger — all in one
// transaction. Any failure rolls back every class in the batch.
func (s *FeeStructureService) CreateStructure(ctx context.Context, in dto.CreateFeeStructureRequest) ([]CreatedStructure, error) {
	targets := in.TargetClassIDs()
	if len(targets) == 0 {
		return nil, &ValidationError{Reason: "at least one target class is required"}
	}

	var created []CreatedStructure

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Friendly precondition: name every colliding class up front. The
		// partial unique index below stays the actual guard under races.
		var existing []model.FeeStructure
		if err := tx.
			Where("fee_structure_class_id IN ? AND fee_structure_academic_year = ?", targets, in.AcademicYear).
			Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			conflict := &ConflictError{AcademicYear: in.AcademicYear}
			for _, ex := range existing {
				conflict.ClassIDs = append(conflict.ClassIDs, ex.FeeStructureClassID)
			}
			return conflict
		}

		for _, classID := range targets {
			var class schoolModel.Class
			if err := tx.First(&class, "class_id = ?", classID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Resource: "class", Detail: classID.String()}
				}
				return err
			}

			structure := model.FeeStructure{
				FeeStructureClassID:       classID,
				FeeStructureAcademicYear:  in.AcademicYear,
				FeeStructureName:          in.Name,
				FeeStructureEffectiveFrom: in.EffectiveFrom,
				FeeStructureStatus:        model.FeeStructureStatusActive,
			}
			if err := tx.Create(&structure).Error; err != nil {
				if isUniqueViolation(err) {
					return &ConflictError{AcademicYear: in.AcademicYear, ClassIDs: []uuid.UUID{classID}}
				}
				return err
			}

			items := dto.ItemModels(structure.FeeStructureID, in.Items)
			if err := tx.Create(&items).Error; err != nil {
				return err
			}

			snap := snapshot.FromModels(items)
			snapJSON, err := snap.JSON()
			if err != nil {
				return err
			}
			totalAnnual := money.Annualize(snap.Lines())

			history := model.FeeStructureHistory{
				FeeStructureHistoryFeeStructureID: structure.FeeStructureID,
				FeeStructureHistoryVersion:        1,
				FeeStructureHistoryEffectiveFrom:  in.EffectiveFrom,
				FeeStructureHistoryTotalAnnual:    totalAnnual,
				FeeStructureHistorySnapshot:       snapJSON,
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}

			if err := seedStudentLedger(tx, classID, structure.FeeStructureID, totalAnnual, snapJSON, in.EffectiveFrom); err != nil {
				return err
			}

			created = append(created, CreatedStructure{Structure: structure, Items: items, History: history})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

/* =======================================================
   STUDENT FEE LEDGER SYNC
======================================================= */

// seedStudentLedger writes one StudentFeeHistory row per enrolled student for
// the structure's first billing period. The conditional insert (DO NOTHING on
// the student/period/version key) makes re-seeding a no-op instead of relying
// on a racy check-then-insert.
func seedStudentLedger(tx *gorm.DB, classID, structureID uuid.UUID, totalAnnual decimal.Decimal, breakdown datatypes.JSON, effectiveFrom time.Time) error {
	var students []schoolModel.Student
	if err := tx.Where("student_class_id = ?", classID).Find(&students).Error; err != nil {
		return err
	}
	if len(students) == 0 {
		return nil
	}

	periodMonth := firstOfMonth(effectiveFrom)

	rows := make([]model.StudentFeeHistory, 0, len(students))
	for _, st := range students {
		rows = append(rows, model.StudentFeeHistory{
			StudentFeeHistoryStudentID:          st.StudentID,
			StudentFeeHistoryPeriodMonth:        periodMonth,
			StudentFeeHistoryVersion:            1,
			StudentFeeHistoryFeeStructureID:     structureID,
			StudentFeeHistoryBaseAmount:         totalAnnual,
			StudentFeeHistoryScholarshipAmount:  decimal.Zero,
			StudentFeeHistoryExtraChargesAmount: decimal.Zero,
			StudentFeeHistoryFinalPayable:       totalAnnual,
			StudentFeeHistoryBreakdown:          breakdown,
		})
	}

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "student_fee_history_student_id"},
			{Name: "student_fee_history_period_month"},
			{Name: "student_fee_history_version"},
		},
		DoNothing: true,
	}).Create(&rows).Error
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

/* =======================================================
   REVISE (append a new history version)
======================================================= */

// ReviseStructure swaps the live item set and appends history version max+1.
// Existing StudentFeeHistory rows are left untouched; whether a revision
// should regenerate the current period's ledger is a product decision that has
// not been made, so the seeding stays create-only.
func (s *FeeStructureService) ReviseStructure(ctx context.Context, structureID uuid.UUID, in dto.ReviseFeeStructureRequest) (*RevisionResult, error) {
	var result *RevisionResult

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var structure model.FeeStructure
		if err := lockForUpdate(tx).First(&structure, "fee_structure_id = ?", structureID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "fee structure", Detail: structureID.String()}
			}
			return err
		}

		var maxVersion int
		if err := tx.Model(&model.FeeStructureHistory{}).
			Where("fee_structure_history_fee_structure_id = ?", structureID).
			Select("COALESCE(MAX(fee_structure_history_version), 0)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}
		nextVersion := maxVersion + 1

		// Retire the current composition; items are never mutated in place.
		if err := tx.
			Where("fee_structure_item_fee_structure_id = ?", structureID).
			Delete(&model.FeeStructureItem{}).Error; err != nil {
			return err
		}

		items := dto.ItemModels(structureID, in.Items)
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		snap := snapshot.FromModels(items)
		snapJSON, err := snap.JSON()
		if err != nil {
			return err
		}
		totalAnnual := money.Annualize(snap.Lines())

		history := model.FeeStructureHistory{
			FeeStructureHistoryFeeStructureID: structureID,
			FeeStructureHistoryVersion:        nextVersion,
			FeeStructureHistoryEffectiveFrom:  in.EffectiveFrom,
			FeeStructureHistoryTotalAnnual:    totalAnnual,
			FeeStructureHistorySnapshot:       snapJSON,
			FeeStructureHistoryChangeReason:   in.ChangeReason,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		result = &RevisionResult{
			FeeStructureID: structureID,
			Version:        nextVersion,
			TotalAnnual:    totalAnnual,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

/* =======================================================
   STATUS & HISTORY
======================================================= */

// UpdateStatus flips only the status column; the other columns belong to the
// create/revise paths and must survive a concurrent revision.
func (s *FeeStructureService) UpdateStatus(ctx context.Context, structureID uuid.UUID, status model.FeeStructureStatus) (*model.FeeStructure, error) {
	if !status.Valid() {
		return nil, &ValidationError{Reason: "invalid status: " + string(status)}
	}

	var structure model.FeeStructure
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&structure, "fee_structure_id = ?", structureID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "fee structure", Detail: structureID.String()}
			}
			return err
		}
		return tx.Model(&structure).Update("fee_structure_status", status).Error
	})
	if err != nil {
		return nil, err
	}

	structure.FeeStructureStatus = status
	return &structure, nil
}

func (s *FeeStructureService) GetStructureHistory(ctx context.Context, structureID uuid.UUID) ([]model.FeeStructureHistory, error) {
	var structure model.FeeStructure
	if err := s.DB.WithContext(ctx).First(&structure, "fee_structure_id = ?", structureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "fee structure", Detail: structureID.String()}
		}
		return nil, err
	}

	var history []model.FeeStructureHistory
	if err := s.DB.WithContext(ctx).
		Where("fee_structure_history_fee_structure_id = ?", structureID).
		Order("fee_structure_history_version ASC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}
