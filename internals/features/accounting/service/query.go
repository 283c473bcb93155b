// file: internals/features/accounting/service/query.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolms_backend/internals/features/accounting/dto"
	"schoolms_backend/internals/features/accounting/model"
	"schoolms_backend/internals/features/accounting/money"
	"schoolms_backend/internals/features/accounting/snapshot"
	schoolModel "schoolms_backend/internals/features/school/model"
)

/* =======================================================
   HISTORICAL QUERY ENGINE (as-of resolution)
======================================================= */

// ResolveStructureAsOf answers "what was the fee structure for this class on
// date X": the most-recently-effective structure at or before forDate, then
// that structure's most-recently-effective history row (version breaks ties on
// equal dates), expanded into per-item monthly equivalents.
func (s *FeeStructureService) ResolveStructureAsOf(ctx context.Context, classID uuid.UUID, forDate time.Time) (*dto.AsOfResponse, error) {
	db := s.DB.WithContext(ctx)

	var class schoolModel.Class
	if err := db.First(&class, "class_id = ?", classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "class", Detail: classID.String()}
		}
		return nil, err
	}

	var structure model.FeeStructure
	if err := db.
		Where("fee_structure_class_id = ? AND fee_structure_effective_from <= ?", classID, forDate).
		Order("fee_structure_effective_from DESC").
		First(&structure).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "fee structure", Detail: "no structure effective on " + forDate.Format("2006-01-02")}
		}
		return nil, err
	}

	var history model.FeeStructureHistory
	if err := db.
		Where("fee_structure_history_fee_structure_id = ? AND fee_structure_history_effective_from <= ?",
			structure.FeeStructureID, forDate).
		Order("fee_structure_history_effective_from DESC, fee_structure_history_version DESC").
		First(&history).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "fee structure history", Detail: "no version effective on " + forDate.Format("2006-01-02")}
		}
		return nil, err
	}

	snap, err := snapshot.Decode(history.FeeStructureHistorySnapshot)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AsOfItemResponse, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, dto.AsOfItemResponse{
			Category:          it.Category,
			Label:             it.Label,
			Amount:            it.Amount,
			Frequency:         it.Frequency,
			IsOptional:        it.IsOptional,
			MonthlyEquivalent: money.MonthlyEquivalent(it.Amount, it.Frequency),
		})
	}

	return &dto.AsOfResponse{
		ClassID:      class.ClassID,
		ClassGrade:   class.ClassGrade,
		ClassSection: class.ClassSection,

		FeeStructureID:         structure.FeeStructureID,
		Name:                   structure.FeeStructureName,
		AcademicYear:           structure.FeeStructureAcademicYear,
		StructureEffectiveFrom: structure.FeeStructureEffectiveFrom,
		Status:                 structure.FeeStructureStatus,

		Version:              history.FeeStructureHistoryVersion,
		HistoryEffectiveFrom: history.FeeStructureHistoryEffectiveFrom,
		TotalAnnual:          history.FeeStructureHistoryTotalAnnual,
		TotalMonthly:         money.MonthlyFromAnnual(history.FeeStructureHistoryTotalAnnual),

		Items: items,
	}, nil
}

/* =======================================================
   LISTING / PAGINATION
======================================================= */

type ListStructuresInput struct {
	ClassID      *uuid.UUID
	AcademicYear *string
	Page         int
	PerPage      int
}

// ListStructures runs the count and the page fetch in one transaction so the
// pair is a consistent snapshot, then enriches each row with its live item
// set, latest history, class identity, and enrolled student count (group-by
// over students, joined in memory by class id).
func (s *FeeStructureService) ListStructures(ctx context.Context, in ListStructuresInput) ([]dto.FeeStructureListRow, int64, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PerPage < 1 {
		in.PerPage = 20
	}
	if in.PerPage > 100 {
		in.PerPage = 100
	}

	var (
		rows  []dto.FeeStructureListRow
		total int64
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		filtered := func() *gorm.DB {
			q := tx.Model(&model.FeeStructure{})
			if in.ClassID != nil {
				q = q.Where("fee_structure_class_id = ?", *in.ClassID)
			}
			if in.AcademicYear != nil {
				q = q.Where("fee_structure_academic_year = ?", *in.AcademicYear)
			}
			return q
		}

		if err := filtered().Count(&total).Error; err != nil {
			return err
		}

		var structures []model.FeeStructure
		if err := filtered().
			Order("fee_structure_created_at DESC").
			Limit(in.PerPage).
			Offset((in.Page - 1) * in.PerPage).
			Find(&structures).Error; err != nil {
			return err
		}
		if len(structures) == 0 {
			rows = []dto.FeeStructureListRow{}
			return nil
		}

		structureIDs := make([]uuid.UUID, 0, len(structures))
		classIDs := make([]uuid.UUID, 0, len(structures))
		for _, st := range structures {
			structureIDs = append(structureIDs, st.FeeStructureID)
			classIDs = append(classIDs, st.FeeStructureClassID)
		}

		var items []model.FeeStructureItem
		if err := tx.
			Where("fee_structure_item_fee_structure_id IN ?", structureIDs).
			Find(&items).Error; err != nil {
			return err
		}
		itemsByStructure := make(map[uuid.UUID][]model.FeeStructureItem, len(structures))
		for _, it := range items {
			itemsByStructure[it.FeeStructureItemFeeStructureID] = append(itemsByStructure[it.FeeStructureItemFeeStructureID], it)
		}

		var histories []model.FeeStructureHistory
		if err := tx.
			Where("fee_structure_history_fee_structure_id IN ?", structureIDs).
			Order("fee_structure_history_version ASC").
			Find(&histories).Error; err != nil {
			return err
		}
		latestByStructure := make(map[uuid.UUID]model.FeeStructureHistory, len(structures))
		for _, h := range histories {
			latestByStructure[h.FeeStructureHistoryFeeStructureID] = h // ascending order, last wins
		}

		var classes []schoolModel.Class
		if err := tx.Where("class_id IN ?", classIDs).Find(&classes).Error; err != nil {
			return err
		}
		classByID := make(map[uuid.UUID]schoolModel.Class, len(classes))
		for _, cl := range classes {
			classByID[cl.ClassID] = cl
		}

		type countRow struct {
			ClassID uuid.UUID `gorm:"column:class_id"`
			N       int64     `gorm:"column:n"`
		}
		var counts []countRow
		if err := tx.Model(&schoolModel.Student{}).
			Select("student_class_id AS class_id, COUNT(*) AS n").
			Where("student_class_id IN ?", classIDs).
			Group("student_class_id").
			Scan(&counts).Error; err != nil {
			return err
		}
		countByClass := make(map[uuid.UUID]int64, len(counts))
		for _, cr := range counts {
			countByClass[cr.ClassID] = cr.N
		}

		rows = make([]dto.FeeStructureListRow, 0, len(structures))
		for _, st := range structures {
			row := dto.FeeStructureListRow{
				FeeStructureID: st.FeeStructureID,
				ClassID:        st.FeeStructureClassID,
				AcademicYear:   st.FeeStructureAcademicYear,
				Name:           st.FeeStructureName,
				EffectiveFrom:  st.FeeStructureEffectiveFrom,
				Status:         st.FeeStructureStatus,
				StudentCount:   countByClass[st.FeeStructureClassID],
				Items:          dto.ToFeeItemResponses(itemsByStructure[st.FeeStructureID]),
			}
			if cl, ok := classByID[st.FeeStructureClassID]; ok {
				row.ClassGrade = cl.ClassGrade
				row.ClassSection = cl.ClassSection
			}
			if h, ok := latestByStructure[st.FeeStructureID]; ok {
				row.LatestVersion = h.FeeStructureHistoryVersion
				row.TotalAnnual = h.FeeStructureHistoryTotalAnnual
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

/* =======================================================
   PASS-THROUGH READS (classes, scholarships, charges)
======================================================= */

func (s *FeeStructureService) ListActiveClasses(ctx context.Context) ([]schoolModel.Class, error) {
	var classes []schoolModel.Class
	err := s.DB.WithContext(ctx).
		Order("class_grade ASC, class_section ASC").
		Find(&classes).Error
	return classes, err
}

// ListScholarshipAssignments returns assignments whose effective window
// overlaps [start, end].
func (s *FeeStructureService) ListScholarshipAssignments(ctx context.Context, studentID uuid.UUID, start, end time.Time) ([]model.ScholarshipAssignment, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	var rows []model.ScholarshipAssignment
	err := s.DB.WithContext(ctx).
		Preload("Scholarship").
		Where("scholarship_assignment_student_id = ?", studentID).
		Where("scholarship_assignment_effective_from <= ?", end).
		Where("(scholarship_assignment_expires_at IS NULL OR scholarship_assignment_expires_at >= ?)", start).
		Order("scholarship_assignment_effective_from ASC").
		Find(&rows).Error
	return rows, err
}

// ListChargeAssignments returns charges/fines applied within [start, end].
func (s *FeeStructureService) ListChargeAssignments(ctx context.Context, studentID uuid.UUID, start, end time.Time) ([]model.ChargeAssignment, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	var rows []model.ChargeAssignment
	err := s.DB.WithContext(ctx).
		Preload("Charge").
		Where("charge_assignment_student_id = ?", studentID).
		Where("charge_assignment_effective_from BETWEEN ? AND ?", start, end).
		Order("charge_assignment_effective_from ASC").
		Find(&rows).Error
	return rows, err
}

func (s *FeeStructureService) ensureStudent(ctx context.Context, studentID uuid.UUID) error {
	var student schoolModel.Student
	if err := s.DB.WithContext(ctx).First(&student, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "student", Detail: studentID.String()}
		}
		return err
	}
	return nil
}
