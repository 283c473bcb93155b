// file: internals/features/accounting/service/fee_structure_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolms_backend/internals/features/accounting/dto"
	"schoolms_backend/internals/features/accounting/model"
	"schoolms_backend/internals/features/accounting/money"
	schoolModel "schoolms_backend/internals/features/school/model"
)

/* =======================================================
   FIXTURES
======================================================= */

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A fresh pool connection would be a fresh empty :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&schoolModel.Class{},
		&schoolModel.Student{},
		&model.FeeStructure{},
		&model.FeeStructureItem{},
		&model.FeeStructureHistory{},
		&model.StudentFeeHistory{},
		&model.Scholarship{},
		&model.ScholarshipAssignment{},
		&model.Charge{},
		&model.ChargeAssignment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedClass(t *testing.T, db *gorm.DB, grade, section string) schoolModel.Class {
	t.Helper()
	class := schoolModel.Class{ClassGrade: grade, ClassSection: section, ClassShift: schoolModel.ClassShiftMorning}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return class
}

func seedStudents(t *testing.T, db *gorm.DB, classID uuid.UUID, n int) []schoolModel.Student {
	t.Helper()
	out := make([]schoolModel.Student, 0, n)
	for i := 0; i < n; i++ {
		st := schoolModel.Student{
			StudentClassID:  classID,
			StudentFullName: fmt.Sprintf("Student %d", i+1),
		}
		if err := db.Create(&st).Error; err != nil {
			t.Fatalf("seed student: %v", err)
		}
		out = append(out, st)
	}
	return out
}

// Annualizes to 100*12 + 300*3 + 1000 + 50 = 3150.
func standardItems() []dto.FeeItemInput {
	return []dto.FeeItemInput{
		{Category: "TUITION", Label: "Tuition Fee", Amount: decimal.NewFromInt(100), Frequency: money.FrequencyMonthly},
		{Category: "LIBRARY", Label: "Library Fee", Amount: decimal.NewFromInt(300), Frequency: money.FrequencyTerm},
		{Category: "ADMISSION", Label: "Admission Fee", Amount: decimal.NewFromInt(1000), Frequency: money.FrequencyAnnual},
		{Category: "ID_CARD", Label: "ID Card", Amount: decimal.NewFromInt(50), Frequency: money.FrequencyOneTime, IsOptional: true},
	}
}

func createReq(year string, effectiveFrom time.Time, classIDs ...uuid.UUID) dto.CreateFeeStructureRequest {
	return dto.CreateFeeStructureRequest{
		ClassIDs:      classIDs,
		AcademicYear:  year,
		Name:          "Standard Fees",
		EffectiveFrom: effectiveFrom,
		Items:         standardItems(),
	}
}

func count(t *testing.T, db *gorm.DB, m any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

/* =======================================================
   CREATE
======================================================= */

func TestCreateStructure_SeedsHistoryAndLedger(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)
	ctx := context.Background()

	class := seedClass(t, db, "5", "A")
	seedStudents(t, db, class.ClassID, 3)

	created, err := svc.CreateStructure(ctx, createReq("2024-2025", date(2024, 4, 15), class.ClassID))
	if err != nil {
		t.Fatalf("CreateStructure: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created %d structures, want 1", len(created))
	}

	got := created[0]
	if got.Structure.FeeStructureStatus != model.FeeStructureStatusActive {
		t.Errorf("status = %s, want ACTIVE", got.Structure.FeeStructureStatus)
	}
	if got.History.FeeStructureHistoryVersion != 1 {
		t.Errorf("history version = %d, want 1", got.History.FeeStructureHistoryVersion)
	}
	if !got.History.FeeStructureHistoryTotalAnnual.Equal(decimal.NewFromInt(3150)) {
		t.Errorf("total annual = %s, want 3150", got.History.FeeStructureHistoryTotalAnnual)
	}
	if len(got.Items) != 4 {
		t.Errorf("items = %d, want 4", len(got.Items))
	}

	// Round-trip through the database, time columns included.
	var reloaded model.FeeStructure
	if err := db.First(&reloaded, "fee_structure_id = ?", got.Structure.FeeStructureID).Error; err != nil {
		t.Fatalf("reload structure: %v", err)
	}
	if !reloaded.FeeStructureEffectiveFrom.Equal(date(2024, 4, 15)) {
		t.Errorf("effective from = %s, want 2024-04-15", reloaded.FeeStructureEffectiveFrom)
	}
	if reloaded.FeeStructureCreatedAt.IsZero() {
		t.Error("created_at did not scan back")
	}

	var ledger []model.StudentFeeHistory
	if err := db.Find(&ledger).Error; err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	if len(ledger) != 3 {
		t.Fatalf("ledger rows = %d, want 3 (one per student)", len(ledger))
	}
	for _, row := range ledger {
		if row.StudentFeeHistoryVersion != 1 {
			t.Errorf("ledger version = %d, want 1", row.StudentFeeHistoryVersion)
		}
		if !row.StudentFeeHistoryFinalPayable.Equal(decimal.NewFromInt(3150)) {
			t.Errorf("final payable = %s, want 3150", row.StudentFeeHistoryFinalPayable)
		}
		if !row.StudentFeeHistoryPeriodMonth.Equal(date(2024, 4, 1)) {
			t.Errorf("period month = %s, want 2024-04-01", row.StudentFeeHistoryPeriodMonth)
		}
	}
}

func TestSeedStudentLedger_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)
	ctx := context.Background()

	class := seedClass(t, db, "5", "A")
	seedStudents(t, db, class.ClassID, 2)

	created, err := svc.CreateStructure(ctx, createReq("2024-2025", date(2024, 4, 15), class.ClassID))
	if err != nil {
		t.Fatalf("CreateStructure: %v", err)
	}
	structure := created[0].Structure

	// Re-running the seed with identical inputs must hit the conditional
	// insert, not duplicate rows.
	if err := seedStudentLedger(db, class.ClassID, structure.FeeStructureID,
		decimal.NewFromInt(3150), created[0].History.FeeStructureHistorySnapshot, date(2024, 4, 15)); err != nil {
		t.Fatalf("re-seed: %v", err)
	}

	if n := count(t, db, &model.StudentFeeHistory{}, ""); n != 2 {
		t.Errorf("ledger rows after re-seed = %d, want 2", n)
	}
}

func TestCreateStructure_ConflictOnDuplicateYear(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)
	ctx := context.Background()

	class := seedClass(t, db, "5", "A")

	if _, err := svc.CreateStructure(ctx, createReq("2024-2025", date(2024, 4, 1), class.ClassID)); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.CreateStructure(ctx, createReq("2024-2025", date(2024, 5, 1), class.ClassID))
	if !IsConflict(err) {
		t.Fatalf("second create err = %v, want conflict", err)
	}
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		if conflict.AcademicYear != "2024-2025" || len(conflict.ClassIDs) != 1 || conflict.ClassIDs[0] != class.ClassID {
			t.Errorf("conflict detail = %+v, want year 2024-2025 with the colliding class", conflict)
		}
	}

	// Same class, different year is allowed.
	if _, err := svc.CreateStructure(ctx, createReq("2025-2026", date(2025, 4, 1), class.ClassID)); err != nil {
		t.Errorf("different year create: %v", err)
	}
}

func TestCreateStructure_ValidationOnEmptyTargets(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)

	req := createReq("2024-2025", date(2024, 4, 1))
	if _, err := svc.CreateStructure(context.Background(), req); !IsValidation(err) {
		t.Errorf("err = %v, want validation", err)
	}
}

func TestCreateStructure_MultiClassFanOut(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)
	ctx := context.Background()

	classA := seedClass(t, db, "5", "A")
	classB := seedClass(t, db, "5", "B")

	// class_id duplicated inside class_ids; targets must de-duplicate.
	req := createReq("2024-2025", date(2024, 4, 1), classA.ClassID, classB.ClassID, classA.ClassID)
	req.ClassID = &classA.ClassID

	created, err := svc.CreateStructure(ctx, req)
	if err != nil {
		t.Fatalf("CreateStructure: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created %d structures, want 2", len(created))
	}
	if n := count(t, db, &model.FeeStructure{}, ""); n != 2 {
		t.Errorf("fee_structures rows = %d, want 2", n)
	}
}

func TestCreateStructure_RollbackOnUnknownClass(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)
	ctx := context.Background()

	class := seedClass(t, db, "5", "A")
	seedStudents(t, db, class.ClassID, 2)

	req := createReq("2024-2025", date(2024, 4, 1), class.ClassID, uuid.New())
	if _, err := svc.CreateStructure(ctx, req); !IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}

	// The valid class was processed first; the whole batch must roll back.
	if n := count(t, db, &model.FeeStructure{}, ""); n != 0 {
		t.Errorf("fee_structures rows = %d, want 0 after rollback", n)
	}
	if n := count(t, db, &model.FeeStructureHistory{}, ""); n != 0 {
		t.Errorf("history rows = %d, want 0 after rollback", n)
	}
	if n := count(t, db, &model.StudentFeeHistory{}, ""); n != 0 {
		t.Errorf("ledger rows = %d, want 0 after rollback", n)
	}
}

/* =======================================================
   REVISE
======================================================= */

func TestReviseStructure_AppendsVersions(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)
	ctx := context.Background()

	class := seedClass(t, db, "5", "A")
	seedStudents(t, db, class.ClassID, 2)

	created, err := svc.CreateStructure(ctx, createReq("2024-2025", date(2024, 4, 1), class.ClassID))
	if err != nil {
		t.Fatalf("CreateStructure: %v", err)
	}
	structureID := created[0].Structure.FeeStructureID

	reason := "tuition increase"
	rev2, err := svc.ReviseStructure(ctx, structureID, dto.ReviseFeeStructureRequest{
		EffectiveFrom: date(2024, 7, 1),
		Items: []dto.FeeItemInput{
			{Category: "TUITION", Label: "Tuition Fee", Amount: decimal.NewFromInt(200), Frequency: money.FrequencyMonthly},
		},
		ChangeReason: &reason,
	})
	if err != nil {
		t.Fatalf("first revise: %v", err)
	}
	if rev2.Version != 2 {
		t.Errorf("version = %d, want 2", rev2.Version)
	}
	if !rev2.TotalAnnual.Equal(decimal.NewFromInt(2400)) {
		t.Errorf("total annual = %s, want 2400", rev2.TotalAnnual)
	}

	rev3, err := svc.ReviseStructure(ctx, structureID, dto.ReviseFeeStructureRequest{
		EffectiveFrom: date(2024, 10, 1),
		Items:         standardItems(),
	})
	if err != nil {
		t.Fatalf("second revise: %v", err)
	}
	if rev3.Version != 3 {
		t.Errorf("version = %d, want 3", rev3.Version)
	}

	history, err := svc.GetStructureHistory(ctx, structureID)
	if err != nil {
		t.Fatalf("GetStructureHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history rows = %d, want 3", len(history))
	}
	for i, h := range history {
		if h.FeeStructureHistoryVersion != i+1 {
			t.Errorf("history[%d] version = %d, want %d", i, h.FeeStructureHistoryVersion, i+1)
		}
	}

	// Live item set is the last revision; retired sets are soft-deleted.
	live := count(t, db, &model.FeeStructureItem{}, "fee_structure_item_fee_structure_id = ?", structureID)
	if live != 4 {
		t.Errorf("live items = %d, want 4", live)
	}
	var all int64
	if err := db.Unscoped().Model(&model.FeeStructureItem{}).
		Where("fee_structure_item_fee_structure_id = ?", structureID).
		Count(&all).Error; err != nil {
		t.Fatalf("count unscoped: %v", err)
	}
	if all != 9 { // 4 + 1 + 4 across the three versions
		t.Errorf("total items ever = %d, want 9", all)
	}

	// Revision never rewrites the seeded student ledger.
	if n := count(t, db, &model.StudentFeeHistory{}, ""); n != 2 {
		t.Errorf("ledger rows after revisions = %d, want 2", n)
	}
}

func TestReviseStructure_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)

	_, err := svc.ReviseStructure(context.Background(), uuid.New(), dto.ReviseFeeStructureRequest{
		EffectiveFrom: date(2024, 7, 1),
		Items:         standardItems(),
	})
	if !IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

/* =======================================================
   STATUS
======================================================= */

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)
	ctx := context.Background()

	class := seedClass(t, db, "5", "A")
	created, err := svc.CreateStructure(ctx, createReq("2024-2025", date(2024, 4, 1), class.ClassID))
	if err != nil {
		t.Fatalf("CreateStructure: %v", err)
	}
	id := created[0].Structure.FeeStructureID

	updated, err := svc.UpdateStatus(ctx, id, model.FeeStructureStatusArchived)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.FeeStructureStatus != model.FeeStructureStatusArchived {
		t.Errorf("status = %s, want ARCHIVED", updated.FeeStructureStatus)
	}

	// Only the status column changes; the rest of the row stays intact.
	var reloaded model.FeeStructure
	if err := db.First(&reloaded, "fee_structure_id = ?", id).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.FeeStructureStatus != model.FeeStructureStatusArchived {
		t.Errorf("persisted status = %s, want ARCHIVED", reloaded.FeeStructureStatus)
	}
	if reloaded.FeeStructureName != "Standard Fees" || reloaded.FeeStructureAcademicYear != "2024-2025" {
		t.Errorf("status update touched other columns: %+v", reloaded)
	}

	if _, err := svc.UpdateStatus(ctx, id, model.FeeStructureStatus("RETIRED")); !IsValidation(err) {
		t.Errorf("invalid status err = %v, want validation", err)
	}
	if _, err := svc.UpdateStatus(ctx, uuid.New(), model.FeeStructureStatusDraft); !IsNotFound(err) {
		t.Errorf("unknown id err = %v, want not found", err)
	}
}

/* =======================================================
   AS-OF RESOLUTION
======================================================= */

func TestResolveStructureAsOf(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)
	ctx := context.Background()

	class := seedClass(t, db, "5", "A")

	first, err := svc.CreateStructure(ctx, createReq("2023-2024", date(2024, 1, 1), class.ClassID))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second := createReq("2024-2025", date(2024, 6, 1), class.ClassID)
	second.Items = []dto.FeeItemInput{
		{Category: "TUITION", Label: "Tuition Fee", Amount: decimal.NewFromInt(500), Frequency: money.FrequencyMonthly},
	}
	secondCreated, err := svc.CreateStructure(ctx, second)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	// After the second structure takes effect.
	resp, err := svc.ResolveStructureAsOf(ctx, class.ClassID, date(2024, 7, 1))
	if err != nil {
		t.Fatalf("as-of 2024-07-01: %v", err)
	}
	if resp.FeeStructureID != secondCreated[0].Structure.FeeStructureID {
		t.Errorf("resolved %s, want the 2024-06-01 structure", resp.FeeStructureID)
	}
	if !resp.TotalAnnual.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("total annual = %s, want 6000", resp.TotalAnnual)
	}
	if !resp.TotalMonthly.Equal(decimal.NewFromInt(500)) {
		t.Errorf("total monthly = %s, want 500", resp.TotalMonthly)
	}

	// Before the second structure, the first one still answers.
	resp, err = svc.ResolveStructureAsOf(ctx, class.ClassID, date(2024, 3, 1))
	if err != nil {
		t.Fatalf("as-of 2024-03-01: %v", err)
	}
	if resp.FeeStructureID != first[0].Structure.FeeStructureID {
		t.Errorf("resolved %s, want the 2024-01-01 structure", resp.FeeStructureID)
	}
	if resp.Version != 1 {
		t.Errorf("version = %d, want 1", resp.Version)
	}
	if !resp.TotalAnnual.Equal(decimal.NewFromInt(3150)) {
		t.Errorf("total annual = %s, want 3150", resp.TotalAnnual)
	}
	if !resp.TotalMonthly.Equal(decimal.NewFromInt(262)) { // floor(3150/12)
		t.Errorf("total monthly = %s, want 262", resp.TotalMonthly)
	}
	wantMonthly := map[string]int64{
		"TUITION":   100, // monthly, unchanged
		"LIBRARY":   100, // 300 per term / 3
		"ADMISSION": 83,  // floor(1000/12)
		"ID_CARD":   50,  // one-time, unchanged
	}
	for _, it := range resp.Items {
		if want, ok := wantMonthly[it.Category]; ok && !it.MonthlyEquivalent.Equal(decimal.NewFromInt(want)) {
			t.Errorf("%s monthly equivalent = %s, want %d", it.Category, it.MonthlyEquivalent, want)
		}
	}

	// Nothing was effective yet.
	if _, err := svc.ResolveStructureAsOf(ctx, class.ClassID, date(2023, 1, 1)); !IsNotFound(err) {
		t.Errorf("as-of 2023-01-01 err = %v, want not found", err)
	}
	// Unknown class.
	if _, err := svc.ResolveStructureAsOf(ctx, uuid.New(), date(2024, 7, 1)); !IsNotFound(err) {
		t.Errorf("unknown class err = %v, want not found", err)
	}
}

func TestResolveStructureAsOf_AcrossRevisions(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)
	ctx := context.Background()

	class := seedClass(t, db, "5", "A")
	created, err := svc.CreateStructure(ctx, createReq("2024-2025", date(2024, 1, 1), class.ClassID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	structureID := created[0].Structure.FeeStructureID

	// A correction sharing the create's effective date: same day, version 2.
	rev2, err := svc.ReviseStructure(ctx, structureID, dto.ReviseFeeStructureRequest{
		EffectiveFrom: date(2024, 1, 1),
		Items: []dto.FeeItemInput{
			{Category: "TUITION", Label: "Tuition Fee", Amount: decimal.NewFromInt(120), Frequency: money.FrequencyMonthly},
		},
	})
	if err != nil {
		t.Fatalf("revise to v2: %v", err)
	}
	if rev2.Version != 2 {
		t.Fatalf("version = %d, want 2", rev2.Version)
	}

	// A later mid-year revision.
	rev3, err := svc.ReviseStructure(ctx, structureID, dto.ReviseFeeStructureRequest{
		EffectiveFrom: date(2024, 9, 1),
		Items: []dto.FeeItemInput{
			{Category: "TUITION", Label: "Tuition Fee", Amount: decimal.NewFromInt(150), Frequency: money.FrequencyMonthly},
		},
	})
	if err != nil {
		t.Fatalf("revise to v3: %v", err)
	}

	// Between the tie and the mid-year revision: the higher version wins the
	// equal-date tie.
	resp, err := svc.ResolveStructureAsOf(ctx, class.ClassID, date(2024, 3, 1))
	if err != nil {
		t.Fatalf("as-of 2024-03-01: %v", err)
	}
	if resp.Version != 2 {
		t.Errorf("version = %d, want 2 (tie on effective date)", resp.Version)
	}
	if !resp.TotalAnnual.Equal(decimal.NewFromInt(1440)) { // 120*12
		t.Errorf("total annual = %s, want 1440", resp.TotalAnnual)
	}

	// After the mid-year revision takes effect.
	resp, err = svc.ResolveStructureAsOf(ctx, class.ClassID, date(2024, 10, 1))
	if err != nil {
		t.Fatalf("as-of 2024-10-01: %v", err)
	}
	if resp.Version != rev3.Version {
		t.Errorf("version = %d, want %d", resp.Version, rev3.Version)
	}
	if !resp.TotalAnnual.Equal(decimal.NewFromInt(1800)) { // 150*12
		t.Errorf("total annual = %s, want 1800", resp.TotalAnnual)
	}
}

/* =======================================================
   LISTING
======================================================= */

func TestListStructures(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)
	ctx := context.Background()

	classA := seedClass(t, db, "5", "A")
	classB := seedClass(t, db, "6", "B")
	seedStudents(t, db, classA.ClassID, 3)
	seedStudents(t, db, classB.ClassID, 1)

	if _, err := svc.CreateStructure(ctx, createReq("2024-2025", date(2024, 4, 1), classA.ClassID, classB.ClassID)); err != nil {
		t.Fatalf("CreateStructure: %v", err)
	}

	rows, total, err := svc.ListStructures(ctx, ListStructuresInput{Page: 1, PerPage: 20})
	if err != nil {
		t.Fatalf("ListStructures: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("total = %d, rows = %d, want 2/2", total, len(rows))
	}

	classID := classA.ClassID
	rows, total, err = svc.ListStructures(ctx, ListStructuresInput{ClassID: &classID, Page: 1, PerPage: 20})
	if err != nil {
		t.Fatalf("ListStructures by class: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("filtered total = %d, rows = %d, want 1/1", total, len(rows))
	}
	row := rows[0]
	if row.ClassID != classA.ClassID || row.ClassGrade != "5" || row.ClassSection != "A" {
		t.Errorf("class identity = %s %s/%s, want class A", row.ClassID, row.ClassGrade, row.ClassSection)
	}
	if row.StudentCount != 3 {
		t.Errorf("student count = %d, want 3", row.StudentCount)
	}
	if row.LatestVersion != 1 {
		t.Errorf("latest version = %d, want 1", row.LatestVersion)
	}
	if !row.TotalAnnual.Equal(decimal.NewFromInt(3150)) {
		t.Errorf("total annual = %s, want 3150", row.TotalAnnual)
	}
	if len(row.Items) != 4 {
		t.Errorf("items = %d, want 4", len(row.Items))
	}

	// After a revision the listing reflects the newest version.
	rev, err := svc.ReviseStructure(ctx, row.FeeStructureID, dto.ReviseFeeStructureRequest{
		EffectiveFrom: date(2024, 7, 1),
		Items: []dto.FeeItemInput{
			{Category: "TUITION", Label: "Tuition Fee", Amount: decimal.NewFromInt(200), Frequency: money.FrequencyMonthly},
		},
	})
	if err != nil {
		t.Fatalf("revise: %v", err)
	}
	rows, _, err = svc.ListStructures(ctx, ListStructuresInput{ClassID: &classID, Page: 1, PerPage: 20})
	if err != nil {
		t.Fatalf("ListStructures after revise: %v", err)
	}
	if rows[0].LatestVersion != rev.Version {
		t.Errorf("latest version = %d, want %d", rows[0].LatestVersion, rev.Version)
	}
	if len(rows[0].Items) != 1 {
		t.Errorf("live items after revise = %d, want 1", len(rows[0].Items))
	}

	// Pagination: page size 1 over 2 rows.
	rows, total, err = svc.ListStructures(ctx, ListStructuresInput{Page: 2, PerPage: 1})
	if err != nil {
		t.Fatalf("ListStructures page 2: %v", err)
	}
	if total != 2 || len(rows) != 1 {
		t.Errorf("page 2: total = %d, rows = %d, want 2/1", total, len(rows))
	}

	year := "2019-2020"
	rows, total, err = svc.ListStructures(ctx, ListStructuresInput{AcademicYear: &year, Page: 1, PerPage: 20})
	if err != nil {
		t.Fatalf("ListStructures by year: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Errorf("unknown year: total = %d, rows = %d, want 0/0", total, len(rows))
	}
}

/* =======================================================
   SCHOLARSHIPS & CHARGES
======================================================= */

func TestListScholarshipAndChargeAssignments(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeeStructureService(db)
	ctx := context.Background()

	class := seedClass(t, db, "5", "A")
	student := seedStudents(t, db, class.ClassID, 1)[0]

	merit := model.Scholarship{
		ScholarshipName:      "Merit Scholarship",
		ScholarshipValueType: model.ScholarshipValuePercent,
		ScholarshipValue:     decimal.NewFromInt(25),
	}
	if err := db.Create(&merit).Error; err != nil {
		t.Fatalf("seed scholarship: %v", err)
	}
	expired := date(2024, 1, 15)
	assignments := []model.ScholarshipAssignment{
		{
			ScholarshipAssignmentStudentID:     student.StudentID,
			ScholarshipAssignmentScholarshipID: merit.ScholarshipID,
			ScholarshipAssignmentEffectiveFrom: date(2024, 1, 1),
			// open-ended
		},
		{
			ScholarshipAssignmentStudentID:     student.StudentID,
			ScholarshipAssignmentScholarshipID: merit.ScholarshipID,
			ScholarshipAssignmentEffectiveFrom: date(2023, 6, 1),
			ScholarshipAssignmentExpiresAt:     &expired,
		},
	}
	if err := db.Create(&assignments).Error; err != nil {
		t.Fatalf("seed assignments: %v", err)
	}

	got, err := svc.ListScholarshipAssignments(ctx, student.StudentID, date(2024, 2, 1), date(2024, 2, 29))
	if err != nil {
		t.Fatalf("ListScholarshipAssignments: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("assignments = %d, want 1 (expired one excluded)", len(got))
	}
	if got[0].Scholarship == nil || got[0].Scholarship.ScholarshipName != "Merit Scholarship" {
		t.Errorf("scholarship not preloaded: %+v", got[0].Scholarship)
	}

	// A window that covers both.
	got, err = svc.ListScholarshipAssignments(ctx, student.StudentID, date(2024, 1, 1), date(2024, 1, 31))
	if err != nil {
		t.Fatalf("ListScholarshipAssignments wide: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("assignments = %d, want 2", len(got))
	}

	lateFine := model.Charge{
		ChargeName:   "Late Payment Fine",
		ChargeKind:   model.ChargeKindFine,
		ChargeAmount: decimal.NewFromInt(20),
	}
	if err := db.Create(&lateFine).Error; err != nil {
		t.Fatalf("seed charge: %v", err)
	}
	charges := []model.ChargeAssignment{
		{
			ChargeAssignmentStudentID:     student.StudentID,
			ChargeAssignmentChargeID:      lateFine.ChargeID,
			ChargeAssignmentEffectiveFrom: date(2024, 2, 10),
		},
		{
			ChargeAssignmentStudentID:     student.StudentID,
			ChargeAssignmentChargeID:      lateFine.ChargeID,
			ChargeAssignmentEffectiveFrom: date(2024, 5, 10),
		},
	}
	if err := db.Create(&charges).Error; err != nil {
		t.Fatalf("seed charge assignments: %v", err)
	}

	gotCharges, err := svc.ListChargeAssignments(ctx, student.StudentID, date(2024, 2, 1), date(2024, 2, 29))
	if err != nil {
		t.Fatalf("ListChargeAssignments: %v", err)
	}
	if len(gotCharges) != 1 {
		t.Fatalf("charges = %d, want 1 (May one outside window)", len(gotCharges))
	}
	if gotCharges[0].Charge == nil || gotCharges[0].Charge.ChargeKind != model.ChargeKindFine {
		t.Errorf("charge not preloaded: %+v", gotCharges[0].Charge)
	}

	if _, err := svc.ListScholarshipAssignments(ctx, uuid.New(), date(2024, 2, 1), date(2024, 2, 29)); !IsNotFound(err) {
		t.Errorf("unknown student err = %v, want not found", err)
	}
}
