package seeds

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"schoolms_backend/internals/features/accounting/model"
	schoolModel "schoolms_backend/internals/features/school/model"
)

// RunDevSeeds fills an empty development database with a handful of classes,
// students, and catalog rows so the read endpoints answer with something.
// No-op when classes already exist. Assumes a migrated schema.
func RunDevSeeds(db *gorm.DB) {
	var n int64
	if err := db.Model(&schoolModel.Class{}).Count(&n).Error; err != nil {
		log.Printf("[SEED] skipped: %v", err)
		return
	}
	if n > 0 {
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		classes := []schoolModel.Class{
			{ClassGrade: "1", ClassSection: "A", ClassShift: schoolModel.ClassShiftMorning},
			{ClassGrade: "1", ClassSection: "B", ClassShift: schoolModel.ClassShiftDay},
			{ClassGrade: "2", ClassSection: "A", ClassShift: schoolModel.ClassShiftMorning},
		}
		if err := tx.Create(&classes).Error; err != nil {
			return err
		}

		for ci, class := range classes {
			students := make([]schoolModel.Student, 0, 5)
			for i := 1; i <= 5; i++ {
				roll := fmt.Sprintf("%s%s-%02d", class.ClassGrade, class.ClassSection, i)
				students = append(students, schoolModel.Student{
					StudentClassID:    class.ClassID,
					StudentFullName:   fmt.Sprintf("Demo Student %d-%d", ci+1, i),
					StudentRollNumber: &roll,
				})
			}
			if err := tx.Create(&students).Error; err != nil {
				return err
			}
		}

		scholarship := model.Scholarship{
			ScholarshipName:      "Sibling Discount",
			ScholarshipValueType: model.ScholarshipValueFlat,
			ScholarshipValue:     decimal.NewFromInt(50),
		}
		if err := tx.Create(&scholarship).Error; err != nil {
			return err
		}

		fine := model.Charge{
			ChargeName:   "Late Payment Fine",
			ChargeKind:   model.ChargeKindFine,
			ChargeAmount: decimal.NewFromInt(20),
		}
		return tx.Create(&fine).Error
	})
	if err != nil {
		log.Printf("[SEED] failed: %v", err)
		return
	}
	log.Printf("[SEED] development data seeded at %s", time.Now().Format(time.RFC3339))
}
