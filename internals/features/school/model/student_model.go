// file: internals/features/school/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- MODEL students ----------------------------------------------------------
type Student struct {
	StudentID uuid.UUID `json:"student_id" gorm:"column:student_id;type:uuid;primaryKey"`

	StudentClassID uuid.UUID `json:"student_class_id" gorm:"column:student_class_id;type:uuid;not null;index:idx_students_class"`

	StudentFullName   string  `json:"student_full_name" gorm:"column:student_full_name;type:varchar(120);not null"`
	StudentRollNumber *string `json:"student_roll_number,omitempty" gorm:"column:student_roll_number;type:varchar(20)"`

	StudentCreatedAt time.Time      `json:"student_created_at" gorm:"column:student_created_at;not null;autoCreateTime"`
	StudentUpdatedAt time.Time      `json:"student_updated_at" gorm:"column:student_updated_at;not null;autoUpdateTime"`
	StudentDeletedAt gorm.DeletedAt `json:"student_deleted_at,omitempty" gorm:"column:student_deleted_at;index"`
}

func (Student) TableName() string { return "students" }

func (m *Student) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
