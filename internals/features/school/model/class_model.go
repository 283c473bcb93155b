// file: internals/features/school/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- ENUM class_shift --------------------------------------------------------
type ClassShift string

const (
	ClassShiftMorning ClassShift = "MORNING"
	ClassShiftDay     ClassShift = "DAY"
)

// --- MODEL classes -----------------------------------------------------------
type Class struct {
	ClassID uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid;primaryKey"`

	ClassGrade   string     `json:"class_grade" gorm:"column:class_grade;type:varchar(20);not null;index:idx_classes_grade_section,priority:1"`
	ClassSection string     `json:"class_section" gorm:"column:class_section;type:varchar(10);not null;index:idx_classes_grade_section,priority:2"`
	ClassShift   ClassShift `json:"class_shift" gorm:"column:class_shift;type:varchar(10);not null;default:'MORNING'"`

	ClassCreatedAt time.Time      `json:"class_created_at" gorm:"column:class_created_at;not null;autoCreateTime"`
	ClassUpdatedAt time.Time      `json:"class_updated_at" gorm:"column:class_updated_at;not null;autoUpdateTime"`
	ClassDeletedAt gorm.DeletedAt `json:"class_deleted_at,omitempty" gorm:"column:class_deleted_at;index"`
}

func (Class) TableName() string { return "classes" }

func (m *Class) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}
