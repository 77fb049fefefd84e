package models

import (
	"time"

	"gorm.io/datatypes"
)

type EnrollStatus string

const EnrollActive EnrollStatus = "Active"

// Enrollment (Запись на курс)
type Enrollment struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID     uint `gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID   uint `gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	EnrollDate datatypes.Date
	Status     EnrollStatus `gorm:"size:32"`
}
