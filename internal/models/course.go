package models

import "time"

// Course (Курс)
type Course struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Duration    int
	CategoryID  *uint `gorm:"index"`
	TeacherID   *uint `gorm:"index"`

	Modules     []Module       `gorm:"constraint:OnDelete:CASCADE;"`
	Enrollments []Enrollment   `gorm:"constraint:OnDelete:CASCADE;"`
	Reviews     []CourseReview `gorm:"constraint:OnDelete:CASCADE;"`
	Tags        []Tag          `gorm:"many2many:course_tags;constraint:OnDelete:CASCADE;"`
}

// Module (Модуль)
type Module struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title       string
	OrderIndex  int
	Description string
	CourseID    uint `gorm:"not null;index"`

	Lessons []Lesson `gorm:"constraint:OnDelete:CASCADE;"`
	Quiz    *Quiz    `gorm:"constraint:OnDelete:CASCADE;"`
}

// Lesson (Урок)
type Lesson struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title      string `gorm:"not null"`
	Content    string `gorm:"type:text"`
	VideoURL   string
	OrderIndex *int
	ModuleID   uint `gorm:"not null;index"`

	Assignments []Assignment `gorm:"constraint:OnDelete:CASCADE;"`
}
