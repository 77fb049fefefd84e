package models

import "time"

type Assignment struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	DueDate     *time.Time
	MaxScore    *int
	LessonID    uint `gorm:"not null;index"`

	Submissions []Submission `gorm:"constraint:OnDelete:CASCADE;"`
}

type Submission struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	AssignmentID uint `gorm:"not null;index"`
	StudentID    uint `gorm:"not null;index"`
	SubmittedAt  time.Time
	Content      string `gorm:"type:text"`
	Score        *int
	Feedback     *string `gorm:"type:text"`
}
