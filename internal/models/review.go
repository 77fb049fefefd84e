package models

import "time"

// CourseReview - Отзыв к курсу
type CourseReview struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID   uint `gorm:"not null;index"`
	CourseID uint `gorm:"not null;index"`
	Rating   int
	Review   string `gorm:"type:text"`
}
