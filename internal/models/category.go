package models

import "time"

type Category struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name string

	// Courses outlive their category; the reference is cleared instead.
	Courses []Course `gorm:"constraint:OnDelete:SET NULL;"`
}
