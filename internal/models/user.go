package models

import "time"

type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name  string
	Email string `gorm:"uniqueIndex;size:255"`
	Role  Role   `gorm:"size:32"`

	Profile         *Profile         `gorm:"constraint:OnDelete:CASCADE;"`
	CoursesTaught   []Course         `gorm:"foreignKey:TeacherID;constraint:OnDelete:SET NULL;"`
	Enrollments     []Enrollment     `gorm:"constraint:OnDelete:CASCADE;"`
	Submissions     []Submission     `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;"`
	QuizSubmissions []QuizSubmission `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;"`
	Reviews         []CourseReview   `gorm:"constraint:OnDelete:CASCADE;"`
}

type Profile struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Bio       string `gorm:"type:text"`
	AvatarURL string
	UserID    uint `gorm:"not null;uniqueIndex"`
}
