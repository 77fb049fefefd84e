package models

import "time"

type QuestionType string

const (
	SingleChoice   QuestionType = "SINGLE_CHOICE"
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
)

func (t QuestionType) Valid() bool {
	return t == SingleChoice || t == MultipleChoice
}

type Quiz struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title     string `gorm:"not null"`
	TimeLimit *int   // minutes
	// At most one quiz per module.
	ModuleID *uint `gorm:"uniqueIndex"`

	Questions       []Question       `gorm:"constraint:OnDelete:CASCADE;"`
	QuizSubmissions []QuizSubmission `gorm:"constraint:OnDelete:CASCADE;"`
}

type Question struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Text   string       `gorm:"type:text"`
	Type   QuestionType `gorm:"size:32"`
	QuizID uint         `gorm:"not null;index"`

	Options []AnswerOption `gorm:"constraint:OnDelete:CASCADE;"`
}

type AnswerOption struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Text       string
	IsCorrect  bool
	QuestionID uint `gorm:"not null;index"`
}

type QuizSubmission struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	QuizID    uint `gorm:"not null;index"`
	StudentID uint `gorm:"not null;index"`
	Score     *float64
	TakenAt   time.Time
}
