package database

import (
	"github.com/s/elearning/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates the schema. Parents are listed before their children
// so the ON DELETE constraints declared on parent fields can be attached.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.User{},
		&models.Profile{},
		&models.Tag{},
		&models.Course{},
		&models.Module{},
		&models.Lesson{},
		&models.Assignment{},
		&models.Submission{},
		&models.Quiz{},
		&models.Question{},
		&models.AnswerOption{},
		&models.QuizSubmission{},
		&models.Enrollment{},
		&models.CourseReview{},
	)
}
