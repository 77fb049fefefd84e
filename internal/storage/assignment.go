package storage

import (
	"context"
	"fmt"

	"github.com/s/elearning/internal/apperr"
	"github.com/s/elearning/internal/models"
	"gorm.io/gorm"
)

type AssignmentRepo struct {
	Repo[models.Assignment]
}

func NewAssignmentRepo(db *gorm.DB) *AssignmentRepo {
	return &AssignmentRepo{newRepo[models.Assignment](db, "Assignment", "id")}
}

func (r *AssignmentRepo) GetByLessonID(ctx context.Context, tx *gorm.DB, lessonID uint) ([]models.Assignment, error) {
	return r.FindBy(ctx, tx, "lesson_id", lessonID)
}

type SubmissionRepo struct {
	Repo[models.Submission]
}

func NewSubmissionRepo(db *gorm.DB) *SubmissionRepo {
	return &SubmissionRepo{newRepo[models.Submission](db, "Submission", "id")}
}

func (r *SubmissionRepo) GetByAssignmentID(ctx context.Context, tx *gorm.DB, assignmentID uint) ([]models.Submission, error) {
	return r.FindBy(ctx, tx, "assignment_id", assignmentID)
}

func (r *SubmissionRepo) GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uint) ([]models.Submission, error) {
	return r.FindBy(ctx, tx, "student_id", studentID)
}

// Grade writes score and feedback and nothing else.
func (r *SubmissionRepo) Grade(ctx context.Context, tx *gorm.DB, id uint, score int, feedback *string) error {
	res := r.getDB(ctx, tx).
		Model(&models.Submission{ID: id}).
		Select("score", "feedback").
		Updates(map[string]any{"score": score, "feedback": feedback})
	if res.Error != nil {
		return fmt.Errorf("grade submission %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Submission", id)
	}
	return nil
}
