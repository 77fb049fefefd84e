package storage

import (
	"context"
	"fmt"

	"github.com/s/elearning/internal/apperr"
	"github.com/s/elearning/internal/models"
	"gorm.io/gorm"
)

type QuizRepo struct {
	Repo[models.Quiz]
}

func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{newRepo[models.Quiz](db, "Quiz", "id")}
}

func (r *QuizRepo) GetByModuleID(ctx context.Context, tx *gorm.DB, moduleID uint) (*models.Quiz, error) {
	quizzes, err := r.FindBy(ctx, tx, "module_id", moduleID)
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return nil, apperr.NotFoundf("Quiz not found for module id: %d", moduleID)
	}
	return &quizzes[0], nil
}

// ModuleTaken reports whether a quiz other than exceptID is linked to the module.
func (r *QuizRepo) ModuleTaken(ctx context.Context, tx *gorm.DB, moduleID, exceptID uint) (bool, error) {
	var n int64
	err := r.getDB(ctx, tx).Model(&models.Quiz{}).
		Where("module_id = ? AND id <> ?", moduleID, exceptID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check quiz for module %d: %w", moduleID, err)
	}
	return n > 0, nil
}

type QuestionRepo struct {
	Repo[models.Question]
}

func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{newRepo[models.Question](db, "Question", "id")}
}

func (r *QuestionRepo) GetByQuizID(ctx context.Context, tx *gorm.DB, quizID uint) ([]models.Question, error) {
	return r.FindBy(ctx, tx, "quiz_id", quizID)
}

// DeleteExcept removes the quiz's questions not listed in keep.
func (r *QuestionRepo) DeleteExcept(ctx context.Context, tx *gorm.DB, quizID uint, keep []uint) (int64, error) {
	return r.deleteExcept(ctx, tx, "quiz_id", quizID, keep)
}

type AnswerOptionRepo struct {
	Repo[models.AnswerOption]
}

func NewAnswerOptionRepo(db *gorm.DB) *AnswerOptionRepo {
	return &AnswerOptionRepo{newRepo[models.AnswerOption](db, "AnswerOption", "id")}
}

func (r *AnswerOptionRepo) GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) ([]models.AnswerOption, error) {
	return r.FindBy(ctx, tx, "question_id", questionID)
}

type QuizSubmissionRepo struct {
	Repo[models.QuizSubmission]
}

func NewQuizSubmissionRepo(db *gorm.DB) *QuizSubmissionRepo {
	return &QuizSubmissionRepo{newRepo[models.QuizSubmission](db, "QuizSubmission", "id")}
}

func (r *QuizSubmissionRepo) GetByQuizID(ctx context.Context, tx *gorm.DB, quizID uint) ([]models.QuizSubmission, error) {
	return r.FindBy(ctx, tx, "quiz_id", quizID)
}

func (r *QuizSubmissionRepo) GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uint) ([]models.QuizSubmission, error) {
	return r.FindBy(ctx, tx, "student_id", studentID)
}
