// Package services holds one service per aggregate. Services resolve parent
// references, wire foreign keys and run every write in a single transaction.
package services

import (
	"context"
	"fmt"

	"github.com/s/elearning/internal/apperr"
	"github.com/s/elearning/internal/cache"
	"github.com/s/elearning/internal/logger"
	"github.com/s/elearning/internal/storage"
	"gorm.io/gorm"
)

type Services struct {
	Categories      *CategoryService
	Courses         *CourseService
	Modules         *ModuleService
	Lessons         *LessonService
	Assignments     *AssignmentService
	Submissions     *SubmissionService
	Quizzes         *QuizService
	Questions       *QuestionService
	AnswerOptions   *AnswerOptionService
	QuizSubmissions *QuizSubmissionService
	Users           *UserService
	Enrollments     *EnrollmentService
	Reviews         *CourseReviewService
	Tags            *TagService
}

// New wires every service over db. A nil cache disables course caching.
func New(db *gorm.DB, c cache.Cache, baseLog *logger.Logger) *Services {
	if c == nil {
		c = cache.Noop{}
	}
	st := storage.New(db)
	return &Services{
		Categories:      NewCategoryService(st, c, baseLog),
		Courses:         NewCourseService(st, c, baseLog),
		Modules:         NewModuleService(st, baseLog),
		Lessons:         NewLessonService(st, baseLog),
		Assignments:     NewAssignmentService(st, baseLog),
		Submissions:     NewSubmissionService(st, baseLog),
		Quizzes:         NewQuizService(st, baseLog),
		Questions:       NewQuestionService(st, baseLog),
		AnswerOptions:   NewAnswerOptionService(st, baseLog),
		QuizSubmissions: NewQuizSubmissionService(st, baseLog),
		Users:           NewUserService(st, c, baseLog),
		Enrollments:     NewEnrollmentService(st, baseLog),
		Reviews:         NewCourseReviewService(st, baseLog),
		Tags:            NewTagService(st, baseLog),
	}
}

func withTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// requireParent turns a missing parent id into a validation error.
func requireParent(id *uint, field string) (uint, error) {
	if id == nil || *id == 0 {
		return 0, apperr.Validation(fmt.Sprintf("%s is required", field), nil)
	}
	return *id, nil
}

// repoint reports whether the incoming parent id asks to move the row.
func repoint(incoming *uint, current uint) bool {
	return incoming != nil && *incoming != 0 && *incoming != current
}

func nonZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

// asConflict maps a unique index violation to a conflict error and passes any
// other error through.
func asConflict(err error, code, message string) error {
	if storage.IsUniqueViolation(err) {
		return apperr.Conflict(code, message)
	}
	return err
}
