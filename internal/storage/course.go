package storage

import (
	"context"
	"fmt"

	"github.com/s/elearning/internal/apperr"
	"github.com/s/elearning/internal/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	Repo[models.Category]
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{newRepo[models.Category](db, "Category", "id")}
}

type CourseRepo struct {
	Repo[models.Course]
}

func NewCourseRepo(db *gorm.DB) *CourseRepo {
	return &CourseRepo{newRepo[models.Course](db, "Course", "id")}
}

func (r *CourseRepo) GetByCategoryID(ctx context.Context, tx *gorm.DB, categoryID uint) ([]models.Course, error) {
	return r.FindBy(ctx, tx, "category_id", categoryID)
}

// GetStructure loads a course with its modules and their lessons.
func (r *CourseRepo) GetStructure(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	res := r.getDB(ctx, tx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("order_index, id") }).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("order_index, id") }).
		Limit(1).
		Find(&course, id)
	if res.Error != nil {
		return nil, fmt.Errorf("load course structure %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("Course", id)
	}
	return &course, nil
}

// GetByEnrolledUser lists the courses a user is enrolled in.
func (r *CourseRepo) GetByEnrolledUser(ctx context.Context, tx *gorm.DB, userID uint) ([]models.Course, error) {
	out := []models.Course{}
	err := r.getDB(ctx, tx).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID).
		Order("courses.id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list courses for user %d: %w", userID, err)
	}
	return out, nil
}

func (r *CourseRepo) AttachTag(ctx context.Context, tx *gorm.DB, courseID uint, tag *models.Tag) error {
	course := models.Course{ID: courseID}
	if err := r.getDB(ctx, tx).Model(&course).Association("Tags").Append(tag); err != nil {
		return fmt.Errorf("attach tag %d to course %d: %w", tag.ID, courseID, err)
	}
	return nil
}

func (r *CourseRepo) DetachTag(ctx context.Context, tx *gorm.DB, courseID uint, tag *models.Tag) error {
	course := models.Course{ID: courseID}
	if err := r.getDB(ctx, tx).Model(&course).Association("Tags").Delete(tag); err != nil {
		return fmt.Errorf("detach tag %d from course %d: %w", tag.ID, courseID, err)
	}
	return nil
}

// ClearTags drops the course_tags rows of a course; the tags themselves stay.
func (r *CourseRepo) ClearTags(ctx context.Context, tx *gorm.DB, courseID uint) error {
	course := models.Course{ID: courseID}
	if err := r.getDB(ctx, tx).Model(&course).Association("Tags").Clear(); err != nil {
		return fmt.Errorf("clear tags of course %d: %w", courseID, err)
	}
	return nil
}

type ModuleRepo struct {
	Repo[models.Module]
}

func NewModuleRepo(db *gorm.DB) *ModuleRepo {
	return &ModuleRepo{newRepo[models.Module](db, "Module", "order_index, id")}
}

func (r *ModuleRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uint) ([]models.Module, error) {
	return r.FindBy(ctx, tx, "course_id", courseID)
}

// DeleteExcept removes the course's modules not listed in keep.
func (r *ModuleRepo) DeleteExcept(ctx context.Context, tx *gorm.DB, courseID uint, keep []uint) (int64, error) {
	return r.deleteExcept(ctx, tx, "course_id", courseID, keep)
}

type LessonRepo struct {
	Repo[models.Lesson]
}

func NewLessonRepo(db *gorm.DB) *LessonRepo {
	return &LessonRepo{newRepo[models.Lesson](db, "Lesson", "order_index, id")}
}

func (r *LessonRepo) GetByModuleID(ctx context.Context, tx *gorm.DB, moduleID uint) ([]models.Lesson, error) {
	return r.FindBy(ctx, tx, "module_id", moduleID)
}
