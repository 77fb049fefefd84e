package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/s/elearning/internal/apperr"
	"github.com/s/elearning/internal/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	Repo[models.User]
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{newRepo[models.User](db, "User", "id")}
}

func (r *UserRepo) GetAllWithProfile(ctx context.Context, tx *gorm.DB) ([]models.User, error) {
	out := []models.User{}
	if err := r.getDB(ctx, tx).Preload("Profile").Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (r *UserRepo) GetWithProfile(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	var u models.User
	err := r.getDB(ctx, tx).Preload("Profile").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

// GetByEnrolledCourse lists the users enrolled in a course.
func (r *UserRepo) GetByEnrolledCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]models.User, error) {
	out := []models.User{}
	err := r.getDB(ctx, tx).
		Preload("Profile").
		Joins("JOIN enrollments ON enrollments.user_id = users.id").
		Where("enrollments.course_id = ?", courseID).
		Order("users.id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list users for course %d: %w", courseID, err)
	}
	return out, nil
}

// EmailTaken reports whether another user than exceptID owns email.
func (r *UserRepo) EmailTaken(ctx context.Context, tx *gorm.DB, email string, exceptID uint) (bool, error) {
	var n int64
	err := r.getDB(ctx, tx).Model(&models.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return n > 0, nil
}

// SaveProfile creates the user's profile or overwrites the existing one.
func (r *UserRepo) SaveProfile(ctx context.Context, tx *gorm.DB, userID uint, p *models.Profile) error {
	db := r.getDB(ctx, tx)
	var existing models.Profile
	err := db.Where("user_id = ?", userID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p.ID = 0
	case err != nil:
		return fmt.Errorf("load profile of user %d: %w", userID, err)
	default:
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	p.UserID = userID
	if err := db.Save(p).Error; err != nil {
		return fmt.Errorf("save profile of user %d: %w", userID, err)
	}
	return nil
}

type EnrollmentRepo struct {
	Repo[models.Enrollment]
}

func NewEnrollmentRepo(db *gorm.DB) *EnrollmentRepo {
	return &EnrollmentRepo{newRepo[models.Enrollment](db, "Enrollment", "id")}
}

func (r *EnrollmentRepo) ExistsFor(ctx context.Context, tx *gorm.DB, userID, courseID uint) (bool, error) {
	var n int64
	err := r.getDB(ctx, tx).Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return n > 0, nil
}

func (r *EnrollmentRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]models.Enrollment, error) {
	return r.FindBy(ctx, tx, "user_id", userID)
}

type CourseReviewRepo struct {
	Repo[models.CourseReview]
}

func NewCourseReviewRepo(db *gorm.DB) *CourseReviewRepo {
	return &CourseReviewRepo{newRepo[models.CourseReview](db, "CourseReview", "id")}
}

func (r *CourseReviewRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uint) ([]models.CourseReview, error) {
	return r.FindBy(ctx, tx, "course_id", courseID)
}

func (r *CourseReviewRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]models.CourseReview, error) {
	return r.FindBy(ctx, tx, "user_id", userID)
}
