package services

import (
	"context"
	"fmt"

	"github.com/s/elearning/internal/apperr"
	"github.com/s/elearning/internal/dto"
	"github.com/s/elearning/internal/logger"
	"github.com/s/elearning/internal/mapper"
	"github.com/s/elearning/internal/models"
	"github.com/s/elearning/internal/storage"
	"gorm.io/gorm"
)

const codeDuplicateEnrollment = "duplicate_enrollment"

type EnrollmentService struct {
	st  *storage.Store
	log *logger.Logger
}

func NewEnrollmentService(st *storage.Store, baseLog *logger.Logger) *EnrollmentService {
	return &EnrollmentService{st: st, log: baseLog.With("service", "EnrollmentService")}
}

// Create enrolls the user in the course as of today with status Active.
// Enrolling twice in the same course is a conflict.
func (s *EnrollmentService) Create(ctx context.Context, userID, courseID uint) (dto.Enrollment, error) {
	row := models.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrollDate: mapper.Today(),
		Status:     models.EnrollActive,
	}
	dup := apperr.Conflict(codeDuplicateEnrollment,
		fmt.Sprintf("user %d is already enrolled in course %d", userID, courseID))

	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Users.MustExist(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.st.Courses.MustExist(ctx, tx, courseID); err != nil {
			return err
		}
		exists, err := s.st.Enrollments.ExistsFor(ctx, tx, userID, courseID)
		if err != nil {
			return err
		}
		if exists {
			return dup
		}
		return s.st.Enrollments.Create(ctx, tx, &row)
	})
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return dto.Enrollment{}, dup
		}
		if apperr.IsConflict(err) {
			s.log.Warn("duplicate enrollment", "userID", userID, "courseID", courseID)
		}
		return dto.Enrollment{}, err
	}
	return mapper.EnrollmentToDTO(row), nil
}

func (s *EnrollmentService) GetByUserID(ctx context.Context, userID uint) ([]dto.Enrollment, error) {
	rows, err := s.st.Enrollments.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	return mapper.EnrollmentsToDTO(rows), nil
}
