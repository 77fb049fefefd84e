package services

import (
	"context"

	"github.com/s/elearning/internal/dto"
	"github.com/s/elearning/internal/logger"
	"github.com/s/elearning/internal/mapper"
	"github.com/s/elearning/internal/storage"
	"gorm.io/gorm"
)

type CourseReviewService struct {
	st  *storage.Store
	log *logger.Logger
}

func NewCourseReviewService(st *storage.Store, baseLog *logger.Logger) *CourseReviewService {
	return &CourseReviewService{st: st, log: baseLog.With("service", "CourseReviewService")}
}

// Create stores a review; the rating is not range-checked.
func (s *CourseReviewService) Create(ctx context.Context, in dto.CourseReview) (dto.CourseReview, error) {
	courseID, err := requireParent(in.CourseID, "courseId")
	if err != nil {
		return dto.CourseReview{}, err
	}
	userID, err := requireParent(in.UserID, "userId")
	if err != nil {
		return dto.CourseReview{}, err
	}
	row := mapper.CourseReviewToModel(in)
	row.ID = 0
	err = withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Courses.MustExist(ctx, tx, courseID); err != nil {
			return err
		}
		if err := s.st.Users.MustExist(ctx, tx, userID); err != nil {
			return err
		}
		return s.st.Reviews.Create(ctx, tx, &row)
	})
	if err != nil {
		return dto.CourseReview{}, err
	}
	return mapper.CourseReviewToDTO(row), nil
}

func (s *CourseReviewService) GetByCourseID(ctx context.Context, courseID uint) ([]dto.CourseReview, error) {
	rows, err := s.st.Reviews.GetByCourseID(ctx, nil, courseID)
	if err != nil {
		return nil, err
	}
	return mapper.CourseReviewsToDTO(rows), nil
}

func (s *CourseReviewService) GetByUserID(ctx context.Context, userID uint) ([]dto.CourseReview, error) {
	rows, err := s.st.Reviews.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	return mapper.CourseReviewsToDTO(rows), nil
}
