package services

import (
	"context"
	"time"

	"github.com/s/elearning/internal/dto"
	"github.com/s/elearning/internal/logger"
	"github.com/s/elearning/internal/mapper"
	"github.com/s/elearning/internal/models"
	"github.com/s/elearning/internal/storage"
	"gorm.io/gorm"
)

type AssignmentService struct {
	st  *storage.Store
	log *logger.Logger
}

func NewAssignmentService(st *storage.Store, baseLog *logger.Logger) *AssignmentService {
	return &AssignmentService{st: st, log: baseLog.With("service", "AssignmentService")}
}

func (s *AssignmentService) GetAll(ctx context.Context) ([]dto.Assignment, error) {
	rows, err := s.st.Assignments.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return mapper.AssignmentsToDTO(rows), nil
}

func (s *AssignmentService) GetByID(ctx context.Context, id uint) (dto.Assignment, error) {
	row, err := s.st.Assignments.GetByID(ctx, nil, id)
	if err != nil {
		return dto.Assignment{}, err
	}
	return mapper.AssignmentToDTO(*row), nil
}

func (s *AssignmentService) GetByLessonID(ctx context.Context, lessonID uint) ([]dto.Assignment, error) {
	rows, err := s.st.Assignments.GetByLessonID(ctx, nil, lessonID)
	if err != nil {
		return nil, err
	}
	return mapper.AssignmentsToDTO(rows), nil
}

func (s *AssignmentService) Create(ctx context.Context, in dto.Assignment) (dto.Assignment, error) {
	lessonID, err := requireParent(in.LessonID, "lessonId")
	if err != nil {
		return dto.Assignment{}, err
	}
	row := mapper.AssignmentToModel(in)
	row.ID = 0
	err = withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Lessons.MustExist(ctx, tx, lessonID); err != nil {
			return err
		}
		return s.st.Assignments.Create(ctx, tx, &row)
	})
	if err != nil {
		return dto.Assignment{}, err
	}
	return mapper.AssignmentToDTO(row), nil
}

func (s *AssignmentService) Update(ctx context.Context, id uint, in dto.Assignment) (dto.Assignment, error) {
	var out models.Assignment
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		row, err := s.st.Assignments.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		row.Title = in.Title
		row.Description = in.Description
		row.DueDate = in.DueDate
		row.MaxScore = in.MaxScore
		if repoint(in.LessonID, row.LessonID) {
			if err := s.st.Lessons.MustExist(ctx, tx, *in.LessonID); err != nil {
				return err
			}
			row.LessonID = *in.LessonID
		}
		if err := s.st.Assignments.Save(ctx, tx, row); err != nil {
			return err
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.Assignment{}, err
	}
	return mapper.AssignmentToDTO(out), nil
}

func (s *AssignmentService) Delete(ctx context.Context, id uint) error {
	return s.st.Assignments.Delete(ctx, nil, id)
}

type SubmissionService struct {
	st  *storage.Store
	log *logger.Logger
	now func() time.Time
}

func NewSubmissionService(st *storage.Store, baseLog *logger.Logger) *SubmissionService {
	return &SubmissionService{
		st:  st,
		log: baseLog.With("service", "SubmissionService"),
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (s *SubmissionService) GetAll(ctx context.Context) ([]dto.Submission, error) {
	rows, err := s.st.Submissions.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return mapper.SubmissionsToDTO(rows), nil
}

func (s *SubmissionService) GetByID(ctx context.Context, id uint) (dto.Submission, error) {
	row, err := s.st.Submissions.GetByID(ctx, nil, id)
	if err != nil {
		return dto.Submission{}, err
	}
	return mapper.SubmissionToDTO(*row), nil
}

func (s *SubmissionService) GetByAssignmentID(ctx context.Context, assignmentID uint) ([]dto.Submission, error) {
	rows, err := s.st.Submissions.GetByAssignmentID(ctx, nil, assignmentID)
	if err != nil {
		return nil, err
	}
	return mapper.SubmissionsToDTO(rows), nil
}

func (s *SubmissionService) GetByStudentID(ctx context.Context, studentID uint) ([]dto.Submission, error) {
	rows, err := s.st.Submissions.GetByStudentID(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}
	return mapper.SubmissionsToDTO(rows), nil
}

// Create stamps submittedAt with the current time.
func (s *SubmissionService) Create(ctx context.Context, in dto.Submission) (dto.Submission, error) {
	assignmentID, err := requireParent(in.AssignmentID, "assignmentId")
	if err != nil {
		return dto.Submission{}, err
	}
	studentID, err := requireParent(in.StudentID, "studentId")
	if err != nil {
		return dto.Submission{}, err
	}
	row := mapper.SubmissionToModel(in)
	row.ID = 0
	row.SubmittedAt = s.now()
	err = withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Assignments.MustExist(ctx, tx, assignmentID); err != nil {
			return err
		}
		if err := s.st.Users.MustExist(ctx, tx, studentID); err != nil {
			return err
		}
		return s.st.Submissions.Create(ctx, tx, &row)
	})
	if err != nil {
		return dto.Submission{}, err
	}
	return mapper.SubmissionToDTO(row), nil
}

// Update overwrites content, score and feedback, and re-points the
// assignment or student when a different id is given.
func (s *SubmissionService) Update(ctx context.Context, id uint, in dto.Submission) (dto.Submission, error) {
	var out models.Submission
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		row, err := s.st.Submissions.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		row.Content = in.Content
		row.Score = in.Score
		row.Feedback = in.Feedback
		if repoint(in.AssignmentID, row.AssignmentID) {
			if err := s.st.Assignments.MustExist(ctx, tx, *in.AssignmentID); err != nil {
				return err
			}
			row.AssignmentID = *in.AssignmentID
		}
		if repoint(in.StudentID, row.StudentID) {
			if err := s.st.Users.MustExist(ctx, tx, *in.StudentID); err != nil {
				return err
			}
			row.StudentID = *in.StudentID
		}
		if err := s.st.Submissions.Save(ctx, tx, row); err != nil {
			return err
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.Submission{}, err
	}
	return mapper.SubmissionToDTO(out), nil
}

// Grade sets score and feedback only. The score is not checked against the
// assignment's maxScore.
func (s *SubmissionService) Grade(ctx context.Context, id uint, score int, feedback *string) (dto.Submission, error) {
	var out models.Submission
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Submissions.MustExist(ctx, tx, id); err != nil {
			return err
		}
		if err := s.st.Submissions.Grade(ctx, tx, id, score, feedback); err != nil {
			return err
		}
		row, err := s.st.Submissions.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.Submission{}, err
	}
	s.log.Debug("submission graded", "submissionID", id, "score", score)
	return mapper.SubmissionToDTO(out), nil
}

func (s *SubmissionService) Delete(ctx context.Context, id uint) error {
	return s.st.Submissions.Delete(ctx, nil, id)
}
