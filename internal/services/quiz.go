package services

import (
	"context"
	"fmt"
	"time"

	"github.com/s/elearning/internal/apperr"
	"github.com/s/elearning/internal/dto"
	"github.com/s/elearning/internal/logger"
	"github.com/s/elearning/internal/mapper"
	"github.com/s/elearning/internal/models"
	"github.com/s/elearning/internal/storage"
	"gorm.io/gorm"
)

const codeModuleHasQuiz = "module_has_quiz"

type QuizService struct {
	st  *storage.Store
	log *logger.Logger
}

func NewQuizService(st *storage.Store, baseLog *logger.Logger) *QuizService {
	return &QuizService{st: st, log: baseLog.With("service", "QuizService")}
}

func (s *QuizService) GetAll(ctx context.Context) ([]dto.Quiz, error) {
	rows, err := s.st.Quizzes.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return mapper.QuizzesToDTO(rows), nil
}

func (s *QuizService) GetByID(ctx context.Context, id uint) (dto.Quiz, error) {
	row, err := s.st.Quizzes.GetByID(ctx, nil, id)
	if err != nil {
		return dto.Quiz{}, err
	}
	return mapper.QuizToDTO(*row), nil
}

func (s *QuizService) GetByModuleID(ctx context.Context, moduleID uint) (dto.Quiz, error) {
	row, err := s.st.Quizzes.GetByModuleID(ctx, nil, moduleID)
	if err != nil {
		return dto.Quiz{}, err
	}
	return mapper.QuizToDTO(*row), nil
}

func (s *QuizService) Create(ctx context.Context, in dto.Quiz) (dto.Quiz, error) {
	row := mapper.QuizToModel(in)
	row.ID = 0
	row.ModuleID = nonZero(row.ModuleID)
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if row.ModuleID != nil {
			if err := s.checkModule(ctx, tx, *row.ModuleID, 0); err != nil {
				return err
			}
		}
		return s.st.Quizzes.Create(ctx, tx, &row)
	})
	if err != nil {
		return dto.Quiz{}, s.conflict(err, row.ModuleID)
	}
	return mapper.QuizToDTO(row), nil
}

func (s *QuizService) Update(ctx context.Context, id uint, in dto.Quiz) (dto.Quiz, error) {
	var out models.Quiz
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		row, err := s.st.Quizzes.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		row.Title = in.Title
		row.TimeLimit = in.TimeLimit
		if in.ModuleID != nil && *in.ModuleID != 0 && (row.ModuleID == nil || *row.ModuleID != *in.ModuleID) {
			if err := s.checkModule(ctx, tx, *in.ModuleID, id); err != nil {
				return err
			}
			row.ModuleID = in.ModuleID
		}
		if err := s.st.Quizzes.Save(ctx, tx, row); err != nil {
			return err
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.Quiz{}, s.conflict(err, in.ModuleID)
	}
	return mapper.QuizToDTO(out), nil
}

func (s *QuizService) Delete(ctx context.Context, id uint) error {
	return s.st.Quizzes.Delete(ctx, nil, id)
}

// RetainQuestions deletes the quiz's questions whose ids are not in keep,
// together with their answer options.
func (s *QuizService) RetainQuestions(ctx context.Context, quizID uint, keep []uint) ([]dto.Question, error) {
	var rows []models.Question
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Quizzes.MustExist(ctx, tx, quizID); err != nil {
			return err
		}
		removed, err := s.st.Questions.DeleteExcept(ctx, tx, quizID, keep)
		if err != nil {
			return err
		}
		if removed > 0 {
			s.log.Info("orphan questions removed", "quizID", quizID, "count", removed)
		}
		rows, err = s.st.Questions.GetByQuizID(ctx, tx, quizID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mapper.QuestionsToDTO(rows), nil
}

func (s *QuizService) checkModule(ctx context.Context, tx *gorm.DB, moduleID, quizID uint) error {
	if err := s.st.Modules.MustExist(ctx, tx, moduleID); err != nil {
		return err
	}
	taken, err := s.st.Quizzes.ModuleTaken(ctx, tx, moduleID, quizID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict(codeModuleHasQuiz, fmt.Sprintf("module %d already has a quiz", moduleID))
	}
	return nil
}

func (s *QuizService) conflict(err error, moduleID *uint) error {
	if moduleID == nil {
		return err
	}
	return asConflict(err, codeModuleHasQuiz, fmt.Sprintf("module %d already has a quiz", *moduleID))
}

type QuestionService struct {
	st  *storage.Store
	log *logger.Logger
}

func NewQuestionService(st *storage.Store, baseLog *logger.Logger) *QuestionService {
	return &QuestionService{st: st, log: baseLog.With("service", "QuestionService")}
}

func (s *QuestionService) GetAll(ctx context.Context) ([]dto.Question, error) {
	rows, err := s.st.Questions.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return mapper.QuestionsToDTO(rows), nil
}

func (s *QuestionService) GetByID(ctx context.Context, id uint) (dto.Question, error) {
	row, err := s.st.Questions.GetByID(ctx, nil, id)
	if err != nil {
		return dto.Question{}, err
	}
	return mapper.QuestionToDTO(*row), nil
}

func (s *QuestionService) GetByQuizID(ctx context.Context, quizID uint) ([]dto.Question, error) {
	rows, err := s.st.Questions.GetByQuizID(ctx, nil, quizID)
	if err != nil {
		return nil, err
	}
	return mapper.QuestionsToDTO(rows), nil
}

func (s *QuestionService) Create(ctx context.Context, in dto.Question) (dto.Question, error) {
	quizID, err := requireParent(in.QuizID, "quizId")
	if err != nil {
		return dto.Question{}, err
	}
	row := mapper.QuestionToModel(in)
	row.ID = 0
	if !row.Type.Valid() {
		return dto.Question{}, apperr.Validation(fmt.Sprintf("unknown question type %q", in.Type), nil)
	}
	err = withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Quizzes.MustExist(ctx, tx, quizID); err != nil {
			return err
		}
		return s.st.Questions.Create(ctx, tx, &row)
	})
	if err != nil {
		return dto.Question{}, err
	}
	return mapper.QuestionToDTO(row), nil
}

func (s *QuestionService) Update(ctx context.Context, id uint, in dto.Question) (dto.Question, error) {
	qType := models.QuestionType(in.Type)
	if !qType.Valid() {
		return dto.Question{}, apperr.Validation(fmt.Sprintf("unknown question type %q", in.Type), nil)
	}
	var out models.Question
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		row, err := s.st.Questions.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		row.Text = in.Text
		row.Type = qType
		if repoint(in.QuizID, row.QuizID) {
			if err := s.st.Quizzes.MustExist(ctx, tx, *in.QuizID); err != nil {
				return err
			}
			row.QuizID = *in.QuizID
		}
		if err := s.st.Questions.Save(ctx, tx, row); err != nil {
			return err
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.Question{}, err
	}
	return mapper.QuestionToDTO(out), nil
}

func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	return s.st.Questions.Delete(ctx, nil, id)
}

type AnswerOptionService struct {
	st  *storage.Store
	log *logger.Logger
}

func NewAnswerOptionService(st *storage.Store, baseLog *logger.Logger) *AnswerOptionService {
	return &AnswerOptionService{st: st, log: baseLog.With("service", "AnswerOptionService")}
}

func (s *AnswerOptionService) GetAll(ctx context.Context) ([]dto.AnswerOption, error) {
	rows, err := s.st.AnswerOptions.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return mapper.AnswerOptionsToDTO(rows), nil
}

func (s *AnswerOptionService) GetByID(ctx context.Context, id uint) (dto.AnswerOption, error) {
	row, err := s.st.AnswerOptions.GetByID(ctx, nil, id)
	if err != nil {
		return dto.AnswerOption{}, err
	}
	return mapper.AnswerOptionToDTO(*row), nil
}

func (s *AnswerOptionService) GetByQuestionID(ctx context.Context, questionID uint) ([]dto.AnswerOption, error) {
	rows, err := s.st.AnswerOptions.GetByQuestionID(ctx, nil, questionID)
	if err != nil {
		return nil, err
	}
	return mapper.AnswerOptionsToDTO(rows), nil
}

func (s *AnswerOptionService) Create(ctx context.Context, in dto.AnswerOption) (dto.AnswerOption, error) {
	questionID, err := requireParent(in.QuestionID, "questionId")
	if err != nil {
		return dto.AnswerOption{}, err
	}
	row := mapper.AnswerOptionToModel(in)
	row.ID = 0
	err = withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Questions.MustExist(ctx, tx, questionID); err != nil {
			return err
		}
		return s.st.AnswerOptions.Create(ctx, tx, &row)
	})
	if err != nil {
		return dto.AnswerOption{}, err
	}
	return mapper.AnswerOptionToDTO(row), nil
}

func (s *AnswerOptionService) Update(ctx context.Context, id uint, in dto.AnswerOption) (dto.AnswerOption, error) {
	var out models.AnswerOption
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		row, err := s.st.AnswerOptions.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		row.Text = in.Text
		row.IsCorrect = in.IsCorrect
		if repoint(in.QuestionID, row.QuestionID) {
			if err := s.st.Questions.MustExist(ctx, tx, *in.QuestionID); err != nil {
				return err
			}
			row.QuestionID = *in.QuestionID
		}
		if err := s.st.AnswerOptions.Save(ctx, tx, row); err != nil {
			return err
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.AnswerOption{}, err
	}
	return mapper.AnswerOptionToDTO(out), nil
}

func (s *AnswerOptionService) Delete(ctx context.Context, id uint) error {
	return s.st.AnswerOptions.Delete(ctx, nil, id)
}

type QuizSubmissionService struct {
	st  *storage.Store
	log *logger.Logger
	now func() time.Time
}

func NewQuizSubmissionService(st *storage.Store, baseLog *logger.Logger) *QuizSubmissionService {
	return &QuizSubmissionService{
		st:  st,
		log: baseLog.With("service", "QuizSubmissionService"),
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (s *QuizSubmissionService) GetAll(ctx context.Context) ([]dto.QuizSubmission, error) {
	rows, err := s.st.QuizSubmissions.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return mapper.QuizSubmissionsToDTO(rows), nil
}

func (s *QuizSubmissionService) GetByID(ctx context.Context, id uint) (dto.QuizSubmission, error) {
	row, err := s.st.QuizSubmissions.GetByID(ctx, nil, id)
	if err != nil {
		return dto.QuizSubmission{}, err
	}
	return mapper.QuizSubmissionToDTO(*row), nil
}

func (s *QuizSubmissionService) GetByQuizID(ctx context.Context, quizID uint) ([]dto.QuizSubmission, error) {
	rows, err := s.st.QuizSubmissions.GetByQuizID(ctx, nil, quizID)
	if err != nil {
		return nil, err
	}
	return mapper.QuizSubmissionsToDTO(rows), nil
}

func (s *QuizSubmissionService) GetByStudentID(ctx context.Context, studentID uint) ([]dto.QuizSubmission, error) {
	rows, err := s.st.QuizSubmissions.GetByStudentID(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}
	return mapper.QuizSubmissionsToDTO(rows), nil
}

// Create defaults takenAt to now when the client leaves it out.
func (s *QuizSubmissionService) Create(ctx context.Context, in dto.QuizSubmission) (dto.QuizSubmission, error) {
	quizID, err := requireParent(in.QuizID, "quizId")
	if err != nil {
		return dto.QuizSubmission{}, err
	}
	studentID, err := requireParent(in.StudentID, "studentId")
	if err != nil {
		return dto.QuizSubmission{}, err
	}
	row := mapper.QuizSubmissionToModel(in)
	row.ID = 0
	if row.TakenAt.IsZero() {
		row.TakenAt = s.now()
	}
	err = withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Quizzes.MustExist(ctx, tx, quizID); err != nil {
			return err
		}
		if err := s.st.Users.MustExist(ctx, tx, studentID); err != nil {
			return err
		}
		return s.st.QuizSubmissions.Create(ctx, tx, &row)
	})
	if err != nil {
		return dto.QuizSubmission{}, err
	}
	return mapper.QuizSubmissionToDTO(row), nil
}

func (s *QuizSubmissionService) Update(ctx context.Context, id uint, in dto.QuizSubmission) (dto.QuizSubmission, error) {
	var out models.QuizSubmission
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		row, err := s.st.QuizSubmissions.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		row.Score = in.Score
		if !in.TakenAt.IsZero() {
			row.TakenAt = in.TakenAt
		}
		if repoint(in.QuizID, row.QuizID) {
			if err := s.st.Quizzes.MustExist(ctx, tx, *in.QuizID); err != nil {
				return err
			}
			row.QuizID = *in.QuizID
		}
		if repoint(in.StudentID, row.StudentID) {
			if err := s.st.Users.MustExist(ctx, tx, *in.StudentID); err != nil {
				return err
			}
			row.StudentID = *in.StudentID
		}
		if err := s.st.QuizSubmissions.Save(ctx, tx, row); err != nil {
			return err
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.QuizSubmission{}, err
	}
	return mapper.QuizSubmissionToDTO(out), nil
}

func (s *QuizSubmissionService) Delete(ctx context.Context, id uint) error {
	return s.st.QuizSubmissions.Delete(ctx, nil, id)
}
