package services

import (
	"context"

	"github.com/s/elearning/internal/dto"
	"github.com/s/elearning/internal/logger"
	"github.com/s/elearning/internal/mapper"
	"github.com/s/elearning/internal/models"
	"github.com/s/elearning/internal/storage"
	"gorm.io/gorm"
)

type ModuleService struct {
	st  *storage.Store
	log *logger.Logger
}

func NewModuleService(st *storage.Store, baseLog *logger.Logger) *ModuleService {
	return &ModuleService{st: st, log: baseLog.With("service", "ModuleService")}
}

func (s *ModuleService) GetAll(ctx context.Context) ([]dto.Module, error) {
	rows, err := s.st.Modules.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return mapper.ModulesToDTO(rows), nil
}

func (s *ModuleService) GetByID(ctx context.Context, id uint) (dto.Module, error) {
	row, err := s.st.Modules.GetByID(ctx, nil, id)
	if err != nil {
		return dto.Module{}, err
	}
	return mapper.ModuleToDTO(*row), nil
}

func (s *ModuleService) GetByCourseID(ctx context.Context, courseID uint) ([]dto.Module, error) {
	rows, err := s.st.Modules.GetByCourseID(ctx, nil, courseID)
	if err != nil {
		return nil, err
	}
	return mapper.ModulesToDTO(rows), nil
}

func (s *ModuleService) Create(ctx context.Context, in dto.Module) (dto.Module, error) {
	courseID, err := requireParent(in.CourseID, "courseId")
	if err != nil {
		return dto.Module{}, err
	}
	row := mapper.ModuleToModel(in)
	row.ID = 0
	err = withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Courses.MustExist(ctx, tx, courseID); err != nil {
			return err
		}
		return s.st.Modules.Create(ctx, tx, &row)
	})
	if err != nil {
		return dto.Module{}, err
	}
	return mapper.ModuleToDTO(row), nil
}

func (s *ModuleService) Update(ctx context.Context, id uint, in dto.Module) (dto.Module, error) {
	var out models.Module
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		row, err := s.st.Modules.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		row.Title = in.Title
		row.OrderIndex = in.OrderIndex
		row.Description = in.Description
		if repoint(in.CourseID, row.CourseID) {
			if err := s.st.Courses.MustExist(ctx, tx, *in.CourseID); err != nil {
				return err
			}
			row.CourseID = *in.CourseID
		}
		if err := s.st.Modules.Save(ctx, tx, row); err != nil {
			return err
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.Module{}, err
	}
	return mapper.ModuleToDTO(out), nil
}

func (s *ModuleService) Delete(ctx context.Context, id uint) error {
	return s.st.Modules.Delete(ctx, nil, id)
}

type LessonService struct {
	st  *storage.Store
	log *logger.Logger
}

func NewLessonService(st *storage.Store, baseLog *logger.Logger) *LessonService {
	return &LessonService{st: st, log: baseLog.With("service", "LessonService")}
}

func (s *LessonService) GetAll(ctx context.Context) ([]dto.Lesson, error) {
	rows, err := s.st.Lessons.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return mapper.LessonsToDTO(rows), nil
}

func (s *LessonService) GetByID(ctx context.Context, id uint) (dto.Lesson, error) {
	row, err := s.st.Lessons.GetByID(ctx, nil, id)
	if err != nil {
		return dto.Lesson{}, err
	}
	return mapper.LessonToDTO(*row), nil
}

func (s *LessonService) GetByModuleID(ctx context.Context, moduleID uint) ([]dto.Lesson, error) {
	rows, err := s.st.Lessons.GetByModuleID(ctx, nil, moduleID)
	if err != nil {
		return nil, err
	}
	return mapper.LessonsToDTO(rows), nil
}

func (s *LessonService) Create(ctx context.Context, in dto.Lesson) (dto.Lesson, error) {
	moduleID, err := requireParent(in.ModuleID, "moduleId")
	if err != nil {
		return dto.Lesson{}, err
	}
	row := mapper.LessonToModel(in)
	row.ID = 0
	err = withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Modules.MustExist(ctx, tx, moduleID); err != nil {
			return err
		}
		return s.st.Lessons.Create(ctx, tx, &row)
	})
	if err != nil {
		return dto.Lesson{}, err
	}
	return mapper.LessonToDTO(row), nil
}

func (s *LessonService) Update(ctx context.Context, id uint, in dto.Lesson) (dto.Lesson, error) {
	var out models.Lesson
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		row, err := s.st.Lessons.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		row.Title = in.Title
		row.Content = in.Content
		row.VideoURL = in.VideoURL
		row.OrderIndex = in.OrderIndex
		if repoint(in.ModuleID, row.ModuleID) {
			if err := s.st.Modules.MustExist(ctx, tx, *in.ModuleID); err != nil {
				return err
			}
			row.ModuleID = *in.ModuleID
		}
		if err := s.st.Lessons.Save(ctx, tx, row); err != nil {
			return err
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.Lesson{}, err
	}
	return mapper.LessonToDTO(out), nil
}

func (s *LessonService) Delete(ctx context.Context, id uint) error {
	return s.st.Lessons.Delete(ctx, nil, id)
}
