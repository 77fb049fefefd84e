package services

import (
	"context"

	"github.com/s/elearning/internal/cache"
	"github.com/s/elearning/internal/dto"
	"github.com/s/elearning/internal/logger"
	"github.com/s/elearning/internal/mapper"
	"github.com/s/elearning/internal/models"
	"github.com/s/elearning/internal/storage"
	"gorm.io/gorm"
)

type CourseService struct {
	st    *storage.Store
	cache cache.Cache
	log   *logger.Logger
}

func NewCourseService(st *storage.Store, c cache.Cache, baseLog *logger.Logger) *CourseService {
	return &CourseService{st: st, cache: c, log: baseLog.With("service", "CourseService")}
}

func (s *CourseService) GetAll(ctx context.Context) ([]dto.Course, error) {
	return s.GetList(ctx, nil)
}

// GetList lists all courses, or only those of a category when categoryID is set.
func (s *CourseService) GetList(ctx context.Context, categoryID *uint) ([]dto.Course, error) {
	v, cacheable := cache.CourseVersion(ctx, s.cache)
	key := cache.CourseListKey(v, categoryID)
	var cached []dto.Course
	if cacheable && s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	var rows []models.Course
	var err error
	if categoryID == nil {
		rows, err = s.st.Courses.GetAll(ctx, nil)
	} else {
		rows, err = s.st.Courses.GetByCategoryID(ctx, nil, *categoryID)
	}
	if err != nil {
		return nil, err
	}
	out := mapper.CoursesToDTO(rows)
	if cacheable {
		s.cache.Set(ctx, key, out)
	}
	return out, nil
}

func (s *CourseService) GetByID(ctx context.Context, id uint) (dto.Course, error) {
	v, cacheable := cache.CourseVersion(ctx, s.cache)
	key := cache.CourseDetailKey(v, id)
	var cached dto.Course
	if cacheable && s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	row, err := s.st.Courses.GetByID(ctx, nil, id)
	if err != nil {
		return dto.Course{}, err
	}
	out := mapper.CourseToDTO(*row)
	if cacheable {
		s.cache.Set(ctx, key, out)
	}
	return out, nil
}

// GetStructure returns the course with its modules and lessons in order.
func (s *CourseService) GetStructure(ctx context.Context, id uint) (dto.CourseStructure, error) {
	row, err := s.st.Courses.GetStructure(ctx, nil, id)
	if err != nil {
		return dto.CourseStructure{}, err
	}
	return mapper.CourseStructureToDTO(*row), nil
}

func (s *CourseService) Create(ctx context.Context, in dto.Course) (dto.Course, error) {
	row := mapper.CourseToModel(in)
	row.ID = 0
	row.CategoryID = nonZero(row.CategoryID)
	row.TeacherID = nonZero(row.TeacherID)
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.checkParents(ctx, tx, row.CategoryID, row.TeacherID); err != nil {
			return err
		}
		return s.st.Courses.Create(ctx, tx, &row)
	})
	if err != nil {
		return dto.Course{}, err
	}
	cache.InvalidateCourses(ctx, s.cache)
	s.log.Debug("course created", "courseID", row.ID)
	return mapper.CourseToDTO(row), nil
}

func (s *CourseService) Update(ctx context.Context, id uint, in dto.Course) (dto.Course, error) {
	var out models.Course
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		row, err := s.st.Courses.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		row.Title = in.Title
		row.Description = in.Description
		row.Duration = in.Duration

		var category, teacher *uint
		if id := nonZero(in.CategoryID); id != nil && (row.CategoryID == nil || *row.CategoryID != *id) {
			category = id
		}
		if id := nonZero(in.TeacherID); id != nil && (row.TeacherID == nil || *row.TeacherID != *id) {
			teacher = id
		}
		if err := s.checkParents(ctx, tx, category, teacher); err != nil {
			return err
		}
		if category != nil {
			row.CategoryID = category
		}
		if teacher != nil {
			row.TeacherID = teacher
		}
		if err := s.st.Courses.Save(ctx, tx, row); err != nil {
			return err
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.Course{}, err
	}
	cache.InvalidateCourses(ctx, s.cache)
	return mapper.CourseToDTO(out), nil
}

// Delete removes the course with its modules, enrollments and reviews. Tag
// links are dropped; tags remain.
func (s *CourseService) Delete(ctx context.Context, id uint) error {
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Courses.MustExist(ctx, tx, id); err != nil {
			return err
		}
		if err := s.st.Courses.ClearTags(ctx, tx, id); err != nil {
			return err
		}
		return s.st.Courses.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	cache.InvalidateCourses(ctx, s.cache)
	s.log.Info("course deleted", "courseID", id)
	return nil
}

// RetainModules deletes the course's modules whose ids are not in keep,
// together with everything they own.
func (s *CourseService) RetainModules(ctx context.Context, courseID uint, keep []uint) ([]dto.Module, error) {
	var rows []models.Module
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Courses.MustExist(ctx, tx, courseID); err != nil {
			return err
		}
		removed, err := s.st.Modules.DeleteExcept(ctx, tx, courseID, keep)
		if err != nil {
			return err
		}
		if removed > 0 {
			s.log.Info("orphan modules removed", "courseID", courseID, "count", removed)
		}
		rows, err = s.st.Modules.GetByCourseID(ctx, tx, courseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mapper.ModulesToDTO(rows), nil
}

// GetUsersForCourse lists the students enrolled in the course.
func (s *CourseService) GetUsersForCourse(ctx context.Context, courseID uint) ([]dto.User, error) {
	rows, err := s.st.Users.GetByEnrolledCourse(ctx, nil, courseID)
	if err != nil {
		return nil, err
	}
	return mapper.UsersToDTO(rows), nil
}

func (s *CourseService) checkParents(ctx context.Context, tx *gorm.DB, categoryID, teacherID *uint) error {
	if categoryID != nil {
		if err := s.st.Categories.MustExist(ctx, tx, *categoryID); err != nil {
			return err
		}
	}
	if teacherID != nil {
		if err := s.st.Users.MustExist(ctx, tx, *teacherID); err != nil {
			return err
		}
	}
	return nil
}
