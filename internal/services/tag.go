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

const codeDuplicateTag = "duplicate_tag"

type TagService struct {
	st  *storage.Store
	log *logger.Logger
}

func NewTagService(st *storage.Store, baseLog *logger.Logger) *TagService {
	return &TagService{st: st, log: baseLog.With("service", "TagService")}
}

func (s *TagService) GetAll(ctx context.Context) ([]dto.Tag, error) {
	rows, err := s.st.Tags.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return mapper.TagsToDTO(rows), nil
}

func (s *TagService) GetByID(ctx context.Context, id uint) (dto.Tag, error) {
	row, err := s.st.Tags.GetByID(ctx, nil, id)
	if err != nil {
		return dto.Tag{}, err
	}
	return mapper.TagToDTO(*row), nil
}

func (s *TagService) GetByName(ctx context.Context, name string) (dto.Tag, error) {
	row, err := s.st.Tags.GetByName(ctx, nil, name)
	if err != nil {
		return dto.Tag{}, err
	}
	return mapper.TagToDTO(*row), nil
}

func (s *TagService) GetByCourseID(ctx context.Context, courseID uint) ([]dto.Tag, error) {
	rows, err := s.st.Tags.GetByCourseID(ctx, nil, courseID)
	if err != nil {
		return nil, err
	}
	return mapper.TagsToDTO(rows), nil
}

func (s *TagService) Create(ctx context.Context, in dto.Tag) (dto.Tag, error) {
	row := mapper.TagToModel(in)
	row.ID = 0
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.checkName(ctx, tx, row.Name, 0); err != nil {
			return err
		}
		return s.st.Tags.Create(ctx, tx, &row)
	})
	if err != nil {
		return dto.Tag{}, asConflict(err, codeDuplicateTag, "tag name already exists")
	}
	return mapper.TagToDTO(row), nil
}

func (s *TagService) Update(ctx context.Context, id uint, in dto.Tag) (dto.Tag, error) {
	var out models.Tag
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		row, err := s.st.Tags.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.checkName(ctx, tx, in.Name, id); err != nil {
			return err
		}
		row.Name = in.Name
		if err := s.st.Tags.Save(ctx, tx, row); err != nil {
			return err
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.Tag{}, asConflict(err, codeDuplicateTag, "tag name already exists")
	}
	return mapper.TagToDTO(out), nil
}

// Delete removes the tag and its course links.
func (s *TagService) Delete(ctx context.Context, id uint) error {
	return withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Tags.MustExist(ctx, tx, id); err != nil {
			return err
		}
		if err := s.st.Tags.Unlink(ctx, tx, id); err != nil {
			return err
		}
		return s.st.Tags.Delete(ctx, tx, id)
	})
}

func (s *TagService) AttachToCourse(ctx context.Context, courseID, tagID uint) ([]dto.Tag, error) {
	return s.changeCourseTags(ctx, courseID, tagID, s.st.Courses.AttachTag)
}

func (s *TagService) DetachFromCourse(ctx context.Context, courseID, tagID uint) ([]dto.Tag, error) {
	return s.changeCourseTags(ctx, courseID, tagID, s.st.Courses.DetachTag)
}

func (s *TagService) changeCourseTags(ctx context.Context, courseID, tagID uint,
	apply func(context.Context, *gorm.DB, uint, *models.Tag) error) ([]dto.Tag, error) {
	var rows []models.Tag
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		if err := s.st.Courses.MustExist(ctx, tx, courseID); err != nil {
			return err
		}
		tag, err := s.st.Tags.GetByID(ctx, tx, tagID)
		if err != nil {
			return err
		}
		if err := apply(ctx, tx, courseID, tag); err != nil {
			return err
		}
		rows, err = s.st.Tags.GetByCourseID(ctx, tx, courseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mapper.TagsToDTO(rows), nil
}

func (s *TagService) checkName(ctx context.Context, tx *gorm.DB, name string, exceptID uint) error {
	taken, err := s.st.Tags.NameTaken(ctx, tx, name, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict(codeDuplicateTag, fmt.Sprintf("tag %q already exists", name))
	}
	return nil
}
