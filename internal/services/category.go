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

type CategoryService struct {
	st    *storage.Store
	cache cache.Cache
	log   *logger.Logger
}

func NewCategoryService(st *storage.Store, c cache.Cache, baseLog *logger.Logger) *CategoryService {
	return &CategoryService{st: st, cache: c, log: baseLog.With("service", "CategoryService")}
}

func (s *CategoryService) GetAll(ctx context.Context) ([]dto.Category, error) {
	rows, err := s.st.Categories.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return mapper.CategoriesToDTO(rows), nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (dto.Category, error) {
	row, err := s.st.Categories.GetByID(ctx, nil, id)
	if err != nil {
		return dto.Category{}, err
	}
	return mapper.CategoryToDTO(*row), nil
}

func (s *CategoryService) Create(ctx context.Context, in dto.Category) (dto.Category, error) {
	row := mapper.CategoryToModel(in)
	row.ID = 0
	if err := s.st.Categories.Create(ctx, nil, &row); err != nil {
		return dto.Category{}, err
	}
	return mapper.CategoryToDTO(row), nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, in dto.Category) (dto.Category, error) {
	var out models.Category
	err := withTx(ctx, s.st.DB, func(tx *gorm.DB) error {
		row, err := s.st.Categories.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		row.Name = in.Name
		if err := s.st.Categories.Save(ctx, tx, row); err != nil {
			return err
		}
		out = *row
		return nil
	})
	if err != nil {
		return dto.Category{}, err
	}
	return mapper.CategoryToDTO(out), nil
}

// Delete removes the category; its courses stay with no category.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.st.Categories.Delete(ctx, nil, id); err != nil {
		return err
	}
	cache.InvalidateCourses(ctx, s.cache)
	s.log.Info("category deleted", "categoryID", id)
	return nil
}
