package storage

import (
	"context"
	"fmt"

	"github.com/s/elearning/internal/apperr"
	"github.com/s/elearning/internal/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	Repo[models.Tag]
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{newRepo[models.Tag](db, "Tag", "id")}
}

func (r *TagRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*models.Tag, error) {
	tags, err := r.FindBy(ctx, tx, "name", name)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, apperr.NotFoundf("Tag not found with name: %s", name)
	}
	return &tags[0], nil
}

func (r *TagRepo) NameTaken(ctx context.Context, tx *gorm.DB, name string, exceptID uint) (bool, error) {
	var n int64
	err := r.getDB(ctx, tx).Model(&models.Tag{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check tag name: %w", err)
	}
	return n > 0, nil
}

func (r *TagRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uint) ([]models.Tag, error) {
	out := []models.Tag{}
	err := r.getDB(ctx, tx).
		Joins("JOIN course_tags ON course_tags.tag_id = tags.id").
		Where("course_tags.course_id = ?", courseID).
		Order("tags.id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list tags for course %d: %w", courseID, err)
	}
	return out, nil
}

// Unlink drops every course link of the tag.
func (r *TagRepo) Unlink(ctx context.Context, tx *gorm.DB, tagID uint) error {
	if err := r.getDB(ctx, tx).Exec("DELETE FROM course_tags WHERE tag_id = ?", tagID).Error; err != nil {
		return fmt.Errorf("unlink tag %d: %w", tagID, err)
	}
	return nil
}
