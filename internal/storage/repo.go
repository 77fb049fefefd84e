// Package storage wraps gorm access per entity. Every method takes an
// optional transaction; a nil tx runs against the repository's own handle.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/s/elearning/internal/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo holds the operations shared by every entity table.
type Repo[T any] struct {
	db     *gorm.DB
	entity string
	order  string
}

func newRepo[T any](db *gorm.DB, entity, order string) Repo[T] {
	if order == "" {
		order = "id"
	}
	return Repo[T]{db: db, entity: entity, order: order}
}

func (r Repo[T]) getDB(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx)
}

func (r Repo[T]) GetAll(ctx context.Context, tx *gorm.DB) ([]T, error) {
	out := []T{}
	if err := r.getDB(ctx, tx).Order(r.order).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.entity, err)
	}
	return out, nil
}

// GetByID returns apperr NotFound when no row has the id.
func (r Repo[T]) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*T, error) {
	var out T
	err := r.getDB(ctx, tx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(r.entity, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.entity, id, err)
	}
	return &out, nil
}

// FindBy lists rows whose column equals value, in the repository order.
func (r Repo[T]) FindBy(ctx context.Context, tx *gorm.DB, column string, value any) ([]T, error) {
	out := []T{}
	err := r.getDB(ctx, tx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order(r.order).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list %s by %s: %w", r.entity, column, err)
	}
	return out, nil
}

func (r Repo[T]) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	var n int64
	if err := r.getDB(ctx, tx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check %s %d: %w", r.entity, id, err)
	}
	return n > 0, nil
}

// MustExist is Exists turned into an apperr NotFound.
func (r Repo[T]) MustExist(ctx context.Context, tx *gorm.DB, id uint) error {
	ok, err := r.Exists(ctx, tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound(r.entity, id)
	}
	return nil
}

// Create inserts the row only; associations are persisted by their own repos.
func (r Repo[T]) Create(ctx context.Context, tx *gorm.DB, row *T) error {
	if err := r.getDB(ctx, tx).Omit(clause.Associations).Create(row).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.entity, err)
	}
	return nil
}

func (r Repo[T]) Save(ctx context.Context, tx *gorm.DB, row *T) error {
	if err := r.getDB(ctx, tx).Omit(clause.Associations).Save(row).Error; err != nil {
		return fmt.Errorf("save %s: %w", r.entity, err)
	}
	return nil
}

// Delete removes the row; owned children go with it through ON DELETE CASCADE.
func (r Repo[T]) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := r.getDB(ctx, tx).Delete(new(T), id)
	if res.Error != nil {
		return fmt.Errorf("delete %s %d: %w", r.entity, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(r.entity, id)
	}
	return nil
}

// deleteExcept removes the rows under parent whose ids are not in keep.
func (r Repo[T]) deleteExcept(ctx context.Context, tx *gorm.DB, parentColumn string, parentID uint, keep []uint) (int64, error) {
	q := r.getDB(ctx, tx).Where(clause.Eq{Column: clause.Column{Name: parentColumn}, Value: parentID})
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	res := q.Delete(new(T))
	if res.Error != nil {
		return 0, fmt.Errorf("prune %s: %w", r.entity, res.Error)
	}
	return res.RowsAffected, nil
}
