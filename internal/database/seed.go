package database

import (
	"context"
	"fmt"

	"github.com/s/elearning/internal/models"
	"gorm.io/gorm"
)

// Seed fills an empty database with a small demo catalog. It does nothing
// once any category exists.
func Seed(ctx context.Context, db *gorm.DB) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category := models.Category{Name: "Programming"}
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
		teacher := models.User{
			Name:    "T",
			Email:   "teacher@example.com",
			Role:    models.RoleTeacher,
			Profile: &models.Profile{Bio: "Course author"},
		}
		if err := tx.Create(&teacher).Error; err != nil {
			return err
		}

		first := 1
		course := models.Course{
			Title:       "Java Basics",
			Description: "Introduction to Java",
			Duration:    40,
			CategoryID:  &category.ID,
			TeacherID:   &teacher.ID,
			Modules: []models.Module{{
				Title:      "Getting started",
				OrderIndex: 1,
				Lessons: []models.Lesson{{
					Title:      "Hello, World",
					Content:    "Your first Java program.",
					OrderIndex: &first,
				}},
			}},
		}
		return tx.Create(&course).Error
	})
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	return true, nil
}
