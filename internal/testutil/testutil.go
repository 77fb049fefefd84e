// Package testutil provides an isolated SQLite database per test plus seed
// helpers for the main aggregates.
package testutil

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/s/elearning/internal/database"
	"github.com/s/elearning/internal/logger"
	"github.com/s/elearning/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// DB opens a migrated in-memory database private to tb.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := unsafeName.ReplaceAllString(tb.Name(), "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), database.Config("silent"))
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		tb.Fatalf("enable foreign keys: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

func Logger() *logger.Logger { return logger.NewNop() }

func Category(tb testing.TB, db *gorm.DB, name string) models.Category {
	tb.Helper()
	c := models.Category{Name: name}
	mustCreate(tb, db, &c)
	return c
}

func User(tb testing.TB, db *gorm.DB, name, email string, role models.Role) models.User {
	tb.Helper()
	u := models.User{Name: name, Email: email, Role: role}
	mustCreate(tb, db, &u)
	return u
}

func Course(tb testing.TB, db *gorm.DB, title string, categoryID *uint) models.Course {
	tb.Helper()
	c := models.Course{Title: title, CategoryID: categoryID}
	mustCreate(tb, db, &c)
	return c
}

func Module(tb testing.TB, db *gorm.DB, courseID uint, title string, order int) models.Module {
	tb.Helper()
	m := models.Module{CourseID: courseID, Title: title, OrderIndex: order}
	mustCreate(tb, db, &m)
	return m
}

func Lesson(tb testing.TB, db *gorm.DB, moduleID uint, title string) models.Lesson {
	tb.Helper()
	l := models.Lesson{ModuleID: moduleID, Title: title}
	mustCreate(tb, db, &l)
	return l
}

func Assignment(tb testing.TB, db *gorm.DB, lessonID uint, title string) models.Assignment {
	tb.Helper()
	a := models.Assignment{LessonID: lessonID, Title: title}
	mustCreate(tb, db, &a)
	return a
}

func Submission(tb testing.TB, db *gorm.DB, assignmentID, studentID uint, content string) models.Submission {
	tb.Helper()
	s := models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      content,
		SubmittedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
	mustCreate(tb, db, &s)
	return s
}

func Quiz(tb testing.TB, db *gorm.DB, moduleID *uint, title string) models.Quiz {
	tb.Helper()
	q := models.Quiz{ModuleID: moduleID, Title: title}
	mustCreate(tb, db, &q)
	return q
}

func Question(tb testing.TB, db *gorm.DB, quizID uint, text string) models.Question {
	tb.Helper()
	q := models.Question{QuizID: quizID, Text: text, Type: models.SingleChoice}
	mustCreate(tb, db, &q)
	return q
}

func Tag(tb testing.TB, db *gorm.DB, name string) models.Tag {
	tb.Helper()
	t := models.Tag{Name: name}
	mustCreate(tb, db, &t)
	return t
}

// Count returns the number of rows in model's table.
func Count(tb testing.TB, db *gorm.DB, model any) int64 {
	tb.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		tb.Fatalf("count %T: %v", model, err)
	}
	return n
}

func mustCreate(tb testing.TB, db *gorm.DB, row any) {
	tb.Helper()
	if err := db.Create(row).Error; err != nil {
		tb.Fatalf("create %T: %v", row, err)
	}
}
