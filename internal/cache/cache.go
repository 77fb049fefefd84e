// Package cache keeps read-through copies of the course catalog. A cache miss
// or a backend failure is never an error for callers; they fall back to the
// database.
package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	courseListPrefix   = "courses:list:"
	courseDetailPrefix = "course:detail:"
	courseVersionKey   = "courses:version"
)

type Cache interface {
	// Get decodes the entry at key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any)
	Delete(ctx context.Context, keys ...string)
	DeletePrefix(ctx context.Context, prefix string)
	// Version reads the counter at key; a missing counter is 0. ok is false
	// when the backend cannot answer and nothing should be cached.
	Version(ctx context.Context, key string) (v int64, ok bool)
	Bump(ctx context.Context, key string)
}

// CourseVersion is the catalog generation. Entries are keyed by it, so a
// read that started before a write can only fill a generation nobody reads.
func CourseVersion(ctx context.Context, c Cache) (int64, bool) {
	return c.Version(ctx, courseVersionKey)
}

// CourseListKey names the course list of generation v, optionally filtered
// by category.
func CourseListKey(v int64, categoryID *uint) string {
	if categoryID == nil {
		return fmt.Sprintf("%sv%d:all", courseListPrefix, v)
	}
	return fmt.Sprintf("%sv%d:category:%d", courseListPrefix, v, *categoryID)
}

func CourseDetailKey(v int64, id uint) string {
	return fmt.Sprintf("%sv%d:%d", courseDetailPrefix, v, id)
}

// InvalidateCourses starts a new catalog generation and drops the entries of
// older ones.
func InvalidateCourses(ctx context.Context, c Cache) {
	c.Bump(ctx, courseVersionKey)
	c.DeletePrefix(ctx, courseListPrefix)
	c.DeletePrefix(ctx, courseDetailPrefix)
}

type Noop struct{}

func (Noop) Get(context.Context, string, any) bool         { return false }
func (Noop) Set(context.Context, string, any)              {}
func (Noop) Delete(context.Context, ...string)             {}
func (Noop) DeletePrefix(context.Context, string)          {}
func (Noop) Version(context.Context, string) (int64, bool) { return 0, false }
func (Noop) Bump(context.Context, string)                  {}

var defaultTTL = 10 * time.Minute
