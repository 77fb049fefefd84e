package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/s/elearning/internal/dto"
	"github.com/s/elearning/internal/testutil"
)

// memCache is an in-process cache.Cache. beforeSet runs once before the next
// Set stores its value.
type memCache struct {
	mu        sync.Mutex
	entries   map[string][]byte
	versions  map[string]int64
	hits      int
	beforeSet func()
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}, versions: map[string]int64{}}
}

func (c *memCache) Get(_ context.Context, key string, dst any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return false
	}
	c.hits++
	return json.Unmarshal(data, dst) == nil
}

func (c *memCache) Set(_ context.Context, key string, value any) {
	c.mu.Lock()
	hook := c.beforeSet
	c.beforeSet = nil
	c.mu.Unlock()
	if hook != nil {
		hook()
	}
	data, _ := json.Marshal(value)
	c.mu.Lock()
	c.entries[key] = data
	c.mu.Unlock()
}

func (c *memCache) Delete(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
}

func (c *memCache) DeletePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

func (c *memCache) Version(_ context.Context, key string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[key], true
}

func (c *memCache) Bump(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[key]++
}

func TestCourseListServedFromCache(t *testing.T) {
	db := testutil.DB(t)
	mc := newMemCache()
	svc := New(db, mc, testutil.Logger())
	ctx := context.Background()
	testutil.Course(t, db, "Go", nil)

	for i := 0; i < 2; i++ {
		list, err := svc.Courses.GetAll(ctx)
		if err != nil || len(list) != 1 {
			t.Fatalf("GetAll = %+v, %v", list, err)
		}
	}
	if mc.hits != 1 {
		t.Fatalf("hits = %d, want 1", mc.hits)
	}

	if _, err := svc.Courses.Create(ctx, dto.Course{Title: "Rust"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	list, err := svc.Courses.GetAll(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("GetAll after create = %+v, %v", list, err)
	}
}

func TestWriteDuringReadDoesNotLeaveStaleList(t *testing.T) {
	db := testutil.DB(t)
	mc := newMemCache()
	svc := New(db, mc, testutil.Logger())
	ctx := context.Background()
	testutil.Course(t, db, "Go", nil)

	// The write commits after the read queried the database but before the
	// read stores its result.
	mc.beforeSet = func() {
		if _, err := svc.Courses.Create(ctx, dto.Course{Title: "Rust"}); err != nil {
			t.Errorf("Create: %v", err)
		}
	}
	list, err := svc.Courses.GetAll(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("racing GetAll = %+v, %v", list, err)
	}

	list, err = svc.Courses.GetAll(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("GetAll = %+v, %v, want both courses", list, err)
	}
}

func TestCourseDetailRefreshedAfterUpdate(t *testing.T) {
	db := testutil.DB(t)
	svc := New(db, newMemCache(), testutil.Logger())
	ctx := context.Background()
	course := testutil.Course(t, db, "Go", nil)

	if _, err := svc.Courses.GetByID(ctx, course.ID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if _, err := svc.Courses.Update(ctx, course.ID, dto.Course{Title: "Go 2"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := svc.Courses.GetByID(ctx, course.ID)
	if err != nil || got.Title != "Go 2" {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}
}
