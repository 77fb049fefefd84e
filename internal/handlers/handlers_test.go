package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/s/elearning/internal/dto"
	"github.com/s/elearning/internal/services"
	"github.com/s/elearning/internal/testutil"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger()
	return NewHandler(services.New(db, nil, log), db, log).Routes()
}

func do(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d, body = %s", rec.Code, want, rec.Body.String())
	}
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func TestCreateCourseScenario(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodPost, "/categories/create", map[string]string{"name": "Programming"})
	mustStatus(t, rec, http.StatusOK)
	var cat dto.Category
	decodeInto(t, rec, &cat)

	rec = do(t, srv, http.MethodPost, "/user/create", map[string]string{
		"name": "T", "email": "t@x.com", "role": "TEACHER",
	})
	mustStatus(t, rec, http.StatusOK)
	var teacher dto.User
	decodeInto(t, rec, &teacher)

	rec = do(t, srv, http.MethodPost, "/courses/create", map[string]any{
		"title": "Java Basics", "duration": 30, "categoryId": cat.ID, "teacherId": teacher.ID,
	})
	mustStatus(t, rec, http.StatusOK)
	var course dto.Course
	decodeInto(t, rec, &course)
	if course.ID == 0 || course.Title != "Java Basics" {
		t.Fatalf("course = %+v", course)
	}

	rec = do(t, srv, http.MethodGet, fmt.Sprintf("/api/courses/list_by_category?category_id=%d", cat.ID), nil)
	mustStatus(t, rec, http.StatusOK)
	var list []dto.Course
	decodeInto(t, rec, &list)
	if len(list) != 1 || list[0].ID != course.ID {
		t.Fatalf("list = %+v", list)
	}
}

func TestModuleGetList(t *testing.T) {
	srv := newServer(t)
	rec := do(t, srv, http.MethodPost, "/courses/create", map[string]any{"title": "Go"})
	mustStatus(t, rec, http.StatusOK)
	var course dto.Course
	decodeInto(t, rec, &course)

	rec = do(t, srv, http.MethodPost, "/modules/create", map[string]any{
		"title": "Basics", "orderIndex": 1, "courseId": course.ID,
	})
	mustStatus(t, rec, http.StatusOK)

	rec = do(t, srv, http.MethodGet, fmt.Sprintf("/modules/get-list?course_id=%d", course.ID), nil)
	mustStatus(t, rec, http.StatusOK)
	var mods []dto.Module
	decodeInto(t, rec, &mods)
	if len(mods) != 1 || mods[0].Title != "Basics" {
		t.Fatalf("modules = %+v", mods)
	}
}

func TestEmptyListIsArray(t *testing.T) {
	srv := newServer(t)
	rec := do(t, srv, http.MethodGet, "/modules/get-list?course_id=5", nil)
	mustStatus(t, rec, http.StatusOK)
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want []", got)
	}
}

func TestNotFoundMapping(t *testing.T) {
	srv := newServer(t)
	for _, path := range []string{"/courses/42", "/api/lessons/42", "/quizzes/module/42", "/tags/name/none"} {
		rec := do(t, srv, http.MethodGet, path, nil)
		mustStatus(t, rec, http.StatusNotFound)
		var body errorBody
		decodeInto(t, rec, &body)
		if body.Error.Code != "not_found" || body.Error.Message == "" {
			t.Fatalf("%s: body = %+v", path, body)
		}
	}

	rec := do(t, srv, http.MethodDelete, "/modules/7", nil)
	mustStatus(t, rec, http.StatusNotFound)
	var body errorBody
	decodeInto(t, rec, &body)
	if body.Error.Message != "Module not found with id: 7" {
		t.Fatalf("message = %q", body.Error.Message)
	}
}

func TestValidationMapping(t *testing.T) {
	srv := newServer(t)
	tests := []struct {
		name, method, path string
		body               any
	}{
		{"malformed json", http.MethodPost, "/courses/create", "{"},
		{"missing title", http.MethodPost, "/courses/create", map[string]any{"duration": 3}},
		{"negative duration", http.MethodPost, "/courses/create", map[string]any{"title": "x", "duration": -1}},
		{"bad role", http.MethodPost, "/user/create", map[string]any{"email": "a@b.c", "role": "GUEST"}},
		{"missing parent", http.MethodPost, "/api/lessons", map[string]any{"title": "l"}},
		{"bad question type", http.MethodPost, "/quizzes/questions", map[string]any{"text": "?", "type": "ESSAY", "quizId": 1}},
		{"missing query id", http.MethodGet, "/modules/get-list", nil},
		{"bad score", http.MethodPut, "/lessons/submissions/1/grade?score=abc", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.path, tt.body)
			mustStatus(t, rec, http.StatusBadRequest)
			var body errorBody
			decodeInto(t, rec, &body)
			if body.Error.Code != "validation_failed" {
				t.Fatalf("code = %q", body.Error.Code)
			}
		})
	}
}

func TestDuplicateEnrollmentConflict(t *testing.T) {
	srv := newServer(t)
	rec := do(t, srv, http.MethodPost, "/user/create", map[string]string{"name": "S", "email": "s@x.io", "role": "STUDENT"})
	mustStatus(t, rec, http.StatusOK)
	var user dto.User
	decodeInto(t, rec, &user)
	rec = do(t, srv, http.MethodPost, "/courses/create", map[string]any{"title": "Go"})
	var course dto.Course
	decodeInto(t, rec, &course)

	path := fmt.Sprintf("/user/create-enrollment?userId=%d&courseId=%d", user.ID, course.ID)
	rec = do(t, srv, http.MethodPost, path, nil)
	mustStatus(t, rec, http.StatusOK)
	var e dto.Enrollment
	decodeInto(t, rec, &e)
	if e.Status != "Active" {
		t.Fatalf("enrollment = %+v", e)
	}

	rec = do(t, srv, http.MethodPost, path, nil)
	mustStatus(t, rec, http.StatusConflict)
	var body errorBody
	decodeInto(t, rec, &body)
	if body.Error.Code != "duplicate_enrollment" {
		t.Fatalf("code = %q", body.Error.Code)
	}

	rec = do(t, srv, http.MethodGet, fmt.Sprintf("/user/courses-list?userId=%d", user.ID), nil)
	mustStatus(t, rec, http.StatusOK)
	var courses []dto.Course
	decodeInto(t, rec, &courses)
	if len(courses) != 1 {
		t.Fatalf("courses = %+v", courses)
	}

	rec = do(t, srv, http.MethodGet, fmt.Sprintf("/api/user/enrollments?userId=%d", user.ID), nil)
	mustStatus(t, rec, http.StatusOK)
	var enrollments []dto.Enrollment
	decodeInto(t, rec, &enrollments)
	if len(enrollments) != 1 || enrollments[0].CourseID != course.ID || enrollments[0].EnrollDate != e.EnrollDate {
		t.Fatalf("enrollments = %+v", enrollments)
	}
}

func TestGradeSubmission(t *testing.T) {
	srv := newServer(t)
	var user dto.User
	decodeInto(t, do(t, srv, http.MethodPost, "/user/create", map[string]string{"name": "S", "email": "s@x.io", "role": "STUDENT"}), &user)
	var course dto.Course
	decodeInto(t, do(t, srv, http.MethodPost, "/courses/create", map[string]any{"title": "Go"}), &course)
	var mod dto.Module
	decodeInto(t, do(t, srv, http.MethodPost, "/modules/create", map[string]any{"title": "m", "courseId": course.ID}), &mod)
	var lesson dto.Lesson
	decodeInto(t, do(t, srv, http.MethodPost, "/lessons", map[string]any{"title": "l", "moduleId": mod.ID}), &lesson)
	var asg dto.Assignment
	decodeInto(t, do(t, srv, http.MethodPost, "/lessons/assignments", map[string]any{"title": "a", "lessonId": lesson.ID}), &asg)

	rec := do(t, srv, http.MethodPost, "/lessons/submissions", map[string]any{
		"assignmentId": asg.ID, "studentId": user.ID, "content": "answer",
	})
	mustStatus(t, rec, http.StatusOK)
	var sub dto.Submission
	decodeInto(t, rec, &sub)

	rec = do(t, srv, http.MethodPut, fmt.Sprintf("/api/lessons/submissions/%d/grade?score=95&feedback=Good", sub.ID), nil)
	mustStatus(t, rec, http.StatusOK)
	var graded dto.Submission
	decodeInto(t, rec, &graded)
	if *graded.Score != 95 || *graded.Feedback != "Good" || graded.Content != "answer" {
		t.Fatalf("graded = %+v", graded)
	}
	if !graded.SubmittedAt.Equal(sub.SubmittedAt) {
		t.Fatalf("submittedAt changed: %v -> %v", sub.SubmittedAt, graded.SubmittedAt)
	}

	rec = do(t, srv, http.MethodGet, fmt.Sprintf("/lessons/submissions/student/%d", user.ID), nil)
	var subs []dto.Submission
	decodeInto(t, rec, &subs)
	if len(subs) != 1 {
		t.Fatalf("student submissions = %+v", subs)
	}
}

func TestDeleteReturnsEmptyBody(t *testing.T) {
	srv := newServer(t)
	var tag dto.Tag
	decodeInto(t, do(t, srv, http.MethodPost, "/tags", map[string]string{"name": "go"}), &tag)

	rec := do(t, srv, http.MethodDelete, fmt.Sprintf("/tags/%d", tag.ID), nil)
	mustStatus(t, rec, http.StatusOK)
	if rec.Body.Len() != 0 {
		t.Fatalf("body = %q", rec.Body.String())
	}
	mustStatus(t, do(t, srv, http.MethodGet, fmt.Sprintf("/tags/%d", tag.ID), nil), http.StatusNotFound)
}

func TestCourseStructureAndRetain(t *testing.T) {
	srv := newServer(t)
	var course dto.Course
	decodeInto(t, do(t, srv, http.MethodPost, "/courses/create", map[string]any{"title": "Go"}), &course)
	var keep, drop dto.Module
	decodeInto(t, do(t, srv, http.MethodPost, "/modules/create", map[string]any{"title": "keep", "orderIndex": 1, "courseId": course.ID}), &keep)
	decodeInto(t, do(t, srv, http.MethodPost, "/modules/create", map[string]any{"title": "drop", "orderIndex": 2, "courseId": course.ID}), &drop)
	do(t, srv, http.MethodPost, "/lessons", map[string]any{"title": "l", "moduleId": keep.ID})

	rec := do(t, srv, http.MethodGet, fmt.Sprintf("/courses/%d/structure", course.ID), nil)
	mustStatus(t, rec, http.StatusOK)
	var st dto.CourseStructure
	decodeInto(t, rec, &st)
	if len(st.Modules) != 2 || len(st.Modules[0].Lessons) != 1 {
		t.Fatalf("structure = %+v", st)
	}

	rec = do(t, srv, http.MethodPut, fmt.Sprintf("/courses/%d/modules", course.ID), map[string]any{"moduleIds": []uint{keep.ID}})
	mustStatus(t, rec, http.StatusOK)
	mustStatus(t, do(t, srv, http.MethodGet, fmt.Sprintf("/modules/%d", drop.ID), nil), http.StatusNotFound)
	mustStatus(t, do(t, srv, http.MethodGet, fmt.Sprintf("/modules/%d", keep.ID), nil), http.StatusOK)
}

func TestRetainWithoutListIsRejected(t *testing.T) {
	srv := newServer(t)
	var course dto.Course
	decodeInto(t, do(t, srv, http.MethodPost, "/courses/create", map[string]any{"title": "Go"}), &course)
	var mod dto.Module
	decodeInto(t, do(t, srv, http.MethodPost, "/modules/create", map[string]any{"title": "m", "courseId": course.ID}), &mod)
	var quiz dto.Quiz
	decodeInto(t, do(t, srv, http.MethodPost, "/quizzes", map[string]any{"title": "q"}), &quiz)
	var question dto.Question
	decodeInto(t, do(t, srv, http.MethodPost, "/quizzes/questions", map[string]any{"text": "?", "type": "SINGLE_CHOICE", "quizId": quiz.ID}), &question)

	for _, path := range []string{
		fmt.Sprintf("/courses/%d/modules", course.ID),
		fmt.Sprintf("/quizzes/%d/questions", quiz.ID),
	} {
		rec := do(t, srv, http.MethodPut, path, "{}")
		mustStatus(t, rec, http.StatusBadRequest)
		var body errorBody
		decodeInto(t, rec, &body)
		if body.Error.Code != "validation_failed" {
			t.Fatalf("%s: code = %q", path, body.Error.Code)
		}
	}
	mustStatus(t, do(t, srv, http.MethodGet, fmt.Sprintf("/modules/%d", mod.ID), nil), http.StatusOK)
	mustStatus(t, do(t, srv, http.MethodGet, fmt.Sprintf("/quizzes/questions/%d", question.ID), nil), http.StatusOK)

	rec := do(t, srv, http.MethodPut, fmt.Sprintf("/courses/%d/modules", course.ID), `{"moduleIds":[]}`)
	mustStatus(t, rec, http.StatusOK)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	mustStatus(t, do(t, srv, http.MethodGet, fmt.Sprintf("/modules/%d", mod.ID), nil), http.StatusNotFound)
}

func TestCourseReviews(t *testing.T) {
	srv := newServer(t)
	var user dto.User
	decodeInto(t, do(t, srv, http.MethodPost, "/user/create", map[string]string{"name": "S", "email": "s@x.io", "role": "STUDENT"}), &user)
	var course dto.Course
	decodeInto(t, do(t, srv, http.MethodPost, "/courses/create", map[string]any{"title": "Go"}), &course)

	rec := do(t, srv, http.MethodPost, "/courses/create-review", map[string]any{
		"courseId": course.ID, "userId": user.ID, "rating": 5, "review": "Clear and short",
	})
	mustStatus(t, rec, http.StatusOK)
	var review dto.CourseReview
	decodeInto(t, rec, &review)
	if review.ID == 0 || review.Rating != 5 || *review.CourseID != course.ID || *review.UserID != user.ID {
		t.Fatalf("review = %+v", review)
	}

	for _, path := range []string{
		fmt.Sprintf("/courses/reviews-for-course?courseId=%d", course.ID),
		fmt.Sprintf("/api/user/reviews-for-user?userId=%d", user.ID),
	} {
		rec := do(t, srv, http.MethodGet, path, nil)
		mustStatus(t, rec, http.StatusOK)
		var reviews []dto.CourseReview
		decodeInto(t, rec, &reviews)
		if len(reviews) != 1 || reviews[0].ID != review.ID || reviews[0].Review != "Clear and short" {
			t.Fatalf("%s: reviews = %+v", path, reviews)
		}
	}

	rec = do(t, srv, http.MethodGet, "/courses/reviews-for-course?courseId=999", nil)
	mustStatus(t, rec, http.StatusOK)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	srv := newServer(t)
	rec := do(t, srv, http.MethodGet, "/health", nil)
	mustStatus(t, rec, http.StatusOK)
}
