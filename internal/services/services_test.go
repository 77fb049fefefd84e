package services

import (
	"context"
	"errors"
	"testing"

	"github.com/s/elearning/internal/apperr"
	"github.com/s/elearning/internal/dto"
	"github.com/s/elearning/internal/models"
	"github.com/s/elearning/internal/testutil"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	return New(db, nil, testutil.Logger()), db
}

func ptr[T any](v T) *T { return &v }

func TestCreateWithUnknownParent(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	missing := ptr(uint(999))

	tests := []struct {
		name   string
		create func() error
		table  any
	}{
		{"module", func() error {
			_, err := svc.Modules.Create(ctx, dto.Module{Title: "m", CourseID: missing})
			return err
		}, &models.Module{}},
		{"lesson", func() error {
			_, err := svc.Lessons.Create(ctx, dto.Lesson{Title: "l", ModuleID: missing})
			return err
		}, &models.Lesson{}},
		{"assignment", func() error {
			_, err := svc.Assignments.Create(ctx, dto.Assignment{Title: "a", LessonID: missing})
			return err
		}, &models.Assignment{}},
		{"submission", func() error {
			_, err := svc.Submissions.Create(ctx, dto.Submission{AssignmentID: missing, StudentID: missing})
			return err
		}, &models.Submission{}},
		{"quiz", func() error {
			_, err := svc.Quizzes.Create(ctx, dto.Quiz{Title: "q", ModuleID: missing})
			return err
		}, &models.Quiz{}},
		{"question", func() error {
			_, err := svc.Questions.Create(ctx, dto.Question{Text: "?", Type: "SINGLE_CHOICE", QuizID: missing})
			return err
		}, &models.Question{}},
		{"option", func() error {
			_, err := svc.AnswerOptions.Create(ctx, dto.AnswerOption{Text: "a", QuestionID: missing})
			return err
		}, &models.AnswerOption{}},
		{"quiz submission", func() error {
			_, err := svc.QuizSubmissions.Create(ctx, dto.QuizSubmission{QuizID: missing, StudentID: missing})
			return err
		}, &models.QuizSubmission{}},
		{"course category", func() error {
			_, err := svc.Courses.Create(ctx, dto.Course{Title: "c", CategoryID: missing})
			return err
		}, &models.Course{}},
		{"review", func() error {
			_, err := svc.Reviews.Create(ctx, dto.CourseReview{CourseID: missing, UserID: missing})
			return err
		}, &models.CourseReview{}},
		{"enrollment", func() error {
			_, err := svc.Enrollments.Create(ctx, 999, 999)
			return err
		}, &models.Enrollment{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.create(); !apperr.IsNotFound(err) {
				t.Fatalf("err = %v, want NotFound", err)
			}
			if n := testutil.Count(t, db, tt.table); n != 0 {
				t.Fatalf("%d rows persisted", n)
			}
		})
	}
}

func TestCreateWithoutParentIsValidation(t *testing.T) {
	svc, _ := setup(t)
	_, err := svc.Lessons.Create(context.Background(), dto.Lesson{Title: "orphan"})
	if !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want Validation", err)
	}
}

func TestNonexistentID(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["get category"] = svc.Categories.GetByID(ctx, 5)
	_, checks["update course"] = svc.Courses.Update(ctx, 5, dto.Course{Title: "x"})
	checks["delete module"] = svc.Modules.Delete(ctx, 5)
	_, checks["get quiz"] = svc.Quizzes.GetByID(ctx, 5)
	_, checks["grade"] = svc.Submissions.Grade(ctx, 5, 10, nil)
	_, checks["update user"] = svc.Users.Update(ctx, 5, dto.User{Email: "a@b.c", Role: "STUDENT"})
	checks["delete tag"] = svc.Tags.Delete(ctx, 5)
	_, checks["quiz by module"] = svc.Quizzes.GetByModuleID(ctx, 5)
	_, checks["structure"] = svc.Courses.GetStructure(ctx, 5)

	for name, err := range checks {
		if !apperr.IsNotFound(err) {
			t.Errorf("%s: err = %v, want NotFound", name, err)
		}
	}
}

func TestCourseScenario(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	cat, err := svc.Categories.Create(ctx, dto.Category{Name: "Programming"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	teacher, err := svc.Users.Create(ctx, dto.User{Name: "T", Email: "t@x.com", Role: "TEACHER"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	course, err := svc.Courses.Create(ctx, dto.Course{
		Title: "Java Basics", Duration: 30, CategoryID: &cat.ID, TeacherID: &teacher.ID,
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if course.ID == 0 || course.Title != "Java Basics" {
		t.Fatalf("course = %+v", course)
	}

	list, err := svc.Courses.GetList(ctx, &cat.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("GetList = %+v, %v", list, err)
	}
	other := uint(cat.ID + 1)
	list, _ = svc.Courses.GetList(ctx, &other)
	if len(list) != 0 {
		t.Fatalf("GetList(other) = %+v", list)
	}
}

func TestUpdateRepointsParent(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	c1 := testutil.Course(t, db, "one", nil)
	c2 := testutil.Course(t, db, "two", nil)
	mod := testutil.Module(t, db, c1.ID, "m", 1)

	got, err := svc.Modules.Update(ctx, mod.ID, dto.Module{Title: "moved", CourseID: &c2.ID})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Title != "moved" || *got.CourseID != c2.ID {
		t.Fatalf("module = %+v", got)
	}

	_, err = svc.Modules.Update(ctx, mod.ID, dto.Module{Title: "x", CourseID: ptr(uint(404))})
	if !apperr.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFound", err)
	}

	got, err = svc.Modules.Update(ctx, mod.ID, dto.Module{Title: "kept parent"})
	if err != nil || *got.CourseID != c2.ID {
		t.Fatalf("nil parent should keep course: %+v, %v", got, err)
	}
}

func TestGradeScenario(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	student := testutil.User(t, db, "S", "s@x.io", models.RoleStudent)
	course := testutil.Course(t, db, "Go", nil)
	lesson := testutil.Lesson(t, db, testutil.Module(t, db, course.ID, "m", 1).ID, "l")
	asg := testutil.Assignment(t, db, lesson.ID, "a")

	sub, err := svc.Submissions.Create(ctx, dto.Submission{
		AssignmentID: &asg.ID, StudentID: &student.ID, Content: "solution",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.SubmittedAt.IsZero() || sub.Score != nil {
		t.Fatalf("submission = %+v", sub)
	}

	graded, err := svc.Submissions.Grade(ctx, sub.ID, 95, ptr("Good"))
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if *graded.Score != 95 || *graded.Feedback != "Good" {
		t.Fatalf("graded = %+v", graded)
	}
	if graded.Content != "solution" || !graded.SubmittedAt.Equal(sub.SubmittedAt) {
		t.Fatalf("grade changed other fields: %+v vs %+v", graded, sub)
	}
}

func TestDuplicateEnrollment(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	user := testutil.User(t, db, "S", "s@x.io", models.RoleStudent)
	course := testutil.Course(t, db, "Go", nil)

	e, err := svc.Enrollments.Create(ctx, user.ID, course.ID)
	if err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	if e.Status != "Active" || len(e.EnrollDate) != len("2006-01-02") {
		t.Fatalf("enrollment = %+v", e)
	}

	_, err = svc.Enrollments.Create(ctx, user.ID, course.ID)
	if !apperr.IsConflict(err) {
		t.Fatalf("err = %v, want Conflict", err)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != "duplicate_enrollment" {
		t.Fatalf("code = %+v", appErr)
	}
	if n := testutil.Count(t, db, &models.Enrollment{}); n != 1 {
		t.Fatalf("enrollments = %d", n)
	}

	courses, err := svc.Users.GetCoursesForUser(ctx, user.ID)
	if err != nil || len(courses) != 1 {
		t.Fatalf("GetCoursesForUser = %+v, %v", courses, err)
	}
	users, err := svc.Courses.GetUsersForCourse(ctx, course.ID)
	if err != nil || len(users) != 1 || users[0].ID != user.ID {
		t.Fatalf("GetUsersForCourse = %+v, %v", users, err)
	}
}

func TestRetainModules(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	course := testutil.Course(t, db, "Go", nil)
	keep := testutil.Module(t, db, course.ID, "keep", 1)
	drop := testutil.Module(t, db, course.ID, "drop", 2)
	testutil.Lesson(t, db, drop.ID, "goes too")

	mods, err := svc.Courses.RetainModules(ctx, course.ID, []uint{keep.ID})
	if err != nil {
		t.Fatalf("RetainModules: %v", err)
	}
	if len(mods) != 1 || mods[0].ID != keep.ID {
		t.Fatalf("modules = %+v", mods)
	}
	if _, err := svc.Modules.GetByID(ctx, drop.ID); !apperr.IsNotFound(err) {
		t.Fatalf("dropped module still readable: %v", err)
	}
	if n := testutil.Count(t, db, &models.Lesson{}); n != 0 {
		t.Fatalf("lessons = %d", n)
	}
}

func TestRetainQuestions(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	quiz := testutil.Quiz(t, db, nil, "q")
	a := testutil.Question(t, db, quiz.ID, "a")
	b := testutil.Question(t, db, quiz.ID, "b")
	if _, err := svc.AnswerOptions.Create(ctx, dto.AnswerOption{Text: "x", QuestionID: &b.ID}); err != nil {
		t.Fatalf("create option: %v", err)
	}

	qs, err := svc.Quizzes.RetainQuestions(ctx, quiz.ID, []uint{a.ID})
	if err != nil || len(qs) != 1 || qs[0].ID != a.ID {
		t.Fatalf("RetainQuestions = %+v, %v", qs, err)
	}
	if n := testutil.Count(t, db, &models.AnswerOption{}); n != 0 {
		t.Fatalf("options = %d", n)
	}
}

func TestCourseDeleteCascade(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	course := testutil.Course(t, db, "Go", nil)
	var lessonIDs []uint
	for i := 0; i < 2; i++ {
		m := testutil.Module(t, db, course.ID, "m", i)
		for j := 0; j < 3; j++ {
			l := testutil.Lesson(t, db, m.ID, "l")
			testutil.Assignment(t, db, l.ID, "a")
			lessonIDs = append(lessonIDs, l.ID)
		}
	}

	if err := svc.Courses.Delete(ctx, course.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for _, id := range lessonIDs {
		if _, err := svc.Lessons.GetByID(ctx, id); !apperr.IsNotFound(err) {
			t.Fatalf("lesson %d still readable", id)
		}
	}
	if n := testutil.Count(t, db, &models.Assignment{}); n != 0 {
		t.Fatalf("assignments = %d", n)
	}
}

func TestQuizOnePerModule(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	course := testutil.Course(t, db, "Go", nil)
	mod := testutil.Module(t, db, course.ID, "m", 1)

	first, err := svc.Quizzes.Create(ctx, dto.Quiz{Title: "first", ModuleID: &mod.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Quizzes.Create(ctx, dto.Quiz{Title: "second", ModuleID: &mod.ID}); !apperr.IsConflict(err) {
		t.Fatalf("err = %v, want Conflict", err)
	}
	got, err := svc.Quizzes.GetByModuleID(ctx, mod.ID)
	if err != nil || got.ID != first.ID {
		t.Fatalf("GetByModuleID = %+v, %v", got, err)
	}
	if _, err := svc.Quizzes.Update(ctx, first.ID, dto.Quiz{Title: "renamed", ModuleID: &mod.ID}); err != nil {
		t.Fatalf("update keeping module: %v", err)
	}
}

func TestUserEmailAndProfile(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	u, err := svc.Users.Create(ctx, dto.User{
		Name: "A", Email: "a@x.io", Role: "STUDENT", Profile: &dto.Profile{Bio: "hi"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Profile == nil || u.Profile.Bio != "hi" {
		t.Fatalf("user = %+v", u)
	}
	if _, err := svc.Users.Create(ctx, dto.User{Name: "B", Email: "a@x.io", Role: "STUDENT"}); !apperr.IsConflict(err) {
		t.Fatalf("err = %v, want Conflict", err)
	}
	if _, err := svc.Users.Create(ctx, dto.User{Name: "C", Email: "c@x.io", Role: "GUEST"}); !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want Validation", err)
	}

	updated, err := svc.Users.Update(ctx, u.ID, dto.User{
		Name: "A2", Email: "a@x.io", Role: "ADMIN", Profile: &dto.Profile{Bio: "new"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Role != "ADMIN" || updated.Profile.Bio != "new" {
		t.Fatalf("updated = %+v", updated)
	}
	got, _ := svc.Users.GetByID(ctx, u.ID)
	if got.Profile == nil || got.Profile.Bio != "new" {
		t.Fatalf("stored = %+v", got)
	}
}

func TestUserDeleteKeepsTaughtCourse(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	teacher := testutil.User(t, db, "T", "t@x.io", models.RoleTeacher)
	course, err := svc.Courses.Create(ctx, dto.Course{Title: "Go", TeacherID: &teacher.ID})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if err := svc.Users.Delete(ctx, teacher.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := svc.Courses.GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("course gone: %v", err)
	}
	if got.TeacherID != nil {
		t.Fatalf("TeacherID = %d, want nil", *got.TeacherID)
	}
}

func TestTags(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	course := testutil.Course(t, db, "Go", nil)

	tag, err := svc.Tags.Create(ctx, dto.Tag{Name: "backend"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Tags.Create(ctx, dto.Tag{Name: "backend"}); !apperr.IsConflict(err) {
		t.Fatalf("err = %v, want Conflict", err)
	}
	byName, err := svc.Tags.GetByName(ctx, "backend")
	if err != nil || byName.ID != tag.ID {
		t.Fatalf("GetByName = %+v, %v", byName, err)
	}

	tags, err := svc.Tags.AttachToCourse(ctx, course.ID, tag.ID)
	if err != nil || len(tags) != 1 {
		t.Fatalf("AttachToCourse = %+v, %v", tags, err)
	}
	if err := svc.Courses.Delete(ctx, course.ID); err != nil {
		t.Fatalf("delete course: %v", err)
	}
	if _, err := svc.Tags.GetByID(ctx, tag.ID); err != nil {
		t.Fatalf("tag should outlive course: %v", err)
	}

	other := testutil.Course(t, db, "Rust", nil)
	if _, err := svc.Tags.AttachToCourse(ctx, other.ID, tag.ID); err != nil {
		t.Fatalf("AttachToCourse: %v", err)
	}
	if err := svc.Tags.Delete(ctx, tag.ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}
	if _, err := svc.Courses.GetByID(ctx, other.ID); err != nil {
		t.Fatalf("course should outlive tag: %v", err)
	}
	left, err := svc.Tags.GetByCourseID(ctx, other.ID)
	if err != nil || len(left) != 0 {
		t.Fatalf("GetByCourseID = %+v, %v", left, err)
	}
}
