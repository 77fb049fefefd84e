package storage

import "gorm.io/gorm"

// Store bundles one repository per table over a shared handle.
type Store struct {
	DB *gorm.DB

	Categories      *CategoryRepo
	Courses         *CourseRepo
	Modules         *ModuleRepo
	Lessons         *LessonRepo
	Assignments     *AssignmentRepo
	Submissions     *SubmissionRepo
	Quizzes         *QuizRepo
	Questions       *QuestionRepo
	AnswerOptions   *AnswerOptionRepo
	QuizSubmissions *QuizSubmissionRepo
	Users           *UserRepo
	Enrollments     *EnrollmentRepo
	Reviews         *CourseReviewRepo
	Tags            *TagRepo
}

func New(db *gorm.DB) *Store {
	return &Store{
		DB:              db,
		Categories:      NewCategoryRepo(db),
		Courses:         NewCourseRepo(db),
		Modules:         NewModuleRepo(db),
		Lessons:         NewLessonRepo(db),
		Assignments:     NewAssignmentRepo(db),
		Submissions:     NewSubmissionRepo(db),
		Quizzes:         NewQuizRepo(db),
		Questions:       NewQuestionRepo(db),
		AnswerOptions:   NewAnswerOptionRepo(db),
		QuizSubmissions: NewQuizSubmissionRepo(db),
		Users:           NewUserRepo(db),
		Enrollments:     NewEnrollmentRepo(db),
		Reviews:         NewCourseReviewRepo(db),
		Tags:            NewTagRepo(db),
	}
}
