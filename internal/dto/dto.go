// Package dto holds the JSON shapes exchanged with HTTP clients. Parents are
// referenced by id only and child collections are never embedded, except in
// the explicit structure views.
package dto

import "time"

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Course struct {
	ID          uint   `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Duration    int    `json:"duration" validate:"gte=0"`
	CategoryID  *uint  `json:"categoryId"`
	TeacherID   *uint  `json:"teacherId"`
}

type Module struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	OrderIndex  int    `json:"orderIndex" validate:"gte=0"`
	Description string `json:"description"`
	CourseID    *uint  `json:"courseId"`
}

type Lesson struct {
	ID         uint   `json:"id"`
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content"`
	VideoURL   string `json:"videoUrl"`
	OrderIndex *int   `json:"orderIndex" validate:"omitempty,gte=0"`
	ModuleID   *uint  `json:"moduleId"`
}

type Assignment struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	MaxScore    *int       `json:"maxScore" validate:"omitempty,gte=0"`
	LessonID    *uint      `json:"lessonId"`
}

type Submission struct {
	ID           uint      `json:"id"`
	AssignmentID *uint     `json:"assignmentId"`
	StudentID    *uint     `json:"studentId"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Content      string    `json:"content"`
	Score        *int      `json:"score"`
	Feedback     *string   `json:"feedback"`
}

type Quiz struct {
	ID        uint   `json:"id"`
	Title     string `json:"title" validate:"required"`
	TimeLimit *int   `json:"timeLimit" validate:"omitempty,gte=0"`
	ModuleID  *uint  `json:"moduleId"`
}

type Question struct {
	ID     uint   `json:"id"`
	Text   string `json:"text"`
	Type   string `json:"type" validate:"required,oneof=SINGLE_CHOICE MULTIPLE_CHOICE"`
	QuizID *uint  `json:"quizId"`
}

type AnswerOption struct {
	ID         uint   `json:"id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"isCorrect"`
	QuestionID *uint  `json:"questionId"`
}

type QuizSubmission struct {
	ID        uint      `json:"id"`
	QuizID    *uint     `json:"quizId"`
	StudentID *uint     `json:"studentId"`
	Score     *float64  `json:"score"`
	TakenAt   time.Time `json:"takenAt"`
}

type Profile struct {
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
}

type User struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email" validate:"required"`
	Role    string   `json:"role" validate:"required,oneof=STUDENT TEACHER ADMIN"`
	Profile *Profile `json:"profile"`
}

// Enrollment dates are calendar days (YYYY-MM-DD).
type Enrollment struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"userId"`
	CourseID   uint   `json:"courseId"`
	EnrollDate string `json:"enrollDate"`
	Status     string `json:"status"`
}

type CourseReview struct {
	ID       uint   `json:"id"`
	UserID   *uint  `json:"userId"`
	CourseID *uint  `json:"courseId"`
	Rating   int    `json:"rating"`
	Review   string `json:"review"`
}

type Tag struct {
	ID   uint   `json:"id"`
	Name string `json:"name" validate:"required"`
}
