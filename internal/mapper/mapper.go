// Package mapper converts between persisted models and their DTOs. Parent
// references are carried as ids only; resolving them is the services' job.
package mapper

import (
	"time"

	"github.com/s/elearning/internal/dto"
	"github.com/s/elearning/internal/models"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

func idPtr(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}

func idVal(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

func mapSlice[M any, D any](in []M, fn func(M) D) []D {
	out := make([]D, 0, len(in))
	for _, m := range in {
		out = append(out, fn(m))
	}
	return out
}

func CategoryToDTO(m models.Category) dto.Category {
	return dto.Category{ID: m.ID, Name: m.Name}
}

func CategoryToModel(d dto.Category) models.Category {
	return models.Category{ID: d.ID, Name: d.Name}
}

func CategoriesToDTO(in []models.Category) []dto.Category { return mapSlice(in, CategoryToDTO) }

func CourseToDTO(m models.Course) dto.Course {
	return dto.Course{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Duration:    m.Duration,
		CategoryID:  m.CategoryID,
		TeacherID:   m.TeacherID,
	}
}

func CourseToModel(d dto.Course) models.Course {
	return models.Course{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Duration:    d.Duration,
		CategoryID:  d.CategoryID,
		TeacherID:   d.TeacherID,
	}
}

func CoursesToDTO(in []models.Course) []dto.Course { return mapSlice(in, CourseToDTO) }

func ModuleToDTO(m models.Module) dto.Module {
	return dto.Module{
		ID:          m.ID,
		Title:       m.Title,
		OrderIndex:  m.OrderIndex,
		Description: m.Description,
		CourseID:    idPtr(m.CourseID),
	}
}

func ModuleToModel(d dto.Module) models.Module {
	return models.Module{
		ID:          d.ID,
		Title:       d.Title,
		OrderIndex:  d.OrderIndex,
		Description: d.Description,
		CourseID:    idVal(d.CourseID),
	}
}

func ModulesToDTO(in []models.Module) []dto.Module { return mapSlice(in, ModuleToDTO) }

func LessonToDTO(m models.Lesson) dto.Lesson {
	return dto.Lesson{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Content,
		VideoURL:   m.VideoURL,
		OrderIndex: m.OrderIndex,
		ModuleID:   idPtr(m.ModuleID),
	}
}

func LessonToModel(d dto.Lesson) models.Lesson {
	return models.Lesson{
		ID:         d.ID,
		Title:      d.Title,
		Content:    d.Content,
		VideoURL:   d.VideoURL,
		OrderIndex: d.OrderIndex,
		ModuleID:   idVal(d.ModuleID),
	}
}

func LessonsToDTO(in []models.Lesson) []dto.Lesson { return mapSlice(in, LessonToDTO) }

func AssignmentToDTO(m models.Assignment) dto.Assignment {
	return dto.Assignment{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		DueDate:     m.DueDate,
		MaxScore:    m.MaxScore,
		LessonID:    idPtr(m.LessonID),
	}
}

func AssignmentToModel(d dto.Assignment) models.Assignment {
	return models.Assignment{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		MaxScore:    d.MaxScore,
		LessonID:    idVal(d.LessonID),
	}
}

func AssignmentsToDTO(in []models.Assignment) []dto.Assignment {
	return mapSlice(in, AssignmentToDTO)
}

func SubmissionToDTO(m models.Submission) dto.Submission {
	return dto.Submission{
		ID:           m.ID,
		AssignmentID: idPtr(m.AssignmentID),
		StudentID:    idPtr(m.StudentID),
		SubmittedAt:  m.SubmittedAt,
		Content:      m.Content,
		Score:        m.Score,
		Feedback:     m.Feedback,
	}
}

func SubmissionToModel(d dto.Submission) models.Submission {
	return models.Submission{
		ID:           d.ID,
		AssignmentID: idVal(d.AssignmentID),
		StudentID:    idVal(d.StudentID),
		SubmittedAt:  d.SubmittedAt,
		Content:      d.Content,
		Score:        d.Score,
		Feedback:     d.Feedback,
	}
}

func SubmissionsToDTO(in []models.Submission) []dto.Submission {
	return mapSlice(in, SubmissionToDTO)
}

func QuizToDTO(m models.Quiz) dto.Quiz {
	return dto.Quiz{ID: m.ID, Title: m.Title, TimeLimit: m.TimeLimit, ModuleID: m.ModuleID}
}

func QuizToModel(d dto.Quiz) models.Quiz {
	return models.Quiz{ID: d.ID, Title: d.Title, TimeLimit: d.TimeLimit, ModuleID: d.ModuleID}
}

func QuizzesToDTO(in []models.Quiz) []dto.Quiz { return mapSlice(in, QuizToDTO) }

func QuestionToDTO(m models.Question) dto.Question {
	return dto.Question{ID: m.ID, Text: m.Text, Type: string(m.Type), QuizID: idPtr(m.QuizID)}
}

func QuestionToModel(d dto.Question) models.Question {
	return models.Question{
		ID:     d.ID,
		Text:   d.Text,
		Type:   models.QuestionType(d.Type),
		QuizID: idVal(d.QuizID),
	}
}

func QuestionsToDTO(in []models.Question) []dto.Question { return mapSlice(in, QuestionToDTO) }

func AnswerOptionToDTO(m models.AnswerOption) dto.AnswerOption {
	return dto.AnswerOption{
		ID:         m.ID,
		Text:       m.Text,
		IsCorrect:  m.IsCorrect,
		QuestionID: idPtr(m.QuestionID),
	}
}

func AnswerOptionToModel(d dto.AnswerOption) models.AnswerOption {
	return models.AnswerOption{
		ID:         d.ID,
		Text:       d.Text,
		IsCorrect:  d.IsCorrect,
		QuestionID: idVal(d.QuestionID),
	}
}

func AnswerOptionsToDTO(in []models.AnswerOption) []dto.AnswerOption {
	return mapSlice(in, AnswerOptionToDTO)
}

func QuizSubmissionToDTO(m models.QuizSubmission) dto.QuizSubmission {
	return dto.QuizSubmission{
		ID:        m.ID,
		QuizID:    idPtr(m.QuizID),
		StudentID: idPtr(m.StudentID),
		Score:     m.Score,
		TakenAt:   m.TakenAt,
	}
}

func QuizSubmissionToModel(d dto.QuizSubmission) models.QuizSubmission {
	return models.QuizSubmission{
		ID:        d.ID,
		QuizID:    idVal(d.QuizID),
		StudentID: idVal(d.StudentID),
		Score:     d.Score,
		TakenAt:   d.TakenAt,
	}
}

func QuizSubmissionsToDTO(in []models.QuizSubmission) []dto.QuizSubmission {
	return mapSlice(in, QuizSubmissionToDTO)
}

func UserToDTO(m models.User) dto.User {
	d := dto.User{ID: m.ID, Name: m.Name, Email: m.Email, Role: string(m.Role)}
	if m.Profile != nil {
		d.Profile = &dto.Profile{Bio: m.Profile.Bio, AvatarURL: m.Profile.AvatarURL}
	}
	return d
}

func UserToModel(d dto.User) models.User {
	m := models.User{ID: d.ID, Name: d.Name, Email: d.Email, Role: models.Role(d.Role)}
	if d.Profile != nil {
		m.Profile = &models.Profile{Bio: d.Profile.Bio, AvatarURL: d.Profile.AvatarURL, UserID: d.ID}
	}
	return m
}

func UsersToDTO(in []models.User) []dto.User { return mapSlice(in, UserToDTO) }

func EnrollmentToDTO(m models.Enrollment) dto.Enrollment {
	d := dto.Enrollment{
		ID:       m.ID,
		UserID:   m.UserID,
		CourseID: m.CourseID,
		Status:   string(m.Status),
	}
	if t := time.Time(m.EnrollDate); !t.IsZero() {
		d.EnrollDate = t.Format(dateLayout)
	}
	return d
}

func EnrollmentsToDTO(in []models.Enrollment) []dto.Enrollment {
	return mapSlice(in, EnrollmentToDTO)
}

// Today is the current UTC calendar day as stored on enrollments.
func Today() datatypes.Date {
	now := time.Now().UTC()
	return datatypes.Date(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
}

func CourseReviewToDTO(m models.CourseReview) dto.CourseReview {
	return dto.CourseReview{
		ID:       m.ID,
		UserID:   idPtr(m.UserID),
		CourseID: idPtr(m.CourseID),
		Rating:   m.Rating,
		Review:   m.Review,
	}
}

func CourseReviewToModel(d dto.CourseReview) models.CourseReview {
	return models.CourseReview{
		ID:       d.ID,
		UserID:   idVal(d.UserID),
		CourseID: idVal(d.CourseID),
		Rating:   d.Rating,
		Review:   d.Review,
	}
}

func CourseReviewsToDTO(in []models.CourseReview) []dto.CourseReview {
	return mapSlice(in, CourseReviewToDTO)
}

func TagToDTO(m models.Tag) dto.Tag { return dto.Tag{ID: m.ID, Name: m.Name} }

func TagToModel(d dto.Tag) models.Tag { return models.Tag{ID: d.ID, Name: d.Name} }

func TagsToDTO(in []models.Tag) []dto.Tag { return mapSlice(in, TagToDTO) }

// CourseStructureToDTO expects Modules and Modules.Lessons to be preloaded.
func CourseStructureToDTO(m models.Course) dto.CourseStructure {
	out := dto.CourseStructure{
		Course:  CourseToDTO(m),
		Modules: make([]dto.ModuleStructure, 0, len(m.Modules)),
	}
	for _, mod := range m.Modules {
		out.Modules = append(out.Modules, dto.ModuleStructure{
			Module:  ModuleToDTO(mod),
			Lessons: LessonsToDTO(mod.Lessons),
		})
	}
	return out
}
