package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

const idPath = "{id:[0-9]+}"

// Routes builds the router. The same table is served at the root and under
// /api.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	h.Register(r.PathPrefix("/api").Subrouter())
	h.Register(r)
	return r
}

func (h *Handler) Register(r *mux.Router) {
	s := h.Svc

	// --- Категории ---
	r.HandleFunc("/categories/all", h.GetCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories/create", h.CreateCategory).Methods(http.MethodPost)
	r.HandleFunc("/categories/"+idPath, h.GetCategory).Methods(http.MethodGet)
	r.HandleFunc("/categories/"+idPath, h.UpdateCategory).Methods(http.MethodPut)
	r.HandleFunc("/categories/"+idPath, h.DeleteCategory).Methods(http.MethodDelete)

	// --- Курсы ---
	r.HandleFunc("/courses/all", h.GetCourses).Methods(http.MethodGet)
	r.HandleFunc("/courses/list_by_category", h.ListCoursesByCategory).Methods(http.MethodGet)
	r.HandleFunc("/courses/create", h.CreateCourse).Methods(http.MethodPost)
	r.HandleFunc("/courses/users-for-course", h.GetUsersForCourse).Methods(http.MethodGet)
	r.HandleFunc("/courses/reviews-for-course", h.GetReviewsForCourse).Methods(http.MethodGet)
	r.HandleFunc("/courses/create-review", h.CreateReview).Methods(http.MethodPost)
	r.HandleFunc("/courses/"+idPath, h.GetCourse).Methods(http.MethodGet)
	r.HandleFunc("/courses/"+idPath, h.UpdateCourse).Methods(http.MethodPut)
	r.HandleFunc("/courses/"+idPath, h.DeleteCourse).Methods(http.MethodDelete)
	r.HandleFunc("/courses/"+idPath+"/structure", h.GetCourseStructure).Methods(http.MethodGet)
	r.HandleFunc("/courses/"+idPath+"/modules", h.RetainCourseModules).Methods(http.MethodPut)
	r.HandleFunc("/courses/"+idPath+"/tags", byPathID(h, "id", s.Tags.GetByCourseID)).Methods(http.MethodGet)
	r.HandleFunc("/courses/"+idPath+"/tags/{tagId:[0-9]+}", h.AttachTag).Methods(http.MethodPost)
	r.HandleFunc("/courses/"+idPath+"/tags/{tagId:[0-9]+}", h.DetachTag).Methods(http.MethodDelete)

	// --- Модули ---
	r.HandleFunc("/modules/get-list", h.GetModules).Methods(http.MethodGet)
	r.HandleFunc("/modules/create", h.CreateModule).Methods(http.MethodPost)
	r.HandleFunc("/modules/"+idPath, h.GetModule).Methods(http.MethodGet)
	r.HandleFunc("/modules/"+idPath, h.UpdateModule).Methods(http.MethodPut)
	r.HandleFunc("/modules/"+idPath, h.DeleteModule).Methods(http.MethodDelete)

	// --- Уроки, задания, ответы ---
	r.HandleFunc("/lessons", listAll(h, s.Lessons.GetAll)).Methods(http.MethodGet)
	r.HandleFunc("/lessons", create(h, s.Lessons.Create)).Methods(http.MethodPost)
	r.HandleFunc("/lessons/"+idPath, byPathID(h, "id", s.Lessons.GetByID)).Methods(http.MethodGet)
	r.HandleFunc("/lessons/"+idPath, update(h, s.Lessons.Update)).Methods(http.MethodPut)
	r.HandleFunc("/lessons/"+idPath, remove(h, s.Lessons.Delete)).Methods(http.MethodDelete)
	r.HandleFunc("/lessons/module/{moduleId:[0-9]+}", byPathID(h, "moduleId", s.Lessons.GetByModuleID)).Methods(http.MethodGet)
	r.HandleFunc("/lessons/{lessonId:[0-9]+}/assignments", byPathID(h, "lessonId", s.Assignments.GetByLessonID)).Methods(http.MethodGet)

	r.HandleFunc("/lessons/assignments", listAll(h, s.Assignments.GetAll)).Methods(http.MethodGet)
	r.HandleFunc("/lessons/assignments", create(h, s.Assignments.Create)).Methods(http.MethodPost)
	r.HandleFunc("/lessons/assignments/"+idPath, byPathID(h, "id", s.Assignments.GetByID)).Methods(http.MethodGet)
	r.HandleFunc("/lessons/assignments/"+idPath, update(h, s.Assignments.Update)).Methods(http.MethodPut)
	r.HandleFunc("/lessons/assignments/"+idPath, remove(h, s.Assignments.Delete)).Methods(http.MethodDelete)
	r.HandleFunc("/lessons/assignments/{assignmentId:[0-9]+}/submissions", byPathID(h, "assignmentId", s.Submissions.GetByAssignmentID)).Methods(http.MethodGet)

	r.HandleFunc("/lessons/submissions", listAll(h, s.Submissions.GetAll)).Methods(http.MethodGet)
	r.HandleFunc("/lessons/submissions", create(h, s.Submissions.Create)).Methods(http.MethodPost)
	r.HandleFunc("/lessons/submissions/"+idPath, byPathID(h, "id", s.Submissions.GetByID)).Methods(http.MethodGet)
	r.HandleFunc("/lessons/submissions/"+idPath, update(h, s.Submissions.Update)).Methods(http.MethodPut)
	r.HandleFunc("/lessons/submissions/"+idPath, remove(h, s.Submissions.Delete)).Methods(http.MethodDelete)
	r.HandleFunc("/lessons/submissions/"+idPath+"/grade", h.GradeSubmission).Methods(http.MethodPut)
	r.HandleFunc("/lessons/submissions/student/{studentId:[0-9]+}", byPathID(h, "studentId", s.Submissions.GetByStudentID)).Methods(http.MethodGet)

	// --- Тесты: вопросы, варианты, попытки ---
	r.HandleFunc("/quizzes", listAll(h, s.Quizzes.GetAll)).Methods(http.MethodGet)
	r.HandleFunc("/quizzes", create(h, s.Quizzes.Create)).Methods(http.MethodPost)
	r.HandleFunc("/quizzes/"+idPath, byPathID(h, "id", s.Quizzes.GetByID)).Methods(http.MethodGet)
	r.HandleFunc("/quizzes/"+idPath, update(h, s.Quizzes.Update)).Methods(http.MethodPut)
	r.HandleFunc("/quizzes/"+idPath, remove(h, s.Quizzes.Delete)).Methods(http.MethodDelete)
	r.HandleFunc("/quizzes/module/{moduleId:[0-9]+}", byPathID(h, "moduleId", s.Quizzes.GetByModuleID)).Methods(http.MethodGet)
	r.HandleFunc("/quizzes/{quizId:[0-9]+}/questions", byPathID(h, "quizId", s.Questions.GetByQuizID)).Methods(http.MethodGet)
	r.HandleFunc("/quizzes/{quizId:[0-9]+}/questions", h.RetainQuizQuestions).Methods(http.MethodPut)
	r.HandleFunc("/quizzes/{quizId:[0-9]+}/submissions", byPathID(h, "quizId", s.QuizSubmissions.GetByQuizID)).Methods(http.MethodGet)

	r.HandleFunc("/quizzes/questions", listAll(h, s.Questions.GetAll)).Methods(http.MethodGet)
	r.HandleFunc("/quizzes/questions", create(h, s.Questions.Create)).Methods(http.MethodPost)
	r.HandleFunc("/quizzes/questions/"+idPath, byPathID(h, "id", s.Questions.GetByID)).Methods(http.MethodGet)
	r.HandleFunc("/quizzes/questions/"+idPath, update(h, s.Questions.Update)).Methods(http.MethodPut)
	r.HandleFunc("/quizzes/questions/"+idPath, remove(h, s.Questions.Delete)).Methods(http.MethodDelete)
	r.HandleFunc("/quizzes/questions/{questionId:[0-9]+}/options", byPathID(h, "questionId", s.AnswerOptions.GetByQuestionID)).Methods(http.MethodGet)

	r.HandleFunc("/quizzes/options", listAll(h, s.AnswerOptions.GetAll)).Methods(http.MethodGet)
	r.HandleFunc("/quizzes/options", create(h, s.AnswerOptions.Create)).Methods(http.MethodPost)
	r.HandleFunc("/quizzes/options/"+idPath, byPathID(h, "id", s.AnswerOptions.GetByID)).Methods(http.MethodGet)
	r.HandleFunc("/quizzes/options/"+idPath, update(h, s.AnswerOptions.Update)).Methods(http.MethodPut)
	r.HandleFunc("/quizzes/options/"+idPath, remove(h, s.AnswerOptions.Delete)).Methods(http.MethodDelete)

	r.HandleFunc("/quizzes/submissions", listAll(h, s.QuizSubmissions.GetAll)).Methods(http.MethodGet)
	r.HandleFunc("/quizzes/submissions", create(h, s.QuizSubmissions.Create)).Methods(http.MethodPost)
	r.HandleFunc("/quizzes/submissions/"+idPath, byPathID(h, "id", s.QuizSubmissions.GetByID)).Methods(http.MethodGet)
	r.HandleFunc("/quizzes/submissions/"+idPath, update(h, s.QuizSubmissions.Update)).Methods(http.MethodPut)
	r.HandleFunc("/quizzes/submissions/"+idPath, remove(h, s.QuizSubmissions.Delete)).Methods(http.MethodDelete)
	r.HandleFunc("/quizzes/submissions/student/{studentId:[0-9]+}", byPathID(h, "studentId", s.QuizSubmissions.GetByStudentID)).Methods(http.MethodGet)

	// --- Теги ---
	r.HandleFunc("/tags", listAll(h, s.Tags.GetAll)).Methods(http.MethodGet)
	r.HandleFunc("/tags", create(h, s.Tags.Create)).Methods(http.MethodPost)
	r.HandleFunc("/tags/"+idPath, byPathID(h, "id", s.Tags.GetByID)).Methods(http.MethodGet)
	r.HandleFunc("/tags/"+idPath, update(h, s.Tags.Update)).Methods(http.MethodPut)
	r.HandleFunc("/tags/"+idPath, remove(h, s.Tags.Delete)).Methods(http.MethodDelete)
	r.HandleFunc("/tags/name/{name}", h.GetTagByName).Methods(http.MethodGet)

	// --- Пользователи ---
	r.HandleFunc("/user", h.GetUser).Methods(http.MethodGet)
	r.HandleFunc("/users", listAll(h, s.Users.GetAll)).Methods(http.MethodGet)
	r.HandleFunc("/user/create", h.CreateUser).Methods(http.MethodPost)
	r.HandleFunc("/user/courses-list", h.GetCoursesForUser).Methods(http.MethodGet)
	r.HandleFunc("/user/reviews-for-user", h.GetReviewsForUser).Methods(http.MethodGet)
	r.HandleFunc("/user/enrollments", h.GetEnrollmentsForUser).Methods(http.MethodGet)
	r.HandleFunc("/user/create-enrollment", h.CreateEnrollment).Methods(http.MethodPost)
	r.HandleFunc("/user/"+idPath, update(h, s.Users.Update)).Methods(http.MethodPut)
	r.HandleFunc("/user/"+idPath, remove(h, s.Users.Delete)).Methods(http.MethodDelete)
}
