package handlers

import (
	"net/http"

	"github.com/s/elearning/internal/dto"
)

// --- ОТЗЫВЫ ---

// POST /courses/create-review
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var in dto.CourseReview
	if err := h.decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Reviews.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /courses/reviews-for-course?courseId=
func (h *Handler) GetReviewsForCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := queryID(r, "courseId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Reviews.GetByCourseID(r.Context(), courseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /user/reviews-for-user?userId=
func (h *Handler) GetReviewsForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "userId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Reviews.GetByUserID(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
