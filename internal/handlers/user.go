package handlers

import (
	"net/http"

	"github.com/s/elearning/internal/dto"
)

// ==========================================
// GET /user?id=
// GET /users
// POST /user/create
// PUT|DELETE /user/{id}
// ==========================================

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := queryID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Users.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in dto.User
	if err := h.decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Users.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ==========================================
// GET /user/courses-list?userId=
// GET /user/enrollments?userId=
// POST /user/create-enrollment?userId=&courseId=
// ==========================================

func (h *Handler) GetCoursesForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "userId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Users.GetCoursesForUser(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "userId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	courseID, err := queryID(r, "courseId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Enrollments.Create(r.Context(), userID, courseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetEnrollmentsForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "userId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Enrollments.GetByUserID(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
