package handlers

import (
	"net/http"

	"github.com/s/elearning/internal/dto"
)

// ==========================================
// GET /courses/all
// GET /courses/list_by_category?category_id=
// POST /courses/create
// GET|PUT|DELETE /courses/{id}
// ==========================================

func (h *Handler) GetCourses(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.Courses.GetAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ListCoursesByCategory returns every course when category_id is absent.
func (h *Handler) ListCoursesByCategory(w http.ResponseWriter, r *http.Request) {
	var categoryID *uint
	if r.URL.Query().Get("category_id") != "" {
		id, err := queryID(r, "category_id")
		if err != nil {
			h.fail(w, r, err)
			return
		}
		categoryID = &id
	}
	out, err := h.Svc.Courses.GetList(r.Context(), categoryID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var in dto.Course
	if err := h.decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Courses.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Courses.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in dto.Course
	if err := h.decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Courses.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Svc.Courses.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w)
}

// ==========================================
// GET /courses/{id}/structure
// PUT /courses/{id}/modules
// ==========================================

// GetCourseStructure - курс вместе с модулями и уроками
func (h *Handler) GetCourseStructure(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Courses.GetStructure(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// RetainCourseModules keeps the listed modules and deletes the rest.
func (h *Handler) RetainCourseModules(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in dto.RetainModules
	if err := h.decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Courses.RetainModules(r.Context(), id, in.ModuleIDs)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ==========================================
// GET /courses/users-for-course?courseId=
// ==========================================

func (h *Handler) GetUsersForCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := queryID(r, "courseId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Courses.GetUsersForCourse(r.Context(), courseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
