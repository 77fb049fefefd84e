package handlers

import (
	"net/http"

	"github.com/s/elearning/internal/dto"
)

// ==========================================
// GET /modules/get-list?course_id=
// POST /modules/create
// GET|PUT|DELETE /modules/{id}
// ==========================================

func (h *Handler) GetModules(w http.ResponseWriter, r *http.Request) {
	courseID, err := queryID(r, "course_id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Modules.GetByCourseID(r.Context(), courseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateModule(w http.ResponseWriter, r *http.Request) {
	var in dto.Module
	if err := h.decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Modules.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetModule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Modules.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in dto.Module
	if err := h.decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Modules.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Svc.Modules.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w)
}
