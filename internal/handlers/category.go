package handlers

import (
	"net/http"

	"github.com/s/elearning/internal/dto"
)

// ==========================================
// GET /categories/all
// POST /categories/create
// GET|PUT|DELETE /categories/{id}
// ==========================================

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.Categories.GetAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in dto.Category
	if err := h.decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Categories.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Categories.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in dto.Category
	if err := h.decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Categories.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Svc.Categories.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	ok(w)
}
