package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// GET /tags/name/{name}
func (h *Handler) GetTagByName(w http.ResponseWriter, r *http.Request) {
	out, err := h.Svc.Tags.GetByName(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /courses/{id}/tags/{tagId}
func (h *Handler) AttachTag(w http.ResponseWriter, r *http.Request) {
	h.changeCourseTag(w, r, true)
}

// DELETE /courses/{id}/tags/{tagId}
func (h *Handler) DetachTag(w http.ResponseWriter, r *http.Request) {
	h.changeCourseTag(w, r, false)
}

func (h *Handler) changeCourseTag(w http.ResponseWriter, r *http.Request, attach bool) {
	courseID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	tagID, err := pathID(r, "tagId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	fn := h.Svc.Tags.DetachFromCourse
	if attach {
		fn = h.Svc.Tags.AttachToCourse
	}
	out, err := fn(r.Context(), courseID, tagID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
