package handlers

import (
	"net/http"
	"strconv"

	"github.com/s/elearning/internal/apperr"
)

// PUT /lessons/submissions/{id}/grade?score=&feedback=
func (h *Handler) GradeSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	score, err := strconv.Atoi(q.Get("score"))
	if err != nil {
		h.fail(w, r, apperr.Validation("Invalid score", err))
		return
	}
	var feedback *string
	if q.Has("feedback") {
		f := q.Get("feedback")
		feedback = &f
	}
	out, err := h.Svc.Submissions.Grade(r.Context(), id, score, feedback)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
