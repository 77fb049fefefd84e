package handlers

import (
	"net/http"

	"github.com/s/elearning/internal/dto"
)

// PUT /quizzes/{quizId}/questions
func (h *Handler) RetainQuizQuestions(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r, "quizId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in dto.RetainQuestions
	if err := h.decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := h.Svc.Quizzes.RetainQuestions(r.Context(), quizID, in.QuestionIDs)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
