package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/s/elearning/internal/apperr"
)

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, message, code string, status int) {
	writeJSON(w, status, errorEnvelope{Error: apiError{Message: message, Code: code}})
}

// ok writes an empty 200, used by deletes.
func ok(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// fail maps err to its status. Internal errors are logged and their text is
// not sent to the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind != apperr.KindInternal {
		jsonError(w, appErr.Error(), appErr.Code, appErr.Kind.Status())
		return
	}
	h.Log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	jsonError(w, "internal server error", "internal", http.StatusInternalServerError)
}

// decode reads a JSON body into dst and runs the struct validation rules.
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("Invalid JSON payload", err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return apperr.Validation(validationMessage(err), err)
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "gte":
			parts = append(parts, fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(parts, "; ")
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(fmt.Sprintf("Invalid %s", name), err)
	}
	return uint(id), nil
}

func pathID(r *http.Request, name string) (uint, error) {
	return parseID(mux.Vars(r)[name], name)
}

func queryID(r *http.Request, name string) (uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apperr.Validation(fmt.Sprintf("%s is required", name), nil)
	}
	return parseID(raw, name)
}
