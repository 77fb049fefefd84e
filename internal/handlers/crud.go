package handlers

import (
	"context"
	"net/http"
)

// Helpers for the plain CRUD endpoints of the lesson and quiz families.

func listAll[T any](h *Handler, fn func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := fn(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// byPathID calls fn with the numeric path variable name.
func byPathID[T any](h *Handler, name string, fn func(context.Context, uint) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, name)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		out, err := fn(r.Context(), id)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func create[T any](h *Handler, fn func(context.Context, T) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in T
		if err := h.decode(r, &in); err != nil {
			h.fail(w, r, err)
			return
		}
		out, err := fn(r.Context(), in)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func update[T any](h *Handler, fn func(context.Context, uint, T) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.fail(w, r, err)
			return
		}
		var in T
		if err := h.decode(r, &in); err != nil {
			h.fail(w, r, err)
			return
		}
		out, err := fn(r.Context(), id, in)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func remove(h *Handler, fn func(context.Context, uint) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if err := fn(r.Context(), id); err != nil {
			h.fail(w, r, err)
			return
		}
		ok(w)
	}
}
