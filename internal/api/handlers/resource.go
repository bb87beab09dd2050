package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"shipment-tracking/internal/repository"
	"shipment-tracking/internal/transfer"
)

// ResourceHandler serves list, create, retrieve, update and delete for one entity.
type ResourceHandler[T any] struct {
	repo   repository.Repository[T]
	schema transfer.Schema[T]
	path   string
	logger *zap.Logger
}

func NewResourceHandler[T any](repo repository.Repository[T], schema transfer.Schema[T], path string, logger *zap.Logger) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		repo:   repo,
		schema: schema,
		path:   path,
		logger: logger.With(zap.String("entity", schema.Entity)),
	}
}

func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.GetAll(r.Context())
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	out, err := h.schema.EncodeAll(rows)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var v T
	if err := h.schema.Decode(body, &v, false); err != nil {
		h.writeFailure(w, r, err)
		return
	}

	if err := h.repo.Create(r.Context(), &v); err != nil {
		h.writeFailure(w, r, err)
		return
	}

	out, err := h.schema.Encode(&v)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	if id, ok := h.idOf(out); ok {
		w.Header().Set("Location", h.path+id+"/")
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	v, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, v)
}

// Update replaces the row; every required field must be sent.
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// PartialUpdate changes only the fields present in the body.
func (h *ResourceHandler[T]) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *ResourceHandler[T]) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	v, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	if err := h.schema.Decode(body, v, partial); err != nil {
		h.writeFailure(w, r, err)
		return
	}

	if err := h.repo.Update(r.Context(), v); err != nil {
		h.writeFailure(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, v)
}

func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ResourceHandler[T]) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", fmt.Sprintf("invalid %s id", h.schema.Entity), nil)
		return 0, false
	}
	return id, true
}

func (h *ResourceHandler[T]) idOf(obj []byte) (string, bool) {
	var head struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(obj, &head); err != nil || head.ID == 0 {
		return "", false
	}
	return strconv.FormatInt(head.ID, 10), true
}

func (h *ResourceHandler[T]) respond(w http.ResponseWriter, r *http.Request, status int, v *T) {
	out, err := h.schema.Encode(v)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, status, out)
}

func (h *ResourceHandler[T]) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *transfer.ValidationError
		ferr *repository.FieldError
	)

	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "invalid_input", verr.Error(), verr.Fields)
	case errors.As(err, &ferr):
		writeError(w, http.StatusBadRequest, "invalid_input", ferr.Error(), map[string]string{ferr.Field: ferr.Message})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", h.schema.Entity+" not found", nil)
	case errors.Is(err, repository.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	default:
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to process "+h.schema.Entity, nil)
	}
}
