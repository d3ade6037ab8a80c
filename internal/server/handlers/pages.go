package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
	"git.home.luguber.info/inful/mirview/internal/render"
)

// Bodies of the live server's error responses.
const (
	msgPageNotFound     = "Page not found"
	msgLoadingDirectory = "Error loading directory"
	msgLoadingPage      = "Error loading page"
)

// PageHandlers serves the overview and detail pages.
type PageHandlers struct {
	pipeline     *render.Pipeline
	errorAdapter *errors.HTTPErrorAdapter
}

// NewPageHandlers creates page handlers rendering through pipeline.
func NewPageHandlers(pipeline *render.Pipeline, adapter *errors.HTTPErrorAdapter) *PageHandlers {
	if adapter == nil {
		adapter = errors.NewHTTPErrorAdapter(nil)
	}
	return &PageHandlers{pipeline: pipeline, errorAdapter: adapter}
}

// HandleIndex renders the overview of every artifact group.
func (h *PageHandlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	html, err := h.pipeline.Index(r.Context())
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, msgLoadingDirectory).Build())
		return
	}
	writeHTML(w, html)
}

// HandlePage renders the detail page for /page/{number}.
func (h *PageHandlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "number")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		h.errorAdapter.WriteErrorResponse(w, r, errors.NotFoundError(msgPageNotFound).
			Warning().
			WithContext("number", raw).
			Build())
		return
	}

	html, err := h.pipeline.Page(r.Context(), id)
	switch {
	case err == nil:
		writeHTML(w, html)
	case stderrors.Is(err, render.ErrNotFound):
		h.errorAdapter.WriteErrorResponse(w, r, err)
	default:
		h.errorAdapter.WriteErrorResponse(w, r, errors.WrapError(err, errors.CategoryInternal, msgLoadingPage).
			WithContext("artifact_id", id).
			Build())
	}
}

func writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}
