// Package site serves the server-rendered shares page.
package site

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/okian/shares/internal/adapters/http/api"
	"github.com/okian/shares/internal/presenter"
	"github.com/okian/shares/pkg/logger"
)

// Error constants
var (
	ErrRender = errors.New("page render failed")
)

// Register attaches the page route to mux.
func Register(_ context.Context, mux *http.ServeMux, deps api.Dependencies, lang string) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", api.MetricsMiddleware(NewRootHandler(deps, lang).HandleRoot, "page"))
}

// RootHandler renders the page for GET /?CIK=XXXXXXXXXX.
type RootHandler struct {
	deps Dependencies
	lang string
}

// Dependencies is what the page needs from the orchestrator.
type Dependencies = api.Dependencies

// NewRootHandler creates a new root handler. lang is written to the html element.
func NewRootHandler(deps Dependencies, lang string) *RootHandler {
	if lang == "" {
		lang = presenter.DefaultLocale
	}
	return &RootHandler{deps: deps, lang: lang}
}

// view is the template model.
type view struct {
	Lang       string
	RequestID  string
	CIK        string
	Title      string
	EntityName string
	MaxValue   string
	MaxYear    string
	MinValue   string
	MinYear    string
}

// HandleRoot runs one page load and renders whatever the sink ends up holding.
// Resolution failures leave the placeholders in place and still answer 200.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
	case http.MethodHead:
		// Headers only, without a page load.
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		return
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	page := presenter.NewPage()
	rep := h.deps.Run(r.Context(), r.URL.Query().Get(api.QueryParam), page)

	cik := rep.Primary.CIK
	if rep.Fallback != nil && rep.Fallback.OK() {
		cik = rep.Fallback.CIK
	}
	v := view{
		Lang:       h.lang,
		RequestID:  rep.RequestID,
		CIK:        cik,
		Title:      page.Title,
		EntityName: page.Text(presenter.EntityName),
		MaxValue:   page.Text(presenter.MaxValue),
		MaxYear:    page.Text(presenter.MaxYear),
		MinValue:   page.Text(presenter.MinValue),
		MinYear:    page.Text(presenter.MinYear),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, v); err != nil {
		logger.Get().Error(r.Context(), "page render failed",
			logger.String("request_id", rep.RequestID),
			logger.Error(errors.Join(ErrRender, err)),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
