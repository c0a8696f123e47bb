// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/shares/internal/domain/shares"
	"github.com/okian/shares/internal/presenter"
)

// SharesHandler serves the resolved summary as JSON.
type SharesHandler struct {
	deps Dependencies
}

// NewSharesHandler creates a new shares handler.
func NewSharesHandler(deps Dependencies) *SharesHandler {
	return &SharesHandler{deps: deps}
}

// sharesResponse is the body of GET /api/shares. Failure causes are logged,
// never returned; a missing result means nothing could be resolved.
type sharesResponse struct {
	RequestID string            `json:"request_id"`
	CIK       string            `json:"cik"`
	Fallback  bool              `json:"fallback"`
	Title     string            `json:"title"`
	Result    *shares.Result    `json:"result,omitempty"`
	Display   map[string]string `json:"display,omitempty"`
}

// HandleGetShares handles GET /api/shares?CIK=XXXXXXXXXX requests.
func (h *SharesHandler) HandleGetShares(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}

	page := presenter.NewPage()
	rep := h.deps.Run(r.Context(), r.URL.Query().Get(QueryParam), page)

	resp := sharesResponse{
		RequestID: rep.RequestID,
		CIK:       rep.Primary.CIK,
		Fallback:  rep.Fallback != nil,
		Title:     page.Title,
		Result:    rep.Final(),
	}
	if rep.Fallback != nil {
		resp.CIK = rep.Fallback.CIK
	}
	if page.Rendered {
		resp.Display = make(map[string]string, len(presenter.Fields))
		for _, f := range presenter.Fields {
			resp.Display[string(f)] = page.Text(f)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
