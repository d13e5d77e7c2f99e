package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"madurez42001/internal/export"
	"madurez42001/internal/report"
	"madurez42001/internal/share"
	"madurez42001/internal/transfer"
)

// ResultsHandler handles the results stage: scoring, export and share links
type ResultsHandler struct {
	reports *report.Service
	exports *export.Service
	shares  *share.Service
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(reports *report.Service, exports *export.Service, shares *share.Service) *ResultsHandler {
	return &ResultsHandler{
		reports: reports,
		exports: exports,
		shares:  shares,
	}
}

// Get handles GET /v1/resultados. The responses arrive as query parameters;
// unknown keys and malformed values are skipped, never an error.
func (h *ResultsHandler) Get(w http.ResponseWriter, r *http.Request) {
	responses := transfer.Decode(r.URL.Query())
	writeJSON(w, http.StatusOK, h.reports.Build(responses))
}

// Export handles GET /v1/resultados/export and streams the PDF artifact.
func (h *ResultsHandler) Export(w http.ResponseWriter, r *http.Request) {
	responses := transfer.Decode(r.URL.Query())
	snap := h.reports.Build(responses)

	artifact, err := h.exports.Export(snap)
	if err != nil {
		if errors.Is(err, export.ErrBusy) {
			writeError(w, http.StatusConflict, "ya hay una exportación en curso")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(artifact.Data)
}

// Share handles POST /v1/resultados/compartir. The responses to share are
// taken from the query parameters, same as the results view.
func (h *ResultsHandler) Share(w http.ResponseWriter, r *http.Request) {
	responses := transfer.Decode(r.URL.Query())
	if len(responses) == 0 {
		writeError(w, http.StatusBadRequest, "sin respuestas para compartir")
		return
	}

	code, err := h.shares.Create(r.Context(), responses)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"code": code,
		"path": "/r/" + code,
	})
}

// ResolveShare handles GET /r/{code}: redirect to the full results URL.
func (h *ResultsHandler) ResolveShare(w http.ResponseWriter, r *http.Request) {
	rawQuery, err := h.shares.Resolve(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		if errors.Is(err, share.ErrNotFound) {
			writeError(w, http.StatusNotFound, "enlace no encontrado o expirado")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.Redirect(w, r, "/v1/resultados?"+rawQuery, http.StatusFound)
}
