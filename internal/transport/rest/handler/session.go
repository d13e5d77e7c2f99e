package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"madurez42001/internal/model"
	"madurez42001/internal/session"
)

// SessionHandler handles assessment session endpoints
type SessionHandler struct {
	sessions *session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// SetResponseRequest is the request body for recording a response
type SetResponseRequest struct {
	QuestionID string `json:"questionId"`
	Value      int    `json:"value"`
}

type sessionView struct {
	*model.Session
	Progress float64 `json:"progress"`
}

func (h *SessionHandler) view(s *model.Session) sessionView {
	return sessionView{Session: s, Progress: h.sessions.Progress(s)}
}

// Start handles POST /v1/evaluaciones
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Start(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, h.view(s))
}

// Get handles GET /v1/evaluaciones/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

// SetResponse handles PUT /v1/evaluaciones/{id}/respuestas
func (h *SessionHandler) SetResponse(w http.ResponseWriter, r *http.Request) {
	var req SetResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.sessions.SetResponse(r.Context(), mux.Vars(r)["id"], req.QuestionID, req.Value)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

// Next handles POST /v1/evaluaciones/{id}/siguiente. Completing the last
// section returns the results URL carrying the transfer-encoded responses.
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	s, query, err := h.sessions.Next(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeSessionError(w, err)
		return
	}
	if s.Completed {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"completed":   true,
			"resultsPath": "/v1/resultados?" + query,
		})
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

// Previous handles POST /v1/evaluaciones/{id}/anterior
func (h *SessionHandler) Previous(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Previous(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(s))
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "evaluacion no encontrada")
	case errors.Is(err, session.ErrCompleted),
		errors.Is(err, session.ErrSectionIncomplete),
		errors.Is(err, session.ErrAtFirstSection):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrUnknownQuestion),
		errors.Is(err, session.ErrValueOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
