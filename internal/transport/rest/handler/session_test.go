package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"madurez42001/internal/catalog"
	"madurez42001/internal/model"
	"madurez42001/internal/session"
)

type memSessionCache struct {
	sessions map[string]*model.Session
}

func (m *memSessionCache) Set(_ context.Context, s *model.Session) error {
	copied := *s
	copied.Responses = make(map[string]int, len(s.Responses))
	for k, v := range s.Responses {
		copied.Responses[k] = v
	}
	m.sessions[s.ID] = &copied
	return nil
}

func (m *memSessionCache) Get(_ context.Context, id string) (*model.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	copied.Responses = make(map[string]int, len(s.Responses))
	for k, v := range s.Responses {
		copied.Responses[k] = v
	}
	return &copied, nil
}

func (m *memSessionCache) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func newSessionRouter(t *testing.T) http.Handler {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	svc := session.NewService(cat, &memSessionCache{sessions: make(map[string]*model.Session)})
	h := NewSessionHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/v1/evaluaciones", h.Start).Methods("POST")
	r.HandleFunc("/v1/evaluaciones/{id}", h.Get).Methods("GET")
	r.HandleFunc("/v1/evaluaciones/{id}/respuestas", h.SetResponse).Methods("PUT")
	r.HandleFunc("/v1/evaluaciones/{id}/siguiente", h.Next).Methods("POST")
	r.HandleFunc("/v1/evaluaciones/{id}/anterior", h.Previous).Methods("POST")
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	out := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	router := newSessionRouter(t)

	rec, created := doJSON(t, router, http.MethodPost, "/v1/evaluaciones", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := created["id"].(string)
	require.NotEmpty(t, id)

	// Next without answers is refused.
	rec, _ = doJSON(t, router, http.MethodPost, "/v1/evaluaciones/"+id+"/siguiente", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Unknown question id is a client error.
	rec, _ = doJSON(t, router, http.MethodPut, "/v1/evaluaciones/"+id+"/respuestas",
		`{"questionId":"foo_1","value":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Answer the first section and advance.
	for _, q := range []string{"contexto_1", "contexto_2", "contexto_3", "contexto_4"} {
		rec, _ = doJSON(t, router, http.MethodPut, "/v1/evaluaciones/"+id+"/respuestas",
			`{"questionId":"`+q+`","value":3}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec, state := doJSON(t, router, http.MethodPost, "/v1/evaluaciones/"+id+"/siguiente", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), state["currentSection"])
	assert.InDelta(t, 4.0/26.0, state["progress"].(float64), 1e-9)

	rec, state = doJSON(t, router, http.MethodPost, "/v1/evaluaciones/"+id+"/anterior", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), state["currentSection"])
}

func TestSessionCompletionReturnsResultsPath(t *testing.T) {
	router := newSessionRouter(t)
	cat, err := catalog.Load()
	require.NoError(t, err)

	rec, created := doJSON(t, router, http.MethodPost, "/v1/evaluaciones", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := created["id"].(string)

	var last map[string]interface{}
	for _, section := range cat.Sections() {
		for _, q := range section.Questions {
			rec, _ = doJSON(t, router, http.MethodPut, "/v1/evaluaciones/"+id+"/respuestas",
				`{"questionId":"`+q.ID+`","value":5}`)
			require.Equal(t, http.StatusOK, rec.Code)
		}
		rec, last = doJSON(t, router, http.MethodPost, "/v1/evaluaciones/"+id+"/siguiente", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, true, last["completed"])
	path := last["resultsPath"].(string)
	assert.True(t, strings.HasPrefix(path, "/v1/resultados?"))
	assert.Contains(t, path, "mejora_2=5")

	// The session is gone after hand-off.
	rec, _ = doJSON(t, router, http.MethodGet, "/v1/evaluaciones/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
