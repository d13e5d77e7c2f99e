package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"madurez42001/internal/catalog"
	"madurez42001/internal/export"
	"madurez42001/internal/report"
	"madurez42001/internal/session"
	"madurez42001/internal/share"
	"madurez42001/internal/transport/rest/handler"
)

// Container holds all dependencies for the router
type Container struct {
	Catalog        *catalog.Catalog
	SessionService *session.Service
	ReportService  *report.Service
	ExportService  *export.Service
	ShareService   *share.Service
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	catalogHandler := handler.NewCatalogHandler(c.Catalog)
	sessionHandler := handler.NewSessionHandler(c.SessionService)
	resultsHandler := handler.NewResultsHandler(c.ReportService, c.ExportService, c.ShareService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Catalog (static, read-only)
	v1.HandleFunc("/catalogo", catalogHandler.Get).Methods("GET", "OPTIONS")

	// Assessment sessions
	v1.HandleFunc("/evaluaciones", sessionHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/evaluaciones/{id}", sessionHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/evaluaciones/{id}/respuestas", sessionHandler.SetResponse).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/evaluaciones/{id}/siguiente", sessionHandler.Next).Methods("POST", "OPTIONS")
	v1.HandleFunc("/evaluaciones/{id}/anterior", sessionHandler.Previous).Methods("POST", "OPTIONS")

	// Results: responses arrive as query parameters (the transfer encoding)
	v1.HandleFunc("/resultados", resultsHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/resultados/export", resultsHandler.Export).Methods("GET", "OPTIONS")
	v1.HandleFunc("/resultados/compartir", resultsHandler.Share).Methods("POST", "OPTIONS")

	// Short share links redirect to the full results URL
	r.HandleFunc("/r/{code}", resultsHandler.ResolveShare).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
