package rest

import "net/http"

// NewRouter registers the lookup API and the health probes on a ServeMux.
func NewRouter(dict *DictionaryHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("GET /api/v1/classify", dict.Classify)
	mux.HandleFunc("GET /api/v1/convert", dict.Convert)
	mux.HandleFunc("GET /api/v1/script", dict.Script)
	mux.HandleFunc("GET /api/v1/segment", dict.Segment)
	mux.HandleFunc("GET /api/v1/annotate", dict.Annotate)
	mux.HandleFunc("GET /api/v1/query", dict.Query)
	mux.HandleFunc("GET /api/v1/stats", dict.Stats)

	return mux
}
