package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router wraps the standard library ServeMux; no third-party router needed
// for a handful of routes.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterRoutes wires the dashboard API. Data routes sit behind the static
// credential check; /healthz and /api/v1/login are open.
func (r *Router) RegisterRoutes(auth *AuthHandler, a *AnalyticsHandler, imp *ImportHandler) {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/api/v1/login", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		auth.Login(w, req)
	})

	r.Handle("/api/v1/compare", auth.RequireAuth(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		a.Compare(w, req)
	}))

	r.Handle("/api/v1/datasets/", auth.RequireAuth(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		year := pathTail(req.URL.Path, "/api/v1/datasets/")
		if year == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		a.GetDataset(w, req, year)
	}))

	r.Handle("/api/v1/import/", auth.RequireAuth(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		year := pathTail(req.URL.Path, "/api/v1/import/")
		if year == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		imp.Import(w, req, year)
	}))

	r.Handle("/api/v1/export/", auth.RequireAuth(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		year := pathTail(req.URL.Path, "/api/v1/export/")
		if year == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		imp.Export(w, req, year)
	}))
}

func pathTail(path, prefix string) string {
	tail := strings.TrimPrefix(path, prefix)
	if tail == "" || strings.Contains(tail, "/") {
		return ""
	}
	return tail
}
