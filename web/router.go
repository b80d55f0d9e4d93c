package web

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/unrolled/render"

	"github.com/mww/fantasy_assistant/agent"
)

func getRouter(mcpServer *mcp.Server, tools *agent.Tools, render *render.Render, apiKey string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Tool calls can fan out into several sleeper requests, so the budget
	// is generous compared to a typical JSON route.
	r.Use(middleware.Timeout(60 * time.Second))

	if apiKey != "" {
		r.Use(requireAPIKey(apiKey))
	}

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/tools", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, http.StatusOK, map[string]any{"tools": tools.Registry()})
	})

	handler := mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
	r.Handle("/mcp", handler)

	return r
}

// requireAPIKey guards every route. The key comes from the X-API-Key
// header or an Authorization bearer token, and the comparison is
// constant-time.
func requireAPIKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get("X-API-Key"))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}

			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
