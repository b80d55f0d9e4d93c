// Package web serves the assistant over HTTP: the MCP endpoint the agent
// talks to plus a couple of plain JSON routes for operators.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/unrolled/render"

	"github.com/mww/fantasy_assistant/agent"
	"github.com/mww/fantasy_assistant/sleeper"
)

type Server struct {
	server *http.Server
}

// NewServer wires the MCP server and routes. An empty apiKey disables
// authentication, which is only sensible for local development.
func NewServer(port int, client sleeper.Client, apiKey string) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fantasy-assistant",
			Version: "0.1.0",
		},
		nil,
	)
	tools := agent.Register(mcpServer, client)

	render := newRender()
	router := getRouter(mcpServer, tools, render, apiKey)

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatalf("fatal error shutting down server: %v", err)
		}
	}()

	log.Printf("web server is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("fatal error with server: %v", err)
	}
}

func newRender() *render.Render {
	return render.New(render.Options{})
}
