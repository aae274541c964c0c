package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-profile-optimizer/content"
	"github.com/jrsteele09/go-profile-optimizer/internal/config"
	"github.com/jrsteele09/go-profile-optimizer/profile"
	"github.com/jrsteele09/go-profile-optimizer/server/authflowrepo"
	"github.com/jrsteele09/go-profile-optimizer/sessions"
	"github.com/rs/zerolog/log"
)

// LinkedIn is the part of the LinkedIn client the handlers call directly.
type LinkedIn interface {
	AuthCodeURL(state string) string
	Share(ctx context.Context, accessToken, text string) (string, error)
}

// Deps are the collaborators a Server routes requests to.
type Deps struct {
	LinkedIn  LinkedIn
	Exchanger *profile.Exchanger
	Ledger    profile.CodeLedger
	Engine    *content.Engine
	Sessions  *sessions.Manager
	AuthState authflowrepo.Repo
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	linkedIn  LinkedIn
	exchanger *profile.Exchanger
	ledger    profile.CodeLedger
	engine    *content.Engine
	sessions  *sessions.Manager
	authState authflowrepo.Repo
}

func New(config config.Config, deps Deps) (*Server, error) {
	switch {
	case deps.LinkedIn == nil:
		return nil, fmt.Errorf("[Server New] LinkedIn client is required")
	case deps.Exchanger == nil:
		return nil, fmt.Errorf("[Server New] exchanger is required")
	case deps.Engine == nil:
		return nil, fmt.Errorf("[Server New] content engine is required")
	case deps.Sessions == nil:
		return nil, fmt.Errorf("[Server New] session manager is required")
	}
	if deps.AuthState == nil {
		deps.AuthState = authflowrepo.NewInMemoryRepo()
	}

	s := &Server{
		env:       config.GetEnv(),
		mux:       http.NewServeMux(),
		config:    config,
		linkedIn:  deps.LinkedIn,
		exchanger: deps.Exchanger,
		ledger:    deps.Ledger,
		engine:    deps.Engine,
		sessions:  deps.Sessions,
		authState: deps.AuthState,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

// Routes returns the registered route patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if parts[0] == http.MethodOptions {
			continue
		}

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}
