package server

import "net/http"

func (s *Server) initRoutes() {
	s.registerAPIRoute(http.MethodGet, RouteHealth, s.HealthHandler())

	// LinkedIn connection
	s.registerAPIRoute(http.MethodGet, RouteLinkedInLogin, s.LinkedInLoginHandler())
	s.registerAPIRoute(http.MethodGet, RouteLinkedInCallback, s.LinkedInCallbackHandler())
	s.registerAPIRoute(http.MethodPost, RouteAuthExchange, s.ExchangeHandler())
	s.registerAPIRoute(http.MethodGet, RouteAuthSession, s.SessionHandler())
	s.registerAPIRoute(http.MethodPost, RouteAuthDisconnect, s.DisconnectHandler())

	// Content
	s.registerAPIRoute(http.MethodPost, RouteContentGenerate, s.GenerateContentHandler())
	s.registerAPIRoute(http.MethodGet, RouteContentTemplates, s.TemplatesHandler())
	s.registerAPIRoute(http.MethodPost, RouteContentShare, s.ShareHandler())
	s.registerAPIRoute(http.MethodPost, RouteContentAnalyze, s.AnalyzeHandler())
	s.registerAPIRoute(http.MethodPost, RouteContentNetworking, s.NetworkingMessageHandler())

	// Profile
	s.registerAPIRoute(http.MethodGet, RouteProfile, s.ProfileHandler())
	s.registerAPIRoute(http.MethodPost, RouteProfileOptimize, s.OptimizeProfileHandler())
}

// registerAPIRoute registers method and path behind the API middleware, plus a CORS
// preflight for the path. Unregistered paths still answer 404.
func (s *Server) registerAPIRoute(method, path string, handler http.HandlerFunc) {
	s.RegisterRouteHandler(method+" "+path, ChainMiddleware(handler, s.APIMiddleware()...))
	s.RegisterRouteHandler(http.MethodOptions+" "+path, ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))
}

// PreflightHandler answers OPTIONS requests; CorsMiddleware sets the headers.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
