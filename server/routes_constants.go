package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteHealth = "/health"

	// LinkedIn connection
	RouteLinkedInLogin    = "/auth/linkedin/login"
	RouteLinkedInCallback = "/auth/linkedin/callback"
	RouteAuthExchange     = "/auth/exchange"
	RouteAuthSession      = "/auth/session"
	RouteAuthDisconnect   = "/auth/disconnect"

	// Content
	RouteContentGenerate   = "/content/generate"
	RouteContentTemplates  = "/content/templates"
	RouteContentShare      = "/content/share"
	RouteContentAnalyze    = "/content/analyze"
	RouteContentNetworking = "/content/networking-message"

	// Profile
	RouteProfile         = "/profile"
	RouteProfileOptimize = "/profile/optimize"
)
