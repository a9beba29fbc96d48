package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Headers the frontends send, allowed on CORS preflight
	HeaderContentType = "Content-Type"
	HeaderXUserID     = "X-User-Id"
	HeaderXAuthToken  = "X-Auth-Token"
	HeaderXSessionID  = "X-Session-Id"

	// Database table names
	TableUsers          = "users"
	TableSubscriptions  = "trainer_subscriptions"
	TableActiveSessions = "trainer_active_sessions"
	TableSessions       = "trainer_sessions"
	TableToolSessions   = "tool_sessions"

	// Result listing caps for get_sessions
	SessionListLimitTrainer = 50
	SessionListLimitAll     = 100

	// Quota applied by save_session when no subscription row exists.
	// Kept for compatibility with accounts created before plans existed.
	LegacyDefaultSessionsTotal = 4
)
