// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent app-level
// configuration, not WAFFLE core configuration: the core config owns
// ports, TLS, log level, and the rest of the framework surface.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: listhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// TrustLogin enables the body-identity endpoint used by mobile
	// clients that already carry a verified identity. Off in production
	// unless the deployment fronts its own identity proxy.
	TrustLogin bool

	// AdminEmails is the allow-list for the admin surfaces.
	AdminEmails []string

	// InviteTTL is how long invite tokens stay redeemable.
	InviteTTL time.Duration

	// BaseURL for OAuth callbacks (e.g., "https://listhub.example.com")
	BaseURL string
}
