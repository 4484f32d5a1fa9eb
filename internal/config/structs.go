package config

import (
	"time"

	"github.com/lmsforge/lms-backend/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
	Invite    Invite
	Mail      Mail
	Storage   Storage
}

// Webserver implement webserver settings.
type Webserver struct {
	CORSAllowOrigins string // comma separated list, empty disables the cors middleware
	DisableRecover   bool   // disable recover middleware
	Port             int    // listening port for the webserver
	ShutDownTime     int    // wait time for shutdown
	URL              string // base url for the webserver
	BodyLimit        int    // max request body in bytes, 0 keeps the fiber default
}

// Auth holds bearer token and login settings.
type Auth struct {
	JWTSecret         string
	Issuer            string
	AccessTokenTTL    time.Duration
	LoginRateLimit    int           // max login attempts per window and ip, 0 disables the limiter
	LoginRateWindow   time.Duration // window of the login limiter
	SeedAdminPassword string        // creates user "admin" on an empty database when set
	OIDC              OIDC
}

// OIDC holds the OpenID Connect login settings.
type OIDC struct {
	Enabled      bool
	ProviderURL  string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Invite holds organization invitation settings.
type Invite struct {
	Expiry    time.Duration
	AcceptURL string // link sent by mail, the token is appended as query parameter
}

// Mail holds the outgoing mail settings.
type Mail struct {
	Enabled        bool
	SendGridAPIKey string
	FromName       string
	FromEmail      string
}

// Storage holds the object storage settings for note attachments.
type Storage struct {
	Enabled       bool
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	BasePath      string
	UseTLS        bool
	PresignExpiry time.Duration
	MaxUploadSize int64
}
