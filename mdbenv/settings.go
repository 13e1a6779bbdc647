package mdbenv

import (
	"errors"
	"net/url"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// DefaultHost is used when MONGODB_HOST is not set.
	DefaultHost = "127.0.0.1"

	// DefaultPort is used when MONGODB_PORT is not set.
	DefaultPort = "27017"

	// DefaultDatabase is used when MONGODB_DATABASE is not set.
	DefaultDatabase = "test_db_1"

	// Scheme of all URIs produced by Settings.URI.
	Scheme = "mongodb"
)

// ErrParseSettings wraps errors from parsing typed settings.
var ErrParseSettings = errors.New("parse mongo settings")

// Settings for connecting to a Mongo server.
// Settings are read once and should be treated as immutable afterwards.
type Settings struct {
	Host     string `env:"MONGODB_HOST" envDefault:"127.0.0.1"`
	Port     string `env:"MONGODB_PORT" envDefault:"27017"`
	Username string `env:"MONGODB_USERNAME"`
	Password string `env:"MONGODB_PASSWORD"`

	// Database used by the test harness and dbping when none is specified.
	Database string `env:"MONGODB_DATABASE" envDefault:"test_db_1"`

	// LogLevel is a zerolog level name.
	LogLevel string `env:"MONGODB_LOG_LEVEL" envDefault:"info"`

	// DriverLog routes driver command logging through zerolog.
	DriverLog bool `env:"MONGODB_DRIVER_LOG" envDefault:"false"`
}

var dotEnvLoaded sync.Once

// Load settings from the process environment.
// A .env file in the current directory is loaded first if present,
// variables already set in the environment take precedence over it.
func Load() (*Settings, error) {
	dotEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	settings := new(Settings)
	if err := env.Parse(settings); err != nil {
		return nil, errors.Join(ErrParseSettings, err)
	}

	return settings, nil
}

// LoadFrom parses settings from the specified environment map
// instead of the process environment.
func LoadFrom(environment map[string]string) (*Settings, error) {
	settings := new(Settings)
	if err := env.ParseWithOptions(settings, env.Options{Environment: environment}); err != nil {
		return nil, errors.Join(ErrParseSettings, err)
	}

	return settings, nil
}

// HasCredentials is true if both username and password are set.
// Partial credentials are ignored.
func (s *Settings) HasCredentials() bool {
	return s.Username != "" && s.Password != ""
}

// URI returns the connection URI in the form mongodb://[user:pass@]host:port.
// Username and password are percent-encoded as URI userinfo.
func (s *Settings) URI() string {
	return s.url().String()
}

// Redacted returns the connection URI with any password masked, for logging.
func (s *Settings) Redacted() string {
	return s.url().Redacted()
}

func (s *Settings) url() *url.URL {
	uri := &url.URL{
		Scheme: Scheme,
		Host:   s.Host + ":" + s.Port,
	}
	if s.HasCredentials() {
		uri.User = url.UserPassword(s.Username, s.Password)
	}

	return uri
}
