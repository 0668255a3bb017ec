package api

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/colorix/api/colors"
	"github.com/colorix/api/datastore"
	"github.com/colorix/api/resolver"
	"golang.org/x/crypto/hkdf"
)

type Config struct {
	HTTPPort             string
	SessionSecret        string
	SessionMaxAge        time.Duration
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
	SessionDomain        string
	ColorAPIURL          string
	ColorAPITimeout      time.Duration
	ColorAPIDisabled     bool
	AllowedOrigins       []string
	DevMode              bool
	LogLevel             string
}

type Application struct {
	Config      Config
	SessionRepo datastore.SessionRepository
	Resolver    resolver.Resolver
	Names       colors.NameTable
	Sequencer   *resolver.Sequencer
	Logger      *slog.Logger

	sessionKey []byte
}

const sessionKeyInfo = "colorix palette session v1"

// NewApplication wires an Application and derives the session signing key
// from Config.SessionSecret.
func NewApplication(config Config, repo datastore.SessionRepository, res resolver.Resolver, logger *slog.Logger) (*Application, error) {
	if config.SessionSecret == "" {
		return nil, errors.New("session secret must not be empty")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.SessionMaxAge <= 0 {
		config.SessionMaxAge = 24 * time.Hour
	}

	key, err := deriveSessionKey(config.SessionSecret)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:      config,
		SessionRepo: repo,
		Resolver:    res,
		Names:       colors.CSSNames,
		Sequencer:   resolver.NewSequencer(),
		Logger:      logger,
		sessionKey:  key,
	}, nil
}

func deriveSessionKey(secret string) ([]byte, error) {
	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionKeyInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("error deriving session key %v", err)
	}
	return key, nil
}

// ForgetSessions drops the lookup ordering state of expired sessions.
func (app *Application) ForgetSessions(ids []string) {
	for _, id := range ids {
		app.Sequencer.ForgetPrefix(id + "/")
	}
}
