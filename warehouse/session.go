// Package warehouse manages the Snowflake session and query execution.
//
// Design decisions:
//   - SessionProvider is a strategy interface: when running inside the
//     platform's container runtime an OAuth token is mounted on disk and
//     the session is built from it; otherwise explicit credentials from
//     the environment are used. Selection happens once at startup and
//     the rest of the application only sees *Session.
//   - A single database/sql handle is opened per process and reused for
//     every query. Lifetime is tied to the process; Close is best effort.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	sf "github.com/snowflakedb/gosnowflake"

	"avalanche/applog"
	"avalanche/config"
)

// ambientTokenPath is where the container runtime mounts the session token.
const ambientTokenPath = "/snowflake/session/token"

// Session wraps the warehouse connection handle.
type Session struct {
	DB *sql.DB
}

var _ Executor = (*Session)(nil)

// SessionProvider builds an authenticated warehouse session.
type SessionProvider interface {
	// Open establishes and verifies the session.
	Open(ctx context.Context) (*Session, error)

	// Name identifies the strategy for logging.
	Name() string
}

// NewProvider selects the session strategy: ambient token if present,
// explicit credentials otherwise.
func NewProvider(cfg config.Warehouse) SessionProvider {
	if _, err := os.Stat(ambientTokenPath); err == nil {
		return &AmbientProvider{TokenPath: ambientTokenPath}
	}
	return &CredentialsProvider{Cfg: cfg}
}

// AmbientProvider builds a session from the token the hosting runtime
// mounts into the container, plus the SNOWFLAKE_* variables it sets.
type AmbientProvider struct {
	TokenPath string
}

func (p *AmbientProvider) Name() string { return "ambient" }

func (p *AmbientProvider) Open(ctx context.Context) (*Session, error) {
	token, err := os.ReadFile(p.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("read session token: %w", err)
	}

	sc := &sf.Config{
		Account:       os.Getenv("SNOWFLAKE_ACCOUNT"),
		Host:          os.Getenv("SNOWFLAKE_HOST"),
		Authenticator: sf.AuthTypeOAuth,
		Token:         strings.TrimSpace(string(token)),
		Warehouse:     os.Getenv("SNOWFLAKE_WAREHOUSE"),
		Database:      os.Getenv("SNOWFLAKE_DATABASE"),
		Schema:        os.Getenv("SNOWFLAKE_SCHEMA"),
	}
	return open(ctx, sc)
}

// CredentialsProvider builds a session from the explicit credential
// bundle sourced from the environment.
type CredentialsProvider struct {
	Cfg config.Warehouse
}

func (p *CredentialsProvider) Name() string { return "credentials" }

func (p *CredentialsProvider) Open(ctx context.Context) (*Session, error) {
	if err := p.Cfg.Validate(); err != nil {
		return nil, err
	}
	sc := &sf.Config{
		Account:   p.Cfg.Account,
		User:      p.Cfg.User,
		Password:  p.Cfg.Password,
		Role:      p.Cfg.Role,
		Warehouse: p.Cfg.Warehouse,
		Database:  p.Cfg.Database,
		Schema:    p.Cfg.Schema,
	}
	return open(ctx, sc)
}

// open builds a DSN, opens the handle and verifies it with a ping.
func open(ctx context.Context, sc *sf.Config) (*Session, error) {
	dsn, err := sf.DSN(sc)
	if err != nil {
		return nil, fmt.Errorf("build dsn: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("warehouse ping: %w", err)
	}

	applog.Event("SESSION", "connected account=%s database=%s schema=%s",
		sc.Account, sc.Database, sc.Schema)
	return &Session{DB: db}, nil
}

// Close releases the underlying handle.
func (s *Session) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
