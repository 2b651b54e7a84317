package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	_ "modernc.org/sqlite"

	"github.com/ekazarova/rolodex/internal/backend"
	"github.com/ekazarova/rolodex/internal/config"
	"github.com/ekazarova/rolodex/internal/fakenet"
	"github.com/ekazarova/rolodex/internal/logging"
	"github.com/ekazarova/rolodex/internal/repositories/contacts"
	"github.com/ekazarova/rolodex/internal/services"
)

// App ties the configured services to the interactive terminal.
type App struct {
	config   *config.Config
	auth     services.AuthService
	contacts services.ContactService
	log      logging.Logger

	userName string
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp wires the backend client, the configured contact store and both
// services into a ready-to-run App.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	apiClient, err := backend.NewHTTPClient(cfg.BackendBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gate := fakenet.NewGate(cfg.LatencyMin, cfg.LatencyMax)

	return &App{
		config:   cfg,
		auth:     services.NewAuthService(apiClient, log),
		contacts: services.NewContactService(repo, gate, log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// openRepository selects the contact store from cfg.Storage.
func openRepository(ctx context.Context, cfg *config.Config) (contacts.Repository, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := contacts.OpenSQLite(ctx, cfg.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		return contacts.NewSQLiteRepository(db), nil

	case config.StoragePostgres:
		pool, err := contacts.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return contacts.NewPostgresRepository(pool), nil

	case config.StorageS3:
		client, err := contacts.NewS3Client(ctx, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			return nil, err
		}
		return contacts.NewS3Repository(client, cfg.S3Bucket, cfg.S3Key), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage)
	}
}

// Run performs the blocking session check and then hands control to the REPL.
// It returns when the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.auth.Close()

	// Nothing is shown until the initial session check resolves.
	if _, err := a.auth.Bootstrap(ctx); err != nil {
		fmt.Fprintln(a.out, "No active session; use 'login' to sign in.")
	} else {
		fmt.Fprintln(a.out, "Session restored.")
	}

	fmt.Fprintln(a.out, "rolodex CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "(signed out)"
	}
	if a.userName != "" {
		return "(" + a.userName + ")"
	}
	return "(signed in)"
}
