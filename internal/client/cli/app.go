package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/orator-app/orator-cli/internal/client/api"
	"github.com/orator-app/orator-cli/internal/client/auth"
	"github.com/orator-app/orator-cli/internal/client/config"
	"github.com/orator-app/orator-cli/internal/client/repositories/metadata"
	"github.com/orator-app/orator-cli/internal/client/services"
	"github.com/orator-app/orator-cli/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

// tokenHolder breaks the construction cycle between the HTTP client and the
// auth manager: the client's transport needs a token source, and the manager
// needs the client for refresh calls. The holder is handed to the client
// first and bound to the manager right after.
type tokenHolder struct {
	mu sync.RWMutex
	ts api.TokenSource
}

func (h *tokenHolder) bind(ts api.TokenSource) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ts = ts
}

func (h *tokenHolder) Token(ctx context.Context) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.ts == nil {
		return "", nil
	}
	return h.ts.Token(ctx)
}

func (h *tokenHolder) Refresh(ctx context.Context) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.ts == nil {
		return "", nil
	}
	return h.ts.Refresh(ctx)
}

type App struct {
	config *config.Config
	log    logging.Logger

	db     *sql.DB
	client api.Client
	tokens *auth.Manager

	accounts      services.AccountService
	topics        services.TopicService
	presentations services.PresentationService
	analysis      services.AnalysisService
	prefs         services.PrefsService

	userEmail string
	Mode      Mode
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	db, err := api.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	holder := &tokenHolder{}
	apiClient := api.NewHTTPClient(c.APIBaseURL, holder, api.Timeouts{
		Default: c.RequestTimeout,
		Auth:    c.AuthTimeout,
		Upload:  c.UploadTimeout,
	})

	store := metadata.NewSQLiteRepository(db)
	tokens := auth.NewManager(apiClient, store, logger)
	holder.bind(tokens)

	app := &App{
		config:        c,
		log:           logger,
		db:            db,
		client:        apiClient,
		tokens:        tokens,
		accounts:      services.NewAccountService(apiClient, tokens, logger),
		topics:        services.NewTopicService(apiClient, db, tokens, logger),
		presentations: services.NewPresentationService(apiClient, db, logger),
		analysis:      services.NewAnalysisService(apiClient, logger),
		prefs:         services.NewPrefsService(store),
		reader:        bufio.NewReader(os.Stdin),
	}

	tokens.OnUnauthorized(func() {
		app.userEmail = ""
		log.Println("Session expired, please log in again")
	})

	if email, ok := app.accounts.SignedIn(ctx); ok {
		app.userEmail = email
	}

	return app, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if a.client != nil {
		a.client.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.userEmail != ""
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.accounts.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
