package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/civichub/internal/client/config"
	"github.com/dmitrijs2005/civichub/internal/client/services"
	"github.com/dmitrijs2005/civichub/internal/client/state"
	"github.com/dmitrijs2005/civichub/internal/logging"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// Mode is the connectivity state shown in the prompt.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Prober reports whether the backend is reachable.
type Prober interface {
	Check(ctx context.Context) error
}

// ProbeFunc adapts a function to Prober.
type ProbeFunc func(ctx context.Context) error

func (f ProbeFunc) Check(ctx context.Context) error { return f(ctx) }

// Deps are the collaborators an App drives.
type Deps struct {
	Store     *state.Store
	Auth      services.AuthService
	Data      services.DataService
	Mutations services.MutationService
	Profile   services.ProfileService
	Prober    Prober
	Logger    logging.Logger
}

// App is the interactive client. Its command methods are called by the REPL
// and print to out; reads come from the local store.
type App struct {
	config    *config.Config
	store     *state.Store
	auth      services.AuthService
	data      services.DataService
	mutations services.MutationService
	profile   services.ProfileService
	prober    Prober
	log       logging.Logger

	reader *bufio.Reader
	out    io.Writer

	mu   sync.RWMutex
	mode Mode
}

// NewApp creates an App reading from stdin and writing to stdout. A nil
// d.Logger discards logs.
func NewApp(c *config.Config, d Deps) *App {
	log := d.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		config:    c,
		store:     d.Store,
		auth:      d.Auth,
		data:      d.Data,
		mutations: d.Mutations,
		profile:   d.Profile,
		prober:    d.Prober,
		log:       log.With("module", "cli"),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
}

// Mode returns the last observed connectivity state.
func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

// setMode records mode and logs transitions.
func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) identity() *models.User {
	return a.store.Identity()
}

func (a *App) isLoggedIn() bool {
	return a.identity() != nil
}

func (a *App) isAdmin() bool {
	u := a.identity()
	return u != nil && u.IsAdmin()
}

// Run restores a saved session if there is one, starts the connectivity
// watcher and blocks in the REPL until the user quits or ctx ends.
func (a *App) Run(ctx context.Context) {
	a.data.AutoLoad(ctx)

	if u, err := a.auth.Restore(ctx); err == nil {
		a.printf("Welcome back, %s (%s)\n", u.Name, u.Role)
	} else {
		a.log.Debug(ctx, "no session restored", "error", err)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.printf("Welcome to CivicHub (type 'help' for commands)\n")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// StartOnlineStatusWatcher probes the backend every interval and updates the
// mode shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	if a.prober == nil {
		return
	}
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.prober.Check(pctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}
