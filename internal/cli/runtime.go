package cli

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/teleprompt/internal/storage"
	"github.com/sandeepkv93/teleprompt/internal/update"
	"github.com/sandeepkv93/teleprompt/internal/watch"
)

// runtime is the storage wiring shared by the TUI and the scriptable
// commands.
type runtime struct {
	Gateway storage.ScriptsGateway
	Local   storage.LocalStorage

	repo    *storage.SQLiteRepository
	watcher *watch.FileWatcher
}

// openRuntime opens the sqlite database that always backs local storage and
// selects the slide gateway. The file watcher only runs for the json backend.
func openRuntime(ctx context.Context, app *App, withWatch bool) (*runtime, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := app.cfg
	repo, err := storage.OpenSQLite(ctx, cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	rt := &runtime{Local: repo, repo: repo}

	switch cfg.Backend {
	case update.BackendSQLite:
		rt.Gateway = repo
	default:
		gw := storage.NewFileGateway(cfg.ScriptsPath(), app.logger)
		rt.Gateway = gw
		if withWatch {
			w, err := watch.New(ctx, gw.Path(), watch.DefaultDebounce, app.logger)
			if err != nil {
				app.logger.Warn("file watcher disabled", "path", gw.Path(), "error", err)
			} else {
				rt.watcher = w
			}
		}
	}
	if withWatch && cfg.Backend == update.BackendSQLite {
		app.logger.Info("watch ignored for sqlite backend")
	}
	return rt, nil
}

func (rt *runtime) Reloads() <-chan watch.Event {
	if rt.watcher == nil {
		return nil
	}
	return rt.watcher.C()
}

func (rt *runtime) Close() error {
	if rt.watcher != nil {
		_ = rt.watcher.Close()
	}
	return rt.repo.Close()
}
