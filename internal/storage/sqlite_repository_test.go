package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/teleprompt/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "teleprompt-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(context.Background(), db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func TestSQLiteScriptsSaveAndLoad(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	got, err := repo.LoadScripts(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no slides, got %#v", got)
	}

	raw := model.Raw{
		"1":  {Script: "Good morning", Title: "Opening"},
		"10": {Title: "Break"},
	}
	if err := repo.SaveScripts(ctx, raw); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = repo.LoadScripts(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got["1"] != raw["1"] || got["10"] != raw["10"] {
		t.Fatalf("unexpected slides: %#v", got)
	}

	if err := repo.SaveScripts(ctx, model.Raw{"2": {Script: "only"}}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err = repo.LoadScripts(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got) != 1 || got["2"].Script != "only" {
		t.Fatalf("expected save to replace all slides, got %#v", got)
	}
}

func TestSQLiteSaveRejectsBadKeyAndKeepsPreviousRows(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	if err := repo.SaveScripts(ctx, model.Raw{"1": {Script: "kept"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	err := repo.SaveScripts(ctx, model.Raw{"zero": {Script: "bad"}})
	if !errors.Is(err, model.ErrInvalidSlideNumber) {
		t.Fatalf("expected ErrInvalidSlideNumber, got %v", err)
	}
	got, err := repo.LoadScripts(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got["1"].Script != "kept" {
		t.Fatalf("expected rollback to keep previous rows, got %#v", got)
	}
}

func TestLocalStorageItems(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.GetItem(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.SetItem(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.SetItem(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := repo.GetItem(ctx, "k")
	if err != nil || got != "v2" {
		t.Fatalf("unexpected item: %q %v", got, err)
	}
	if err := repo.RemoveItem(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.RemoveItem(ctx, "k"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestSettingsPersistUnderFixedKey(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	s, err := LoadSettings(ctx, repo)
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if s != model.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", s)
	}

	want := model.Settings{FontSize: 22, LineHeight: 2.1}
	if err := SaveSettings(ctx, repo, want); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	raw, err := repo.GetItem(ctx, model.SettingsKey)
	if err != nil {
		t.Fatalf("get raw settings: %v", err)
	}
	if raw != `{"fontSize":22,"lineHeight":2.1}` {
		t.Fatalf("unexpected stored settings: %s", raw)
	}
	got, err := LoadSettings(ctx, repo)
	if err != nil || got != want {
		t.Fatalf("unexpected settings: %+v %v", got, err)
	}

	if err := repo.SetItem(ctx, model.SettingsKey, "not json"); err != nil {
		t.Fatalf("set bad settings: %v", err)
	}
	got, err = LoadSettings(ctx, repo)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if got != model.DefaultSettings() {
		t.Fatalf("expected defaults on failure, got %+v", got)
	}
}

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "teleprompt.db")
	repo, err := OpenSQLite(t.Context(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()
	if err := repo.SetItem(t.Context(), "a", "b"); err != nil {
		t.Fatalf("set after open: %v", err)
	}
}
