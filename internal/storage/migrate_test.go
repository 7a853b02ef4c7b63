package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/teleprompt/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	if err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("repeated migrate up failed: %v", err)
	}

	if err := MigrateDown(ctx, db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	if err := repo.SaveScripts(ctx, model.Raw{"1": {Script: "Roundtrip"}}); err != nil {
		t.Fatalf("save after roundtrip failed: %v", err)
	}
	got, err := repo.LoadScripts(ctx)
	if err != nil {
		t.Fatalf("load after roundtrip failed: %v", err)
	}
	if got["1"].Script != "Roundtrip" {
		t.Fatalf("unexpected script after roundtrip: %q", got["1"].Script)
	}
}
