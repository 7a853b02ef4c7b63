package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWritesToTargetOnly(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "scripts.json")
	if err := os.WriteFile(target, []byte("{}"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w, err := New(context.Background(), target, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	select {
	case ev := <-w.C():
		t.Fatalf("unexpected event for unrelated file: %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte(`{"1":"x"}`), 0o644); err != nil {
			t.Fatalf("write target: %v", err)
		}
	}
	select {
	case ev := <-w.C():
		if ev.Path != target {
			t.Fatalf("unexpected path: %q", ev.Path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("expected change event")
	}
}

func TestWatcherCloseClosesChannel(t *testing.T) {
	target := filepath.Join(t.TempDir(), "scripts.json")
	w, err := New(context.Background(), target, 0, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	select {
	case _, ok := <-w.C():
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
}
