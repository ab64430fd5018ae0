package monitoring

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

func TestArtifactWatcherReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "travel_insurance_model.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	watcher, err := NewArtifactWatcher(path, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	changes := make(chan fsnotify.Op, 8)
	watcher.OnChange(func(op fsnotify.Op) {
		select {
		case changes <- op:
		default:
		}
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watcher.Start(ctx)
	defer watcher.Close()

	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write unrelated: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"format":"travelinsure.model"}`), 0o600); err != nil {
		t.Fatalf("rewrite artifact: %v", err)
	}

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification for the artifact")
	}
}

func TestArtifactWatcherMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent", "model.json")
	if _, err := NewArtifactWatcher(path, nil); err == nil {
		t.Fatal("expected error when the artifact directory does not exist")
	}
}

func TestArtifactWatcherCloseWithoutStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	watcher, err := NewArtifactWatcher(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := watcher.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}
