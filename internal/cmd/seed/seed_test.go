package seed

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mofahq/tasktracker/internal/services/web/storage"
	"github.com/mofahq/tasktracker/internal/services/web/storage/sqlite"
	"github.com/mofahq/tasktracker/internal/tracker"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "tracker.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "tracker.db")
	}
}

func TestRunSeedsDatabase(t *testing.T) {
	ctx := context.Background()
	cfg := Config{DBPath: filepath.Join(t.TempDir(), "tracker.db")}

	var out bytes.Buffer
	if err := Run(ctx, cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "seeded") {
		t.Fatalf("output = %q, want seeded summary", out.String())
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 4 {
		t.Fatalf("user count = %d, want 4", len(users))
	}

	laptop, err := store.GetEquipment(ctx, "seed-laptop-1")
	if err != nil {
		t.Fatalf("get laptop: %v", err)
	}
	if laptop.Status != tracker.EquipmentAssigned {
		t.Fatalf("laptop Status = %q, want %q", laptop.Status, tracker.EquipmentAssigned)
	}

	tasks, err := store.ListTasks(ctx, storage.TaskFilter{Status: tracker.TaskPending})
	if err != nil {
		t.Fatalf("list pending tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("pending task count = %d, want 2", len(tasks))
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cfg := Config{DBPath: filepath.Join(t.TempDir(), "tracker.db")}

	if err := Run(ctx, cfg, nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(ctx, cfg, nil); err != nil {
		t.Fatalf("second run: %v", err)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	assignments, err := store.ListAssignments(ctx, "seed-laptop-1")
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("assignment count = %d, want 1", len(assignments))
	}
}
