package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/WillyV3/todot/internal/storage"
	"github.com/WillyV3/todot/internal/testutil"
	"github.com/WillyV3/todot/internal/todo"
)

func TestSeedTasks(t *testing.T) {
	tasks := SeedTasks()
	if len(tasks) == 0 {
		t.Fatal("no seed tasks")
	}
	for i, task := range tasks {
		if strings.TrimSpace(task.Text) == "" {
			t.Errorf("task %d has no text", i)
		}
	}
}

func TestSeedCommand(t *testing.T) {
	existing := todo.Task{Text: "mine"}

	tests := []struct {
		name      string
		initial   []todo.Task
		input     string
		yes       bool
		wantSeed  bool
		wantInOut string
	}{
		{name: "empty list seeds without asking", wantSeed: true, wantInOut: "Seeded"},
		{name: "declined", initial: []todo.Task{existing}, input: "n\n", wantInOut: "Cancelled."},
		{name: "no answer", initial: []todo.Task{existing}, input: "\n", wantInOut: "Cancelled."},
		{name: "confirmed", initial: []todo.Task{existing}, input: "y\n", wantSeed: true, wantInOut: "Overwrite?"},
		{name: "yes flag", initial: []todo.Task{existing}, yes: true, wantSeed: true, wantInOut: "Seeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := testutil.NewMemStore(tt.initial...)
			var out bytes.Buffer

			err := SeedCommand(context.Background(), mem, strings.NewReader(tt.input), &out, tt.yes)
			if err != nil {
				t.Fatalf("SeedCommand failed: %v", err)
			}
			if !strings.Contains(out.String(), tt.wantInOut) {
				t.Errorf("output %q does not contain %q", out.String(), tt.wantInOut)
			}

			want := tt.initial
			if tt.wantSeed {
				want = SeedTasks()
			}
			if got := mem.Saved(); !reflect.DeepEqual(got, want) {
				t.Errorf("stored %+v, want %+v", got, want)
			}
		})
	}
}

func TestSeedCommandLoadFailure(t *testing.T) {
	mem := testutil.NewMemStore()
	mem.LoadErr = errors.New("unreachable")

	err := SeedCommand(context.Background(), mem, strings.NewReader(""), &bytes.Buffer{}, true)
	if err == nil {
		t.Fatal("expected error")
	}
	if mem.SaveCount() != 0 {
		t.Error("nothing should be saved when the list cannot be read")
	}
}

func TestSeedSubcommandWritesDBFile(t *testing.T) {
	t.Setenv("TODOT_SERVER_ADDRESS", "")
	dir := t.TempDir()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{
		"seed", "--yes",
		"--config", filepath.Join(dir, "missing.toml"),
		"--data-dir", dir,
	})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("seed failed: %v\n%s", err, out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, storage.DBFile)); err != nil {
		t.Fatalf("db file not written: %v", err)
	}

	got, err := storage.NewFileStore(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, SeedTasks()) {
		t.Errorf("db holds %+v, want seed tasks", got)
	}
}

func TestRootRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"unexpected"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for a stray argument")
	}
}
