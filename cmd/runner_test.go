package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"trackfort/internal/library"
	"trackfort/internal/shared"
	"trackfort/internal/store"
	tu "trackfort/internal/testing"
)

// newTestEnv builds a config file, a migrated index database seeded with
// tracks, and a runner writing to a buffer. It returns the runner, its
// output buffer, and the config path for --config flags.
func newTestEnv(t *testing.T, specs ...tu.TrackSpec) (*Runner, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()

	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(dir, "index.db")
	configPath := filepath.Join(dir, "config.toml")
	if err := config.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	tracks := make([]library.Track, len(specs))
	for i, spec := range specs {
		tracks[i] = tu.NewTrack(spec)
	}
	if err := store.NewTrackStore(db).ReplaceAll(tracks); err != nil {
		t.Fatalf("failed to seed tracks: %v", err)
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Logger:     log.New(io.Discard),
		Output:     output,
		Input:      strings.NewReader(""),
	})
	return runner, output, configPath
}

func runApp(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "trackfort", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"trackfort"}, args...))
}

func TestNewRunner(t *testing.T) {
	t.Run("with dependencies provided", func(t *testing.T) {
		config := shared.DefaultConfig()
		logger := shared.NewLogger(nil)
		output := &bytes.Buffer{}

		runner := NewRunner(RunnerOpts{Config: config, Logger: logger, Output: output})

		if runner.config != config {
			t.Error("expected config to be set")
		}
		if runner.logger != logger {
			t.Error("expected logger to be set")
		}
		if runner.output != output {
			t.Error("expected output to be set")
		}
	})

	t.Run("nil options use defaults", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if runner.config == nil || runner.logger == nil || runner.output == nil || runner.materializer == nil {
			t.Error("expected defaults for all dependencies")
		}
	})
}

func TestCheckCommand(t *testing.T) {
	specs := []tu.TrackSpec{
		{Path: "/a.mp3", Title: "Lo-Fi", Artist: "Kal"},
		{Path: "/b.mp3", Title: "Lo-Fi", Artist: "Gyn"},
	}

	t.Run("resolvable playlist passes", func(t *testing.T) {
		runner, output, configPath := newTestEnv(t, specs...)
		playlist := tu.WriteFile(t, t.TempDir(), "mix.txt", "title=\"Lo-Fi\"|artist=\"Kal\"\n")

		if err := runApp(t, runner, "check", "--config", configPath, playlist); err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if !strings.Contains(output.String(), "1 tracks") {
			t.Errorf("expected success summary, got %q", output.String())
		}
	})

	t.Run("ambiguous line fails with diagnostics", func(t *testing.T) {
		runner, output, configPath := newTestEnv(t, specs...)
		playlist := tu.WriteFile(t, t.TempDir(), "mix.txt", "title=\"Lo-Fi\"\n")

		err := runApp(t, runner, "check", "--config", configPath, playlist)
		if !errors.Is(err, shared.ErrIncompletePlaylist) {
			t.Fatalf("expected ErrIncompletePlaylist, got %v", err)
		}
		for _, want := range []string{"line 1", "/a.mp3", "/b.mp3"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("diagnostics missing %q:\n%s", want, output.String())
			}
		}
	})

	t.Run("missing playlist argument", func(t *testing.T) {
		runner, _, configPath := newTestEnv(t, specs...)
		err := runApp(t, runner, "check", "--config", configPath)
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("empty index", func(t *testing.T) {
		runner, _, configPath := newTestEnv(t)
		playlist := tu.WriteFile(t, t.TempDir(), "mix.txt", "title=A\n")
		err := runApp(t, runner, "check", "--config", configPath, playlist)
		if !errors.Is(err, shared.ErrEmptyIndex) {
			t.Errorf("expected ErrEmptyIndex, got %v", err)
		}
	})
}

func TestListCommand(t *testing.T) {
	specs := []tu.TrackSpec{
		{Path: "/music/a.mp3", Title: "A"},
		{Path: "/music/b.mp3", Title: "B"},
	}

	t.Run("prints resolved paths in order", func(t *testing.T) {
		runner, output, configPath := newTestEnv(t, specs...)
		playlist := tu.WriteFile(t, t.TempDir(), "mix.txt", "title=\"B\"\ntitle=\"A\"\n")

		if err := runApp(t, runner, "list", "--config", configPath, playlist); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if output.String() != "/music/b.mp3\n/music/a.mp3\n" {
			t.Errorf("unexpected output: %q", output.String())
		}
	})

	t.Run("strip and prepend flags", func(t *testing.T) {
		runner, output, configPath := newTestEnv(t, specs...)
		playlist := tu.WriteFile(t, t.TempDir(), "mix.txt", "title=\"A\"\n")

		err := runApp(t, runner, "list", "--config", configPath,
			"--strip", "/music/", "--prepend", "rel/", playlist)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if output.String() != "rel/a.mp3\n" {
			t.Errorf("unexpected output: %q", output.String())
		}
	})

	t.Run("m3u output", func(t *testing.T) {
		runner, output, configPath := newTestEnv(t, specs...)
		playlist := tu.WriteFile(t, t.TempDir(), "mix.txt", "title=\"A\"\n")

		if err := runApp(t, runner, "list", "--config", configPath, "--m3u", playlist); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.HasPrefix(output.String(), "#EXTM3U\n") {
			t.Errorf("expected M3U header, got %q", output.String())
		}
	})

	t.Run("failing line withholds paths", func(t *testing.T) {
		runner, output, configPath := newTestEnv(t, specs...)
		playlist := tu.WriteFile(t, t.TempDir(), "mix.txt", "title=\"A\"\ntitle=\"Missing\"\n")

		err := runApp(t, runner, "list", "--config", configPath, playlist)
		if !errors.Is(err, shared.ErrIncompletePlaylist) {
			t.Fatalf("expected ErrIncompletePlaylist, got %v", err)
		}
		if output.Len() != 0 {
			t.Errorf("expected no stdout output, got %q", output.String())
		}
	})
}

func TestLinkCommand(t *testing.T) {
	t.Run("creates numbered links", func(t *testing.T) {
		runner, _, configPath := newTestEnv(t, tu.TrackSpec{Path: "/music/a.mp3", Title: "A"})
		playlist := tu.WriteFile(t, t.TempDir(), "mix.txt", "title=\"A\"\n")
		dest := filepath.Join(t.TempDir(), "out")

		if err := runApp(t, runner, "link", "--config", configPath, playlist, dest); err != nil {
			t.Fatalf("link failed: %v", err)
		}
		tu.AssertFileExists(t, filepath.Join(dest, "1-a.mp3"))
	})

	t.Run("missing destination", func(t *testing.T) {
		runner, _, configPath := newTestEnv(t, tu.TrackSpec{Path: "/music/a.mp3", Title: "A"})
		playlist := tu.WriteFile(t, t.TempDir(), "mix.txt", "title=\"A\"\n")

		err := runApp(t, runner, "link", "--config", configPath, playlist)
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestDirsCommand(t *testing.T) {
	runner, output, configPath := newTestEnv(t)

	if err := runApp(t, runner, "dirs", "--config", configPath, "--add", "/music"); err != nil {
		t.Fatalf("dirs --add failed: %v", err)
	}
	if err := runApp(t, runner, "dirs", "--config", configPath); err != nil {
		t.Fatalf("dirs failed: %v", err)
	}
	if !strings.Contains(output.String(), "/music") {
		t.Errorf("expected /music in listing, got %q", output.String())
	}

	// The change must have been persisted.
	loaded, err := shared.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(loaded.Library.Directories) != 1 || loaded.Library.Directories[0] != "/music" {
		t.Errorf("expected persisted directory, got %v", loaded.Library.Directories)
	}

	if err := runApp(t, runner, "dirs", "--config", configPath, "--remove", "/music"); err != nil {
		t.Fatalf("dirs --remove failed: %v", err)
	}
}

func TestSetupCommand(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Logger: log.New(io.Discard),
		Output: output,
	})

	// Pre-save a config with an absolute database path so setup's
	// initialization lands in the temp dir.
	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(dir, "index.db")
	if err := config.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if err := runApp(t, runner, "setup", "--config", configPath); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	tu.AssertFileExists(t, config.Database.Path)
}
