// Package tasks implements playlist materialization: turning a resolved
// playlist into numbered symlinks or an rsync'd copy on disk.
//
// The core abstraction is [Materializer]. External process execution goes
// through the [CommandRunner] interface so rsync behavior is testable
// without a real rsync on PATH.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"trackfort/internal/resolve"
	"trackfort/internal/shared"
)

// CommandRunner defines the interface for running external commands.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, inheriting stdout and stderr.
type ExecRunner struct {
	Logger *log.Logger
}

func (e *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	if e.Logger != nil {
		e.Logger.Infof("%s %s", name, strings.Join(args, " "))
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Materializer writes resolved playlists to the filesystem.
type Materializer struct {
	logger *log.Logger
	runner CommandRunner
}

// MaterializerOpts contains configuration options for creating a [Materializer].
type MaterializerOpts struct {
	Logger *log.Logger
	Runner CommandRunner // defaults to an [ExecRunner]
}

// NewMaterializer creates a Materializer.
func NewMaterializer(opts MaterializerOpts) *Materializer {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Runner == nil {
		opts.Runner = &ExecRunner{Logger: opts.Logger}
	}
	return &Materializer{logger: opts.Logger, runner: opts.Runner}
}

// Link creates one symlink per playlist track in dest, creating dest if
// needed. With numbered set, link names carry a zero-padded position prefix
// so directory order matches playlist order.
//
// An incomplete playlist is refused: materializing a partial resolution
// would silently drop tracks.
func (m *Materializer) Link(p *resolve.Playlist, dest string, numbered bool) error {
	if !p.Complete {
		return shared.ErrIncompletePlaylist
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	digits := len(strconv.Itoa(len(p.Tracks)))
	for i, path := range p.Paths() {
		name := filepath.Base(path)
		if numbered {
			name = fmt.Sprintf("%0*d-%s", digits, i+1, name)
		}
		linkPath := filepath.Join(dest, name)
		if err := os.Symlink(path, linkPath); err != nil {
			if errors.Is(err, os.ErrExist) {
				m.logger.Warnf("file exists: %s", linkPath)
				continue
			}
			return fmt.Errorf("failed to link %s: %w", path, err)
		}
	}
	return nil
}

// Copy rsyncs the playlist's files into dest via a staging directory of
// symlinks. It performs a dry run first and calls confirm before the real
// transfer; a declined confirmation leaves dest untouched.
func (m *Materializer) Copy(ctx context.Context, p *resolve.Playlist, dest string, numbered bool, confirm func(string) bool) error {
	if !p.Complete {
		return shared.ErrIncompletePlaylist
	}

	staging, err := os.MkdirTemp("", "trackfort-copy-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := m.Link(p, staging, numbered); err != nil {
		return err
	}

	args := []string{
		"--recursive", "--itemize-changes", "--copy-links",
		"--times", "--delete", "--dry-run",
		staging + "/", dest,
	}

	m.logger.Info("performing a dry run of rsync")
	if err := m.runner.Run(ctx, "rsync", args...); err != nil {
		return fmt.Errorf("rsync dry run failed: %w", err)
	}

	if !confirm("Proceed with the rsync?") {
		m.logger.Info("copy aborted")
		return nil
	}

	real := make([]string, 0, len(args)-1)
	for _, a := range args {
		if a != "--dry-run" {
			real = append(real, a)
		}
	}
	if err := m.runner.Run(ctx, "rsync", real...); err != nil {
		return fmt.Errorf("rsync failed: %w", err)
	}
	return nil
}
