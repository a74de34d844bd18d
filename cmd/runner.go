package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"trackfort/internal/formatter"
	"trackfort/internal/library"
	"trackfort/internal/query"
	"trackfort/internal/resolve"
	"trackfort/internal/scanner"
	"trackfort/internal/shared"
	"trackfort/internal/store"
	"trackfort/internal/tasks"
	"trackfort/internal/ui"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config       *shared.Config
	configPath   string
	logger       *log.Logger
	output       io.Writer
	input        io.Reader
	materializer *tasks.Materializer
	palette      *ui.Palette
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config       *shared.Config
	ConfigPath   string
	Logger       *log.Logger
	Output       io.Writer
	Input        io.Reader
	Materializer *tasks.Materializer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = "config.toml"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Materializer == nil {
		opts.Materializer = tasks.NewMaterializer(tasks.MaterializerOpts{Logger: opts.Logger})
	}

	return &Runner{
		config:       opts.Config,
		configPath:   opts.ConfigPath,
		logger:       opts.Logger,
		output:       opts.Output,
		input:        opts.Input,
		materializer: opts.Materializer,
		palette:      ui.DefaultPalette(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, dirsCommand, scanCommand, checkCommand, listCommand, linkCommand, copyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// reloadConfig swaps in the config named by the command's --config flag when
// it differs from the one loaded at startup.
func (r *Runner) reloadConfig(cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" || path == r.configPath {
		return nil
	}
	config, err := shared.LoadConfig(path)
	if err != nil {
		return err
	}
	r.config = config
	r.configPath = path
	return nil
}

// Setup creates the config file if missing and initializes the index database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := shared.CreateConfigFile(path); err != nil {
			return err
		}
		r.writePlainln("Created %s", path)
	}

	if err := r.reloadConfig(cmd); err != nil {
		return err
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	r.writePlainln("Initialized index database at %s", r.config.Database.Path)
	return nil
}

// Dirs shows, adds to, or removes from the scanned directory list.
func (r *Runner) Dirs(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadConfig(cmd); err != nil {
		return err
	}

	add, remove := cmd.String("add"), cmd.String("remove")
	if add == "" && remove == "" {
		for _, dir := range r.config.Library.Directories {
			r.writePlainln("%s", dir)
		}
		return nil
	}

	if add != "" {
		if err := r.config.AddDirectory(add); err != nil {
			return err
		}
	}
	if remove != "" {
		if err := r.config.RemoveDirectory(remove); err != nil {
			return err
		}
	}

	return r.config.Save(r.configPath)
}

// Scan walks the library directories and rebuilds the stored track index.
func (r *Runner) Scan(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadConfig(cmd); err != nil {
		return err
	}

	s := scanner.New(scanner.Opts{
		PreferredExtensions: r.config.Library.PreferredExtensions,
		Workers:             r.config.Library.ScanWorkers,
		Logger:              r.logger,
	})

	tracks, err := s.Scan(ctx, r.config.Library.Directories)
	if err != nil {
		return err
	}
	r.logger.Infof("scanned %d tracks", len(tracks))

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		return err
	}
	if err := store.NewTrackStore(db).ReplaceAll(tracks); err != nil {
		return err
	}

	r.writePlainln("Indexed %d tracks", len(tracks))
	return nil
}

// Check resolves a playlist and prints the full diagnostic report.
func (r *Runner) Check(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadConfig(cmd); err != nil {
		return err
	}

	playlist, report, err := r.resolvePlaylist(ctx, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}

	if report.Failed() {
		fmt.Fprint(r.output, formatter.RenderReport(report, r.palette))
		return fmt.Errorf("%w: %d failing lines", shared.ErrIncompletePlaylist, len(report.Diagnostics))
	}

	r.writePlainln("%s", r.palette.OK(fmt.Sprintf("✓ %d tracks in %d groups", len(playlist.Tracks), len(playlist.Groups()))))
	return nil
}

// List prints the resolved playlist paths.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	if err := r.reloadConfig(cmd); err != nil {
		return err
	}

	playlist, report, err := r.resolvePlaylist(ctx, cmd.StringArg("playlist"))
	if err != nil {
		return err
	}
	if report.Failed() {
		fmt.Fprint(os.Stderr, formatter.RenderReport(report, r.palette))
		return fmt.Errorf("%w: %d failing lines", shared.ErrIncompletePlaylist, len(report.Diagnostics))
	}

	if cmd.Bool("shuffle") {
		playlist = resolve.Shuffle(playlist, rand.New(rand.NewSource(rand.Int63())))
	}

	if cmd.Bool("m3u") {
		_, err := r.output.Write(formatter.ExportToM3U(playlist))
		return err
	}

	opts := formatter.ListOptions{
		StripPrefix:    r.config.Output.StripPrefix,
		PrependPrefix:  r.config.Output.PrependPrefix,
		NullTerminated: cmd.Bool("null"),
	}
	if v := cmd.String("strip"); v != "" {
		opts.StripPrefix = v
	}
	if v := cmd.String("prepend"); v != "" {
		opts.PrependPrefix = v
	}

	_, err = r.output.Write(formatter.FormatPaths(playlist, opts))
	return err
}

// Link materializes the playlist as symlinks in the destination directory.
func (r *Runner) Link(ctx context.Context, cmd *cli.Command) error {
	playlist, err := r.resolveForMaterialize(ctx, cmd)
	if err != nil {
		return err
	}
	return r.materializer.Link(playlist, cmd.StringArg("destination"), !cmd.Bool("no-number"))
}

// Copy rsyncs the playlist's files into the destination directory.
func (r *Runner) Copy(ctx context.Context, cmd *cli.Command) error {
	playlist, err := r.resolveForMaterialize(ctx, cmd)
	if err != nil {
		return err
	}
	confirm := func(question string) bool {
		return shared.Confirm(r.input, r.output, question)
	}
	return r.materializer.Copy(ctx, playlist, cmd.StringArg("destination"), !cmd.Bool("no-number"), confirm)
}

// resolveForMaterialize is the shared front half of Link and Copy.
func (r *Runner) resolveForMaterialize(ctx context.Context, cmd *cli.Command) (*resolve.Playlist, error) {
	if err := r.reloadConfig(cmd); err != nil {
		return nil, err
	}
	if cmd.StringArg("destination") == "" {
		return nil, fmt.Errorf("%w: destination", shared.ErrMissingArgument)
	}

	playlist, report, err := r.resolvePlaylist(ctx, cmd.StringArg("playlist"))
	if err != nil {
		return nil, err
	}
	if report.Failed() {
		fmt.Fprint(os.Stderr, formatter.RenderReport(report, r.palette))
		return nil, fmt.Errorf("%w: %d failing lines", shared.ErrIncompletePlaylist, len(report.Diagnostics))
	}

	if cmd.Bool("shuffle") {
		playlist = resolve.Shuffle(playlist, rand.New(rand.NewSource(rand.Int63())))
	}
	return playlist, nil
}

// resolvePlaylist loads the stored index and resolves the playlist file
// against it. Parse and match failures land in the report, not the error.
func (r *Runner) resolvePlaylist(ctx context.Context, playlistPath string) (*resolve.Playlist, *resolve.Report, error) {
	if playlistPath == "" {
		return nil, nil, fmt.Errorf("%w: playlist", shared.ErrMissingArgument)
	}

	index, err := r.loadIndex()
	if err != nil {
		return nil, nil, err
	}

	queries, parseErrs, err := query.ParseFile(playlistPath)
	if err != nil {
		return nil, nil, err
	}

	engine := resolve.NewEngine(index, resolve.EngineOpts{Logger: r.logger})
	playlist, report, err := engine.ResolveAll(ctx, queries)
	if err != nil {
		return nil, nil, err
	}

	report.AddParseErrors(parseErrs)
	report.Sort()
	playlist.Complete = !report.Failed()
	return playlist, report, nil
}

// loadIndex reads the stored track index into memory.
func (r *Runner) loadIndex() (*library.TagIndex, error) {
	path := r.config.Database.Path
	if path != ":memory:" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, shared.ErrIndexNotFound
		}
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tracks, err := store.NewTrackStore(db).All()
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, shared.ErrEmptyIndex
	}

	return library.NewTagIndex(tracks)
}

func (r *Runner) writePlainln(format string, args ...any) {
	fmt.Fprintf(r.output, format+"\n", args...)
}
