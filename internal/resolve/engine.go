package resolve

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"trackfort/internal/library"
	"trackfort/internal/query"
)

// Engine resolves whole playlists against a read-only tag index.
//
// Queries have no data dependency on each other, so the engine evaluates
// them on a bounded pool of workers and reassembles results by source
// position. The reassembly is the only synchronization point; output order
// never depends on evaluation order.
type Engine struct {
	index   *library.TagIndex
	workers int
	logger  *log.Logger
}

// EngineOpts contains configuration options for creating an [Engine].
type EngineOpts struct {
	Workers int         // worker pool size, defaults to GOMAXPROCS
	Logger  *log.Logger // defaults to a silent logger
}

// NewEngine creates an Engine over the given index.
func NewEngine(ix *library.TagIndex, opts EngineOpts) *Engine {
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Engine{index: ix, workers: opts.Workers, logger: opts.Logger}
}

// ResolveAll resolves every query and sequences the results.
//
// Match-count failures are collected into the report rather than aborting,
// so one run reports every problem. The returned playlist carries the tracks
// of the lines that did resolve; its Complete flag is true only when the
// report is empty. The error return covers internal inconsistencies and
// context cancellation only, both of which discard all output.
func (e *Engine) ResolveAll(ctx context.Context, queries []query.Query) (*Playlist, *Report, error) {
	entries := make([]*ResolvedEntry, len(queries))
	errs := make([]error, len(queries))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i], errs[i] = Resolve(e.index, queries[i])
			}
		}()
	}

	cancelled := false
	for i := range queries {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			cancelled = true
		}
		if cancelled {
			break
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled {
		return nil, nil, ctx.Err()
	}

	report := &Report{}
	var resolved []*ResolvedEntry
	for i, err := range errs {
		if err != nil {
			var inconsistency *InconsistencyError
			if errors.As(err, &inconsistency) {
				return nil, nil, err
			}
			e.logger.Debugf("line %d failed: %v", queries[i].Line, err)
			report.Add(queries[i].Line, queries[i].Raw, err)
			continue
		}
		e.logger.Debugf("line %d resolved to %d tracks", queries[i].Line, len(entries[i].Tracks))
		resolved = append(resolved, entries[i])
	}

	report.Sort()

	playlist := Sequence(resolved)
	playlist.Complete = !report.Failed()
	return playlist, report, nil
}
