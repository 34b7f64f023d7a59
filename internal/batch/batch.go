// Package batch compiles many programs concurrently and can watch a
// source directory, recompiling on change.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/packetc-lang/packetc/internal/diag"
	"github.com/packetc-lang/packetc/internal/ir"
	"github.com/packetc-lang/packetc/internal/pipeline"
)

// Loader produces an IR program from a source path. The frontend
// implements it; tests stub it.
type Loader interface {
	Load(path string) (*ir.Program, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*ir.Program, error)

func (f LoaderFunc) Load(path string) (*ir.Program, error) { return f(path) }

// Result is the outcome of compiling one program.
type Result struct {
	Path    string
	Program *ir.Program
	// Diags holds every diagnostic of the run, warnings included.
	Diags []diag.Diagnostic
	// Err is the primary fatal error, or nil on success.
	Err error
}

// Runner compiles programs in parallel. Each program gets a fresh
// scheduler and context, so runs never share mutable state.
type Runner struct {
	Loader Loader
	// Jobs bounds concurrent compilations; zero means one per CPU.
	Jobs int
	// NewScheduler builds the per-program pipeline. Nil means the
	// default pipeline.
	NewScheduler func() *pipeline.Scheduler
	// WarningsAsErrors turns a warning-only run into a failed Result.
	WarningsAsErrors bool
}

func (r *Runner) jobs() int {
	if r.Jobs > 0 {
		return r.Jobs
	}
	return runtime.NumCPU()
}

func (r *Runner) scheduler() *pipeline.Scheduler {
	if r.NewScheduler != nil {
		return r.NewScheduler()
	}
	return pipeline.NewDefault()
}

// CompileAll compiles every path, at most Jobs at a time. Results keep
// input order. The returned error reflects loader or context failure,
// not per-program diagnostics, which land in each Result.
func (r *Runner) CompileAll(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.compile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Compile compiles one path synchronously.
func (r *Runner) Compile(path string) Result {
	return r.compile(path)
}

func (r *Runner) compile(path string) Result {
	prog, err := r.Loader.Load(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	pctx := pipeline.NewContext()
	runErr := r.scheduler().Run(prog, pctx)
	pctx.Diags.Sort()
	res := Result{Path: path, Program: prog, Diags: pctx.Diags.All(), Err: runErr}
	if res.Err == nil && r.WarningsAsErrors {
		if ws := pctx.Diags.Warnings(); len(ws) > 0 {
			d := ws[0]
			d.Severity = diag.SeverityFatal
			res.Err = &diag.Error{Diagnostic: d}
		}
	}
	return res
}
