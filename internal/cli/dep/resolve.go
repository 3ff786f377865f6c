package dep

import (
	"fmt"
	"path/filepath"

	"github.com/pirakansa/vordep/internal/cli/events"
	"github.com/pirakansa/vordep/internal/cli/fetch"
	"github.com/pirakansa/vordep/internal/cli/manifest"
	"github.com/pirakansa/vordep/internal/cli/shared"
	"github.com/pirakansa/vordep/internal/cli/steprun"
)

// Outcome holds the per-phase results of one resolver run. Phases that did
// not run (build after a failed check) stay nil.
type Outcome struct {
	CheckErr    error
	BuildErr    error
	FinalizeErr error
}

// ExitCode maps the outcome onto the process exit contract. A finalize
// failure wins over everything, including a clean check and build pass.
func (o Outcome) ExitCode() int {
	switch {
	case o.FinalizeErr != nil:
		return shared.ExitFinalizeFailed
	case o.CheckErr != nil:
		return shared.ExitCheckFailed
	case o.BuildErr != nil:
		return shared.ExitBuildFailed
	default:
		return shared.ExitOK
	}
}

// Err returns the most significant failure of the run, or nil.
func (o Outcome) Err() error {
	switch {
	case o.FinalizeErr != nil:
		return o.FinalizeErr
	case o.CheckErr != nil:
		return o.CheckErr
	case o.BuildErr != nil:
		return o.BuildErr
	default:
		return nil
	}
}

// Run drives the full pipeline over the manifest: check every dependency in
// declaration order (fail-fast), build them in order only when all checks
// passed (fail-fast), then run the finalize steps exactly once regardless
// of what came before.
func Run(cfg *manifest.Config, rootDir string, log *events.Log) Outcome {
	log.RunStart(cfg.Repo.Meta.Name)
	ctx := newContext(rootDir, log)
	deps := newDeps(cfg)

	var out Outcome
	out.CheckErr = checkAll(ctx, deps)
	if out.CheckErr == nil {
		out.BuildErr = buildAll(ctx, deps)
	}

	log.FinalizeStart()
	out.FinalizeErr = steprun.Run(cfg.Repo.Finalize, rootDir, log)
	return out
}

// CheckAll runs only the check phase. Nested manifest recursion and the
// plan command use this entry point.
func CheckAll(cfg *manifest.Config, rootDir string, log *events.Log) error {
	return checkAll(newContext(rootDir, log), newDeps(cfg))
}

func newContext(rootDir string, log *events.Log) *Context {
	return &Context{
		RootDir: rootDir,
		Cache:   fetch.New(filepath.Join(rootDir, fetch.CacheDirName), log),
		Log:     log,
	}
}

func newDeps(cfg *manifest.Config) []Dependency {
	deps := make([]Dependency, 0, len(cfg.Repo.Deps))
	for _, rec := range cfg.Repo.Deps {
		deps = append(deps, New(rec))
	}
	return deps
}

func checkAll(ctx *Context, deps []Dependency) error {
	for _, d := range deps {
		ctx.Log.CheckDep(d.Name())
		if err := d.Check(ctx); err != nil {
			ctx.Log.Failure(d.Name())
			return fmt.Errorf("check %q: %w", d.Name(), err)
		}
	}
	return nil
}

func buildAll(ctx *Context, deps []Dependency) error {
	for _, d := range deps {
		if err := d.Build(ctx); err != nil {
			ctx.Log.Failure(d.Name())
			return fmt.Errorf("build %q: %w", d.Name(), err)
		}
	}
	return nil
}
