// Package dep implements the dependency variants and the
// check / build / finalize orchestration over a manifest.
package dep

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pirakansa/vordep/internal/cli/events"
	"github.com/pirakansa/vordep/internal/cli/fetch"
	"github.com/pirakansa/vordep/internal/cli/manifest"
	"github.com/pirakansa/vordep/internal/cli/steprun"
)

// Context carries the per-run state shared by all dependencies of one
// manifest: its directory, its fetch cache, and the progress log.
type Context struct {
	RootDir string
	Cache   *fetch.Cache
	Log     *events.Log
}

// Dependency is one declared requirement. Check resolves and verifies it
// (idempotent where the variant allows); Build runs its step sequence and
// is only invoked after every dependency of the manifest checked clean.
type Dependency interface {
	Name() string
	Check(ctx *Context) error
	Build(ctx *Context) error
}

// New dispatches a manifest record to its variant. Unknown type tags get
// the generic variant, which never checks successfully.
func New(rec manifest.Dep) Dependency {
	switch rec.Type {
	case manifest.TypeBinary:
		return &binaryDep{base: base{rec: rec}}
	case manifest.TypeGit:
		return &gitDep{base: base{rec: rec}}
	case manifest.TypeGitPack:
		return &gitPackDep{base: base{rec: rec}}
	case manifest.TypeZip, manifest.TypeTarGz, manifest.TypeTarXz, manifest.TypeTarZst:
		return &archiveDep{base: base{rec: rec}, format: rec.Type}
	default:
		return &genericDep{base: base{rec: rec}}
	}
}

// base carries the record plus the directory resolved during Check and
// reused during Build. An empty dir means the destination has no directory
// form and build steps run from ".".
type base struct {
	rec manifest.Dep
	dir string
}

func (b *base) Name() string {
	return b.rec.Name
}

func (b *base) Build(ctx *Context) error {
	ctx.Log.BuildDep(b.rec.Name)
	dir := b.dir
	if dir == "" {
		dir = "."
	}
	return steprun.Run(b.rec.Build, dir, ctx.Log)
}

// resolveDir resolves the destination directory: an explicit dir:// locator
// or, absent one, a directory named after the dependency next to the
// manifest.
func resolveDir(rec manifest.Dep, rootDir string) (string, error) {
	if rec.Dst == "" {
		return filepath.Join(rootDir, rec.Name), nil
	}
	scheme, rest, ok := manifest.SplitScheme(rec.Dst)
	if !ok || scheme != manifest.SchemeDir {
		return "", fmt.Errorf("unsupported destination %q", rec.Dst)
	}
	if filepath.IsAbs(rest) {
		return rest, nil
	}
	return filepath.Join(rootDir, rest), nil
}

// probe locates an executable, either by scanning PATH (path://) or by
// direct file existence (file://, absolute or manifest-relative).
func probe(rec manifest.Dep, rootDir string) (string, error) {
	scheme, rest, ok := manifest.SplitScheme(rec.URI)
	if !ok {
		return "", fmt.Errorf("unsupported source %q", rec.URI)
	}
	switch scheme {
	case manifest.SchemePath:
		path, err := exec.LookPath(rest)
		if err != nil {
			return "", fmt.Errorf("binary %q not found on PATH", rest)
		}
		return path, nil
	case manifest.SchemeFile:
		path := rest
		if !filepath.IsAbs(path) {
			path = filepath.Join(rootDir, path)
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return "", fmt.Errorf("binary %q not found", path)
		}
		return path, nil
	default:
		return "", fmt.Errorf("unsupported source scheme %q in %q", scheme, rec.URI)
	}
}

// recurseInto resolves the nested manifest of a materialized dependency,
// check-only and depth-first. Recursion depth is bounded only by the
// filesystem; there is no cycle guard.
func recurseInto(ctx *Context, dir string) error {
	ctx.Log.Recurse(dir)
	cfg, err := manifest.LoadDir(dir)
	if err != nil {
		return err
	}
	return CheckAll(cfg, dir, ctx.Log)
}
