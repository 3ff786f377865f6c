package dep

import (
	"fmt"

	"github.com/pirakansa/vordep/internal/cli/extract"
	"github.com/pirakansa/vordep/internal/cli/integrity"
	"github.com/pirakansa/vordep/internal/cli/manifest"
)

// Cache slot suffixes per archive format, so slots stay inspectable.
var archiveSuffixes = map[string]string{
	manifest.TypeZip:    ".zip",
	manifest.TypeTarGz:  ".tar.gz",
	manifest.TypeTarXz:  ".tar.xz",
	manifest.TypeTarZst: ".tar.zst",
}

// archiveDep fetches an archive into the cache, verifies it, and extracts
// it into an explicitly declared destination directory.
type archiveDep struct {
	base
	format string
}

func (d *archiveDep) Check(ctx *Context) error {
	if d.rec.Dst == "" {
		return fmt.Errorf("archive dependency %q requires an explicit dir:// destination", d.rec.Name)
	}
	dir, err := resolveDir(d.rec, ctx.RootDir)
	if err != nil {
		return err
	}
	d.dir = dir

	ref, err := integrity.Parse(d.rec.Ref)
	if err != nil {
		return err
	}

	slot, err := ctx.Cache.Fetch(d.rec.URI, ref, archiveSuffixes[d.format])
	if err != nil {
		return err
	}
	if err := extract.Extract(slot, dir, d.format, ctx.Log); err != nil {
		return err
	}

	if d.rec.Recurses() {
		return recurseInto(ctx, dir)
	}
	return nil
}
