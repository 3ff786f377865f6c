package dep

import (
	"fmt"
	"os/exec"

	"github.com/pirakansa/vordep/internal/cli/vcs"
)

// gitDep clones a repository and pins it to the declared ref. The VCS tool
// itself is an implicit binary dependency, checked before any clone attempt.
type gitDep struct {
	base
}

func (d *gitDep) Check(ctx *Context) error {
	if _, err := exec.LookPath(vcs.Tool); err != nil {
		return fmt.Errorf("vcs tool %q not found on PATH", vcs.Tool)
	}

	dir, err := resolveDir(d.rec, ctx.RootDir)
	if err != nil {
		return err
	}
	d.dir = dir

	checkout := &vcs.Checkout{Log: ctx.Log}
	if err := checkout.Ensure(d.rec.URI, dir, d.rec.Ref); err != nil {
		return err
	}

	if d.rec.Recurses() {
		return recurseInto(ctx, dir)
	}
	return nil
}
