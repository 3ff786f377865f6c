// Package vcs clones repositories and pins them to references by shelling
// out to the git command.
package vcs

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pirakansa/vordep/internal/cli/events"
	pkgmanifest "github.com/pirakansa/vordep/pkg/manifest"
)

// Tool is the version-control executable resolved from PATH.
const Tool = "git"

const metadataDir = ".git"

// Checkout drives clone and ref-pinning for one repository.
type Checkout struct {
	Log *events.Log
}

// Ensure makes cloneDir a checkout of repoURI pinned to ref. An existing
// clone of the same remote is kept as-is before pinning; anything else at
// cloneDir is wiped and recloned. Pinning is a hard reset and discards
// local modifications.
func (c *Checkout) Ensure(repoURI, cloneDir, ref string) error {
	if !c.alreadyCloned(repoURI, cloneDir) {
		if err := os.RemoveAll(cloneDir); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(cloneDir), 0o755); err != nil {
			return err
		}
		c.Log.CreateDir(cloneDir)
		c.Log.Pull(repoURI, cloneDir)
		if err := run(Tool, "clone", repoURI, cloneDir); err != nil {
			c.Log.PullError(repoURI, err)
			return err
		}
	}

	if ref == "" {
		return nil
	}
	target := pkgmanifest.StripRefScheme(ref)
	if err := run(Tool, "-C", cloneDir, "reset", "--hard", target); err != nil {
		return fmt.Errorf("pin %q: %w", target, err)
	}
	return nil
}

// alreadyCloned reports whether cloneDir is a checkout of exactly repoURI.
func (c *Checkout) alreadyCloned(repoURI, cloneDir string) bool {
	if _, err := os.Stat(filepath.Join(cloneDir, metadataDir)); err != nil {
		return false
	}
	out, err := exec.Command(Tool, "-C", cloneDir, "remote", "get-url", "origin").Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == repoURI
}

func run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
