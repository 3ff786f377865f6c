package dep

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/pirakansa/vordep/internal/cli/manifest"
)

// PackTool is the external package-fetching command the gitpack variant
// falls back to when probing finds nothing.
const PackTool = "gitpack"

// gitPackDep probes like the binary variant and, when the target is
// missing, materializes it by invoking the packager with the dependency's
// reference. A zero exit from that invocation counts as success.
type gitPackDep struct {
	base
	resolved string
}

func (d *gitPackDep) Check(ctx *Context) error {
	if path, err := probe(d.rec, ctx.RootDir); err == nil {
		d.resolved = path
		return nil
	}

	if _, err := exec.LookPath(PackTool); err != nil {
		return fmt.Errorf("packager %q not found on PATH", PackTool)
	}

	_, target, _ := manifest.SplitScheme(d.rec.URI)
	args := []string{"install", target}
	if ref := manifest.StripRefScheme(d.rec.Ref); ref != "" {
		args = append(args, ref)
	}

	out, err := exec.Command(PackTool, args...).CombinedOutput()
	if err != nil {
		ctx.Log.StepStream("stderr", strings.TrimSpace(string(out)))
		return fmt.Errorf("%s %s: %w", PackTool, strings.Join(args, " "), err)
	}
	return nil
}
