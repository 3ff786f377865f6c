package dep

// binaryDep verifies a named executable exists. The matched path is
// recorded for diagnostics; the destination has no directory form, so build
// steps run from ".". Recursion is always disabled for this variant.
type binaryDep struct {
	base
	resolved string
}

func (d *binaryDep) Check(ctx *Context) error {
	path, err := probe(d.rec, ctx.RootDir)
	if err != nil {
		return err
	}
	d.resolved = path
	return nil
}
