package dep

import "fmt"

// genericDep is the dispatch fallback for unknown type tags. It is never
// satisfiable.
type genericDep struct {
	base
}

func (d *genericDep) Check(ctx *Context) error {
	return fmt.Errorf("dependency %q has unsupported type %q", d.rec.Name, d.rec.Type)
}
