package manifest

import (
	"fmt"
	"net/url"
	"strings"
)

// FileName is the manifest file looked up inside a directory, both for the
// top-level project and for nested recursion targets.
const FileName = ".vordep.yaml"

// URI schemes understood across the manifest.
const (
	SchemePath   = "path"
	SchemeFile   = "file"
	SchemeHTTP   = "http"
	SchemeHTTPS  = "https"
	SchemeDir    = "dir"
	SchemeCommit = "commit"
	SchemeBranch = "branch"
	SchemeTag    = "tag"
)

// SplitScheme splits a scheme-prefixed locator such as "dir://out" into its
// scheme and remainder. ok is false when no "://" separator is present.
func SplitScheme(value string) (scheme, rest string, ok bool) {
	scheme, rest, ok = strings.Cut(value, "://")
	if !ok || scheme == "" {
		return "", value, false
	}
	return scheme, rest, true
}

// StripRefScheme removes a commit://, branch:// or tag:// prefix from a
// version-control ref. All three pin identically; a bare ref passes through.
func StripRefScheme(ref string) string {
	scheme, rest, ok := SplitScheme(ref)
	if !ok {
		return ref
	}
	switch scheme {
	case SchemeCommit, SchemeBranch, SchemeTag:
		return rest
	default:
		return ref
	}
}

func Normalize(cfg *Config) {
	if cfg.Repo.Deps == nil {
		cfg.Repo.Deps = []Dep{}
	}
	if cfg.Repo.Finalize == nil {
		cfg.Repo.Finalize = []Step{}
	}
}

func IsRemoteLocation(value string) bool {
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	return parsed.Scheme == SchemeHTTP || parsed.Scheme == SchemeHTTPS
}

// Validate reports structural manifest problems. These are fatal before
// orchestration starts; per-dependency scheme problems are not caught here,
// they surface as check failures.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Repo.Meta.Name) == "" {
		return fmt.Errorf("repo.meta.name is required")
	}
	for i, dep := range cfg.Repo.Deps {
		if strings.TrimSpace(dep.Name) == "" {
			return fmt.Errorf("repo.deps[%d].name is required", i)
		}
		if strings.TrimSpace(dep.URI) == "" {
			return fmt.Errorf("repo.deps[%d].uri is required", i)
		}
	}
	for i, step := range cfg.Repo.Finalize {
		if strings.TrimSpace(step.Step) == "" {
			return fmt.Errorf("repo.finalize[%d].step is required", i)
		}
	}
	return nil
}

// Recurses reports whether the dependency asked for nested manifest
// resolution. The manifest encodes the flag as the string "true".
func (d Dep) Recurses() bool {
	return strings.TrimSpace(d.Recurse) == "true"
}
