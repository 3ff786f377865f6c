package manifest

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	pkgmanifest "github.com/pirakansa/vordep/pkg/manifest"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a manifest from a local path or an http(s)
// location.
func Load(path string) (*Config, error) {
	content, err := readManifest(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	pkgmanifest.Normalize(&cfg)
	if err := pkgmanifest.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDir loads the manifest file of a directory. Used when recursing into a
// checked-out dependency.
func LoadDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

func readManifest(path string) ([]byte, error) {
	if IsRemoteLocation(path) {
		return readRemoteManifest(path)
	}
	return os.ReadFile(path)
}

func readRemoteManifest(location string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("load manifest failed: %s status=%d", location, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
