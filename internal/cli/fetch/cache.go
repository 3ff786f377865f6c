// Package fetch retrieves source URIs into a content-addressed cache
// directory scoped to one manifest.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pirakansa/vordep/internal/cli/events"
	"github.com/pirakansa/vordep/internal/cli/integrity"
	"github.com/pirakansa/vordep/internal/cli/shared"
	pkgmanifest "github.com/pirakansa/vordep/pkg/manifest"
)

// CacheDirName is the cache directory created next to each manifest.
const CacheDirName = ".vordep-cache"

// Cache maps source URIs to deterministic local file slots. The same URI
// always lands in the same slot; slots are only overwritten by a new fetch
// and never invalidated automatically. No locking is performed, so
// concurrent invocations of the tool against the same manifest directory
// are unsafe.
type Cache struct {
	dir    string
	log    *events.Log
	client *http.Client
}

func New(dir string, log *events.Log) *Cache {
	return &Cache{
		dir: dir,
		log: log,
		client: &http.Client{
			// Redirects are followed manually, one level deep.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Slot returns the cache path a source URI maps to, with an optional
// archive suffix such as ".zip".
func (c *Cache) Slot(sourceURI, suffix string) string {
	return filepath.Join(c.dir, shared.BLAKE3Hex([]byte(sourceURI))+suffix)
}

// Fetch materializes sourceURI into its cache slot and returns the slot
// path. When the slot already satisfies ref the fetch is skipped. A fetched
// slot that fails verification is left in place for diagnostics, but the
// fetch is reported as failed.
func (c *Cache) Fetch(sourceURI string, ref integrity.Reference, suffix string) (string, error) {
	slot := c.Slot(sourceURI, suffix)
	if ref.Satisfied(slot) {
		return slot, nil
	}

	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		c.log.CreateDir(c.dir)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", err
	}

	c.log.Pull(sourceURI, slot)
	if err := c.pull(sourceURI, slot); err != nil {
		c.log.PullError(sourceURI, err)
		return "", err
	}

	if !ref.IsNone() && !ref.Satisfied(slot) {
		err := fmt.Errorf("integrity mismatch for %s (%s://%s)", sourceURI, ref.Algorithm, ref.Digest)
		c.log.PullError(sourceURI, err)
		return "", err
	}
	return slot, nil
}

func (c *Cache) pull(sourceURI, slot string) error {
	scheme, rest, ok := pkgmanifest.SplitScheme(sourceURI)
	if !ok {
		return fmt.Errorf("unsupported source %q", sourceURI)
	}
	switch scheme {
	case pkgmanifest.SchemeFile:
		return c.copyLocal(rest, slot)
	case pkgmanifest.SchemeHTTP, pkgmanifest.SchemeHTTPS:
		return c.download(sourceURI, slot, false)
	default:
		return fmt.Errorf("unsupported source scheme %q in %q", scheme, sourceURI)
	}
}

func (c *Cache) copyLocal(path, slot string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	return writeStream(slot, src)
}

func (c *Cache) download(url, slot string, redirected bool) error {
	resp, err := c.client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return writeStream(slot, resp.Body)
	case http.StatusFound:
		if redirected {
			return fmt.Errorf("download failed: %s redirected more than once", url)
		}
		location := resp.Header.Get("Location")
		if location == "" {
			return fmt.Errorf("download failed: %s redirect without location", url)
		}
		return c.download(location, slot, true)
	default:
		return fmt.Errorf("download failed: %s status=%d", url, resp.StatusCode)
	}
}

func writeStream(path string, r io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
