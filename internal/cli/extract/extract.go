// Package extract unpacks cached archives into destination directories,
// stripping the shared top-level path prefix GitHub-style archives wrap
// their contents in.
package extract

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pirakansa/vordep/internal/cli/events"
	pkgmanifest "github.com/pirakansa/vordep/pkg/manifest"
	"github.com/ulikunitz/xz"
)

// pax_global_header is tar metadata, never real content. It is neither
// extracted nor considered for prefix computation.
const paxGlobalHeader = "pax_global_header"

type entry struct {
	name string
	dir  bool
	body []byte
	mode os.FileMode
}

// Extract unpacks archivePath into destDir. format is one of the archive
// dependency type tags (zip, tgz, txz, tzst). The first error aborts the
// operation; partially written files are not rolled back.
func Extract(archivePath, destDir, format string, log *events.Log) error {
	entries, err := readEntries(archivePath, format)
	if err != nil {
		return err
	}

	if _, err := os.Stat(destDir); os.IsNotExist(err) {
		log.CreateDir(destDir)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	prefix := commonPrefix(entries)
	for _, e := range entries {
		name := strings.TrimPrefix(e.name, prefix)
		if name == "" {
			continue
		}
		target, err := resolveTarget(destDir, name)
		if err != nil {
			return err
		}
		if e.dir {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		mode := e.mode
		if mode == 0 {
			mode = 0o644
		}
		if err := os.WriteFile(target, e.body, mode); err != nil {
			return err
		}
	}
	return nil
}

func readEntries(archivePath, format string) ([]entry, error) {
	switch format {
	case pkgmanifest.TypeZip:
		return readZipEntries(archivePath)
	case pkgmanifest.TypeTarGz, pkgmanifest.TypeTarXz, pkgmanifest.TypeTarZst:
		return readTarEntries(archivePath, format)
	default:
		return nil, fmt.Errorf("unsupported archive format %q", format)
	}
}

func readZipEntries(archivePath string) ([]entry, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var entries []entry
	for _, f := range reader.File {
		name, err := normalizeEntryName(f.Name)
		if err != nil {
			return nil, err
		}
		if f.FileInfo().IsDir() {
			entries = append(entries, entry{name: name + "/", dir: true})
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{name: name, body: body, mode: f.FileInfo().Mode().Perm()})
	}
	return entries, nil
}

func readTarEntries(archivePath, format string) ([]entry, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader, closer, err := decompress(f, format)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer.Close()
	}

	tarReader := tar.NewReader(reader)
	var entries []entry
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Typeflag == tar.TypeXGlobalHeader || filepath.Base(header.Name) == paxGlobalHeader {
			continue
		}

		name, err := normalizeEntryName(header.Name)
		if err != nil {
			return nil, err
		}
		if header.FileInfo().IsDir() {
			entries = append(entries, entry{name: name + "/", dir: true})
			continue
		}
		body, err := io.ReadAll(tarReader)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{name: name, body: body, mode: header.FileInfo().Mode().Perm()})
	}
	return entries, nil
}

func decompress(f *os.File, format string) (io.Reader, io.Closer, error) {
	switch format {
	case pkgmanifest.TypeTarGz:
		gzipReader, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return gzipReader, gzipReader, nil
	case pkgmanifest.TypeTarXz:
		xzReader, err := xz.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return xzReader, nil, nil
	case pkgmanifest.TypeTarZst:
		zstdReader, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		rc := zstdReader.IOReadCloser()
		return rc, rc, nil
	default:
		return nil, nil, fmt.Errorf("unsupported archive format %q", format)
	}
}

// commonPrefix returns the leading path segment shared by every entry, with
// its trailing slash. The prefix collapses to empty as soon as one entry
// does not carry it.
func commonPrefix(entries []entry) string {
	prefix := ""
	for i, e := range entries {
		if i == 0 {
			head, _, ok := strings.Cut(e.name, "/")
			if !ok {
				return ""
			}
			prefix = head + "/"
			continue
		}
		if !strings.HasPrefix(e.name, prefix) {
			return ""
		}
	}
	return prefix
}

func normalizeEntryName(value string) (string, error) {
	cleaned := filepath.ToSlash(filepath.Clean(filepath.FromSlash(value)))
	cleaned = strings.TrimPrefix(cleaned, "./")
	if cleaned == "." || cleaned == "" {
		return "", fmt.Errorf("invalid archive entry path %q", value)
	}
	if strings.HasPrefix(cleaned, "/") || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("archive entry path escapes root: %q", value)
	}
	return cleaned, nil
}

func resolveTarget(root, rel string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(rel))
	cleanRoot := filepath.Clean(root)
	cleanTarget := filepath.Clean(target)
	if cleanTarget != cleanRoot && !strings.HasPrefix(cleanTarget, cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry path escapes destination: %q", rel)
	}
	return target, nil
}
