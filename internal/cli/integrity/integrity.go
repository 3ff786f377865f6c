// Package integrity verifies file contents against declared digests.
package integrity

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	pkgmanifest "github.com/pirakansa/vordep/pkg/manifest"
	"github.com/zeebo/blake3"
)

// Digest algorithms accepted as integrity reference schemes.
const (
	AlgorithmMD5    = "md5"
	AlgorithmSHA1   = "sha1"
	AlgorithmSHA256 = "sha256"
	AlgorithmSHA512 = "sha512"
	AlgorithmBLAKE3 = "blake3"
)

const chunkSize = 64 * 1024

// Reference is a declared content digest. The zero value means none: any
// existing file satisfies it.
type Reference struct {
	Algorithm string
	Digest    string
}

// Parse reads a scheme-prefixed integrity reference such as
// "sha256://9f86d0..." into a Reference. An empty value is the none
// reference.
func Parse(value string) (Reference, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return Reference{}, nil
	}
	scheme, rest, ok := pkgmanifest.SplitScheme(raw)
	if !ok {
		return Reference{}, fmt.Errorf("invalid integrity reference %q", value)
	}
	switch scheme {
	case AlgorithmMD5, AlgorithmSHA1, AlgorithmSHA256, AlgorithmSHA512, AlgorithmBLAKE3:
	default:
		return Reference{}, fmt.Errorf("unsupported integrity algorithm %q", scheme)
	}
	digest := strings.ToLower(strings.TrimSpace(rest))
	if _, err := hex.DecodeString(digest); err != nil || digest == "" {
		return Reference{}, fmt.Errorf("invalid integrity digest %q", value)
	}
	return Reference{Algorithm: scheme, Digest: digest}, nil
}

// IsNone reports whether the reference carries no digest.
func (r Reference) IsNone() bool {
	return r.Algorithm == ""
}

// Satisfied reports whether the file at path meets the reference. The none
// reference is satisfied by any existing regular file. Hashing streams the
// file in fixed-size chunks; any I/O failure counts as not satisfied rather
// than an error, so callers treat it as "not yet fetched".
func (r Reference) Satisfied(path string) bool {
	if r.IsNone() {
		info, err := os.Stat(path)
		return err == nil && info.Mode().IsRegular()
	}
	computed, err := fileDigestHex(path, r.Algorithm)
	if err != nil {
		return false
	}
	return computed == r.Digest
}

func fileDigestHex(path, algorithm string) (string, error) {
	h, err := newHasher(algorithm)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func newHasher(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case AlgorithmMD5:
		return md5.New(), nil
	case AlgorithmSHA1:
		return sha1.New(), nil
	case AlgorithmSHA256:
		return sha256.New(), nil
	case AlgorithmSHA512:
		return sha512.New(), nil
	case AlgorithmBLAKE3:
		return blake3.New(), nil
	default:
		return nil, fmt.Errorf("unsupported integrity algorithm %q", algorithm)
	}
}
