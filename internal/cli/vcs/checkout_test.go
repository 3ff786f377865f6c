package vcs

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pirakansa/vordep/internal/cli/events"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(Tool); err != nil {
		t.Skipf("%s not on PATH", Tool)
	}
}

func gitCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := exec.Command(Tool, args...).CombinedOutput()
	if err != nil {
		t.Fatalf("git %s: %v: %s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// initRemote creates a local repo with one commit to clone from.
func initRemote(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	gitCmd(t, "init", "-b", "main", dir)
	gitCmd(t, "-C", dir, "config", "user.email", "test@test.com")
	gitCmd(t, "-C", dir, "config", "user.name", "Test")
	if err := os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("v1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	gitCmd(t, "-C", dir, "add", "hello.txt")
	gitCmd(t, "-C", dir, "commit", "-m", "initial")
	return dir
}

func TestEnsureClonesFreshRepository(t *testing.T) {
	requireGit(t)
	remote := initRemote(t)
	cloneDir := filepath.Join(t.TempDir(), "clone")

	co := &Checkout{Log: events.New(nil)}
	if err := co.Ensure(remote, cloneDir, ""); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cloneDir, "hello.txt")); err != nil {
		t.Fatalf("expected cloned content: %v", err)
	}
}

func TestEnsureIsIdempotentForMatchingRemote(t *testing.T) {
	requireGit(t)
	remote := initRemote(t)
	cloneDir := filepath.Join(t.TempDir(), "clone")

	co := &Checkout{Log: events.New(nil)}
	if err := co.Ensure(remote, cloneDir, ""); err != nil {
		t.Fatalf("first Ensure failed: %v", err)
	}

	// A scratch file inside the clone survives a re-run against the same
	// remote because the directory is not wiped.
	marker := filepath.Join(cloneDir, "marker.txt")
	if err := os.WriteFile(marker, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := co.Ensure(remote, cloneDir, ""); err != nil {
		t.Fatalf("second Ensure failed: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("clone was wiped despite matching remote: %v", err)
	}
}

func TestEnsureRewipesOnRemoteMismatch(t *testing.T) {
	requireGit(t)
	remoteA := initRemote(t)
	remoteB := initRemote(t)
	cloneDir := filepath.Join(t.TempDir(), "clone")

	co := &Checkout{Log: events.New(nil)}
	if err := co.Ensure(remoteA, cloneDir, ""); err != nil {
		t.Fatalf("clone A failed: %v", err)
	}
	marker := filepath.Join(cloneDir, "marker.txt")
	if err := os.WriteFile(marker, []byte("gone"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := co.Ensure(remoteB, cloneDir, ""); err != nil {
		t.Fatalf("clone B failed: %v", err)
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Fatalf("expected directory recreated for different remote")
	}
	got := gitCmd(t, "-C", cloneDir, "remote", "get-url", "origin")
	if got != remoteB {
		t.Fatalf("unexpected remote %q", got)
	}
}

func TestEnsurePinsCommitRef(t *testing.T) {
	requireGit(t)
	remote := initRemote(t)
	first := gitCmd(t, "-C", remote, "rev-parse", "HEAD")

	if err := os.WriteFile(filepath.Join(remote, "hello.txt"), []byte("v2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	gitCmd(t, "-C", remote, "add", "hello.txt")
	gitCmd(t, "-C", remote, "commit", "-m", "second")

	cloneDir := filepath.Join(t.TempDir(), "clone")
	co := &Checkout{Log: events.New(nil)}
	if err := co.Ensure(remote, cloneDir, "commit://"+first); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	head := gitCmd(t, "-C", cloneDir, "rev-parse", "HEAD")
	if head != first {
		t.Fatalf("expected HEAD %s, got %s", first, head)
	}
	b, err := os.ReadFile(filepath.Join(cloneDir, "hello.txt"))
	if err != nil || string(b) != "v1\n" {
		t.Fatalf("expected pinned content v1, got %q err=%v", b, err)
	}
}

func TestEnsureFailsOnBadRef(t *testing.T) {
	requireGit(t)
	remote := initRemote(t)
	cloneDir := filepath.Join(t.TempDir(), "clone")

	co := &Checkout{Log: events.New(nil)}
	if err := co.Ensure(remote, cloneDir, "tag://no-such-tag"); err == nil {
		t.Fatalf("expected reset failure for unknown ref")
	}
}
