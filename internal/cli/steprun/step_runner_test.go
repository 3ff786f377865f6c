package steprun

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pirakansa/vordep/internal/cli/events"
	"github.com/pirakansa/vordep/internal/cli/manifest"
)

func TestRunExecutesStepsInOrder(t *testing.T) {
	temp := t.TempDir()
	steps := []manifest.Step{
		{Step: "first", Exec: &manifest.Exec{Cmd: "sh", Args: []string{"-c", "echo one > out.txt"}}},
		{Step: "second", Exec: &manifest.Exec{Cmd: "sh", Args: []string{"-c", "echo two >> out.txt"}}},
	}
	if err := Run(steps, temp, events.New(nil)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(temp, "out.txt"))
	if err != nil {
		t.Fatalf("read marker: %v", err)
	}
	if string(b) != "one\ntwo\n" {
		t.Fatalf("unexpected output order: %q", b)
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	temp := t.TempDir()
	steps := []manifest.Step{
		{Step: "boom", Exec: &manifest.Exec{Cmd: "false"}},
		{Step: "never", Exec: &manifest.Exec{Cmd: "sh", Args: []string{"-c", "touch never.txt"}}},
	}
	if err := Run(steps, temp, events.New(nil)); err == nil {
		t.Fatalf("expected failure from first step")
	}
	if _, err := os.Stat(filepath.Join(temp, "never.txt")); !os.IsNotExist(err) {
		t.Fatalf("later step must not run after a failure")
	}
}

func TestRunSurfacesStreamsOnFailure(t *testing.T) {
	var out bytes.Buffer
	steps := []manifest.Step{{
		Step: "noisy",
		Exec: &manifest.Exec{Cmd: "sh", Args: []string{"-c", "echo to-out; echo to-err >&2; exit 7"}},
	}}
	if err := Run(steps, ".", events.New(&out)); err == nil {
		t.Fatalf("expected failure")
	}
	logged := out.String()
	if !strings.Contains(logged, "to-out") || !strings.Contains(logged, "to-err") {
		t.Fatalf("captured streams must be surfaced on failure, got %q", logged)
	}
}

func TestRunEchoPolicyOnSuccess(t *testing.T) {
	var out bytes.Buffer
	steps := []manifest.Step{
		{
			Step: "quiet",
			Exec: &manifest.Exec{Cmd: "sh", Args: []string{"-c", "echo hidden"}},
		},
		{
			Step: "loud",
			Exec: &manifest.Exec{
				Cmd:        "sh",
				Args:       []string{"-c", "echo visible"},
				EchoAlways: &manifest.EchoPolicy{Stdout: true},
			},
		},
	}
	if err := Run(steps, ".", events.New(&out)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	logged := out.String()
	if strings.Contains(logged, "hidden") {
		t.Fatalf("stdout echoed without echo-always flag: %q", logged)
	}
	if !strings.Contains(logged, "visible") {
		t.Fatalf("stdout not echoed despite echo-always flag: %q", logged)
	}
}

func TestRunSpawnFailureIsException(t *testing.T) {
	var out bytes.Buffer
	steps := []manifest.Step{{
		Step: "ghost",
		Exec: &manifest.Exec{Cmd: "definitely-not-a-real-binary-470a"},
	}}
	if err := Run(steps, ".", events.New(&out)); err == nil {
		t.Fatalf("expected spawn failure")
	}
	if !strings.Contains(out.String(), "exception:") {
		t.Fatalf("spawn failure must report on the exception channel, got %q", out.String())
	}
}

func TestRunStepWithoutCommandIsNoOp(t *testing.T) {
	var out bytes.Buffer
	steps := []manifest.Step{{Step: "announce-only"}}
	if err := Run(steps, t.TempDir(), events.New(&out)); err != nil {
		t.Fatalf("no-op step failed: %v", err)
	}
	if !strings.Contains(out.String(), "announce-only") {
		t.Fatalf("step name must still be reported")
	}
}

func TestRunEmptySequenceSucceeds(t *testing.T) {
	if err := Run(nil, ".", events.New(nil)); err != nil {
		t.Fatalf("empty sequence must succeed: %v", err)
	}
}
