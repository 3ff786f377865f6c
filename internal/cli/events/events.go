// Package events emits the resolver's line-oriented progress output.
// The writer is injected so tests can capture output deterministically.
package events

import (
	"fmt"
	"io"
	"strings"
)

type Log struct {
	w io.Writer
}

// New returns a Log writing to w. A nil writer discards all output.
func New(w io.Writer) *Log {
	if w == nil {
		w = io.Discard
	}
	return &Log{w: w}
}

func (l *Log) RunStart(name string) {
	fmt.Fprintf(l.w, "repo: %s\n", name)
}

func (l *Log) CheckDep(name string) {
	fmt.Fprintf(l.w, "check: %s\n", name)
}

func (l *Log) BuildDep(name string) {
	fmt.Fprintf(l.w, "build: %s\n", name)
}

func (l *Log) Step(name string) {
	fmt.Fprintf(l.w, "step: %s\n", name)
}

// StepStream prints one captured output channel of a step. label is
// "stdout", "stderr" or "exception".
func (l *Log) StepStream(label, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(l.w, "%s:\n", label)
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(l.w, "  %s\n", line)
	}
}

func (l *Log) Pull(source, destination string) {
	fmt.Fprintf(l.w, "pull: %s -> %s\n", source, destination)
}

func (l *Log) PullError(source string, err error) {
	fmt.Fprintf(l.w, "pull failed: %s: %v\n", source, err)
}

func (l *Log) CreateDir(path string) {
	fmt.Fprintf(l.w, "mkdir: %s\n", path)
}

func (l *Log) Recurse(path string) {
	fmt.Fprintf(l.w, "recurse: %s\n", path)
}

func (l *Log) FinalizeStart() {
	fmt.Fprintln(l.w, "finalize:")
}

func (l *Log) Failure(name string) {
	fmt.Fprintf(l.w, "failed: %s\n", name)
}
