// Package steprun executes ordered build and finalize step sequences.
package steprun

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"

	"github.com/pirakansa/vordep/internal/cli/events"
	"github.com/pirakansa/vordep/internal/cli/manifest"
)

// Run executes steps in order inside dir, failing fast on the first error.
// Commands receive their arguments as a literal argv; no shell is involved,
// so manifest-supplied arguments cannot inject shell syntax. Standard output
// and standard error are captured separately and surfaced on failure even
// when the step's echo policy says otherwise.
func Run(steps []manifest.Step, dir string, log *events.Log) error {
	for _, step := range steps {
		log.Step(step.Step)
		if step.Exec == nil {
			continue
		}
		if err := runStep(step, dir, log); err != nil {
			return err
		}
	}
	return nil
}

func runStep(step manifest.Step, dir string, log *events.Log) error {
	ex := step.Exec
	cmd := exec.Command(ex.Cmd, ex.Args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.StepStream("stdout", stdout.String())
			log.StepStream("stderr", stderr.String())
			return fmt.Errorf("step %q failed: %w", step.Step, err)
		}
		// Spawn failures (missing executable, permissions) have no
		// process output; report them on their own channel.
		log.StepStream("exception", err.Error())
		return fmt.Errorf("step %q failed to start: %w", step.Step, err)
	}

	if ex.EchoAlways != nil && ex.EchoAlways.Stdout {
		log.StepStream("stdout", stdout.String())
	}
	if ex.EchoAlways != nil && ex.EchoAlways.Stderr {
		log.StepStream("stderr", stderr.String())
	}
	return nil
}
