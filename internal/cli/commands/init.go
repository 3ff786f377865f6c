package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/pirakansa/vordep/internal/cli/manifest"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a " + manifest.FileName + " template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := writeIfNotExists(manifest.FileName, manifestTemplate()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "initialized:", manifest.FileName)
			return nil
		},
	}
	return cmd
}

func writeIfNotExists(path, content string) error {
	_, err := os.Stat(path)
	if err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func manifestTemplate() string {
	return `repo:
  meta:
    name: myproject
    descr: describe the project
    tags: [tools]
  deps:
    - name: make
      descr: build driver
      type: bin
      uri: path://make
    - name: toolkit
      descr: vendored helper sources
      type: tgz
      uri: https://example.com/toolkit-1.0.tar.gz
      ref: sha256://replace-with-real-digest
      dst: dir://vendor/toolkit
  finalize:
    - step: done
      descr: announce completion
`
}
