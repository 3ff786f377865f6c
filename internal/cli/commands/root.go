package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pirakansa/vordep/internal/cli/manifest"
	"github.com/pirakansa/vordep/internal/cli/shared"
	"github.com/spf13/cobra"
)

type appContext struct {
	configPath string
}

func NewRootCmd() *cobra.Command {
	ctx := &appContext{}
	cmd := &cobra.Command{
		Use:   "vordep",
		Short: "Pre-build dependency resolver",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&ctx.configPath, "config", manifest.FileName, "path to dependency manifest")

	cmd.AddCommand(newRunCmd(ctx))
	cmd.AddCommand(newPlanCmd(ctx))
	cmd.AddCommand(newDepsCmd(ctx))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return mapExitCode(err)
	}
	return shared.ExitOK
}

func mapExitCode(err error) int {
	var codeErr *exitCodeError
	if errors.As(err, &codeErr) {
		return codeErr.code
	}
	return 1
}

// loadConfigAndRoot loads the manifest and determines the directory that
// anchors destinations, the cache, and finalize steps. Remote manifests
// anchor at the current working directory.
func loadConfigAndRoot(configPath string) (*manifest.Config, string, error) {
	if manifest.IsRemoteLocation(configPath) {
		cfg, err := manifest.Load(configPath)
		if err != nil {
			return nil, "", newExitCodeError(1, err)
		}
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		return cfg, cwd, nil
	}

	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, "", err
	}
	cfg, err := manifest.Load(abs)
	if err != nil {
		return nil, "", newExitCodeError(1, err)
	}
	return cfg, filepath.Dir(abs), nil
}

type exitCodeError struct {
	code int
	err  error
}

func newExitCodeError(code int, err error) *exitCodeError {
	return &exitCodeError{code: code, err: err}
}

func (e *exitCodeError) Error() string {
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}
