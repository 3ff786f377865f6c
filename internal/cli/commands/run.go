package commands

import (
	"github.com/pirakansa/vordep/internal/cli/dep"
	"github.com/pirakansa/vordep/internal/cli/events"
	"github.com/spf13/cobra"
)

func newRunCmd(ctx *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Check, build and finalize all dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, rootDir, err := loadConfigAndRoot(ctx.configPath)
			if err != nil {
				return err
			}
			out := dep.Run(cfg, rootDir, events.New(cmd.OutOrStdout()))
			if err := out.Err(); err != nil {
				return newExitCodeError(out.ExitCode(), err)
			}
			return nil
		},
	}
	return cmd
}
