package commands

import (
	"github.com/pirakansa/vordep/internal/cli/dep"
	"github.com/pirakansa/vordep/internal/cli/events"
	"github.com/pirakansa/vordep/internal/cli/shared"
	"github.com/spf13/cobra"
)

func newPlanCmd(ctx *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run the check phase only, without building or finalizing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, rootDir, err := loadConfigAndRoot(ctx.configPath)
			if err != nil {
				return err
			}
			if err := dep.CheckAll(cfg, rootDir, events.New(cmd.OutOrStdout())); err != nil {
				return newExitCodeError(shared.ExitCheckFailed, err)
			}
			return nil
		},
	}
	return cmd
}
