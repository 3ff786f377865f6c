package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDepsCmd(ctx *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Dependency helpers",
	}
	cmd.AddCommand(newDepsListCmd(ctx))
	return cmd
}

func newDepsListCmd(ctx *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List declared dependencies in manifest order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfigAndRoot(ctx.configPath)
			if err != nil {
				return err
			}
			for _, d := range cfg.Repo.Deps {
				if d.Descr == "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", d.Name, d.Type)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", d.Name, d.Type, d.Descr)
			}
			return nil
		},
	}
}
