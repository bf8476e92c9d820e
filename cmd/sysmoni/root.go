package main

import (
	"github.com/spf13/cobra"

	"github.com/sysmoni/sysmoni/internal/config"
)

// newRootCmd builds the cobra command tree, registering every flag
// internal/config.Config.BindFlags exposes, grounded on ja7ad-consumption's
// cmd/consumption/main.go root-command shape.
func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sysmoni",
		Short: "A terminal system resource monitor",
		Long: `sysmoni is a terminal resource monitor: live CPU, memory, network,
disk, temperature, battery, and GPU widgets plus a searchable, sortable,
freezable process table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ApplyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(*cfg)
		},
	}
	cfg.BindFlags(cmd.Flags())
	return cmd
}
