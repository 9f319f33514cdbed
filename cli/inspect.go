package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"zetasbox/sdk"
)

// withLedger opens the configured store for a read command and closes it afterwards.
func withLedger(fn func(lg *ledger) error) error {
	lg, err := openLedger(false)
	if err != nil {
		return err
	}
	defer func() {
		if err := lg.close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()
	return fn(lg)
}

var projectCmd = &cobra.Command{
	Use:   "project <address>",
	Short: "Show a project ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := sdk.AddressFromString(args[0])
		if err != nil {
			return err
		}
		return withLedger(func(lg *ledger) error {
			p, err := lg.ctrl.Project(addr)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		})
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List every project ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(lg *ledger) error {
			ps, err := lg.ctrl.Projects()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ps)
		})
	},
}

var donorCmd = &cobra.Command{
	Use:   "donor <project> [contributor]",
	Short: "Show one donor ledger, or all donors of a project",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := sdk.AddressFromString(args[0])
		if err != nil {
			return err
		}
		return withLedger(func(lg *ledger) error {
			if len(args) == 1 {
				ds, err := lg.ctrl.Donors(project)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), ds)
			}
			contributor, err := sdk.AddressFromString(args[1])
			if err != nil {
				return err
			}
			addr, err := lg.ctrl.DonorAddress(project, contributor)
			if err != nil {
				return err
			}
			d, err := lg.ctrl.Donor(addr)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		})
	},
}

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Show the platform config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLedger(func(lg *ledger) error {
			cfg, err := lg.ctrl.Platform()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"address":  lg.ctrl.PlatformAddress(),
				"owner":    cfg.Owner,
				"feeRoute": cfg.FeeRoute,
			})
		})
	},
}
