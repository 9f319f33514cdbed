package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"zetasbox/sdk"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <project>",
	Short: "Write a CBOR snapshot of a project, its donors and the platform",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := sdk.AddressFromString(args[0])
		if err != nil {
			return err
		}
		return withLedger(func(lg *ledger) error {
			data, err := lg.ctrl.Snapshot(project)
			if err != nil {
				return err
			}
			if exportOut == "" || exportOut == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(exportOut, data, 0o600); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			logger.Info("snapshot written", zap.String("file", exportOut), zap.Int("bytes", len(data)))
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file, stdout when empty or -")
}
