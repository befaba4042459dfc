package cmd

import (
	"errors"
	"log/slog"

	"moneyplatforms/services/platformstore"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Updates the given document, or an arbitrary one when no id is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		target, err := resolveTarget(ctx, args)
		if errors.Is(err, platformstore.ErrNotFound) {
			slog.Warn("no document found to update", "args", args)
			return nil
		}
		if err != nil {
			return err
		}

		updated := target.Platform
		updated.Name = "Updated Platform"
		if err := Store.Replace(ctx, target.ID, updated); err != nil {
			return err
		}
		slog.Info("document updated successfully", "id", target.ID)
		return nil
	},
}
