package cmd

import (
	"errors"
	"log/slog"

	"moneyplatforms/services/platformstore"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Deletes the given document, or an arbitrary one when no id is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		target, err := resolveTarget(ctx, args)
		if errors.Is(err, platformstore.ErrNotFound) {
			slog.Warn("no document found to delete", "args", args)
			return nil
		}
		if err != nil {
			return err
		}

		if err := Store.Delete(ctx, target.ID); err != nil {
			return err
		}
		slog.Info("document deleted successfully", "id", target.ID)
		return nil
	},
}
