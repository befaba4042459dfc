package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Deletes every document in the collection, in batches.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deleted, batches, err := Store.Clear(cmd.Context())
		if err != nil {
			return err
		}
		slog.Info(
			"collection cleaned",
			"collection", Store.Collection(),
			"deleted", deleted,
			"batches", batches,
		)
		return nil
	},
}
