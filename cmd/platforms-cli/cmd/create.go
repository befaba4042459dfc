package cmd

import (
	"log/slog"

	"moneyplatforms/services/platformstore/db"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [id]",
	Short: "Inserts the example record, optionally under a chosen document id.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		example := db.Platform{
			Name:        "Example Platform",
			Description: "A sample platform entry",
			Url:         "https://example.com",
		}

		if len(args) == 1 {
			if err := Store.InsertWithID(cmd.Context(), args[0], example); err != nil {
				return err
			}
			slog.Info("document created successfully", "id", args[0])
			return nil
		}

		id, err := Store.Insert(cmd.Context(), example)
		if err != nil {
			return err
		}
		slog.Info("document created successfully", "id", id)
		return nil
	},
}
