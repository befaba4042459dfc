package cmd

import (
	"context"
	"log/slog"
	"os"

	"moneyplatforms/services/platformstore"
	"moneyplatforms/services/platformstore/db"

	"github.com/spf13/cobra"
)

var Store *platformstore.Store

var rootCmd = &cobra.Command{
	Use:   "platforms-cli",
	Short: "platforms-cli manages the money-platforms collection directly.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("operation failed", "err", err)
		os.Exit(1)
	}
}

// resolveTarget picks the document to operate on: the given id, or an
// arbitrarily-chosen existing document when none was given.
func resolveTarget(ctx context.Context, args []string) (db.StoredPlatform, error) {
	if len(args) == 1 {
		return Store.Get(ctx, args[0])
	}
	return Store.First(ctx)
}
