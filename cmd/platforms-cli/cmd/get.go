package cmd

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"moneyplatforms/services/platformstore"
	"moneyplatforms/services/platformstore/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Lists all documents, or shows the one with the given id.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if len(args) == 1 {
			stored, err := Store.Get(ctx, args[0])
			if errors.Is(err, platformstore.ErrNotFound) {
				slog.Warn("no document found", "id", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			printDocument(stored)
			return nil
		}

		all, err := Store.List(ctx)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Name", "Category", "URL", "Importance"})
		for _, stored := range all {
			t.AppendRow(table.Row{
				stored.ID,
				stored.Name,
				stored.CategoryOrDefault(),
				stored.Url,
				stored.Importance,
			})
		}
		t.Render()

		slog.Info("total documents", "count", len(all))
		return nil
	},
}

func printDocument(stored db.StoredPlatform) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"id", stored.ID},
		{"name", stored.Name},
		{"name_lower", stored.NameLower},
		{"category", stored.CategoryOrDefault()},
		{"description", stored.Description},
		{"url", stored.Url},
		{"pricing_url", stored.PricingUrl},
		{"quick_start_url", stored.QuickStartUrl},
		{"free_tier_details", stored.FreeTierDetails},
		{"key_features", strings.Join(stored.KeyFeatures, "\n")},
		{"monetization_options", stored.MonetizationOptions},
		{"pros", strings.Join(stored.Pros, "\n")},
		{"cons", strings.Join(stored.Cons, "\n")},
		{"beginner_friendly", stored.BeginnerFriendly},
		{"usefulness", stored.Usefulness},
		{"importance", stored.Importance},
		{"crawled_at", stored.CrawledAt},
		{"created_at", stored.CreatedAt},
		{"updated_at", stored.UpdatedAt},
	})
	t.Render()
}
