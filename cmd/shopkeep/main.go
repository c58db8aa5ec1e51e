package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/shopkeep/internal/app"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Version = version
	if err := rootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintf(os.Stderr, "shopkeep: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:           "shopkeep",
		Short:         "Terminal dashboard for a products REST API",
		Long:          `Shopkeep browses, searches, sorts, edits and exports the products of a remote catalog.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "Path to config file (default ~/.config/shopkeep/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "Path to UI preferences (default ~/.config/shopkeep/prefs.toml)")
	flags.StringVar(&opts.APIURL, "api-url", "", "Products endpoint, overrides api_url")

	cmd.AddCommand(exportCmd(&opts))
	return cmd
}

func exportCmd(root *app.Options) *cobra.Command {
	var (
		page   int
		search string
		sort   string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one page of the catalog to products.csv",
		Long: `Export loads the catalog, applies the optional search and sort, and writes
the selected page to products.csv in the export directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.ExportOptions{
				Options: *root,
				Page:    page,
				Search:  search,
				Sort:    sort,
			}
			opts.ExportDir = out
			path, rows, err := app.Export(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", rows, path)
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to export")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive title filter")
	cmd.Flags().StringVar(&sort, "sort", "", "Sort: title-asc, title-desc, price-asc or price-desc")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory, overrides export_dir")
	return cmd
}
