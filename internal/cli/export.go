package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukemeuu/mani24-kds/internal/adapter/postgres"
	"github.com/ukemeuu/mani24-kds/internal/app/export"
	"github.com/ukemeuu/mani24-kds/internal/config"
)

// NewExportCommand writes the dispatched-order history to a CSV file.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export dispatched-order history to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts.ConfigPath, outDir)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write the export into")
	return cmd
}

func runExport(cmd *cobra.Command, configPath, outDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer db.Close()

	orders, err := postgres.NewOrderRepository(db).List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	path := filepath.Join(outDir, export.FileName(time.Now()))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := export.WriteHistory(f, orders); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "history written to %s\n", path)
	return nil
}
