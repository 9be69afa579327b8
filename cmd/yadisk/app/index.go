package app

import (
	"fmt"

	"github.com/natserract/yadisk/pkg/inventory"
	"github.com/natserract/yadisk/pkg/inventory/schema/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// IndexOptions holds options for the index command
type IndexOptions struct {
	*GlobalOptions
	Root       string
	InitSchema bool
}

// NewIndexCommand creates the index command.
//
// The command walks the disk from --root and records every file and folder
// in PostgreSQL (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME,
// DB_SSLMODE). Each run is stored as a sync job with its counters.
func NewIndexCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &IndexOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Record the disk contents in PostgreSQL",
		Example: `  # First run: create the tables, then index everything
  yadisk index --init-schema

  # Refresh one folder
  yadisk index --root disk:/photos`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", inventory.DefaultRoot, "folder to start from")
	cmd.Flags().BoolVar(&opts.InitSchema, "init-schema", false, "create the inventory tables if missing")

	return cmd
}

func runIndex(cmd *cobra.Command, opts *IndexOptions) error {
	ctx := cmd.Context()

	s, err := newSession(opts.GlobalOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	dbCfg, err := postgres.NewConfig()
	if err != nil {
		return err
	}
	db, err := postgres.New(ctx, dbCfg, s.logger)
	if err != nil {
		s.logger.Error("Failed to connect to database", zap.Error(err))
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if opts.InitSchema {
		if err := db.InitSchema(ctx); err != nil {
			return err
		}
	}

	store := inventory.NewPostgresStore(db, s.logger)
	syncSvc := inventory.NewSyncService(s.client, store, s.logger)

	metrics, err := syncSvc.SyncAll(ctx, opts.Root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sync job %s\n", metrics.JobID)
	fmt.Fprintf(out, "  Folders: %d succeeded, %d failed\n", metrics.DirsSucceeded, metrics.DirsFailed)
	fmt.Fprintf(out, "  Files: %d succeeded, %d failed\n", metrics.FilesSucceeded, metrics.FilesFailed)
	fmt.Fprintf(out, "  Total: %d succeeded, %d failed\n", metrics.TotalSucceeded(), metrics.TotalFailed())
	return nil
}
