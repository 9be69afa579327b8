// Package app implements the yadisk command-line interface.
//
// Commands are organized with cobra: a root command holding global flags and
// one constructor per subcommand. Every command that talks to the API loads
// its credentials from the environment (or a .env file) when it runs, so
// commands such as token work without a configured token.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/natserract/yadisk/pkg/config"
	"github.com/natserract/yadisk/pkg/logger"
	yadisk "github.com/natserract/yadisk/pkg/yandex/disk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	// cliName is the name of the CLI application
	cliName = "yadisk"

	// cliDescription is the short description shown in help text
	cliDescription = "yadisk - command-line client for Yandex Disk"
)

// GlobalOptions holds options that are common to all commands
type GlobalOptions struct {
	// BaseURL overrides YADISK_BASE_URL
	BaseURL string

	// Timeout overrides YADISK_TIMEOUT for single requests
	Timeout time.Duration

	// Verbose switches logging to debug level
	Verbose bool
}

// NewYadiskCommand creates the root yadisk command with all subcommands.
//
// Example:
//
//	cmd := NewYadiskCommand()
//	if err := cmd.Execute(); err != nil {
//	    os.Exit(1)
//	}
func NewYadiskCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `yadisk manages files on Yandex Disk through its REST API.

Credentials are read from the environment or a .env file in the working
directory: YADISK_TOKEN is required for every command except token, which
needs YADISK_CLIENT_ID to build the authorization page URL.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "",
		"API address (default: $YADISK_BASE_URL or "+yadisk.DefaultBaseURL+")")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0,
		"timeout of a single request (default: $YADISK_TIMEOUT or 30s)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"verbose logging")

	cmd.AddCommand(
		NewTokenCommand(opts),
		NewInfoCommand(opts),
		NewMetaCommand(opts),
		NewFilesCommand(opts),
		NewRecentCommand(opts),
		NewUploadCommand(opts),
		NewUploadURLCommand(opts),
		NewDownloadCommand(opts),
		NewCopyCommand(opts),
		NewMoveCommand(opts),
		NewRemoveCommand(opts),
		NewMkdirCommand(opts),
		NewPublishCommand(opts),
		NewUnpublishCommand(opts),
		NewPublicCommand(opts),
		NewIndexCommand(opts),
	)

	return cmd
}

// session bundles the logger and API client a command runs with.
type session struct {
	client *yadisk.Client
	logger *zap.Logger
}

func (s *session) Close() {
	_ = s.logger.Sync()
}

// newLogger builds the application logger from LOG_* settings.
func newLogger(opts *GlobalOptions) (*zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	return logger.NewLogger(level, cfg.LogOutputs, cfg.LogErrorOutputs)
}

// newSession loads configuration and creates the API client.
func newSession(opts *GlobalOptions) (*session, error) {
	log, err := newLogger(opts)
	if err != nil {
		return nil, err
	}

	cfg, err := yadisk.LoadConfig()
	if err != nil {
		log.Error("Failed to load config", zap.Error(err))
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}

	client, err := yadisk.NewWithLogger(cfg, log)
	if err != nil {
		return nil, err
	}

	return &session{client: client, logger: log}, nil
}

// printJSON writes v to w as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printOperation reports the outcome of a call that may run asynchronously.
func printOperation(w io.Writer, action string, result *yadisk.OperationResult) error {
	switch {
	case result.Async():
		_, err := fmt.Fprintf(w, "%s: operation %s\n", action, result.Operation.Status)
		return err
	case result.Link != nil && result.Link.Href != "":
		_, err := fmt.Fprintf(w, "%s: %s\n", action, result.Link.Href)
		return err
	default:
		_, err := fmt.Fprintf(w, "%s: done\n", action)
		return err
	}
}
