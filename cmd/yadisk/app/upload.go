package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewUploadCommand creates the upload command.
//
// Usage:
//
//	yadisk upload LOCAL REMOTE [--overwrite]
func NewUploadCommand(globalOpts *GlobalOptions) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "upload LOCAL REMOTE",
		Short: "Upload a local file",
		Example: `  # Upload a report, replacing an existing copy
  yadisk upload ./report.pdf disk:/docs/report.pdf --overwrite`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer file.Close()

			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.client.UploadFile(cmd.Context(), args[1], file, overwrite); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s to %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the remote file if it exists")

	return cmd
}

// NewUploadURLCommand creates the upload-url command, which makes the disk
// fetch a file from the internet and waits until it is stored.
func NewUploadURLCommand(globalOpts *GlobalOptions) *cobra.Command {
	var disableRedirects bool

	cmd := &cobra.Command{
		Use:   "upload-url URL REMOTE",
		Short: "Store a file downloaded from a URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.client.UploadFromURL(cmd.Context(), args[0], args[1], disableRedirects)
			if err != nil {
				return err
			}
			return printOperation(cmd.OutOrStdout(), "upload "+args[1], result)
		},
	}

	cmd.Flags().BoolVar(&disableRedirects, "disable-redirects", false, "do not follow redirects of URL")

	return cmd
}

// NewDownloadCommand creates the download command.
//
// LOCAL defaults to the base name of REMOTE in the working directory; "-"
// writes the file to standard output.
func NewDownloadCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download REMOTE [LOCAL]",
		Short: "Download a file",
		Example: `  # Save to ./cat.png
  yadisk download disk:/photos/cat.png

  # Print to stdout
  yadisk download disk:/notes.txt -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			local := filepath.Base(args[0])
			if len(args) == 2 {
				local = args[1]
			}

			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			data, err := s.client.DownloadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeDownload(cmd, local, data)
		},
	}

	return cmd
}

// writeDownload stores data at local, or on stdout when local is "-".
func writeDownload(cmd *cobra.Command, local string, data []byte) error {
	if local == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(local, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", local, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", local, formatSize(int64(len(data))))
	return nil
}
