package app

import (
	"fmt"
	"text/tabwriter"

	yadisk "github.com/natserract/yadisk/pkg/yandex/disk"
	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command, which shows disk capacity.
func NewInfoCommand(globalOpts *GlobalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show disk capacity and usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			info, err := s.client.GetDiskInformation(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), info)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if info.User != nil {
				fmt.Fprintf(w, "User:\t%s\n", info.User.Login)
			}
			fmt.Fprintf(w, "Total:\t%s\n", formatSize(info.TotalSpace))
			fmt.Fprintf(w, "Used:\t%s\n", formatSize(info.UsedSpace))
			fmt.Fprintf(w, "Free:\t%s\n", formatSize(info.FreeSpace()))
			fmt.Fprintf(w, "Trash:\t%s\n", formatSize(info.TrashSize))
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw API response")

	return cmd
}

// MetaOptions holds options for the meta command
type MetaOptions struct {
	*GlobalOptions
	Limit  int
	Offset int
	Sort   string
	Fields []string
}

// NewMetaCommand creates the meta command.
//
// For a file it prints the metadata as JSON. For a folder the listing is
// embedded in the output and can be paged with --limit and --offset.
func NewMetaCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &MetaOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "meta PATH",
		Short: "Show metadata of a file or folder",
		Example: `  # Show the root folder
  yadisk meta disk:/

  # Newest 10 entries of a folder
  yadisk meta disk:/photos --sort=-created --limit 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.client.GetMetaInformation(cmd.Context(), args[0], &yadisk.MetaOptions{
				Limit:  opts.Limit,
				Offset: opts.Offset,
				Sort:   opts.Sort,
				Fields: opts.Fields,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "number of folder entries to return")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "number of folder entries to skip")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort key, prefix with - to reverse (name, path, created, modified, size)")
	cmd.Flags().StringSliceVar(&opts.Fields, "fields", nil, "response fields to include")

	return cmd
}

// NewFilesCommand creates the files command, a flat listing of all files.
func NewFilesCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &yadisk.FilesOptions{}

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List all files on the disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.client.ListFiles(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printResources(cmd, list.Items)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "number of files to return")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "number of files to skip")
	cmd.Flags().StringSliceVar(&opts.MediaType, "media-type", nil, "only files of these media types (image, video, document, ...)")

	return cmd
}

// NewRecentCommand creates the recent command, which lists the files
// uploaded last.
func NewRecentCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &yadisk.LastUploadedOptions{}

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently uploaded files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.client.LastUploaded(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printResources(cmd, list.Items)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "number of files to return")
	cmd.Flags().StringSliceVar(&opts.MediaType, "media-type", nil, "only files of these media types")

	return cmd
}

// printResources prints one resource per line as a table.
func printResources(cmd *cobra.Command, items []yadisk.Resource) error {
	if len(items) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No resources found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tTYPE\tSIZE\tMODIFIED")
	for _, item := range items {
		size := "-"
		if !item.IsDir() {
			size = formatSize(item.Size)
		}
		modified := "-"
		if !item.Modified.IsZero() {
			modified = item.Modified.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.Path, item.Type, size, modified)
	}
	return w.Flush()
}

// formatSize renders a byte count with a binary unit.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
