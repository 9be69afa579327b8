package app

import (
	"fmt"
	"path/filepath"

	yadisk "github.com/natserract/yadisk/pkg/yandex/disk"
	"github.com/spf13/cobra"
)

// NewPublishCommand creates the publish command, which opens public access
// and prints the public URL.
func NewPublishCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish PATH",
		Short: "Share a file or folder by public link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.client.Publish(cmd.Context(), args[0]); err != nil {
				return err
			}
			res, err := s.client.GetMetaInformation(cmd.Context(), args[0], &yadisk.MetaOptions{
				Fields: []string{"public_url", "public_key"},
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.PublicURL)
			return nil
		},
	}

	return cmd
}

// NewUnpublishCommand creates the unpublish command.
func NewUnpublishCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpublish PATH",
		Short: "Stop sharing a file or folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.client.Unpublish(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unpublished %s\n", args[0])
			return nil
		},
	}

	return cmd
}

// NewPublicCommand creates the public command group for published
// resources: the owner's own list and any resource by public key or URL.
func NewPublicCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "public",
		Short: "Work with published resources",
	}

	cmd.AddCommand(
		newPublicListCommand(globalOpts),
		newPublicGetCommand(globalOpts),
		newPublicDownloadCommand(globalOpts),
	)

	return cmd
}

func newPublicListCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &yadisk.PublicListOptions{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List resources you have published",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.client.ListPublicResources(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printResources(cmd, list.Items)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "number of resources to return")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "number of resources to skip")
	cmd.Flags().StringVar(&opts.Type, "type", "", "only resources of this type (file or dir)")

	return cmd
}

func newPublicGetCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &yadisk.PublicMetaOptions{}

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Show metadata of a public resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.client.GetPublicResource(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&opts.Path, "path", "", "resource inside a public folder")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "number of folder entries to return")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "number of folder entries to skip")

	return cmd
}

func newPublicDownloadCommand(globalOpts *GlobalOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "download KEY LOCAL",
		Short: "Download a public file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			data, err := s.client.DownloadPublicFile(cmd.Context(), args[0], path)
			if err != nil {
				return err
			}
			return writeDownload(cmd, filepath.Clean(args[1]), data)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "file inside a public folder")

	return cmd
}
