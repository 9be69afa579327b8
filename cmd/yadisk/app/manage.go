package app

import (
	"fmt"

	yadisk "github.com/natserract/yadisk/pkg/yandex/disk"
	"github.com/spf13/cobra"
)

// NewCopyCommand creates the cp command.
func NewCopyCommand(globalOpts *GlobalOptions) *cobra.Command {
	return newTransferCommand(globalOpts, "cp", "Copy a file or folder",
		func(s *session, cmd *cobra.Command, from, to string, opts *yadisk.TransferOptions) (*yadisk.OperationResult, error) {
			return s.client.Copy(cmd.Context(), from, to, opts)
		})
}

// NewMoveCommand creates the mv command.
func NewMoveCommand(globalOpts *GlobalOptions) *cobra.Command {
	return newTransferCommand(globalOpts, "mv", "Move or rename a file or folder",
		func(s *session, cmd *cobra.Command, from, to string, opts *yadisk.TransferOptions) (*yadisk.OperationResult, error) {
			return s.client.Move(cmd.Context(), from, to, opts)
		})
}

type transferFunc func(s *session, cmd *cobra.Command, from, to string, opts *yadisk.TransferOptions) (*yadisk.OperationResult, error)

func newTransferCommand(globalOpts *GlobalOptions, use, short string, transfer transferFunc) *cobra.Command {
	opts := &yadisk.TransferOptions{}

	cmd := &cobra.Command{
		Use:   use + " FROM TO",
		Short: short,
		Long: short + `.

Large folders are processed by the API in the background; the command waits
until the operation finishes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := transfer(s, cmd, args[0], args[1], opts)
			if err != nil {
				return err
			}
			return printOperation(cmd.OutOrStdout(), use+" "+args[0]+" -> "+args[1], result)
		},
	}

	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "replace the destination if it exists")

	return cmd
}

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &yadisk.DeleteOptions{}

	cmd := &cobra.Command{
		Use:   "rm PATH",
		Short: "Delete a file or folder",
		Long: `Delete a file or folder.

Resources go to the trash unless --permanently is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.client.Delete(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return printOperation(cmd.OutOrStdout(), "rm "+args[0], result)
		},
	}

	cmd.Flags().BoolVar(&opts.Permanently, "permanently", false, "delete without moving to the trash")

	return cmd
}

// NewMkdirCommand creates the mkdir command.
func NewMkdirCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mkdir PATH",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(globalOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.client.Mkdir(cmd.Context(), args[0], nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", args[0])
			return nil
		},
	}

	return cmd
}
