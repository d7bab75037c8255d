package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/segment/internal/store"
)

// ResetOptions holds flags for the reset command.
type ResetOptions struct {
	*RootOptions
	Segment string
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "reset",
		Short:         "Clear a stored segment's conditions and transcript",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Segment, "segment", "default", "segment name")

	return cmd
}

func runReset(opts *ResetOptions, cmd *cobra.Command) error {
	s, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening segment database", err)
	}
	defer s.Close()

	if err := s.Reset(cmd.Context(), opts.Segment); err != nil {
		return WrapExitError(ExitCommandError, "resetting segment", err)
	}

	pack, err := loadPack(opts.RootOptions)
	if err != nil {
		return err
	}
	confirmation := "Done!"
	if len(pack.Responses.Confirmation) > 0 {
		confirmation = pack.Responses.Confirmation[0]
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Segment %q is empty.\n", confirmation, opts.Segment)
	return nil
}
