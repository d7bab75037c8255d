package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/segment/internal/store"
)

// SayOptions holds flags for the say command.
type SayOptions struct {
	*RootOptions
	Segment string
}

// NewSayCommand creates the say command: parse one utterance against
// a stored segment and persist the outcome.
func NewSayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "say <utterance>",
		Short: "Refine a stored segment with one utterance",
		Long: `Parse an utterance against the named segment's existing conditions
and apply the result: retroactive logic update, removals, then new
conditions, with the exchange appended to the segment's transcript.

Example:
  segment say --segment spring-sale "VIP customers who purchased in the last 30 days"
  segment say --segment spring-sale "or customers from UK"
  segment say --segment spring-sale "remove the purchase condition"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Segment, "segment", "default", "segment name")

	return cmd
}

func runSay(opts *SayOptions, utterance string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	p, err := newParser(opts.RootOptions)
	if err != nil {
		return err
	}

	s, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening segment database", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.EnsureSegment(ctx, opts.Segment); err != nil {
		return WrapExitError(ExitCommandError, "ensuring segment", err)
	}

	existing, err := s.Conditions(ctx, opts.Segment)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading conditions", err)
	}

	result := p.Parse(utterance, existing)
	slog.Debug("parsed utterance",
		"segment", opts.Segment,
		"outcome", result.Outcome,
		"new", len(result.NewConditions),
		"removed", len(result.RemovedConditions),
	)

	if err := s.Apply(ctx, opts.Segment, utterance, result); err != nil {
		return WrapExitError(ExitCommandError, "applying parse result", err)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	printResult(cmd, result)
	conditions, err := s.Conditions(ctx, opts.Segment)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading conditions", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Segment %q now has %d condition(s).\n", opts.Segment, len(conditions))
	return nil
}
