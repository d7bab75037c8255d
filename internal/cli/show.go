package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/segment/internal/segment"
	"github.com/roach88/segment/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Segment    string
	Transcript bool
}

// showView is the JSON payload for the show command.
type showView struct {
	Segment    string              `json:"segment"`
	Conditions []segment.Condition `json:"conditions"`
	Transcript []transcriptView    `json:"transcript,omitempty"`
}

type transcriptView struct {
	Text     string `json:"text"`
	Response string `json:"response"`
	Outcome  string `json:"outcome"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "show",
		Short:         "Print a stored segment's conditions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Segment, "segment", "default", "segment name")
	cmd.Flags().BoolVar(&opts.Transcript, "transcript", false, "include the chat transcript")

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening segment database", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	conditions, err := s.Conditions(ctx, opts.Segment)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading conditions", err)
	}

	view := showView{Segment: opts.Segment, Conditions: conditions}
	if opts.Transcript {
		transcript, err := s.Transcript(ctx, opts.Segment)
		if err != nil {
			return WrapExitError(ExitCommandError, "reading transcript", err)
		}
		for _, u := range transcript {
			view.Transcript = append(view.Transcript, transcriptView{
				Text:     u.Text,
				Response: u.Response,
				Outcome:  string(u.Outcome),
			})
		}
	}

	if opts.Format == "json" {
		return formatter.Success(view)
	}

	out := cmd.OutOrStdout()
	if len(conditions) == 0 {
		fmt.Fprintf(out, "Segment %q has no conditions.\n", opts.Segment)
	} else {
		fmt.Fprintf(out, "Segment %q:\n", opts.Segment)
		for i, cond := range conditions {
			fmt.Fprintf(out, "  %d. %s", i+1, formatCondition(cond))
			if i < len(conditions)-1 {
				fmt.Fprintf(out, "  [%s]", cond.LogicOperator)
			}
			fmt.Fprintln(out)
		}
	}

	if opts.Transcript {
		fmt.Fprintln(out)
		for _, u := range view.Transcript {
			fmt.Fprintf(out, "> %s\n", u.Text)
			fmt.Fprintf(out, "  %s\n", u.Response)
		}
	}

	return nil
}
