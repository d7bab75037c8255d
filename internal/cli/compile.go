package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/segment/internal/segment"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Existing string
}

// NewCompileCommand creates the compile command: a stateless one-shot
// parse that touches no database.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <utterance>",
		Short: "Parse one utterance without touching any stored segment",
		Long: `Parse a single utterance and print the resulting conditions.

Existing conditions can be supplied as a JSON array to exercise
duplicate suppression and removal resolution:

  segment compile "or customers from UK" --existing '[{"id":"c1","field":"Customer Tag","operator":"contains","value":"VIP","logicOperator":"AND"}]'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Existing, "existing", "[]", "existing conditions as a JSON array")

	return cmd
}

func runCompile(opts *CompileOptions, utterance string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var existing []segment.Condition
	if err := json.Unmarshal([]byte(opts.Existing), &existing); err != nil {
		return WrapExitError(ExitCommandError, "invalid --existing JSON", err)
	}

	p, err := newParser(opts.RootOptions)
	if err != nil {
		return err
	}

	result := p.Parse(utterance, existing)

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	printResult(cmd, result)
	return nil
}

func printResult(cmd *cobra.Command, result segment.ParseResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Response)
	for _, cond := range result.NewConditions {
		fmt.Fprintf(out, "  + %s\n", formatCondition(cond))
	}
	for _, cond := range result.RemovedConditions {
		fmt.Fprintf(out, "  - %s\n", formatCondition(cond))
	}
	if result.UpdatePreviousLogic != "" {
		fmt.Fprintf(out, "  previous condition joins with %s\n", result.UpdatePreviousLogic)
	}
}

func formatCondition(cond segment.Condition) string {
	s := fmt.Sprintf("%s %s %s", cond.Field, cond.Operator, cond.Value)
	if cond.TimeRange != "" {
		s += fmt.Sprintf(" (%s)", cond.TimeRange)
	}
	return s
}
