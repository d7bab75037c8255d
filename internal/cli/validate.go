package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/segment/internal/rules"
)

// ValidationView is the JSON payload for a pack validation run.
type ValidationView struct {
	Valid    bool     `json:"valid"`
	Patterns int      `json:"patterns"`
	Errors   []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <pack-dir>",
		Short: "Validate a CUE pattern pack without using it",
		Long: `Compile a pattern-pack directory and report every schema problem:
missing keyword groups, unknown fields, operators invalid for their
field, empty responses. Nothing is written; exit code 1 signals an
invalid pack.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, errs := rules.Load(dir, rules.LoadModeCollectAll)

	// Directory-level failures are command errors, not validation
	// verdicts.
	if result == nil && len(errs) > 0 {
		var loadErr *rules.LoadError
		if errors.As(errs[0], &loadErr) && loadErr.Code != rules.ErrCodeGeneric {
			return WrapExitError(ExitCommandError, "loading pack", errs[0])
		}
	}

	view := ValidationView{Valid: len(errs) == 0}
	if result != nil {
		formatter.VerboseLog("Found %d CUE file(s) in %s", result.FileCount, dir)
		if result.Pack != nil {
			view.Patterns = len(result.Pack.Patterns)
		}
	}
	for _, err := range errs {
		view.Errors = append(view.Errors, err.Error())
	}

	if opts.Format == "json" {
		if err := formatter.Success(view); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		if view.Valid {
			fmt.Fprintf(out, "Pack is valid: %d pattern(s).\n", view.Patterns)
		} else {
			fmt.Fprintf(out, "Pack is invalid: %d error(s).\n", len(view.Errors))
			for _, msg := range view.Errors {
				fmt.Fprintf(out, "  %s\n", msg)
			}
		}
	}

	if !view.Valid {
		return NewExitError(ExitFailure, "pattern pack failed validation")
	}
	return nil
}
