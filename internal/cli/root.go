// Package cli implements the segment command line interface: a thin
// caller around the parser core that persists segment definitions in
// a local SQLite store and applies each parse result the way the
// engine contract prescribes.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/segment/internal/parser"
	"github.com/roach88/segment/internal/rules"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	DBPath  string // SQLite database path
	Rules   string // optional pattern-pack directory
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the segment CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Compile plain-English audience criteria into segment conditions",
		Long: `segment turns utterances like "VIP customers who purchased in the
last 30 days" into structured filter conditions, and keeps the running
condition list for each named segment in a local database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", defaultDBPath(), "path to the segment database")
	cmd.PersistentFlags().StringVar(&opts.Rules, "rules", "", "directory with a replacement CUE pattern pack")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewSayCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func defaultDBPath() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir + "/.segment.db"
	}
	return "segment.db"
}

// loadPack returns the pattern pack selected by --rules, or the
// built-in pack when the flag is unset.
func loadPack(opts *RootOptions) (*rules.Pack, error) {
	if opts.Rules == "" {
		return rules.Builtin(), nil
	}
	result, errs := rules.Load(opts.Rules, rules.LoadModeFailFast)
	if len(errs) > 0 {
		return nil, WrapExitError(ExitCommandError, "loading pattern pack", errs[0])
	}
	slog.Debug("loaded pattern pack", "dir", opts.Rules, "patterns", len(result.Pack.Patterns))
	return result.Pack, nil
}

// newParser builds the parser configured by the global flags.
func newParser(opts *RootOptions) (*parser.Parser, error) {
	pack, err := loadPack(opts)
	if err != nil {
		return nil, err
	}
	return parser.New(parser.WithPack(pack)), nil
}
