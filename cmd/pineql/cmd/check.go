package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pineql/internal/config"
	"github.com/cwbudde/pineql/internal/errors"
	"github.com/cwbudde/pineql/internal/pipeline"
	"github.com/cwbudde/pineql/internal/report"
	"github.com/spf13/cobra"
)

var (
	formatFlag   string
	colorFlag    bool
	disableFlags []string
)

// exit is os.Exit, indirected so tests can observe the requested exit code
// instead of killing the test process.
var exit = os.Exit

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Analyze a pine script and report diagnostics",
	Long: `check runs the full pipeline (lex, parse, resolve, rule engine) over a
pine script and prints a diagnostic report.

Exit codes:
  0  no errors (warnings may still be present)
  1  one or more error-severity diagnostics
  2  the file could not be read`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&formatFlag, "format", "text", "output format: text or json")
	checkCmd.Flags().BoolVar(&colorFlag, "color", false, "colorize text output")
	checkCmd.Flags().StringSliceVar(&disableFlags, "disable", nil, "diagnostic codes to suppress")
}

func runCheck(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", filename, err)
		exit(2)
		return nil
	}

	var fmtOpt config.Format
	if formatFlag == "json" {
		fmtOpt = config.FormatJSON
	}

	opts := []config.Option{config.WithFormat(fmtOpt), config.WithColor(colorFlag)}
	if len(disableFlags) > 0 {
		opts = append(opts, config.WithDisabledRules(disableFlags...))
	}

	res, err := pipeline.Analyze(string(content), filename, opts...)
	if err != nil {
		return err
	}

	switch fmtOpt {
	case config.FormatJSON:
		out, err := res.Report.JSON()
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		renderer := errors.NewRenderer(filename)
		fmt.Print(report.Text(res.Sink, renderer, colorFlag))
	}

	if !res.Report.Valid {
		exit(1)
		return nil
	}
	return nil
}
