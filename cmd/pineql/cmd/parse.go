package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pineql/internal/lexer"
	"github.com/cwbudde/pineql/internal/parser"
	"github.com/spf13/cobra"
)

var dumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a pine script and report parse errors",
	Long: `parse is a debugging aid: it runs the lexer and parser over a file
and reports the parse errors recovered along the way (panic-mode
synchronization on NEWLINE/DEDENT/EOF), optionally dumping the
reconstructed source form of the parsed AST.

Examples:
  pineql parse script.pine
  pineql parse --dump-ast script.pine`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	tokens, lexErrs := lexer.Lex(string(content))
	for _, le := range lexErrs {
		fmt.Fprintf(os.Stderr, "%s at %s: %s\n", le.Code, le.Pos, le.Message)
	}
	if len(lexErrs) > 0 {
		return fmt.Errorf("found %d lex error(s), aborting parse", len(lexErrs))
	}

	prog, parseErrs := parser.ParseProgram(tokens)

	if dumpAST {
		fmt.Print(prog.String())
	}

	for _, pe := range parseErrs {
		fmt.Fprintf(os.Stderr, "E002 %s\n", pe.Error())
	}
	if len(parseErrs) > 0 {
		return fmt.Errorf("found %d parse error(s)", len(parseErrs))
	}
	return nil
}
