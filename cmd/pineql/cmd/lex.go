package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pineql/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a pine script and print the resulting tokens",
	Long: `lex is a debugging aid: it prints every token the lexer produces,
including the synthesized INDENT/DEDENT/NEWLINE markers, useful for
tracking down indentation-sensitivity bugs.

Examples:
  pineql lex script.pine
  pineql lex --show-type --show-pos script.pine
  pineql lex --only-errors script.pine`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only lex errors")
}

func runLex(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(content))
		fmt.Println("---")
	}

	tokens, errs := lexer.Lex(string(content))

	if !onlyErrors {
		for _, tok := range tokens {
			printToken(tok)
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", len(tokens))
	}

	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%s at %s: %s\n", e.Code, e.Pos, e.Message)
	}
	if len(errs) > 0 {
		return fmt.Errorf("found %d lex error(s)", len(errs))
	}
	return nil
}

func printToken(tok lexer.Token) {
	var out string
	if showType {
		out = fmt.Sprintf("[%-8s]", tok.Kind)
	}
	if tok.Lexeme == "" {
		out += " " + tok.Kind.String()
	} else {
		out += fmt.Sprintf(" %q", tok.Lexeme)
	}
	if showPos {
		out += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(out)
}
