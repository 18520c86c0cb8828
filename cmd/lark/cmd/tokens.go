package cmd

import (
	"fmt"

	"github.com/cwbudde/lark/internal/lexer"
	"github.com/cwbudde/lark/internal/token"
	"github.com/spf13/cobra"
)

var (
	tokensEval       string
	tokensShowPos    bool
	tokensOnlyErrors bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a lark file or expression",
	Long: `Tokenize a lark program and print the resulting token stream.

Examples:
  lark tokens script.lark
  lark tokens -e "var x: Number = 1 + 2;"
  lark tokens --show-pos --only-errors script.lark`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensEval, "eval", "e", "", "tokenize inline source instead of reading a file")
	tokensCmd.Flags().BoolVar(&tokensShowPos, "show-pos", false, "show token positions (line:column)")
	tokensCmd.Flags().BoolVar(&tokensOnlyErrors, "only-errors", false, "show only illegal tokens")
}

func runTokens(_ *cobra.Command, args []string) error {
	src, _, err := readSource(tokensEval, args)
	if err != nil {
		return err
	}

	lx := lexer.New(src)
	count, errCount := 0, 0
	for {
		tok := lx.Scan()
		if tok.Kind == token.ILLEGAL {
			errCount++
		}
		if !tokensOnlyErrors || tok.Kind == token.ILLEGAL {
			printToken(tok)
		}
		count++
		if tok.Kind == token.EOF {
			break
		}
	}

	if errCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errCount)
	}
	return nil
}

func printToken(tok token.Token) {
	out := fmt.Sprintf("[%-14s]", tok.Kind)
	switch {
	case tok.Kind == token.EOF:
		out += " EOF"
	case tok.Literal != nil:
		out += fmt.Sprintf(" %q", tok.Lexeme)
	case tok.Lexeme != "":
		out += fmt.Sprintf(" %q", tok.Lexeme)
	}
	if tokensShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(out)
}
