package cmd

import (
	"fmt"

	"github.com/cwbudde/lark/internal/ast"
	"github.com/cwbudde/lark/internal/diag"
	"github.com/cwbudde/lark/internal/parser"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var (
	parseEval    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse lark source and display the AST",
	Long: `Parse lark source code and display the resulting AST.

Without --dump-ast, each top-level statement is printed via its own
String() method. With --dump-ast, the full tree is rendered with
kr/pretty for field-level inspection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading a file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST with field-level detail")
}

func runParseCmd(_ *cobra.Command, args []string) error {
	src, filename, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	program, diags := parseSource(filename, src)
	if diags.HadError() {
		fmt.Println(diags.FormatAll())
		return fmt.Errorf("parsing failed")
	}

	if parseDumpAST {
		pretty.Println(program)
		return nil
	}
	for _, stmt := range program.Statements {
		fmt.Println(stmt.String())
	}
	return nil
}

func parseSource(filename, src string) (*ast.Program, *diag.Bag) {
	pool := ast.NewPool()
	diags := diag.NewBag()
	p := parser.New(filename, src, pool, diags)
	program, _ := p.ParseProgram()
	return program, diags
}
