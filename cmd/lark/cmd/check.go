package cmd

import (
	"fmt"

	"github.com/cwbudde/lark/internal/checker"
	"github.com/cwbudde/lark/internal/module"
	"github.com/spf13/cobra"
)

var (
	checkEval string
	checkJSON bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse and type-check lark source, reporting diagnostics",
	Long: `Parse and type-check a lark program, printing every diagnostic the
parser and checker produce (spec §6's "[line N] Error...: message"
format by default, or a JSON array with --json for editor tooling).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkEval, "eval", "e", "", "check inline source instead of reading a file")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit diagnostics as a JSON array")
}

func runCheck(_ *cobra.Command, args []string) error {
	src, filename, err := readSource(checkEval, args)
	if err != nil {
		return err
	}

	program, diags := parseSource(filename, src)
	if !diags.HadError() {
		cache := module.NewCache()
		if err := module.LoadBuiltins(cache); err != nil {
			return fmt.Errorf("loading builtin modules: %w", err)
		}
		c := checker.New(filename, cache, nil)
		diags = c.Check(program)
	}

	if checkJSON {
		payload, err := diags.ToJSON()
		if err != nil {
			return fmt.Errorf("encoding diagnostics: %w", err)
		}
		fmt.Println(payload)
	} else if len(diags.All()) > 0 {
		fmt.Println(diags.FormatAll())
	}

	if diags.HadError() {
		return fmt.Errorf("check failed with %d diagnostic(s)", len(diags.All()))
	}
	return nil
}
