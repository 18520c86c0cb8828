// Command lark is the development CLI that exercises the lexer,
// parser, checker, and task scheduler end to end. None of it is part
// of the spec surface (spec.md's Non-goals exclude a CLI entry point);
// it exists because every other package needs a caller and the teacher
// ships one too.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/lark/cmd/lark/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
