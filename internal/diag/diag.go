// Package diag implements diagnostic collection and formatting for both
// the parser and the checker (spec §6, §7). It is the one place both
// subsystems funnel errors through, grounded on the teacher's
// internal/errors.CompilerError shape.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/cwbudde/lark/internal/token"
)

// Severity distinguishes hard errors from the soft warnings spec §4.3
// calls for (argument-count mismatches, OQ-4).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "Warning"
	}
	return "Error"
}

// Phase records which subsystem raised the diagnostic, for grouping and
// for the parser's panic-mode bookkeeping (only parse-phase diagnostics
// participate in synchronize()).
type Phase int

const (
	PhaseParse Phase = iota
	PhaseCheck
)

// Diagnostic is one reported problem.
type Diagnostic struct {
	File     string
	Pos      token.Position
	Lexeme   string // empty for "at end" diagnostics
	AtEnd    bool
	Message  string
	Severity Severity
	Phase    Phase
}

// Format renders the diagnostic per spec §6:
// "[line N] Error[ at '<lexeme>'|' at end']: <message>".
func (d Diagnostic) Format() string {
	var where string
	switch {
	case d.AtEnd:
		where = " at end"
	case d.Lexeme != "":
		where = fmt.Sprintf(" at '%s'", d.Lexeme)
	}
	return fmt.Sprintf("[line %d] %s%s: %s", d.Pos.Line, d.Severity, where, d.Message)
}

// Bag accumulates diagnostics across a parse+check session, gating
// cascades with a panic-mode flag exactly as spec §4.1/§7 describe.
type Bag struct {
	diagnostics []Diagnostic
	panicMode   bool
}

// NewBag returns an empty diagnostic bag.
func NewBag() *Bag { return &Bag{} }

// Report records a diagnostic unless the bag is in panic mode, in which
// case it is swallowed to avoid cascading noise (spec §4.1, §7).
func (b *Bag) Report(d Diagnostic) {
	if b.panicMode {
		return
	}
	b.panicMode = true
	b.diagnostics = append(b.diagnostics, d)
}

// ReportAlways records a diagnostic regardless of panic-mode gating.
// Used by the checker, which — unlike the parser — "never aborts on the
// first error; it attempts to continue in order to surface multiple
// diagnostics" (spec §7): the checker has no panic-mode cascade to
// suppress in the first place.
func (b *Bag) ReportAlways(d Diagnostic) {
	b.diagnostics = append(b.diagnostics, d)
}

// Synchronize clears panic mode, called at statement boundaries during
// parser error recovery (spec §4.1).
func (b *Bag) Synchronize() { b.panicMode = false }

// InPanicMode reports whether the bag is currently suppressing
// cascading diagnostics.
func (b *Bag) InPanicMode() bool { return b.panicMode }

// HadError reports whether any error-severity diagnostic was recorded.
func (b *Bag) HadError() bool {
	for _, d := range b.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// All returns every diagnostic, sorted by natural order of (file, line)
// so that multi-file sessions (a main file plus its imports) don't sort
// file2.lark:9 before file10.lark:3.
func (b *Bag) All() []Diagnostic {
	out := make([]Diagnostic, len(b.diagnostics))
	copy(out, b.diagnostics)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return natural.Less(out[i].File, out[j].File)
		}
		return out[i].Pos.Line < out[j].Pos.Line
	})
	return out
}

// FormatAll renders every diagnostic on its own line, file-prefixed when
// more than one file contributed diagnostics.
func (b *Bag) FormatAll() string {
	all := b.All()
	multiFile := false
	for i := 1; i < len(all); i++ {
		if all[i].File != all[0].File {
			multiFile = true
			break
		}
	}
	var sb strings.Builder
	for i, d := range all {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if multiFile && d.File != "" {
			sb.WriteString(d.File)
			sb.WriteString(": ")
		}
		sb.WriteString(d.Format())
	}
	return sb.String()
}
