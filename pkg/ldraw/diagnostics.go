package ldraw

import "fmt"

// DiagKind classifies a parser diagnostic.
type DiagKind int

// Diagnostic kinds. None of these abort a parse; they record conditions a
// caller may want to surface.
const (
	DiagUnknownLineType DiagKind = iota
	DiagMalformedLine
	DiagMalformedMeta
	DiagPartNotFound
	DiagCycle
	DiagSuspiciousFilename
	DiagDegenerateTriangle
)

// String returns a human-readable kind name.
func (k DiagKind) String() string {
	switch k {
	case DiagUnknownLineType:
		return "unknown-line-type"
	case DiagMalformedLine:
		return "malformed-line"
	case DiagMalformedMeta:
		return "malformed-meta"
	case DiagPartNotFound:
		return "part-not-found"
	case DiagCycle:
		return "cyclic-reference"
	case DiagSuspiciousFilename:
		return "suspicious-filename"
	case DiagDegenerateTriangle:
		return "degenerate-triangle"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Diagnostic is one non-fatal condition recorded during parsing.
type Diagnostic struct {
	Kind   DiagKind
	File   string // file being parsed when the condition was seen
	Line   int    // 1-based line number within File
	Detail string
}

// String formats the diagnostic as "file:line: kind: detail".
func (d Diagnostic) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Kind)
	}
	return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Kind, d.Detail)
}
