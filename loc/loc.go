// Package loc provides opaque program locations and the diagnostic trace
// steps that bound provenance renders into.
package loc

import "fmt"

// A Loc identifies a position in the analyzed program. The algebra never
// inspects it beyond equality and printing.
type Loc struct {
	File string
	Line int
}

func L(file string, line int) Loc {
	return Loc{File: file, Line: line}
}

func (l Loc) IsZero() bool {
	return l == Loc{}
}

func (l Loc) String() string {
	if l.IsZero() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Compare orders locations by file, then line.
func (l Loc) Compare(o Loc) int {
	if l.File != o.File {
		if l.File < o.File {
			return -1
		}
		return 1
	}
	switch {
	case l.Line < o.Line:
		return -1
	case l.Line > o.Line:
		return 1
	default:
		return 0
	}
}

// A Step is one rendered element of a diagnostic trace.
type Step struct {
	Loc Loc
	Msg string
}

func (s Step) String() string {
	return fmt.Sprintf("%s: %s", s.Loc, s.Msg)
}
