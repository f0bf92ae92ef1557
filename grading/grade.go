// Package grading implements the Cookbook and CookbookBundle grading
// engine: a Cookbook partitions rule names into MUST/SHOULD/MAY tiers and
// derives a letter Grade from a rules.Result; a CookbookBundle composes
// several Cookbooks and reports the worst (or a named decisive) Grade
// among them.
package grading

import (
	"fmt"
	"strings"
)

// Grade is a letter grade from A (best) to F (worst), modeled directly on
// cookbooks.py's Grade enum and its "one tier per unsuccessful SHOULD"
// decrement rule.
type Grade int

const (
	A Grade = iota
	B
	C
	D
	E
	F
)

func (g Grade) String() string {
	switch g {
	case A:
		return "A"
	case B:
		return "B"
	case C:
		return "C"
	case D:
		return "D"
	case E:
		return "E"
	case F:
		return "F"
	default:
		return "?"
	}
}

// ParseGrade parses a single letter A-F (case-insensitive) into a Grade,
// for a host CLI/MCP surface translating a "--passing" flag into the
// Grade the computed result must be at least as good as (§6 exit codes).
func ParseGrade(s string) (Grade, error) {
	switch strings.ToUpper(s) {
	case "A":
		return A, nil
	case "B":
		return B, nil
	case "C":
		return C, nil
	case "D":
		return D, nil
	case "E":
		return E, nil
	case "F":
		return F, nil
	default:
		return 0, fmt.Errorf("grading: invalid grade %q: must be one of A, B, C, D, E, F", s)
	}
}

// Lower returns the next grade down from g, clamped at F.
func (g Grade) Lower() Grade {
	if g >= F {
		return F
	}
	return g + 1
}

// Compare returns -1, 0, or 1 as g is better than, equal to, or worse than
// other (A is the best grade, F the worst).
func (g Grade) Compare(other Grade) int {
	switch {
	case g < other:
		return -1
	case g > other:
		return 1
	default:
		return 0
	}
}

// Worst returns whichever of g and other is closer to F.
func Worst(g, other Grade) Grade {
	if g.Compare(other) >= 0 {
		return g
	}
	return other
}

// MarshalText renders the grade's single-letter form.
func (g Grade) MarshalText() ([]byte, error) {
	if g < A || g > F {
		return nil, fmt.Errorf("grading: invalid grade %d", int(g))
	}
	return []byte(g.String()), nil
}
