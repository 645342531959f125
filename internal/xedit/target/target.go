package target

import (
	"strconv"
	"strings"

	xerrors "github.com/navicore/xedit/internal/xedit/errors"
)

// Kind tags the shape of a Target value.
type Kind int

const (
	Absolute Kind = iota
	Relative
	StringForward
	StringBackward
	Star
	And
	Or
)

// Target is a parsed line-address expression. Only the fields relevant to
// Kind are meaningful: N for Absolute, Offset for Relative, Str for the
// two string kinds, Left/Right for And/Or.
type Target struct {
	Kind   Kind
	N      int
	Offset int64
	Str    string
	Left   *Target
	Right  *Target
}

// LineTextFunc looks up the text of a 1-based line number, reporting
// whether that line exists.
type LineTextFunc func(lineNum int) (string, bool)

// Parse parses a target expression. Whitespace is trimmed from the whole
// input and from each side of a compound operator before recursing.
func Parse(input string) (*Target, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, xerrors.New(xerrors.InvalidTarget, "Empty target")
	}
	return parseCompound(input)
}

// parseCompound handles OR, the lowest-precedence operator: it is checked
// first at each level so that it binds last (loosest).
func parseCompound(input string) (*Target, error) {
	if pos := findOperator(input, '|'); pos >= 0 {
		left, err := parseAnd(strings.TrimSpace(input[:pos]))
		if err != nil {
			return nil, err
		}
		right, err := parseCompound(strings.TrimSpace(input[pos+1:]))
		if err != nil {
			return nil, err
		}
		return &Target{Kind: Or, Left: left, Right: right}, nil
	}
	return parseAnd(input)
}

// parseAnd handles AND, which binds tighter than OR.
func parseAnd(input string) (*Target, error) {
	if pos := findOperator(input, '&'); pos >= 0 {
		left, err := parseSimple(strings.TrimSpace(input[:pos]))
		if err != nil {
			return nil, err
		}
		right, err := parseAnd(strings.TrimSpace(input[pos+1:]))
		if err != nil {
			return nil, err
		}
		return &Target{Kind: And, Left: left, Right: right}, nil
	}
	return parseSimple(input)
}

// findOperator finds op outside of /delimited/ spans, or -1.
func findOperator(input string, op rune) int {
	inDelim := false
	for i, c := range input {
		switch {
		case c == '/':
			inDelim = !inDelim
		case c == op && !inDelim:
			return i
		}
	}
	return -1
}

func parseSimple(input string) (*Target, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, xerrors.New(xerrors.InvalidTarget, "Empty target")
	}

	if input == "*" {
		return &Target{Kind: Star}, nil
	}

	if rest, ok := strings.CutPrefix(input, ":"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return nil, xerrors.Newf(xerrors.InvalidTarget, "Invalid line number: %s", rest)
		}
		return &Target{Kind: Absolute, N: n}, nil
	}

	if rest, ok := strings.CutPrefix(input, "+"); ok {
		if rest == "" {
			return &Target{Kind: Relative, Offset: 1}, nil
		}
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return nil, xerrors.Newf(xerrors.InvalidTarget, "Invalid offset: +%s", rest)
		}
		return &Target{Kind: Relative, Offset: n}, nil
	}

	if rest, ok := strings.CutPrefix(input, "-"); ok {
		if strings.HasPrefix(rest, "/") {
			s := extractDelimited(rest, '/')
			return &Target{Kind: StringBackward, Str: s}, nil
		}
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return nil, xerrors.Newf(xerrors.InvalidTarget, "Invalid offset: %s", input)
		}
		return &Target{Kind: Relative, Offset: -n}, nil
	}

	if strings.HasPrefix(input, "/") {
		s := extractDelimited(input, '/')
		return &Target{Kind: StringForward, Str: s}, nil
	}

	if n, err := strconv.ParseInt(input, 10, 64); err == nil {
		return &Target{Kind: Relative, Offset: n}, nil
	}

	return nil, xerrors.Newf(xerrors.InvalidTarget, "Invalid target: %s", input)
}

// extractDelimited returns the text between the leading delimiter and its
// matching close, or everything after the leading delimiter if the close
// is missing (a tolerated, not rejected, malformation).
func extractDelimited(input string, delim byte) string {
	rest := input[1:]
	if end := strings.IndexByte(rest, delim); end >= 0 {
		return rest[:end]
	}
	return rest
}

// MatchesLine is the content predicate used by the ALL filter and by
// And/Or resolution. Positional targets (Absolute, Relative, Star) never
// match by content.
func (t *Target) MatchesLine(caseRespect bool, lineText string) bool {
	switch t.Kind {
	case StringForward, StringBackward:
		needle, haystack := t.Str, lineText
		if !caseRespect {
			needle = strings.ToUpper(needle)
			haystack = strings.ToUpper(haystack)
		}
		return strings.Contains(haystack, needle)
	case And:
		return t.Left.MatchesLine(caseRespect, lineText) && t.Right.MatchesLine(caseRespect, lineText)
	case Or:
		return t.Left.MatchesLine(caseRespect, lineText) || t.Right.MatchesLine(caseRespect, lineText)
	default:
		return false
	}
}

// Resolve turns the target into an absolute line number, or false if it
// cannot be resolved (out of range or no match).
func (t *Target) Resolve(currentLine, bufferLen int, caseRespect bool, lineText LineTextFunc) (int, bool) {
	switch t.Kind {
	case Absolute:
		if t.N <= bufferLen {
			return t.N, true
		}
		return 0, false
	case Relative:
		n := int64(currentLine) + t.Offset
		if n >= 0 && n <= int64(bufferLen) {
			return int(n), true
		}
		return 0, false
	case StringForward:
		needle := t.Str
		if !caseRespect {
			needle = strings.ToUpper(needle)
		}
		for i := currentLine + 1; i <= bufferLen; i++ {
			text, ok := lineText(i)
			if !ok {
				continue
			}
			if !caseRespect {
				text = strings.ToUpper(text)
			}
			if strings.Contains(text, needle) {
				return i, true
			}
		}
		return 0, false
	case StringBackward:
		if currentLine == 0 {
			return 0, false
		}
		needle := t.Str
		if !caseRespect {
			needle = strings.ToUpper(needle)
		}
		for i := currentLine - 1; i >= 1; i-- {
			text, ok := lineText(i)
			if !ok {
				continue
			}
			if !caseRespect {
				text = strings.ToUpper(text)
			}
			if strings.Contains(text, needle) {
				return i, true
			}
		}
		return 0, false
	case Star:
		return bufferLen, true
	case And, Or:
		for i := currentLine + 1; i <= bufferLen; i++ {
			text, ok := lineText(i)
			if !ok {
				continue
			}
			if t.MatchesLine(caseRespect, text) {
				return i, true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}
