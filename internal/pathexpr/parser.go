package pathexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// StepKind discriminates the access performed by a single path step.
type StepKind uint8

const (
	// StepProperty selects a named field on an object.
	StepProperty StepKind = iota
	// StepIndex selects a position in an array.
	StepIndex
	// StepWildcard selects every element of an array.
	StepWildcard
)

// String renders the kind label used in diagnostics.
func (k StepKind) String() string {
	switch k {
	case StepProperty:
		return "property"
	case StepIndex:
		return "index"
	case StepWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Step is one access in a parsed path expression. Name is set for property
// steps, Index for index steps; wildcard steps carry neither.
type Step struct {
	Kind  StepKind
	Name  string
	Index int
}

// Expression is an ordered sequence of steps, e.g. commands[0].name parses to
// property(commands), index(0), property(name).
type Expression []Step

// String reassembles the canonical textual form of the expression.
func (e Expression) String() string {
	var b strings.Builder
	for i, step := range e {
		switch step.Kind {
		case StepProperty:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(step.Name)
		case StepIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(step.Index))
			b.WriteByte(']')
		case StepWildcard:
			b.WriteString("[]")
		}
	}
	return b.String()
}

// HasWildcard reports whether any step fans out across array elements.
func (e Expression) HasWildcard() bool {
	for _, step := range e {
		if step.Kind == StepWildcard {
			return true
		}
	}
	return false
}

// Parse parses a path expression in strict mode. Brackets must contain a
// non-negative decimal index; empty brackets are rejected because a
// programmatic field lookup has no "all elements" meaning. Paths follow
// segment ('.' segment)* where each segment is an identifier optionally
// followed by bracketed indices. A single trailing dot is tolerated.
func Parse(path string) (Expression, error) {
	return parse(path, false)
}

// ParseQuery parses a path expression in query mode, which additionally
// accepts empty brackets as wildcard steps (commands[].name walks every
// element of commands). Query mode exists for derivation source paths; use
// Parse everywhere a lookup must resolve to a single location.
func ParseQuery(path string) (Expression, error) {
	return parse(path, true)
}

func parse(path string, allowWildcard bool) (Expression, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}

	segments := strings.Split(path, ".")
	// A single trailing dot produces one empty tail segment; drop it.
	if last := len(segments) - 1; last > 0 && segments[last] == "" {
		segments = segments[:last]
	}

	expr := make(Expression, 0, len(segments))
	for i, segment := range segments {
		if segment == "" {
			if i == 0 {
				return nil, fmt.Errorf("%w: leading dot in %q", ErrInvalidPath, path)
			}
			return nil, fmt.Errorf("%w: consecutive dots in %q", ErrInvalidPath, path)
		}

		steps, err := parseSegment(segment, allowWildcard)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %q in %q: %v", ErrInvalidPath, segment, path, err)
		}
		expr = append(expr, steps...)
	}

	return expr, nil
}

func parseSegment(segment string, allowWildcard bool) ([]Step, error) {
	name, rest, err := scanIdentifier(segment)
	if err != nil {
		return nil, err
	}

	steps := []Step{{Kind: StepProperty, Name: name}}
	for rest != "" {
		if rest[0] != '[' {
			return nil, fmt.Errorf("unexpected character %q after identifier", rune(rest[0]))
		}
		close := strings.IndexByte(rest, ']')
		if close < 0 {
			return nil, fmt.Errorf("unterminated bracket")
		}

		contents := rest[1:close]
		rest = rest[close+1:]

		if contents == "" {
			if !allowWildcard {
				return nil, fmt.Errorf("empty brackets are only valid in query paths")
			}
			steps = append(steps, Step{Kind: StepWildcard})
			continue
		}

		index, err := parseIndex(contents)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Kind: StepIndex, Index: index})
	}

	return steps, nil
}

func scanIdentifier(segment string) (string, string, error) {
	end := 0
	for end < len(segment) {
		c := segment[end]
		if c == '[' {
			break
		}
		if !isIdentifierByte(c, end == 0) {
			return "", "", fmt.Errorf("invalid identifier character %q", rune(c))
		}
		end++
	}
	if end == 0 {
		return "", "", fmt.Errorf("segment must start with an identifier")
	}
	return segment[:end], segment[end:], nil
}

func isIdentifierByte(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '$':
		return true
	case c >= '0' && c <= '9':
		return !first
	default:
		return false
	}
}

func parseIndex(contents string) (int, error) {
	if strings.HasPrefix(contents, "-") {
		return 0, fmt.Errorf("negative index %q", contents)
	}
	for i := 0; i < len(contents); i++ {
		if contents[i] < '0' || contents[i] > '9' {
			return 0, fmt.Errorf("non-numeric index %q", contents)
		}
	}
	index, err := strconv.Atoi(contents)
	if err != nil {
		return 0, fmt.Errorf("index %q out of range", contents)
	}
	return index, nil
}
