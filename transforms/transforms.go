package transforms

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/fanatic/linetransformer/transformer"
)

var (
	ErrUnknownTransform = errors.New("unknown transform")
	ErrMissingArgument  = errors.New("missing argument")
)

// MatchTimeout bounds a single regexp evaluation so one pathological line
// cannot stall the loop.
var MatchTimeout = time.Second

// Reverse returns the line with its characters in reverse order. Bytes that
// are not valid UTF-8 are moved as single units, so they may recombine into
// valid runes and reversing twice only restores valid UTF-8 input.
func Reverse(line string) (string, bool) {
	var b strings.Builder
	b.Grow(len(line))
	for s := line; len(s) > 0; {
		_, size := utf8.DecodeLastRuneInString(s)
		b.WriteString(s[len(s)-size:])
		s = s[:len(s)-size]
	}
	return b.String(), true
}

// EvenLength keeps lines with an even number of characters.
func EvenLength(line string) (string, bool) {
	return line, utf8.RuneCountInString(line)%2 == 0
}

// Match keeps only the lines matching pattern.
func Match(pattern string) (transformer.Transformer, error) {
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}
	return func(line string) (string, bool) {
		ok, err := re.MatchString(line)
		if err != nil {
			return "", false
		}
		return line, ok
	}, nil
}

// Replace rewrites every match of pattern in a line with replacement, which
// may reference groups as $1 or ${name}.
func Replace(pattern, replacement string) (transformer.Transformer, error) {
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}
	return func(line string) (string, bool) {
		out, err := re.Replace(line, replacement, -1, -1)
		if err != nil {
			return line, true
		}
		return out, true
	}, nil
}

func compile(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

// Lookup resolves a transformer by name. match and replace take their
// pattern (and replacement) from args.
func Lookup(name string, args ...string) (transformer.Transformer, error) {
	switch name {
	case "reverse":
		return Reverse, nil
	case "even":
		return EvenLength, nil
	case "match":
		if len(args) < 1 {
			return nil, fmt.Errorf("%w: %s needs a pattern", ErrMissingArgument, name)
		}
		return Match(args[0])
	case "replace":
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: %s needs a pattern and a replacement", ErrMissingArgument, name)
		}
		return Replace(args[0], args[1])
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}
}
