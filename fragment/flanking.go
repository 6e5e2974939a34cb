package fragment

import (
	"unicode"
	"unicode/utf8"
)

// Adjacency classes for the CommonMark flanking rules. A delimiter run's
// ability to open or close a span depends only on the class of the runes
// immediately before and after the run; start and end of input count as
// whitespace.
type adjClass int

const (
	classWhitespace adjClass = iota
	classPunct
	classAlnum
)

func classify(r rune) adjClass {
	switch {
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return classWhitespace
	case r < 0x80 && (r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
		return classAlnum
	case r < 0x80:
		return classPunct
	case unicode.IsSpace(r):
		return classWhitespace
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return classPunct
	}
	return classAlnum
}

// runFlanks computes whether a delimiter run may open or close, given the
// runes adjacent to it.
//
//	left-flanking:  not followed by whitespace, and not followed by
//	                punctuation unless preceded by whitespace/punctuation
//	right-flanking: the mirror image
//
// A run sitting between two alphanumerics opens and closes nothing,
// whatever the delimiter: this is what keeps `C++17`, `x==1` and
// `snake_case` from being misread as open spans.
func runFlanks(delim byte, before, after rune) (canOpen, canClose bool) {
	b, a := classify(before), classify(after)
	if b == classAlnum && a == classAlnum {
		return false, false
	}

	leftFlank := a != classWhitespace &&
		(a != classPunct || b == classWhitespace || b == classPunct)
	rightFlank := b != classWhitespace &&
		(b != classPunct || a == classWhitespace || a == classPunct)

	if delim == '_' {
		// Underscore is stricter: an intraword run neither opens nor
		// closes even when only one side is alphanumeric.
		canOpen = leftFlank && (!rightFlank || b == classPunct)
		canClose = rightFlank && (!leftFlank || a == classPunct)
		return canOpen, canClose
	}
	return leftFlank, rightFlank
}

// adjacent returns the runes immediately before and after src[start:end],
// substituting a space at the input boundaries.
func adjacent(src string, start, end int) (before, after rune) {
	before, after = ' ', ' '
	if start > 0 {
		before, _ = utf8.DecodeLastRuneInString(src[:start])
	}
	if end < len(src) {
		after, _ = utf8.DecodeRuneInString(src[end:])
	}
	return before, after
}
