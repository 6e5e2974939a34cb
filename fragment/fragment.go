// Package fragment completes truncated markdown so it can be fed to a
// CommonMark parser without dangling constructs. Complete appends the
// minimal suffix that closes every opened emphasis run, code span, fence,
// link, math span and table header; it never rejects input and is
// idempotent on already-complete text.
package fragment

import "strings"

// IncompleteLinkURL is the placeholder destination appended to links whose
// destination has not arrived yet.
const IncompleteLinkURL = "mdex:incomplete-link"

type config struct {
	prefix string
}

// Option configures Complete.
type Option func(*config)

// WithPrefix prepends already-received context so constructs opened there
// are taken into account. Complete is otherwise stateless: callers re-supply
// context on every call or re-scan the full accumulated buffer.
func WithPrefix(prefix string) Option {
	return func(c *config) { c.prefix = prefix }
}

// Complete returns prefix+text with leading whitespace stripped and the
// minimal closing suffix appended. Trailing whitespace is preserved
// verbatim; the suffix goes after it. Every input yields some completed
// string.
func Complete(text string, opts ...Option) string {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	src := strings.TrimLeft(cfg.prefix+text, " \t\r\n")
	if src == "" {
		return src
	}

	var s scanner
	rest := src
	for rest != "" {
		line := rest
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			line, rest = rest[:nl+1], rest[nl+1:]
		} else {
			rest = ""
		}
		s.scanLine(line)
	}

	// Inline closers go before the trailing whitespace run, so that a
	// re-scan of the completed text sees right-flanking closers and the
	// whitespace itself survives byte for byte. Block closers (fence,
	// table separator) follow the full text.
	body := strings.TrimRight(src, " \t\r\n")
	trail := src[len(body):]
	return body + s.inlineSuffix(body) + trail + s.blockSuffix(src)
}

type itemKind int

const (
	itemEmph itemKind = iota
	itemMath
	itemBracket
)

// openItem is one construct awaiting its closer. Emphasis and math items
// close by repeating their marker; a bracket closes as a placeholder link.
type openItem struct {
	kind   itemKind
	marker string
}

// scanner holds the open-construct state of a single left-to-right pass.
type scanner struct {
	stack      []openItem // open inline spans, innermost last
	codeTicks  int        // backtick count of the open inline code span
	destParens int        // unbalanced parens inside a link destination
	pendingRef bool       // input ended directly after a link text "]"

	fenceOpen bool
	fenceChar byte
	fenceLen  int
	fenceBody bool // the open fence has body content after the opener line
}

// resetInline drops all open inline state. Inline constructs never span a
// block boundary.
func (s *scanner) resetInline() {
	s.stack = s.stack[:0]
	s.codeTicks = 0
	s.destParens = 0
	s.pendingRef = false
}

// scanLine consumes one line, including its trailing newline if present.
func (s *scanner) scanLine(line string) {
	content := strings.TrimSuffix(line, "\n")
	hadNewline := len(content) != len(line)
	content = strings.TrimSuffix(content, "\r")

	if s.fenceOpen {
		if isClosingFence(content, s.fenceChar, s.fenceLen) {
			s.fenceOpen = false
		} else {
			s.fenceBody = true
		}
		return
	}

	if strings.TrimSpace(content) == "" {
		// Blank line: the block is over, unclosed inline markers in it
		// are literal text now.
		s.resetInline()
		return
	}

	trimmed := strings.TrimLeft(content, " ")
	indent := len(content) - len(trimmed)
	if ch, length, ok := openingFence(trimmed); ok && indent <= 3 {
		s.resetInline()
		s.fenceOpen, s.fenceChar, s.fenceLen = true, ch, length
		s.fenceBody = false
		return
	}

	heading := indent <= 3 && isATXHeading(trimmed)
	s.scanInline(content)

	if hadNewline {
		// A link destination and a reference-candidate "]" cannot
		// continue past the end of the line.
		s.destParens = 0
		s.pendingRef = false
		if heading {
			// Heading content is the single line.
			s.resetInline()
		}
	}
}

// scanInline advances the inline delimiter state over one line of content.
func (s *scanner) scanInline(content string) {
	n := len(content)
	i := 0
	for i < n {
		c := content[i]

		// Inside a code span everything is literal until a backtick run
		// of exactly the opening length.
		if s.codeTicks > 0 {
			if c == '`' {
				run := runLen(content, i, '`')
				if run == s.codeTicks {
					s.codeTicks = 0
				}
				i += run
			} else {
				i++
			}
			continue
		}

		// Inside a link destination only escapes and paren balance count;
		// URLs routinely contain * _ and friends.
		if s.destParens > 0 {
			switch c {
			case '\\':
				i += 2
			case '(':
				s.destParens++
				i++
			case ')':
				s.destParens--
				i++
			default:
				i++
			}
			continue
		}

		if s.pendingRef {
			s.pendingRef = false
		}

		switch c {
		case '\\':
			i += 2
		case '`':
			s.codeTicks = runLen(content, i, '`')
			i += s.codeTicks
		case '*', '_', '~', '+', '=':
			i = s.scanDelimRun(content, i)
		case '[':
			s.stack = append(s.stack, openItem{kind: itemBracket})
			i++
		case ']':
			i = s.closeBracket(content, i)
		case '$':
			i = s.scanMath(content, i)
		case ':':
			i = s.scanShortcode(content, i)
		default:
			i++
		}
	}
}

// scanDelimRun handles a run of emphasis-like delimiter characters and
// returns the index after the run.
func (s *scanner) scanDelimRun(content string, i int) int {
	c := content[i]
	run := runLen(content, i, c)
	end := i + run
	before, after := adjacent(content, i, end)
	canOpen, canClose := runFlanks(c, before, after)

	if c == '~' || c == '+' || c == '=' {
		// Only the doubled forms ~~ ++ == delimit spans.
		if run != 2 {
			return end
		}
		m := string([]byte{c, c})
		if canClose && s.popSpan(itemEmph, m) {
			return end
		}
		if canOpen {
			s.stack = append(s.stack, openItem{itemEmph, m})
		}
		return end
	}

	// * and _: split the run into strong pairs plus an optional single,
	// so *** opens (and later closes) both an emphasis and a strong.
	for rem := run; rem > 0; {
		w := 2
		if rem == 1 {
			w = 1
		}
		m := strings.Repeat(string(c), w)
		if canClose && s.popSpan(itemEmph, m) {
			// matched an open span
		} else if canOpen {
			s.stack = append(s.stack, openItem{itemEmph, m})
		}
		rem -= w
	}
	return end
}

// closeBracket resolves a "]" against the innermost open bracket and
// returns the index after the consumed input.
func (s *scanner) closeBracket(content string, i int) int {
	idx := -1
	for k := len(s.stack) - 1; k >= 0; k-- {
		if s.stack[k].kind == itemBracket {
			idx = k
			break
		}
	}
	if idx < 0 {
		// Stray closer, literal.
		return i + 1
	}
	// The bracket is resolved; spans opened inside the link text that
	// never closed are literal.
	s.stack = s.stack[:idx]

	if i+1 < len(content) && content[i+1] == '(' {
		s.destParens = 1
		return i + 2
	}
	s.pendingRef = true
	return i + 1
}

// scanMath handles $ and $$ delimiters and returns the index after the run.
func (s *scanner) scanMath(content string, i int) int {
	run := runLen(content, i, '$')
	end := i + run
	if run >= 2 {
		if run == 2 {
			if !s.popSpan(itemMath, "$$") {
				s.stack = append(s.stack, openItem{itemMath, "$$"})
			}
		}
		return end
	}

	if s.popSpan(itemMath, "$") {
		return end
	}
	// A single $ opens inline math only when it is not a currency-like
	// token: something must follow, and not a digit.
	if end >= len(content) {
		return end
	}
	switch next := content[end]; {
	case next >= '0' && next <= '9':
		return end
	case next == ' ' || next == '\t':
		return end
	}
	s.stack = append(s.stack, openItem{itemMath, "$"})
	return end
}

// scanShortcode skips a complete :name: emoji token so its colons are not
// open to any delimiter interpretation. Returns the index after the
// consumed input.
func (s *scanner) scanShortcode(content string, i int) int {
	j := i + 1
	for j < len(content) && isShortcodeChar(content[j]) {
		j++
	}
	if j > i+1 && j < len(content) && content[j] == ':' {
		return j + 1
	}
	return i + 1
}

// popSpan closes the innermost open span of the given kind and marker.
// Spans opened above it are dropped as literal; an intervening bracket
// blocks the match, since a span cannot close across a link boundary.
func (s *scanner) popSpan(kind itemKind, marker string) bool {
	for k := len(s.stack) - 1; k >= 0; k-- {
		it := s.stack[k]
		if it.kind == itemBracket {
			return false
		}
		if it.kind == kind && it.marker == marker {
			s.stack = s.stack[:k]
			return true
		}
	}
	return false
}

// inlineSuffix assembles the closing text for the open inline constructs,
// to be inserted directly after body. Closing order: the code span first
// (markers inside it are literal), then open spans in LIFO order, then
// link completion.
func (s *scanner) inlineSuffix(body string) string {
	var sb strings.Builder

	if s.codeTicks > 0 {
		// A closer written directly after a backtick merges into that
		// run and re-tokenizes as a single longer opener. The space
		// keeps the closer a separate run.
		if strings.HasSuffix(body, "`") {
			sb.WriteByte(' ')
		}
		sb.WriteString(strings.Repeat("`", s.codeTicks))
	}
	if s.destParens > 0 {
		sb.WriteString(strings.Repeat(")", s.destParens))
	}
	for k := len(s.stack) - 1; k >= 0; k-- {
		switch it := s.stack[k]; it.kind {
		case itemBracket:
			sb.WriteString("](" + IncompleteLinkURL + ")")
		default:
			sb.WriteString(it.marker)
		}
	}
	if s.pendingRef {
		sb.WriteString("(" + IncompleteLinkURL + ")")
	}
	return sb.String()
}

// blockSuffix closes the open block constructs after the full text.
func (s *scanner) blockSuffix(src string) string {
	if s.fenceOpen {
		if !s.fenceBody {
			// A bare fence with nothing after it is already acceptable
			// input.
			return ""
		}
		closer := strings.Repeat(string(s.fenceChar), s.fenceLen)
		if strings.HasSuffix(src, "\n") {
			return closer
		}
		return "\n" + closer
	}
	return tableSeparator(src)
}

func runLen(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

// openingFence reports whether a line (already left-trimmed) opens a
// fenced code block, returning the fence character and length.
func openingFence(trimmed string) (byte, int, bool) {
	if trimmed == "" {
		return 0, 0, false
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return 0, 0, false
	}
	n := runLen(trimmed, 0, c)
	if n < 3 {
		return 0, 0, false
	}
	// A backtick fence's info string cannot contain backticks.
	if c == '`' && strings.Contains(trimmed[n:], "`") {
		return 0, 0, false
	}
	return c, n, true
}

func isClosingFence(content string, c byte, openLen int) bool {
	trimmed := strings.TrimLeft(content, " ")
	if len(content)-len(trimmed) > 3 {
		return false
	}
	n := runLen(trimmed, 0, c)
	return n >= openLen && strings.TrimSpace(trimmed[n:]) == ""
}

func isATXHeading(trimmed string) bool {
	n := runLen(trimmed, 0, '#')
	if n < 1 || n > 6 {
		return false
	}
	return len(trimmed) == n || trimmed[n] == ' ' || trimmed[n] == '\t'
}

func isShortcodeChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_' || c == '+' || c == '-'
}

// tableSeparator synthesizes the alignment-separator row for a pipe header
// that ends the input without one, matching the header's column count.
func tableSeparator(src string) string {
	lines := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	last := lines[len(lines)-1]
	if !isHeaderRow(last) {
		return ""
	}
	// Only the first row of a table is a header; a preceding pipe row
	// means the separator already exists further up.
	if len(lines) >= 2 && isPipeRow(lines[len(lines)-2]) {
		return ""
	}

	cells := make([]string, columnCount(last))
	for i := range cells {
		cells[i] = "-"
	}
	sep := "| " + strings.Join(cells, " | ") + " |"
	if strings.HasSuffix(src, "\n") {
		return sep
	}
	return "\n" + sep
}

func isPipeRow(line string) bool {
	t := strings.TrimSpace(line)
	return t != "" && t[0] == '|'
}

func isHeaderRow(line string) bool {
	t := strings.TrimSpace(line)
	if len(t) < 2 || t[0] != '|' || t[len(t)-1] != '|' {
		return false
	}
	return !isSeparatorRow(t) && columnCount(line) > 0
}

func isSeparatorRow(t string) bool {
	dashes := false
	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '-', ':':
			dashes = true
		case '|', ' ', '\t':
		default:
			return false
		}
	}
	return dashes
}

// columnCount counts cells between unescaped pipes.
func columnCount(line string) int {
	pipes := 0
	t := strings.TrimSpace(line)
	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '\\':
			i++
		case '|':
			pipes++
		}
	}
	return pipes - 1
}
