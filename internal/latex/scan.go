package latex

import "strings"

// SegmentKind distinguishes plain text from math spans.
type SegmentKind int

const (
	Plain SegmentKind = iota
	Math
)

// Delimiter names the opener of a math span.
type Delimiter string

const (
	DelimDollar        Delimiter = "$"
	DelimDisplayDollar Delimiter = "$$"
	DelimParen         Delimiter = `\(`
	DelimBracket       Delimiter = `\[`
)

var closers = map[Delimiter]string{
	DelimDollar:        "$",
	DelimDisplayDollar: "$$",
	DelimParen:         `\)`,
	DelimBracket:       `\]`,
}

// Segment is one run of text. For math segments Body excludes the
// delimiters; Raw always holds the exact source text.
type Segment struct {
	Kind  SegmentKind
	Delim Delimiter
	Body  string
	Raw   string
}

// Scan splits text into plain and math segments in a single pass.
// Concatenating the Raw fields of the result reproduces text exactly.
// An escaped \$ is literal and an unterminated opener is plain text.
func Scan(text string) []Segment {
	var segments []Segment
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			segments = append(segments, Segment{Kind: Plain, Raw: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		delim, ok := openerAt(text, i)
		if !ok {
			if text[i] == '\\' && i+1 < len(text) {
				plain.WriteString(text[i : i+2])
				i += 2
				continue
			}
			plain.WriteByte(text[i])
			i++
			continue
		}
		start := i + len(delim)
		end := findCloser(text, start, delim)
		if end < 0 {
			plain.WriteString(string(delim))
			i = start
			continue
		}
		flush()
		closer := closers[delim]
		segments = append(segments, Segment{
			Kind:  Math,
			Delim: delim,
			Body:  text[start:end],
			Raw:   text[i : end+len(closer)],
		})
		i = end + len(closer)
	}
	flush()
	return segments
}

// Join reassembles segments into text using their Raw fields.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Raw)
	}
	return b.String()
}

func openerAt(text string, i int) (Delimiter, bool) {
	switch {
	case strings.HasPrefix(text[i:], "$$"):
		return DelimDisplayDollar, true
	case text[i] == '$':
		return DelimDollar, true
	case strings.HasPrefix(text[i:], `\(`):
		return DelimParen, true
	case strings.HasPrefix(text[i:], `\[`):
		return DelimBracket, true
	}
	return "", false
}

// findCloser returns the index of the closing delimiter at or after start,
// skipping backslash escapes, or -1.
func findCloser(text string, start int, delim Delimiter) int {
	closer := closers[delim]
	for j := start; j < len(text); j++ {
		if strings.HasPrefix(text[j:], closer) {
			return j
		}
		if text[j] == '\\' {
			j++
		}
	}
	return -1
}
