package latex

import "strings"

// ConvertFractions rewrites plain a/b fractions inside $...$ and $$...$$
// spans to \frac{a}{b}. Text outside those spans, and \(...\) or \[...\]
// spans, is returned unchanged. Converting already converted text is a no-op.
func ConvertFractions(text string) string {
	segments := Scan(text)
	changed := false
	for i, seg := range segments {
		if seg.Kind != Math || (seg.Delim != DelimDollar && seg.Delim != DelimDisplayDollar) {
			continue
		}
		body := RewriteMath(seg.Body)
		if body == seg.Body {
			continue
		}
		closer := closers[seg.Delim]
		segments[i].Body = body
		segments[i].Raw = string(seg.Delim) + body + closer
		changed = true
	}
	if !changed {
		return text
	}
	return Join(segments)
}

// RewriteMath rewrites fractions in the body of one math span.
//
// Recognized forms, tried at each operand boundary:
//
//	[sign]digits/digits     -> \frac{[sign]digits}{digits}
//	[sign]1/x, 1/x^n, 1/x^{n} -> \frac{[sign]1}{x}, \frac{1}{x^n}, ...
//
// A sign is folded into the numerator only when it is unary. The argument
// groups of \frac and its variants are copied unchanged, which keeps the
// rewrite idempotent, as are \text-style arguments. Other groups such as
// \sqrt{1/4} or ^{1/2} are rewritten.
func RewriteMath(body string) string {
	var out strings.Builder
	// groups records, per open brace, whether it sits inside a frac argument.
	var groups []bool
	protected := func() bool {
		return len(groups) > 0 && groups[len(groups)-1]
	}
	// pendingArgs counts frac arguments still expected at level pendingLevel.
	pendingArgs, pendingLevel := 0, 0
	for i := 0; i < len(body); {
		c := body[i]
		if pendingArgs > 0 && len(groups) == pendingLevel && c != '{' && c != ' ' {
			pendingArgs = 0
		}
		switch {
		case c == '{':
			isArg := pendingArgs > 0 && len(groups) == pendingLevel
			if isArg {
				pendingArgs--
			}
			groups = append(groups, isArg || protected())
			out.WriteByte(c)
			i++
		case c == '}':
			if len(groups) > 0 {
				groups = groups[:len(groups)-1]
			}
			out.WriteByte(c)
			i++
		case c == '\\':
			// Copy a control word or control symbol verbatim.
			j := i + 1
			for j < len(body) && isLetter(body[j]) {
				j++
			}
			if j == i+1 && j < len(body) {
				j++
			}
			if n := verbatimArgs[body[i+1:j]]; n > 0 {
				pendingArgs, pendingLevel = n, len(groups)
			}
			out.WriteString(body[i:j])
			i = j
		case !protected() && (c == '+' || c == '-') && i+1 < len(body) && isDigit(body[i+1]) &&
			isUnary(body, i) && atBoundary(body, i):
			if frac, n, ok := matchFraction(body, i+1, string(c)); ok {
				out.WriteString(frac)
				i = i + 1 + n
				continue
			}
			out.WriteByte(c)
			i++
		case !protected() && isDigit(c) && atBoundary(body, i):
			if frac, n, ok := matchFraction(body, i, ""); ok {
				out.WriteString(frac)
				i += n
				continue
			}
			j := i
			for j < len(body) && isDigit(body[j]) {
				j++
			}
			out.WriteString(body[i:j])
			i = j
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// verbatimArgs maps macros to the number of leading brace arguments that are
// copied without rewriting.
var verbatimArgs = map[string]int{
	"frac": 2, "dfrac": 2, "tfrac": 2,
	"text": 1, "mathrm": 1, "mbox": 1, "operatorname": 1,
}

// matchFraction tries to read digits/digits or 1/letter[^exp] at start and
// returns the rewritten macro plus the number of bytes consumed.
func matchFraction(body string, start int, sign string) (string, int, bool) {
	i := start
	for i < len(body) && isDigit(body[i]) {
		i++
	}
	numerator := body[start:i]
	if numerator == "" || i >= len(body) || body[i] != '/' {
		return "", 0, false
	}
	i++
	if i >= len(body) {
		return "", 0, false
	}

	if isDigit(body[i]) {
		denStart := i
		for i < len(body) && isDigit(body[i]) {
			i++
		}
		if blocksNumericEnd(body, i) {
			return "", 0, false
		}
		return frac(sign+numerator, body[denStart:i]), i - start, true
	}

	if numerator != "1" || !isLetter(body[i]) {
		return "", 0, false
	}
	variable := body[i : i+1]
	i++
	if i < len(body) && body[i] == '^' {
		exponent, n, ok := readExponent(body, i+1)
		if !ok {
			return "", 0, false
		}
		i += 1 + n
		return frac(sign+numerator, variable+"^"+exponent), i - start, true
	}
	return frac(sign+numerator, variable), i - start, true
}

// readExponent reads a word token or a balanced brace group.
func readExponent(body string, start int) (string, int, bool) {
	if start >= len(body) {
		return "", 0, false
	}
	if body[start] == '{' {
		depth := 0
		for i := start; i < len(body); i++ {
			switch body[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return body[start : i+1], i + 1 - start, true
				}
			}
		}
		return "", 0, false
	}
	i := start
	for i < len(body) && isWord(body[i]) {
		i++
	}
	if i == start {
		return "", 0, false
	}
	return body[start:i], i - start, true
}

func frac(numerator, denominator string) string {
	return `\frac{` + numerator + `}{` + denominator + `}`
}

// blocksNumericEnd reports whether the character at i makes the preceding
// denominator part of a larger number or expression, such as 1/2.5, 1/2^3,
// or 1/2/3. A full stop that ends a sentence does not.
func blocksNumericEnd(body string, i int) bool {
	if i >= len(body) {
		return false
	}
	switch body[i] {
	case '^', '/', '_':
		return true
	case '.':
		return i+1 < len(body) && isDigit(body[i+1])
	}
	return false
}

// atBoundary reports whether an operand may start at i, meaning it does not
// continue a number, identifier, subscript, or a preceding division.
func atBoundary(body string, i int) bool {
	if i == 0 {
		return true
	}
	switch p := body[i-1]; {
	case isDigit(p), isLetter(p):
		return false
	case p == '.' || p == '^' || p == '_' || p == '/' || p == '}' || p == ')' || p == ']' || p == '\\':
		return false
	}
	return true
}

// isUnary reports whether the sign at i starts an operand rather than acting
// as a binary operator.
func isUnary(body string, i int) bool {
	j := i - 1
	for j >= 0 && body[j] == ' ' {
		j--
	}
	if j < 0 {
		return true
	}
	if strings.IndexByte("([{=,+-*<>:;|", body[j]) >= 0 {
		return true
	}
	if isLetter(body[j]) {
		// A preceding control word such as \cdot or \le is an operator.
		k := j
		for k >= 0 && isLetter(body[k]) {
			k--
		}
		return k >= 0 && body[k] == '\\'
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWord(c byte) bool {
	return isDigit(c) || isLetter(c) || c == '_'
}
