package parser

import (
	stdstrings "strings"

	"github.com/sassgo/sass/internal/strings"
)

// ConvertIndented rewrites indented-syntax source into the bracketed form
// the shared grammar parses, the way libsass handled the classic dialect:
// block structure is derived from indentation, statement separators from
// line ends. The conversion is line-preserving -- output line N holds the
// same statement as input line N, with braces and semicolons glued to line
// boundaries -- so spans and error positions stay on the user's lines.
func ConvertIndented(src string) string {
	lines := stdstrings.Split(src, "\n")
	var stack []int // open block indents
	var out stdstrings.Builder

	for i, line := range lines {
		if i > 0 {
			out.WriteByte('\n')
		}
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		ind := indentOf(line)

		// Close any blocks this line dedents out of, glued to this line's
		// start so line numbers do not shift.
		for len(stack) > 0 && ind <= stack[len(stack)-1] {
			out.WriteString("} ")
			stack = stack[:len(stack)-1]
		}

		switch {
		case stdstrings.HasPrefix(text, "//"):
			out.WriteString(text)
		case nextIndent(lines, i) > ind:
			out.WriteString(text)
			out.WriteString(" {")
			stack = append(stack, ind)
		case stdstrings.HasSuffix(text, ","):
			// continuation of a multi-line selector list
			out.WriteString(text)
		default:
			out.WriteString(text)
			out.WriteByte(';')
		}
	}
	for range stack {
		out.WriteByte('}')
	}
	out.WriteByte('\n')
	return out.String()
}

// indentOf counts leading whitespace, a tab weighing 4 columns.
func indentOf(line string) int {
	n := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}

// nextIndent returns the indent of the next non-blank line after i, or -1
// at end of input.
func nextIndent(lines []string, i int) int {
	for j := i + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "" {
			continue
		}
		return indentOf(lines[j])
	}
	return -1
}
