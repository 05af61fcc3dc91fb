package value

import "strings"

// String is a Sass string, flagged quoted or unquoted. Quoted and unquoted
// strings with identical text compare equal; only Inspect distinguishes
// them.
type String struct {
	Text   string
	Quoted bool
}

func NewQuoted(s string) String   { return String{Text: s, Quoted: true} }
func NewUnquoted(s string) String { return String{Text: s, Quoted: false} }

func (s String) Kind() Kind   { return KindString }
func (s String) Truthy() bool { return true }

func (s String) Equal(o String) bool { return s.Text == o.Text }

// Inspect re-chooses quote marks to minimize escaping: prefers a double
// quote, switching to single only when the text contains a double quote
// and no single quote.
func (s String) Inspect() string {
	if !s.Quoted {
		return s.Text
	}
	quote := byte('"')
	if strings.ContainsRune(s.Text, '"') && !strings.ContainsRune(s.Text, '\'') {
		quote = '\''
	}
	var b strings.Builder
	b.WriteByte(quote)
	for i := 0; i < len(s.Text); i++ {
		c := s.Text[i]
		if c == quote || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte(quote)
	return b.String()
}

// CSSText is what the emitter writes for a string value: always unquoted
// content if Quoted is false, else the quoted inspect form.
func (s String) CSSText() string {
	return s.Inspect()
}
