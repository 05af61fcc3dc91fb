package eval

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

func init() {
	register("unquote", []bparam{req("string")}, fnUnquote)
	register("quote", []bparam{req("string")}, fnQuote)
	register("str-length", []bparam{req("string")}, fnStrLength)
	register("str-insert", []bparam{req("string"), req("insert"), req("index")}, fnStrInsert)
	register("str-index", []bparam{req("string"), req("substring")}, fnStrIndex)
	register("str-slice", []bparam{req("string"), req("start-at"), opt("end-at", value.NewUnitless(-1))}, fnStrSlice)
	register("to-upper-case", []bparam{req("string")}, caseFn(strings.ToUpper))
	register("to-lower-case", []bparam{req("string")}, caseFn(strings.ToLower))
	register("unique-id", nil, fnUniqueID)
}

func fnUnquote(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	if s, ok := args[0].(value.String); ok {
		return value.NewUnquoted(s.Text), nil
	}
	return value.NewUnquoted(interpText(args[0])), nil
}

func fnQuote(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	if s, ok := args[0].(value.String); ok {
		return value.NewQuoted(s.Text), nil
	}
	return value.NewQuoted(interpText(args[0])), nil
}

func fnStrLength(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	s, err := wantString(args[0], "string")
	if err != nil {
		return nil, err
	}
	return value.NewUnitless(float64(len([]rune(s.Text)))), nil
}

func fnStrInsert(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	s, err := wantString(args[0], "string")
	if err != nil {
		return nil, err
	}
	ins, err := wantString(args[1], "insert")
	if err != nil {
		return nil, err
	}
	idx, err := wantInt(args[2], "index")
	if err != nil {
		return nil, err
	}
	runes := []rune(s.Text)
	pos := idx
	switch {
	case pos > 0:
		pos--
	case pos < 0:
		pos = len(runes) + pos + 1
		if pos < 0 {
			pos = 0
		}
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	out := string(runes[:pos]) + ins.Text + string(runes[pos:])
	return value.String{Text: out, Quoted: s.Quoted}, nil
}

func fnStrIndex(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	s, err := wantString(args[0], "string")
	if err != nil {
		return nil, err
	}
	sub, err := wantString(args[1], "substring")
	if err != nil {
		return nil, err
	}
	i := strings.Index(s.Text, sub.Text)
	if i < 0 {
		return value.TheNull, nil
	}
	return value.NewUnitless(float64(len([]rune(s.Text[:i])) + 1)), nil
}

func fnStrSlice(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	s, err := wantString(args[0], "string")
	if err != nil {
		return nil, err
	}
	start, err := wantInt(args[1], "start-at")
	if err != nil {
		return nil, err
	}
	end, err := wantInt(args[2], "end-at")
	if err != nil {
		return nil, err
	}
	runes := []rune(s.Text)
	n := len(runes)
	norm := func(i int) int {
		if i < 0 {
			i = n + i + 1
		}
		if i < 1 {
			i = 1
		}
		if i > n {
			i = n
		}
		return i
	}
	if n == 0 {
		return s, nil
	}
	a, b := norm(start), norm(end)
	if a > b {
		return value.String{Text: "", Quoted: s.Quoted}, nil
	}
	return value.String{Text: string(runes[a-1 : b]), Quoted: s.Quoted}, nil
}

func caseFn(f func(string) string) builtinFunc {
	return func(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
		s, err := wantString(args[0], "string")
		if err != nil {
			return nil, err
		}
		return value.String{Text: f(s.Text), Quoted: s.Quoted}, nil
	}
}

// uniqueIDCounter makes unique-id() distinct within a process without
// depending on wall-clock or a shared seeded RNG.
var uniqueIDCounter uint64

func fnUniqueID(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	n := atomic.AddUint64(&uniqueIDCounter, 1)
	return value.NewUnquoted(fmt.Sprintf("u%x", 0x100000+n)), nil
}
