package eval

import (
	"fmt"
	"strings"

	"github.com/sassgo/sass/value"
)

// interpText renders a value inside `#{...}`: quoted strings lose their
// quotes, null renders empty, lists join with their separator dropping null
// elements, and slash-form numbers keep their literal spelling.
func interpText(v value.Value) string {
	switch vv := v.(type) {
	case value.Null:
		return ""
	case value.String:
		return vv.Text
	case value.Number:
		return numberText(vv)
	case value.List:
		return listText(vv, interpText)
	case value.ArgumentList:
		return listText(vv.List, interpText)
	default:
		return v.Inspect()
	}
}

// CSSText renders a value as a declaration's CSS text. Values that have no
// CSS form (maps, function references, argument lists carrying keywords)
// are errors; null elements inside lists are elided.
func CSSText(v value.Value) (string, error) {
	switch vv := v.(type) {
	case value.Null:
		return "", nil
	case value.Map:
		return "", fmt.Errorf("%s isn't a valid CSS value", v.Inspect())
	case value.FunctionRef:
		return "", fmt.Errorf("%s isn't a valid CSS value", v.Inspect())
	case value.ArgumentList:
		if len(vv.Keywords) > 0 {
			return "", fmt.Errorf("%s isn't a valid CSS value", v.Inspect())
		}
		return cssListText(vv.List)
	case value.List:
		return cssListText(vv)
	case value.Number:
		return numberText(vv), nil
	case value.String:
		return vv.Inspect(), nil
	default:
		return v.Inspect(), nil
	}
}

func cssListText(l value.List) (string, error) {
	if len(l.Items) == 0 && !l.Bracketed {
		return "", fmt.Errorf("() isn't a valid CSS value")
	}
	var parts []string
	for _, it := range l.Items {
		if it.Kind() == value.KindNull {
			continue
		}
		s, err := CSSText(it)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	sep := l.Sep
	if sep == value.SepUndecided {
		sep = value.SepSpace
	}
	body := strings.Join(parts, sep.Text())
	if l.Bracketed {
		return "[" + body + "]", nil
	}
	return body, nil
}

func listText(l value.List, item func(value.Value) string) string {
	var parts []string
	for _, it := range l.Items {
		if it.Kind() == value.KindNull {
			continue
		}
		parts = append(parts, item(it))
	}
	sep := l.Sep
	if sep == value.SepUndecided {
		sep = value.SepSpace
	}
	body := strings.Join(parts, sep.Text())
	if l.Bracketed {
		return "[" + body + "]"
	}
	return body
}

// numberText prints a number, preferring the preserved slash form of a
// literal division that no arithmetic context consumed.
func numberText(n value.Number) string {
	if n.SlashPossible && n.SlashLeft != nil && n.SlashRight != nil {
		return n.SlashLeft.Inspect() + "/" + n.SlashRight.Inspect()
	}
	return n.Inspect()
}
