package eval

import (
	"fmt"

	"github.com/sassgo/sass/source"
	"github.com/sassgo/sass/value"
)

func init() {
	register("rgb", []bparam{req("red"), req("green"), req("blue")}, fnRGB)
	register("rgba", []bparam{req("red"), req("green"), req("blue"), req("alpha")}, fnRGBA4)
	register("rgba", []bparam{req("color"), req("alpha")}, fnRGBA2)
	register("hsl", []bparam{req("hue"), req("saturation"), req("lightness")}, fnHSL)
	register("hsla", []bparam{req("hue"), req("saturation"), req("lightness"), req("alpha")}, fnHSLA)

	register("red", []bparam{req("color")}, channelFn(func(c value.Color) float64 { return float64(c.R) }))
	register("green", []bparam{req("color")}, channelFn(func(c value.Color) float64 { return float64(c.G) }))
	register("blue", []bparam{req("color")}, channelFn(func(c value.Color) float64 { return float64(c.B) }))
	register("alpha", []bparam{req("color")}, fnAlpha)
	register("opacity", []bparam{req("color")}, fnAlpha)
	register("hue", []bparam{req("color")}, hslFn(0, "deg"))
	register("saturation", []bparam{req("color")}, hslFn(1, "%"))
	register("lightness", []bparam{req("color")}, hslFn(2, "%"))

	register("mix", []bparam{req("color1"), req("color2"), opt("weight", value.NewNumber(50, "%"))}, fnMix)
	register("lighten", []bparam{req("color"), req("amount")}, lightnessFn(1))
	register("darken", []bparam{req("color"), req("amount")}, lightnessFn(-1))
	register("saturate", []bparam{req("color"), req("amount")}, saturationFn(1))
	register("desaturate", []bparam{req("color"), req("amount")}, saturationFn(-1))
	register("grayscale", []bparam{req("color")}, fnGrayscale)
	register("complement", []bparam{req("color")}, fnComplement)
	register("invert", []bparam{req("color"), opt("weight", value.NewNumber(100, "%"))}, fnInvert)
	register("adjust-hue", []bparam{req("color"), req("degrees")}, fnAdjustHue)
	register("opacify", []bparam{req("color"), req("amount")}, alphaFn(1))
	register("fade-in", []bparam{req("color"), req("amount")}, alphaFn(1))
	register("transparentize", []bparam{req("color"), req("amount")}, alphaFn(-1))
	register("fade-out", []bparam{req("color"), req("amount")}, alphaFn(-1))

	adjustParams := []bparam{
		req("color"),
		opt("red", value.TheNull), opt("green", value.TheNull), opt("blue", value.TheNull),
		opt("hue", value.TheNull), opt("saturation", value.TheNull), opt("lightness", value.TheNull),
		opt("alpha", value.TheNull),
	}
	register("adjust-color", adjustParams, fnAdjustColor)
	register("change-color", adjustParams, fnChangeColor)
	register("ie-hex-str", []bparam{req("color")}, fnIEHexStr)
}

// colorChannel reads one rgb() argument: 0-255, or a percentage of 255.
func colorChannel(v value.Value, arg string) (uint8, error) {
	n, err := wantNumber(v, arg)
	if err != nil {
		return 0, err
	}
	val := n.Val
	for _, u := range n.Numerators {
		if u == "%" {
			val = n.Val * 255 / 100
		}
	}
	if val < 0 {
		val = 0
	}
	if val > 255 {
		val = 255
	}
	return uint8(val + 0.5), nil
}

func alphaValue(v value.Value, arg string) (float64, error) {
	n, err := wantNumber(v, arg)
	if err != nil {
		return 0, err
	}
	return percentOrRatio(n, 1), nil
}

func fnRGB(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	r, err := colorChannel(args[0], "red")
	if err != nil {
		return nil, err
	}
	g, err := colorChannel(args[1], "green")
	if err != nil {
		return nil, err
	}
	b, err := colorChannel(args[2], "blue")
	if err != nil {
		return nil, err
	}
	return value.NewRGBA(r, g, b, 1), nil
}

func fnRGBA4(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	c, err := fnRGB(e, args[:3], sp)
	if err != nil {
		return nil, err
	}
	a, err := alphaValue(args[3], "alpha")
	if err != nil {
		return nil, err
	}
	return c.(value.Color).WithAlpha(a), nil
}

func fnRGBA2(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	c, err := wantColor(args[0], "color")
	if err != nil {
		return nil, err
	}
	a, err := alphaValue(args[1], "alpha")
	if err != nil {
		return nil, err
	}
	return c.WithAlpha(a), nil
}

func hslArgs(args []value.Value) (h, s, l float64, err error) {
	hn, err := wantNumber(args[0], "hue")
	if err != nil {
		return
	}
	sn, err := wantNumber(args[1], "saturation")
	if err != nil {
		return
	}
	ln, err := wantNumber(args[2], "lightness")
	if err != nil {
		return
	}
	return hn.Val, sn.Val, ln.Val, nil
}

func fnHSL(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	h, s, l, err := hslArgs(args)
	if err != nil {
		return nil, err
	}
	return value.NewHSLA(h, s, l, 1), nil
}

func fnHSLA(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	h, s, l, err := hslArgs(args)
	if err != nil {
		return nil, err
	}
	a, err := alphaValue(args[3], "alpha")
	if err != nil {
		return nil, err
	}
	return value.NewHSLA(h, s, l, a), nil
}

func channelFn(get func(value.Color) float64) builtinFunc {
	return func(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
		c, err := wantColor(args[0], "color")
		if err != nil {
			return nil, err
		}
		return value.NewUnitless(get(c)), nil
	}
}

func fnAlpha(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	c, err := wantColor(args[0], "color")
	if err != nil {
		return nil, err
	}
	return value.NewUnitless(c.A), nil
}

func hslFn(idx int, unit string) builtinFunc {
	return func(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
		c, err := wantColor(args[0], "color")
		if err != nil {
			return nil, err
		}
		h, s, l := c.HSL()
		switch idx {
		case 0:
			return value.NewNumber(h, unit), nil
		case 1:
			return value.NewNumber(s, unit), nil
		default:
			return value.NewNumber(l, unit), nil
		}
	}
}

func fnMix(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	c1, err := wantColor(args[0], "color1")
	if err != nil {
		return nil, err
	}
	c2, err := wantColor(args[1], "color2")
	if err != nil {
		return nil, err
	}
	wn, err := wantNumber(args[2], "weight")
	if err != nil {
		return nil, err
	}
	p := percentOrRatio(wn, 1)

	w := p*2 - 1
	a := c1.A - c2.A
	var w1 float64
	if w*a == -1 {
		w1 = (w + 1) / 2
	} else {
		w1 = ((w+a)/(1+w*a) + 1) / 2
	}
	w2 := 1 - w1
	mixCh := func(x, y uint8) uint8 {
		return uint8(float64(x)*w1 + float64(y)*w2 + 0.5)
	}
	return value.NewRGBA(mixCh(c1.R, c2.R), mixCh(c1.G, c2.G), mixCh(c1.B, c2.B), c1.A*p+c2.A*(1-p)), nil
}

func lightnessFn(sign float64) builtinFunc {
	return func(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
		c, err := wantColor(args[0], "color")
		if err != nil {
			return nil, err
		}
		amt, err := wantNumber(args[1], "amount")
		if err != nil {
			return nil, err
		}
		h, s, l := c.HSL()
		return c.WithHSL(h, s, l+sign*percentOrRatio(amt, 100)), nil
	}
}

func saturationFn(sign float64) builtinFunc {
	return func(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
		c, err := wantColor(args[0], "color")
		if err != nil {
			return nil, err
		}
		amt, err := wantNumber(args[1], "amount")
		if err != nil {
			return nil, err
		}
		h, s, l := c.HSL()
		return c.WithHSL(h, s+sign*percentOrRatio(amt, 100), l), nil
	}
}

func fnGrayscale(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	if n, ok := args[0].(value.Number); ok {
		// CSS filter passthrough: grayscale(50%) stays literal.
		return value.NewUnquoted(fmt.Sprintf("grayscale(%s)", n.Inspect())), nil
	}
	c, err := wantColor(args[0], "color")
	if err != nil {
		return nil, err
	}
	h, _, l := c.HSL()
	return c.WithHSL(h, 0, l), nil
}

func fnComplement(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	c, err := wantColor(args[0], "color")
	if err != nil {
		return nil, err
	}
	h, s, l := c.HSL()
	return c.WithHSL(h+180, s, l), nil
}

func fnInvert(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	if n, ok := args[0].(value.Number); ok {
		return value.NewUnquoted(fmt.Sprintf("invert(%s)", n.Inspect())), nil
	}
	c, err := wantColor(args[0], "color")
	if err != nil {
		return nil, err
	}
	wn, err := wantNumber(args[1], "weight")
	if err != nil {
		return nil, err
	}
	inv := value.NewRGBA(255-c.R, 255-c.G, 255-c.B, c.A)
	if p := percentOrRatio(wn, 1); p < 1 {
		return fnMix(e, []value.Value{inv, c, value.NewNumber(p*100, "%")}, sp)
	}
	return inv, nil
}

func fnAdjustHue(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	c, err := wantColor(args[0], "color")
	if err != nil {
		return nil, err
	}
	d, err := wantNumber(args[1], "degrees")
	if err != nil {
		return nil, err
	}
	h, s, l := c.HSL()
	return c.WithHSL(h+d.Val, s, l), nil
}

func alphaFn(sign float64) builtinFunc {
	return func(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
		c, err := wantColor(args[0], "color")
		if err != nil {
			return nil, err
		}
		amt, err := wantNumber(args[1], "amount")
		if err != nil {
			return nil, err
		}
		return c.WithAlpha(c.A + sign*percentOrRatio(amt, 1)), nil
	}
}

// adjustOrChange implements adjust-color (offsets) and change-color
// (replacements); mixing RGB and HSL keyword groups is an error.
func adjustOrChange(args []value.Value, adjust bool) (value.Value, error) {
	c, err := wantColor(args[0], "color")
	if err != nil {
		return nil, err
	}
	get := func(i int, arg string) (*float64, error) {
		if args[i].Kind() == value.KindNull {
			return nil, nil
		}
		n, err := wantNumber(args[i], arg)
		if err != nil {
			return nil, err
		}
		v := n.Val
		return &v, nil
	}
	r, err := get(1, "red")
	if err != nil {
		return nil, err
	}
	g, err := get(2, "green")
	if err != nil {
		return nil, err
	}
	b, err := get(3, "blue")
	if err != nil {
		return nil, err
	}
	h, err := get(4, "hue")
	if err != nil {
		return nil, err
	}
	s, err := get(5, "saturation")
	if err != nil {
		return nil, err
	}
	l, err := get(6, "lightness")
	if err != nil {
		return nil, err
	}
	a, err := get(7, "alpha")
	if err != nil {
		return nil, err
	}

	hasRGB := r != nil || g != nil || b != nil
	hasHSL := h != nil || s != nil || l != nil
	if hasRGB && hasHSL {
		return nil, fmt.Errorf("cannot modify RGB and HSL channels at the same time")
	}

	apply := func(cur float64, delta *float64) float64 {
		if delta == nil {
			return cur
		}
		if adjust {
			return cur + *delta
		}
		return *delta
	}

	alpha := c.A
	if a != nil {
		alpha = apply(c.A, a)
		if alpha < 0 {
			alpha = 0
		}
		if alpha > 1 {
			alpha = 1
		}
	}

	if hasHSL {
		ch, cs, cl := c.HSL()
		out := c.WithHSL(apply(ch, h), apply(cs, s), apply(cl, l))
		return out.WithAlpha(alpha), nil
	}
	clampCh := func(v float64) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v + 0.5)
	}
	return value.NewRGBA(
		clampCh(apply(float64(c.R), r)),
		clampCh(apply(float64(c.G), g)),
		clampCh(apply(float64(c.B), b)),
		alpha,
	), nil
}

func fnAdjustColor(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	return adjustOrChange(args, true)
}

func fnChangeColor(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	return adjustOrChange(args, false)
}

func fnIEHexStr(e *Evaluator, args []value.Value, sp source.Span) (value.Value, error) {
	c, err := wantColor(args[0], "color")
	if err != nil {
		return nil, err
	}
	return value.NewUnquoted(fmt.Sprintf("#%02X%02X%02X%02X", uint8(c.A*255+0.5), c.R, c.G, c.B)), nil
}
