package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is a sum of two representations of the same color: RGBA is always
// authoritative, HSLA is an optional cached alternate, set by NewHSLA or by
// WithHSLCache (which returns a copy). Raw preserves the literal the user wrote (#abc, red,
// rgba(...)) so round-trip printing stays lossless when nothing about the
// color changed.
type Color struct {
	R, G, B uint8
	A       float64

	hsl    *hslValue // lazily computed cache, nil until needed
	Raw    string    // original literal, "" if synthesized
	HSLSrc bool      // true if the color was constructed from hsl()/hsla()
}

type hslValue struct{ H, S, L float64 }

func NewRGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func NewHSLA(h, s, l, a float64) Color {
	r, g, b := hslToRGB(h, s, l)
	return Color{R: r, G: g, B: b, A: a, hsl: &hslValue{H: normalizeHue(h), S: clamp(s, 0, 100), L: clamp(l, 0, 100)}, HSLSrc: true}
}

func (c Color) Kind() Kind   { return KindColor }
func (c Color) Truthy() bool { return true }

// HSL returns the color's hue/saturation/lightness: the cached form when
// present, otherwise computed from RGB without storing it. Because Color is
// immutable, callers that want the cache kept use the copy returned by
// WithHSLCache.
func (c Color) HSL() (h, s, l float64) {
	if c.hsl != nil {
		return c.hsl.H, c.hsl.S, c.hsl.L
	}
	return rgbToHSL(c.R, c.G, c.B)
}

// WithHSLCache returns a copy of c with its HSL cache populated, so repeated
// hue()/saturation()/lightness() calls on the same value don't recompute.
func (c Color) WithHSLCache() Color {
	if c.hsl != nil {
		return c
	}
	h, s, l := rgbToHSL(c.R, c.G, c.B)
	c.hsl = &hslValue{H: h, S: s, L: l}
	return c
}

func (c Color) WithAlpha(a float64) Color {
	c.A = clamp(a, 0, 1)
	c.Raw = ""
	return c
}

func (c Color) WithHSL(h, s, l float64) Color {
	r, g, b := hslToRGB(h, s, l)
	return Color{R: r, G: g, B: b, A: c.A, hsl: &hslValue{H: normalizeHue(h), S: clamp(s, 0, 100), L: clamp(l, 0, 100)}, HSLSrc: c.HSLSrc}
}

// Equal implements the RGBA-channel equality maps/lists rely on for deep
// comparison of color values.
func (c Color) Equal(o Color) bool {
	return c.R == o.R && c.G == o.G && c.B == o.B && math.Abs(c.A-o.A) < Epsilon()
}

// Add, Sub, Mul implement color arithmetic: channel-wise operations that
// clamp each channel to [0,255], requiring equal alpha.
func (c Color) Add(o Color) (Color, error) {
	if math.Abs(c.A-o.A) >= Epsilon() {
		return Color{}, fmt.Errorf("alpha channels must match for color addition")
	}
	return Color{R: clampByte(int(c.R) + int(o.R)), G: clampByte(int(c.G) + int(o.G)), B: clampByte(int(c.B) + int(o.B)), A: c.A}, nil
}

func (c Color) Sub(o Color) (Color, error) {
	if math.Abs(c.A-o.A) >= Epsilon() {
		return Color{}, fmt.Errorf("alpha channels must match for color subtraction")
	}
	return Color{R: clampByte(int(c.R) - int(o.R)), G: clampByte(int(c.G) - int(o.G)), B: clampByte(int(c.B) - int(o.B)), A: c.A}, nil
}

func (c Color) Mul(o Color) (Color, error) {
	if math.Abs(c.A-o.A) >= Epsilon() {
		return Color{}, fmt.Errorf("alpha channels must match for color multiplication")
	}
	return Color{R: clampByte(int(c.R) * int(o.R)), G: clampByte(int(c.G) * int(o.G)), B: clampByte(int(c.B) * int(o.B)), A: c.A}, nil
}

// AddNumber adds a scalar to every channel (Color + Number).
func (c Color) AddNumber(n float64) Color {
	return Color{R: clampByte(int(c.R) + int(n)), G: clampByte(int(c.G) + int(n)), B: clampByte(int(c.B) + int(n)), A: c.A}
}

func (c Color) MulNumber(n float64) Color {
	return Color{R: clampByte(int(float64(c.R) * n)), G: clampByte(int(float64(c.G) * n)), B: clampByte(int(float64(c.B) * n)), A: c.A}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Inspect prints the shortest lossless form: the source literal if the
// color is unmodified, else hex or rgba()/hsla() depending on alpha and
// construction history.
func (c Color) Inspect() string {
	if c.Raw != "" {
		return c.Raw
	}
	if c.A >= 1 {
		if c.HSLSrc {
			h, s, l := c.HSL()
			return fmt.Sprintf("hsl(%s, %s%%, %s%%)", formatFloat(h, 10), formatFloat(s, 10), formatFloat(l, 10))
		}
		if name, ok := rgbToName[[3]uint8{c.R, c.G, c.B}]; ok {
			return name
		}
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	if c.HSLSrc {
		h, s, l := c.HSL()
		return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", formatFloat(h, 10), formatFloat(s, 10), formatFloat(l, 10), formatFloat(c.A, 10))
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatFloat(c.A, 10))
}

// ParseHex parses #rgb, #rgba, #rrggbb, or #rrggbbaa.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	expand := func(c byte) string { return string([]byte{c, c}) }
	var r, g, b, a string
	switch len(hex) {
	case 3:
		r, g, b, a = expand(hex[0]), expand(hex[1]), expand(hex[2]), "ff"
	case 4:
		r, g, b, a = expand(hex[0]), expand(hex[1]), expand(hex[2]), expand(hex[3])
	case 6:
		r, g, b, a = hex[0:2], hex[2:4], hex[4:6], "ff"
	case 8:
		r, g, b, a = hex[0:2], hex[2:4], hex[4:6], hex[6:8]
	default:
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	rv, err1 := strconv.ParseUint(r, 16, 8)
	gv, err2 := strconv.ParseUint(g, 16, 8)
	bv, err3 := strconv.ParseUint(b, 16, 8)
	av, err4 := strconv.ParseUint(a, 16, 8)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	return Color{R: uint8(rv), G: uint8(gv), B: uint8(bv), A: float64(av) / 255, Raw: s}, nil
}

func rgbToHSL(r, g, b uint8) (float64, float64, float64) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	mx := math.Max(rf, math.Max(gf, bf))
	mn := math.Min(rf, math.Min(gf, bf))
	l := (mx + mn) / 2
	if mx == mn {
		return 0, 0, l * 100
	}
	d := mx - mn
	var s float64
	if l > 0.5 {
		s = d / (2 - mx - mn)
	} else {
		s = d / (mx + mn)
	}
	var h float64
	switch mx {
	case rf:
		h = math.Mod((gf-bf)/d, 6)
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s * 100, l * 100
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	h = normalizeHue(h)
	s = clamp(s, 0, 100) / 100
	l = clamp(l, 0, 100) / 100

	var c float64
	if l < 0.5 {
		c = 2 * l * s
	} else {
		c = (2 - 2*l) * s
	}
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := l - c/2
	return uint8((r+m)*255 + 0.5), uint8((g+m)*255 + 0.5), uint8((b+m)*255 + 0.5)
}
