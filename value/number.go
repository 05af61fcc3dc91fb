package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Precision governs comparison epsilon, rounding, and printing for every
// Number in a compile. It defaults to 10, matching the reference
// implementation's default --precision.
var Precision = 10

// Epsilon returns the equality tolerance derived from Precision.
func Epsilon() float64 {
	return math.Pow(10, -float64(Precision)-1)
}

// unitConversions maps a unit to its factor relative to a canonical unit
// for its dimension (the canonical unit has factor 1). Units from
// different dimensions never compare or convert.
var unitConversions = map[string]float64{
	// lengths, canonical: px; q is a quarter-millimeter
	"px": 1, "in": 96, "cm": 96.0 / 2.54, "mm": 96.0 / 25.4,
	"pc": 16, "pt": 96.0 / 72.0, "q": 96.0 / 25.4 / 4,
	// angles, canonical: deg
	"deg": 1, "grad": 0.9, "rad": 180 / math.Pi, "turn": 360,
	// time, canonical: s
	"s": 1, "ms": 0.001,
	// frequency, canonical: Hz
	"hz": 1, "khz": 1000,
	// resolution, canonical: dpi
	"dpi": 1, "dpcm": 2.54, "dppx": 96, "x": 96,
}

var unitDimension = map[string]string{
	"px": "length", "in": "length", "cm": "length", "mm": "length", "pc": "length", "pt": "length", "q": "length",
	"deg": "angle", "grad": "angle", "rad": "angle", "turn": "angle",
	"s": "time", "ms": "time",
	"hz": "frequency", "khz": "frequency",
	"dpi": "resolution", "dpcm": "resolution", "dppx": "resolution", "x": "resolution",
}

// Number is a double value carrying two multisets of units: numerators and
// denominators (e.g. "px/s" has numerator px, denominator s). Units are
// stored with the spelling they were written in, which is what printing
// uses; conversion and comparison lookups lower-case them (Sass units are
// case-insensitive on px/em/etc but we don't rewrite user casing).
type Number struct {
	Val          float64
	Numerators   []string
	Denominators []string
	// SlashPossible marks a Number produced by `a / b` where both operands
	// were still literal numbers; the evaluator may choose to print this
	// as "a/b" instead of performing division, per the slash-handling
	// rule.
	SlashPossible bool
	SlashLeft     *Number
	SlashRight    *Number
}

func NewNumber(v float64, unit string) Number {
	n := Number{Val: v}
	if unit != "" {
		n.Numerators = []string{unit}
	}
	return n
}

func NewUnitless(v float64) Number { return Number{Val: v} }

func (n Number) Kind() Kind   { return KindNumber }
func (n Number) Truthy() bool { return true }

// Unitless reports whether the number carries no units at all.
func (n Number) Unitless() bool {
	return len(n.Numerators) == 0 && len(n.Denominators) == 0
}

// reduce cancels matching numerator/denominator units (after unit
// conversion) and returns the adjusted value plus the reduced unit lists.
func (n Number) reduce() (float64, []string, []string) {
	nums := append([]string(nil), n.Numerators...)
	dens := append([]string(nil), n.Denominators...)
	val := n.Val

	for i := 0; i < len(nums); i++ {
		for j := 0; j < len(dens); j++ {
			a, b := strings.ToLower(nums[i]), strings.ToLower(dens[j])
			if a == b {
				nums = append(nums[:i], nums[i+1:]...)
				dens = append(dens[:j], dens[j+1:]...)
				i--
				break
			}
			if unitDimension[a] != "" && unitDimension[a] == unitDimension[b] {
				// convert dens[j] into nums[i]'s unit, cancel.
				val = val * unitConversions[b] / unitConversions[a]
				nums = append(nums[:i], nums[i+1:]...)
				dens = append(dens[:j], dens[j+1:]...)
				i--
				break
			}
		}
	}
	return val, nums, dens
}

// Reduced returns a copy of n with matching units cancelled.
func (n Number) Reduced() Number {
	val, nums, dens := n.reduce()
	return Number{Val: val, Numerators: nums, Denominators: dens}
}

// UnitString renders the unit portion the way CSS expects: numerators
// joined by "*", then "/" and denominators if any.
func (n Number) UnitString() string {
	if len(n.Numerators) == 0 && len(n.Denominators) == 0 {
		return ""
	}
	num := strings.Join(n.Numerators, "*")
	if len(n.Denominators) == 0 {
		return num
	}
	return num + "/" + strings.Join(n.Denominators, "*")
}

// Comparable reports whether two numbers may be compared/added directly:
// their reduced units match, or one is unitless.
func (a Number) Comparable(b Number) bool {
	if a.Unitless() || b.Unitless() {
		return true
	}
	ra := canonicalUnits(a)
	rb := canonicalUnits(b)
	return sameMultiset(ra.nums, rb.nums) && sameMultiset(ra.dens, rb.dens)
}

type canon struct{ nums, dens []string }

func canonicalUnits(n Number) canon {
	var nums, dens []string
	for _, u := range n.Numerators {
		lu := strings.ToLower(u)
		if d, ok := unitDimension[lu]; ok {
			nums = append(nums, d)
		} else {
			nums = append(nums, lu)
		}
	}
	for _, u := range n.Denominators {
		lu := strings.ToLower(u)
		if d, ok := unitDimension[lu]; ok {
			dens = append(dens, d)
		} else {
			dens = append(dens, lu)
		}
	}
	sort.Strings(nums)
	sort.Strings(dens)
	return canon{nums, dens}
}

func sameMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// valueInUnit converts n's numeric value into the unit system of other when
// they are Comparable, returning an error otherwise.
func valueInUnit(a, b Number) (float64, float64, error) {
	if !a.Comparable(b) {
		return 0, 0, fmt.Errorf("incompatible units %s and %s", a.UnitString(), b.UnitString())
	}
	if a.Unitless() || b.Unitless() || sameMultiset(canonicalUnits(a).nums, canonicalUnits(b).nums) && sameMultiset(canonicalUnits(a).dens, canonicalUnits(b).dens) {
		av, _, _ := a.reduce()
		bv := convertToUnits(b, a.Numerators, a.Denominators)
		return av, bv, nil
	}
	av, _, _ := a.reduce()
	bv, _, _ := b.reduce()
	return av, bv, nil
}

// convertToUnits expresses n's value in terms of the given numerator/
// denominator units, assuming compatible dimensions.
func convertToUnits(n Number, numerators, denominators []string) float64 {
	val := n.Val
	for i, u := range n.Numerators {
		if i < len(numerators) {
			val = val * unitConversions[strings.ToLower(u)] / unitConversions[strings.ToLower(numerators[i])]
		}
	}
	for i, u := range n.Denominators {
		if i < len(denominators) {
			val = val / unitConversions[strings.ToLower(u)] * unitConversions[strings.ToLower(denominators[i])]
		}
	}
	return val
}

// Equal implements numeric equality within Epsilon, honoring unit
// comparability (1 == 1px is false; 1 == 1.0 is true).
func (a Number) Equal(b Number) bool {
	if a.Unitless() != b.Unitless() {
		return false
	}
	if !a.Comparable(b) {
		return false
	}
	av, bv, err := valueInUnit(a, b)
	if err != nil {
		return false
	}
	return math.Abs(av-bv) < Epsilon()
}

// Compare returns -1, 0, or 1 comparing a and b; it is only defined when
// Comparable.
func (a Number) Compare(b Number) (int, error) {
	av, bv, err := valueInUnit(a, b)
	if err != nil {
		return 0, err
	}
	d := av - bv
	if math.Abs(d) < Epsilon() {
		return 0, nil
	}
	if d < 0 {
		return -1, nil
	}
	return 1, nil
}

// Add, Sub, Mul, Div, Mod implement the arithmetic table: unit-reconciled
// numeric operations.
func (a Number) Add(b Number) (Number, error) {
	if !a.Comparable(b) {
		return Number{}, fmt.Errorf("%s and %s are not compatible units", a.UnitString(), b.UnitString())
	}
	av, bv, _ := valueInUnit(a, b)
	u := a
	if a.Unitless() {
		u = b
	}
	return Number{Val: av + bv, Numerators: u.Numerators, Denominators: u.Denominators}, nil
}

func (a Number) Sub(b Number) (Number, error) {
	if !a.Comparable(b) {
		return Number{}, fmt.Errorf("%s and %s are not compatible units", a.UnitString(), b.UnitString())
	}
	av, bv, _ := valueInUnit(a, b)
	u := a
	if a.Unitless() {
		u = b
	}
	return Number{Val: av - bv, Numerators: u.Numerators, Denominators: u.Denominators}, nil
}

// Mul composes units: numerators/denominators concatenate then cancel.
func (a Number) Mul(b Number) Number {
	n := Number{
		Val:          a.Val * b.Val,
		Numerators:   append(append([]string(nil), a.Numerators...), b.Numerators...),
		Denominators: append(append([]string(nil), a.Denominators...), b.Denominators...),
	}
	return n.Reduced()
}

func (a Number) Div(b Number) (Number, error) {
	if b.Val == 0 {
		return Number{}, fmt.Errorf("divided by 0")
	}
	n := Number{
		Val:          a.Val / b.Val,
		Numerators:   append(append([]string(nil), a.Numerators...), b.Denominators...),
		Denominators: append(append([]string(nil), a.Denominators...), b.Numerators...),
	}
	return n.Reduced(), nil
}

func (a Number) Mod(b Number) (Number, error) {
	if !a.Comparable(b) {
		return Number{}, fmt.Errorf("%s and %s are not compatible units", a.UnitString(), b.UnitString())
	}
	av, bv, _ := valueInUnit(a, b)
	if bv == 0 {
		return Number{}, fmt.Errorf("divided by 0")
	}
	r := math.Mod(av, bv)
	u := a
	if a.Unitless() {
		u = b
	}
	return Number{Val: r, Numerators: u.Numerators, Denominators: u.Denominators}, nil
}

func (a Number) Neg() Number {
	return Number{Val: -a.Val, Numerators: a.Numerators, Denominators: a.Denominators}
}

// Inspect prints with at most Precision fractional digits, trailing zeros
// trimmed, the unit suffix appended verbatim.
func (n Number) Inspect() string {
	return formatFloat(n.Val, Precision) + n.UnitString()
}

func formatFloat(v float64, precision int) string {
	if math.IsInf(v, 0) {
		if v > 0 {
			return "Infinity"
		}
		return "-Infinity"
	}
	if math.IsNaN(v) {
		return "NaN"
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
