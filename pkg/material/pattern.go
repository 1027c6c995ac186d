package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PatternType selects the procedural function a Pattern evaluates
type PatternType int

const (
	StripePattern PatternType = iota
	GradientPattern
	RingPattern
	CheckerPattern
	PointPattern // Returns the pattern-space point as a color, used to verify transforms
)

var patternNames = map[PatternType]string{
	StripePattern:   "stripe",
	GradientPattern: "gradient",
	RingPattern:     "ring",
	CheckerPattern:  "checker",
	PointPattern:    "point",
}

func (t PatternType) String() string {
	if name, ok := patternNames[t]; ok {
		return name
	}
	return fmt.Sprintf("PatternType(%d)", int(t))
}

// ParsePatternType maps a pattern name to its type
func ParsePatternType(name string) (PatternType, error) {
	for t, n := range patternNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown pattern type %q", name)
}

// Pattern is a two-color procedural color function with its own transform.
// The zero transform state is the identity, so a Pattern literal is usable.
type Pattern struct {
	Type PatternType
	A, B core.Vec3

	transformed bool // SetTransform has been called
	singular    bool
	transform   core.Matrix
	inverse     core.Matrix
}

// NewPattern creates a pattern with an identity transform
func NewPattern(patternType PatternType, a, b core.Vec3) *Pattern {
	return &Pattern{Type: patternType, A: a, B: b}
}

// NewStripe alternates A and B along x
func NewStripe(a, b core.Vec3) *Pattern { return NewPattern(StripePattern, a, b) }

// NewGradient blends from A to B along each unit of x
func NewGradient(a, b core.Vec3) *Pattern { return NewPattern(GradientPattern, a, b) }

// NewRing alternates A and B in concentric rings around the y axis
func NewRing(a, b core.Vec3) *Pattern { return NewPattern(RingPattern, a, b) }

// NewChecker alternates A and B in unit cubes
func NewChecker(a, b core.Vec3) *Pattern { return NewPattern(CheckerPattern, a, b) }

// Transform returns the pattern's object-to-pattern space transform
func (p *Pattern) Transform() core.Matrix {
	if !p.transformed {
		return core.Identity()
	}
	return p.transform
}

// SetTransform replaces the pattern transform. A singular transform is stored
// but makes the pattern unusable until it is replaced.
func (p *Pattern) SetTransform(m core.Matrix) error {
	var ok bool
	p.transformed = true
	p.transform = m
	p.inverse, ok = m.Inverse()
	p.singular = !ok
	if p.singular {
		return fmt.Errorf("%s pattern: %w", p.Type, ErrSingularPatternTransform)
	}
	return nil
}

// AtObject converts an object-space point to pattern space and samples it
func (p *Pattern) AtObject(objectPoint core.Vec3) (core.Vec3, bool) {
	if p.singular {
		return core.Vec3{}, false
	}
	if !p.transformed {
		return p.At(objectPoint), true
	}
	return p.At(p.inverse.MulPoint(objectPoint)), true
}

// At samples the pattern at a point already in pattern space
func (p *Pattern) At(point core.Vec3) core.Vec3 {
	switch p.Type {
	case StripePattern:
		if isEven(point.X) {
			return p.A
		}
		return p.B
	case GradientPattern:
		fraction := point.X - math.Floor(point.X)
		return p.A.Lerp(p.B, fraction)
	case RingPattern:
		if isEven(math.Sqrt(point.X*point.X + point.Z*point.Z)) {
			return p.A
		}
		return p.B
	case CheckerPattern:
		sum := math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)
		if math.Mod(sum, 2) == 0 {
			return p.A
		}
		return p.B
	case PointPattern:
		return point
	default:
		return p.A
	}
}

// isEven reports whether floor(v) is even, including for negative v
func isEven(v float64) bool {
	return math.Mod(math.Floor(v), 2) == 0
}
