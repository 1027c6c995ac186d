package geometry

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// epsilon gates axis-parallel and cap-proximity checks. They run in object
// space, so the value does not depend on the scale of the scene.
const epsilon = core.Epsilon

// ShapeType identifies one of the supported primitives
type ShapeType int

const (
	SphereShape   ShapeType = iota // Unit sphere at the origin
	PlaneShape                     // xz plane through the origin, normal +Y
	CubeShape                      // Axis-aligned cube from -1 to 1
	CylinderShape                  // Radius 1 around the y axis
	ConeShape                      // Double-napped cone around the y axis, apex at the origin
)

var shapeTypeNames = map[ShapeType]string{
	SphereShape:   "sphere",
	PlaneShape:    "plane",
	CubeShape:     "cube",
	CylinderShape: "cylinder",
	ConeShape:     "cone",
}

func (t ShapeType) String() string {
	if name, ok := shapeTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ShapeType(%d)", int(t))
}

// ParseShapeType maps a shape name to its type
func ParseShapeType(name string) (ShapeType, error) {
	for t, n := range shapeTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown shape type %q", name)
}

var lastShapeID atomic.Uint64

// nextShapeID hands out process-unique shape identities
func nextShapeID() uint64 {
	return lastShapeID.Add(1)
}

// Shape is a primitive placed in the world by a transform.
// Min, Max and Closed only apply to cylinders and cones.
type Shape struct {
	Type     ShapeType
	Min      float64 // Lower y bound (exclusive) of the body
	Max      float64 // Upper y bound (exclusive) of the body
	Closed   bool    // Whether the ends are capped
	Material material.Material

	id            uint64
	transform     core.Matrix
	inverse       core.Matrix // world to object space
	normalToWorld core.Matrix // transpose of inverse
	invertible    bool
}

// NewShape creates a shape of the given type with an identity transform and
// the default material
func NewShape(shapeType ShapeType) *Shape {
	s := &Shape{
		Type:     shapeType,
		Min:      math.Inf(-1),
		Max:      math.Inf(1),
		Material: material.DefaultMaterial(),
		id:       nextShapeID(),
	}
	s.setTransform(core.Identity())
	return s
}

// NewSphere creates a unit sphere
func NewSphere() *Shape {
	return NewShape(SphereShape)
}

// NewGlassSphere creates a unit sphere made of clear glass
func NewGlassSphere() *Shape {
	s := NewSphere()
	s.Material = material.NewGlass()
	return s
}

// NewPlane creates an xz plane
func NewPlane() *Shape {
	return NewShape(PlaneShape)
}

// NewCube creates an axis-aligned cube
func NewCube() *Shape {
	return NewShape(CubeShape)
}

// NewCylinder creates an infinite, open cylinder
func NewCylinder() *Shape {
	return NewShape(CylinderShape)
}

// NewTruncatedCylinder creates a cylinder bounded to min < y < max
func NewTruncatedCylinder(min, max float64, closed bool) (*Shape, error) {
	return newTruncated(CylinderShape, min, max, closed)
}

// NewCone creates an infinite, open double cone
func NewCone() *Shape {
	return NewShape(ConeShape)
}

// NewTruncatedCone creates a cone bounded to min < y < max
func NewTruncatedCone(min, max float64, closed bool) (*Shape, error) {
	return newTruncated(ConeShape, min, max, closed)
}

func newTruncated(shapeType ShapeType, min, max float64, closed bool) (*Shape, error) {
	if math.IsNaN(min) || math.IsNaN(max) || min > max {
		return nil, fmt.Errorf("%s bounds must satisfy min <= max, got min=%f max=%f", shapeType, min, max)
	}
	s := NewShape(shapeType)
	s.Min = min
	s.Max = max
	s.Closed = closed
	return s, nil
}

// ID returns the identity that distinguishes this shape from every other
// shape, including geometrically identical ones
func (s *Shape) ID() uint64 {
	return s.id
}

// Transform returns the object-to-world transform
func (s *Shape) Transform() core.Matrix {
	return s.transform
}

// SetTransform replaces the object-to-world transform. A singular transform
// is a configuration error: it is returned as ErrSingularTransform and the
// shape stays inert until a valid transform is set.
func (s *Shape) SetTransform(m core.Matrix) error {
	if !s.setTransform(m) {
		return fmt.Errorf("%s %d: %w", s.Type, s.id, ErrSingularTransform)
	}
	return nil
}

func (s *Shape) setTransform(m core.Matrix) bool {
	s.transform = m
	s.inverse, s.invertible = m.Inverse()
	if s.invertible {
		s.normalToWorld = s.inverse.Transpose()
	}
	return s.invertible
}

// Valid reports whether the shape can answer transform-dependent queries
func (s *Shape) Valid() bool {
	return s.invertible
}

// SurfaceMaterial implements material.Surface
func (s *Shape) SurfaceMaterial() material.Material {
	return s.Material
}

// Intersect returns every intersection of the ray with the shape, sorted by t.
// It returns false when the shape has a singular transform.
func (s *Shape) Intersect(ray core.Ray) (Intersections, bool) {
	if !s.invertible {
		return Intersections{}, false
	}
	local := ray.Transform(s.inverse)

	var ts []float64
	switch s.Type {
	case SphereShape:
		ts = intersectSphere(local)
	case PlaneShape:
		ts = intersectPlane(local)
	case CubeShape:
		ts = intersectCube(local)
	case CylinderShape:
		ts = intersectCylinder(local, s.Min, s.Max, s.Closed)
	case ConeShape:
		ts = intersectCone(local, s.Min, s.Max, s.Closed)
	}

	xs := make([]Intersection, len(ts))
	for i, t := range ts {
		xs[i] = Intersection{T: t, Object: s}
	}
	return NewIntersections(xs...), true
}

// NormalAt returns the unit surface normal at a world-space point
func (s *Shape) NormalAt(worldPoint core.Vec3) (core.Vec3, bool) {
	if !s.invertible {
		return core.Vec3{}, false
	}
	p := s.inverse.MulPoint(worldPoint)

	var local core.Vec3
	switch s.Type {
	case SphereShape:
		local = sphereNormal(p)
	case PlaneShape:
		local = planeNormal(p)
	case CubeShape:
		local = cubeNormal(p)
	case CylinderShape:
		local = cylinderNormal(p, s.Min, s.Max)
	case ConeShape:
		local = coneNormal(p, s.Min, s.Max)
	}

	// the inverse transpose keeps normals perpendicular under non-uniform scaling
	return s.normalToWorld.MulVector(local).Normalize(), true
}

// PatternAt samples the material pattern at a world-space point. It returns
// false when there is no pattern or a transform is singular.
func (s *Shape) PatternAt(worldPoint core.Vec3) (core.Vec3, bool) {
	if !s.invertible || s.Material.Pattern == nil {
		return core.Vec3{}, false
	}
	return s.Material.Pattern.AtObject(s.inverse.MulPoint(worldPoint))
}

func (s *Shape) String() string {
	return fmt.Sprintf("%s#%d", s.Type, s.id)
}
