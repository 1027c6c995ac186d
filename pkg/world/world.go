package world

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrNoLight is reported by Validate for a world that has nothing to light it
var ErrNoLight = errors.New("world has no light")

// World is the set of objects and the light a scene is rendered from.
// It is read-only during a render and safe to share between workers.
type World struct {
	Objects []*geometry.Shape
	Light   *lights.PointLight
	Epsilon float64 // Offset for over and under points, in world units
}

// NewWorld creates an empty world with no light
func NewWorld() *World {
	return &World{Epsilon: core.Epsilon}
}

// NewDefaultWorld creates the canonical two-sphere world: an outer green
// sphere and a smaller white one inside it, lit from the upper left
func NewDefaultWorld() *World {
	w := NewWorld()
	w.Light = lights.NewPointLight(core.NewVec3(-10, 10, -10), core.White)

	outer := geometry.NewSphere()
	outer.Material.Color = core.NewVec3(0.8, 1.0, 0.6)
	outer.Material.Diffuse = 0.7
	outer.Material.Specular = 0.2

	inner := geometry.NewSphere()
	_ = inner.SetTransform(core.Scaling(0.5, 0.5, 0.5))

	w.Add(outer, inner)
	return w
}

// WithEpsilon returns a copy of w that offsets secondary rays by epsilon.
// The copy shares the objects and the light with w.
func (w *World) WithEpsilon(epsilon float64) *World {
	c := *w
	c.Epsilon = epsilon
	return &c
}

// Add appends shapes to the world
func (w *World) Add(shapes ...*geometry.Shape) {
	w.Objects = append(w.Objects, shapes...)
}

// Validate reports configuration errors that would make parts of the world
// render incorrectly. Shapes with singular transforms are skipped by the
// renderer rather than crashing it, so this is the place they surface.
func (w *World) Validate() error {
	var errs []error
	if w.Light == nil {
		errs = append(errs, ErrNoLight)
	}
	for i, s := range w.Objects {
		if s == nil {
			errs = append(errs, fmt.Errorf("object %d is nil", i))
			continue
		}
		if !s.Valid() {
			errs = append(errs, fmt.Errorf("object %d (%s): %w", i, s, geometry.ErrSingularTransform))
		}
	}
	return errors.Join(errs...)
}

// Intersect returns the intersections of ray with every object, sorted by t
func (w *World) Intersect(ray core.Ray) geometry.Intersections {
	var xs geometry.Intersections
	for _, s := range w.Objects {
		if s == nil {
			continue
		}
		hits, ok := s.Intersect(ray)
		if !ok {
			continue
		}
		xs = xs.Merge(hits)
	}
	return xs
}

// IsShadowed reports whether an object lies between point and the light
func (w *World) IsShadowed(point core.Vec3) bool {
	if w.Light == nil {
		return false
	}
	direction, distance := w.Light.DirectionFrom(point)
	if distance == 0 {
		return false
	}

	hit, ok := w.Intersect(core.NewRay(point, direction)).Hit()
	return ok && hit.T < distance
}

// ColorAt traces ray into the world and returns the color it sees.
// remaining bounds how many more reflection or refraction rays may be spawned.
func (w *World) ColorAt(ray core.Ray, remaining int) core.Vec3 {
	xs := w.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return core.Black
	}

	comps, ok := hit.PrepareComputations(ray, xs, w.Epsilon)
	if !ok {
		return core.Black
	}
	return w.ShadeHit(comps, remaining)
}

// ShadeHit combines the Phong surface color with reflected and refracted light
func (w *World) ShadeHit(comps geometry.Computations, remaining int) core.Vec3 {
	shadowed := w.IsShadowed(comps.OverPoint)
	surface := material.Lighting(comps.Object, w.Light, comps.OverPoint, comps.Eye, comps.Normal, shadowed)

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	m := comps.Object.Material
	if m.IsReflective() && m.IsTransparent() {
		reflectance := comps.Schlick()
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// ReflectedColor traces the mirror bounce at a hit
func (w *World) ReflectedColor(comps geometry.Computations, remaining int) core.Vec3 {
	reflective := comps.Object.Material.Reflective
	if remaining <= 0 || reflective == 0 {
		return core.Black
	}

	ray := core.NewRay(comps.OverPoint, comps.Reflect)
	return w.ColorAt(ray, remaining-1).Multiply(reflective)
}

// RefractedColor traces the ray transmitted through a transparent hit
func (w *World) RefractedColor(comps geometry.Computations, remaining int) core.Vec3 {
	transparency := comps.Object.Material.Transparency
	if remaining <= 0 || transparency == 0 {
		return core.Black
	}

	ratio := comps.N1 / comps.N2
	cosI := comps.Eye.Dot(comps.Normal)
	direction, ok := material.Refract(comps.Eye, comps.Normal, ratio, cosI)
	if !ok {
		// total internal reflection
		return core.Black
	}

	ray := core.NewRay(comps.UnderPoint, direction)
	return w.ColorAt(ray, remaining-1).Multiply(transparency)
}
