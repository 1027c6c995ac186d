package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Computations holds everything shading needs to know about a hit
type Computations struct {
	T      float64
	Object *Shape
	Point  core.Vec3
	Eye    core.Vec3 // toward the ray origin
	Normal core.Vec3 // faces the eye
	Inside bool      // the hit is on the inside surface

	Reflect    core.Vec3 // reflected ray direction
	OverPoint  core.Vec3 // Point nudged along Normal, for shadow and reflection rays
	UnderPoint core.Vec3 // Point nudged against Normal, for refraction rays

	N1 float64 // refractive index of the medium being left
	N2 float64 // refractive index of the medium being entered
}

// PrepareComputations derives the shading state for the hit i on ray.
// xs is every intersection along the ray, used to work out which objects
// the ray is inside at the hit; an empty collection treats i as the only
// one. eps sets how far over and under points sit from the surface.
// It returns false when the surface normal cannot be evaluated.
func (i Intersection) PrepareComputations(ray core.Ray, xs Intersections, eps float64) (Computations, bool) {
	point := ray.At(i.T)
	normal, ok := i.Object.NormalAt(point)
	if !ok {
		return Computations{}, false
	}

	comps := Computations{
		T:      i.T,
		Object: i.Object,
		Point:  point,
		Eye:    ray.Direction.Negate(),
		Normal: normal,
	}
	if comps.Normal.Dot(comps.Eye) < 0 {
		comps.Inside = true
		comps.Normal = comps.Normal.Negate()
	}

	comps.Reflect = ray.Direction.Reflect(comps.Normal)
	offset := comps.Normal.Multiply(eps)
	comps.OverPoint = point.Add(offset)
	comps.UnderPoint = point.Subtract(offset)

	if xs.Len() == 0 {
		xs = NewIntersections(i)
	}
	comps.N1, comps.N2 = refractiveIndices(i, xs)
	return comps, true
}

// refractiveIndices walks the intersections in order, tracking which objects
// the ray is currently inside, to find the media on either side of hit
func refractiveIndices(hit Intersection, xs Intersections) (n1, n2 float64) {
	n1, n2 = material.Vacuum, material.Vacuum
	var containers []*Shape

	current := func() float64 {
		if len(containers) == 0 {
			return material.Vacuum
		}
		return containers[len(containers)-1].Material.RefractiveIndex
	}

	for _, x := range xs.list {
		isHit := x.same(hit)
		if isHit {
			n1 = current()
		}

		found := -1
		for j, c := range containers {
			if c.ID() == x.Object.ID() {
				found = j
				break
			}
		}
		if found >= 0 {
			containers = append(containers[:found], containers[found+1:]...)
		} else {
			containers = append(containers, x.Object)
		}

		if isHit {
			n2 = current()
			break
		}
	}
	return n1, n2
}

// Schlick approximates the fraction of light reflected at the hit
func (c Computations) Schlick() float64 {
	return material.Schlick(c.Eye.Dot(c.Normal), c.N1, c.N2)
}
