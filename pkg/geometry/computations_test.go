package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPrepareComputations_Outside(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	s := NewSphere()
	hit := NewIntersection(4, s)

	comps, ok := hit.PrepareComputations(ray, NewIntersections(hit), core.Epsilon)
	if !ok {
		t.Fatal("Expected computations")
	}
	if comps.T != 4 || comps.Object != s {
		t.Errorf("Expected t=4 on %v, got t=%f on %v", s, comps.T, comps.Object)
	}
	if !comps.Point.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected point (0,0,-1), got %v", comps.Point)
	}
	if !comps.Eye.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected eye (0,0,-1), got %v", comps.Eye)
	}
	if !comps.Normal.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected normal (0,0,-1), got %v", comps.Normal)
	}
	if comps.Inside {
		t.Error("Expected hit outside the sphere")
	}
}

func TestPrepareComputations_Inside(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit := NewIntersection(1, NewSphere())

	comps, _ := hit.PrepareComputations(ray, NewIntersections(hit), core.Epsilon)
	if !comps.Point.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected point (0,0,1), got %v", comps.Point)
	}
	if !comps.Eye.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected eye (0,0,-1), got %v", comps.Eye)
	}
	if !comps.Inside {
		t.Error("Expected hit inside the sphere")
	}
	// flipped to face the eye
	if !comps.Normal.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected normal (0,0,-1), got %v", comps.Normal)
	}
}

func TestPrepareComputations_OverAndUnderPoint(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	s := NewGlassSphere()
	_ = s.SetTransform(core.Translation(0, 0, 1))
	hit := NewIntersection(5, s)

	comps, _ := hit.PrepareComputations(ray, NewIntersections(hit), core.Epsilon)
	if comps.OverPoint.Z >= -core.Epsilon/2 {
		t.Errorf("Expected over point below -epsilon/2, got z=%g", comps.OverPoint.Z)
	}
	if comps.Point.Z <= comps.OverPoint.Z {
		t.Errorf("Expected point z=%g above over point z=%g", comps.Point.Z, comps.OverPoint.Z)
	}
	if comps.UnderPoint.Z <= core.Epsilon/2 {
		t.Errorf("Expected under point above epsilon/2, got z=%g", comps.UnderPoint.Z)
	}
	if comps.Point.Z >= comps.UnderPoint.Z {
		t.Errorf("Expected point z=%g below under point z=%g", comps.Point.Z, comps.UnderPoint.Z)
	}
}

func TestPrepareComputations_Epsilon(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit := NewIntersection(4, NewSphere())

	comps, _ := hit.PrepareComputations(ray, Intersections{}, 0.01)
	if !approxEqual(comps.OverPoint.Z, -1.01) {
		t.Errorf("Expected over point z=-1.01, got %f", comps.OverPoint.Z)
	}
	if !approxEqual(comps.UnderPoint.Z, -0.99) {
		t.Errorf("Expected under point z=-0.99, got %f", comps.UnderPoint.Z)
	}
}

func TestPrepareComputations_Reflect(t *testing.T) {
	half := math.Sqrt2 / 2
	ray := core.NewRay(core.NewVec3(0, 1, -1), core.NewVec3(0, -half, half))
	hit := NewIntersection(math.Sqrt2, NewPlane())

	comps, _ := hit.PrepareComputations(ray, NewIntersections(hit), core.Epsilon)
	expected := core.NewVec3(0, half, half)
	if !comps.Reflect.ApproxEquals(expected, tolerance) {
		t.Errorf("Expected reflect %v, got %v", expected, comps.Reflect)
	}
}

func TestPrepareComputations_SingularShape(t *testing.T) {
	s := NewSphere()
	_ = s.SetTransform(core.Scaling(0, 0, 0))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	if _, ok := NewIntersection(4, s).PrepareComputations(ray, Intersections{}, core.Epsilon); ok {
		t.Error("Expected computations to fail for a singular shape")
	}
}

func TestPrepareComputations_RefractiveIndices(t *testing.T) {
	a := NewGlassSphere()
	_ = a.SetTransform(core.Scaling(2, 2, 2))
	a.Material.RefractiveIndex = 1.5

	b := NewGlassSphere()
	_ = b.SetTransform(core.Translation(0, 0, -0.25))
	b.Material.RefractiveIndex = 2.0

	c := NewGlassSphere()
	_ = c.SetTransform(core.Translation(0, 0, 0.25))
	c.Material.RefractiveIndex = 2.5

	ray := core.NewRay(core.NewVec3(0, 0, -4), core.NewVec3(0, 0, 1))
	xs := NewIntersections(
		NewIntersection(2, a),
		NewIntersection(2.75, b),
		NewIntersection(3.25, c),
		NewIntersection(4.75, b),
		NewIntersection(5.25, c),
		NewIntersection(6, a),
	)

	expected := []struct{ n1, n2 float64 }{
		{1.0, 1.5},
		{1.5, 2.0},
		{2.0, 2.5},
		{2.5, 2.5},
		{2.5, 1.5},
		{1.5, 1.0},
	}

	for i, want := range expected {
		hit, _ := xs.Get(i)
		comps, ok := hit.PrepareComputations(ray, xs, core.Epsilon)
		if !ok {
			t.Fatalf("Index %d: expected computations", i)
		}
		if comps.N1 != want.n1 || comps.N2 != want.n2 {
			t.Errorf("Index %d: expected n1=%.1f n2=%.1f, got n1=%.1f n2=%.1f", i, want.n1, want.n2, comps.N1, comps.N2)
		}
	}
}

func TestComputations_Schlick(t *testing.T) {
	half := math.Sqrt2 / 2

	t.Run("total internal reflection", func(t *testing.T) {
		s := NewGlassSphere()
		ray := core.NewRay(core.NewVec3(0, 0, half), core.NewVec3(0, 1, 0))
		xs := NewIntersections(NewIntersection(-half, s), NewIntersection(half, s))
		hit, _ := xs.Get(1)
		comps, _ := hit.PrepareComputations(ray, xs, core.Epsilon)
		if got := comps.Schlick(); got != 1.0 {
			t.Errorf("Expected 1.0, got %f", got)
		}
	})

	t.Run("perpendicular", func(t *testing.T) {
		s := NewGlassSphere()
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
		xs := NewIntersections(NewIntersection(-1, s), NewIntersection(1, s))
		hit, _ := xs.Get(1)
		comps, _ := hit.PrepareComputations(ray, xs, core.Epsilon)
		if got := comps.Schlick(); !approxEqual(got, 0.04) {
			t.Errorf("Expected 0.04, got %f", got)
		}
	})

	t.Run("small angle entering denser medium", func(t *testing.T) {
		s := NewGlassSphere()
		ray := core.NewRay(core.NewVec3(0, 0.99, -2), core.NewVec3(0, 0, 1))
		xs := NewIntersections(NewIntersection(1.8589, s))
		hit, _ := xs.Get(0)
		comps, _ := hit.PrepareComputations(ray, xs, core.Epsilon)
		if got := comps.Schlick(); !approxEqual(got, 0.48873) {
			t.Errorf("Expected 0.48873, got %f", got)
		}
	})
}
