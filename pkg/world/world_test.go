package world

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const tolerance = 1e-4

// comps prepares the computations for the i-th intersection of xs
func comps(t *testing.T, w *World, ray core.Ray, xs geometry.Intersections, i int) geometry.Computations {
	t.Helper()
	hit, ok := xs.Get(i)
	if !ok {
		t.Fatalf("Expected intersection %d", i)
	}
	c, ok := hit.PrepareComputations(ray, xs, w.Epsilon)
	if !ok {
		t.Fatalf("Expected computations for intersection %d", i)
	}
	return c
}

func TestNewDefaultWorld(t *testing.T) {
	w := NewDefaultWorld()

	if len(w.Objects) != 2 {
		t.Fatalf("Expected 2 objects, got %d", len(w.Objects))
	}
	if w.Light == nil || !w.Light.Position.Equals(core.NewVec3(-10, 10, -10)) {
		t.Errorf("Expected light at (-10, 10, -10), got %+v", w.Light)
	}
	if !w.Objects[0].Material.Color.Equals(core.NewVec3(0.8, 1.0, 0.6)) {
		t.Errorf("Expected outer sphere color (0.8, 1.0, 0.6), got %v", w.Objects[0].Material.Color)
	}
	if !w.Objects[1].Transform().ApproxEquals(core.Scaling(0.5, 0.5, 0.5), 1e-9) {
		t.Errorf("Expected inner sphere scaled by 0.5, got %v", w.Objects[1].Transform())
	}
	if err := w.Validate(); err != nil {
		t.Errorf("Expected valid world, got %v", err)
	}
}

func TestWorld_Intersect(t *testing.T) {
	w := NewDefaultWorld()
	xs := w.Intersect(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)))

	expected := []float64{4, 4.5, 5.5, 6}
	if xs.Len() != len(expected) {
		t.Fatalf("Expected %d intersections, got %d", len(expected), xs.Len())
	}
	for i, want := range expected {
		x, _ := xs.Get(i)
		if math.Abs(x.T-want) > tolerance {
			t.Errorf("Intersection %d: expected t=%f, got %f", i, want, x.T)
		}
	}
}

func TestWorld_IntersectSkipsSingularShapes(t *testing.T) {
	w := NewDefaultWorld()
	broken := geometry.NewSphere()
	if err := broken.SetTransform(core.Scaling(0, 1, 1)); err == nil {
		t.Fatal("Expected singular transform error")
	}
	w.Add(broken)

	xs := w.Intersect(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)))
	if xs.Len() != 4 {
		t.Errorf("Expected 4 intersections, got %d", xs.Len())
	}

	err := w.Validate()
	if !errors.Is(err, geometry.ErrSingularTransform) {
		t.Errorf("Expected ErrSingularTransform, got %v", err)
	}
}

func TestWorld_ValidateNoLight(t *testing.T) {
	w := NewWorld()
	if err := w.Validate(); !errors.Is(err, ErrNoLight) {
		t.Errorf("Expected ErrNoLight, got %v", err)
	}
}

func TestWorld_ShadeHit(t *testing.T) {
	t.Run("outside", func(t *testing.T) {
		w := NewDefaultWorld()
		ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
		xs := geometry.NewIntersections(geometry.NewIntersection(4, w.Objects[0]))

		got := w.ShadeHit(comps(t, w, ray, xs, 0), 5)
		expected := core.NewVec3(0.38066, 0.47583, 0.2855)
		if !got.ApproxEquals(expected, tolerance) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("inside", func(t *testing.T) {
		w := NewDefaultWorld()
		w.Light = lights.NewPointLight(core.NewVec3(0, 0.25, 0), core.White)
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
		xs := geometry.NewIntersections(geometry.NewIntersection(0.5, w.Objects[1]))

		got := w.ShadeHit(comps(t, w, ray, xs, 0), 5)
		expected := core.NewVec3(0.90498, 0.90498, 0.90498)
		if !got.ApproxEquals(expected, tolerance) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("in shadow", func(t *testing.T) {
		w := NewWorld()
		w.Light = lights.NewPointLight(core.NewVec3(0, 0, -10), core.White)
		s1 := geometry.NewSphere()
		s2 := geometry.NewSphere()
		_ = s2.SetTransform(core.Translation(0, 0, 10))
		w.Add(s1, s2)

		ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))
		xs := geometry.NewIntersections(geometry.NewIntersection(4, s2))

		got := w.ShadeHit(comps(t, w, ray, xs, 0), 5)
		expected := core.NewVec3(0.1, 0.1, 0.1)
		if !got.ApproxEquals(expected, tolerance) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})
}

func TestWorld_ColorAt(t *testing.T) {
	t.Run("miss", func(t *testing.T) {
		w := NewDefaultWorld()
		got := w.ColorAt(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 1, 0)), 5)
		if !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("hit", func(t *testing.T) {
		w := NewDefaultWorld()
		got := w.ColorAt(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), 5)
		expected := core.NewVec3(0.38066, 0.47583, 0.2855)
		if !got.ApproxEquals(expected, tolerance) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("hit behind the ray origin is ignored", func(t *testing.T) {
		w := NewDefaultWorld()
		outer, inner := w.Objects[0], w.Objects[1]
		outer.Material.Ambient = 1
		inner.Material.Ambient = 1

		got := w.ColorAt(core.NewRay(core.NewVec3(0, 0, 0.75), core.NewVec3(0, 0, -1)), 5)
		if !got.ApproxEquals(inner.Material.Color, tolerance) {
			t.Errorf("Expected inner color %v, got %v", inner.Material.Color, got)
		}
	})

	t.Run("empty world", func(t *testing.T) {
		got := NewWorld().ColorAt(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), 5)
		if !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})
}

func TestWorld_IsShadowed(t *testing.T) {
	tests := []struct {
		name     string
		point    core.Vec3
		expected bool
	}{
		{"nothing collinear", core.NewVec3(0, 10, 0), false},
		{"object between point and light", core.NewVec3(10, -10, 10), true},
		{"object behind the light", core.NewVec3(-20, 20, -20), false},
		{"object behind the point", core.NewVec3(-2, 2, -2), false},
	}

	w := NewDefaultWorld()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.IsShadowed(tt.point); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestWorld_ReflectedColor(t *testing.T) {
	half := math.Sqrt2 / 2

	t.Run("nonreflective material", func(t *testing.T) {
		w := NewDefaultWorld()
		inner := w.Objects[1]
		inner.Material.Ambient = 1
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
		xs := geometry.NewIntersections(geometry.NewIntersection(1, inner))

		got := w.ReflectedColor(comps(t, w, ray, xs, 0), 5)
		if !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	reflectivePlane := func(w *World) *geometry.Shape {
		p := geometry.NewPlane()
		p.Material.Reflective = 0.5
		_ = p.SetTransform(core.Translation(0, -1, 0))
		w.Add(p)
		return p
	}
	ray := core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, -half, half))

	t.Run("reflective material", func(t *testing.T) {
		w := NewDefaultWorld()
		p := reflectivePlane(w)
		xs := geometry.NewIntersections(geometry.NewIntersection(math.Sqrt2, p))

		got := w.ReflectedColor(comps(t, w, ray, xs, 0), 5)
		expected := core.NewVec3(0.19032, 0.2379, 0.14274)
		if !got.ApproxEquals(expected, 1e-3) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("shade hit with reflection", func(t *testing.T) {
		w := NewDefaultWorld()
		p := reflectivePlane(w)
		xs := geometry.NewIntersections(geometry.NewIntersection(math.Sqrt2, p))

		got := w.ShadeHit(comps(t, w, ray, xs, 0), 5)
		expected := core.NewVec3(0.87677, 0.92436, 0.82918)
		if !got.ApproxEquals(expected, 1e-3) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("no bounces remaining", func(t *testing.T) {
		w := NewDefaultWorld()
		p := reflectivePlane(w)
		xs := geometry.NewIntersections(geometry.NewIntersection(math.Sqrt2, p))

		got := w.ReflectedColor(comps(t, w, ray, xs, 0), 0)
		if !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})
}

func TestWorld_MutuallyReflectiveSurfaces(t *testing.T) {
	w := NewWorld()
	w.Light = lights.NewPointLight(core.NewVec3(0, 0, 0), core.Black)

	lower := geometry.NewPlane()
	lower.Material.Reflective = 1
	_ = lower.SetTransform(core.Translation(0, -1, 0))

	upper := geometry.NewPlane()
	upper.Material.Reflective = 1
	_ = upper.SetTransform(core.Translation(0, 1, 0))
	w.Add(lower, upper)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	for _, bounces := range []int{0, 1, 5, 100, 10000} {
		t.Run(fmt.Sprintf("%d bounces", bounces), func(t *testing.T) {
			done := make(chan core.Vec3, 1)
			go func() {
				done <- w.ColorAt(ray, bounces)
			}()

			select {
			case got := <-done:
				if !got.Equals(core.Black) {
					t.Errorf("Expected black, got %v", got)
				}
			case <-time.After(10 * time.Second):
				t.Fatal("Expected the bounce counter to stop the recursion")
			}
		})
	}
}

func TestWorld_RefractedColor(t *testing.T) {
	t.Run("opaque surface", func(t *testing.T) {
		w := NewDefaultWorld()
		shape := w.Objects[0]
		ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
		xs := geometry.NewIntersections(geometry.NewIntersection(4, shape), geometry.NewIntersection(6, shape))

		got := w.RefractedColor(comps(t, w, ray, xs, 0), 5)
		if !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("no bounces remaining", func(t *testing.T) {
		w := NewDefaultWorld()
		shape := w.Objects[0]
		shape.Material.Transparency = 1
		shape.Material.RefractiveIndex = 1.5
		ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
		xs := geometry.NewIntersections(geometry.NewIntersection(4, shape), geometry.NewIntersection(6, shape))

		got := w.RefractedColor(comps(t, w, ray, xs, 0), 0)
		if !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		w := NewDefaultWorld()
		shape := w.Objects[0]
		shape.Material.Transparency = 1
		shape.Material.RefractiveIndex = 1.5
		half := math.Sqrt2 / 2
		ray := core.NewRay(core.NewVec3(0, 0, half), core.NewVec3(0, 1, 0))
		xs := geometry.NewIntersections(geometry.NewIntersection(-half, shape), geometry.NewIntersection(half, shape))

		got := w.RefractedColor(comps(t, w, ray, xs, 1), 5)
		if !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("refracted ray", func(t *testing.T) {
		w := NewDefaultWorld()
		a, b := w.Objects[0], w.Objects[1]
		a.Material.Ambient = 1
		a.Material.Pattern = material.NewPattern(material.PointPattern, core.Black, core.White)
		b.Material.Transparency = 1
		b.Material.RefractiveIndex = 1.5

		ray := core.NewRay(core.NewVec3(0, 0, 0.1), core.NewVec3(0, 1, 0))
		xs := geometry.NewIntersections(
			geometry.NewIntersection(-0.9899, a),
			geometry.NewIntersection(-0.4899, b),
			geometry.NewIntersection(0.4899, b),
			geometry.NewIntersection(0.9899, a),
		)

		got := w.RefractedColor(comps(t, w, ray, xs, 2), 5)
		expected := core.NewVec3(0, 0.99888, 0.04725)
		if !got.ApproxEquals(expected, 1e-3) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})
}

func TestWorld_ShadeHitTransparent(t *testing.T) {
	half := math.Sqrt2 / 2

	setup := func(reflective float64) (*World, core.Ray, geometry.Intersections) {
		w := NewDefaultWorld()

		floor := geometry.NewPlane()
		_ = floor.SetTransform(core.Translation(0, -1, 0))
		floor.Material.Transparency = 0.5
		floor.Material.Reflective = reflective
		floor.Material.RefractiveIndex = 1.5

		ball := geometry.NewSphere()
		ball.Material.Color = core.NewVec3(1, 0, 0)
		ball.Material.Ambient = 0.5
		_ = ball.SetTransform(core.Translation(0, -3.5, -0.5))

		w.Add(floor, ball)
		ray := core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, -half, half))
		return w, ray, geometry.NewIntersections(geometry.NewIntersection(math.Sqrt2, floor))
	}

	t.Run("transparent", func(t *testing.T) {
		w, ray, xs := setup(0)
		got := w.ShadeHit(comps(t, w, ray, xs, 0), 5)
		expected := core.NewVec3(0.93642, 0.68642, 0.68642)
		if !got.ApproxEquals(expected, 1e-3) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("reflective and transparent", func(t *testing.T) {
		w, ray, xs := setup(0.5)
		got := w.ShadeHit(comps(t, w, ray, xs, 0), 5)
		expected := core.NewVec3(0.93391, 0.69643, 0.69243)
		if !got.ApproxEquals(expected, 1e-3) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})
}

func TestWorld_IntersectSkipsNilObjects(t *testing.T) {
	w := NewDefaultWorld()
	w.Add(nil)

	xs := w.Intersect(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)))
	if xs.Len() != 4 {
		t.Errorf("Expected 4 intersections, got %d", xs.Len())
	}
	if err := w.Validate(); err == nil {
		t.Error("Expected Validate to report the nil object")
	}
}

func TestWorld_WithEpsilon(t *testing.T) {
	w := NewDefaultWorld()
	c := w.WithEpsilon(0.01)

	if c.Epsilon != 0.01 {
		t.Errorf("Expected 0.01, got %g", c.Epsilon)
	}
	if w.Epsilon != core.Epsilon {
		t.Errorf("Expected original epsilon %g, got %g", core.Epsilon, w.Epsilon)
	}
	if c.Light != w.Light || len(c.Objects) != len(w.Objects) || c.Objects[0] != w.Objects[0] {
		t.Error("Expected the copy to share objects and light")
	}
}

func TestWorld_Epsilon(t *testing.T) {
	w := NewDefaultWorld()
	w.Epsilon = 0.01
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	xs := w.Intersect(ray)
	c := comps(t, w, ray, xs, 0)
	if math.Abs(c.OverPoint.Z-(-1.01)) > tolerance {
		t.Errorf("Expected over point offset by the world epsilon, got %v", c.OverPoint)
	}
}
