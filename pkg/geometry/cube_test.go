package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCube_Intersect(t *testing.T) {
	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expected  []float64
	}{
		{"+x", core.NewVec3(5, 0.5, 0), core.NewVec3(-1, 0, 0), []float64{4, 6}},
		{"-x", core.NewVec3(-5, 0.5, 0), core.NewVec3(1, 0, 0), []float64{4, 6}},
		{"+y", core.NewVec3(0.5, 5, 0), core.NewVec3(0, -1, 0), []float64{4, 6}},
		{"-y", core.NewVec3(0.5, -5, 0), core.NewVec3(0, 1, 0), []float64{4, 6}},
		{"+z", core.NewVec3(0.5, 0, 5), core.NewVec3(0, 0, -1), []float64{4, 6}},
		{"-z", core.NewVec3(0.5, 0, -5), core.NewVec3(0, 0, 1), []float64{4, 6}},
		{"inside", core.NewVec3(0, 0.5, 0), core.NewVec3(0, 0, 1), []float64{-1, 1}},
	}

	c := NewCube()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs, _ := c.Intersect(core.NewRay(tt.origin, tt.direction))
			checkTs(t, xs, tt.expected)
		})
	}
}

func TestCube_Miss(t *testing.T) {
	tests := []struct {
		origin    core.Vec3
		direction core.Vec3
	}{
		{core.NewVec3(-2, 0, 0), core.NewVec3(0.2673, 0.5345, 0.8018)},
		{core.NewVec3(0, -2, 0), core.NewVec3(0.8018, 0.2673, 0.5345)},
		{core.NewVec3(0, 0, -2), core.NewVec3(0.5345, 0.8018, 0.2673)},
		{core.NewVec3(2, 0, 2), core.NewVec3(0, 0, -1)},
		{core.NewVec3(0, 2, 2), core.NewVec3(0, -1, 0)},
		{core.NewVec3(2, 2, 0), core.NewVec3(-1, 0, 0)},
	}

	c := NewCube()
	for _, tt := range tests {
		xs, _ := c.Intersect(core.NewRay(tt.origin, tt.direction))
		if xs.Len() != 0 {
			t.Errorf("Ray from %v along %v: expected miss, got %v", tt.origin, tt.direction, ts(xs))
		}
	}
}

func TestCube_Normal(t *testing.T) {
	tests := []struct {
		point    core.Vec3
		expected core.Vec3
	}{
		{core.NewVec3(1, 0.5, -0.8), core.NewVec3(1, 0, 0)},
		{core.NewVec3(-1, -0.2, 0.9), core.NewVec3(-1, 0, 0)},
		{core.NewVec3(-0.4, 1, -0.1), core.NewVec3(0, 1, 0)},
		{core.NewVec3(0.3, -1, -0.7), core.NewVec3(0, -1, 0)},
		{core.NewVec3(-0.6, 0.3, 1), core.NewVec3(0, 0, 1)},
		{core.NewVec3(0.4, 0.4, -1), core.NewVec3(0, 0, -1)},
		// corners and edges resolve in x, y, z order
		{core.NewVec3(1, 1, 1), core.NewVec3(1, 0, 0)},
		{core.NewVec3(-1, -1, -1), core.NewVec3(-1, 0, 0)},
		{core.NewVec3(0.5, 1, 1), core.NewVec3(0, 1, 0)},
	}

	c := NewCube()
	for _, tt := range tests {
		n, _ := c.NormalAt(tt.point)
		if !n.Equals(tt.expected) {
			t.Errorf("At %v: expected %v, got %v", tt.point, tt.expected, n)
		}
	}
}
