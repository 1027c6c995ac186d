package lights

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewPointLight(t *testing.T) {
	position := core.NewVec3(0, 0, 0)
	intensity := core.NewVec3(1, 1, 1)

	light := NewPointLight(position, intensity)

	if light.Position != position {
		t.Errorf("Expected position %v, got %v", position, light.Position)
	}
	if light.Intensity != intensity {
		t.Errorf("Expected intensity %v, got %v", intensity, light.Intensity)
	}
}

func TestPointLight_DirectionFrom(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 10, 0), core.White)

	tests := []struct {
		name              string
		point             core.Vec3
		expectedDirection core.Vec3
		expectedDistance  float64
	}{
		{"directly below", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 10},
		{"diagonal", core.NewVec3(10, 0, 0), core.NewVec3(-1, 1, 0).Normalize(), 10 * math.Sqrt2},
		{"above", core.NewVec3(0, 12, 0), core.NewVec3(0, -1, 0), 2},
		{"at the light", core.NewVec3(0, 10, 0), core.Vec3{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			direction, distance := light.DirectionFrom(tt.point)
			if !direction.Equals(tt.expectedDirection) {
				t.Errorf("Expected direction %v, got %v", tt.expectedDirection, direction)
			}
			if !core.FloatEquals(distance, tt.expectedDistance) {
				t.Errorf("Expected distance %v, got %v", tt.expectedDistance, distance)
			}
		})
	}
}
