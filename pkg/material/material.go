package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Refractive indices of common media
const (
	Vacuum  = 1.0
	Air     = 1.00029
	Water   = 1.333
	Glass   = 1.5
	Diamond = 2.417
)

// Material holds the Phong coefficients plus the reflective and refractive
// properties of a surface
type Material struct {
	Color           core.Vec3 // Flat surface color, used when Pattern is nil
	Ambient         float64   // Light reflected from the environment (0..1)
	Diffuse         float64   // Light reflected from matte surfaces (0..1)
	Specular        float64   // Brightness of the specular highlight (0..1)
	Shininess       float64   // Size of the highlight, 10 (large) to 200 (small) work best
	Reflective      float64   // 0 for matte, 1 for a perfect mirror
	Transparency    float64   // 0 for opaque, 1 for fully transparent
	RefractiveIndex float64   // How much light bends entering the material
	Pattern         *Pattern  // Optional procedural color
}

// DefaultMaterial returns a white, slightly shiny, opaque material
func DefaultMaterial() Material {
	return Material{
		Color:           core.White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: Vacuum,
	}
}

// NewGlass returns a fully transparent material with the refractive index of glass
func NewGlass() Material {
	m := DefaultMaterial()
	m.Transparency = 1.0
	m.RefractiveIndex = Glass
	return m
}

// IsReflective reports whether the material contributes a reflected ray
func (m Material) IsReflective() bool {
	return m.Reflective > 0
}

// IsTransparent reports whether the material contributes a refracted ray
func (m Material) IsTransparent() bool {
	return m.Transparency > 0
}
