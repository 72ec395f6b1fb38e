package gamemath

import (
	"math"

	"github.com/kvartborg/vector"
)

// Vec3 is a position, velocity or direction in world units. The arena is a
// side view: X grows right, Y grows down, Z is depth and stays 0 on maps
// without depth.
type Vec3 struct {
	X, Y, Z float64
}

// V3 builds a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the Euclidean length.
func (v Vec3) Len() float64 {
	return vector.Vector{v.X, v.Y, v.Z}.Magnitude()
}

// Normalize returns the unit vector in v's direction and v's length. A zero
// vector normalizes to zero.
func (v Vec3) Normalize() (Vec3, float64) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) {
		return Vec3{}, 0
	}
	return v.Scale(1 / l), l
}

// Distance returns |a - b|.
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Len()
}
