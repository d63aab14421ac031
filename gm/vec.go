package gm

import (
	"fmt"
	"math"
)

// Vec is a two dimensional vector.
type Vec struct {
	X, Y float64
}

var VecOne = Vec{X: 1, Y: 1}

// VecOfAngle returns the unit vector pointing into the direction of the
// given angle.
func VecOfAngle(angle Rad) Vec {
	return Vec{X: angle.Cos(), Y: angle.Sin()}
}

func (v Vec) Add(other Vec) Vec {
	v.X += other.X
	v.Y += other.Y
	return v
}

func (v Vec) Sub(other Vec) Vec {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

func (v Vec) Mul(scalar float64) Vec {
	v.X *= scalar
	v.Y *= scalar
	return v
}

func (v Vec) MulEach(other Vec) Vec {
	v.X *= other.X
	v.Y *= other.Y
	return v
}

func (v Vec) Length() float64 {
	return math.Sqrt(v.LengthSqr())
}

func (v Vec) LengthSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns the vector scaled to length one.
// The zero vector is returned unchanged.
func (v Vec) Normalized() Vec {
	length := v.Length()
	if length == 0 {
		return v
	}

	v.X /= length
	v.Y /= length
	return v
}

// Angle returns the direction of the vector.
func (v Vec) Angle() Rad {
	return Rad(math.Atan2(v.Y, v.X))
}

func (v Vec) String() string {
	return fmt.Sprintf("vec(x=%v, y=%v)", v.X, v.Y)
}
