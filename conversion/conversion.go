// Package conversion maps glTF transform values into the host coordinate system and back.
//
// glTF is Y-up right-handed and stores quaternions as (x, y, z, w). The host is Z-up.
// With AxisYUp the values keep the glTF basis and the importer rotates the whole
// hierarchy once through a correction object. With AxisZUp every value is rotated by
// +90 degrees around X, which is the same basis change applied per value.
package conversion

import (
	"fmt"
	"math"
	"strings"

	"github.com/binzume/gltfscene/geom"
)

type Axis int

const (
	AxisYUp Axis = iota
	AxisZUp
)

func (a Axis) String() string {
	switch a {
	case AxisYUp:
		return "yup"
	case AxisZUp:
		return "zup"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "", "yup", "y":
		return AxisYUp, nil
	case "zup", "z":
		return AxisZUp, nil
	}
	return AxisYUp, fmt.Errorf("unknown axis mode: %q", s)
}

var sqrtHalf = float32(math.Sqrt2 / 2)

// Converter is stateless. The zero value converts with AxisYUp.
type Converter struct {
	Axis Axis
}

func (c Converter) Translation(v [3]float32) *geom.Vector3 {
	if c.Axis == AxisZUp {
		return &geom.Vector3{X: v[0], Y: -v[2], Z: v[1]}
	}
	return geom.NewVector3FromArray(v)
}

func (c Converter) Rotation(q [4]float32) *geom.Quaternion {
	if c.Axis == AxisZUp {
		return &geom.Quaternion{X: q[0], Y: -q[2], Z: q[1], W: q[3]}
	}
	return geom.NewQuaternionFromArray(q)
}

func (c Converter) Scale(v [3]float32) *geom.Vector3 {
	if c.Axis == AxisZUp {
		return &geom.Vector3{X: v[0], Y: v[2], Z: v[1]}
	}
	return geom.NewVector3FromArray(v)
}

// Matrix converts a column-major glTF matrix: B * m * B^-1.
func (c Converter) Matrix(m [16]float32) *geom.Matrix4 {
	mat := geom.Matrix4(m)
	if c.Axis == AxisZUp {
		return basis().Mul(&mat).Mul(basis().Transposed())
	}
	return &mat
}

func (c Converter) TranslationToGLTF(v *geom.Vector3) [3]float32 {
	if c.Axis == AxisZUp {
		return [3]float32{v.X, v.Z, -v.Y}
	}
	return v.Array()
}

func (c Converter) RotationToGLTF(q *geom.Quaternion) [4]float32 {
	if c.Axis == AxisZUp {
		return [4]float32{q.X, q.Z, -q.Y, q.W}
	}
	return q.Array()
}

func (c Converter) ScaleToGLTF(v *geom.Vector3) [3]float32 {
	if c.Axis == AxisZUp {
		return [3]float32{v.X, v.Z, v.Y}
	}
	return v.Array()
}

func (c Converter) MatrixToGLTF(m *geom.Matrix4) [16]float32 {
	if c.Axis == AxisZUp {
		return [16]float32(*basis().Transposed().Mul(m).Mul(basis()))
	}
	return [16]float32(*m)
}

// CorrectionRotation is the rotation of the object all imported roots are parented to.
func (c Converter) CorrectionRotation() *geom.Quaternion {
	if c.Axis == AxisZUp {
		return geom.NewIdentityQuaternion()
	}
	return &geom.Quaternion{X: sqrtHalf, W: sqrtHalf}
}

// +90 degrees around X: (x, y, z) -> (x, -z, y)
func basis() *geom.Matrix4 {
	return &geom.Matrix4{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, -1, 0, 0,
		0, 0, 0, 1,
	}
}
