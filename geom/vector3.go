package geom

import "github.com/chewxy/math32"

type Element = float32

type Vector3 struct {
	X, Y, Z Element
}

func NewVector3(x, y, z Element) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

func NewVector3FromArray(a [3]Element) *Vector3 {
	return &Vector3{X: a[0], Y: a[1], Z: a[2]}
}

// NewVector3FromSlice reads the first three elements of s.
func NewVector3FromSlice(s []Element) *Vector3 {
	_ = s[2]
	return &Vector3{X: s[0], Y: s[1], Z: s[2]}
}

func (v *Vector3) Add(o *Vector3) *Vector3 {
	return &Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v *Vector3) Sub(o *Vector3) *Vector3 {
	return &Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v *Vector3) Cross(o *Vector3) *Vector3 {
	return &Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v *Vector3) Scale(s Element) *Vector3 {
	return &Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v *Vector3) LenSqr() Element {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v *Vector3) Len() Element {
	return math32.Sqrt(v.LenSqr())
}

// Distance returns the length of v - o.
func (v *Vector3) Distance(o *Vector3) Element {
	return v.Sub(o).Len()
}

// Normalize scales v to unit length in place. A zero vector becomes +X.
func (v *Vector3) Normalize() *Vector3 {
	if l := v.Len(); l > 0 {
		*v = *v.Scale(1 / l)
	} else {
		*v = Vector3{X: 1}
	}
	return v
}

// ApproxEqual reports whether every component differs by at most eps.
func (v *Vector3) ApproxEqual(o *Vector3, eps Element) bool {
	return math32.Abs(v.X-o.X) <= eps && math32.Abs(v.Y-o.Y) <= eps && math32.Abs(v.Z-o.Z) <= eps
}

func (v *Vector3) Array() [3]Element {
	return [3]Element{v.X, v.Y, v.Z}
}
