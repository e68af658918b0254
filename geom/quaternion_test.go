package geom

import (
	"math"
	"testing"
)

func TestQuaternion(t *testing.T) {
	const eps = 0.000001

	{
		q := NewIdentityQuaternion()
		v1 := NewVector3(1, 2, 3)
		v2 := q.ApplyTo(v1)
		if v2.Sub(v1).Len() > eps {
			t.Error("v1 != v2: ", v1, v2)
		}
	}

	{
		q := NewQuaternionFromAxisAngle(NewVector3(1, 0, 0), 2*math.Pi)
		v1 := NewVector3(1, 2, 3)
		v2 := q.ApplyTo(v1)
		if v2.Sub(v1).Len() > 0.00001 {
			t.Error("v1 != v2: ", v1, v2)
		}
	}

	{
		q := NewQuaternionFromAxisAngle(NewVector3(1, 0, 0), math.Pi)
		q = q.Mul(q)
		v1 := NewVector3(1, 2, 3)
		v2 := q.ApplyTo(v1)
		if v2.Sub(v1).Len() > 0.00001 {
			t.Error("v1 != v2: ", v1, v2)
		}
	}

	{
		q := NewQuaternionFromAxisAngle(NewVector3(1, 2, 3), 1)
		q = q.Mul(q.Inverse())
		v1 := NewVector3(1, 2, 3)
		v2 := q.ApplyTo(v1)
		if v2.Sub(v1).Len() > eps {
			t.Error("v1 != v2: ", v1, v2)
		}
	}
}

func TestQuaternionMulComposes(t *testing.T) {
	const eps = 0.00001

	a := NewQuaternionFromAxisAngle(NewVector3(0, 0, 1), math.Pi/2)
	b := NewQuaternionFromAxisAngle(NewVector3(1, 0, 0), math.Pi/2)
	v := NewVector3(0, 1, 0)

	// (a*b) v == a (b v)
	v1 := a.Mul(b).ApplyTo(v)
	v2 := a.ApplyTo(b.ApplyTo(v))
	if v1.Sub(v2).Len() > eps {
		t.Error("a*b: ", v1, v2)
	}
}

func TestSameRotation(t *testing.T) {
	q := NewQuaternionFromAxisAngle(NewVector3(0, 1, 0), 0.5)
	neg := &Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
	if !q.SameRotation(neg, 0.000001) {
		t.Error("q and -q should be the same rotation")
	}
	if q.SameRotation(NewIdentityQuaternion(), 0.000001) {
		t.Error("different rotations")
	}
}
