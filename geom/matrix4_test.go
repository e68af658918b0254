package geom

import (
	"math"
	"testing"
)

func TestDecomposeMatrix(t *testing.T) {
	const eps = 0.00001

	pos := NewVector3(1, 2, 3)
	rot := NewQuaternionFromAxisAngle(NewVector3(1, 2, 3), 40*math.Pi/180)
	scale := NewVector3(1.5, 1.6, 1.7)

	mat := NewTRSMatrix4(pos, rot, scale)
	pos1, rot1, scale1 := mat.Decompose()

	if pos.Sub(pos1).Len() > eps {
		t.Error("pos: ", pos, pos1)
	}
	if !rot.SameRotation(rot1, eps) {
		t.Error("rot: ", rot, rot1)
	}
	if scale.Sub(scale1).Len() > eps {
		t.Error("scale: ", scale, scale1)
	}

	mat2 := NewRotationMatrix4FromQuaternion(rot)
	pos1, rot1, scale1 = mat2.Decompose()
	if !rot.SameRotation(rot1, eps) {
		t.Error("rot: ", rot, rot1)
	}
	if pos1.Len() > eps {
		t.Error("pos: ", pos1)
	}
	if scale1.Sub(NewVector3(1, 1, 1)).Len() > eps {
		t.Error("scale: ", scale1)
	}
}

func TestRotationMatrixMatchesQuaternion(t *testing.T) {
	const eps = 0.00001

	q := NewQuaternionFromAxisAngle(NewVector3(0, 0, 1), math.Pi/2)
	v := NewVector3(1, 0, 0)

	byMatrix := NewRotationMatrix4FromQuaternion(q).ApplyTo(v)
	byQuaternion := q.ApplyTo(v)
	if byMatrix.Sub(NewVector3(0, 1, 0)).Len() > eps {
		t.Error("matrix: ", byMatrix)
	}
	if byMatrix.Sub(byQuaternion).Len() > eps {
		t.Error("matrix != quaternion: ", byMatrix, byQuaternion)
	}
}

func TestMatrixInverse(t *testing.T) {
	const eps = 0.00001

	mat := NewTRSMatrix4(NewVector3(1, -2, 3), NewQuaternionFromAxisAngle(NewVector3(1, 1, 0), 1), NewVector3(2, 2, 2))
	ident := mat.Mul(mat.Inverse())
	for i, v := range NewMatrix4() {
		if math.Abs(float64(ident[i]-v)) > eps {
			t.Fatal("m * m^-1 != I: ", ident)
		}
	}

	if (&Matrix4{}).Inverse().Det() != 0 {
		t.Error("singular matrix should return zero matrix")
	}
}

func TestMatrixMulOrder(t *testing.T) {
	const eps = 0.00001

	tr := NewTranslateMatrix4(1, 0, 0)
	rot := NewRotationMatrix4FromQuaternion(NewQuaternionFromAxisAngle(NewVector3(0, 0, 1), math.Pi/2))

	// rotate first, then translate
	v := tr.Mul(rot).ApplyTo(NewVector3(1, 0, 0))
	if v.Sub(NewVector3(1, 1, 0)).Len() > eps {
		t.Error("T * R: ", v)
	}
}

func TestMatrixScaleSign(t *testing.T) {
	mirrored := NewScaleMatrix4(-2, 3, 4)

	if mirrored.ColumnLengths().Sub(NewVector3(2, 3, 4)).Len() > eps {
		t.Error("column lengths: ", mirrored.ColumnLengths())
	}
	if mirrored.Scale().Sub(NewVector3(-2, -3, -4)).Len() > eps {
		t.Error("signed scale: ", mirrored.Scale())
	}
	if s := NewScaleMatrix4(2, 3, 4).Scale(); s.Sub(NewVector3(2, 3, 4)).Len() > eps {
		t.Error("scale: ", s)
	}
}
