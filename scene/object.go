package scene

import (
	"fmt"
	"sort"

	"github.com/binzume/gltfscene/geom"
)

type ObjectType int

const (
	TypeEmpty ObjectType = iota
	TypeMesh
	TypeArmature
)

func (t ObjectType) String() string {
	switch t {
	case TypeEmpty:
		return "EMPTY"
	case TypeMesh:
		return "MESH"
	case TypeArmature:
		return "ARMATURE"
	}
	return fmt.Sprintf("ObjectType(%d)", int(t))
}

type Object struct {
	Name string
	Type ObjectType

	Parent *Object
	// ParentBone is set when the object follows a bone of its armature parent.
	ParentBone string

	Location geom.Vector3
	Rotation geom.Quaternion
	Scale    geom.Vector3
	Hidden   bool

	Mesh     *Mesh
	Armature *Armature
	Pose     *Pose

	VertexGroups []*VertexGroup
	Modifiers    []*Modifier

	AnimationData *AnimationData
}

func newObject(name string, typ ObjectType) *Object {
	obj := &Object{
		Name:     name,
		Type:     typ,
		Rotation: geom.Quaternion{W: 1},
		Scale:    geom.Vector3{X: 1, Y: 1, Z: 1},
	}
	switch typ {
	case TypeMesh:
		obj.Mesh = &Mesh{Name: name}
	case TypeArmature:
		obj.Armature = &Armature{Name: name}
		obj.Pose = &Pose{}
	}
	return obj
}

func (o *Object) MatrixBasis() *geom.Matrix4 {
	return geom.NewTRSMatrix4(&o.Location, &o.Rotation, &o.Scale)
}

// MatrixWorld composes the basis matrices of the parent chain.
// Bone parenting is resolved against the rest pose of the bone.
func (o *Object) MatrixWorld() *geom.Matrix4 {
	m := o.MatrixBasis()
	if o.Parent == nil {
		return m
	}
	parent := o.Parent.MatrixWorld()
	if o.ParentBone != "" && o.Parent.Armature != nil {
		if b := o.Parent.Armature.Bone(o.ParentBone); b != nil && b.Matrix != nil {
			parent = parent.Mul(b.Matrix)
		}
	}
	return parent.Mul(m)
}

func (o *Object) AnimationDataCreate() *AnimationData {
	if o.AnimationData == nil {
		o.AnimationData = &AnimationData{}
	}
	return o.AnimationData
}

func (o *Object) VertexGroup(name string) *VertexGroup {
	for _, g := range o.VertexGroups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// EnsureVertexGroup returns the named group, creating it if missing.
func (o *Object) EnsureVertexGroup(name string) *VertexGroup {
	if g := o.VertexGroup(name); g != nil {
		return g
	}
	g := &VertexGroup{Name: name, Index: len(o.VertexGroups), Weights: map[int]float32{}}
	o.VertexGroups = append(o.VertexGroups, g)
	return g
}

func (o *Object) Modifier(name string) *Modifier {
	for _, m := range o.Modifiers {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (o *Object) EnsureModifier(name string, typ ModifierType) *Modifier {
	if m := o.Modifier(name); m != nil {
		m.Type = typ
		return m
	}
	m := &Modifier{Name: name, Type: typ}
	o.Modifiers = append(o.Modifiers, m)
	return m
}

type Mesh struct {
	Name        string
	VertexCount int
}

type VertexGroup struct {
	Name    string
	Index   int
	Weights map[int]float32
}

// Add sets the weight of the vertices, replacing previous values.
func (g *VertexGroup) Add(vertices []int, weight float32) {
	for _, v := range vertices {
		g.Weights[v] = weight
	}
}

func (g *VertexGroup) Vertices() []int {
	var vs []int
	for v := range g.Weights {
		vs = append(vs, v)
	}
	sort.Ints(vs)
	return vs
}

type ModifierType string

const ModifierArmature ModifierType = "ARMATURE"

type Modifier struct {
	Name   string
	Type   ModifierType
	Object *Object
}

type Armature struct {
	Name  string
	Bones []*Bone
}

type Bone struct {
	Name   string
	Parent *Bone
	// Matrix is the rest transform in armature space.
	Matrix *geom.Matrix4
}

func (a *Armature) Bone(name string) *Bone {
	for _, b := range a.Bones {
		if b.Name == name {
			return b
		}
	}
	return nil
}

func (a *Armature) EnsureBone(name string) *Bone {
	if b := a.Bone(name); b != nil {
		return b
	}
	b := &Bone{Name: name, Matrix: geom.NewMatrix4()}
	a.Bones = append(a.Bones, b)
	return b
}

type Pose struct {
	Bones []*PoseBone
}

// PoseBone holds the animated transform of a bone, relative to its rest pose.
type PoseBone struct {
	Name     string
	Location geom.Vector3
	Rotation geom.Quaternion
	Scale    geom.Vector3
}

func (p *Pose) Bone(name string) *PoseBone {
	for _, b := range p.Bones {
		if b.Name == name {
			return b
		}
	}
	return nil
}

func (p *Pose) EnsureBone(name string) *PoseBone {
	if b := p.Bone(name); b != nil {
		return b
	}
	b := &PoseBone{Name: name, Rotation: geom.Quaternion{W: 1}, Scale: geom.Vector3{X: 1, Y: 1, Z: 1}}
	p.Bones = append(p.Bones, b)
	return b
}

type AnimationData struct {
	Action *Action
}
