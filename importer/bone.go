package importer

import (
	"github.com/binzume/gltfscene/geom"
)

// rigid is a translation followed by a rotation.
type rigid struct {
	Translation *geom.Vector3
	Rotation    *geom.Quaternion
}

// parentRest returns the rest matrix of the parent joint, or nil when the node is a root
// or its parent is a plain object.
func (c *Context) parentRest(n *Node) (*geom.Matrix4, error) {
	p := c.Doc.parent(n)
	if p == nil || !p.IsJoint {
		return nil, nil
	}
	if p.BoneMatrix == nil {
		return nil, &UnresolvedParentError{Node: n.Index, Parent: p.Index}
	}
	return p.BoneMatrix, nil
}

func (c *Context) restMatrix(n *Node) (*geom.Matrix4, error) {
	if n.BoneMatrix == nil {
		return nil, &UnresolvedParentError{Node: n.Index, Parent: n.Index}
	}
	return n.BoneMatrix, nil
}

// boneWorld places a local sample in armature space.
// Under a joint the parent rotation is applied to the offset and rotations are composed
// as quaternions, so no shear is introduced. Parent scale is not applied.
func (c *Context) boneWorld(n *Node, local rigid) (rigid, error) {
	parent, err := c.parentRest(n)
	if err != nil || parent == nil {
		return local, err
	}
	prot := parent.ToQuaternion()
	return rigid{
		Translation: parent.Translation().Add(prot.ApplyTo(local.Translation)),
		Rotation:    prot.Mul(local.Rotation).Normalize(),
	}, nil
}

// ResolveTranslation returns the pose bone location for a translation sample.
func (c *Context) ResolveTranslation(n *Node, v [3]float32) (*geom.Vector3, error) {
	rest, err := c.restMatrix(n)
	if err != nil {
		return nil, err
	}
	world, err := c.boneWorld(n, rigid{Translation: c.Converter.Translation(v), Rotation: geom.NewIdentityQuaternion()})
	if err != nil {
		return nil, err
	}
	return rest.Inverse().ApplyTo(world.Translation), nil
}

// ResolveRotation returns the pose bone rotation for a rotation sample.
func (c *Context) ResolveRotation(n *Node, q [4]float32) (*geom.Quaternion, error) {
	rest, err := c.restMatrix(n)
	if err != nil {
		return nil, err
	}
	world, err := c.boneWorld(n, rigid{Translation: &geom.Vector3{}, Rotation: c.Converter.Rotation(q)})
	if err != nil {
		return nil, err
	}
	return rest.ToQuaternion().Inverse().Mul(world.Rotation).Normalize(), nil
}

// ResolveScale returns the pose bone scale for a scale sample.
// Only a parent joint changes the value; the world matrix of a parent object is not used.
// The result is unsigned even under a mirrored parent.
func (c *Context) ResolveScale(n *Node, s [3]float32) (*geom.Vector3, error) {
	scale := c.Converter.Scale(s)
	parent, err := c.parentRest(n)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return scale, nil
	}
	return parent.Inverse().Mul(geom.NewScaleMatrix4(scale.X, scale.Y, scale.Z)).ColumnLengths(), nil
}
