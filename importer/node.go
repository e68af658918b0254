package importer

import (
	"fmt"

	"github.com/binzume/gltfscene/geom"
	"github.com/binzume/gltfscene/scene"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"
)

// createNode instantiates the node and then its children.
func (c *Context) createNode(idx int) error {
	n := c.Doc.Nodes[idx]
	if n.IsJoint {
		if err := c.createBone(n); err != nil {
			return err
		}
	} else if err := c.createObject(n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := c.createNode(child); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) createObject(n *Node) error {
	typ := scene.TypeEmpty
	if n.Mesh >= 0 {
		typ = scene.TypeMesh
	}
	obj := c.object(n.Name, typ)
	t, r, s := c.localTRS(n)
	obj.Location, obj.Rotation, obj.Scale = *t, *r, *s
	obj.Parent, obj.ParentBone = nil, ""
	if p := c.Doc.parent(n); p != nil {
		obj.Parent = p.Object
		if p.IsJoint {
			obj.ParentBone = p.BoneName
		}
	}
	if n.Mesh >= 0 {
		count, err := c.vertexCount(n.Mesh)
		if err != nil {
			return fmt.Errorf("node %d: %w", n.Index, err)
		}
		obj.Mesh.VertexCount = count
	}
	c.Scene.Link(obj)
	n.Object = obj
	return nil
}

func (c *Context) createBone(n *Node) error {
	skin := c.Doc.Skins[n.SkinID]
	arm, err := c.armature(skin, n)
	if err != nil {
		return err
	}
	mat, err := c.boneMatrix(n, skin)
	if err != nil {
		return err
	}
	n.Object = arm
	n.BoneName = c.boneName(arm, n.Name)
	n.BoneMatrix = mat

	b := arm.Armature.EnsureBone(n.BoneName)
	b.Matrix = mat
	b.Parent = nil
	if p := c.Doc.parent(n); p != nil && p.IsJoint && p.Object == arm {
		b.Parent = arm.Armature.Bone(p.BoneName)
	}
	pb := arm.Pose.EnsureBone(n.BoneName)
	pb.Location = geom.Vector3{}
	pb.Rotation = geom.Quaternion{W: 1}
	pb.Scale = geom.Vector3{X: 1, Y: 1, Z: 1}
	c.log.Debug("create bone", zap.String("armature", arm.Name), zap.String("bone", n.BoneName))
	return nil
}

// armature returns the armature object of skin, creating it for its first instantiated joint.
func (c *Context) armature(skin *Skin, first *Node) (*scene.Object, error) {
	if skin.Armature != nil {
		return skin.Armature, nil
	}
	name := skin.Name
	if name == "" {
		name = "Armature"
	}
	obj := c.object(name, scene.TypeArmature)
	obj.Location = geom.Vector3{}
	obj.Rotation = geom.Quaternion{W: 1}
	obj.Scale = geom.Vector3{X: 1, Y: 1, Z: 1}
	obj.Parent, obj.ParentBone = nil, ""
	if p := c.Doc.parent(first); p != nil && !p.IsJoint {
		obj.Parent = p.Object
	}

	if ibm := c.src.Skins[skin.Index].InverseBindMatrices; ibm != nil {
		mats, err := c.Reader.Matrices(*ibm)
		if err != nil {
			return nil, fmt.Errorf("skin %d: %w", skin.Index, err)
		}
		skin.InverseBind = mats
	}
	c.Scene.Link(obj)
	skin.Armature = obj
	return obj, nil
}

func (c *Context) boneName(arm *scene.Object, name string) string {
	used := c.bones[arm]
	if used == nil {
		used = map[string]bool{}
		c.bones[arm] = used
	}
	name = scene.CleanName(name)
	candidate := name
	for i := 1; used[candidate]; i++ {
		candidate = scene.SuffixName(name, i)
	}
	used[candidate] = true
	return candidate
}

// boneMatrix computes the rest matrix of a joint in armature space.
func (c *Context) boneMatrix(n *Node, skin *Skin) (*geom.Matrix4, error) {
	if pos, ok := skin.jointPos[n.Index]; ok && pos < len(skin.InverseBind) {
		return c.Converter.Matrix([16]float32(*skin.InverseBind[pos].Inverse())), nil
	}
	local := c.localMatrix(n)
	p := c.Doc.parent(n)
	if p == nil || !p.IsJoint {
		return local, nil
	}
	if p.BoneMatrix == nil {
		return nil, &UnresolvedParentError{Node: n.Index, Parent: p.Index}
	}
	return p.BoneMatrix.Mul(local), nil
}

var identityMatrix = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func hasMatrix(n *gltf.Node) bool {
	return n.Matrix != [16]float32{} && n.Matrix != identityMatrix
}

// localTRS returns the converted local transform. Zero rotation and scale mean unset.
func (c *Context) localTRS(n *Node) (*geom.Vector3, *geom.Quaternion, *geom.Vector3) {
	if hasMatrix(n.src) {
		return c.Converter.Matrix(n.src.Matrix).Decompose()
	}
	rot := n.src.Rotation
	if rot == [4]float32{} {
		rot = [4]float32{0, 0, 0, 1}
	}
	scale := n.src.Scale
	if scale == [3]float32{} {
		scale = [3]float32{1, 1, 1}
	}
	return c.Converter.Translation(n.src.Translation), c.Converter.Rotation(rot), c.Converter.Scale(scale)
}

func (c *Context) localMatrix(n *Node) *geom.Matrix4 {
	if hasMatrix(n.src) {
		return c.Converter.Matrix(n.src.Matrix)
	}
	return geom.NewTRSMatrix4(c.localTRS(n))
}

func (c *Context) vertexCount(mesh int) (int, error) {
	count := 0
	for _, p := range c.src.Meshes[mesh].Primitives {
		acr, ok := p.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		n, err := c.Reader.Count(acr)
		if err != nil {
			return 0, err
		}
		count += n
	}
	return count, nil
}
