package importer

import (
	"fmt"

	"github.com/binzume/gltfscene/scene"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"
)

const armatureModifierName = "Armature"

// skinnedMeshes returns the instantiated mesh nodes bound to skin.
func (c *Context) skinnedMeshes(skin *Skin) []*Node {
	var nodes []*Node
	for _, n := range c.Doc.Nodes {
		if n.Skin == skin.Index && n.Mesh >= 0 && n.Object != nil && n.Object.Type == scene.TypeMesh {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (c *Context) jointGroupName(joint int) string {
	n := c.Doc.Nodes[joint]
	if n.BoneName != "" {
		return n.BoneName
	}
	return scene.CleanName(n.Name)
}

func (c *Context) createVertexGroups(skin *Skin) {
	for _, n := range c.skinnedMeshes(skin) {
		for _, j := range skin.Joints {
			n.Object.EnsureVertexGroup(c.jointGroupName(j))
		}
	}
}

func (c *Context) assignVertexGroups(skin *Skin) error {
	for _, n := range c.skinnedMeshes(skin) {
		offset := 0
		for pi, p := range c.src.Meshes[n.Mesh].Primitives {
			count := 0
			if acr, ok := p.Attributes[gltf.POSITION]; ok {
				var err error
				if count, err = c.Reader.Count(acr); err != nil {
					return fmt.Errorf("node %d: %w", n.Index, err)
				}
			}
			if err := c.assignPrimitiveWeights(skin, n, p, offset); err != nil {
				return fmt.Errorf("node %d primitive %d: %w", n.Index, pi, err)
			}
			offset += count
		}
	}
	return nil
}

func (c *Context) assignPrimitiveWeights(skin *Skin, n *Node, p *gltf.Primitive, offset int) error {
	jointsAcr, ok := p.Attributes[gltf.JOINTS_0]
	if !ok {
		return nil
	}
	weightsAcr, ok := p.Attributes[gltf.WEIGHTS_0]
	if !ok {
		return nil
	}
	joints, err := c.Reader.Joints(jointsAcr)
	if err != nil {
		return err
	}
	weights, err := c.Reader.Weights(weightsAcr)
	if err != nil {
		return err
	}
	for v := range joints {
		if v >= len(weights) {
			break
		}
		for k, j := range joints[v] {
			w := weights[v][k]
			if w == 0 {
				continue
			}
			if int(j) >= len(skin.Joints) {
				c.log.Warn("joint index out of range", zap.Int("node", n.Index), zap.Int("joint", int(j)))
				continue
			}
			g := n.Object.VertexGroup(c.jointGroupName(skin.Joints[j]))
			if g == nil {
				continue
			}
			g.Add([]int{offset + v}, w)
		}
	}
	return nil
}

func (c *Context) createArmatureModifiers(skin *Skin) {
	for _, n := range c.skinnedMeshes(skin) {
		if skin.Armature == nil {
			c.log.Warn("skin has no instantiated joints", zap.Int("skin", skin.Index))
			return
		}
		m := n.Object.EnsureModifier(armatureModifierName, scene.ModifierArmature)
		m.Object = skin.Armature
	}
}
