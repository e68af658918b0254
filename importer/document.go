package importer

import (
	"fmt"
	"strings"

	"github.com/binzume/gltfscene/geom"
	"github.com/binzume/gltfscene/scene"
	"github.com/qmuntal/gltf"
)

// Path is the animated transform property of a channel.
type Path int

const (
	PathTranslation Path = iota
	PathRotation
	PathScale
)

func (p Path) String() string {
	switch p {
	case PathTranslation:
		return "translation"
	case PathRotation:
		return "rotation"
	case PathScale:
		return "scale"
	}
	return fmt.Sprintf("Path(%d)", int(p))
}

// Group is the keyframe group name used for the curves of the path.
func (p Path) Group() string {
	switch p {
	case PathTranslation:
		return "location"
	case PathRotation:
		return "rotation"
	}
	return "scale"
}

// Prop is the host property animated by the path.
func (p Path) Prop() string {
	switch p {
	case PathTranslation:
		return scene.PropLocation
	case PathRotation:
		return scene.PropRotation
	}
	return scene.PropScale
}

func pathFromGLTF(p gltf.TRSProperty) (Path, bool) {
	switch p {
	case gltf.TRSTranslation:
		return PathTranslation, true
	case gltf.TRSRotation:
		return PathRotation, true
	case gltf.TRSScale:
		return PathScale, true
	}
	return 0, false
}

type SamplerMode int

const (
	ModeLinear SamplerMode = iota
	ModeStep
	ModeCatmullRomSpline
	ModeCubicSpline
	ModeUnknown
)

func (m SamplerMode) String() string {
	switch m {
	case ModeLinear:
		return "LINEAR"
	case ModeStep:
		return "STEP"
	case ModeCatmullRomSpline:
		return "CATMULLROMSPLINE"
	case ModeCubicSpline:
		return "CUBICSPLINE"
	}
	return "UNKNOWN"
}

func ParseSamplerMode(s string) SamplerMode {
	switch strings.ToUpper(s) {
	case "LINEAR":
		return ModeLinear
	case "STEP":
		return ModeStep
	case "CATMULLROMSPLINE":
		return ModeCatmullRomSpline
	case "CUBICSPLINE":
		return ModeCubicSpline
	}
	return ModeUnknown
}

func samplerModeFromGLTF(i gltf.Interpolation) SamplerMode {
	switch i {
	case gltf.InterpolationLinear:
		return ModeLinear
	case gltf.InterpolationStep:
		return ModeStep
	case gltf.InterpolationCubicSpline:
		return ModeCubicSpline
	}
	return ModeUnknown
}

// Node is one entry of the node arena. Parent and children are arena indices.
type Node struct {
	Index    int
	Name     string
	Parent   int // -1 for roots
	Children []int
	IsJoint  bool
	SkinID   int // skin holding the bone of a joint, -1 otherwise
	Skin     int // skin bound to the mesh, -1 otherwise
	Mesh     int // -1 when the node has no mesh

	// Animations maps an animation index to the indices of its channels targeting this node.
	Animations map[int][]int

	// Set while the scene is assembled.
	Object     *scene.Object
	BoneName   string
	BoneMatrix *geom.Matrix4

	src *gltf.Node
}

type Skin struct {
	Index       int
	Name        string
	Joints      []int
	InverseBind []*geom.Matrix4
	Armature    *scene.Object

	jointPos map[int]int
}

type Channel struct {
	Node    int
	Path    Path
	Sampler int
}

type Sampler struct {
	Input  uint32
	Output uint32
	Mode   SamplerMode
	// Name is the interpolation as written in the file, if known.
	Name string
}

type Animation struct {
	Index    int
	Name     string
	Channels []*Channel
	Samplers []*Sampler
}

type SceneDef struct {
	Name  string
	Nodes []int
}

// Document is the node topology of a glTF document, indexed for the importer.
type Document struct {
	Nodes      []*Node
	Skins      []*Skin
	Animations []*Animation
	Scenes     []*SceneDef

	// SkippedChannels counts channels without a target node or with a non-TRS path.
	SkippedChannels int

	src *gltf.Document
}

// NewDocument indexes src. interpolations holds the sampler interpolation names as written
// in the file, indexed by animation then sampler; where one is present it takes precedence
// over the decoded sampler mode.
func NewDocument(src *gltf.Document, interpolations [][]string) *Document {
	doc := &Document{src: src}
	for i, n := range src.Nodes {
		name := n.Name
		if name == "" {
			name = fmt.Sprintf("Node_%d", i)
		}
		node := &Node{
			Index:      i,
			Name:       name,
			Parent:     -1,
			SkinID:     -1,
			Skin:       -1,
			Mesh:       -1,
			Animations: map[int][]int{},
			src:        n,
		}
		if n.Mesh != nil {
			node.Mesh = int(*n.Mesh)
		}
		if n.Skin != nil {
			node.Skin = int(*n.Skin)
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	for i, n := range src.Nodes {
		for _, c := range n.Children {
			doc.Nodes[c].Parent = i
			doc.Nodes[i].Children = append(doc.Nodes[i].Children, int(c))
		}
	}

	for i, s := range src.Skins {
		skin := &Skin{Index: i, Name: s.Name, jointPos: map[int]int{}}
		for pos, j := range s.Joints {
			node := doc.Nodes[j]
			node.IsJoint = true
			if node.SkinID < 0 {
				node.SkinID = i
			}
			skin.Joints = append(skin.Joints, int(j))
			skin.jointPos[int(j)] = pos
		}
		doc.Skins = append(doc.Skins, skin)
	}

	for i, a := range src.Animations {
		anim := &Animation{Index: i, Name: a.Name}
		for j, s := range a.Samplers {
			sampler := &Sampler{Mode: samplerModeFromGLTF(s.Interpolation)}
			if raw := rawInterpolation(interpolations, i, j); raw != "" {
				sampler.Mode = ParseSamplerMode(raw)
				sampler.Name = raw
			}
			if s.Input != nil && s.Output != nil {
				sampler.Input, sampler.Output = *s.Input, *s.Output
			} else {
				sampler = nil
			}
			anim.Samplers = append(anim.Samplers, sampler)
		}
		for _, ch := range a.Channels {
			if ch.Target.Node == nil || int(*ch.Target.Node) >= len(doc.Nodes) ||
				ch.Sampler == nil || int(*ch.Sampler) >= len(anim.Samplers) || anim.Samplers[*ch.Sampler] == nil {
				doc.SkippedChannels++
				continue
			}
			path, ok := pathFromGLTF(ch.Target.Path)
			if !ok {
				doc.SkippedChannels++
				continue
			}
			node := int(*ch.Target.Node)
			doc.Nodes[node].Animations[i] = append(doc.Nodes[node].Animations[i], len(anim.Channels))
			anim.Channels = append(anim.Channels, &Channel{Node: node, Path: path, Sampler: int(*ch.Sampler)})
		}
		doc.Animations = append(doc.Animations, anim)
	}

	for _, s := range src.Scenes {
		def := &SceneDef{Name: s.Name}
		for _, n := range s.Nodes {
			def.Nodes = append(def.Nodes, int(n))
		}
		doc.Scenes = append(doc.Scenes, def)
	}
	if len(doc.Scenes) == 0 {
		def := &SceneDef{}
		for _, n := range doc.Nodes {
			if n.Parent < 0 {
				def.Nodes = append(def.Nodes, n.Index)
			}
		}
		doc.Scenes = append(doc.Scenes, def)
	}
	return doc
}

func rawInterpolation(interpolations [][]string, anim, sampler int) string {
	if anim >= len(interpolations) || sampler >= len(interpolations[anim]) {
		return ""
	}
	return interpolations[anim][sampler]
}

func (d *Document) parent(n *Node) *Node {
	if n.Parent < 0 {
		return nil
	}
	return d.Nodes[n.Parent]
}
