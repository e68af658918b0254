package scene

import (
	"io"

	"gopkg.in/yaml.v2"
)

type sceneDump struct {
	Name    string   `yaml:"name"`
	FPS     int      `yaml:"fps"`
	Objects []string `yaml:"objects"`
}

type objectDump struct {
	Name         string            `yaml:"name"`
	Type         string            `yaml:"type"`
	Parent       string            `yaml:"parent,omitempty"`
	ParentBone   string            `yaml:"parent_bone,omitempty"`
	Hidden       bool              `yaml:"hidden,omitempty"`
	Location     [3]float32        `yaml:"location,flow"`
	Rotation     [4]float32        `yaml:"rotation_quaternion,flow"`
	Scale        [3]float32        `yaml:"scale,flow"`
	MatrixWorld  [16]float32       `yaml:"matrix_world,flow"`
	Vertices     int               `yaml:"vertices,omitempty"`
	Bones        []boneDump        `yaml:"bones,omitempty"`
	VertexGroups map[string]int    `yaml:"vertex_groups,omitempty"`
	Modifiers    map[string]string `yaml:"modifiers,omitempty"`
	Action       string            `yaml:"action,omitempty"`
}

type boneDump struct {
	Name   string      `yaml:"name"`
	Parent string      `yaml:"parent,omitempty"`
	Matrix [16]float32 `yaml:"matrix,flow"`
}

type keyDump struct {
	Frame         float32 `yaml:"frame"`
	Value         float32 `yaml:"value"`
	Interpolation string  `yaml:"interpolation"`
}

type curveDump struct {
	DataPath  string    `yaml:"data_path"`
	Index     int       `yaml:"index"`
	Group     string    `yaml:"group,omitempty"`
	Keyframes []keyDump `yaml:"keyframes,flow"`
}

type actionDump struct {
	Name    string      `yaml:"name"`
	FCurves []curveDump `yaml:"fcurves"`
}

type dataDump struct {
	DefaultScene string       `yaml:"default_scene,omitempty"`
	Scenes       []sceneDump  `yaml:"scenes"`
	Objects      []objectDump `yaml:"objects"`
	Actions      []actionDump `yaml:"actions,omitempty"`
}

// WriteYAML writes a summary of every datablock.
func (d *Data) WriteYAML(w io.Writer) error {
	var dump dataDump
	if d.context != nil {
		dump.DefaultScene = d.context.Name
	}
	for _, s := range d.Scenes {
		sd := sceneDump{Name: s.Name, FPS: s.Render.FPS}
		for _, o := range s.Objects {
			sd.Objects = append(sd.Objects, o.Name)
		}
		dump.Scenes = append(dump.Scenes, sd)
	}
	for _, o := range d.Objects {
		dump.Objects = append(dump.Objects, dumpObject(o))
	}
	for _, a := range d.Actions {
		ad := actionDump{Name: a.Name}
		for _, c := range a.FCurves {
			cd := curveDump{DataPath: c.DataPath, Index: c.Index, Group: c.Group}
			for _, k := range c.Keyframes {
				cd.Keyframes = append(cd.Keyframes, keyDump{Frame: k.Frame, Value: k.Value, Interpolation: k.Interpolation.String()})
			}
			ad.FCurves = append(ad.FCurves, cd)
		}
		dump.Actions = append(dump.Actions, ad)
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&dump)
}

func dumpObject(o *Object) objectDump {
	od := objectDump{
		Name:        o.Name,
		Type:        o.Type.String(),
		ParentBone:  o.ParentBone,
		Hidden:      o.Hidden,
		Location:    o.Location.Array(),
		Rotation:    [4]float32{o.Rotation.W, o.Rotation.X, o.Rotation.Y, o.Rotation.Z},
		Scale:       o.Scale.Array(),
		MatrixWorld: [16]float32(*o.MatrixWorld()),
	}
	if o.Parent != nil {
		od.Parent = o.Parent.Name
	}
	if o.Mesh != nil {
		od.Vertices = o.Mesh.VertexCount
	}
	if o.Armature != nil {
		for _, b := range o.Armature.Bones {
			bd := boneDump{Name: b.Name, Matrix: [16]float32(*b.Matrix)}
			if b.Parent != nil {
				bd.Parent = b.Parent.Name
			}
			od.Bones = append(od.Bones, bd)
		}
	}
	if len(o.VertexGroups) > 0 {
		od.VertexGroups = map[string]int{}
		for _, g := range o.VertexGroups {
			od.VertexGroups[g.Name] = len(g.Weights)
		}
	}
	if len(o.Modifiers) > 0 {
		od.Modifiers = map[string]string{}
		for _, m := range o.Modifiers {
			target := ""
			if m.Object != nil {
				target = m.Object.Name
			}
			od.Modifiers[m.Name] = string(m.Type) + ":" + target
		}
	}
	if o.AnimationData != nil && o.AnimationData.Action != nil {
		od.Action = o.AnimationData.Action.Name
	}
	return od
}
