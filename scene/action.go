package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/chewxy/math32"
)

type Interpolation int

const (
	InterpolationBezier Interpolation = iota
	InterpolationLinear
	InterpolationConstant
)

func (i Interpolation) String() string {
	switch i {
	case InterpolationBezier:
		return "BEZIER"
	case InterpolationLinear:
		return "LINEAR"
	case InterpolationConstant:
		return "CONSTANT"
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

const (
	PropLocation = "location"
	PropRotation = "rotation_quaternion"
	PropScale    = "scale"
)

// frames closer than this are the same key
const frameEpsilon = 0.0001

var ErrNoAction = errors.New("no action assigned")

type Keyframe struct {
	Frame         float32
	Value         float32
	Interpolation Interpolation
}

type FCurve struct {
	DataPath  string
	Index     int
	Group     string
	Keyframes []*Keyframe
}

// Insert adds a key, replacing the value of an existing key on the same frame.
func (c *FCurve) Insert(frame, value float32) *Keyframe {
	i := sort.Search(len(c.Keyframes), func(i int) bool {
		return c.Keyframes[i].Frame >= frame-frameEpsilon
	})
	if i < len(c.Keyframes) && math32.Abs(c.Keyframes[i].Frame-frame) <= frameEpsilon {
		c.Keyframes[i].Value = value
		return c.Keyframes[i]
	}
	kf := &Keyframe{Frame: frame, Value: value, Interpolation: InterpolationBezier}
	c.Keyframes = append(c.Keyframes, nil)
	copy(c.Keyframes[i+1:], c.Keyframes[i:])
	c.Keyframes[i] = kf
	return kf
}

type Action struct {
	Name    string
	FCurves []*FCurve
}

func (a *Action) FCurve(dataPath string, index int) *FCurve {
	for _, c := range a.FCurves {
		if c.DataPath == dataPath && c.Index == index {
			return c
		}
	}
	return nil
}

func (a *Action) EnsureFCurve(dataPath string, index int, group string) *FCurve {
	if c := a.FCurve(dataPath, index); c != nil {
		return c
	}
	c := &FCurve{DataPath: dataPath, Index: index, Group: group}
	a.FCurves = append(a.FCurves, c)
	return c
}

// Groups returns the distinct group names in curve order.
func (a *Action) Groups() []string {
	var groups []string
	seen := map[string]bool{}
	for _, c := range a.FCurves {
		if c.Group != "" && !seen[c.Group] {
			seen[c.Group] = true
			groups = append(groups, c.Group)
		}
	}
	return groups
}

// GroupCurves returns the curves of group. An empty dataPath matches every curve of the group.
func (a *Action) GroupCurves(group, dataPath string) []*FCurve {
	var curves []*FCurve
	for _, c := range a.FCurves {
		if c.Group == group && (dataPath == "" || c.DataPath == dataPath) {
			curves = append(curves, c)
		}
	}
	return curves
}

// BonePath returns the data path of a pose bone property.
func BonePath(bone, prop string) string {
	return fmt.Sprintf(`pose.bones["%s"].%s`, bone, prop)
}

// SplitDataPath returns the bone name (empty for object properties) and the property.
func SplitDataPath(path string) (bone string, prop string, err error) {
	const prefix = `pose.bones["`
	if !strings.HasPrefix(path, prefix) {
		return "", path, nil
	}
	end := strings.LastIndex(path, `"].`)
	if end < len(prefix) {
		return "", "", fmt.Errorf("invalid data path: %s", path)
	}
	return path[len(prefix):end], path[end+3:], nil
}

// KeyframeInsert records the current value of the property at dataPath into the
// assigned action, one curve per component.
func (o *Object) KeyframeInsert(dataPath string, frame float32, group string) error {
	if o.AnimationData == nil || o.AnimationData.Action == nil {
		return fmt.Errorf("%s: %w", o.Name, ErrNoAction)
	}
	values, err := o.propertyValues(dataPath)
	if err != nil {
		return err
	}
	for i, v := range values {
		o.AnimationData.Action.EnsureFCurve(dataPath, i, group).Insert(frame, v)
	}
	return nil
}

func (o *Object) propertyValues(dataPath string) ([]float32, error) {
	bone, prop, err := SplitDataPath(dataPath)
	if err != nil {
		return nil, err
	}
	loc, rot, scale := &o.Location, &o.Rotation, &o.Scale
	if bone != "" {
		if o.Pose == nil || o.Pose.Bone(bone) == nil {
			return nil, fmt.Errorf("%s: no pose bone %q", o.Name, bone)
		}
		pb := o.Pose.Bone(bone)
		loc, rot, scale = &pb.Location, &pb.Rotation, &pb.Scale
	}
	switch prop {
	case PropLocation:
		return []float32{loc.X, loc.Y, loc.Z}, nil
	case PropRotation:
		return []float32{rot.W, rot.X, rot.Y, rot.Z}, nil
	case PropScale:
		return []float32{scale.X, scale.Y, scale.Z}, nil
	}
	return nil, fmt.Errorf("%s: unsupported property %q", o.Name, prop)
}
