package importer

import (
	"fmt"

	"github.com/binzume/gltfscene/scene"
	"go.uber.org/zap"
)

// animate builds the tracks of animation animIdx for the node and its descendants.
func (c *Context) animate(animIdx, nodeIdx int) error {
	n := c.Doc.Nodes[nodeIdx]
	if err := c.animateNode(animIdx, n); err != nil {
		return fmt.Errorf("node %d: %w", n.Index, err)
	}
	for _, child := range n.Children {
		if err := c.animate(animIdx, child); err != nil {
			return err
		}
	}
	return nil
}

// animateNode inserts keyframes for every channel of the animation targeting n.
// A node without channels is left untouched.
func (c *Context) animateNode(animIdx int, n *Node) error {
	channels := n.Animations[animIdx]
	if len(channels) == 0 || n.Object == nil {
		return nil
	}
	anim := c.Doc.Animations[animIdx]
	obj := n.Object
	action := c.action(anim, obj)
	obj.AnimationDataCreate().Action = action

	fps := float32(c.Scene.Render.FPS)
	for _, ci := range channels {
		ch := anim.Channels[ci]
		sampler := anim.Samplers[ch.Sampler]
		keys, values, err := c.samples(sampler)
		if err != nil {
			return err
		}

		dataPath := ch.Path.Prop()
		if n.IsJoint {
			dataPath = scene.BonePath(n.BoneName, ch.Path.Prop())
		}
		for i, key := range keys {
			if err := c.setPose(n, ch.Path, values[i]); err != nil {
				return err
			}
			if err := obj.KeyframeInsert(dataPath, key*fps, ch.Path.Group()); err != nil {
				return err
			}
		}

		if sampler.Mode == ModeUnknown {
			c.log.Warn("unknown interpolation, using bezier", zap.String("action", action.Name), zap.String("interpolation", sampler.Name))
		}
		interp := MapInterpolation(sampler.Mode)
		for _, fc := range action.GroupCurves(ch.Path.Group(), dataPath) {
			for _, kf := range fc.Keyframes {
				kf.Interpolation = interp
			}
		}
		c.log.Debug("channel imported", zap.String("action", action.Name), zap.String("path", dataPath),
			zap.Int("keys", len(keys)), zap.Stringer("interpolation", interp))
	}
	return nil
}

// samples returns the time keys and the value of each key.
// Cubic spline outputs hold in-tangent, value and out-tangent per key; only the value is kept.
func (c *Context) samples(s *Sampler) ([]float32, [][]float32, error) {
	input, err := c.Reader.Floats(s.Input)
	if err != nil {
		return nil, nil, err
	}
	values, err := c.Reader.Floats(s.Output)
	if err != nil {
		return nil, nil, err
	}
	if s.Mode == ModeCubicSpline && len(values) == len(input)*3 {
		for i := range input {
			values[i] = values[i*3+1]
		}
		values = values[:len(input)]
	}
	keys := make([]float32, 0, len(input))
	for i, k := range input {
		if i >= len(values) || len(k) == 0 {
			break
		}
		keys = append(keys, k[0])
	}
	return keys, values, nil
}

func (c *Context) setPose(n *Node, path Path, value []float32) error {
	switch path {
	case PathTranslation:
		v, err := vec3(value)
		if err != nil {
			return err
		}
		if !n.IsJoint {
			n.Object.Location = *c.Converter.Translation(v)
			return nil
		}
		loc, err := c.ResolveTranslation(n, v)
		if err != nil {
			return err
		}
		n.Object.Pose.EnsureBone(n.BoneName).Location = *loc
	case PathRotation:
		if len(value) < 4 {
			return fmt.Errorf("rotation needs 4 components, got %d", len(value))
		}
		q := [4]float32{value[0], value[1], value[2], value[3]}
		if !n.IsJoint {
			n.Object.Rotation = *c.Converter.Rotation(q)
			return nil
		}
		rot, err := c.ResolveRotation(n, q)
		if err != nil {
			return err
		}
		n.Object.Pose.EnsureBone(n.BoneName).Rotation = *rot
	case PathScale:
		v, err := vec3(value)
		if err != nil {
			return err
		}
		if !n.IsJoint {
			n.Object.Scale = *c.Converter.Scale(v)
			return nil
		}
		scale, err := c.ResolveScale(n, v)
		if err != nil {
			return err
		}
		n.Object.Pose.EnsureBone(n.BoneName).Scale = *scale
	}
	return nil
}

func vec3(value []float32) ([3]float32, error) {
	if len(value) < 3 {
		return [3]float32{}, fmt.Errorf("expected 3 components, got %d", len(value))
	}
	return [3]float32{value[0], value[1], value[2]}, nil
}
