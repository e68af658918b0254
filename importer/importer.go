// Package importer builds host scene objects, armatures and actions from a glTF document.
//
// The import runs in a fixed order: nodes (parents before children), then the three skin
// passes across all skins, then animations, and finally the axis correction object.
package importer

import (
	"fmt"

	"github.com/binzume/gltfscene/conversion"
	"github.com/binzume/gltfscene/geom"
	"github.com/binzume/gltfscene/gltfutil"
	"github.com/binzume/gltfscene/scene"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"
)

// CorrectionObjectName is the name of the hidden object every imported root is parented to.
const CorrectionObjectName = "Yup2Zup"

// Reader decodes accessor data.
type Reader interface {
	Count(accessor uint32) (int, error)
	Floats(accessor uint32) ([][]float32, error)
	Matrices(accessor uint32) ([]*geom.Matrix4, error)
	Joints(accessor uint32) ([][4]uint16, error)
	Weights(accessor uint32) ([][4]float32, error)
}

type Options struct {
	Axis conversion.Axis
	// FrameRate of scenes created by the import.
	FrameRate int
	Logger    *zap.Logger
	// Reader defaults to a gltfutil.Reader over the imported document.
	Reader Reader
	// Interpolations are the raw sampler interpolation names (see gltfutil.File).
	Interpolations [][]string
}

type Result struct {
	Scene   *scene.Scene
	Root    *scene.Object
	Actions []*scene.Action
}

// Context is the state of one import.
type Context struct {
	Data      *scene.Data
	Scene     *scene.Scene
	Doc       *Document
	Reader    Reader
	Converter conversion.Converter

	options *Options
	log     *zap.Logger
	src     *gltf.Document
	claimed map[*scene.Object]bool
	bones   map[*scene.Object]map[string]bool
	actions []*scene.Action
}

func NewContext(data *scene.Data, src *gltf.Document, opts *Options) *Context {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	reader := opts.Reader
	if reader == nil {
		reader = gltfutil.NewReader(src)
	}
	return &Context{
		Data:      data,
		Doc:       NewDocument(src, opts.Interpolations),
		Reader:    reader,
		Converter: conversion.Converter{Axis: opts.Axis},
		options:   opts,
		log:       log,
		src:       src,
		claimed:   map[*scene.Object]bool{},
		bones:     map[*scene.Object]map[string]bool{},
	}
}

// Import imports the default scene of src into data.
func Import(data *scene.Data, src *gltf.Document, opts *Options) (*Result, error) {
	idx := 0
	if src.Scene != nil {
		idx = int(*src.Scene)
	}
	return ImportScene(data, src, idx, opts)
}

func ImportScene(data *scene.Data, src *gltf.Document, sceneIdx int, opts *Options) (*Result, error) {
	c := NewContext(data, src, opts)
	if sceneIdx < 0 || sceneIdx >= len(c.Doc.Scenes) {
		return nil, fmt.Errorf("scene %d not found", sceneIdx)
	}
	return c.Assemble(c.Doc.Scenes[sceneIdx])
}

// Assemble creates every node of def in the host scene.
// Objects created before an error are left in place.
func (c *Context) Assemble(def *SceneDef) (*Result, error) {
	if c.Doc.SkippedChannels > 0 {
		c.log.Debug("skipped animation channels", zap.Int("count", c.Doc.SkippedChannels))
	}

	root := c.object(CorrectionObjectName, scene.TypeEmpty)
	root.Parent, root.ParentBone = nil, ""
	root.Location = geom.Vector3{}
	root.Rotation = *c.Converter.CorrectionRotation()
	root.Scale = geom.Vector3{X: 1, Y: 1, Z: 1}

	c.Scene = c.ensureScene(def.Name)

	for _, idx := range def.Nodes {
		if err := c.createNode(idx); err != nil {
			return nil, err
		}
	}

	if len(c.Doc.Skins) > 0 {
		// each pass completes for all skins before the next starts
		for _, skin := range c.Doc.Skins {
			c.createVertexGroups(skin)
		}
		for _, skin := range c.Doc.Skins {
			if err := c.assignVertexGroups(skin); err != nil {
				return nil, err
			}
		}
		for _, skin := range c.Doc.Skins {
			c.createArmatureModifiers(skin)
		}
	}

	for animIdx, anim := range c.Doc.Animations {
		for _, idx := range def.Nodes {
			if err := c.animate(animIdx, idx); err != nil {
				return nil, fmt.Errorf("animation %d: %w", animIdx, err)
			}
		}
		c.log.Info("animation imported", zap.Int("index", animIdx), zap.String("name", anim.Name))
	}

	c.Scene.Link(root)
	root.Hidden = true
	for _, idx := range def.Nodes {
		if obj := c.Doc.Nodes[idx].Object; obj != nil {
			obj.Parent = root
		}
	}

	return &Result{Scene: c.Scene, Root: root, Actions: c.actions}, nil
}

// ensureScene reuses a scene with the same name. Unnamed scenes go to the default scene.
func (c *Context) ensureScene(name string) *scene.Scene {
	if name == "" {
		return c.Data.DefaultScene()
	}
	if s := c.Data.Scene(name); s != nil {
		c.log.Debug("reuse scene", zap.String("name", s.Name))
		return s
	}
	s := c.Data.NewScene(name, c.options.FrameRate)
	c.log.Debug("create scene", zap.String("name", s.Name), zap.Int("fps", s.Render.FPS))
	return s
}

// object returns an object named name that no other node of this import uses.
// Objects left by a previous import of the same document are reused.
func (c *Context) object(name string, typ scene.ObjectType) *scene.Object {
	name = scene.CleanName(name)
	candidate := name
	for i := 1; ; i++ {
		obj := c.Data.Object(candidate)
		if obj == nil {
			break
		}
		if !c.claimed[obj] && obj.Type == typ {
			c.claimed[obj] = true
			c.log.Debug("reuse object", zap.String("name", obj.Name))
			return obj
		}
		candidate = scene.SuffixName(name, i)
	}
	obj := c.Data.NewObject(name, typ)
	c.claimed[obj] = true
	c.log.Debug("create object", zap.String("name", obj.Name), zap.Stringer("type", obj.Type))
	return obj
}

func (c *Context) action(anim *Animation, obj *scene.Object) *scene.Action {
	name := anim.Name + "_" + obj.Name
	if anim.Name == "" {
		name = fmt.Sprintf("Animation_%d_%s", anim.Index, obj.Name)
	}
	a := c.Data.Action(name)
	if a == nil {
		a = c.Data.NewAction(name)
		c.log.Debug("create action", zap.String("name", a.Name))
	}
	for _, known := range c.actions {
		if known == a {
			return a
		}
	}
	c.actions = append(c.actions, a)
	return a
}
