// Package scene is an in-memory host scene: named scenes, objects, armatures and
// keyframed actions. Everything is looked up by name, as in the host application.
package scene

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxNameLength is the maximum byte length of a host name.
const MaxNameLength = 63

const DefaultSceneName = "Scene"

const DefaultFPS = 24

// CleanName normalizes name to NFC and truncates it to MaxNameLength bytes
// without splitting a rune.
func CleanName(name string) string {
	name = norm.NFC.String(name)
	if len(name) <= MaxNameLength {
		return name
	}
	n := MaxNameLength
	for n > 0 && !utf8.RuneStart(name[n]) {
		n--
	}
	return name[:n]
}

type RenderSettings struct {
	FPS int
}

type Scene struct {
	Name    string
	Render  RenderSettings
	Objects []*Object
}

// Link adds obj to the scene. Linking twice is a no-op.
func (s *Scene) Link(obj *Object) {
	for _, o := range s.Objects {
		if o == obj {
			return
		}
	}
	s.Objects = append(s.Objects, obj)
}

func (s *Scene) IsLinked(obj *Object) bool {
	for _, o := range s.Objects {
		if o == obj {
			return true
		}
	}
	return false
}

// Data holds every named datablock.
type Data struct {
	Scenes  []*Scene
	Objects []*Object
	Actions []*Action

	context *Scene
}

func NewData() *Data {
	return &Data{}
}

func (d *Data) Scene(name string) *Scene {
	name = CleanName(name)
	for _, s := range d.Scenes {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (d *Data) NewScene(name string, fps int) *Scene {
	if fps <= 0 {
		fps = DefaultFPS
	}
	s := &Scene{Name: d.uniqueSceneName(CleanName(name)), Render: RenderSettings{FPS: fps}}
	d.Scenes = append(d.Scenes, s)
	return s
}

// DefaultScene returns the active scene, creating one if there is none.
func (d *Data) DefaultScene() *Scene {
	if d.context == nil {
		if len(d.Scenes) > 0 {
			d.context = d.Scenes[0]
		} else {
			d.context = d.NewScene(DefaultSceneName, DefaultFPS)
		}
	}
	return d.context
}

func (d *Data) SetDefaultScene(s *Scene) {
	d.context = s
}

func (d *Data) Object(name string) *Object {
	name = CleanName(name)
	for _, o := range d.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// NewObject creates an object. Name collisions get a numeric suffix.
func (d *Data) NewObject(name string, typ ObjectType) *Object {
	obj := newObject(d.uniqueObjectName(CleanName(name)), typ)
	d.Objects = append(d.Objects, obj)
	return obj
}

func (d *Data) Action(name string) *Action {
	name = CleanName(name)
	for _, a := range d.Actions {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func (d *Data) NewAction(name string) *Action {
	a := &Action{Name: d.uniqueActionName(CleanName(name))}
	d.Actions = append(d.Actions, a)
	return a
}

func (d *Data) uniqueSceneName(name string) string {
	return uniqueName(name, func(n string) bool { return d.Scene(n) != nil })
}

func (d *Data) uniqueObjectName(name string) string {
	return uniqueName(name, func(n string) bool { return d.Object(n) != nil })
}

func (d *Data) uniqueActionName(name string) string {
	return uniqueName(name, func(n string) bool { return d.Action(n) != nil })
}

func uniqueName(name string, exists func(string) bool) string {
	if !exists(name) {
		return name
	}
	for i := 1; ; i++ {
		if n := SuffixName(name, i); !exists(n) {
			return n
		}
	}
}

// SuffixName returns name with a ".NNN" suffix, trimmed to fit MaxNameLength.
func SuffixName(name string, i int) string {
	suffix := fmt.Sprintf(".%03d", i)
	n := CleanName(name)
	for len(n)+len(suffix) > MaxNameLength {
		_, size := utf8.DecodeLastRuneInString(n)
		n = n[:len(n)-size]
	}
	return n + suffix
}
