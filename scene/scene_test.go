package scene

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestCleanName(t *testing.T) {
	// decomposed "é" is composed
	assert.Equal(t, "caf\u00e9", CleanName("cafe\u0301"))

	long := strings.Repeat("a", 62) + "日本"
	cleaned := CleanName(long)
	assert.Equal(t, strings.Repeat("a", 62), cleaned)
	assert.LessOrEqual(t, len(CleanName(strings.Repeat("日", 40))), MaxNameLength)
}

func TestUniqueNames(t *testing.T) {
	d := NewData()
	a := d.NewObject("Cube", TypeMesh)
	b := d.NewObject("Cube", TypeMesh)
	c := d.NewObject("Cube", TypeEmpty)

	assert.Equal(t, "Cube", a.Name)
	assert.Equal(t, "Cube.001", b.Name)
	assert.Equal(t, "Cube.002", c.Name)
	assert.Same(t, b, d.Object("Cube.001"))
	assert.Nil(t, d.Object("Cube.003"))

	long := d.NewObject(strings.Repeat("x", 70), TypeEmpty)
	long2 := d.NewObject(strings.Repeat("x", 70), TypeEmpty)
	assert.Len(t, long.Name, MaxNameLength)
	assert.Len(t, long2.Name, MaxNameLength)
	assert.True(t, strings.HasSuffix(long2.Name, ".001"))
}

func TestDefaultScene(t *testing.T) {
	d := NewData()
	s := d.DefaultScene()
	assert.Equal(t, DefaultSceneName, s.Name)
	assert.Equal(t, DefaultFPS, s.Render.FPS)
	assert.Same(t, s, d.DefaultScene())
	assert.Len(t, d.Scenes, 1)

	s2 := d.NewScene("Other", 30)
	assert.Same(t, s2, d.Scene("Other"))
	assert.Same(t, s, d.DefaultScene())
}

func TestSceneLink(t *testing.T) {
	d := NewData()
	s := d.NewScene("S", 0)
	obj := d.NewObject("Empty", TypeEmpty)
	s.Link(obj)
	s.Link(obj)
	assert.Len(t, s.Objects, 1)
	assert.True(t, s.IsLinked(obj))
}

func TestFCurveInsert(t *testing.T) {
	c := &FCurve{DataPath: PropLocation}
	c.Insert(10, 1)
	c.Insert(0, 2)
	c.Insert(5, 3)
	c.Insert(10, 4)

	require.Len(t, c.Keyframes, 3)
	assert.Equal(t, []float32{0, 5, 10}, []float32{c.Keyframes[0].Frame, c.Keyframes[1].Frame, c.Keyframes[2].Frame})
	assert.Equal(t, float32(4), c.Keyframes[2].Value)
	assert.Equal(t, InterpolationBezier, c.Keyframes[0].Interpolation)
}

func TestKeyframeInsert(t *testing.T) {
	d := NewData()
	arm := d.NewObject("Armature", TypeArmature)
	arm.Armature.EnsureBone("Hip")
	pb := arm.Pose.EnsureBone("Hip")

	err := arm.KeyframeInsert(BonePath("Hip", PropLocation), 0, "location")
	assert.ErrorIs(t, err, ErrNoAction)

	action := d.NewAction("Walk_Armature")
	arm.AnimationDataCreate().Action = action

	pb.Location.X = 1
	require.NoError(t, arm.KeyframeInsert(BonePath("Hip", PropLocation), 0, "location"))
	pb.Location.X = 2
	require.NoError(t, arm.KeyframeInsert(BonePath("Hip", PropLocation), 24, "location"))
	require.NoError(t, arm.KeyframeInsert(BonePath("Hip", PropRotation), 0, "rotation"))

	assert.Len(t, action.FCurves, 7)
	assert.Equal(t, []string{"location", "rotation"}, action.Groups())
	assert.Len(t, action.GroupCurves("location", ""), 3)

	x := action.FCurve(BonePath("Hip", PropLocation), 0)
	require.NotNil(t, x)
	require.Len(t, x.Keyframes, 2)
	assert.Equal(t, float32(2), x.Keyframes[1].Value)

	// rotation curves are W, X, Y, Z
	w := action.FCurve(BonePath("Hip", PropRotation), 0)
	require.NotNil(t, w)
	assert.Equal(t, float32(1), w.Keyframes[0].Value)

	assert.Error(t, arm.KeyframeInsert(BonePath("Missing", PropLocation), 0, "location"))
	assert.Error(t, arm.KeyframeInsert("rotation_euler", 0, "rotation"))
}

func TestSplitDataPath(t *testing.T) {
	bone, prop, err := SplitDataPath(BonePath("Upper.L", PropScale))
	require.NoError(t, err)
	assert.Equal(t, "Upper.L", bone)
	assert.Equal(t, PropScale, prop)

	bone, prop, err = SplitDataPath(PropLocation)
	require.NoError(t, err)
	assert.Equal(t, "", bone)
	assert.Equal(t, PropLocation, prop)

	_, _, err = SplitDataPath(`pose.bones["broken`)
	assert.Error(t, err)
}

func TestMatrixWorld(t *testing.T) {
	d := NewData()
	parent := d.NewObject("Parent", TypeEmpty)
	parent.Location.X = 1
	child := d.NewObject("Child", TypeEmpty)
	child.Parent = parent
	child.Location.Y = 2

	pos := child.MatrixWorld().Translation()
	assert.Equal(t, float32(1), pos.X)
	assert.Equal(t, float32(2), pos.Y)
}

func TestVertexGroupsAndModifiers(t *testing.T) {
	d := NewData()
	obj := d.NewObject("Body", TypeMesh)
	g := obj.EnsureVertexGroup("Hip")
	assert.Same(t, g, obj.EnsureVertexGroup("Hip"))
	g.Add([]int{3, 1}, 0.5)
	g.Add([]int{1}, 0.25)
	assert.Equal(t, []int{1, 3}, g.Vertices())
	assert.Equal(t, float32(0.25), g.Weights[1])

	m := obj.EnsureModifier("Armature", ModifierArmature)
	assert.Same(t, m, obj.EnsureModifier("Armature", ModifierArmature))
	assert.Len(t, obj.Modifiers, 1)
}

func TestWriteYAML(t *testing.T) {
	d := NewData()
	s := d.NewScene("S", 24)
	arm := d.NewObject("Armature", TypeArmature)
	arm.Armature.EnsureBone("Hip")
	arm.Pose.EnsureBone("Hip")
	s.Link(arm)
	arm.AnimationDataCreate().Action = d.NewAction("A")
	require.NoError(t, arm.KeyframeInsert(BonePath("Hip", PropLocation), 0, "location"))

	var buf bytes.Buffer
	require.NoError(t, d.WriteYAML(&buf))

	var parsed map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &parsed))
	assert.Len(t, parsed["scenes"], 1)
	assert.Len(t, parsed["objects"], 1)
	assert.Len(t, parsed["actions"], 1)
	assert.Contains(t, buf.String(), `pose.bones["Hip"].location`)
	assert.NotContains(t, buf.String(), "default_scene")
}

func TestWriteYAMLDefaultSceneAndWorld(t *testing.T) {
	d := NewData()
	d.NewScene("First", 24)
	s := d.NewScene("Second", 30)
	d.SetDefaultScene(s)
	parent := d.NewObject("Parent", TypeEmpty)
	parent.Location.X = 1
	child := d.NewObject("Child", TypeEmpty)
	child.Parent = parent
	child.Location.Y = 2

	var buf bytes.Buffer
	require.NoError(t, d.WriteYAML(&buf))

	var dump dataDump
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &dump))
	assert.Equal(t, "Second", dump.DefaultScene)
	require.Len(t, dump.Objects, 2)
	world := dump.Objects[1].MatrixWorld
	assert.InDelta(t, 1, world[12], 1e-6)
	assert.InDelta(t, 2, world[13], 1e-6)
	assert.InDelta(t, 0, world[14], 1e-6)
}
