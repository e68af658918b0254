package gltfutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func TestReaderFloats(t *testing.T) {
	doc := gltf.NewDocument()
	times := modeler.WriteAccessor(doc, gltf.TargetNone, []float32{0, 0.5, 1})
	rotations := modeler.WriteAccessor(doc, gltf.TargetNone, [][4]float32{{0, 0, 0, 1}, {1, 0, 0, 0}})
	r := NewReader(doc)

	keys, err := r.Floats(times)
	if err != nil {
		t.Fatal("Floats: ", err)
	}
	if len(keys) != 3 || keys[1][0] != 0.5 {
		t.Error("keys: ", keys)
	}

	rots, err := r.Floats(rotations)
	if err != nil {
		t.Fatal("Floats: ", err)
	}
	if len(rots) != 2 || len(rots[0]) != 4 || rots[1][0] != 1 {
		t.Error("rotations: ", rots)
	}

	if n, err := r.Count(times); err != nil || n != 3 {
		t.Error("Count: ", n, err)
	}

	if _, err := r.Floats(100); err == nil {
		t.Error("out of range accessor should fail")
	}
}

func TestReaderMatrices(t *testing.T) {
	doc := gltf.NewDocument()
	m := [4][4]float32{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {1, 2, 3, 1}}
	acr := modeler.WriteAccessor(doc, gltf.TargetNone, [][4][4]float32{m})

	mats, err := NewReader(doc).Matrices(acr)
	if err != nil {
		t.Fatal("Matrices: ", err)
	}
	if len(mats) != 1 || mats[0][12] != 1 || mats[0][13] != 2 || mats[0][14] != 3 {
		t.Error("matrix: ", mats)
	}
}

func TestNormalizedInts(t *testing.T) {
	v, err := toFloats([][4]int16{{32767, -32768, 0, 0}}, true)
	if err != nil {
		t.Fatal(err)
	}
	if v[0][0] != 1 || v[0][1] != -1 || v[0][2] != 0 {
		t.Error("normalized: ", v)
	}

	v, err = toFloats([][4]uint8{{255, 0, 0, 0}}, false)
	if err != nil {
		t.Fatal(err)
	}
	if v[0][0] != 255 {
		t.Error("not normalized: ", v)
	}

	if _, err := toFloats("x", false); err == nil {
		t.Error("unsupported type should fail")
	}
}

func TestReadInterpolations(t *testing.T) {
	js := []byte(`{"animations":[{"samplers":[{"interpolation":"CATMULLROMSPLINE"},{}]},{"samplers":[{"interpolation":"SMOOTH"}]}]}`)
	interp, err := ReadInterpolations(js)
	if err != nil {
		t.Fatal("ReadInterpolations: ", err)
	}
	if len(interp) != 2 || len(interp[0]) != 2 || interp[0][0] != "CATMULLROMSPLINE" || interp[0][1] != "" || interp[1][0] != "SMOOTH" {
		t.Error("interpolations: ", interp)
	}

	// same JSON in a glb container, padded to 4 bytes
	chunk := append(js, bytes.Repeat([]byte(" "), (4-len(js)%4)%4)...)
	var glb bytes.Buffer
	binary.Write(&glb, binary.LittleEndian, []uint32{glbMagic, 2, uint32(20 + len(chunk)), uint32(len(chunk)), glbChunkJSON})
	glb.Write(chunk)
	interp, err = ReadInterpolations(glb.Bytes())
	if err != nil {
		t.Fatal("ReadInterpolations glb: ", err)
	}
	if len(interp) != 2 || interp[1][0] != "SMOOTH" {
		t.Error("glb interpolations: ", interp)
	}

	if _, err := ReadInterpolations(glb.Bytes()[:24]); err == nil {
		t.Error("truncated glb should fail")
	}
}

func TestLoad(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Nodes = []*gltf.Node{{Name: "n"}}
	in := uint32(modeler.WriteAccessor(doc, gltf.TargetNone, []float32{0, 1}))
	out := uint32(modeler.WriteAccessor(doc, gltf.TargetNone, [][3]float32{{0, 0, 0}, {1, 0, 0}}))
	doc.Animations = []*gltf.Animation{{
		Samplers: []*gltf.AnimationSampler{{Input: gltf.Index(in), Output: gltf.Index(out), Interpolation: gltf.InterpolationStep}},
		Channels: []*gltf.Channel{{Sampler: gltf.Index(0), Target: gltf.ChannelTarget{Node: gltf.Index(0), Path: gltf.TRSTranslation}}},
	}}
	path := filepath.Join(t.TempDir(), "anim.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatal("SaveBinary: ", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatal("Load: ", err)
	}
	if len(f.Doc.Nodes) != 1 || len(f.Doc.Animations) != 1 {
		t.Error("document: ", f.Doc)
	}
	if len(f.Interpolations) != 1 || f.Interpolations[0][0] != "STEP" {
		t.Error("interpolations: ", f.Interpolations)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.glb")); err == nil {
		t.Error("missing file should fail")
	}
	bad := filepath.Join(t.TempDir(), "bad.gltf")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("broken file should fail")
	}
}
