package gltfutil

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/binzume/gltfscene/geom"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// File is a loaded document and the sampler interpolation names as written in it.
// The decoded document maps names it does not know to LINEAR.
type File struct {
	Doc *gltf.Document
	// Interpolations is indexed by animation, then sampler. Empty when unset.
	Interpolations [][]string
}

func Load(path string) (*File, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	interp, err := ReadInterpolations(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{Doc: doc, Interpolations: interp}, nil
}

const (
	glbMagic     = 0x46546C67 // "glTF"
	glbChunkJSON = 0x4E4F534A // "JSON"
)

// ReadInterpolations returns the raw sampler interpolation names of a .gltf or .glb file.
func ReadInterpolations(data []byte) ([][]string, error) {
	if len(data) >= 4 && binary.LittleEndian.Uint32(data) == glbMagic {
		if len(data) < 20 || binary.LittleEndian.Uint32(data[16:]) != glbChunkJSON {
			return nil, fmt.Errorf("glb: missing JSON chunk")
		}
		n := binary.LittleEndian.Uint32(data[12:])
		if uint64(len(data)) < 20+uint64(n) {
			return nil, fmt.Errorf("glb: truncated JSON chunk")
		}
		data = data[20 : 20+n]
	}
	var raw struct {
		Animations []struct {
			Samplers []struct {
				Interpolation string `json:"interpolation"`
			} `json:"samplers"`
		} `json:"animations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	ret := make([][]string, len(raw.Animations))
	for i, a := range raw.Animations {
		for _, s := range a.Samplers {
			ret[i] = append(ret[i], s.Interpolation)
		}
	}
	return ret, nil
}

// Reader decodes accessors of a loaded document.
type Reader struct {
	doc *gltf.Document
}

func NewReader(doc *gltf.Document) *Reader {
	return &Reader{doc: doc}
}

func (r *Reader) accessor(index uint32) (*gltf.Accessor, error) {
	if int(index) >= len(r.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", index)
	}
	return r.doc.Accessors[index], nil
}

// Count returns the element count of the accessor.
func (r *Reader) Count(index uint32) (int, error) {
	acr, err := r.accessor(index)
	if err != nil {
		return 0, err
	}
	return int(acr.Count), nil
}

// Floats returns one tuple per element. Normalized integer components are mapped to [-1, 1] or [0, 1].
func (r *Reader) Floats(index uint32) ([][]float32, error) {
	acr, err := r.accessor(index)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadAccessor(r.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", index, err)
	}
	tuples, err := toFloats(data, acr.Normalized)
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", index, err)
	}
	return tuples, nil
}

// Matrices reads a MAT4 accessor, such as inverse bind matrices.
func (r *Reader) Matrices(index uint32) ([]*geom.Matrix4, error) {
	tuples, err := r.Floats(index)
	if err != nil {
		return nil, err
	}
	mats := make([]*geom.Matrix4, len(tuples))
	for i, t := range tuples {
		if len(t) != 16 {
			return nil, fmt.Errorf("accessor %d: not a matrix accessor", index)
		}
		mats[i] = geom.NewMatrix4FromSlice(t)
	}
	return mats, nil
}

func (r *Reader) Joints(index uint32) ([][4]uint16, error) {
	acr, err := r.accessor(index)
	if err != nil {
		return nil, err
	}
	return modeler.ReadJoints(r.doc, acr, nil)
}

func (r *Reader) Weights(index uint32) ([][4]float32, error) {
	acr, err := r.accessor(index)
	if err != nil {
		return nil, err
	}
	return modeler.ReadWeights(r.doc, acr, nil)
}

func toFloats(data interface{}, normalized bool) ([][]float32, error) {
	var ret [][]float32
	switch v := data.(type) {
	case []float32:
		for _, e := range v {
			ret = append(ret, []float32{e})
		}
	case [][2]float32:
		for _, e := range v {
			ret = append(ret, []float32{e[0], e[1]})
		}
	case [][3]float32:
		for _, e := range v {
			ret = append(ret, []float32{e[0], e[1], e[2]})
		}
	case [][4]float32:
		for _, e := range v {
			ret = append(ret, []float32{e[0], e[1], e[2], e[3]})
		}
	case [][4][4]float32:
		for _, e := range v {
			m := make([]float32, 0, 16)
			for _, col := range e {
				m = append(m, col[:]...)
			}
			ret = append(ret, m)
		}
	case [][4]int8:
		for _, e := range v {
			ret = append(ret, intTuple(e[:], 127, true, normalized))
		}
	case [][4]uint8:
		for _, e := range v {
			ret = append(ret, intTuple(e[:], 255, false, normalized))
		}
	case [][4]int16:
		for _, e := range v {
			ret = append(ret, intTuple(e[:], 32767, true, normalized))
		}
	case [][4]uint16:
		for _, e := range v {
			ret = append(ret, intTuple(e[:], 65535, false, normalized))
		}
	case [][3]int8:
		for _, e := range v {
			ret = append(ret, intTuple(e[:], 127, true, normalized))
		}
	case [][3]uint8:
		for _, e := range v {
			ret = append(ret, intTuple(e[:], 255, false, normalized))
		}
	case [][3]int16:
		for _, e := range v {
			ret = append(ret, intTuple(e[:], 32767, true, normalized))
		}
	case [][3]uint16:
		for _, e := range v {
			ret = append(ret, intTuple(e[:], 65535, false, normalized))
		}
	default:
		return nil, fmt.Errorf("unsupported accessor data %T", data)
	}
	return ret, nil
}

type integer interface {
	~int8 | ~uint8 | ~int16 | ~uint16
}

func intTuple[T integer](v []T, max float32, signed, normalized bool) []float32 {
	ret := make([]float32, len(v))
	for i, e := range v {
		f := float32(e)
		if normalized {
			f /= max
			if signed && f < -1 {
				f = -1
			}
		}
		ret[i] = f
	}
	return ret
}
