package geo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// DefaultTexture is substituted when a face's texture field is empty.
const DefaultTexture = "i76_default"

const (
	minFileSize    = 64
	headerNameSize = 16
	texNameSize    = 13

	// Sanity bound for the declared vertex/face counts. Anything outside
	// means a corrupt or misidentified file, rejected before allocating.
	maxCount = 2_000_000

	// Opaque face-header sub-fields, consumed at their fixed offsets to keep
	// the stream aligned. The game never needed their semantics for
	// rendering, so neither do we.
	faceColorSize   = 3  // RGB?
	facePlaneSize   = 16 // plane equation, 4×f32?
	faceUnknownSize = 4  // u32
	faceFlagsSize   = 3
	faceTailSize    = 8 // two u32s after the texture name

	// id + corner count + opaque block + texture name + tail
	faceHeaderSize = 4 + 4 + faceColorSize + facePlaneSize + faceUnknownSize + faceFlagsSize + texNameSize + faceTailSize

	vec3Size   = 12
	cornerSize = 16 // u32 vertex index, u32 normal index, f32 u, f32 v
)

var (
	// ErrTooSmall means the input is shorter than the minimum GEO size.
	ErrTooSmall = errors.New("geo: file too small to be a GEO")
	// ErrTruncated means the stream ended before all declared data was read.
	ErrTruncated = errors.New("geo: stream ends before declared data")
)

// CountError reports declared vertex/face counts outside the sanity bounds.
type CountError struct {
	Vertices uint32
	Faces    uint32
}

func (e *CountError) Error() string {
	return fmt.Sprintf("geo: unreasonable counts v=%d f=%d", e.Vertices, e.Faces)
}

// Parse reads a GEO file and decodes it. The file's base name is used as
// display name when the embedded name field is empty.
func Parse(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("geo: read %s: %w", path, err)
	}
	m, err := Decode(data, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("geo: parse %s: %w", path, err)
	}
	return m, nil
}

// Decode parses a classic-layout GEO byte stream. It either returns a
// complete Model or a structural error — never partial data. fallbackName
// substitutes for an empty embedded name field.
func Decode(data []byte, fallbackName string) (*Model, error) {
	if len(data) < minFileSize {
		return nil, ErrTooSmall
	}

	r := &reader{data: data}
	m := &Model{}

	copy(m.Tag[:], r.readBytes(4)) // not validated; unknown tag variants exist
	_ = r.readU32()                // reserved
	m.Name = r.readStr(headerNameSize)
	if m.Name == "" {
		m.Name = fallbackName
	}

	vct := r.readU32()
	fct := r.readU32()
	_ = r.readU32() // reserved

	if vct < 1 || vct > maxCount || fct < 1 || fct > maxCount {
		return nil, &CountError{Vertices: vct, Faces: fct}
	}

	// Positions, then a parallel normal array, both in file order. File
	// order defines the index space the face corners reference.
	if !r.need(int(vct) * 2 * vec3Size) {
		return nil, ErrTruncated
	}
	m.Vertices = make([][3]float32, vct)
	for i := range m.Vertices {
		m.Vertices[i] = r.readVec3()
	}
	m.Normals = make([][3]float32, vct)
	for i := range m.Normals {
		m.Normals[i] = r.readVec3()
	}

	m.Faces = make([]Face, 0, fct)
	for i := uint32(0); i < fct; i++ {
		if !r.need(faceHeaderSize) {
			return nil, ErrTruncated
		}
		_ = r.readU32() // face id
		nv := r.readU32()
		r.skip(faceColorSize)
		r.skip(facePlaneSize)
		r.skip(faceUnknownSize)
		r.skip(faceFlagsSize)
		tex := r.readStr(texNameSize)
		if tex == "" {
			tex = DefaultTexture
		}
		r.skip(faceTailSize)

		// Checking the whole corner block up front also stops a corrupt
		// corner count from iterating past the end of the stream.
		if !r.need(int(nv) * cornerSize) {
			return nil, ErrTruncated
		}
		corners := make([]CornerRef, nv)
		for j := range corners {
			corners[j].VertexIndex = int(r.readU32())
			corners[j].NormalIndex = int(r.readU32())
			corners[j].UV = [2]float32{r.readF32(), r.readF32()}
		}
		m.Faces = append(m.Faces, Face{TextureName: tex, Corners: corners})
	}

	m.Trailing = r.remaining()
	return m, nil
}

// reader tracks an offset into a byte slice. Callers bounds-check each
// stage with need() before the reads for that stage.
type reader struct {
	data []byte
	off  int
}

func (r *reader) remaining() int { return len(r.data) - r.off }

func (r *reader) need(n int) bool { return r.remaining() >= n }

func (r *reader) skip(n int) {
	r.off += n
	if r.off > len(r.data) {
		r.off = len(r.data)
	}
}

func (r *reader) readBytes(n int) []byte {
	if r.off+n > len(r.data) {
		r.off = len(r.data)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

// readStr reads a fixed-width ASCII field, up to the first null byte.
// Bytes after the terminator are padding and ignored.
func (r *reader) readStr(n int) string {
	s := r.readBytes(n)
	for i, b := range s {
		if b == 0 {
			s = s[:i]
			break
		}
	}
	return strings.TrimSpace(string(s))
}

func (r *reader) readU32() uint32 {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) readF32() float32 {
	return math.Float32frombits(r.readU32())
}

func (r *reader) readVec3() [3]float32 {
	return [3]float32{r.readF32(), r.readF32(), r.readF32()}
}
