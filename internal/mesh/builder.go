// Package mesh turns a decoded GEO model into a renderable triangle mesh.
package mesh

import (
	"i76-geo-tools/internal/geo"
	"i76-geo-tools/internal/material"
)

// Triangle is one output triangle: three position indices, a per-corner UV
// pair each, and an index into the owning Object's material list.
type Triangle struct {
	V        [3]int
	UV       [3][2]float32
	Material int
	Smooth   bool
}

// Object is the built mesh for one GEO file.
type Object struct {
	Name      string
	Positions [][3]float32 // scaled, in file order — one entry per source vertex
	Triangles []Triangle
	Materials []*material.Material // indexed by Triangle.Material
	Skipped   int                  // triangles dropped for bad indices or degeneracy
}

// Build constructs a mesh from a decoded model. Vertex positions are scaled
// uniformly; faces are fan-triangulated from their first corner (valid for
// the convex coplanar polygons the format carries). Materials are resolved
// through the shared batch cache, which Build only looks up or inserts into.
//
// A corner referencing a position outside the vertex array, a triangle
// collapsing onto a repeated position, or a triangle whose vertex set was
// already emitted drops that one triangle and counts it in Skipped; the
// rest of the face and file still build.
func Build(model *geo.Model, scale float32, cache *material.Cache) *Object {
	obj := &Object{
		Name:      model.Name,
		Positions: make([][3]float32, len(model.Vertices)),
	}
	for i, v := range model.Vertices {
		obj.Positions[i] = [3]float32{v[0] * scale, v[1] * scale, v[2] * scale}
	}

	// Local material slots, in first-appearance order.
	slot := make(map[string]int)
	for _, face := range model.Faces {
		if _, ok := slot[face.TextureName]; ok {
			continue
		}
		slot[face.TextureName] = len(obj.Materials)
		obj.Materials = append(obj.Materials, cache.Resolve(face.TextureName))
	}

	seen := make(map[[3]int]bool)
	for _, face := range model.Faces {
		if len(face.Corners) < 3 {
			continue // not renderable, not an error
		}
		mi := slot[face.TextureName]
		a := face.Corners[0]
		for i := 2; i < len(face.Corners); i++ {
			tri, ok := newTriangle(a, face.Corners[i-1], face.Corners[i], mi, len(obj.Positions))
			if !ok {
				obj.Skipped++
				continue
			}
			// A vertex set that already produced a triangle is rejected
			// regardless of winding, like any other per-triangle failure
			key := vertexKey(tri.V)
			if seen[key] {
				obj.Skipped++
				continue
			}
			seen[key] = true
			obj.Triangles = append(obj.Triangles, tri)
		}
	}

	return obj
}

// vertexKey normalizes a triangle's position indices to an order-free key.
func vertexKey(v [3]int) [3]int {
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	if v[1] > v[2] {
		v[1], v[2] = v[2], v[1]
	}
	if v[0] > v[1] {
		v[0], v[1] = v[1], v[0]
	}
	return v
}

// newTriangle validates one fan triangle. ok is false when a corner indexes
// past the position buffer or the three positions are not distinct.
func newTriangle(a, b, c geo.CornerRef, mat, nPositions int) (Triangle, bool) {
	for _, corner := range [3]geo.CornerRef{a, b, c} {
		if corner.VertexIndex < 0 || corner.VertexIndex >= nPositions {
			return Triangle{}, false
		}
	}
	if a.VertexIndex == b.VertexIndex || b.VertexIndex == c.VertexIndex || a.VertexIndex == c.VertexIndex {
		return Triangle{}, false
	}
	return Triangle{
		V:        [3]int{a.VertexIndex, b.VertexIndex, c.VertexIndex},
		UV:       [3][2]float32{a.UV, b.UV, c.UV},
		Material: mat,
		Smooth:   true,
	}, true
}
