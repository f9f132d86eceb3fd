package geo

// CornerRef references one vertex of a face. Each corner carries its own
// normal index and UV pair — the same vertex may map to different UVs in
// different faces, so UVs are a corner attribute, not a vertex attribute.
type CornerRef struct {
	VertexIndex int
	NormalIndex int
	UV          [2]float32
}

// Face holds one polygon: a texture name and an ordered corner list.
// Faces with fewer than 3 corners are structurally valid but not renderable.
type Face struct {
	TextureName string
	Corners     []CornerRef
}

// Model holds the decoded contents of one GEO file. Never mutated after
// Decode; downstream consumers only read it.
type Model struct {
	Name     string
	Vertices [][3]float32
	Normals  [][3]float32 // parallel to Vertices; stored, not consumed by the builder
	Faces    []Face

	Tag      [4]byte // offset-0 tag, read but never validated (variants exist in the wild)
	Trailing int     // bytes left after the declared data; tolerated, reported by inspectgeo
}
