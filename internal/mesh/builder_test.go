package mesh

import (
	"testing"

	"i76-geo-tools/internal/geo"
	"i76-geo-tools/internal/material"
)

func corner(vi int, u, v float32) geo.CornerRef {
	return geo.CornerRef{VertexIndex: vi, NormalIndex: vi, UV: [2]float32{u, v}}
}

func quadModel() *geo.Model {
	return &geo.Model{
		Name:     "quad",
		Vertices: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Normals:  [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Faces: []geo.Face{{
			TextureName: "chrome01",
			Corners: []geo.CornerRef{
				corner(0, 0, 0), corner(1, 1, 0), corner(2, 1, 1), corner(3, 0, 1),
			},
		}},
	}
}

func TestBuildFanTriangulation(t *testing.T) {
	obj := Build(quadModel(), 1, material.NewCache())

	if len(obj.Triangles) != 2 {
		t.Fatalf("got %d triangles, want 2", len(obj.Triangles))
	}
	if obj.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", obj.Skipped)
	}

	t0, t1 := obj.Triangles[0], obj.Triangles[1]
	if t0.V != [3]int{0, 1, 2} {
		t.Errorf("tri0 = %v, want [0 1 2]", t0.V)
	}
	if t1.V != [3]int{0, 2, 3} {
		t.Errorf("tri1 = %v, want [0 2 3]", t1.V)
	}

	// Per-corner UVs follow the originating corners
	if t0.UV != [3][2]float32{{0, 0}, {1, 0}, {1, 1}} {
		t.Errorf("tri0 UVs = %v", t0.UV)
	}
	if t1.UV != [3][2]float32{{0, 0}, {1, 1}, {0, 1}} {
		t.Errorf("tri1 UVs = %v", t1.UV)
	}

	for _, tri := range obj.Triangles {
		if !tri.Smooth {
			t.Error("triangles should be smooth-shaded")
		}
		if tri.Material != 0 {
			t.Errorf("material = %d, want 0", tri.Material)
		}
	}
}

func TestBuildSmallFaces(t *testing.T) {
	m := quadModel()
	m.Faces = []geo.Face{
		{TextureName: "a", Corners: nil},
		{TextureName: "a", Corners: []geo.CornerRef{corner(0, 0, 0), corner(1, 0, 0)}},
	}

	obj := Build(m, 1, material.NewCache())
	if len(obj.Triangles) != 0 {
		t.Errorf("got %d triangles, want 0", len(obj.Triangles))
	}
	if obj.Skipped != 0 {
		t.Errorf("skipped = %d, want 0 (small faces are not errors)", obj.Skipped)
	}
}

func TestBuildOutOfRangeCorner(t *testing.T) {
	m := quadModel()
	// Five corners, the fourth referencing one past the vertex array:
	// fan emits (0,1,2) valid, (0,2,X) and (0,X,3) skipped.
	m.Faces[0].Corners = []geo.CornerRef{
		corner(0, 0, 0), corner(1, 1, 0), corner(2, 1, 1), corner(4, 0, 1), corner(3, 0, 1),
	}

	obj := Build(m, 1, material.NewCache())
	if len(obj.Triangles) != 1 {
		t.Fatalf("got %d triangles, want 1", len(obj.Triangles))
	}
	if obj.Triangles[0].V != [3]int{0, 1, 2} {
		t.Errorf("tri = %v, want [0 1 2]", obj.Triangles[0].V)
	}
	if obj.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", obj.Skipped)
	}
}

func TestBuildDegenerateTriangle(t *testing.T) {
	m := quadModel()
	// Repeated vertex kills the first fan triangle only
	m.Faces[0].Corners = []geo.CornerRef{
		corner(0, 0, 0), corner(1, 1, 0), corner(1, 1, 0), corner(2, 1, 1),
	}

	obj := Build(m, 1, material.NewCache())
	if len(obj.Triangles) != 1 {
		t.Fatalf("got %d triangles, want 1", len(obj.Triangles))
	}
	if obj.Triangles[0].V != [3]int{0, 1, 2} {
		t.Errorf("tri = %v", obj.Triangles[0].V)
	}
	if obj.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", obj.Skipped)
	}
}

func TestBuildDuplicateTriangle(t *testing.T) {
	m := quadModel()
	tri := []geo.CornerRef{corner(0, 0, 0), corner(1, 1, 0), corner(2, 1, 1)}
	rev := []geo.CornerRef{corner(2, 1, 1), corner(1, 1, 0), corner(0, 0, 0)}
	m.Faces = []geo.Face{
		{TextureName: "chrome01", Corners: tri},
		{TextureName: "chrome01", Corners: tri},
		{TextureName: "chrome01", Corners: rev}, // same vertex set, reversed winding
	}

	obj := Build(m, 1, material.NewCache())
	if len(obj.Triangles) != 1 {
		t.Fatalf("got %d triangles, want 1", len(obj.Triangles))
	}
	if obj.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", obj.Skipped)
	}
}

func TestBuildScale(t *testing.T) {
	one := Build(quadModel(), 1, material.NewCache())
	two := Build(quadModel(), 2, material.NewCache())

	if len(one.Triangles) != len(two.Triangles) {
		t.Fatal("scale changed triangle topology")
	}
	for i := range one.Positions {
		for k := 0; k < 3; k++ {
			if two.Positions[i][k] != one.Positions[i][k]*2 {
				t.Fatalf("position[%d][%d] = %v, want %v", i, k, two.Positions[i][k], one.Positions[i][k]*2)
			}
		}
	}
	for i := range one.Triangles {
		if one.Triangles[i].UV != two.Triangles[i].UV {
			t.Error("scale changed UVs")
		}
	}
}

func TestBuildMaterialSlots(t *testing.T) {
	m := quadModel()
	tri := []geo.CornerRef{corner(0, 0, 0), corner(1, 1, 0), corner(2, 1, 1)}
	m.Faces = []geo.Face{
		{TextureName: "chrome01", Corners: tri},
		{TextureName: "rubber", Corners: tri},
		{TextureName: "chrome01", Corners: tri},
	}

	obj := Build(m, 1, material.NewCache())
	if len(obj.Materials) != 2 {
		t.Fatalf("got %d materials, want 2", len(obj.Materials))
	}
	if obj.Materials[0].Name != "chrome01" || obj.Materials[1].Name != "rubber" {
		t.Errorf("material order = %q, %q", obj.Materials[0].Name, obj.Materials[1].Name)
	}
	wantMats := []int{0, 1, 0}
	for i, tri := range obj.Triangles {
		if tri.Material != wantMats[i] {
			t.Errorf("tri[%d].Material = %d, want %d", i, tri.Material, wantMats[i])
		}
	}
}

func TestBuildSharedCacheAcrossFiles(t *testing.T) {
	cache := material.NewCache()

	a := Build(quadModel(), 1, cache)
	b := Build(quadModel(), 1, cache)
	c := Build(quadModel(), 1, cache)

	if a.Materials[0] != b.Materials[0] || b.Materials[0] != c.Materials[0] {
		t.Error("files in one batch must share the material handle for one texture name")
	}
	if cache.Len() != 1 {
		t.Errorf("cache has %d entries, want 1", cache.Len())
	}
}
