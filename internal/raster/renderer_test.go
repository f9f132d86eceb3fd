package raster

import (
	"testing"

	"i76-geo-tools/internal/material"
	"i76-geo-tools/internal/mesh"
)

func TestRenderMeshCoversPixels(t *testing.T) {
	obj := &mesh.Object{
		Name:      "tri",
		Positions: [][3]float32{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}, {10, 10, 5}},
		Triangles: []mesh.Triangle{
			{V: [3]int{0, 1, 2}, UV: [3][2]float32{{0, 0}, {1, 0}, {0, 1}}, Smooth: true},
			{V: [3]int{1, 3, 2}, UV: [3][2]float32{{1, 0}, {1, 1}, {0, 1}}, Smooth: true},
		},
		Materials: []*material.Material{{Name: "chrome01"}},
	}

	img := RenderMesh(obj, nil, 128, 1)
	b := img.Bounds()
	if b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("image is %dx%d, want 128x128", b.Dx(), b.Dy())
	}

	covered := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			covered++
		}
	}
	if covered == 0 {
		t.Fatal("render produced no opaque pixels")
	}
}

func TestRenderMeshEmpty(t *testing.T) {
	obj := &mesh.Object{Name: "empty"}
	img := RenderMesh(obj, nil, 64, 2)
	if img.Bounds().Dx() != 64 {
		t.Errorf("empty mesh render is %dx, want 64", img.Bounds().Dx())
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatal("empty mesh produced visible pixels")
		}
	}
}

func TestDownsample(t *testing.T) {
	obj := &mesh.Object{
		Positions: [][3]float32{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}},
		Triangles: []mesh.Triangle{
			{V: [3]int{0, 1, 2}, UV: [3][2]float32{{0, 0}, {1, 0}, {0, 1}}, Smooth: true},
		},
		Materials: []*material.Material{{Name: "x"}},
	}

	img := RenderMesh(obj, nil, 64, 2)
	if img.Bounds().Dx() != 128 {
		t.Fatalf("supersampled render is %dx, want 128", img.Bounds().Dx())
	}
	small := Downsample(img, 64)
	if small.Bounds().Dx() != 64 || small.Bounds().Dy() != 64 {
		t.Fatalf("downsampled to %dx%d, want 64x64", small.Bounds().Dx(), small.Bounds().Dy())
	}
}
