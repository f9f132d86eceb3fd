package raster

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"i76-geo-tools/internal/mesh"
	"i76-geo-tools/internal/texture"
)

// viewRotation returns the fixed preview camera. GEO data is Z-up: spin the
// model around Z, then tilt it toward the camera for a three-quarter view.
func viewRotation() mgl64.Mat3 {
	spin := mgl64.Rotate3DZ(mgl64.DegToRad(-30))
	tilt := mgl64.Rotate3DX(mgl64.DegToRad(-65))
	return tilt.Mul3(spin)
}

// RenderMesh renders a built mesh to an NRGBA preview image. Per-triangle
// materials resolve to textures through texResolver (nil disables texturing);
// triangles whose texture is missing fall back to the texture's average
// color, or neutral gray.
func RenderMesh(obj *mesh.Object, texResolver texture.Resolver, size, supersample int) *image.NRGBA {
	if len(obj.Positions) == 0 || len(obj.Triangles) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, size, size))
	}

	R := viewRotation()
	renderSize := size * supersample

	// Bounding box of all transformed vertices
	allMin := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	view := make([]mgl64.Vec3, len(obj.Positions))
	for i, p := range obj.Positions {
		tv := R.Mul3x1(mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])})
		view[i] = tv
		for k := 0; k < 3; k++ {
			if tv[k] < allMin[k] {
				allMin[k] = tv[k]
			}
			if tv[k] > allMax[k] {
				allMax[k] = tv[k]
			}
		}
	}

	center := allMin.Add(allMax).Mul(0.5)
	span := allMax[0] - allMin[0]
	if spanY := allMax[1] - allMin[1]; spanY > span {
		span = spanY
	}
	if span < 0.001 {
		span = 0.001
	}

	margin := 16 * supersample
	scale := float64(renderSize-2*margin) / span

	// Project to screen space; depth grows toward the camera
	px := make([]float64, len(view))
	py := make([]float64, len(view))
	pz := make([]float64, len(view))
	half := float64(renderSize) / 2
	for i, tv := range view {
		px[i] = (tv[0]-center[0])*scale + half
		py[i] = half - (tv[1]-center[1])*scale
		pz[i] = (tv[2] - center[2]) * scale
	}

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	// Resolve one texture and fallback color per material slot
	texs := make([]*image.NRGBA, len(obj.Materials))
	defs := make([][4]uint8, len(obj.Materials))
	for i, m := range obj.Materials {
		defs[i] = [4]uint8{160, 160, 170, 255}
		if texResolver != nil {
			texs[i] = texResolver.Resolve(m.Name)
		}
		if texs[i] != nil {
			r, g, b, a := averageColor(texs[i])
			defs[i] = [4]uint8{r, g, b, a}
		}
	}

	for _, tri := range obj.Triangles {
		var tex *image.NRGBA
		def := [4]uint8{160, 160, 170, 255}
		if tri.Material >= 0 && tri.Material < len(texs) {
			tex = texs[tri.Material]
			def = defs[tri.Material]
		}
		RasterizeTriangle(fb, px, py, pz, tri.V, tri.UV, tex, def[0], def[1], def[2], def[3], &lc)
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)

	return img
}

func averageColor(tex *image.NRGBA) (uint8, uint8, uint8, uint8) {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 160, 160, 170, 255
	}

	var sumR, sumG, sumB float64
	total := w * h
	stride := tex.Stride
	for y := 0; y < h; y++ {
		off := y * stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(total)
	return uint8(sumR/n + 0.5), uint8(sumG/n + 0.5), uint8(sumB/n + 0.5), 255
}
