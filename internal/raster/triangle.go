package raster

import (
	"image"
	"math"
)

// RasterizeTriangle rasterizes a single triangle with per-corner UVs,
// z-buffer, sRGB color space, lighting, and ACES tone mapping.
//
// This is the HOT PATH — designed for zero allocation in the inner loop.
// Lighting is flat-shaded (per-face, not per-pixel).
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py, pz []float64,
	vi [3]int,
	uv [3][2]float32,
	tex *image.NRGBA,
	defaultR, defaultG, defaultB, defaultA uint8,
	lc *LightConfig,
) {
	nv := len(px)

	// Bounds check
	for _, i := range vi {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	hasTex := tex != nil
	u0, v0uv := float64(uv[0][0]), float64(uv[0][1])
	u1, v1uv := float64(uv[1][0]), float64(uv[1][1])
	u2, v2uv := float64(uv[2][0]), float64(uv[2][1])

	// Face normal for flat shading
	e1x, e1y, e1z := x1-x0, y1-y0, z1-z0
	e2x, e2y, e2z := x2-x0, y2-y0, z2-z0
	nx := e1y*e2z - e1z*e2y
	ny := e1z*e2x - e1x*e2z
	nz := e1x*e2y - e1y*e2x
	nl := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if nl < 1e-8 {
		return
	}
	invNL := 1.0 / nl
	nx *= invNL
	ny *= invNL
	nz *= invNL

	// Compute shade using lighting config
	ndlMain := math.Abs(nx*lc.LightDir[0] + ny*lc.LightDir[1] + nz*lc.LightDir[2])
	ndlRim := math.Abs(nx*lc.RimDir[0] + ny*lc.RimDir[1] + nz*lc.RimDir[2])
	hemi := (1.0-math.Abs(ny))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi
	ndh := nx*lc.HalfMain[0] + ny*lc.HalfMain[1] + nz*lc.HalfMain[2]
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt
	shade := lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec

	// Bounding box
	size := fb.Width
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= size {
		maxX = size - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= size {
		maxY = size - 1
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	exposure := lc.Exposure
	invGamma := lc.InvGamma

	// Pixel loop — zero allocations
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * size
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			var cr, cg, cb, ca uint8
			if hasTex {
				u := w0*u0 + w1*u1 + w2*u2
				v := w0*v0uv + w1*v1uv + w2*v2uv
				cr, cg, cb, ca = SampleTexture(tex, u, v)
			} else {
				cr, cg, cb, ca = defaultR, defaultG, defaultB, defaultA
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			// sRGB decode → linear (LUT)
			lr := srgbToLinear[cr]
			lg := srgbToLinear[cg]
			lb := srgbToLinear[cb]

			// Apply shading + ACES tone mapping
			sr := lr * shade * exposure
			sg := lg * shade * exposure
			sb := lb * shade * exposure

			tr := ACESTonemap(sr)
			tg := ACESTonemap(sg)
			tb := ACESTonemap(sb)

			// Linear → sRGB encode
			fr := math.Pow(tr, invGamma)
			fg := math.Pow(tg, invGamma)
			ffb := math.Pow(tb, invGamma)

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(fr * 255)
			fb.Color[pxIdx+1] = clamp255(fg * 255)
			fb.Color[pxIdx+2] = clamp255(ffb * 255)
			fb.Color[pxIdx+3] = ca
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
