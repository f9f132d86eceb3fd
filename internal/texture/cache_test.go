package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestCacheResolve(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "chrome01.png"), color.NRGBA{200, 10, 10, 255})

	cache := NewCache(BuildIndex(dir))

	img := cache.Resolve("chrome01")
	if img == nil {
		t.Fatal("chrome01 did not resolve")
	}
	if img.Pix[0] != 200 {
		t.Errorf("texel R = %d, want 200", img.Pix[0])
	}

	// Second resolve returns the cached decode, not a fresh one.
	again := cache.Resolve("chrome01")
	if again != img {
		t.Error("second resolve returned a different image")
	}

	// Face names carry extensions from the GEO file; lookup is stem-based.
	if cache.Resolve("CHROME01.tga") != img {
		t.Error("extension/case variant missed the cache")
	}
}

func TestCacheResolveMissing(t *testing.T) {
	cache := NewCache(BuildIndex(t.TempDir()))
	if img := cache.Resolve("i76_default"); img != nil {
		t.Error("unindexed name resolved to an image")
	}
}
