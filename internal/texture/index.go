package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase texture stems to filesystem paths. GEO faces name
// textures without extension ("chrome01"), so lookup is by stem. TGA files
// take priority over other formats for the same stem (alpha channel).
type Index struct {
	entries map[string]string // stem.lower() → full path
}

var imageExts = map[string]bool{
	".tga":  true,
	".bmp":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// BuildIndex recursively scans a directory of extracted game textures.
// An empty or missing dir yields an empty (but usable) index.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !imageExts[ext] {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists {
			idx.entries[stem] = path
		} else if ext == ".tga" && strings.ToLower(filepath.Ext(existing)) != ".tga" {
			// TGA wins (has alpha channel)
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
func (idx *Index) ResolvePath(texName string) (string, bool) {
	// Strip any path prefix and extension the name might carry
	texName = strings.ReplaceAll(texName, "\\", "/")
	base := filepath.Base(texName)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
