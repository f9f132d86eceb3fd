package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// ManifestEntry records one input file's outcome in the output manifest.
type ManifestEntry struct {
	Source    string `json:"source"`
	Name      string `json:"name,omitempty"`
	Triangles int    `json:"triangles,omitempty"`
	Skipped   int    `json:"skipped_triangles,omitempty"`
	Materials int    `json:"materials,omitempty"`
	Preview   string `json:"preview,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Manifest is the batch-level record written next to the exported files.
type Manifest struct {
	Imported  int             `json:"imported"`
	Failed    int             `json:"failed"`
	Materials int             `json:"materials"`
	Files     []ManifestEntry `json:"files"`
}

// WriteManifest writes manifest.json for a finished batch.
func WriteManifest(path string, s Summary, previews bool) error {
	m := Manifest{
		Imported:  s.Imported,
		Failed:    len(s.Results) - s.Imported,
		Materials: s.Materials,
		Files:     make([]ManifestEntry, len(s.Results)),
	}
	for i, r := range s.Results {
		e := ManifestEntry{
			Source:    r.Path,
			Name:      r.Name,
			Triangles: r.Triangles,
			Skipped:   r.Skipped,
			Materials: r.Materials,
			Error:     r.Error,
		}
		if r.Success && previews {
			stem := strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path))
			e.Preview = filepath.Join("previews", stem+".webp")
		}
		m.Files[i] = e
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
