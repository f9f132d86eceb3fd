// Package batch runs one import operation over a list of GEO paths:
// decode, build, export, preview. One material cache is shared across the
// whole batch so files referencing the same texture share one material.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/mathgl/mgl32"

	"i76-geo-tools/internal/geo"
	"i76-geo-tools/internal/gltfexport"
	"i76-geo-tools/internal/material"
	"i76-geo-tools/internal/mesh"
	"i76-geo-tools/internal/raster"
	"i76-geo-tools/internal/scene"
	"i76-geo-tools/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Options     scene.Options
	OutputDir   string
	GLTFBinary  bool // write .glb instead of .gltf
	Preview     bool // render WebP thumbnails
	PreviewSize int
	Supersample int
	TexResolver texture.Resolver
	Workers     int
}

// Result holds the outcome of importing one file.
type Result struct {
	Path      string
	Name      string
	Success   bool
	Error     string
	Triangles int
	Skipped   int
	Materials int
}

// Summary aggregates one batch: how many files imported, the per-file
// results in input order, and the assembled scene graph of the successes.
type Summary struct {
	Imported  int
	Results   []Result
	Graph     *scene.Graph
	Materials int // distinct materials across the batch
}

// Run imports every path using a worker pool. A file's failure never stops
// the rest of the batch. The returned error covers only the combined glTF
// export, which can fail after all files imported.
func Run(cfg Config, paths []string) (Summary, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	total := len(paths)
	results := make([]Result, total)
	nodes := make([]*scene.Node, total)
	cache := material.NewCache()
	transform := scene.AxisCorrection(cfg.Options.UpAxis)

	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f files/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	pathChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range pathChan {
				results[idx], nodes[idx] = importFile(cfg, paths[idx], cache, transform)
				processed.Add(1)
			}
		}()
	}

	for i := range paths {
		pathChan <- i
	}
	close(pathChan)

	wg.Wait()
	close(done)

	// Assemble the graph in input order from the successes
	g := &scene.Graph{}
	if cfg.Options.GroupIntoOne {
		g.Container = cfg.Options.ContainerName
	}
	if cfg.Options.CreateParent {
		g.Parent = cfg.Options.ParentName
	}
	for _, n := range nodes {
		if n != nil {
			g.Nodes = append(g.Nodes, *n)
		}
	}

	s := Summary{Results: results, Graph: g, Materials: cache.Len()}
	for _, r := range results {
		if r.Success {
			s.Imported++
		}
	}

	// Grouped batches export as a single combined scene file
	var exportErr error
	if cfg.Options.GroupIntoOne && len(g.Nodes) > 0 {
		name := g.Container
		if name == "" {
			name = "geo_batch"
		}
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			exportErr = err
		} else {
			exportErr = gltfexport.Save(gltfexport.Document(g), filepath.Join(cfg.OutputDir, name+gltfExt(cfg)), cfg.GLTFBinary)
		}
	}

	return s, exportErr
}

// importFile runs the per-file pipeline: decode, build, export, preview.
// Decode errors abort just this file; per-triangle build problems are
// absorbed into the skip count and the file still imports.
func importFile(cfg Config, path string, cache *material.Cache, transform mgl32.Mat4) (Result, *scene.Node) {
	res := Result{Path: path}

	model, err := geo.Parse(path)
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}

	obj := mesh.Build(model, cfg.Options.Scale, cache)
	res.Name = obj.Name
	res.Triangles = len(obj.Triangles)
	res.Skipped = obj.Skipped
	res.Materials = len(obj.Materials)

	node := &scene.Node{Name: obj.Name, Mesh: obj, Transform: transform}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	// Ungrouped batches export one scene file per input
	if !cfg.Options.GroupIntoOne {
		single := &scene.Graph{Nodes: []scene.Node{*node}}
		if cfg.Options.CreateParent {
			single.Parent = cfg.Options.ParentName
		}
		out := filepath.Join(cfg.OutputDir, stem+gltfExt(cfg))
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			res.Error = err.Error()
			return res, nil
		}
		if err := gltfexport.Save(gltfexport.Document(single), out, cfg.GLTFBinary); err != nil {
			res.Error = err.Error()
			return res, nil
		}
	}

	if cfg.Preview {
		if err := writePreview(cfg, obj, stem); err != nil {
			res.Error = err.Error()
			return res, nil
		}
	}

	res.Success = true
	return res, node
}

func writePreview(cfg Config, obj *mesh.Object, stem string) error {
	size := cfg.PreviewSize
	if size <= 0 {
		size = 256
	}
	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}

	img := raster.RenderMesh(obj, cfg.TexResolver, size, ss)
	if ss > 1 {
		img = raster.Downsample(img, size)
	}

	outPath := filepath.Join(cfg.OutputDir, "previews", stem+".webp")
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("webp encode %s: %w", outPath, err)
	}
	return nil
}

func gltfExt(cfg Config) string {
	if cfg.GLTFBinary {
		return ".glb"
	}
	return ".gltf"
}
