package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"i76-geo-tools/internal/batch"
	"i76-geo-tools/internal/config"
	"i76-geo-tools/internal/scene"
	"i76-geo-tools/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	textureDir := flag.String("textures", "", "Directory of extracted game textures (optional)")
	outputDir := flag.String("out", "", "Output directory (default: geo-export)")
	scale := flag.Float64("scale", 0, "Uniform scale applied to vertex positions (default: 1.0)")
	upAxis := flag.String("up", "", "Up axis: as-stored or y-up (default: as-stored)")
	flat := flag.Bool("flat", false, "Export one scene file per input instead of one combined scene")
	noParent := flag.Bool("no-parent", false, "Do not parent imported nodes under one node")
	container := flag.String("collection", "", "Combined scene name (default: I76_GEO_Batch)")
	parent := flag.String("parent", "", "Parent node name (default: I76_GEO_Parts)")
	glb := flag.Bool("glb", false, "Write binary .glb instead of .gltf")
	preview := flag.Bool("preview", false, "Render a WebP preview per imported file")
	previewSize := flag.Int("size", 0, "Preview size in pixels (default: 256)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		TextureDir:    *textureDir,
		OutputDir:     *outputDir,
		Scale:         *scale,
		UpAxis:        *upAxis,
		ContainerName: *container,
		ParentName:    *parent,
		Workers:       *workers,
	})
	if *glb {
		cfg.Binary = true
	}
	if *preview {
		cfg.Preview = true
	}
	if *previewSize > 0 {
		cfg.PreviewSize = *previewSize
	}

	paths, err := collectPaths(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: geoimport [flags] file.geo [file2.geo ...|dir]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	up, err := parseUpAxis(cfg.UpAxis)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := scene.Options{
		Scale:         float32(cfg.Scale),
		UpAxis:        up,
		GroupIntoOne:  cfg.Grouped() && !*flat,
		ContainerName: cfg.ContainerName,
		CreateParent:  cfg.Parented() && !*noParent,
		ParentName:    cfg.ParentName,
	}

	// Texture index for previews
	var texResolver texture.Resolver
	if cfg.Preview {
		texIndex := texture.BuildIndex(cfg.TextureDir)
		texResolver = texture.NewCache(texIndex)
		fmt.Printf("Textures: %d indexed\n", texIndex.Len())
	}

	fmt.Printf("Interstate '76 GEO importer\n")
	fmt.Printf("Files: %d, Workers: %d, Scale: %g, Up: %s\n", len(paths), cfg.Workers, cfg.Scale, up)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()

	summary, err := batch.Run(batch.Config{
		Options:     opts,
		OutputDir:   cfg.OutputDir,
		GLTFBinary:  cfg.Binary,
		Preview:     cfg.Preview,
		PreviewSize: cfg.PreviewSize,
		Supersample: cfg.Supersample,
		TexResolver: texResolver,
		Workers:     cfg.Workers,
	}, paths)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())
	fmt.Printf("Imported: %d/%d (%d materials)\n", summary.Imported, len(paths), summary.Materials)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: scene export: %v\n", err)
	}

	failed := 0
	for _, r := range summary.Results {
		if !r.Success {
			failed++
		}
	}
	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, r := range summary.Results {
			if !r.Success {
				fmt.Printf("  %s: %s\n", r.Path, r.Error)
			}
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, summary, cfg.Preview); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 || err != nil {
		os.Exit(1)
	}
}

// collectPaths expands directory arguments to the .geo files inside them.
func collectPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".geo") {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}

func parseUpAxis(s string) (scene.UpAxis, error) {
	switch strings.ToLower(s) {
	case "", "as-stored", "z":
		return scene.AsStored, nil
	case "y-up", "y":
		return scene.YUp, nil
	}
	return scene.AsStored, fmt.Errorf("unknown up axis %q (want as-stored or y-up)", s)
}
