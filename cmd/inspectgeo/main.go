package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"

	"i76-geo-tools/internal/geo"
)

func main() {
	faces := flag.Bool("faces", false, "Dump every face, not just the texture summary")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: inspectgeo [-faces] file.geo [file2.geo ...]")
		os.Exit(1)
	}

	for _, arg := range flag.Args() {
		m, err := geo.Parse(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			continue
		}

		fmt.Printf("\n=== %s ===\n", arg)
		fmt.Printf("tag=%s name=%q verts=%d faces=%d trailing=%d\n",
			printableTag(m.Tag), m.Name, len(m.Vertices), len(m.Faces), m.Trailing)

		if len(m.Vertices) > 0 {
			minV, maxV := m.Vertices[0], m.Vertices[0]
			for _, v := range m.Vertices[1:] {
				for k := 0; k < 3; k++ {
					if v[k] < minV[k] {
						minV[k] = v[k]
					}
					if v[k] > maxV[k] {
						maxV[k] = v[k]
					}
				}
			}
			fmt.Printf("bbox min=(%.2f,%.2f,%.2f) max=(%.2f,%.2f,%.2f) span=(%.2f,%.2f,%.2f)\n",
				minV[0], minV[1], minV[2], maxV[0], maxV[1], maxV[2],
				maxV[0]-minV[0], maxV[1]-minV[1], maxV[2]-minV[2])
		}

		// Per-texture face/corner stats and index health
		type texStat struct {
			faces      int
			corners    int
			degenerate int // faces with fewer than 3 corners
			outOfRange int // corners indexing past the vertex array
		}
		stats := make(map[string]*texStat)
		for _, f := range m.Faces {
			st := stats[f.TextureName]
			if st == nil {
				st = &texStat{}
				stats[f.TextureName] = st
			}
			st.faces++
			st.corners += len(f.Corners)
			if len(f.Corners) < 3 {
				st.degenerate++
			}
			for _, c := range f.Corners {
				if c.VertexIndex < 0 || c.VertexIndex >= len(m.Vertices) {
					st.outOfRange++
				}
			}
		}

		names := make([]string, 0, len(stats))
		for name := range stats {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			st := stats[name]
			line := fmt.Sprintf("  tex %-13q faces=%-4d corners=%d", name, st.faces, st.corners)
			if st.degenerate > 0 {
				line += fmt.Sprintf(" degenerate=%d", st.degenerate)
			}
			if st.outOfRange > 0 {
				line += fmt.Sprintf(" out-of-range=%d", st.outOfRange)
			}
			fmt.Println(line)
		}

		if *faces {
			for i, f := range m.Faces {
				fmt.Printf("  face[%d] tex=%q corners=%d:", i, f.TextureName, len(f.Corners))
				for _, c := range f.Corners {
					fmt.Printf(" %d/%d(%.3f,%.3f)", c.VertexIndex, c.NormalIndex, c.UV[0], c.UV[1])
				}
				fmt.Println()
			}
		}

		// Stored normals are unused downstream; flag obviously junk ones here
		bad := 0
		for _, n := range m.Normals {
			l := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
			if l < 0.5 || l > 2.0 {
				bad++
			}
		}
		if bad > 0 {
			fmt.Printf("  normals: %d/%d far from unit length\n", bad, len(m.Normals))
		}
	}
}

// printableTag shows the offset-0 tag as ASCII where possible.
func printableTag(tag [4]byte) string {
	out := make([]byte, 0, 4)
	for _, b := range tag {
		if b >= 0x20 && b < 0x7f {
			out = append(out, b)
		} else if b == 0 {
			out = append(out, '.')
		} else {
			return fmt.Sprintf("%02x%02x%02x%02x", tag[0], tag[1], tag[2], tag[3])
		}
	}
	return string(out)
}
