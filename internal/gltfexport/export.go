// Package gltfexport writes built meshes out as glTF 2.0 so modern content
// tools can consume batch-import results without a live host integration.
package gltfexport

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"i76-geo-tools/internal/mesh"
	"i76-geo-tools/internal/scene"
)

// Document builds a glTF document from a batch scene graph: one glTF mesh
// per node, nodes carrying their placement transforms, optionally all
// parented under one extra node when the graph names a parent.
//
// GEO corners carry their own UVs, so vertex data is unwelded: every
// triangle contributes three positions/UVs to its material's primitive.
func Document(g *scene.Graph) *gltf.Document {
	doc := gltf.NewDocument()
	if g.Container != "" {
		doc.Scenes[0].Name = g.Container
	}

	matIndex := make(map[string]uint32)

	var children []uint32
	for _, node := range g.Nodes {
		meshIdx := writeMesh(doc, node.Mesh, matIndex)
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:   node.Name,
			Mesh:   gltf.Index(meshIdx),
			Matrix: matrix(node.Transform),
		})
		children = append(children, uint32(len(doc.Nodes)-1))
	}

	if g.Parent != "" {
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:     g.Parent,
			Children: children,
			Matrix:   matrix(mgl32.Ident4()),
		})
		doc.Scenes[0].Nodes = []uint32{uint32(len(doc.Nodes) - 1)}
	} else {
		doc.Scenes[0].Nodes = children
	}

	return doc
}

// Save writes a document as .gltf with an external binary buffer, or .glb
// when binary is set.
func Save(doc *gltf.Document, path string, binary bool) error {
	var err error
	if binary {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("gltfexport: save %s: %w", path, err)
	}
	return nil
}

// writeMesh appends one glTF mesh, grouping triangles into one primitive
// per material. Materials dedupe across nodes by texture name, matching the
// batch material cache contract.
func writeMesh(doc *gltf.Document, obj *mesh.Object, matIndex map[string]uint32) uint32 {
	gm := &gltf.Mesh{Name: obj.Name}

	// Triangles per local material slot, preserving slot order
	bySlot := make([][]mesh.Triangle, len(obj.Materials))
	for _, tri := range obj.Triangles {
		bySlot[tri.Material] = append(bySlot[tri.Material], tri)
	}

	for slot, tris := range bySlot {
		if len(tris) == 0 {
			continue
		}

		positions := make([][3]float32, 0, len(tris)*3)
		uvs := make([][2]float32, 0, len(tris)*3)
		indices := make([]uint32, 0, len(tris)*3)
		for _, tri := range tris {
			for c := 0; c < 3; c++ {
				positions = append(positions, obj.Positions[tri.V[c]])
				uvs = append(uvs, tri.UV[c])
				indices = append(indices, uint32(len(indices)))
			}
		}

		name := obj.Materials[slot].Name
		mi, ok := matIndex[name]
		if !ok {
			doc.Materials = append(doc.Materials, pbrMaterial(name))
			mi = uint32(len(doc.Materials) - 1)
			matIndex[name] = mi
		}

		gm.Primitives = append(gm.Primitives, &gltf.Primitive{
			Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: map[string]uint32{
				"POSITION":   modeler.WritePosition(doc, positions),
				"TEXCOORD_0": modeler.WriteTextureCoord(doc, uvs),
			},
			Material: gltf.Index(mi),
		})
	}

	doc.Meshes = append(doc.Meshes, gm)
	return uint32(len(doc.Meshes) - 1)
}

func pbrMaterial(name string) *gltf.Material {
	metallic := 0.0
	roughness := 0.9
	return &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{0.8, 0.8, 0.8, 1},
			MetallicFactor:  &metallic,
			RoughnessFactor: &roughness,
		},
		DoubleSided: true,
	}
}

// matrix converts a column-major mathgl transform to the glTF node matrix.
func matrix(m mgl32.Mat4) [16]float64 {
	var out [16]float64
	for i, v := range m {
		out[i] = float64(v)
	}
	return out
}
