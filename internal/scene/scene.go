// Package scene holds the host-facing placement data a batch import
// produces: per-mesh nodes with an axis-correction transform, plus the
// grouping/parenting names a host scene graph consumes at link time.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"i76-geo-tools/internal/mesh"
)

// UpAxis selects the placement-time axis correction.
type UpAxis int

const (
	// AsStored keeps vertex data in the file's own axis convention (Z up).
	AsStored UpAxis = iota
	// YUp rotates nodes -90° about X at placement time.
	YUp
)

func (a UpAxis) String() string {
	if a == YUp {
		return "y-up"
	}
	return "as-stored"
}

// Options are the user-chosen batch import settings.
type Options struct {
	Scale         float32
	UpAxis        UpAxis
	GroupIntoOne  bool   // put all imported nodes in one container
	ContainerName string // used when GroupIntoOne
	CreateParent  bool   // parent all nodes under one created node
	ParentName    string
}

// DefaultOptions mirrors the historical importer defaults.
func DefaultOptions() Options {
	return Options{
		Scale:         1.0,
		UpAxis:        AsStored,
		GroupIntoOne:  true,
		ContainerName: "I76_GEO_Batch",
		CreateParent:  true,
		ParentName:    "I76_GEO_Parts",
	}
}

// Node is one imported mesh plus the transform a host applies at placement
// time. Vertex data itself is never rewritten for axis correction.
type Node struct {
	Name      string
	Mesh      *mesh.Object
	Transform mgl32.Mat4
}

// Graph is the batch's output: nodes in input order plus the optional
// container/parent names (empty when not requested).
type Graph struct {
	Container string
	Parent    string
	Nodes     []Node
}

// AxisCorrection returns the placement transform for the chosen up axis.
func AxisCorrection(a UpAxis) mgl32.Mat4 {
	if a == YUp {
		return mgl32.HomogRotate3DX(mgl32.DegToRad(-90))
	}
	return mgl32.Ident4()
}
