package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAxisCorrectionAsStored(t *testing.T) {
	if AxisCorrection(AsStored) != mgl32.Ident4() {
		t.Error("as-stored must be the identity transform")
	}
}

func TestAxisCorrectionYUp(t *testing.T) {
	m := AxisCorrection(YUp)

	// -90° about X sends +Y (file "up") to -Z
	v := m.Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	want := mgl32.Vec4{0, 0, -1, 1}
	for i := 0; i < 4; i++ {
		if math.Abs(float64(v[i]-want[i])) > 1e-6 {
			t.Fatalf("rotated = %v, want %v", v, want)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.Scale != 1.0 || o.UpAxis != AsStored {
		t.Errorf("defaults = %+v", o)
	}
	if !o.GroupIntoOne || o.ContainerName == "" {
		t.Error("batches group into a named container by default")
	}
	if !o.CreateParent || o.ParentName == "" {
		t.Error("batches create a named parent by default")
	}
}
