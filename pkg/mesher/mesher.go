// Package mesher evaluates a combined CSG expression over a bounded
// region into a triangle mesh. The Engine interface is the seam to the
// meshing backend; MarchingCubes is the sdfx-based implementation.
package mesher

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Engine turns a CSG expression into a mesh. Implementations are treated
// as pure, potentially expensive, synchronous functions.
type Engine interface {
	// Evaluate meshes expr over the axis-aligned region [min, max] at the
	// given cell resolution. A nil expr yields an empty mesh.
	Evaluate(expr sdf.SDF3, min, max v3.Vec, cells int) (*Mesh, error)
}

// defaultCells controls marching cubes tessellation resolution when the
// caller passes a non-positive cell count.
const defaultCells = 200

// Compile-time interface check.
var _ Engine = (*MarchingCubes)(nil)

// MarchingCubes implements Engine with sdfx's uniform marching cubes
// renderer.
type MarchingCubes struct{}

// NewMarchingCubes returns a marching cubes engine.
func NewMarchingCubes() *MarchingCubes {
	return &MarchingCubes{}
}

// Evaluate clips expr to the requested region and runs marching cubes.
// Panics from the expression or the renderer are caught and reported as
// errors so a bad expression never takes down the caller.
func (e *MarchingCubes) Evaluate(expr sdf.SDF3, min, max v3.Vec, cells int) (m *Mesh, err error) {
	if expr == nil {
		return &Mesh{}, nil
	}
	if max.X <= min.X || max.Y <= min.Y || max.Z <= min.Z {
		return nil, fmt.Errorf("mesher: empty region min=%v max=%v", min, max)
	}
	if cells <= 0 {
		cells = defaultCells
	}

	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("mesher: evaluation panic: %v", r)
		}
	}()

	region, err := sdf.Box3D(v3.Vec{
		X: max.X - min.X,
		Y: max.Y - min.Y,
		Z: max.Z - min.Z,
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("mesher: region: %w", err)
	}
	center := v3.Vec{
		X: (min.X + max.X) / 2,
		Y: (min.Y + max.Y) / 2,
		Z: (min.Z + max.Z) / 2,
	}
	clipped := sdf.Intersect3D(expr, sdf.Transform3D(region, sdf.Translate3d(center)))

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(clipped, renderer)

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
