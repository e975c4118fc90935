// Package stl writes sliced surfaces as binary STL meshes.
package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
)

// Triangle is one facet of the mesh
type Triangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
}

// Heightfield triangulates a surface given per-cell X, Y and Z grids.
// Each grid cell whose four corners are all finite produces two triangles;
// cells touching a masked (NaN) corner are left open.
func Heightfield(x, y, z mat.Matrix) []Triangle {
	rows, cols := z.Dims()
	if rows < 2 || cols < 2 {
		return nil
	}

	vertex := func(i, j int) ([3]float32, bool) {
		vx, vy, vz := x.At(i, j), y.At(i, j), z.At(i, j)
		if math.IsNaN(vx) || math.IsNaN(vy) || math.IsNaN(vz) {
			return [3]float32{}, false
		}
		return [3]float32{float32(vx), float32(vy), float32(vz)}, true
	}

	var triangles []Triangle
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			a, okA := vertex(i, j)
			b, okB := vertex(i, j+1)
			c, okC := vertex(i+1, j)
			d, okD := vertex(i+1, j+1)
			if !okA || !okB || !okC || !okD {
				continue
			}
			triangles = append(triangles, NewTriangle(a, b, d), NewTriangle(a, d, c))
		}
	}
	return triangles
}

// NewTriangle builds a facet and derives its unit normal from the
// counter-clockwise winding of the vertices.
func NewTriangle(v1, v2, v3 [3]float32) Triangle {
	ux, uy, uz := v2[0]-v1[0], v2[1]-v1[1], v2[2]-v1[2]
	wx, wy, wz := v3[0]-v1[0], v3[1]-v1[1], v3[2]-v1[2]

	n := [3]float32{uy*wz - uz*wy, uz*wx - ux*wz, ux*wy - uy*wx}
	length := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if length > 0 {
		n[0] /= length
		n[1] /= length
		n[2] /= length
	}

	return Triangle{Normal: n, Vertex1: v1, Vertex2: v2, Vertex3: v3}
}

// Write encodes triangles as binary STL: an 80 byte header, a facet count
// and 50 bytes per facet.
func Write(w io.Writer, triangles []Triangle) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "strataslice binary STL")
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(triangles))); err != nil {
		return fmt.Errorf("failed to write facet count: %w", err)
	}

	for _, t := range triangles {
		facet := struct {
			Normal, V1, V2, V3 [3]float32
			Attribute          uint16
		}{t.Normal, t.Vertex1, t.Vertex2, t.Vertex3, 0}
		if err := binary.Write(bw, binary.LittleEndian, facet); err != nil {
			return fmt.Errorf("failed to write facet: %w", err)
		}
	}

	return bw.Flush()
}

// SaveToSTL writes triangles to filename
func SaveToSTL(filename string, triangles []Triangle) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := Write(file, triangles); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
