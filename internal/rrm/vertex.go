package rrm

import (
	"encoding/binary"
	"math"
)

// vertexStride is the size of one packed position record (x, y, z float32).
const vertexStride = 12

// DecodeVertices reads count position records starting at off. The count is
// derived from the index stream, not stored in the file, so the buffer may
// run out first; in that case the returned slice is shorter than count and
// the caller drops triangles referencing the missing tail.
func DecodeVertices(data []byte, off uint32, count int) []Vertex {
	verts := make([]Vertex, 0, count)
	for i := 0; i < count; i++ {
		base := int(off) + i*vertexStride
		if base < 0 || base+vertexStride > len(data) {
			break
		}
		verts = append(verts, Vertex{
			math.Float32frombits(binary.LittleEndian.Uint32(data[base:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[base+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[base+8:])),
		})
	}
	return verts
}
