package rrm

import (
	"encoding/binary"
	"fmt"
)

// Fixed header field positions. The rest of the header is unknown and not
// interpreted; everything else in the file is located heuristically.
const (
	indexOffsetField  = 0xB0
	vertexOffsetField = 0xB4
)

// Header holds the two known fields of the RRM header.
type Header struct {
	IndexOffset  uint32 // absolute offset of the index stream
	VertexOffset uint32 // absolute offset of the vertex position array
}

// ReadHeader reads the index and vertex buffer offsets from their fixed
// positions. It fails if the buffer is too short to contain them.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < vertexOffsetField+4 {
		return Header{}, fmt.Errorf("rrm: buffer too short (%d bytes): %w", len(data), ErrFormat)
	}
	return Header{
		IndexOffset:  binary.LittleEndian.Uint32(data[indexOffsetField:]),
		VertexOffset: binary.LittleEndian.Uint32(data[vertexOffsetField:]),
	}, nil
}
