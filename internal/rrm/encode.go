package rrm

import (
	"encoding/binary"
	"fmt"
	"io"
)

// encodeMagic tags a positions-only extract. This is not the original file
// magic; files written here cannot be fed back through Decode.
var encodeMagic = [8]byte{'R', 'R', 'M', 'E', 'X', 'T', 'R', 0}

// EncodePositions writes the minimal reverse-path format: an 8-byte magic
// tag, a little-endian u32 vertex count, then tightly packed float32 triples.
// Indices, UVs and the original header are not reconstructed; the round trip
// is deliberately lossy.
func EncodePositions(w io.Writer, verts []Vertex) error {
	if len(verts) == 0 {
		return fmt.Errorf("rrm: no vertices to encode")
	}
	if _, err := w.Write(encodeMagic[:]); err != nil {
		return fmt.Errorf("rrm: write magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(verts))); err != nil {
		return fmt.Errorf("rrm: write count: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, verts); err != nil {
		return fmt.Errorf("rrm: write vertices: %w", err)
	}
	return nil
}
