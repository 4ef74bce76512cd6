package rrm

import (
	"encoding/binary"
	"math"
	"testing"
)

// newBuffer returns a buffer filled with 0xFF bytes. Reinterpreted as
// float32s those are NaN, so the run scanner sees no data until a test
// plants some.
func newBuffer(size int) []byte {
	b := make([]byte, size)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}

func putU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:], v)
}

func putF32(b []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
}

// buildFile lays out a minimal synthetic resource: header offsets at
// 0xB0/0xB4, the index stream at indexOff, packed positions at vertexOff.
func buildFile(size int, indexOff, vertexOff uint32, indices []uint32, verts []Vertex) []byte {
	b := newBuffer(size)
	putU32(b, indexOffsetField, indexOff)
	putU32(b, vertexOffsetField, vertexOff)
	for i, v := range indices {
		putU32(b, int(indexOff)+i*4, v)
	}
	for i, v := range verts {
		base := int(vertexOff) + i*vertexStride
		putF32(b, base, v[0])
		putF32(b, base+4, v[1])
		putF32(b, base+8, v[2])
	}
	return b
}

func TestReadHeader(t *testing.T) {
	b := newBuffer(0x100)
	putU32(b, indexOffsetField, 0x1000)
	putU32(b, vertexOffsetField, 0x2000)

	hdr, err := ReadHeader(b)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if hdr.IndexOffset != 0x1000 || hdr.VertexOffset != 0x2000 {
		t.Errorf("got offsets 0x%X/0x%X, want 0x1000/0x2000", hdr.IndexOffset, hdr.VertexOffset)
	}
}

func TestReadHeaderShortBuffer(t *testing.T) {
	for _, size := range []int{0, 0xB0, 0xB4, 0xB7} {
		if _, err := ReadHeader(newBuffer(size)); err == nil {
			t.Errorf("size %d: expected error", size)
		}
	}
}

func TestDecodeIndicesSentinel(t *testing.T) {
	// Scenario: 0,1,2 then a value past the sentinel ends the stream.
	b := newBuffer(64)
	for i, v := range []uint32{0, 1, 2, 200000} {
		putU32(b, i*4, v)
	}
	got := DecodeIndices(b, 0, DefaultLimits().IndexSentinel)
	want := []uint32{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDecodeIndicesTruncatesPartialTriangle(t *testing.T) {
	b := newBuffer(64)
	for i, v := range []uint32{0, 1, 2, 3, 4, 999999} {
		putU32(b, i*4, v)
	}
	got := DecodeIndices(b, 0, DefaultLimits().IndexSentinel)
	if len(got) != 3 {
		t.Fatalf("got %d indices, want 3 (trailing partial triangle dropped)", len(got))
	}
}

func TestDecodeIndicesOffsetBeyondBuffer(t *testing.T) {
	if got := DecodeIndices(newBuffer(16), 1000, 100000); len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestDecodeVertices(t *testing.T) {
	b := newBuffer(64)
	want := []Vertex{{1, 2, 3}, {4, 5, 6}}
	for i, v := range want {
		putF32(b, i*12, v[0])
		putF32(b, i*12+4, v[1])
		putF32(b, i*12+8, v[2])
	}
	got := DecodeVertices(b, 0, 2)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDecodeVerticesUnderrun(t *testing.T) {
	// Room for only two full records.
	b := newBuffer(30)
	got := DecodeVertices(b, 0, 5)
	if len(got) != 2 {
		t.Fatalf("got %d vertices, want 2", len(got))
	}
}
