package rrm

import "errors"

// Vertex is a position in model space.
type Vertex [3]float32

// UV is a per-vertex texture coordinate pair.
type UV [2]float32

// Triangle holds three indices into the mesh vertex list.
type Triangle [3]uint32

// Mesh is the reconstructed geometry of one RRM resource.
type Mesh struct {
	Vertices  []Vertex
	UVs       []UV // nil when no texture coordinates were found; otherwise len(UVs) == len(Vertices)
	Triangles []Triangle

	UVSource UVStrategy // which probe produced the UVs, StrategyNone when UVs is nil

	// PartialVertices is set when the buffer ended before all referenced
	// vertices could be read. Triangles pointing past the end are dropped.
	PartialVertices bool
}

// HasUV reports whether texture coordinates were recovered.
func (m *Mesh) HasUV() bool { return m.UVs != nil }

var (
	// ErrFormat means the fixed header fields could not be read.
	ErrFormat = errors.New("header offsets unreadable")

	// ErrNoIndexData means the index stream was empty after truncation.
	ErrNoIndexData = errors.New("no index data")
)
