package rrm

import (
	"fmt"
	"os"
)

// Decode reconstructs a mesh from the raw contents of one RRM resource.
// It is a pure function of the input bytes: identical input yields an
// identical mesh. The only fatal conditions are an unreadable header and an
// empty index stream; truncated vertex data and missing UVs are reported in
// the mesh value instead.
func Decode(data []byte, opts Options) (*Mesh, error) {
	hdr, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	indices := DecodeIndices(data, hdr.IndexOffset, opts.Limits.IndexSentinel)
	if len(indices) == 0 {
		return nil, fmt.Errorf("rrm: index stream at 0x%X: %w", hdr.IndexOffset, ErrNoIndexData)
	}

	maxIndex := indices[0]
	for _, v := range indices {
		if v > maxIndex {
			maxIndex = v
		}
	}
	required := int(maxIndex) + 1

	verts := DecodeVertices(data, hdr.VertexOffset, required)

	// UV location works from the vertices actually read, not the count the
	// indices implied; a truncated vertex region shortens the UV set too.
	uvs, source := LocateUVs(data, len(verts), hdr.VertexOffset, opts.Limits)

	mesh := Assemble(verts, uvs, source, indices, opts)
	mesh.PartialVertices = len(verts) < required
	return &mesh, nil
}

// DecodeFile reads and decodes one resource file.
func DecodeFile(path string, opts Options) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rrm: read %s: %w", path, err)
	}
	mesh, err := Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}
