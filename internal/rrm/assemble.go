package rrm

import "math"

// Assemble merges the decoded pieces into the final mesh. Triangles naming a
// vertex the decoder never produced are dropped first. With UV data every
// vertex stays 1:1 with its original index, since identical positions can
// carry different UVs across a texture seam. Without UV data vertices are
// merged by position within an epsilon and triangles collapsing to a line or
// point under the merge are removed.
func Assemble(verts []Vertex, uvs []UV, uvSource UVStrategy, indices []uint32, opts Options) Mesh {
	tris := boundedTriangles(indices, len(verts))

	if uvs != nil {
		if opts.DropDegenerate {
			tris = dropDegenerate(tris)
		}
		return Mesh{
			Vertices:  verts,
			UVs:       sanitizeUVs(uvs),
			Triangles: tris,
			UVSource:  uvSource,
		}
	}

	merged, remap := mergeVertices(verts, opts.Limits.MergeEpsilon)
	for i, t := range tris {
		tris[i] = Triangle{remap[t[0]], remap[t[1]], remap[t[2]]}
	}
	return Mesh{
		Vertices:  merged,
		Triangles: dropDegenerate(tris),
	}
}

// boundedTriangles groups the index stream into triples, discarding any
// triangle that references a vertex beyond what the decoder returned.
func boundedTriangles(indices []uint32, vertexCount int) []Triangle {
	tris := make([]Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= vertexCount || int(b) >= vertexCount || int(c) >= vertexCount {
			continue
		}
		tris = append(tris, Triangle{a, b, c})
	}
	return tris
}

// mergeVertices collapses positions matching within eps per axis. Each vertex
// is checked against the accepted unique set in insertion order; the first
// match wins and the first occurrence defines the kept position.
func mergeVertices(verts []Vertex, eps float32) ([]Vertex, []uint32) {
	unique := make([]Vertex, 0, len(verts))
	remap := make([]uint32, len(verts))
	for i, v := range verts {
		found := false
		for j, u := range unique {
			if absf(v[0]-u[0]) <= eps && absf(v[1]-u[1]) <= eps && absf(v[2]-u[2]) <= eps {
				remap[i] = uint32(j)
				found = true
				break
			}
		}
		if !found {
			remap[i] = uint32(len(unique))
			unique = append(unique, v)
		}
	}
	return unique, remap
}

func dropDegenerate(tris []Triangle) []Triangle {
	kept := tris[:0]
	for _, t := range tris {
		if t[0] == t[1] || t[1] == t[2] || t[2] == t[0] {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// sanitizeUVs replaces non-finite components with (0,0) pairs so downstream
// writers never see NaN or Inf.
func sanitizeUVs(uvs []UV) []UV {
	out := make([]UV, len(uvs))
	for i, uv := range uvs {
		if finite(uv[0]) && finite(uv[1]) {
			out[i] = uv
		}
	}
	return out
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
