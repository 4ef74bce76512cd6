// inspectrrm prints what the decoder sees in one RRM file: header offsets,
// index stream statistics and the UV strategy that wins. Useful when a new
// format revision defeats the heuristics.
package main

import (
	"flag"
	"fmt"
	"os"

	"rrm-mesh-tools/internal/rrm"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspectrrm file.rrm")
		os.Exit(1)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("File: %s (%d bytes)\n", path, len(data))

	lim := rrm.DefaultLimits()
	hdr, err := rrm.ReadHeader(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Index buffer offset : %#x (%d)\n", hdr.IndexOffset, hdr.IndexOffset)
	fmt.Printf("Vertex buffer offset: %#x (%d)\n", hdr.VertexOffset, hdr.VertexOffset)

	indices := rrm.DecodeIndices(data, hdr.IndexOffset, lim.IndexSentinel)
	fmt.Printf("Indices             : %d (%d triangles)\n", len(indices), len(indices)/3)
	if len(indices) == 0 {
		fmt.Println("No index data; nothing further to inspect.")
		os.Exit(1)
	}

	maxIndex := indices[0]
	for _, v := range indices {
		if v > maxIndex {
			maxIndex = v
		}
	}
	fmt.Printf("Max index           : %d (vertex count %d)\n", maxIndex, maxIndex+1)

	verts := rrm.DecodeVertices(data, hdr.VertexOffset, int(maxIndex)+1)
	fmt.Printf("Vertices read       : %d", len(verts))
	if len(verts) < int(maxIndex)+1 {
		fmt.Print("  (buffer truncated)")
	}
	fmt.Println()

	uvs, source := rrm.LocateUVs(data, len(verts), hdr.VertexOffset, lim)
	fmt.Printf("UV strategy         : %s\n", source)
	if uvs != nil {
		fmt.Printf("UV pairs            : %d\n", len(uvs))
	}

	mesh, err := rrm.Decode(data, rrm.DefaultOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Final mesh          : verts=%d tris=%d uv=%v\n",
		len(mesh.Vertices), len(mesh.Triangles), mesh.HasUV())
}
