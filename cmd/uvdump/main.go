// uvdump exports every candidate UV interpretation of one RRM file as
// separate OBJ/MTL pairs for side-by-side inspection: the legacy interleaved
// stream and the packed block read as each of its two 2-float channels.
// Unlike the production path, nothing is filtered: degenerate triangles stay
// and no plausibility check runs.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"rrm-mesh-tools/internal/obj"
	"rrm-mesh-tools/internal/rrm"
	"rrm-mesh-tools/internal/texture"
)

func main() {
	outDir := flag.String("out", "", "output directory for the variants (required)")
	flag.Parse()
	if flag.NArg() != 1 || *outDir == "" {
		log.Fatalf("usage: uvdump -out DIR file.rrm")
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("%v", err)
	}

	lim := rrm.DefaultLimits()
	hdr, err := rrm.ReadHeader(data)
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}
	indices := rrm.DecodeIndices(data, hdr.IndexOffset, lim.IndexSentinel)
	if len(indices) == 0 {
		log.Fatalf("%s: no indices found", path)
	}
	maxIndex := indices[0]
	for _, v := range indices {
		if v > maxIndex {
			maxIndex = v
		}
	}
	verts := rrm.DecodeVertices(data, hdr.VertexOffset, int(maxIndex)+1)

	sets := rrm.AllUVSets(data, len(verts))
	if len(sets) == 0 {
		log.Fatalf("%s: no UV candidate fits the buffer", path)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("%v", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	texName := ""
	if src, ok := texture.FindSidecar(path); ok {
		texName = texture.Convert(src, *outDir, stem, texture.FormatCopy)
	}

	for _, set := range sets {
		mesh := rrm.Assemble(verts, set.UVs, set.Source, indices, rrm.DefaultOptions())
		name := stem + "_" + set.Label
		objPath := filepath.Join(*outDir, name+".obj")
		mtlPath := filepath.Join(*outDir, name+".mtl")
		if err := obj.WriteFile(objPath, mtlPath, &mesh, texName); err != nil {
			log.Fatalf("%v", err)
		}
		log.Infof("wrote %s (verts=%d tris=%d)", objPath, len(mesh.Vertices), len(mesh.Triangles))
	}
}
