// obj2rrm packs OBJ vertex positions into the minimal positions-only RRM
// extract. This is not an inverse of rrm2obj: indices, UVs and the original
// header are gone for good. Sidecar material and texture files are carried
// along beside the output.
package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"rrm-mesh-tools/internal/obj"
	"rrm-mesh-tools/internal/rrm"
	"rrm-mesh-tools/internal/texture"
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		log.Fatalf("usage: obj2rrm in.obj [out.rrm]")
	}
	inPath := flag.Arg(0)
	outPath := flag.Arg(1)
	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".rrm"
	}

	verts, err := obj.ReadPositionsFile(inPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if len(verts) == 0 {
		log.Fatalf("%s: no vertices found", inPath)
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := rrm.EncodePositions(out, verts); err != nil {
		out.Close()
		log.Fatalf("%v", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("%v", err)
	}
	log.Infof("wrote %d vertices to %s", len(verts), outPath)

	outDir := filepath.Dir(outPath)
	stem := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))

	// Carry the texture back beside the output, unconverted.
	if src, ok := texture.FindSidecar(inPath); ok {
		if name := texture.Convert(src, outDir, stem, texture.FormatCopy); name != "" {
			log.Infof("copied texture %s", name)
		}
	}
	mtlSrc := strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".mtl"
	if _, err := os.Stat(mtlSrc); err == nil {
		if err := copyFile(mtlSrc, filepath.Join(outDir, stem+".mtl")); err != nil {
			log.Errorf("copy mtl: %v", err)
		}
	}
}

func copyFile(src, dst string) error {
	if src == dst {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
