// Package obj writes decoded meshes as Wavefront OBJ/MTL pairs and reads
// positions back for the reverse path.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"rrm-mesh-tools/internal/rrm"
)

// Write emits the mesh as OBJ text. Faces reference texture coordinates only
// when the mesh carries them; non-finite UV pairs are written as 0.0 0.0.
// Indices are 1-based per the OBJ convention.
func Write(w io.Writer, mesh *rrm.Mesh, mtlName string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "mtllib %s\n", mtlName)
	fmt.Fprintln(bw, "usemtl material0")

	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v[0], v[1], v[2])
	}
	if mesh.HasUV() {
		for _, uv := range mesh.UVs {
			if isFinite(uv[0]) && isFinite(uv[1]) {
				fmt.Fprintf(bw, "vt %.6f %.6f\n", uv[0], uv[1])
			} else {
				fmt.Fprintln(bw, "vt 0.0 0.0")
			}
		}
	}
	for _, t := range mesh.Triangles {
		a, b, c := t[0]+1, t[1]+1, t[2]+1
		if mesh.HasUV() {
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("obj: write: %w", err)
	}
	return nil
}

// WriteFile writes the OBJ and its MTL side by side.
func WriteFile(objPath, mtlPath string, mesh *rrm.Mesh, textureName string) error {
	f, err := os.Create(objPath)
	if err != nil {
		return fmt.Errorf("obj: create %s: %w", objPath, err)
	}
	defer f.Close()

	if err := Write(f, mesh, filepath.Base(mtlPath)); err != nil {
		return err
	}
	return WriteMTLFile(mtlPath, textureName)
}

// WriteMTL emits a single flat material, referencing textureName via map_Kd
// when one exists.
func WriteMTL(w io.Writer, textureName string) error {
	_, err := fmt.Fprintf(w, `newmtl material0
Ka 1.000 1.000 1.000
Kd 1.000 1.000 1.000
Ks 0.000 0.000 0.000
d 1.0
illum 1
`)
	if err == nil && textureName != "" {
		_, err = fmt.Fprintf(w, "map_Kd %s\n", textureName)
	}
	if err != nil {
		return fmt.Errorf("obj: write mtl: %w", err)
	}
	return nil
}

// WriteMTLFile writes the material file to disk.
func WriteMTLFile(path, textureName string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("obj: create %s: %w", path, err)
	}
	defer f.Close()
	return WriteMTL(f, textureName)
}

func isFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
