package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"rrm-mesh-tools/internal/rrm"
)

// ReadPositions scans OBJ text for "v" lines and returns the positions.
// Everything else is ignored; malformed vertex lines are skipped rather than
// failing the whole file, since exported OBJs in the wild carry all sorts of
// junk.
func ReadPositions(r io.Reader) ([]rrm.Vertex, error) {
	var verts []rrm.Vertex

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] != "v" {
			continue
		}
		x, errX := strconv.ParseFloat(fields[1], 32)
		y, errY := strconv.ParseFloat(fields[2], 32)
		z, errZ := strconv.ParseFloat(fields[3], 32)
		if errX != nil || errY != nil || errZ != nil {
			continue
		}
		verts = append(verts, rrm.Vertex{float32(x), float32(y), float32(z)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: scan: %w", err)
	}
	return verts, nil
}

// ReadPositionsFile reads vertex positions from an OBJ file.
func ReadPositionsFile(path string) ([]rrm.Vertex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPositions(f)
}
