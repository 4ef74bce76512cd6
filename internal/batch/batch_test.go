package batch

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rrm-mesh-tools/internal/rrm"
)

// writeTestRRM creates a minimal decodable resource: header offsets at
// 0xB0/0xB4, a three-index stream and three positions. NaN fill keeps the
// UV run scanner quiet.
func writeTestRRM(t *testing.T, path string) {
	t.Helper()
	b := make([]byte, 0x400)
	for i := range b {
		b[i] = 0xFF
	}
	binary.LittleEndian.PutUint32(b[0xB0:], 0x100)
	binary.LittleEndian.PutUint32(b[0xB4:], 0x200)
	for i, v := range []uint32{0, 1, 2, 999999} {
		binary.LittleEndian.PutUint32(b[0x100+i*4:], v)
	}
	coords := []float32{100, 0, 0, 0, 100, 0, 0, 0, 100}
	for i, v := range coords {
		binary.LittleEndian.PutUint32(b[0x200+i*4:], math.Float32bits(v))
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		t.Fatal(err)
	}
}

func testConfig(in, out string) Config {
	return Config{
		InputDir:      in,
		OutputDir:     out,
		TextureFormat: "copy",
		Workers:       2,
		Options:       rrm.DefaultOptions(),
	}
}

func TestProcessFile(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	path := filepath.Join(in, "model.rrm")
	writeTestRRM(t, path)

	res := ProcessFile(testConfig(in, out), path)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Vertices != 3 || res.Triangles != 1 || res.HasUV {
		t.Errorf("res = %+v", res)
	}
	for _, name := range []string{"model.obj", "model.mtl"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestProcessFileCopiesSidecarTexture(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	path := filepath.Join(in, "model.rrm")
	writeTestRRM(t, path)
	if err := os.WriteFile(filepath.Join(in, "model.dds"), []byte("fake dds"), 0644); err != nil {
		t.Fatal(err)
	}

	res := ProcessFile(testConfig(in, out), path)
	if res.Texture != "model.dds" {
		t.Fatalf("texture = %q, want model.dds", res.Texture)
	}
	mtl, err := os.ReadFile(filepath.Join(out, "model.mtl"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(mtl), "map_Kd model.dds") {
		t.Errorf("mtl does not reference the texture:\n%s", mtl)
	}
}

func TestProcessFileEmitsTextureVariants(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	path := filepath.Join(in, "model.rrm")
	writeTestRRM(t, path)
	for _, name := range []string{"model.dds", "model_alt.dds"} {
		if err := os.WriteFile(filepath.Join(in, name), []byte("fake dds"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	res := ProcessFile(testConfig(in, out), path)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Texture != "model.dds" {
		t.Fatalf("texture = %q, want model.dds", res.Texture)
	}
	if len(res.Variants) != 1 || res.Variants[0] != "model_alt.obj" {
		t.Fatalf("variants = %v, want [model_alt.obj]", res.Variants)
	}
	for _, name := range []string{
		"model.obj", "model.mtl", "model.dds",
		"model_alt.obj", "model_alt.mtl", "model_alt.dds",
	} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
	mtl, err := os.ReadFile(filepath.Join(out, "model_alt.mtl"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(mtl), "map_Kd model_alt.dds") {
		t.Errorf("variant mtl does not reference its texture:\n%s", mtl)
	}
}

func TestWatchConvertsNewFiles(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	cfg := testConfig(in, out)

	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- Watch(cfg, stop) }()

	// Give the watcher a moment to register before the file lands.
	time.Sleep(100 * time.Millisecond)
	writeTestRRM(t, filepath.Join(in, "model.rrm"))

	objPath := filepath.Join(out, "model.obj")
	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(objPath); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("model.obj never appeared")
		}
		time.Sleep(50 * time.Millisecond)
	}

	close(stop)
	if err := <-done; err != nil {
		t.Fatalf("Watch: %v", err)
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	writeTestRRM(t, filepath.Join(in, "good.rrm"))
	// Too short for the header: fatal for this file only.
	if err := os.WriteFile(filepath.Join(in, "bad.rrm"), []byte("tiny"), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := ListInputs(in)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("found %d inputs, want 2", len(files))
	}

	results := Run(testConfig(in, out), files)
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	// ListInputs sorts, so bad.rrm is first.
	if results[0].Error == "" {
		t.Error("bad.rrm should have failed")
	}
	if results[1].Error != "" {
		t.Errorf("good.rrm failed: %s", results[1].Error)
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	results := []Result{
		{Name: "a.rrm", OutputFile: "a.obj", Vertices: 10, Triangles: 4},
		{Name: "b.rrm", Error: "no index data"},
	}

	if err := WriteManifest(path, "Input", results); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest not valid JSON: %v", err)
	}
	if m.Converted != 1 || m.Failed != 1 || len(m.Files) != 2 {
		t.Errorf("manifest = %+v", m)
	}
}
