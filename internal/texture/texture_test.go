package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestConvertPNGToWebP(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "model.png")
	writeTestPNG(t, src)

	name := Convert(src, dir, "model", FormatWebP)
	if name != "model.webp" {
		t.Fatalf("got %q, want model.webp", name)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestConvertUndecodableFallsBackToCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "model.dds")
	if err := os.WriteFile(src, []byte("DDS \x7c\x00\x00\x00 not really"), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatal(err)
	}
	name := Convert(src, out, "model", FormatPNG)
	if name != "model.dds" {
		t.Fatalf("got %q, want model.dds (copy fallback)", name)
	}
	orig, _ := os.ReadFile(src)
	copied, err := os.ReadFile(filepath.Join(out, name))
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if string(orig) != string(copied) {
		t.Error("copy is not byte-identical")
	}
}

func TestConvertMissingSourceReturnsEmpty(t *testing.T) {
	if name := Convert(filepath.Join(t.TempDir(), "nope.png"), t.TempDir(), "x", FormatPNG); name != "" {
		t.Fatalf("got %q, want empty", name)
	}
}

func TestFindSidecar(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "caha000.rrm")
	for _, name := range []string{"caha000.rrm", "CAHA000.PNG", "caha000.dds", "other.dds"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	path, ok := FindSidecar(model)
	if !ok {
		t.Fatal("sidecar not found")
	}
	// DDS preferred over PNG for the same stem.
	if filepath.Base(path) != "caha000.dds" {
		t.Errorf("got %s, want caha000.dds", filepath.Base(path))
	}
}

func TestFindSidecarVariants(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "caha000.rrm")
	files := []string{
		"caha000.rrm",
		"caha000.dds",
		"caha000.png", // same stem, lower-preference extension
		"caha000_alt.dds",
		"caha000_base.png",
		"caha000-2.dds",
		"caha0001.dds", // sequential numbering, not a variant
		"other.dds",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	variants := FindSidecarVariants(model)
	got := make([]string, len(variants))
	for i, p := range variants {
		got[i] = filepath.Base(p)
	}
	// Exact stem first, then underscore variants, then dash variants, one
	// path per stem by extension preference.
	want := []string{"caha000.dds", "caha000_alt.dds", "caha000_base.png", "caha000-2.dds"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFindSidecarNone(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "lonely.rrm")
	if err := os.WriteFile(model, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok := FindSidecar(model); ok {
		t.Fatal("found a sidecar where none exists")
	}
}
