// Package batch drives the extraction of whole directories of RRM resources.
// Every file is independent: a fatal decode error in one is recorded in its
// Result and never stops the run.
package batch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"rrm-mesh-tools/internal/obj"
	"rrm-mesh-tools/internal/rrm"
	"rrm-mesh-tools/internal/texture"
)

// Config holds the shared settings for a batch run.
type Config struct {
	InputDir      string
	OutputDir     string
	TextureFormat string
	Workers       int
	Options       rrm.Options
}

// Result holds the outcome of processing one resource file.
type Result struct {
	Name       string   `json:"name"`
	OutputFile string   `json:"output_file,omitempty"`
	Texture    string   `json:"texture,omitempty"`
	Variants   []string `json:"variants,omitempty"` // extra per-variant OBJ files
	Vertices   int      `json:"vertices"`
	Triangles  int      `json:"triangles"`
	HasUV      bool     `json:"has_uv"`
	UVSource   string   `json:"uv_source,omitempty"`
	Partial    bool     `json:"partial,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// ListInputs returns the .rrm files directly under dir, sorted by name.
func ListInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".rrm") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run converts all files using a worker pool and returns one Result per
// input, in input order.
func Run(cfg Config, files []string) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	results := make([]Result, len(files))
	var processed atomic.Int64

	start := time.Now()
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Infof("[%d/%d] %.1f files/sec", p, len(files), rate)
				}
			}
		}
	}()

	work := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = ProcessFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		work <- i
	}
	close(work)

	wg.Wait()
	close(done)

	return results
}

// ProcessFile decodes one resource and writes its OBJ, MTL and texture.
func ProcessFile(cfg Config, path string) Result {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	res := Result{Name: name}

	mesh, err := rrm.DecodeFile(path, cfg.Options)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	// Texture first so the MTL can reference whatever was produced. The
	// primary variant keeps the model's stem; every further variant gets
	// its own OBJ/MTL/texture set under the variant's stem.
	variants := texture.FindSidecarVariants(path)
	if len(variants) > 0 {
		res.Texture = texture.Convert(variants[0], cfg.OutputDir, stem, cfg.TextureFormat)
	}

	objPath := filepath.Join(cfg.OutputDir, stem+".obj")
	mtlPath := filepath.Join(cfg.OutputDir, stem+".mtl")
	if err := obj.WriteFile(objPath, mtlPath, mesh, res.Texture); err != nil {
		res.Error = err.Error()
		return res
	}

	for i := 1; i < len(variants); i++ {
		src := variants[i]
		vstem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		texName := texture.Convert(src, cfg.OutputDir, vstem, cfg.TextureFormat)
		vobj := filepath.Join(cfg.OutputDir, vstem+".obj")
		vmtl := filepath.Join(cfg.OutputDir, vstem+".mtl")
		if err := obj.WriteFile(vobj, vmtl, mesh, texName); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Variants = append(res.Variants, vstem+".obj")
	}

	res.OutputFile = stem + ".obj"
	res.Vertices = len(mesh.Vertices)
	res.Triangles = len(mesh.Triangles)
	res.HasUV = mesh.HasUV()
	if mesh.HasUV() {
		res.UVSource = mesh.UVSource.String()
	}
	res.Partial = mesh.PartialVertices
	return res
}
