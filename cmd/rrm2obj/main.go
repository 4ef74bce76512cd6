// rrm2obj extracts meshes from RRM resources and writes OBJ/MTL pairs with
// converted textures. With positional arguments it converts one file;
// otherwise it processes every .rrm in the input directory, optionally
// staying around to watch for new ones.
package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"rrm-mesh-tools/internal/batch"
	"rrm-mesh-tools/internal/config"
	"rrm-mesh-tools/internal/obj"
	"rrm-mesh-tools/internal/rrm"
	"rrm-mesh-tools/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "path to config file (.json or .toml)")
	input := flag.String("input", "", "input directory with .rrm files (default: Input)")
	output := flag.String("output", "", "output directory (default: Output)")
	workers := flag.Int("workers", 0, "worker goroutines (default: NumCPU)")
	tex := flag.String("tex", "", "texture output format: png, webp, bmp or copy (default: png)")
	watch := flag.Bool("watch", false, "keep running and convert files as they appear")
	dropDegenerate := flag.Bool("drop-degenerate", false, "drop zero-area triangles even when UVs are present")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}
	cfg.Resolve(config.Flags{
		InputDir:      *input,
		OutputDir:     *output,
		TextureFormat: *tex,
		Workers:       *workers,
	})
	if *dropDegenerate {
		cfg.DropDegenerate = true
	}

	if flag.NArg() > 0 {
		convertOne(cfg, flag.Arg(0), flag.Arg(1))
		return
	}

	bcfg := batch.Config{
		InputDir:      cfg.InputDir,
		OutputDir:     cfg.OutputDir,
		TextureFormat: cfg.TextureFormat,
		Workers:       cfg.Workers,
		Options:       cfg.DecodeOptions(),
	}

	files, err := batch.ListInputs(cfg.InputDir)
	if err != nil {
		log.Fatalf("list %s: %v", cfg.InputDir, err)
	}
	log.Infof("converting %d files from %s to %s (workers=%d, tex=%s)",
		len(files), cfg.InputDir, cfg.OutputDir, cfg.Workers, cfg.TextureFormat)

	start := time.Now()
	results := batch.Run(bcfg, files)

	converted, failed := 0, 0
	for _, r := range results {
		if r.Error != "" {
			failed++
			log.Errorf("%s: %s", r.Name, r.Error)
			continue
		}
		converted++
	}
	log.Infof("done: %d converted, %d failed in %s", converted, failed, time.Since(start).Round(time.Millisecond))

	if len(results) > 0 {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			log.Fatalf("%v", err)
		}
		manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
		if err := batch.WriteManifest(manifestPath, cfg.InputDir, results); err != nil {
			log.Errorf("manifest: %v", err)
		}
	}

	if *watch || cfg.Watch {
		stop := make(chan struct{})
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		go func() {
			<-sig
			close(stop)
		}()
		if err := batch.Watch(bcfg, stop); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// convertOne handles the single-file form: rrm2obj [flags] in.rrm [out.obj]
func convertOne(cfg config.Config, inPath, outPath string) {
	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".obj"
	}

	mesh, err := rrm.DecodeFile(inPath, cfg.DecodeOptions())
	if err != nil {
		log.Fatalf("%v", err)
	}

	outDir := filepath.Dir(outPath)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("%v", err)
	}
	stem := strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))

	texName := ""
	variants := texture.FindSidecarVariants(inPath)
	if len(variants) > 0 {
		texName = texture.Convert(variants[0], outDir, stem, cfg.TextureFormat)
	}

	mtlPath := filepath.Join(outDir, stem+".mtl")
	if err := obj.WriteFile(outPath, mtlPath, mesh, texName); err != nil {
		log.Fatalf("%v", err)
	}

	for i := 1; i < len(variants); i++ {
		src := variants[i]
		vstem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		vtex := texture.Convert(src, outDir, vstem, cfg.TextureFormat)
		vobj := filepath.Join(outDir, vstem+".obj")
		vmtl := filepath.Join(outDir, vstem+".mtl")
		if err := obj.WriteFile(vobj, vmtl, mesh, vtex); err != nil {
			log.Fatalf("%v", err)
		}
		log.Infof("%s: texture variant (tex=%s)", vobj, vtex)
	}

	log.Infof("%s: verts=%d tris=%d uv=%v (%s) tex=%s",
		outPath, len(mesh.Vertices), len(mesh.Triangles), mesh.HasUV(), mesh.UVSource, texName)
}
