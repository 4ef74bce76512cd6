package batch

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest summarizes one batch run for downstream tooling.
type Manifest struct {
	GeneratedAt time.Time `json:"generated_at"`
	InputDir    string    `json:"input_dir"`
	Converted   int       `json:"converted"`
	Failed      int       `json:"failed"`
	Files       []Result  `json:"files"`
}

// WriteManifest writes manifest.json for a finished run.
func WriteManifest(path, inputDir string, results []Result) error {
	m := Manifest{
		GeneratedAt: time.Now().UTC(),
		InputDir:    inputDir,
		Files:       results,
	}
	for _, r := range results {
		if r.Error == "" {
			m.Converted++
		} else {
			m.Failed++
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
