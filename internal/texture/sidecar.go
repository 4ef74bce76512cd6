package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// sidecarExts in preference order. DDS first: it is what the game ships
// beside its models; the rest cover already-extracted sets.
var sidecarExts = []string{".dds", ".png", ".tga", ".bmp", ".jpg", ".jpeg"}

// FindSidecar locates the model's primary texture: the first of its
// variants, with an exact-stem match winning over decorated stems.
func FindSidecar(modelPath string) (string, bool) {
	variants := FindSidecarVariants(modelPath)
	if len(variants) == 0 {
		return "", false
	}
	return variants[0], true
}

// FindSidecarVariants returns every texture variant belonging to a model,
// matched case-insensitively in the model's directory. A variant shares the
// model's stem exactly or extends it with a "_" or "-" suffix
// (caha000.dds, caha000_alt.dds, caha000-2.dds); plain sequential numbering
// is not treated as a variant. The exact stem comes first, then underscore
// variants, then dash variants, each group in name order. One path per
// variant stem, picked by extension preference.
func FindSidecarVariants(modelPath string) []string {
	dir := filepath.Dir(modelPath)
	stem := strings.ToLower(stemOf(filepath.Base(modelPath)))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	byStem := make(map[string]map[string]string) // variant stem → ext → path
	var exact, under, dash []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !isSidecarExt(ext) {
			continue
		}
		vstem := strings.ToLower(stemOf(name))
		if vstem != stem && !isVariantStem(vstem, stem) {
			continue
		}
		if byStem[vstem] == nil {
			byStem[vstem] = make(map[string]string)
			switch {
			case vstem == stem:
				exact = append(exact, vstem)
			case vstem[len(stem)] == '_':
				under = append(under, vstem)
			default:
				dash = append(dash, vstem)
			}
		}
		if _, ok := byStem[vstem][ext]; !ok {
			byStem[vstem][ext] = filepath.Join(dir, name)
		}
	}

	// ReadDir is name-sorted, so each group keeps name order.
	ordered := append(exact, append(under, dash...)...)

	var variants []string
	for _, vstem := range ordered {
		for _, ext := range sidecarExts {
			if path, ok := byStem[vstem][ext]; ok {
				variants = append(variants, path)
				break
			}
		}
	}
	return variants
}

// isVariantStem reports whether vstem is a decorated form of stem. Only "_"
// and "-" separators count, so caha0001 is not a variant of caha000.
func isVariantStem(vstem, stem string) bool {
	if len(vstem) <= len(stem) || !strings.HasPrefix(vstem, stem) {
		return false
	}
	return vstem[len(stem)] == '_' || vstem[len(stem)] == '-'
}

func isSidecarExt(ext string) bool {
	for _, e := range sidecarExts {
		if ext == e {
			return true
		}
	}
	return false
}

func stemOf(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
