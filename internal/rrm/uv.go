package rrm

import (
	"encoding/binary"
	"math"
)

// The UV stream's location is not recorded anywhere in the header and has
// moved between format revisions. Probes for the known layouts run in fixed
// priority order; the first one yielding a full, plausible set wins.
const (
	legacyUVOffset   = 0x20C0 // interleaved normal+UV records seen in older files
	fallbackUVOffset = 0x31C0 // packed UV block seen in some later files

	interleavedStride = 32 // normal data in bytes 0-23, UV pair at 24-31
	interleavedUVAt   = 24
	packedStride      = 16 // two 2-float channels per vertex, UV0 first
)

// UVStrategy identifies which probe located the texture coordinates.
type UVStrategy int

const (
	StrategyNone       UVStrategy = iota // no UV data found
	StrategyLegacy                       // interleaved stream at the legacy fixed offset
	StrategyContiguous                   // interleaved stream directly after the positions
	StrategyPackedRun                    // packed block found by scanning for float runs
	StrategyFixed                        // packed block at the fixed fallback offset
)

func (s UVStrategy) String() string {
	switch s {
	case StrategyLegacy:
		return "legacy-interleaved"
	case StrategyContiguous:
		return "after-positions"
	case StrategyPackedRun:
		return "packed-run-scan"
	case StrategyFixed:
		return "fixed-fallback"
	default:
		return "none"
	}
}

// LocateUVs tries each strategy in priority order and returns the first full
// set of plausible texture coordinates, or (nil, StrategyNone) when every
// strategy fails. A missing UV stream is a normal outcome, not an error.
func LocateUVs(data []byte, vertexCount int, vertexOffset uint32, lim Limits) ([]UV, UVStrategy) {
	if vertexCount == 0 {
		return nil, StrategyNone
	}
	probes := []struct {
		strategy UVStrategy
		probe    func() []UV
	}{
		{StrategyLegacy, func() []UV {
			return readInterleaved(data, legacyUVOffset, vertexCount, lim)
		}},
		{StrategyContiguous, func() []UV {
			return readInterleaved(data, int(vertexOffset)+vertexCount*vertexStride, vertexCount, lim)
		}},
		{StrategyPackedRun, func() []UV {
			return scanPackedRun(data, vertexCount, lim)
		}},
		{StrategyFixed, func() []UV {
			return readPacked(data, fallbackUVOffset, vertexCount, 0, 4)
		}},
	}
	for _, p := range probes {
		if uvs := p.probe(); uvs != nil {
			return uvs, p.strategy
		}
	}
	return nil, StrategyNone
}

// readInterleaved reads one UV pair per vertex from the tail of 32-byte
// interleaved records. Any component outside the open plausibility interval
// rejects the whole candidate.
func readInterleaved(data []byte, off, count int, lim Limits) []UV {
	if off < 0 || off+interleavedStride*count > len(data) {
		return nil
	}
	uvs := make([]UV, 0, count)
	for i := 0; i < count; i++ {
		base := off + i*interleavedStride + interleavedUVAt
		u := readF32(data, base)
		v := readF32(data, base+4)
		if !plausibleUV(u, lim.UVBound) || !plausibleUV(v, lim.UVBound) {
			return nil
		}
		uvs = append(uvs, UV{u, v})
	}
	return uvs
}

// readPacked reads count UV pairs with the packed 16-byte stride, taking the
// u and v components at the given byte offsets within each record. No value
// plausibility check; only bounds.
func readPacked(data []byte, off, count, uAt, vAt int) []UV {
	if off < 0 || off+(count-1)*packedStride+vAt+4 > len(data) {
		return nil
	}
	uvs := make([]UV, 0, count)
	for i := 0; i < count; i++ {
		base := off + i*packedStride
		uvs = append(uvs, UV{readF32(data, base+uAt), readF32(data, base+vAt)})
	}
	return uvs
}

// floatRun is a contiguous span of plausible float32 values found by the scan.
type floatRun struct {
	start int
	count int
	score float64 // max |v| over the first sampled values
}

// scanPackedRun walks the whole buffer once looking for maximal runs of
// finite, bounded float32 values, long enough to hold two 2-float channels
// per vertex. Runs are scored by the maximum magnitude of their leading
// samples; genuine UV blocks score low, so the lowest-scoring (then
// earliest) run wins.
func scanPackedRun(data []byte, count int, lim Limits) []UV {
	const sampleCount = 40

	minFloats := count * 4
	var best *floatRun

	for off := 0; off+4 <= len(data); {
		if !validFloat(readF32(data, off), lim.FloatMax) {
			off += 4
			continue
		}
		start := off
		n := 0
		for off+4 <= len(data) && validFloat(readF32(data, off), lim.FloatMax) {
			n++
			off += 4
		}
		if n < minFloats {
			continue
		}
		score := 0.0
		for i := 0; i < n && i < sampleCount; i++ {
			if a := math.Abs(float64(readF32(data, start+i*4))); a > score {
				score = a
			}
		}
		if score >= lim.RunScoreMax {
			continue
		}
		if best == nil || score < best.score || (score == best.score && start < best.start) {
			best = &floatRun{start: start, count: n, score: score}
		}
	}
	if best == nil {
		return nil
	}
	return readPacked(data, best.start, count, 0, 4)
}

// UVSet is one independently-located set of texture coordinates, produced by
// the diagnostic extraction for side-by-side comparison.
type UVSet struct {
	Label  string
	Source UVStrategy
	UVs    []UV
}

// AllUVSets extracts every known UV layout that fits the buffer, without the
// plausibility filtering of the production probes. Used by inspection tooling
// to compare candidate interpretations of the same file; the normal decode
// path never calls this.
func AllUVSets(data []byte, vertexCount int) []UVSet {
	if vertexCount == 0 {
		return nil
	}
	var sets []UVSet
	if uvs := readInterleavedRaw(data, legacyUVOffset, vertexCount); uvs != nil {
		sets = append(sets, UVSet{Label: "stream2", Source: StrategyLegacy, UVs: uvs})
	}
	if uvs := readPacked(data, fallbackUVOffset, vertexCount, 0, 4); uvs != nil {
		sets = append(sets, UVSet{Label: "uv0", Source: StrategyFixed, UVs: uvs})
	}
	if uvs := readPacked(data, fallbackUVOffset, vertexCount, 8, 12); uvs != nil {
		sets = append(sets, UVSet{Label: "uv1", Source: StrategyFixed, UVs: uvs})
	}
	return sets
}

func readInterleavedRaw(data []byte, off, count int) []UV {
	if off < 0 || off+interleavedStride*count > len(data) {
		return nil
	}
	uvs := make([]UV, 0, count)
	for i := 0; i < count; i++ {
		base := off + i*interleavedStride + interleavedUVAt
		uvs = append(uvs, UV{readF32(data, base), readF32(data, base+4)})
	}
	return uvs
}

func readF32(data []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
}

// validFloat reports whether v looks like real data rather than garbage bytes
// reinterpreted as a float: finite and below the magnitude cap. NaN fails the
// comparison on its own.
func validFloat(v float32, max float64) bool {
	return math.Abs(float64(v)) < max
}

func plausibleUV(v float32, bound float64) bool {
	f := float64(v)
	return f > -bound && f < bound
}
