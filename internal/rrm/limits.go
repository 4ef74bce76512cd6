package rrm

// Limits holds the tuned constants of the heuristic decode. The format is
// undocumented; these values were found empirically against known-good
// resources and may need adjustment for other format revisions.
type Limits struct {
	// IndexSentinel terminates the index stream: the first u32 above this
	// value is treated as an end-of-stream marker.
	IndexSentinel uint32

	// FloatMax bounds the magnitude of a float32 considered "real" data
	// during the packed-run scan.
	FloatMax float64

	// RunScoreMax rejects candidate runs whose sampled maximum magnitude
	// is at or above this value. UV data sits well below it.
	RunScoreMax float64

	// UVBound is the open-interval bound on plausible UV components for
	// the directly-read strategies.
	UVBound float64

	// MergeEpsilon is the per-axis tolerance for collapsing vertices when
	// no UV data exists.
	MergeEpsilon float32
}

// DefaultLimits returns the tuned values the original extraction tooling used.
func DefaultLimits() Limits {
	return Limits{
		IndexSentinel: 100000,
		FloatMax:      1e7,
		RunScoreMax:   5.0,
		UVBound:       10.0,
		MergeEpsilon:  1e-6,
	}
}

// Options configures one decode call.
type Options struct {
	Limits Limits

	// DropDegenerate removes zero-area triangles on the UV path as well.
	// The UV-absent merge path always removes them; with UVs present the
	// original tooling kept them, so that remains the default.
	DropDegenerate bool
}

// DefaultOptions returns Options matching the original converter behavior.
func DefaultOptions() Options {
	return Options{Limits: DefaultLimits()}
}
