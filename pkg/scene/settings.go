package scene

import "time"

// Settings are the root-level knobs of one hierarchy. They ride along in
// snapshots so a rebuild uses the values captured at change-detection time.
type Settings struct {
	// BlendFactor is the global smoothing factor used when children combine
	// into the bounds root or into group nodes. 0 selects sharp booleans.
	BlendFactor float64

	// CoarseCells and FineCells are the marching-cubes resolutions for
	// automatic (interactive) and manual (final) rebuilds.
	CoarseCells int
	FineCells   int

	// Debounce is the inactivity window after a change signal before a
	// rebuild is scheduled.
	Debounce time.Duration

	// MinRebuildInterval is the minimum spacing between the finish of one
	// rebuild and the start of the next automatic rebuild.
	MinRebuildInterval time.Duration

	// ResultID names the result-sink target receiving the mesh.
	ResultID string

	// AutoCreateResult allows the build runner to create the sink target
	// when it does not exist yet.
	AutoCreateResult bool

	// BoundsScale multiplies the root's average world scale to derive the
	// half-extent of the meshing region.
	BoundsScale float64
}

// DefaultSettings returns the settings used for a new bounds root.
func DefaultSettings() Settings {
	return Settings{
		BlendFactor:        0,
		CoarseCells:        64,
		FineCells:          200,
		Debounce:           300 * time.Millisecond,
		MinRebuildInterval: time.Second,
		ResultID:           "resin-result",
		AutoCreateResult:   true,
		BoundsScale:        1.25,
	}
}
