package builder

import (
	"errors"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/resin/pkg/cache"
	"github.com/chazu/resin/pkg/mesher"
	"github.com/chazu/resin/pkg/scene"
	"github.com/chazu/resin/pkg/sink"
	"github.com/chazu/resin/pkg/snapshot"
)

// stubEngine implements mesher.Engine with a canned result.
type stubEngine struct {
	mesh      *mesher.Mesh
	err       error
	calls     int
	lastCells int
}

func (e *stubEngine) Evaluate(_ sdf.SDF3, _, _ v3.Vec, cells int) (*mesher.Mesh, error) {
	e.calls++
	e.lastCells = cells
	return e.mesh, e.err
}

func triangle() *mesher.Mesh {
	return &mesher.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:  []uint32{0, 1, 2},
	}
}

// fixture builds a runner plus a single-sphere hierarchy.
func fixture(e mesher.Engine, s sink.ResultSink, settings scene.Settings) (*Runner, *scene.Node, *snapshot.Snapshot) {
	root := scene.NewBoundsRoot("root", settings)
	root.AddChild(scene.NewSource("ball", scene.Sphere{Radius: 0.5}))
	snap, err := snapshot.Build(scene.Tree{}, root, "h")
	if err != nil {
		panic(err)
	}
	return New(scene.Tree{}, e, s, cache.New()), root, snap
}

func testSettings() scene.Settings {
	s := scene.DefaultSettings()
	s.CoarseCells = 16
	s.FineCells = 64
	s.ResultID = "r"
	s.AutoCreateResult = true
	return s
}

func TestRunSuccessCommitsCache(t *testing.T) {
	engine := &stubEngine{mesh: triangle()}
	mem := sink.NewMemory()
	r, root, snap := fixture(engine, mem, testSettings())

	if err := r.Run("h", root, snap, false); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if engine.calls != 1 {
		t.Errorf("engine called %d times, want 1", engine.calls)
	}
	if engine.lastCells != 16 {
		t.Errorf("resolution = %d, want coarse (16)", engine.lastCells)
	}
	if m, ok := mem.Mesh("r"); !ok || m.TriangleCount() != 1 {
		t.Error("mesh not applied to the sink")
	}
	if r.Cache.Get("h") != snap {
		t.Error("cache must hold the captured snapshot after success")
	}
}

func TestRunFineResolution(t *testing.T) {
	engine := &stubEngine{mesh: triangle()}
	r, root, snap := fixture(engine, sink.NewMemory(), testSettings())

	if err := r.Run("h", root, snap, true); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if engine.lastCells != 64 {
		t.Errorf("resolution = %d, want fine (64)", engine.lastCells)
	}
}

func TestRunRejectsMissingSnapshot(t *testing.T) {
	engine := &stubEngine{mesh: triangle()}
	r, root, _ := fixture(engine, sink.NewMemory(), testSettings())

	if err := r.Run("h", root, nil, false); err == nil {
		t.Error("nil snapshot should abort the attempt")
	}
	if engine.calls != 0 {
		t.Error("engine must not run without a snapshot")
	}
	if r.Cache.Get("h") != nil {
		t.Error("cache must stay untouched")
	}
}

func TestRunEngineFailureClearsSink(t *testing.T) {
	engine := &stubEngine{err: errors.New("boom")}
	mem := sink.NewMemory()
	r, root, snap := fixture(engine, mem, testSettings())

	// Seed stale geometry from an earlier successful build.
	h := mem.Create("r")
	if err := mem.ApplyMesh(h, triangle()); err != nil {
		t.Fatal(err)
	}

	if err := r.Run("h", root, snap, false); err == nil {
		t.Fatal("engine failure should surface as an error")
	}
	if _, ok := mem.Mesh("r"); ok {
		t.Error("stale geometry must be cleared on failure")
	}
	if r.Cache.Get("h") != nil {
		t.Error("cache must not advance on failure")
	}
}

func TestRunEmptyMeshClears(t *testing.T) {
	engine := &stubEngine{mesh: &mesher.Mesh{}}
	mem := sink.NewMemory()
	r, root, snap := fixture(engine, mem, testSettings())

	h := mem.Create("r")
	if err := mem.ApplyMesh(h, triangle()); err != nil {
		t.Fatal(err)
	}

	if err := r.Run("h", root, snap, false); err != nil {
		t.Fatalf("empty mesh is not an error, got %v", err)
	}
	if _, ok := mem.Mesh("r"); ok {
		t.Error("empty result must clear the sink")
	}
	if r.Cache.Get("h") != nil {
		t.Error("cache must not advance on an empty result")
	}
}

func TestRunMissingTargetWithoutAutoCreate(t *testing.T) {
	engine := &stubEngine{mesh: triangle()}
	mem := sink.NewMemory()
	settings := testSettings()
	settings.AutoCreateResult = false
	r, root, snap := fixture(engine, mem, settings)

	if err := r.Run("h", root, snap, false); err == nil {
		t.Error("missing target with auto-create disabled should fail")
	}
	if r.Cache.Get("h") != nil {
		t.Error("cache must stay untouched")
	}
}

func TestRunAutoCreatesTarget(t *testing.T) {
	engine := &stubEngine{mesh: triangle()}
	mem := sink.NewMemory()
	r, root, snap := fixture(engine, mem, testSettings())

	if err := r.Run("h", root, snap, false); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, ok := mem.Find("r"); !ok {
		t.Error("target should have been auto-created")
	}
}

func TestMeshBoundsFollowRootTransform(t *testing.T) {
	settings := testSettings()
	settings.BoundsScale = 1

	m := sdf.Translate3d(v3.Vec{X: 10}).Mul(sdf.Scale3d(v3.Vec{X: 2, Y: 2, Z: 2}))
	min, max := meshBounds(m, settings)

	if min.X >= max.X {
		t.Fatal("degenerate bounds")
	}
	cx := (min.X + max.X) / 2
	if cx < 9.9 || cx > 10.1 {
		t.Errorf("bounds center X = %g, want ~10", cx)
	}
	half := (max.X - min.X) / 2
	if half < 1.9 || half > 2.1 {
		t.Errorf("half extent = %g, want ~2 (average world scale)", half)
	}
}
