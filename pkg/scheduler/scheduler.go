// Package scheduler coordinates incremental rebuilds per hierarchy key:
// change signals are debounced, rebuilds are throttled to a minimum
// spacing, and at most one build is ever in flight per key. Timers fire on
// their own goroutines; a single mutex plus per-entry generation counters
// keep every key's state with one logical owner.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/chazu/resin/pkg/builder"
	"github.com/chazu/resin/pkg/cache"
	"github.com/chazu/resin/pkg/compare"
	"github.com/chazu/resin/pkg/scene"
	"github.com/chazu/resin/pkg/snapshot"
)

// entry is the per-hierarchy scheduling state.
type entry struct {
	root     *scene.Node
	settings scene.Settings

	// debounced re-arms its inactivity timer on every call; only the last
	// callback of a burst fires.
	debounced func(f func())

	// gen invalidates in-flight timer callbacks after a manual trigger,
	// a disarm, or a re-register. Generations are drawn from a single
	// scheduler-wide sequence so a value can never recur on a later entry
	// for the same key.
	gen uint64

	pending    bool // a build is handed off or running
	dirty      bool // a change signal arrived while pending
	captured   *snapshot.Snapshot
	wait       *time.Timer // throttle remainder timer
	lastFinish time.Time
	hasFinish  bool
}

// Scheduler drives rebuilds for all registered hierarchies.
type Scheduler struct {
	mu       sync.Mutex
	provider scene.Provider
	runner   *builder.Runner
	cache    *cache.Cache
	entries  map[scene.HierarchyKey]*entry
	genSeq   uint64
}

// nextGen issues a fresh generation. Callers hold mu.
func (s *Scheduler) nextGen() uint64 {
	s.genSeq++
	return s.genSeq
}

// New returns a Scheduler over the given collaborators.
func New(p scene.Provider, r *builder.Runner, c *cache.Cache) *Scheduler {
	return &Scheduler{
		provider: p,
		runner:   r,
		cache:    c,
		entries:  make(map[scene.HierarchyKey]*entry),
	}
}

// Register creates scheduling state for a hierarchy. Debounce and throttle
// intervals are read from the root's settings at registration time.
// Registering an existing key replaces its state.
func (s *Scheduler) Register(key scene.HierarchyKey, root *scene.Node) error {
	if root == nil {
		return fmt.Errorf("scheduler: register %s: nil root", key)
	}
	rd, ok := root.Root()
	if !ok {
		return fmt.Errorf("scheduler: register %s: node %s is not a bounds root", key, root.ID)
	}

	settings := rd.Settings
	if settings.Debounce <= 0 {
		settings.Debounce = scene.DefaultSettings().Debounce
	}
	if settings.MinRebuildInterval < 0 {
		settings.MinRebuildInterval = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ne := &entry{
		root:      root,
		settings:  settings,
		debounced: debounce.New(settings.Debounce),
		gen:       s.nextGen(),
	}
	if old := s.entries[key]; old != nil {
		if old.wait != nil {
			old.wait.Stop()
		}
		// A build started on the old entry keeps blocking new ones until it
		// finishes, and the throttle clock carries over.
		ne.pending = old.pending
		ne.dirty = old.dirty
		ne.lastFinish = old.lastFinish
		ne.hasFinish = old.hasFinish
	}
	s.entries[key] = ne
	return nil
}

// Unregister cancels timers and purges scheduler and cache state for a
// hierarchy. No rebuild fires for the key afterward.
func (s *Scheduler) Unregister(key scene.HierarchyKey) {
	s.mu.Lock()
	if e := s.entries[key]; e != nil {
		if e.wait != nil {
			e.wait.Stop()
			e.wait = nil
		}
		delete(s.entries, key)
	}
	s.mu.Unlock()
	s.cache.Remove(key)
}

// NotifyPossibleChange is the host's change signal: a transform,
// visibility flag or tracked property in the hierarchy may have changed.
// The reason is diagnostic only. If the fresh snapshot differs from the
// last successfully built one, a debounced rebuild is (re)armed with that
// snapshot; signals during a burst keep restarting the timer so only the
// last state survives.
func (s *Scheduler) NotifyPossibleChange(key scene.HierarchyKey, reason string) {
	s.mu.Lock()
	e := s.entries[key]
	if e == nil {
		s.mu.Unlock()
		log.Printf("scheduler: change signal for unregistered hierarchy %s (%s)", key, reason)
		return
	}
	if e.pending {
		// A build is in flight. Mark the drift; finish re-runs the check.
		e.dirty = true
		s.mu.Unlock()
		return
	}
	root := e.root
	s.mu.Unlock()

	snap, err := snapshot.Build(s.provider, root, key)
	if err != nil {
		log.Printf("scheduler: snapshot for %s failed: %v", key, err)
		return
	}

	s.mu.Lock()
	e = s.entries[key]
	if e == nil {
		s.mu.Unlock()
		return
	}
	if e.pending {
		e.dirty = true
		s.mu.Unlock()
		return
	}
	if prev := s.cache.Get(key); prev != nil && snapshot.Equal(prev, snap, compare.DefaultTolerance) {
		if e.captured != nil {
			// A burst brought the hierarchy back to its built state:
			// disarm so the armed timer cannot commit the stale capture.
			e.captured = nil
			e.gen = s.nextGen()
			if e.wait != nil {
				e.wait.Stop()
				e.wait = nil
			}
		}
		s.mu.Unlock()
		return
	}
	e.captured = snap
	if e.wait != nil {
		e.wait.Stop()
		e.wait = nil
	}
	gen := e.gen
	deb := e.debounced
	s.mu.Unlock()

	deb(func() { s.debounceFired(key, gen) })
}

// debounceFired runs when a burst of change signals has gone quiet, and
// again after a throttle wait. It either hands the captured snapshot to
// the build runner or re-arms for the throttle remainder.
func (s *Scheduler) debounceFired(key scene.HierarchyKey, gen uint64) {
	s.mu.Lock()
	e := s.entries[key]
	if e == nil || e.gen != gen || e.pending || e.captured == nil {
		s.mu.Unlock()
		return
	}

	if e.hasFinish {
		remaining := e.settings.MinRebuildInterval - time.Since(e.lastFinish)
		if remaining > 0 {
			// Throttle wait keeps the same captured snapshot; no fresh
			// snapshot is taken just for waiting.
			e.wait = time.AfterFunc(remaining, func() { s.debounceFired(key, gen) })
			s.mu.Unlock()
			return
		}
	}

	snap := e.captured
	e.captured = nil
	e.pending = true
	root := e.root
	s.mu.Unlock()

	s.runBuild(key, root, snap, false)
}

// ForceRebuild bypasses debounce and throttle: it discards any captured
// snapshot, takes a fresh one, and builds immediately at fine resolution
// if requested. The only guard is against overlapping an in-flight build.
func (s *Scheduler) ForceRebuild(key scene.HierarchyKey, useFine bool) {
	s.mu.Lock()
	e := s.entries[key]
	if e == nil {
		s.mu.Unlock()
		log.Printf("scheduler: manual trigger for unregistered hierarchy %s", key)
		return
	}
	if e.pending {
		s.mu.Unlock()
		return
	}
	e.gen = s.nextGen() // cancel any armed debounce or throttle callback
	if e.wait != nil {
		e.wait.Stop()
		e.wait = nil
	}
	e.captured = nil
	e.pending = true
	root := e.root
	s.mu.Unlock()

	snap, err := snapshot.Build(s.provider, root, key)
	if err != nil {
		log.Printf("scheduler: manual snapshot for %s failed: %v", key, err)
		s.finish(key)
		return
	}
	s.runBuild(key, root, snap, useFine)
}

// runBuild executes one rebuild and always records completion, success or
// not, so throttling and future change detection keep working.
func (s *Scheduler) runBuild(key scene.HierarchyKey, root *scene.Node, snap *snapshot.Snapshot, useFine bool) {
	if err := s.runner.Run(key, root, snap, useFine); err != nil {
		log.Printf("scheduler: rebuild %s failed: %v", key, err)
	}
	s.finish(key)
}

// finish clears the pending flag and stamps the finish time. If change
// signals arrived while the build was running, the comparison is re-run
// once so that drift is not lost.
func (s *Scheduler) finish(key scene.HierarchyKey) {
	var recheck bool
	s.mu.Lock()
	if e := s.entries[key]; e != nil {
		e.lastFinish = time.Now()
		e.hasFinish = true
		e.pending = false
		recheck = e.dirty
		e.dirty = false
	}
	s.mu.Unlock()

	if recheck {
		s.NotifyPossibleChange(key, "recheck after build")
	}
}

// Pending reports whether a build is currently in flight for the key.
func (s *Scheduler) Pending(key scene.HierarchyKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	return e != nil && e.pending
}
