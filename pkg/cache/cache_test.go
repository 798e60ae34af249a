package cache

import (
	"testing"

	"github.com/chazu/resin/pkg/scene"
	"github.com/chazu/resin/pkg/snapshot"
)

func TestCacheRoundTrip(t *testing.T) {
	c := New()
	key := scene.HierarchyKey("h1")

	if got := c.Get(key); got != nil {
		t.Fatalf("Get on empty cache = %v, want nil", got)
	}

	snap := &snapshot.Snapshot{Key: key}
	c.Put(key, snap)
	if got := c.Get(key); got != snap {
		t.Errorf("Get after Put = %v, want the stored snapshot", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	c.Remove(key)
	if got := c.Get(key); got != nil {
		t.Errorf("Get after Remove = %v, want nil", got)
	}
	if c.Len() != 0 {
		t.Errorf("Len() after Remove = %d, want 0", c.Len())
	}
}

func TestCacheKeysIndependent(t *testing.T) {
	c := New()
	a := &snapshot.Snapshot{Key: "a"}
	b := &snapshot.Snapshot{Key: "b"}
	c.Put("a", a)
	c.Put("b", b)

	c.Remove("a")
	if got := c.Get("b"); got != b {
		t.Error("removing one key must not touch another")
	}
}
