// Package sink defines where finished meshes land. The ResultSink
// interface is the host-owned surface; Memory is an in-process
// implementation for tests and hosts without their own mesh storage.
package sink

import "github.com/chazu/resin/pkg/mesher"

// Handle is an opaque reference to one result target.
type Handle interface {
	resultHandle()
}

// ResultSink stores result meshes by id. The build runner is its only
// caller inside this module.
type ResultSink interface {
	// Find returns the handle for a result id, if the target exists.
	Find(id string) (Handle, bool)

	// Create makes a new target for the id and returns its handle.
	Create(id string) Handle

	// ApplyMesh replaces the target's geometry.
	ApplyMesh(h Handle, m *mesher.Mesh) error

	// ClearGeometry empties the target without removing it.
	ClearGeometry(h Handle) error
}
