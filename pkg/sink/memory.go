package sink

import (
	"fmt"
	"sync"

	"github.com/chazu/resin/pkg/mesher"
)

// Compile-time interface check.
var _ ResultSink = (*Memory)(nil)

// memoryHandle is a Memory-owned result target.
type memoryHandle struct {
	id string
}

func (*memoryHandle) resultHandle() {}

// Memory is an in-process ResultSink keeping the latest mesh per result
// id. Safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	meshes map[string]*mesher.Mesh
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{meshes: make(map[string]*mesher.Mesh)}
}

// Find returns a handle if the target exists.
func (s *Memory) Find(id string) (Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meshes[id]; !ok {
		return nil, false
	}
	return &memoryHandle{id: id}, true
}

// Create makes (or reuses) a target for the id.
func (s *Memory) Create(id string) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meshes[id]; !ok {
		s.meshes[id] = nil
	}
	return &memoryHandle{id: id}
}

// ApplyMesh replaces the target's geometry.
func (s *Memory) ApplyMesh(h Handle, m *mesher.Mesh) error {
	mh, ok := h.(*memoryHandle)
	if !ok {
		return fmt.Errorf("sink: foreign handle %T", h)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meshes[mh.id] = m
	return nil
}

// ClearGeometry empties the target.
func (s *Memory) ClearGeometry(h Handle) error {
	mh, ok := h.(*memoryHandle)
	if !ok {
		return fmt.Errorf("sink: foreign handle %T", h)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meshes[mh.id]; ok {
		s.meshes[mh.id] = nil
	}
	return nil
}

// Mesh returns the stored mesh for a result id, if any. Test and host
// convenience; not part of ResultSink.
func (s *Memory) Mesh(id string) (*mesher.Mesh, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meshes[id]
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}
