// Package scene defines the hierarchy node model for Resin: a bounds root
// with descendant source and group nodes, each source carrying a primitive
// shape definition, an interaction mode and optional modifiers. The package
// also defines the Provider interface through which the rest of the system
// reads hierarchy structure, and an in-memory Tree provider for hosts that
// do not bring their own scene graph.
package scene
