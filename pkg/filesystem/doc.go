// Package filesystem provides filesystem implementations for livelink.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem and an afero-backed one used by tests to build
// node_modules trees in memory.
package filesystem
