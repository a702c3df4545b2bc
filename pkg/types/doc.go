// Package types defines the core types and interfaces used throughout livelink.
// This includes the resolved run configuration, the pipeline step and result
// types, and the filesystem interface used for reading manifests.
package types
