// Package testutil provides test doubles and fixtures for livelink
// components.
//
// Key components:
//   - MockRunner, MockCloner: testify mocks for the pipeline's external
//     effects, sharing a CallLog so tests can assert cross-mock ordering
//   - WriteManifest: installs a package manifest under node_modules on any
//     types.FS, usually filesystem.NewMemory()
package testutil
