// Package testutil provides helpers for srcbundle tests.
//
// Key components:
//   - WriteTree / ReadTree: declare a source tree inline and read one back
//   - FaultyFS: a types.FS that fails chosen paths, for unreadable source
//     and write-failure cases
//   - Isolate: points user configuration and the log file at temp dirs
//
// Usage guidelines:
//   - Prefer filesystem.NewMemFS for speed; use t.TempDir with
//     filesystem.NewOS only when the code under test reads the disk
//   - All test data should be defined inline, not in external files
package testutil
