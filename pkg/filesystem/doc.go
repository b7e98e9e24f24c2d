// Package filesystem provides filesystem implementations for srcbundle.
//
// This package contains implementations of the types.FS interface:
// the plain OS filesystem, the synthfs-backed one the CLI uses (OS reads,
// directory and file creation applied as synthfs operations) and an
// afero-backed one that the serializer and reconstructor tests run against
// in memory.
package filesystem
