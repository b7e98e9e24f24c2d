// Package types defines the interfaces and small value types shared by the
// serializer, the reconstructor and their wrappers: the filesystem
// abstraction every component reads and writes through, and the per-item
// diagnostics that runs report instead of aborting.
package types
