// Package types defines the core types and interfaces shared across the
// mod manager. This includes the FS and Pather interfaces consumed by the
// install pipeline and settings reconciler, and the result structures
// returned by dispatcher commands.
package types
