// Package vfs presents a hierarchical file store over a flat key-value
// backend.
//
// Keys are normalized absolute paths. Directories exist in two forms: an
// explicit entry written by Mkdir, or an inferred directory that has no
// entry of its own but is a strict prefix of some stored path. Stat only
// reports stored entries; Resolve also reports inferred directories.
// Listing never depends on a directory entry existing.
//
// Writes to the same path are serialized through a per-path lock. Listings
// scan every key and are not transactional with respect to concurrent
// writers.
package vfs
