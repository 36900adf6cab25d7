// Package fsprovider is the filesystem collaborator (spec §6): file
// enumeration and byte-stream access, grounded on the teacher's
// discovery.Walker/PatternFilter shape (walker.go, filter.go) with doublestar
// glob matching.
package fsprovider

// FileStatus describes one enumerated file.
type FileStatus struct {
	Path        string
	IsDirectory bool
	Length      int64
}
