// Package artifact discovers the diagnostic artifacts in a data directory.
//
// A data directory holds pairs of files keyed by a numeric identifier:
// <id>.log (compiler log) and <id>.mir (intermediate representation dump).
// ParseName recognises those names, DirScanner merges them into Groups sorted
// by identifier, and DirLoader reads an artifact's text, replacing read
// failures with an inline diagnostic so a single bad file never breaks a page.
package artifact
