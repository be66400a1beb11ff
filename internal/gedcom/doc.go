// Package gedcom implements the record tree behind the level-prefixed,
// pointer-linked line format used for genealogy interchange.
//
// Each physical line is `<level> [@xref@] TAG [data...] [@pointer@]`. The
// package parses flat lines into an ordered tree of records, indexes the
// identifiers they define, and serializes trees back to the exact line form.
package gedcom
