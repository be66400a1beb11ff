package gedcom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// ErrNotFound is returned when an identifier does not resolve to a record.
var ErrNotFound = errors.New("pointer not found")

// Database owns a forest of root-level records and an index of every
// identifier defined anywhere in the forest.
type Database struct {
	roots       []*Record
	index       map[string]*Record
	recordCount int
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{index: make(map[string]*Record)}
}

// Parse reads level-prefixed lines into a database. A stack of current
// ancestors is kept per nesting level: each line attaches as a child of the
// most recent shallower record, found by popping the stack down to the
// line's level. Level-0 lines start new roots. Blank lines are skipped and
// no tag vocabulary is assumed.
func Parse(r io.Reader) (*Database, error) {
	db := NewDatabase()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var stack []*Record
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		rec, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		db.register(rec)

		if rec.Level == 0 {
			db.roots = append(db.roots, rec)
			stack = stack[:0]
		} else {
			for len(stack) > 0 && stack[len(stack)-1].Level >= rec.Level {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, fmt.Errorf("line %d: level %d record has no parent", lineNumber, rec.Level)
			}
			stack[len(stack)-1].AddChild(rec)
		}
		stack = append(stack, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return db, nil
}

func (db *Database) register(rec *Record) {
	db.recordCount++
	if rec.Xref != "" {
		// Duplicate definitions are tolerated; the last one wins.
		db.index[rec.Xref] = rec
	}
}

// AddRoot appends a root record and indexes every identifier defined in
// its subtree.
func (db *Database) AddRoot(rec *Record) *Record {
	db.roots = append(db.roots, rec)
	var index func(*Record)
	index = func(r *Record) {
		db.register(r)
		for _, child := range r.Children {
			index(child)
		}
	}
	index(rec)
	return rec
}

// Roots returns the root records in document order.
func (db *Database) Roots() []*Record {
	return db.roots
}

// RecordCount returns the total number of records in the database.
func (db *Database) RecordCount() int {
	return db.recordCount
}

// FindPointer resolves an @-delimited identifier to the record defining it.
// It returns ErrNotFound when the identifier is absent; callers decide
// whether a dangling reference is fatal.
func (db *Database) FindPointer(xref string) (*Record, error) {
	rec, ok := db.index[xref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, xref)
	}
	return rec, nil
}

// FindRecords returns a lazy sequence over every record with the given tag:
// for each root in document order, the root itself if it matches, then its
// matching descendants in depth-first pre-order.
func (db *Database) FindRecords(tag string) iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, root := range db.roots {
			if root.Tag == tag && !yield(root) {
				return
			}
			for rec := range root.Descendants(tag) {
				if !yield(rec) {
					return
				}
			}
		}
	}
}

// Write serializes every root in document order as level-prefixed lines.
// Parsing the output reproduces the database structure exactly.
func (db *Database) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	lw := NewLineWriter(bw)
	var emit func(*Record)
	emit = func(rec *Record) {
		lw.Emit(rec.Xref, rec.Tag, rec.Data, rec.Reference)
		defer lw.Descend()()
		for _, child := range rec.Children {
			emit(child)
		}
	}
	for _, root := range db.roots {
		emit(root)
	}
	if err := lw.Err(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	return nil
}
