// Package records holds the canonical typed book record plus the
// normalization and deduplication steps that produce it from scraped
// rows.
package records

import "time"

// Record is one read/shelved item for one reader. Once built by
// Normalize it is never mutated, upserts replace whole records keyed
// by (Title, Author, ReaderID).
type Record struct {
	// assigned by the store on first upsert, zero until then
	ID       int64
	ReaderID int64

	Title  string
	Author string
	ISBN   string

	Rating    *int64
	NumPages  *int64
	AvgRating *float64
	ReadCount *int64

	DateRead      *time.Time
	DateAdded     *time.Time
	DateStarted   *time.Time
	DatePublished *time.Time

	Review   string
	CoverURL string
}

// Key identifies the logical entry a record refers to, independent of
// its surrogate id.
type Key struct {
	Title    string
	Author   string
	ReaderID int64
}

func (r Record) Key() Key {
	return Key{Title: r.Title, Author: r.Author, ReaderID: r.ReaderID}
}

// Read reports whether the item has actually been read. Shelved but
// unread items have no read date and stay out of read statistics.
func (r Record) Read() bool {
	return r.DateRead != nil
}
