// Package insights is the aggregation engine: summary metrics and
// chart datasets computed from a reader's record set. Everything here
// is a pure function over records, the store stays out of it.
package insights

import (
	"math"

	"github.com/katzenj/goodreads-analytics/services/goodreads/records"

	"github.com/dustin/go-humanize"
)

// Summary is the headline metric block of a dashboard. Pointer fields
// are absent when the scoped record set has no data to support them.
type Summary struct {
	Count      int
	TotalPages string

	AverageRating float64
	AverageLength int64

	MaxRating    *int64
	MinRating    *int64
	MaxRatedBook *records.Record
	MinRatedBook *records.Record

	LongestBook  *records.Record
	ShortestBook *records.Record
}

// Summarize computes the metric block over the read records in recs.
// Shelved-but-unread items never participate.
func Summarize(recs []records.Record) Summary {
	read := readOnly(recs)

	var pageSum, pageCount int64
	var ratingSum, ratingCount int64
	for _, r := range read {
		if r.NumPages != nil {
			pageSum += *r.NumPages
			pageCount++
		}
		if r.Rating != nil {
			ratingSum += *r.Rating
			ratingCount++
		}
	}

	s := Summary{
		Count:      len(read),
		TotalPages: humanize.Comma(pageSum),
	}
	if ratingCount > 0 {
		s.AverageRating = math.Round(float64(ratingSum)/float64(ratingCount)*10) / 10
	}
	if pageCount > 0 {
		s.AverageLength = int64(math.Round(float64(pageSum) / float64(pageCount)))
	}

	s.MaxRatedBook = maxRatedBook(read)
	s.MinRatedBook = minRatedBook(read)
	if s.MaxRatedBook != nil {
		s.MaxRating = s.MaxRatedBook.Rating
	}
	if s.MinRatedBook != nil {
		s.MinRating = s.MinRatedBook.Rating
	}
	s.LongestBook = longestBook(read)
	s.ShortestBook = shortestBook(read)

	return s
}

func readOnly(recs []records.Record) []records.Record {
	out := make([]records.Record, 0, len(recs))
	for _, r := range recs {
		if r.Read() {
			out = append(out, r)
		}
	}
	return out
}

// highest rating, ties broken by the latest read date
func maxRatedBook(read []records.Record) *records.Record {
	var best *records.Record
	for i := range read {
		r := &read[i]
		if r.Rating == nil {
			continue
		}
		if best == nil ||
			*r.Rating > *best.Rating ||
			(*r.Rating == *best.Rating && r.DateRead.After(*best.DateRead)) {
			best = r
		}
	}
	return best
}

// lowest rating, ties broken by the latest read date: "the most
// recent instance of the worst rating"
func minRatedBook(read []records.Record) *records.Record {
	var worst *records.Record
	for i := range read {
		r := &read[i]
		if r.Rating == nil {
			continue
		}
		if worst == nil ||
			*r.Rating < *worst.Rating ||
			(*r.Rating == *worst.Rating && r.DateRead.After(*worst.DateRead)) {
			worst = r
		}
	}
	return worst
}

// first match wins ties
func longestBook(read []records.Record) *records.Record {
	var longest *records.Record
	for i := range read {
		r := &read[i]
		if r.NumPages == nil {
			continue
		}
		if longest == nil || *r.NumPages > *longest.NumPages {
			longest = r
		}
	}
	return longest
}

func shortestBook(read []records.Record) *records.Record {
	var shortest *records.Record
	for i := range read {
		r := &read[i]
		if r.NumPages == nil {
			continue
		}
		if shortest == nil || *r.NumPages < *shortest.NumPages {
			shortest = r
		}
	}
	return shortest
}
