package records

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/katzenj/goodreads-analytics/services/goodreads/parser"
)

var ErrValidation = fmt.Errorf("record failed validation")

// the review list renders a reader's own rating either as a star
// count or as one of these fixed phrases
var ratingPhrases = map[string]int64{
	"did not like it": 1,
	"it was ok":       2,
	"liked it":        3,
	"really liked it": 4,
	"it was amazing":  5,
}

var firstInteger = regexp.MustCompile(`\d+`)

// Normalize converts a raw scraped row into a typed Record. Title and
// author are required, every other field degrades to absent when its
// text is missing or unparseable. Keys the parser does not know about
// are ignored.
func Normalize(row parser.RawRow, readerID int64) (Record, error) {
	title := strings.TrimSpace(row["title"])
	if title == "" {
		return Record{}, fmt.Errorf("%w: missing title", ErrValidation)
	}
	author := strings.TrimSpace(row["author"])
	if author == "" {
		return Record{}, fmt.Errorf("%w: missing author", ErrValidation)
	}

	return Record{
		ReaderID:      readerID,
		Title:         title,
		Author:        author,
		ISBN:          strings.TrimSpace(row["isbn"]),
		Rating:        parseRating(row["rating"]),
		NumPages:      parsePageCount(row["num_pages"]),
		AvgRating:     parseOptionalFloat(row["avg_rating"]),
		ReadCount:     parseOptionalInt(row["read_count"]),
		DateRead:      parseOptionalDate(row["date_read"]),
		DateAdded:     parseOptionalDate(row["date_added"]),
		DateStarted:   parseOptionalDate(row["date_started"]),
		DatePublished: parseOptionalDate(row["date_pub"]),
		Review:        strings.TrimSpace(row["review"]),
		CoverURL:      strings.TrimSpace(row["cover_url"]),
	}, nil
}

// parseOptionalDate parses the textual dates the page renders,
// "Jan 05, 2023" first, then "Jan 2023" with the day defaulting to
// the 1st. Anything else is absent, never an error.
func parseOptionalDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if t, err := time.Parse("Jan 2, 2006", text); err == nil {
		return &t
	}
	if t, err := time.Parse("Jan 2006", text); err == nil {
		return &t
	}
	return nil
}

// parsePageCount pulls the first integer out of a page-count cell,
// which carries noise like "323 pp".
func parsePageCount(text string) *int64 {
	match := firstInteger.FindString(text)
	if match == "" {
		return nil
	}
	n, err := strconv.ParseInt(match, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func parseRating(text string) *int64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var rating int64
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		rating = n
	} else if n, ok := ratingPhrases[strings.ToLower(text)]; ok {
		rating = n
	} else {
		return nil
	}

	if rating < 1 || rating > 5 {
		return nil
	}
	return &rating
}

func parseOptionalInt(text string) *int64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func parseOptionalFloat(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &f
}
