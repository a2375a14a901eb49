// Package parser extracts book review rows out of the printable
// review-list page layout. It deals purely in markup: every value it
// returns is the trimmed visible text of a cell, typing happens later
// in the records package.
package parser

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/katzenj/goodreads-analytics/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/goodreads/parser")

var ErrNoTitle = fmt.Errorf("review row has no title cell")

// matches the human readable dates the review list renders,
// e.g. "Jan 05, 2023" or "Jan 2023". anchored because rows with
// multiple reads append additional dates after the first one.
var datePattern = regexp.MustCompile(`^\w{3}\s+(\d{1,2},)?\s*\d{4}`)

// RawRow is the untyped field set of a single review row, keyed by the
// field's semantic label. It never leaves the scraping pipeline.
type RawRow map[string]string

// the cell labels a review row is expected to carry. a missing cell
// simply leaves its key absent from the row.
var fieldLabels = []string{
	"title",
	"author",
	"isbn",
	"num_pages",
	"avg_rating",
	"rating",
	"review",
	"read_count",
	"date_pub",
	"date_started",
	"date_read",
	"date_added",
}

type Page struct {
	doc *goquery.Document
}

func NewPage(markup string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	return &Page{doc: doc}, nil
}

// Rows returns one RawRow per book review row found on the page.
// Rows missing their title cell are skipped and logged, they never
// abort the rest of the page.
func (p *Page) Rows(ctx context.Context) []RawRow {
	ctx, span := tracer.Start(ctx, "Rows")
	defer span.End()

	var rows []RawRow
	p.doc.Find("tr.bookalike.review").Each(func(idx int, tr *goquery.Selection) {
		row, err := parseRow(tr)
		if err != nil {
			span.RecordError(err)
			slog.WarnContext(ctx, "skipping malformed review row", "idx", idx, "err", err)
			return
		}
		rows = append(rows, row)
	})
	return rows
}

func parseRow(tr *goquery.Selection) (RawRow, error) {
	if tr.Find("td.field.title div.value").Length() == 0 {
		return nil, ErrNoTitle
	}

	row := RawRow{}
	for _, label := range fieldLabels {
		cell := tr.Find(fmt.Sprintf("td.field.%s div.value", label))
		if cell.Length() == 0 {
			continue
		}
		row[label] = fieldText(label, cell)
	}

	if cover, ok := tr.Find("td.field.cover img").Attr("src"); ok {
		row["cover_url"] = strings.TrimSpace(cover)
	}

	return row, nil
}

func fieldText(label string, cell *goquery.Selection) string {
	text := htmlutil.CleanText(cell.Text())

	switch label {
	case "author":
		// contributor rows flag non-primary authors with a trailing *
		text = strings.TrimSpace(strings.TrimSuffix(text, "*"))
	case "date_read", "date_started":
		// keep only the first date, re-reads append more after it
		text = datePattern.FindString(text)
	}
	return text
}

// LastPageNumber inspects the pagination control and returns the
// highest page index it links to, skipping the next/previous arrows.
// Pages without a pagination control are single pages.
func (p *Page) LastPageNumber() int {
	pagination := p.doc.Find("div#reviewPagination")
	if pagination.Length() == 0 {
		return 1
	}

	last := 1
	pagination.Find("a").Each(func(_ int, a *goquery.Selection) {
		if a.HasClass("next_page") || a.HasClass("previous_page") {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(a.Text()))
		if err != nil {
			return
		}
		if n > last {
			last = n
		}
	})
	return last
}

// ReaderName returns the display name from a profile page, or ""
// when the heading is absent.
func (p *Page) ReaderName() string {
	return htmlutil.CleanText(p.doc.Find("#profileNameTopHeading").Text())
}
