package insights

import (
	"fmt"
	"time"

	"github.com/katzenj/goodreads-analytics/services/goodreads/records"
)

// chart palette, shared with the frontend
const (
	colorMonthly     = "#068D9D"
	colorYearCurrent = "#93D5BD"
	colorYearCompare = "#43A5C9"
	colorPages       = "#53599A"
	colorRatings     = "#6D9DC5"
)

type Tooltip struct {
	Title string
	Label string
}

type Series struct {
	Label           string
	Data            []int64
	BackgroundColor string
	BorderColor     string
	BorderWidth     int
}

// Chart is one chart-ready dataset: a labeled numeric series plus the
// rendering hints the frontend needs.
type Chart struct {
	Type       string // "bar" or "line"
	Labels     []string
	XAxisLabel string
	YAxisLabel string
	Datasets   []Series
	Tooltip    *Tooltip
}

func monthLabels() []string {
	labels := make([]string, 12)
	for m := time.January; m <= time.December; m++ {
		labels[m-1] = m.String()[:3]
	}
	return labels
}

// ReadByMonth buckets read records by calendar month, always emitting
// all twelve buckets Jan..Dec.
func ReadByMonth(recs []records.Record) Chart {
	counts := make([]int64, 12)
	for _, r := range recs {
		if !r.Read() {
			continue
		}
		counts[r.DateRead.Month()-1]++
	}

	return Chart{
		Type:       "bar",
		Labels:     monthLabels(),
		XAxisLabel: "Month",
		YAxisLabel: "Books read",
		Datasets: []Series{{
			Label:           "Books read",
			Data:            counts,
			BackgroundColor: colorMonthly,
			BorderWidth:     1,
		}},
	}
}

// YearComparison lines up monthly read counts for two years. The
// 12x2 grid is seeded to zero before counting so both series always
// come out twelve entries long, months with no activity included.
func YearComparison(recs []records.Record, year, compareYear int64) Chart {
	type cell struct {
		month time.Month
		year  int64
	}
	counts := make(map[cell]int64, 24)
	for m := time.January; m <= time.December; m++ {
		counts[cell{m, year}] = 0
		counts[cell{m, compareYear}] = 0
	}

	for _, r := range recs {
		if !r.Read() {
			continue
		}
		c := cell{r.DateRead.Month(), int64(r.DateRead.Year())}
		if _, seeded := counts[c]; seeded {
			counts[c]++
		}
	}

	series := func(y int64) []int64 {
		data := make([]int64, 12)
		for m := time.January; m <= time.December; m++ {
			data[m-1] = counts[cell{m, y}]
		}
		return data
	}

	return Chart{
		Type:   "line",
		Labels: monthLabels(),
		Datasets: []Series{
			{
				Label:           fmt.Sprintf("Books read %d", year),
				Data:            series(year),
				BackgroundColor: colorYearCurrent,
				BorderColor:     colorYearCurrent,
				BorderWidth:     3,
			},
			{
				Label:           fmt.Sprintf("Books read %d", compareYear),
				Data:            series(compareYear),
				BackgroundColor: colorYearCompare,
				BorderColor:     colorYearCompare,
				BorderWidth:     3,
			},
		},
	}
}

// LengthDistribution bins read books by page count.
func LengthDistribution(recs []records.Record) Chart {
	var pages []int64
	for _, r := range recs {
		if !r.Read() || r.NumPages == nil {
			continue
		}
		pages = append(pages, *r.NumPages)
	}

	return distributionChart(
		Distribution(pages, defaultBinCount),
		"Number of pages",
	)
}

// PublishYearDistribution bins read books by original publication year.
func PublishYearDistribution(recs []records.Record) Chart {
	var years []int64
	for _, r := range recs {
		if !r.Read() || r.DatePublished == nil {
			continue
		}
		years = append(years, int64(r.DatePublished.Year()))
	}

	return distributionChart(
		Distribution(years, defaultBinCount),
		"Publication year",
	)
}

func distributionChart(bins []Bin, axis string) Chart {
	labels := make([]string, len(bins))
	counts := make([]int64, len(bins))
	for i, b := range bins {
		labels[i] = b.Label()
		counts[i] = b.Count
	}

	return Chart{
		Type:       "bar",
		Labels:     labels,
		XAxisLabel: axis,
		YAxisLabel: "Number of books",
		Datasets: []Series{{
			Label:           "Number of books",
			Data:            counts,
			BackgroundColor: colorPages,
			BorderWidth:     1,
		}},
		Tooltip: &Tooltip{Title: axis, Label: "Number of books"},
	}
}

// RatingDistribution counts read books per star rating, always five
// fixed buckets.
func RatingDistribution(recs []records.Record) Chart {
	counts := make([]int64, 5)
	for _, r := range recs {
		if !r.Read() || r.Rating == nil {
			continue
		}
		counts[*r.Rating-1]++
	}

	return Chart{
		Type:       "bar",
		Labels:     []string{"1", "2", "3", "4", "5"},
		XAxisLabel: "Book rating",
		YAxisLabel: "Number of books",
		Datasets: []Series{{
			Label:           "Number of books",
			Data:            counts,
			BackgroundColor: colorRatings,
			BorderWidth:     1,
		}},
		Tooltip: &Tooltip{Title: "Book rating", Label: "Number of books"},
	}
}
