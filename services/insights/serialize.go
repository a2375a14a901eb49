package insights

import (
	"time"

	"github.com/katzenj/goodreads-analytics/services/goodreads/records"
)

// The serialization boundary for everything the presentation layer
// consumes. Output is plain nested maps/slices with string and number
// leaves only, so the wire format can change without touching the
// entity types. Absent optional sections serialize as the literal
// string "null".

const NullMarker = "null"

func SerializeChart(c Chart) map[string]any {
	datasets := make([]any, len(c.Datasets))
	for i, s := range c.Datasets {
		datasets[i] = serializeSeries(s)
	}

	var tooltip any = ""
	if c.Tooltip != nil {
		tooltip = map[string]any{
			"title": c.Tooltip.Title,
			"label": c.Tooltip.Label,
		}
	}

	return map[string]any{
		"type":         c.Type,
		"x_axis_label": c.XAxisLabel,
		"y_axis_label": c.YAxisLabel,
		"labels":       c.Labels,
		"datasets":     datasets,
		"tooltip":      tooltip,
	}
}

func serializeSeries(s Series) map[string]any {
	borderColor := NullMarker
	if s.BorderColor != "" {
		borderColor = s.BorderColor
	}
	return map[string]any{
		"label":           s.Label,
		"data":            s.Data,
		"backgroundColor": s.BackgroundColor,
		"borderColor":     borderColor,
		"borderWidth":     s.BorderWidth,
	}
}

func SerializeSummary(s Summary) map[string]any {
	return map[string]any{
		"count":          s.Count,
		"total_pages":    s.TotalPages,
		"average_rating": s.AverageRating,
		"average_length": s.AverageLength,
		"max_rating":     serializeOptionalInt(s.MaxRating),
		"min_rating":     serializeOptionalInt(s.MinRating),
		"max_rated_book": serializeOptionalRecord(s.MaxRatedBook),
		"min_rated_book": serializeOptionalRecord(s.MinRatedBook),
		"longest_book":   serializeOptionalRecord(s.LongestBook),
		"shortest_book":  serializeOptionalRecord(s.ShortestBook),
	}
}

func SerializeRecord(r records.Record) map[string]any {
	return map[string]any{
		"id":             r.ID,
		"reader_id":      r.ReaderID,
		"title":          r.Title,
		"author":         r.Author,
		"isbn":           r.ISBN,
		"rating":         serializeOptionalInt(r.Rating),
		"num_pages":      serializeOptionalInt(r.NumPages),
		"avg_rating":     serializeOptionalFloat(r.AvgRating),
		"read_count":     serializeOptionalInt(r.ReadCount),
		"date_read":      serializeOptionalDate(r.DateRead),
		"date_added":     serializeOptionalDate(r.DateAdded),
		"date_started":   serializeOptionalDate(r.DateStarted),
		"date_published": serializeOptionalDate(r.DatePublished),
		"review":         r.Review,
		"cover_url":      r.CoverURL,
	}
}

func serializeOptionalRecord(r *records.Record) any {
	if r == nil {
		return NullMarker
	}
	return SerializeRecord(*r)
}

func serializeOptionalInt(v *int64) any {
	if v == nil {
		return NullMarker
	}
	return *v
}

func serializeOptionalFloat(v *float64) any {
	if v == nil {
		return NullMarker
	}
	return *v
}

func serializeOptionalDate(v *time.Time) any {
	if v == nil {
		return NullMarker
	}
	return v.Format("2006-01-02")
}
