// Package dashboard assembles the view model the presentation layer
// renders: the metric block plus every chart dataset for a reader and
// year scope. Views are cached in the store; the cache is purely a
// performance aid and is dropped whenever a sync lands new data.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/katzenj/goodreads-analytics/lib/timezone"
	"github.com/katzenj/goodreads-analytics/services/goodreads/records"
	"github.com/katzenj/goodreads-analytics/services/insights"
	"github.com/katzenj/goodreads-analytics/services/library"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/dashboard")

// year key used for all-time views in the cache table
const allTimeKey = int64(0)

type Service struct {
	store library.Store
}

func NewService(store library.Store) Service {
	return Service{store: store}
}

// View builds the dashboard for a reader, scoped to a single year when
// `year` is non-nil. The year comparison chart only exists for
// year-scoped views, where it lines the year up against the one
// before; in all-time views it serializes as the null marker.
func (s Service) View(ctx context.Context, readerID int64, year *int64) (map[string]any, error) {
	ctx, span := tracer.Start(ctx, "View")
	defer span.End()
	span.SetAttributes(attribute.Int64("reader_id", readerID))

	cacheYear := allTimeKey
	if year != nil {
		cacheYear = *year
	}

	payload, ok, err := s.store.CachedDashboard(ctx, readerID, cacheYear)
	if err != nil {
		slog.WarnContext(ctx, "failed to read dashboard cache", "err", err)
	}
	if ok {
		var view map[string]any
		err := json.Unmarshal([]byte(payload), &view)
		if err == nil {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return view, nil
		}
		slog.WarnContext(ctx, "discarding unreadable cached dashboard", "err", err)
	}

	view, err := s.build(ctx, readerID, year)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	encoded, err := json.Marshal(view)
	if err == nil {
		err = s.store.PutDashboard(ctx, readerID, cacheYear, string(encoded))
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to cache dashboard", "err", err)
	}

	return view, nil
}

func (s Service) build(ctx context.Context, readerID int64, year *int64) (map[string]any, error) {
	recs, err := s.store.GetRecords(ctx, readerID, year)
	if err != nil {
		return nil, err
	}

	graphs := map[string]any{
		"books_read":                     insights.SerializeChart(insights.ReadByMonth(recs)),
		"books_read_compared_to_year":    insights.NullMarker,
		"book_length_distribution":       insights.SerializeChart(insights.LengthDistribution(recs)),
		"book_rating_distribution":       insights.SerializeChart(insights.RatingDistribution(recs)),
		"book_publish_year_distribution": insights.SerializeChart(insights.PublishYearDistribution(recs)),
	}

	if year != nil {
		comparison, err := s.yearComparison(ctx, readerID, *year)
		if err != nil {
			return nil, err
		}
		graphs["books_read_compared_to_year"] = comparison
	}

	years, err := s.yearOptions(ctx, readerID)
	if err != nil {
		return nil, err
	}

	name, err := s.store.ReaderName(ctx, readerID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"reader": map[string]any{
			"id":   readerID,
			"name": name,
		},
		"years":   years,
		"metrics": insights.SerializeSummary(insights.Summarize(recs)),
		"graphs":  graphs,
		"books":   serializeReadList(recs),
	}, nil
}

func (s Service) yearComparison(ctx context.Context, readerID, year int64) (map[string]any, error) {
	compareYear := year - 1

	current, err := s.store.GetRecords(ctx, readerID, &year)
	if err != nil {
		return nil, err
	}
	previous, err := s.store.GetRecords(ctx, readerID, &compareYear)
	if err != nil {
		return nil, err
	}

	chart := insights.YearComparison(append(current, previous...), year, compareYear)
	return insights.SerializeChart(chart), nil
}

// yearOptions is the year selector contents: all-time first, then
// every year with activity plus the current one, newest first.
func (s Service) yearOptions(ctx context.Context, readerID int64) ([]string, error) {
	stored, err := s.store.DistinctYears(ctx, readerID)
	if err != nil {
		return nil, err
	}

	seen := map[int64]struct{}{}
	years := []int64{}
	for _, y := range append(stored, int64(timezone.Now().Year())) {
		if _, dup := seen[y]; dup {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] > years[j] })

	options := []string{"All time"}
	for _, y := range years {
		options = append(options, fmt.Sprintf("%d", y))
	}
	return options, nil
}

// serializeReadList emits the read records newest first, the order the
// frontend lists them in.
func serializeReadList(recs []records.Record) []any {
	read := make([]records.Record, 0, len(recs))
	for _, r := range recs {
		if r.Read() {
			read = append(read, r)
		}
	}
	sort.SliceStable(read, func(i, j int) bool {
		return read[i].DateRead.After(*read[j].DateRead)
	})

	out := make([]any, len(read))
	for i, r := range read {
		out[i] = insights.SerializeRecord(r)
	}
	return out
}
