// Package syncer orchestrates a full scrape for one reader: fetch
// every review-list page, normalize and dedupe the rows, then hand
// the record set to the store. It also owns the write-cooldown and
// read-freshness policies.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katzenj/goodreads-analytics/lib/timezone"
	"github.com/katzenj/goodreads-analytics/services/goodreads/parser"
	"github.com/katzenj/goodreads-analytics/services/goodreads/records"
	"github.com/katzenj/goodreads-analytics/services/library"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/syncer")

const (
	// minimum spacing between successive writes for one reader,
	// prevents write storms from repeated dashboard loads
	DefaultCooldown = time.Minute * 5
	// maximum age of stored rows before a re-fetch is preferred
	// over reading them back; a separate policy from the cooldown
	DefaultFreshness = time.Hour * 24
)

type PageSource interface {
	ReviewListPage(ctx context.Context, readerID int64, page int) (string, error)
	ProfilePage(ctx context.Context, readerID int64) (string, error)
}

type Status string

const (
	StatusSynced  Status = "synced"
	StatusSkipped Status = "skipped"
)

type Result struct {
	Status  Status
	Pages   int
	Records int
}

type Options struct {
	// zero values fall back to DefaultCooldown/DefaultFreshness
	Cooldown  time.Duration
	Freshness time.Duration
}

type Coordinator struct {
	source    PageSource
	store     library.Store
	cooldown  time.Duration
	freshness time.Duration
}

func New(source PageSource, store library.Store, opts Options) Coordinator {
	if opts.Cooldown == 0 {
		opts.Cooldown = DefaultCooldown
	}
	if opts.Freshness == 0 {
		opts.Freshness = DefaultFreshness
	}
	return Coordinator{
		source:    source,
		store:     store,
		cooldown:  opts.Cooldown,
		freshness: opts.Freshness,
	}
}

// Sync runs the full pipeline for a reader. A sync inside the cooldown
// window reports StatusSkipped without touching the store; a fetch
// failure on any page aborts the whole sync with nothing written.
func (c Coordinator) Sync(ctx context.Context, readerID int64) (Result, error) {
	ctx, span := tracer.Start(ctx, "Sync")
	defer span.End()
	span.SetAttributes(attribute.Int64("reader_id", readerID))

	attempt, _ := random.String(8)
	log := slog.With("reader_id", readerID, "attempt", attempt)

	last, err := c.store.LastSyncedAt(ctx, readerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	if last != nil && timezone.Now().Sub(*last) < c.cooldown {
		log.InfoContext(ctx, "synced within cooldown window, skipping", "last_sync", *last)
		return Result{Status: StatusSkipped}, nil
	}

	recs, pages, err := c.fetchAll(ctx, readerID, log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	recs = records.Dedupe(ctx, recs)

	// first sight of a reader also pulls their display name; failure
	// here is not worth aborting a successful scrape
	name, err := c.store.ReaderName(ctx, readerID)
	if err == nil && name == "" {
		c.syncReaderName(ctx, readerID, log)
	}

	err = c.store.UpsertRecords(ctx, readerID, recs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	err = c.store.InvalidateDashboards(ctx, readerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	log.InfoContext(ctx, "sync complete", "pages", pages, "records", len(recs))
	return Result{Status: StatusSynced, Pages: pages, Records: len(recs)}, nil
}

// fetchAll walks the paginated review list sequentially: the first
// page tells us how many pages exist, pages 2..N follow in order so
// the first-occurrence rule of deduplication sees pages in reading
// order.
func (c Coordinator) fetchAll(ctx context.Context, readerID int64, log *slog.Logger) ([]records.Record, int, error) {
	markup, err := c.source.ReviewListPage(ctx, readerID, 1)
	if err != nil {
		return nil, 0, err
	}
	page, err := parser.NewPage(markup)
	if err != nil {
		return nil, 0, fmt.Errorf("parse page 1: %w", err)
	}

	lastPage := page.LastPageNumber()
	log.DebugContext(ctx, "resolved pagination", "last_page", lastPage)

	recs := c.normalizeRows(ctx, page.Rows(ctx), readerID, log)

	for n := 2; n <= lastPage; n++ {
		markup, err := c.source.ReviewListPage(ctx, readerID, n)
		if err != nil {
			return nil, 0, err
		}
		page, err := parser.NewPage(markup)
		if err != nil {
			return nil, 0, fmt.Errorf("parse page %d: %w", n, err)
		}
		recs = append(recs, c.normalizeRows(ctx, page.Rows(ctx), readerID, log)...)
	}

	return recs, lastPage, nil
}

func (c Coordinator) normalizeRows(ctx context.Context, rows []parser.RawRow, readerID int64, log *slog.Logger) []records.Record {
	recs := make([]records.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := records.Normalize(row, readerID)
		if errors.Is(err, records.ErrValidation) {
			log.WarnContext(ctx, "skipping invalid record", "err", err)
			continue
		}
		if err != nil {
			log.WarnContext(ctx, "failed to normalize record", "err", err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs
}

func (c Coordinator) syncReaderName(ctx context.Context, readerID int64, log *slog.Logger) {
	markup, err := c.source.ProfilePage(ctx, readerID)
	if err != nil {
		log.WarnContext(ctx, "failed to fetch profile page", "err", err)
		return
	}
	page, err := parser.NewPage(markup)
	if err != nil {
		log.WarnContext(ctx, "failed to parse profile page", "err", err)
		return
	}
	name := page.ReaderName()
	if name == "" {
		return
	}
	err = c.store.SetReaderName(ctx, readerID, name)
	if err != nil {
		log.WarnContext(ctx, "failed to store reader name", "err", err)
	}
}

// Synced reports whether the reader has ever completed a sync, i.e.
// whether any stored state exists to serve.
func (c Coordinator) Synced(ctx context.Context, readerID int64) (bool, error) {
	last, err := c.store.LastSyncedAt(ctx, readerID)
	if err != nil {
		return false, err
	}
	return last != nil, nil
}

// Fresh reports whether the reader's stored rows are recent enough to
// serve without a re-fetch.
func (c Coordinator) Fresh(ctx context.Context, readerID int64) (bool, error) {
	last, err := c.store.LastSyncedAt(ctx, readerID)
	if err != nil {
		return false, err
	}
	return last != nil && timezone.Now().Sub(*last) < c.freshness, nil
}
