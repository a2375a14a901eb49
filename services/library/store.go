// Package library is the record store: typed book records and sync
// markers persisted to sqlite, plus the optional dashboard cache.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/katzenj/goodreads-analytics/lib/timezone"
	"github.com/katzenj/goodreads-analytics/services/goodreads/records"
	"github.com/katzenj/goodreads-analytics/services/library/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("services/library")

// dates are stored as ISO calendar days so range scans over
// date_read stay lexicographic
const dateLayout = "2006-01-02"

type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// GetRecords returns a reader's stored records. When `year` is given,
// only records read in that calendar year are returned; otherwise the
// full set, shelved-but-unread items included.
func (s Store) GetRecords(ctx context.Context, readerID int64, year *int64) ([]records.Record, error) {
	ctx, span := tracer.Start(ctx, "GetRecords")
	defer span.End()
	span.SetAttributes(attribute.Int64("reader_id", readerID))

	var rows []db.Book
	var err error
	if year != nil {
		rows, err = s.qry.GetBooksReadBetween(ctx, db.GetBooksReadBetweenParams{
			ReaderID: readerID,
			After:    fmt.Sprintf("%04d-01-01", *year),
			Before:   fmt.Sprintf("%04d-01-01", *year+1),
		})
	} else {
		rows, err = s.qry.GetBooks(ctx, readerID)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	recs := make([]records.Record, len(rows))
	for i, row := range rows {
		recs[i] = recordFromRow(row)
	}
	return recs, nil
}

// UpsertRecords replaces the stored version of each record, keyed by
// (title, author, reader), and writes the sync marker in the same
// transaction: either everything lands or nothing does.
func (s Store) UpsertRecords(ctx context.Context, readerID int64, recs []records.Record) error {
	ctx, span := tracer.Start(ctx, "UpsertRecords")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("reader_id", readerID),
		attribute.Int("records", len(recs)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	for _, r := range recs {
		err := txqry.UpsertBook(ctx, db.UpsertBookParams{
			ReaderID:      readerID,
			Title:         r.Title,
			Author:        r.Author,
			Isbn:          r.ISBN,
			Rating:        nullInt(r.Rating),
			NumPages:      nullInt(r.NumPages),
			AvgRating:     nullFloat(r.AvgRating),
			ReadCount:     nullInt(r.ReadCount),
			DateRead:      nullDate(r.DateRead),
			DateAdded:     nullDate(r.DateAdded),
			DateStarted:   nullDate(r.DateStarted),
			DatePublished: nullDate(r.DatePublished),
			Review:        r.Review,
			CoverUrl:      r.CoverURL,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	err = txqry.CreateSync(ctx, db.CreateSyncParams{
		ReaderID:  readerID,
		CreatedAt: timezone.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return tx.Commit()
}

// LastSyncedAt returns the most recent sync marker for the reader, or
// nil when the reader has never been synced.
func (s Store) LastSyncedAt(ctx context.Context, readerID int64) (*time.Time, error) {
	created, err := s.qry.GetLastSync(ctx, readerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t := time.Unix(created, 0).In(timezone.Location)
	return &t, nil
}

// DistinctYears lists the calendar years in which the reader finished
// at least one book, newest first.
func (s Store) DistinctYears(ctx context.Context, readerID int64) ([]int64, error) {
	rows, err := s.qry.GetDistinctReadYears(ctx, readerID)
	if err != nil {
		return nil, err
	}
	years := make([]int64, 0, len(rows))
	for _, row := range rows {
		year, err := strconv.ParseInt(row, 10, 64)
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	return years, nil
}

// ReaderName returns the stored display name, "" when unknown.
func (s Store) ReaderName(ctx context.Context, readerID int64) (string, error) {
	name, err := s.qry.GetReaderName(ctx, readerID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return name, err
}

func (s Store) SetReaderName(ctx context.Context, readerID int64, name string) error {
	return s.qry.SetReaderName(ctx, db.SetReaderNameParams{ID: readerID, Name: name})
}

// CachedDashboard returns the serialized dashboard for (reader, year),
// year 0 meaning all-time. ok is false on a cache miss.
func (s Store) CachedDashboard(ctx context.Context, readerID, year int64) (payload string, ok bool, err error) {
	payload, err = s.qry.GetDashboard(ctx, db.GetDashboardParams{ReaderID: readerID, Year: year})
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

func (s Store) PutDashboard(ctx context.Context, readerID, year int64, payload string) error {
	return s.qry.PutDashboard(ctx, db.PutDashboardParams{
		ReaderID:  readerID,
		Year:      year,
		Payload:   payload,
		CreatedAt: timezone.Now().Unix(),
	})
}

// InvalidateDashboards drops every cached dashboard for the reader,
// called after a successful sync.
func (s Store) InvalidateDashboards(ctx context.Context, readerID int64) error {
	return s.qry.DeleteDashboards(ctx, readerID)
}

func recordFromRow(row db.Book) records.Record {
	return records.Record{
		ID:            row.ID,
		ReaderID:      row.ReaderID,
		Title:         row.Title,
		Author:        row.Author,
		ISBN:          row.Isbn,
		Rating:        optInt(row.Rating),
		NumPages:      optInt(row.NumPages),
		AvgRating:     optFloat(row.AvgRating),
		ReadCount:     optInt(row.ReadCount),
		DateRead:      optDate(row.DateRead),
		DateAdded:     optDate(row.DateAdded),
		DateStarted:   optDate(row.DateStarted),
		DatePublished: optDate(row.DatePublished),
		Review:        row.Review,
		CoverURL:      row.CoverUrl,
	}
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullDate(v *time.Time) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: v.Format(dateLayout), Valid: true}
}

func optInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func optFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func optDate(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	t, err := time.Parse(dateLayout, v.String)
	if err != nil {
		return nil
	}
	return &t
}
