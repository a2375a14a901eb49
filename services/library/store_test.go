package library

import (
	"context"
	"testing"
	"time"

	"github.com/katzenj/goodreads-analytics/lib/testutil"
	"github.com/katzenj/goodreads-analytics/lib/timezone"
	"github.com/katzenj/goodreads-analytics/services/goodreads/records"
	"github.com/katzenj/goodreads-analytics/services/library/db"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func int64Ptr(n int64) *int64 {
	return &n
}

func TestStoreRoundTrip(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/library",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	avgRating := 4.08
	recs := []records.Record{
		{
			ReaderID:      1,
			Title:         "The Left Hand of Darkness",
			Author:        "Le Guin, Ursula K.",
			ISBN:          "0441478123",
			Rating:        int64Ptr(5),
			NumPages:      int64Ptr(304),
			AvgRating:     &avgRating,
			ReadCount:     int64Ptr(1),
			DateRead:      datePtr(2023, time.January, 15),
			DateAdded:     datePtr(2022, time.December, 28),
			DateStarted:   datePtr(2023, time.January, 2),
			DatePublished: datePtr(1969, time.March, 1),
			Review:        "A classic.",
			CoverURL:      "https://images.example.com/books/1.jpg",
		},
		{
			ReaderID: 1,
			Title:    "Good Omens",
			Author:   "Pratchett, Terry",
			DateRead: datePtr(2024, time.February, 11),
		},
		{
			// shelved, never read
			ReaderID: 1,
			Title:    "Unread",
			Author:   "Somebody",
		},
	}

	err := store.UpsertRecords(ctx, 1, recs)
	require.NoError(t, err)

	got, err := store.GetRecords(ctx, 1, nil)
	require.NoError(t, err)

	diff := cmp.Diff(
		recs, got,
		cmpopts.IgnoreFields(records.Record{}, "ID"),
		cmpopts.SortSlices(func(a, b records.Record) bool {
			return a.Title < b.Title
		}),
	)
	if diff != "" {
		t.Fatal(diff)
	}
	for _, r := range got {
		require.NotZero(t, r.ID)
	}
}

func TestStoreUpsertReplaces(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/library",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	rec := records.Record{
		ReaderID: 1,
		Title:    "Dune",
		Author:   "Herbert, Frank",
		Rating:   int64Ptr(3),
	}
	require.NoError(t, store.UpsertRecords(ctx, 1, []records.Record{rec}))

	// same key, changed fields: the stored row is replaced, not duplicated
	rec.Rating = int64Ptr(5)
	rec.DateRead = datePtr(2024, time.June, 1)
	require.NoError(t, store.UpsertRecords(ctx, 1, []records.Record{rec}))

	got, err := store.GetRecords(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64Ptr(5), got[0].Rating)
	require.NotNil(t, got[0].DateRead)
}

func TestStoreYearScope(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/library",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	recs := []records.Record{
		{ReaderID: 1, Title: "A", Author: "X", DateRead: datePtr(2023, time.December, 31)},
		{ReaderID: 1, Title: "B", Author: "X", DateRead: datePtr(2024, time.January, 1)},
		{ReaderID: 1, Title: "C", Author: "X", DateRead: datePtr(2024, time.December, 31)},
		{ReaderID: 1, Title: "D", Author: "X"},
	}
	require.NoError(t, store.UpsertRecords(ctx, 1, recs))

	year := int64(2024)
	got, err := store.GetRecords(ctx, 1, &year)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, r := range got {
		require.Equal(t, int64(2024), int64(r.DateRead.Year()))
	}

	years, err := store.DistinctYears(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []int64{2024, 2023}, years)
}

func TestStoreSyncMarkers(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/library",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	last, err := store.LastSyncedAt(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, last)

	before := timezone.Now().Add(-time.Second)
	err = store.UpsertRecords(ctx, 1, []records.Record{
		{ReaderID: 1, Title: "A", Author: "X"},
	})
	require.NoError(t, err)

	last, err = store.LastSyncedAt(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, last)
	require.True(t, last.After(before))

	// markers are per reader
	other, err := store.LastSyncedAt(ctx, 2)
	require.NoError(t, err)
	require.Nil(t, other)
}

func TestStoreReaderName(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/library",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	name, err := store.ReaderName(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "", name)

	require.NoError(t, store.SetReaderName(ctx, 1, "Jane Doe"))

	name, err = store.ReaderName(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", name)
}

func TestStoreDashboardCache(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/library",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(setup.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, ok, err := store.CachedDashboard(ctx, 1, 2024)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.PutDashboard(ctx, 1, 2024, `{"graphs":{}}`))
	require.NoError(t, store.PutDashboard(ctx, 1, 0, `{"graphs":{"all":1}}`))

	payload, ok, err := store.CachedDashboard(ctx, 1, 2024)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"graphs":{}}`, payload)

	// replacing an existing entry keeps one row per (reader, year)
	require.NoError(t, store.PutDashboard(ctx, 1, 2024, `{"graphs":{"v":2}}`))
	payload, ok, err = store.CachedDashboard(ctx, 1, 2024)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"graphs":{"v":2}}`, payload)

	require.NoError(t, store.InvalidateDashboards(ctx, 1))
	_, ok, err = store.CachedDashboard(ctx, 1, 2024)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = store.CachedDashboard(ctx, 1, 0)
	require.NoError(t, err)
	require.False(t, ok)
}
