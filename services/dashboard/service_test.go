package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/katzenj/goodreads-analytics/lib/testutil"
	"github.com/katzenj/goodreads-analytics/lib/timezone"
	"github.com/katzenj/goodreads-analytics/services/goodreads/records"
	"github.com/katzenj/goodreads-analytics/services/insights"
	"github.com/katzenj/goodreads-analytics/services/library"
	"github.com/katzenj/goodreads-analytics/services/library/db"

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

func setupDashboard(t *testing.T) (Service, library.Store, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/dashboard",
		DbSchema: db.Schema,
	})
	store := library.NewStore(setup.DB)
	return NewService(store), store, cleanup
}

func seedRecords(t *testing.T, ctx context.Context, store library.Store) {
	err := store.UpsertRecords(ctx, 1, []records.Record{
		{
			ReaderID: 1, Title: "Dune", Author: "Herbert, Frank",
			Rating: int64Ptr(5), NumPages: int64Ptr(412),
			DateRead: datePtr(2024, time.June, 1),
		},
		{
			ReaderID: 1, Title: "Emma", Author: "Austen, Jane",
			Rating: int64Ptr(4), NumPages: int64Ptr(474),
			DateRead: datePtr(2024, time.January, 5),
		},
		{
			ReaderID: 1, Title: "Good Omens", Author: "Pratchett, Terry",
			Rating: int64Ptr(3), NumPages: int64Ptr(288),
			DateRead: datePtr(2023, time.February, 11),
		},
		{ReaderID: 1, Title: "Unread", Author: "Somebody"},
	})
	require.NoError(t, err)
	require.NoError(t, store.SetReaderName(ctx, 1, "Jane Doe"))
}

func TestViewAllTime(t *testing.T) {
	service, store, cleanup := setupDashboard(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	seedRecords(t, ctx, store)

	view, err := service.View(ctx, 1, nil)
	require.NoError(t, err)

	reader := view["reader"].(map[string]any)
	require.Equal(t, "Jane Doe", reader["name"])

	years := view["years"].([]string)
	require.Equal(t, "All time", years[0])
	require.Contains(t, years, "2024")
	require.Contains(t, years, "2023")
	require.Contains(t, years, fmt.Sprintf("%d", timezone.Now().Year()))

	graphs := view["graphs"].(map[string]any)
	// the comparison chart only exists for year-scoped views
	require.Equal(t, insights.NullMarker, graphs["books_read_compared_to_year"])
	require.NotEqual(t, insights.NullMarker, graphs["books_read"])

	metrics := view["metrics"].(map[string]any)
	require.Equal(t, 3, metrics["count"])

	// read list is newest first, shelved items stay out
	books := view["books"].([]any)
	require.Len(t, books, 3)
	require.Equal(t, "Dune", books[0].(map[string]any)["title"])
	require.Equal(t, "Good Omens", books[2].(map[string]any)["title"])
}

func TestViewYearScoped(t *testing.T) {
	service, store, cleanup := setupDashboard(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	seedRecords(t, ctx, store)

	year := int64(2024)
	view, err := service.View(ctx, 1, &year)
	require.NoError(t, err)

	metrics := view["metrics"].(map[string]any)
	require.Equal(t, 2, metrics["count"])

	graphs := view["graphs"].(map[string]any)
	comparison := graphs["books_read_compared_to_year"].(map[string]any)
	datasets := comparison["datasets"].([]any)
	require.Len(t, datasets, 2)
	require.Equal(t, "Books read 2024", datasets[0].(map[string]any)["label"])
	require.Equal(t, "Books read 2023", datasets[1].(map[string]any)["label"])
}

func TestViewCaching(t *testing.T) {
	service, store, cleanup := setupDashboard(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	seedRecords(t, ctx, store)

	view, err := service.View(ctx, 1, nil)
	require.NoError(t, err)

	payload, ok, err := store.CachedDashboard(ctx, 1, 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, payload)

	// cached views survive new writes until the cache is invalidated
	err = store.UpsertRecords(ctx, 1, []records.Record{
		{ReaderID: 1, Title: "New", Author: "New", DateRead: datePtr(2024, time.July, 1)},
	})
	require.NoError(t, err)

	cached, err := service.View(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, cached["books"].([]any), len(view["books"].([]any)))

	require.NoError(t, store.InvalidateDashboards(ctx, 1))

	rebuilt, err := service.View(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, rebuilt["books"].([]any), len(view["books"].([]any))+1)
}

func TestViewUnknownReader(t *testing.T) {
	service, _, cleanup := setupDashboard(t)
	defer cleanup()

	view, err := service.View(context.Background(), 42, nil)
	require.NoError(t, err)

	metrics := view["metrics"].(map[string]any)
	require.Equal(t, 0, metrics["count"])
	require.Equal(t, "", view["reader"].(map[string]any)["name"])
	books := view["books"].([]any)
	require.Len(t, books, 0)
}
