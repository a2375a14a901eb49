package insights

import (
	"testing"
	"time"

	"github.com/katzenj/goodreads-analytics/services/goodreads/records"

	"github.com/stretchr/testify/require"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func int64Ptr(n int64) *int64 {
	return &n
}

func readRecord(title string, rating int64, pages int64, read time.Time) records.Record {
	return records.Record{
		ReaderID: 1,
		Title:    title,
		Author:   "Author",
		Rating:   &rating,
		NumPages: &pages,
		DateRead: &read,
	}
}

func TestSummarize(t *testing.T) {
	recs := []records.Record{
		readRecord("January Five", 5, 304, time.Date(2023, time.January, 9, 0, 0, 0, 0, time.UTC)),
		readRecord("June Five", 5, 412, time.Date(2023, time.June, 2, 0, 0, 0, 0, time.UTC)),
		readRecord("March Two", 2, 98, time.Date(2023, time.March, 20, 0, 0, 0, 0, time.UTC)),
		// shelved but unread, must not participate in any metric
		{ReaderID: 1, Title: "Unread", Author: "Author", Rating: int64Ptr(1), NumPages: int64Ptr(9999)},
	}

	s := Summarize(recs)

	require.Equal(t, 3, s.Count)
	require.Equal(t, "814", s.TotalPages)
	require.Equal(t, 4.0, s.AverageRating)
	require.Equal(t, int64(271), s.AverageLength)

	// ties on rating break toward the most recently finished book
	require.NotNil(t, s.MaxRatedBook)
	require.Equal(t, "June Five", s.MaxRatedBook.Title)
	require.Equal(t, int64Ptr(5), s.MaxRating)

	require.NotNil(t, s.MinRatedBook)
	require.Equal(t, "March Two", s.MinRatedBook.Title)
	require.Equal(t, int64Ptr(2), s.MinRating)

	require.NotNil(t, s.LongestBook)
	require.Equal(t, "June Five", s.LongestBook.Title)
	require.NotNil(t, s.ShortestBook)
	require.Equal(t, "March Two", s.ShortestBook.Title)
}

func TestSummarizeThousandsSeparator(t *testing.T) {
	recs := []records.Record{
		readRecord("A", 4, 1216, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)),
		readRecord("B", 4, 350, time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC)),
	}
	require.Equal(t, "1,566", Summarize(recs).TotalPages)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	require.Equal(t, 0, s.Count)
	require.Equal(t, "0", s.TotalPages)
	require.Equal(t, 0.0, s.AverageRating)
	require.Equal(t, int64(0), s.AverageLength)
	require.Nil(t, s.MaxRatedBook)
	require.Nil(t, s.MinRatedBook)
	require.Nil(t, s.LongestBook)
	require.Nil(t, s.ShortestBook)
	require.Nil(t, s.MaxRating)
	require.Nil(t, s.MinRating)
}

func TestSummarizeRoundsAverageRating(t *testing.T) {
	recs := []records.Record{
		readRecord("A", 5, 100, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)),
		readRecord("B", 4, 100, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)),
		readRecord("C", 4, 100, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)),
	}
	// 13/3 = 4.333... rounds to one decimal place
	require.Equal(t, 4.3, Summarize(recs).AverageRating)
}
