package records

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDedupe(t *testing.T) {
	ctx := context.Background()

	first := Record{ReaderID: 1, Title: "Dune", Author: "Herbert, Frank", Rating: int64Ptr(5)}
	duplicate := Record{ReaderID: 1, Title: "Dune", Author: "Herbert, Frank", Rating: int64Ptr(3)}
	otherReader := Record{ReaderID: 2, Title: "Dune", Author: "Herbert, Frank"}
	otherBook := Record{ReaderID: 1, Title: "Dune Messiah", Author: "Herbert, Frank"}

	out := Dedupe(ctx, []Record{first, duplicate, otherReader, otherBook})

	// first occurrence wins, later duplicates are dropped entirely
	diff := cmp.Diff([]Record{first, otherReader, otherBook}, out)
	if diff != "" {
		t.Fatal(diff)
	}

	// a second pass changes nothing
	again := Dedupe(ctx, out)
	diff = cmp.Diff(out, again)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestDedupeEmpty(t *testing.T) {
	out := Dedupe(context.Background(), nil)
	require.Len(t, out, 0)
}
