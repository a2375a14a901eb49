package records

import (
	"context"
	"log/slog"

	"github.com/antzucaro/matchr"
)

// titles at least this similar (but with differing keys) are worth
// surfacing in logs, they are usually edition variants
const nearMissThreshold = 0.95

// Dedupe collapses records sharing a (title, author, reader) key down
// to the first occurrence, preserving order. Paginated re-fetches and
// partial re-syncs overlap, so the same entry can show up more than
// once; applying Dedupe twice is the same as applying it once.
func Dedupe(ctx context.Context, recs []Record) []Record {
	seen := make(map[Key]struct{}, len(recs))
	out := make([]Record, 0, len(recs))

	for _, r := range recs {
		key := r.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}

	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		logNearMisses(ctx, out)
	}

	return out
}

// logNearMisses reports pairs of kept records whose titles are nearly
// identical. These are never collapsed, the key match is exact, but
// they tend to indicate the same book shelved under two editions.
func logNearMisses(ctx context.Context, recs []Record) {
	for i := 0; i < len(recs); i++ {
		for j := i + 1; j < len(recs); j++ {
			if recs[i].Author != recs[j].Author {
				continue
			}
			similarity := matchr.JaroWinkler(recs[i].Title, recs[j].Title, false)
			if similarity < nearMissThreshold {
				continue
			}
			slog.DebugContext(
				ctx, "near-duplicate titles kept as distinct records",
				"left", recs[i].Title,
				"right", recs[j].Title,
				"author", recs[i].Author,
				"similarity", similarity,
			)
		}
	}
}
