package goodreads

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var ErrInvalidReader = fmt.Errorf("input cannot be resolved to a reader id")

// ResolveReaderID turns user input into a numeric reader id. Accepted
// forms: a bare numeric id, a /user/show/<id> profile URL or a
// /review/list/<id> URL; the id segment may carry a name slug like
// "12345-jane". Anything else fails before any fetch happens.
func ResolveReaderID(input string) (int64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidReader)
	}

	if id, err := strconv.ParseInt(input, 10, 64); err == nil {
		return id, nil
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReader, input)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReader, input)
	}

	prefix := segments[0] + "/" + segments[1]
	if prefix != "user/show" && prefix != "review/list" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReader, input)
	}

	id, err := strconv.ParseInt(leadingDigits(segments[2]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReader, input)
	}
	return id, nil
}

func leadingDigits(s string) string {
	for i, c := range s {
		if c < '0' || c > '9' {
			return s[:i]
		}
	}
	return s
}
